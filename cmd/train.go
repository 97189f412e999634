package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nikostojak/repertoire/internal/adaptive"
	"github.com/nikostojak/repertoire/internal/config"
	"github.com/nikostojak/repertoire/internal/openings"
	"github.com/nikostojak/repertoire/internal/session"
	"github.com/nikostojak/repertoire/internal/store"
	"github.com/nikostojak/repertoire/internal/tui"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Start a training session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTrain(cmd)
	},
}

// runTrain opens the store, builds dependencies, and launches the TUI.
func runTrain(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	catalog, err := openings.Default()
	if err != nil {
		return fmt.Errorf("load opening catalog: %w", err)
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	advisor := adaptive.Advisor{TimeBudget: cfg.TimeBudgetSecs}
	return tui.Run(tui.Options{
		Catalog:   catalog,
		Planner:   session.NewPlanner(catalog, advisor, cfg.SessionSize),
		Recorder:  session.NewRecorder(st.EventRepo(), st.SnapshotRepo()),
		Snapshots: st.SnapshotRepo(),
		UserID:    cfg.UserID,
	})
}
