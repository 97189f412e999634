package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nikostojak/repertoire/internal/config"
	"github.com/nikostojak/repertoire/internal/openings"
	"github.com/nikostojak/repertoire/internal/session"
	"github.com/nikostojak/repertoire/internal/srs"
	"github.com/nikostojak/repertoire/internal/store"
)

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "List openings due for review",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

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

		state, err := session.LoadState(cmd.Context(), st.SnapshotRepo(), cfg.UserID)
		if err != nil {
			return err
		}

		items := make([]srs.ReviewItem, 0, len(state.Reviews))
		for _, item := range state.Reviews {
			items = append(items, item)
		}

		now := time.Now()
		due := srs.SelectDue(items, now, limit)
		if len(due) == 0 {
			fmt.Println("Nothing due. Run a training session to add openings.")
			return nil
		}

		fmt.Printf("%-24s  %-40s  %8s  %7s\n", "ID", "Name", "Interval", "Overdue")
		fmt.Println(strings.Repeat("─", 86))
		for _, item := range due {
			name := item.OpeningID
			if o, err := catalog.Get(item.OpeningID); err == nil {
				name = o.Name
			}
			if len(name) > 40 {
				name = name[:37] + "..."
			}
			fmt.Printf("%-24s  %-40s  %7dd  %6.1fd\n",
				item.OpeningID, name, item.IntervalDays, item.OverdueDays(now))
		}
		fmt.Printf("\n%d due\n", len(due))
		return nil
	},
}

func init() {
	dueCmd.Flags().Int("limit", 50, "Maximum number of openings to list")
}
