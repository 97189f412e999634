package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nikostojak/repertoire/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "repertoire",
	Short: "Chess opening trainer",
	Long:  "Repertoire is a terminal chess opening trainer with spaced repetition scheduling and adaptive difficulty.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTrain(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides REPERTOIRE_DB env var)")

	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(dueCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(openingsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then REPERTOIRE_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
