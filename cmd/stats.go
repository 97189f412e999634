package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nikostojak/repertoire/internal/adaptive"
	"github.com/nikostojak/repertoire/internal/config"
	"github.com/nikostojak/repertoire/internal/openings"
	"github.com/nikostojak/repertoire/internal/session"
	"github.com/nikostojak/repertoire/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		sessions, _ := cmd.Flags().GetInt("sessions")

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

		ctx := cmd.Context()
		state, err := session.LoadState(ctx, st.SnapshotRepo(), cfg.UserID)
		if err != nil {
			return err
		}

		profile := state.Profile
		fmt.Printf("Skill estimate: %.1f / 100\n", profile.SkillLevel)
		fmt.Printf("Openings tracked: %d of %d\n", len(state.Reviews), catalog.Len())

		advisor := adaptive.Advisor{TimeBudget: cfg.TimeBudgetSecs}
		rec, err := advisor.Recommendation(profile)
		if err != nil {
			return err
		}
		fmt.Printf("Recommended difficulty: %.1f (trend: %s)\n", rec.Recommended, rec.Stats.Trend)
		fmt.Printf("  %s\n", rec.Reason)
		if rec.Stats.Samples > 0 {
			fmt.Printf("  Last %d sessions: %.0f%% accuracy, %.1fs per move\n",
				rec.Stats.Samples, rec.Stats.AvgAccuracy*100, rec.Stats.AvgTimePerMove)
		}

		if len(profile.Strengths) > 0 {
			fmt.Printf("\nStrengths:  %s\n", strings.Join(profile.Strengths, ", "))
		}
		if len(profile.Weaknesses) > 0 {
			fmt.Printf("Weaknesses: %s\n", strings.Join(profile.Weaknesses, ", "))
		}

		// All-time accuracy per tracked opening, from the event log.
		if len(state.Reviews) > 0 {
			fmt.Printf("\n%-24s  %8s  %8s  %8s\n", "Opening", "Accuracy", "Attempts", "Interval")
			fmt.Println(strings.Repeat("─", 56))
			for _, o := range catalog.All() {
				item, ok := state.Reviews[o.ID]
				if !ok {
					continue
				}
				accuracy, attempts, err := st.EventRepo().OpeningAccuracy(ctx, o.ID)
				if err != nil {
					return err
				}
				fmt.Printf("%-24s  %7.0f%%  %8d  %7dd\n",
					o.ID, accuracy*100, attempts, item.IntervalDays)
			}
		}

		records, err := st.EventRepo().SessionSummaries(ctx, store.QueryOpts{Limit: sessions})
		if err != nil {
			return err
		}
		if len(records) > 0 {
			fmt.Printf("\nRecent sessions:\n")
			for _, r := range records {
				acc := 0.0
				if r.QuestionsServed > 0 {
					acc = float64(r.CorrectAnswers) / float64(r.QuestionsServed) * 100
				}
				fmt.Printf("  %s  %2d/%2d (%3.0f%%)  level %.1f  %s\n",
					r.Timestamp.Format("2006-01-02 15:04"),
					r.CorrectAnswers, r.QuestionsServed, acc, r.Difficulty,
					(time.Duration(r.DurationSecs) * time.Second).String())
			}
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("sessions", 10, "Number of recent sessions to list")
}
