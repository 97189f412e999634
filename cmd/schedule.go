package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/nikostojak/repertoire/internal/config"
	"github.com/nikostojak/repertoire/internal/openings"
	"github.com/nikostojak/repertoire/internal/session"
	"github.com/nikostojak/repertoire/internal/srs"
	"github.com/nikostojak/repertoire/internal/store"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Show the review forecast",
	Long:  "Spreads the current review backlog over upcoming days, capped at the daily limit, and lists future reviews on their scheduled day.",
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")

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
		if len(state.Reviews) == 0 {
			fmt.Println("No openings tracked yet. Run a training session first.")
			return nil
		}

		now := time.Now()
		var backlog []srs.ReviewItem
		upcoming := make(map[string][]srs.ReviewItem)
		for _, item := range state.Reviews {
			if item.IsDue(now) {
				backlog = append(backlog, item)
				continue
			}
			key := item.NextReview.Format(srs.DateLayout)
			upcoming[key] = append(upcoming[key], item)
		}

		schedule, err := srs.OptimizeSchedule(backlog, now, cfg.DailyLimit)
		if err != nil {
			return err
		}
		for key, items := range upcoming {
			schedule[key] = append(schedule[key], items...)
		}

		keys := make([]string, 0, len(schedule))
		for key := range schedule {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		horizon := now.AddDate(0, 0, days).Format(srs.DateLayout)
		shown := 0
		for _, key := range keys {
			if key > horizon {
				break
			}
			fmt.Printf("%s  (%d reviews)\n", key, len(schedule[key]))
			for _, item := range schedule[key] {
				name := item.OpeningID
				if o, err := catalog.Get(item.OpeningID); err == nil {
					name = o.Name
				}
				fmt.Printf("    %-24s  %s\n", item.OpeningID, name)
			}
			shown += len(schedule[key])
		}
		if shown == 0 {
			fmt.Printf("Nothing scheduled in the next %d days.\n", days)
		}
		return nil
	},
}

func init() {
	scheduleCmd.Flags().Int("days", 7, "Forecast horizon in days")
}
