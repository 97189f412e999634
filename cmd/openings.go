package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nikostojak/repertoire/internal/openings"
)

var openingsCmd = &cobra.Command{
	Use:   "openings",
	Short: "List the opening catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		eco, _ := cmd.Flags().GetString("eco")

		catalog, err := openings.Default()
		if err != nil {
			return fmt.Errorf("load opening catalog: %w", err)
		}

		fmt.Printf("%-24s  %-5s  %-40s  %10s  %s\n", "ID", "ECO", "Name", "Difficulty", "Line")
		fmt.Println(strings.Repeat("─", 110))

		shown := 0
		for _, o := range catalog.All() {
			if eco != "" && !strings.HasPrefix(o.ECO, strings.ToUpper(eco)) {
				continue
			}
			name := o.Name
			if len(name) > 40 {
				name = name[:37] + "..."
			}
			line := o.PGN(6)
			fmt.Printf("%-24s  %-5s  %-40s  %10.0f  %s\n", o.ID, o.ECO, name, o.Difficulty, line)
			shown++
		}

		fmt.Printf("\n%d openings\n", shown)
		return nil
	},
}

func init() {
	openingsCmd.Flags().String("eco", "", "Filter by ECO code prefix (e.g. C5, B)")
}
