package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/chris-regnier/dotdiary/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var yearCmd = &cobra.Command{
	Use:   "year [year]",
	Short: "Browse a year's grid",
	Long: `Open the dot grid at the given year (default: the current year).

Outside a terminal, prints per-day entry counts instead.`,
	Example: `  dotdiary year
  dotdiary year 2023`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		year := time.Now().Year()
		if len(args) == 1 {
			y, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parsing year %q: %w", args[0], err)
			}
			year = y
		}
		if year < appConfig.YearFloor {
			return fmt.Errorf("year %d is before year_floor %d", year, appConfig.YearFloor)
		}

		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return yearSummaryRun(year)
		}
		return runGrid(year)
	},
}

func yearSummaryRun(year int) error {
	counts, err := store.DayCounts(year)
	if err != nil {
		return fmt.Errorf("loading day counts: %w", err)
	}

	if jsonOutput {
		return ui.FormatJSON(os.Stdout, counts)
	}

	total := 0
	days := 0
	for _, c := range counts {
		total += c
		days++
	}
	fmt.Fprintf(os.Stdout, "%d: %d entries across %d days\n", year, total, days)
	return nil
}

func init() {
	rootCmd.AddCommand(yearCmd)
}
