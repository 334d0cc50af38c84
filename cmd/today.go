package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/chris-regnier/dotdiary/internal/grid"
	"github.com/chris-regnier/dotdiary/internal/storage"
	"github.com/chris-regnier/dotdiary/internal/ui"
	"github.com/spf13/cobra"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Print today's entries",
	Example: `  dotdiary today
  dotdiary today --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return todayRun(os.Stdout, time.Now())
	},
}

func todayRun(w io.Writer, now time.Time) error {
	day := grid.NormalizeDate(now)
	entries, err := store.List(storage.ListOptions{Date: &day})
	if err != nil {
		return fmt.Errorf("listing today's entries: %w", err)
	}

	if jsonOutput {
		return ui.FormatJSON(w, ui.ToSummaries(entries))
	}

	ui.FormatDay(w, day, entries, appConfig.Theme.MarkdownStyle)
	return nil
}

func init() {
	rootCmd.AddCommand(todayCmd)
}
