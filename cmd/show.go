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

var showCmd = &cobra.Command{
	Use:   "show <date|entry-id>",
	Short: "Print a day's entries, or a single entry by ID",
	Example: `  dotdiary show 2024-03-07
  dotdiary show a7x2k9qm
  dotdiary show 2024-03-07 --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return showRun(os.Stdout, args[0])
	},
}

func showRun(w io.Writer, arg string) error {
	if day, err := time.ParseInLocation("2006-01-02", arg, time.Local); err == nil {
		return showDayRun(w, day)
	}
	return showEntryRun(w, arg)
}

func showDayRun(w io.Writer, day time.Time) error {
	day = grid.NormalizeDate(day)
	entries, err := store.List(storage.ListOptions{Date: &day})
	if err != nil {
		return fmt.Errorf("listing entries: %w", err)
	}

	if jsonOutput {
		return ui.FormatJSON(w, ui.ToSummaries(entries))
	}
	ui.FormatDay(w, day, entries, appConfig.Theme.MarkdownStyle)
	return nil
}

func showEntryRun(w io.Writer, id string) error {
	e, err := store.Get(id)
	if err != nil {
		return fmt.Errorf("getting entry %s: %w", id, err)
	}

	if jsonOutput {
		return ui.FormatJSON(w, e)
	}
	ui.FormatEntryFull(w, e, appConfig.Theme.MarkdownStyle)
	return nil
}

func init() {
	rootCmd.AddCommand(showCmd)
}
