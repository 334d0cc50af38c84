package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/chris-regnier/dotdiary/internal/storage"
	"github.com/chris-regnier/dotdiary/internal/ui"
	"github.com/spf13/cobra"
)

var (
	listLimit  int
	listOffset int
	listFrom   string
	listTo     string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries, newest first",
	Example: `  dotdiary list
  dotdiary list --limit 10
  dotdiary list --from 2024-03-01 --to 2024-03-31`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := storage.ListOptions{Limit: listLimit, Offset: listOffset}

		if listFrom != "" {
			from, err := time.ParseInLocation("2006-01-02", listFrom, time.Local)
			if err != nil {
				return fmt.Errorf("parsing --from: %w", err)
			}
			opts.StartDate = &from
		}
		if listTo != "" {
			to, err := time.ParseInLocation("2006-01-02", listTo, time.Local)
			if err != nil {
				return fmt.Errorf("parsing --to: %w", err)
			}
			opts.EndDate = &to
		}

		return listRun(os.Stdout, opts)
	},
}

func listRun(w io.Writer, opts storage.ListOptions) error {
	entries, err := store.List(opts)
	if err != nil {
		return fmt.Errorf("listing entries: %w", err)
	}

	if jsonOutput {
		return ui.FormatJSON(w, ui.ToSummaries(entries))
	}
	ui.FormatEntryList(w, entries)
	return nil
}

func init() {
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "maximum number of entries (0 = all)")
	listCmd.Flags().IntVar(&listOffset, "offset", 0, "number of entries to skip")
	listCmd.Flags().StringVar(&listFrom, "from", "", "start date (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&listTo, "to", "", "end date (YYYY-MM-DD)")
	rootCmd.AddCommand(listCmd)
}
