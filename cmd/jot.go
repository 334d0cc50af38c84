package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/chris-regnier/dotdiary/internal/entry"
	"github.com/chris-regnier/dotdiary/internal/ui"
	"github.com/spf13/cobra"
)

var jotDate string

var jotCmd = &cobra.Command{
	Use:   "jot [text...]",
	Short: "Record a quick entry",
	Long: `Record a quick journal entry for today, or for another date with --date.

Each jot becomes its own entry, so a day accumulates as many dots-worth of
notes as you give it.`,
	Example: `  dotdiary jot "bought groceries"
  dotdiary jot meeting went well
  dotdiary jot --date 2024-03-07 "backfilled note"
  echo "note from pipe" | dotdiary jot -`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var content string

		switch {
		case len(args) == 1 && args[0] == "-":
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
			content = strings.TrimSpace(string(data))
		case len(args) > 0:
			content = strings.Join(args, " ")
		default:
			return fmt.Errorf("jot requires text: dotdiary jot \"some text\"")
		}

		when := time.Now()
		if jotDate != "" {
			day, err := time.ParseInLocation("2006-01-02", jotDate, time.Local)
			if err != nil {
				return fmt.Errorf("parsing --date: %w", err)
			}
			// Keep the current clock time so same-day jots stay ordered.
			now := time.Now()
			when = time.Date(day.Year(), day.Month(), day.Day(),
				now.Hour(), now.Minute(), now.Second(), 0, time.Local)
		}

		return jotRun(os.Stdout, content, when)
	},
}

func jotRun(w io.Writer, content string, when time.Time) error {
	content = strings.TrimSpace(content)
	if err := entry.ValidateContent(content); err != nil {
		return err
	}

	id, err := entry.NewID()
	if err != nil {
		return fmt.Errorf("generating entry ID: %w", err)
	}

	e := entry.Entry{
		ID:        id,
		Content:   content,
		CreatedAt: when,
		UpdatedAt: when,
	}
	if err := store.Create(e); err != nil {
		return fmt.Errorf("creating entry: %w", err)
	}

	if jsonOutput {
		return ui.FormatJSON(w, e)
	}
	ui.FormatEntryCreated(w, e)
	return nil
}

func init() {
	jotCmd.Flags().StringVar(&jotDate, "date", "", "date for the entry (YYYY-MM-DD, default today)")
	rootCmd.AddCommand(jotCmd)
}
