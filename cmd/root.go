package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/chris-regnier/dotdiary/internal/config"
	"github.com/chris-regnier/dotdiary/internal/grid"
	"github.com/chris-regnier/dotdiary/internal/storage"
	"github.com/chris-regnier/dotdiary/internal/storage/markdown"
	"github.com/chris-regnier/dotdiary/internal/storage/sqlite"
	"github.com/chris-regnier/dotdiary/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	cfgFile        string
	jsonOutput     bool
	storageBackend string
	appConfig      *config.Config
	store          storage.Storage
)

var rootCmd = &cobra.Command{
	Use:   "dotdiary",
	Short: "A day journal with a year-at-a-glance dot grid",
	Long:  "dotdiary keeps one-or-more markdown notes per day and browses them through a scrubbable year grid of dots.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		appConfig = cfg

		// Override storage backend from flag
		if storageBackend != "" {
			appConfig.Storage = storageBackend
		}

		switch appConfig.Storage {
		case "markdown":
			store, err = markdown.New(appConfig.DataDir)
			if err != nil {
				return fmt.Errorf("initializing markdown storage: %w", err)
			}
		case "sqlite":
			store, err = sqlite.New(appConfig.DataDir)
			if err != nil {
				return fmt.Errorf("initializing sqlite storage: %w", err)
			}
		default:
			return fmt.Errorf("unknown storage backend: %s", appConfig.Storage)
		}

		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			// Non-TTY: fall back to today's entries
			return todayRun(os.Stdout, time.Now())
		}
		return runGrid(time.Now().Year())
	},
}

// runGrid resolves TUI configuration from appConfig and launches the grid.
func runGrid(year int) error {
	cfg, err := tuiConfig(year)
	if err != nil {
		return err
	}
	return ui.RunGrid(store, cfg)
}

func tuiConfig(year int) (ui.TUIConfig, error) {
	weekStart, err := grid.ParseWeekStart(appConfig.WeekStart)
	if err != nil {
		return ui.TUIConfig{}, fmt.Errorf("config week_start: %w", err)
	}
	density, err := grid.ParseMode(appConfig.Density)
	if err != nil {
		return ui.TUIConfig{}, fmt.Errorf("config density: %w", err)
	}
	return ui.TUIConfig{
		Theme:     ui.ResolveTheme(appConfig.Theme),
		MaxWidth:  appConfig.MaxWidth,
		Bell:      appConfig.Bell,
		WeekStart: weekStart,
		Density:   density,
		Year:      year,
		YearFloor: appConfig.YearFloor,
	}, nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().StringVar(&storageBackend, "storage", "", "storage backend (markdown|sqlite)")

	// Silence Cobra's built-in error and usage printing so we control stderr output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}
