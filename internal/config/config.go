package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// ThemeConfig holds theme selection and per-color overrides.
type ThemeConfig struct {
	Preset        string `mapstructure:"preset"`
	Primary       string `mapstructure:"primary"`
	Secondary     string `mapstructure:"secondary"`
	Accent        string `mapstructure:"accent"`
	Muted         string `mapstructure:"muted"`
	Danger        string `mapstructure:"danger"`
	Background    string `mapstructure:"background"`
	MarkdownStyle string `mapstructure:"markdown_style"`
}

// Config holds the application configuration.
type Config struct {
	Storage   string      `mapstructure:"storage"`
	DataDir   string      `mapstructure:"data_dir"`
	WeekStart string      `mapstructure:"week_start"`
	Density   string      `mapstructure:"density"`
	YearFloor int         `mapstructure:"year_floor"`
	MaxWidth  int         `mapstructure:"max_width"`
	Bell      bool        `mapstructure:"bell"`
	Theme     ThemeConfig `mapstructure:"theme"`
}

// DefaultDataDir returns the default data directory (~/.dotdiary/).
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".dotdiary")
	}
	return filepath.Join(home, ".dotdiary")
}

// Load reads configuration from file, environment variables, and defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("storage", "markdown")
	v.SetDefault("data_dir", DefaultDataDir())
	v.SetDefault("week_start", "sunday")
	v.SetDefault("density", "compact")
	v.SetDefault("year_floor", 0)
	v.SetDefault("max_width", 0)
	v.SetDefault("bell", false)
	v.SetDefault("theme.preset", "default-dark")

	// Config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// XDG support
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "dotdiary"))
		}
		v.AddConfigPath(DefaultDataDir())
		v.SetConfigName("config")
		v.SetConfigType("toml")
	}

	// Environment variables: DOTDIARY_STORAGE, DOTDIARY_DATA_DIR, etc.
	v.SetEnvPrefix("DOTDIARY")
	v.AutomaticEnv()

	// Read config file (ignore not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Only return error if it's not a "file not found" error
			if configPath != "" {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
