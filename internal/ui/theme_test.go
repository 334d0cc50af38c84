package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/chris-regnier/dotdiary/internal/config"
)

func TestResolveThemeDefaultDark(t *testing.T) {
	theme := ResolveTheme(config.ThemeConfig{})

	if theme.Primary != lipgloss.Color("15") {
		t.Errorf("Primary = %q, want 15", theme.Primary)
	}
	if theme.MarkdownStyle != "dark" {
		t.Errorf("MarkdownStyle = %q, want dark", theme.MarkdownStyle)
	}
}

func TestResolveThemeDefaultLight(t *testing.T) {
	theme := ResolveTheme(config.ThemeConfig{Preset: "default-light"})

	if theme.MarkdownStyle != "light" {
		t.Errorf("MarkdownStyle = %q, want light", theme.MarkdownStyle)
	}
}

func TestResolveThemeOverrides(t *testing.T) {
	theme := ResolveTheme(config.ThemeConfig{
		Preset:  "dracula",
		Primary: "#FFFFFF",
		Accent:  "#00FF00",
	})

	if theme.Primary != lipgloss.Color("#FFFFFF") {
		t.Errorf("Primary override not applied: %q", theme.Primary)
	}
	if theme.Accent != lipgloss.Color("#00FF00") {
		t.Errorf("Accent override not applied: %q", theme.Accent)
	}
	// Unset fields keep the preset values.
	if theme.Danger != presets["dracula"].Danger {
		t.Errorf("Danger = %q, want preset value", theme.Danger)
	}
}

func TestResolveThemeUnknownPresetFallsBack(t *testing.T) {
	theme := ResolveTheme(config.ThemeConfig{Preset: "no-such-theme"})

	if theme != presets["default-dark"] {
		t.Errorf("unknown preset should fall back to default-dark, got %+v", theme)
	}
}

func TestFilledDotStyleWeight(t *testing.T) {
	theme := presets["default-dark"]

	if theme.FilledDotStyle(1).GetBold() {
		t.Error("single-entry dot should not be bold")
	}
	if !theme.FilledDotStyle(2).GetBold() {
		t.Error("multi-entry dot should be bold")
	}
}
