package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// markdownRenderer caches a glamour renderer keyed on the width and style it
// was built with, so per-frame rendering does not rebuild the style tree.
type markdownRenderer struct {
	renderer *glamour.TermRenderer
	width    int
	style    string
}

var cachedRenderer markdownRenderer

func (r *markdownRenderer) ensure(width int, style string) error {
	if width < 1 {
		width = 80
	}
	if style == "" {
		style = "dark"
	}
	if r.renderer != nil && width == r.width && style == r.style {
		return nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return err
	}
	r.renderer = renderer
	r.width = width
	r.style = style
	return nil
}

// RenderMarkdownWithStyle renders markdown content using the specified
// glamour style. Returns the original content if rendering fails.
func RenderMarkdownWithStyle(content string, width int, style string) string {
	if content == "" {
		return ""
	}
	if err := cachedRenderer.ensure(width, style); err != nil {
		return content
	}
	rendered, err := cachedRenderer.renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(rendered, "\n")
}

// RenderMarkdown renders markdown content with the "dark" style.
func RenderMarkdown(content string, width int) string {
	return RenderMarkdownWithStyle(content, width, "dark")
}
