package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const defaultSubtitle = "在地導遊媒合平台"

// RenderBanner returns the brand line, subtitle and a rule.
func RenderBanner(styles *StyleSet, version, subtitle string, width int) string {
	if version == "" {
		version = "dev"
	}
	if subtitle == "" {
		subtitle = defaultSubtitle
	}

	rule := lipgloss.NewStyle().Foreground(styles.Theme.Border).
		Render(strings.Repeat("─", min(max(width-4, 20), 60)))

	return "  " + styles.Banner.Render("🧭  G U I D E E") + "  " + styles.VersionPill.Render("v"+version) + "\n" +
		"  " + styles.Subtitle.Render(subtitle) + "\n" +
		"  " + rule + "\n\n"
}
