package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/debtburn/internal/tui/theme"
)

// RenderStatusBar renders the bottom status bar: key hints on the left and
// the current plan settings on the right.
func RenderStatusBar(width int, settings string) string {
	t := theme.Active

	left := " [?]help  [s]trategy  [q]uit"
	right := settings + " "

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)

	return lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Width(width).
		Render(left + strings.Repeat(" ", padding) + right)
}
