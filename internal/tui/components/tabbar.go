package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/debtburn/internal/tui/theme"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name   string
	Key    rune
	KeyPos int // position of the shortcut letter in the name
}

// Tabs defines all available tabs.
var Tabs = []Tab{
	{Name: "Overview", Key: 'o', KeyPos: 0},
	{Name: "Schedule", Key: 'h', KeyPos: 2},
	{Name: "Loans", Key: 'l', KeyPos: 0},
	{Name: "Compare", Key: 'c', KeyPos: 0},
}

const tabPad = 1

// RenderTabBar renders the tab bar with the given active index.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active

	parts := make([]string, len(Tabs))
	for i, tab := range Tabs {
		parts[i] = renderTab(t, tab, i == activeIdx)
	}
	bar := strings.Join(parts, lipgloss.NewStyle().Foreground(t.TextDim).Render("│"))
	return lipgloss.NewStyle().Width(width).Render(bar)
}

func renderTab(t theme.Theme, tab Tab, active bool) string {
	pad := strings.Repeat(" ", tabPad)
	if active {
		return lipgloss.NewStyle().
			Foreground(t.AccentBright).
			Background(t.SurfaceHover).
			Bold(true).
			Render(pad + tab.Name + pad)
	}
	name := lipgloss.NewStyle().Foreground(t.TextMuted)
	key := lipgloss.NewStyle().Foreground(t.Accent).Underline(true)
	return pad +
		name.Render(tab.Name[:tab.KeyPos]) +
		key.Render(tab.Name[tab.KeyPos:tab.KeyPos+1]) +
		name.Render(tab.Name[tab.KeyPos+1:]) +
		pad
}

// TabVisualWidth is the rendered width of a tab without separators.
func TabVisualWidth(tab Tab) int {
	return lipgloss.Width(tab.Name) + 2*tabPad
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}

// TabAtX returns the tab under column x, or -1.
func TabAtX(x int) int {
	pos := 0
	for i, tab := range Tabs {
		w := TabVisualWidth(tab)
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + 1 // separator
	}
	return -1
}
