// Package tui provides the interactive Bubble Tea dashboard for debtburn.
package tui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/debtburn/internal/cli"
	"github.com/theirongolddev/debtburn/internal/engine"
	"github.com/theirongolddev/debtburn/internal/pipeline"
	"github.com/theirongolddev/debtburn/internal/tui/components"
	"github.com/theirongolddev/debtburn/internal/tui/theme"
)

// PlanComputedMsg is sent when a background plan computation finishes.
type PlanComputedMsg struct {
	Result   *pipeline.Result
	Compare  []engine.Summary
	Err      error
	Elapsed  time.Duration
	Strategy string
}

// App is the root Bubble Tea model.
type App struct {
	input       pipeline.Input
	strategies  []engine.Strategy
	strategyIdx int

	// Data
	result    *pipeline.Result
	compare   []engine.Summary
	err       error
	computing bool
	elapsed   time.Duration

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	scroll    int // schedule row offset
	spinner   spinner.Model
}

const (
	minTerminalWidth = 80
	maxContentWidth  = 160
	minContentHeight = 5
	scheduleOverhead = 6 // tab bar + table header + status bar
)

const (
	tabOverview = iota
	tabSchedule
	tabLoans
	tabCompare
)

// NewApp creates a dashboard for in. The strategy key cycles through every
// built-in strategy starting from in.Strategy.
func NewApp(in pipeline.Input) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	strategies := engine.Strategies()
	idx := 0
	if in.Strategy != nil {
		idx = max(slices.IndexFunc(strategies, func(s engine.Strategy) bool {
			return s.Name() == in.Strategy.Name()
		}), 0)
	}
	in.Strategy = strategies[idx]

	return App{
		input:       in,
		strategies:  strategies,
		strategyIdx: idx,
		computing:   true,
		spinner:     sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		a.spinner.Tick,
		computePlanCmd(a.input),
	)
}

// computePlanCmd runs the plan and the strategy comparison off the UI loop.
func computePlanCmd(in pipeline.Input) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		msg := PlanComputedMsg{Strategy: in.Strategy.Name()}
		msg.Result, msg.Err = pipeline.Run(in)
		if msg.Err == nil {
			msg.Compare, msg.Err = pipeline.Compare(in)
		}
		msg.Elapsed = time.Since(start)
		return msg
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case PlanComputedMsg:
		// Drop results for a strategy the user has already cycled past.
		if msg.Strategy != a.input.Strategy.Name() {
			return a, nil
		}
		a.computing = false
		a.result, a.compare, a.err = msg.Result, msg.Compare, msg.Err
		a.elapsed = msg.Elapsed
		a.clampScroll()
		return a, nil

	case spinner.TickMsg:
		if !a.computing {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.MouseMsg:
		return a.updateMouse(msg)

	case tea.KeyMsg:
		return a.updateKey(msg)
	}
	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		a.scroll--
	case tea.MouseButtonWheelDown:
		a.scroll++
	case tea.MouseButtonLeft:
		if msg.Y == 0 && msg.Action == tea.MouseActionPress {
			if tab := components.TabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	a.clampScroll()
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return a, tea.Quit
	case "?":
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "s":
		a.strategyIdx = (a.strategyIdx + 1) % len(a.strategies)
		a.input.Strategy = a.strategies[a.strategyIdx]
		a.computing = true
		return a, tea.Batch(a.spinner.Tick, computePlanCmd(a.input))
	case "left":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
	case "j", "down":
		a.scroll++
	case "k", "up":
		a.scroll--
	case "g":
		a.scroll = 0
	case "G":
		a.scroll = a.maxScroll()
	case "ctrl+d":
		a.scroll += a.halfPage()
	case "ctrl+u":
		a.scroll -= a.halfPage()
	default:
		if r := []rune(key); len(r) == 1 {
			if tab := components.TabIdxByKey(r[0]); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	a.clampScroll()
	return a, nil
}

func (a App) halfPage() int {
	return max((a.height-scheduleOverhead)/2, 1)
}

func (a App) maxScroll() int {
	if a.result == nil {
		return 0
	}
	return max(len(a.result.Months)-(a.height-scheduleOverhead), 0)
}

func (a *App) clampScroll() {
	a.scroll = min(max(a.scroll, 0), a.maxScroll())
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return fmt.Sprintf("\n  Terminal too narrow (%d cols)\n\n  debtburn needs at least %d columns.\n",
			a.width, minTerminalWidth)
	}
	if a.computing && a.result == nil && a.err == nil {
		return a.viewLoading()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewLoading() string {
	t := theme.Active
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(2, 4).
		Render(
			lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true).Render("◈ debtburn") + "\n\n" +
				a.spinner.View() +
				lipgloss.NewStyle().Foreground(t.TextMuted).Render(" Simulating "+a.input.Strategy.Name()+" plan..."),
		)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

func (a App) viewHelp() string {
	t := theme.Active
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	bindings := []struct{ key, desc string }{
		{"o h l c", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"j k", "Scroll schedule"},
		{"g G", "Top / Bottom"},
		{"^d ^u", "Half-page scroll"},
		{"s", "Cycle strategy"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true).Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")
	for _, bind := range bindings {
		fmt.Fprintf(&b, "%s  %s\n", keyStyle.Render(fmt.Sprintf("%-8s", bind.key)), descStyle.Render(bind.desc))
	}

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3).
		Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

func (a App) viewMain() string {
	cw := a.contentWidth()

	header := components.RenderTabBar(a.activeTab, a.width)
	status := components.RenderStatusBar(a.width, a.statusText())
	contentH := max(a.height-lipgloss.Height(header)-lipgloss.Height(status), minContentHeight)

	var content string
	switch {
	case a.err != nil:
		content = a.renderError(cw)
	case a.activeTab == tabOverview:
		content = a.renderOverviewTab(cw)
	case a.activeTab == tabSchedule:
		content = a.renderScheduleTab(cw, contentH)
	case a.activeTab == tabLoans:
		content = a.renderLoansTab(cw)
	case a.activeTab == tabCompare:
		content = a.renderCompareTab(cw)
	}
	content = padHeight(truncateHeight(content, contentH), contentH)
	content = lipgloss.PlaceHorizontal(a.width, lipgloss.Center, content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, status)
}

func (a App) statusText() string {
	s := fmt.Sprintf("%s · %s/mo · %dy horizon",
		a.input.Strategy.Name(), cli.FormatMoney(a.input.Contribution), a.input.Years)
	if a.computing {
		s = a.spinner.View() + " " + s
	} else if a.elapsed > 0 {
		s += fmt.Sprintf(" · %dms", a.elapsed.Milliseconds())
	}
	return s
}

func (a App) renderError(cw int) string {
	t := theme.Active
	body := lipgloss.NewStyle().Foreground(t.Debt).Render(a.err.Error()) + "\n\n" +
		lipgloss.NewStyle().Foreground(t.TextMuted).Render("Adjust the scenario with `debtburn budget` or `debtburn loan`.")
	return components.ContentCard("Cannot build a plan", body, cw)
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}
