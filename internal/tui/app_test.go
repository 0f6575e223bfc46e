package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/debtburn/internal/engine"
	"github.com/theirongolddev/debtburn/internal/model"
	"github.com/theirongolddev/debtburn/internal/pipeline"
)

func testInput(t *testing.T) pipeline.Input {
	t.Helper()
	d := decimal.RequireFromString
	car, err := model.NewLoan("Car", d("1000"), d("0.1"), d("10"))
	if err != nil {
		t.Fatal(err)
	}
	card, err := model.NewLoan("Card", d("500"), d("0.2"), d("25"))
	if err != nil {
		t.Fatal(err)
	}
	return pipeline.Input{
		Loans:        []model.Loan{car, card},
		Contribution: d("200"),
		Start:        time.Date(2026, time.November, 1, 0, 0, 0, 0, time.UTC),
		Years:        5,
		Strategy:     engine.Snowball,
	}
}

// computed returns an app that has received its first plan.
func computed(t *testing.T) App {
	t.Helper()
	a := NewApp(testInput(t))
	m, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	msg := computePlanCmd(m.(App).input)()
	m, _ = m.Update(msg)
	a = m.(App)
	if a.err != nil {
		t.Fatalf("plan failed: %v", a.err)
	}
	return a
}

func press(a App, key string) App {
	var msg tea.KeyMsg
	switch key {
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	m, _ := a.Update(msg)
	return m.(App)
}

func TestNewAppKeepsStrategy(t *testing.T) {
	a := NewApp(testInput(t))
	if got := a.input.Strategy.Name(); got != engine.SnowballName {
		t.Fatalf("strategy = %q, want %q", got, engine.SnowballName)
	}
	if !a.computing {
		t.Fatal("new app should start computing")
	}
}

func TestPlanComputedMsg(t *testing.T) {
	a := computed(t)
	if a.computing {
		t.Fatal("still computing after result")
	}
	if a.result == nil || len(a.result.Months) == 0 {
		t.Fatal("no schedule")
	}
	if len(a.compare) != len(engine.Strategies()) {
		t.Fatalf("compare rows = %d, want %d", len(a.compare), len(engine.Strategies()))
	}
}

func TestStaleResultDropped(t *testing.T) {
	a := computed(t)
	before := a.result

	a = press(a, "s")
	if a.input.Strategy.Name() == engine.SnowballName {
		t.Fatal("s did not cycle the strategy")
	}
	if !a.computing {
		t.Fatal("cycling should recompute")
	}

	m, _ := a.Update(PlanComputedMsg{Strategy: engine.SnowballName})
	a = m.(App)
	if !a.computing || a.result != before {
		t.Fatal("result for a previous strategy was applied")
	}
}

func TestTabSwitching(t *testing.T) {
	a := computed(t)

	a = press(a, "h")
	if a.activeTab != tabSchedule {
		t.Fatalf("h -> tab %d, want %d", a.activeTab, tabSchedule)
	}
	a = press(a, "right")
	if a.activeTab != tabLoans {
		t.Fatalf("right -> tab %d, want %d", a.activeTab, tabLoans)
	}
	a = press(a, "left")
	a = press(a, "left")
	a = press(a, "left")
	if a.activeTab != tabCompare {
		t.Fatalf("left wraps to tab %d, want %d", a.activeTab, tabCompare)
	}
}

func TestScrollClamped(t *testing.T) {
	a := computed(t)
	a = press(a, "k")
	if a.scroll != 0 {
		t.Fatalf("scroll = %d after k at top", a.scroll)
	}
	a = press(a, "G")
	if a.scroll != a.maxScroll() {
		t.Fatalf("G scroll = %d, want %d", a.scroll, a.maxScroll())
	}
	a = press(a, "j")
	if a.scroll != a.maxScroll() {
		t.Fatalf("scroll ran past the end: %d", a.scroll)
	}
}

func TestViewNarrowTerminal(t *testing.T) {
	a := NewApp(testInput(t))
	m, _ := a.Update(tea.WindowSizeMsg{Width: 40, Height: 20})
	if v := m.View(); !strings.Contains(v, "too narrow") {
		t.Fatalf("narrow view = %q", v)
	}
}

func TestViewEveryTab(t *testing.T) {
	a := computed(t)
	for _, key := range []string{"o", "h", "l", "c"} {
		a = press(a, key)
		v := a.View()
		if v == "" {
			t.Fatalf("tab %s rendered nothing", key)
		}
		if lines := strings.Count(v, "\n") + 1; lines > a.height {
			t.Fatalf("tab %s rendered %d lines, terminal has %d", key, lines, a.height)
		}
	}
}

func TestViewError(t *testing.T) {
	in := testInput(t)
	in.Contribution = decimal.RequireFromString("1")
	a := NewApp(in)
	m, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = m.Update(computePlanCmd(in)())
	if v := m.View(); !strings.Contains(v, "Cannot build a plan") {
		t.Fatal("error card missing")
	}
}

func TestTruncStr(t *testing.T) {
	if got := truncStr("Mortgage", 5); got != "Mort…" {
		t.Fatalf("truncStr = %q", got)
	}
	if got := truncStr("Car", 5); got != "Car" {
		t.Fatalf("truncStr = %q", got)
	}
}
