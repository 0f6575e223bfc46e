package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestLayoutRow(t *testing.T) {
	got := LayoutRow(10, 3)
	want := []int{4, 3, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("LayoutRow(10, 3) = %v, want %v", got, want)
		}
	}
	if LayoutRow(10, 0) != nil {
		t.Fatal("LayoutRow with n=0 should be nil")
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	row := MetricCardRow([]Metric{
		{Label: "Debt", Value: "$1,000.00"},
		{Label: "Months", Value: "12", Note: "Nov 2027"},
	}, 60)
	for i, line := range strings.Split(row, "\n") {
		if w := lipgloss.Width(line); w != 60 {
			t.Fatalf("line %d width = %d, want 60", i, w)
		}
	}
}

func TestTabAtX(t *testing.T) {
	pos := 0
	for i, tab := range Tabs {
		w := TabVisualWidth(tab)
		if got := TabAtX(pos + w/2); got != i {
			t.Fatalf("TabAtX(%d) = %d, want %d", pos+w/2, got, i)
		}
		pos += w + 1
	}
	if got := TabAtX(pos + 50); got != -1 {
		t.Fatalf("TabAtX past the end = %d, want -1", got)
	}
}

func TestTabIdxByKey(t *testing.T) {
	for i, tab := range Tabs {
		if got := TabIdxByKey(tab.Key); got != i {
			t.Fatalf("TabIdxByKey(%q) = %d, want %d", tab.Key, got, i)
		}
		if tab.Name[tab.KeyPos] != byte(tab.Key) && tab.Name[tab.KeyPos] != byte(tab.Key-32) {
			t.Fatalf("tab %s: KeyPos %d does not point at %q", tab.Name, tab.KeyPos, tab.Key)
		}
	}
	if TabIdxByKey('z') != -1 {
		t.Fatal("unknown key should return -1")
	}
}

func TestBarChartHeight(t *testing.T) {
	values := make([]float64, 100)
	labels := make([]string, 100)
	for i := range values {
		values[i] = float64(10000 - i*100)
		labels[i] = "m"
	}
	labels[0], labels[99] = "Nov 26", "Feb 35"

	out := BarChart(values, labels, "#ffffff", 60, 8)
	lines := strings.Split(out, "\n")
	if len(lines) != 10 { // 8 rows + axis + labels
		t.Fatalf("chart has %d lines, want 10", len(lines))
	}
	for _, line := range lines {
		if w := lipgloss.Width(line); w > 60 {
			t.Fatalf("line wider than 60: %d", w)
		}
	}
}

func TestChartTickStep(t *testing.T) {
	tests := map[float64]float64{10000: 2000, 700: 100, 4: 0.5}
	for in, want := range tests {
		if got := chartTickStep(in); got != want {
			t.Errorf("chartTickStep(%v) = %v, want %v", in, got, want)
		}
	}
}
