package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"5", "$5.00"},
		{"1234.5", "$1,234.50"},
		{"1234567.891", "$1,234,567.89"},
		{"-42.125", "-$42.13"},
	}
	for _, tt := range tests {
		if got := FormatMoney(decimal.RequireFromString(tt.in)); got != tt.want {
			t.Errorf("FormatMoney(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatMoneyShort(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"87.5", "$87.50"},
		{"1234", "$1.2K"},
		{"2500000", "$2.5M"},
	}
	for _, tt := range tests {
		if got := FormatMoneyShort(decimal.RequireFromString(tt.in)); got != tt.want {
			t.Errorf("FormatMoneyShort(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatRate(t *testing.T) {
	if got := FormatRate(decimal.RequireFromString("0.0725")); got != "7.25%" {
		t.Errorf("FormatRate = %q", got)
	}
}

func TestFormatMonths(t *testing.T) {
	tests := map[int]string{0: "0m", 5: "5m", 12: "1y", 27: "2y 3m"}
	for in, want := range tests {
		if got := FormatMonths(in); got != want {
			t.Errorf("FormatMonths(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := map[int64]string{0: "0", 999: "999", 1000: "1,000", 1234567: "1,234,567", -4200: "-4,200"}
	for in, want := range tests {
		if got := FormatNumber(in); got != want {
			t.Errorf("FormatNumber(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatSavings(t *testing.T) {
	d := decimal.RequireFromString
	if got := FormatSavings(d("900"), d("1000")); got != "-$100.00" {
		t.Errorf("savings = %q", got)
	}
	if got := FormatSavings(d("1000"), d("1000")); got != "-" {
		t.Errorf("equal = %q", got)
	}
}

func TestParseMonth(t *testing.T) {
	got, err := ParseMonth("2026-11")
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(time.Date(2026, time.November, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("ParseMonth = %v", got)
	}
	if FormatMonth(got) != "Nov 2026" {
		t.Errorf("FormatMonth = %q", FormatMonth(got))
	}
	if _, err := ParseMonth("11/2026"); err == nil {
		t.Error("expected error for bad month")
	}
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(Table{
		Title:   "Loans",
		Headers: []string{"Name", "Balance"},
		Rows:    [][]string{{"car", "$8,000.00"}, {SeparatorRow}, {"Total", "$8,000.00"}},
	})
	if !strings.Contains(out, "car") || !strings.Contains(out, "Total") {
		t.Fatalf("table missing rows:\n%s", out)
	}
	if strings.Count(out, "\n") != 8 {
		t.Fatalf("table has %d lines, want 8:\n%s", strings.Count(out, "\n"), out)
	}
	if RenderTable(Table{}) != "" {
		t.Fatal("empty table should render nothing")
	}
}

func TestRenderSparkline(t *testing.T) {
	if got := RenderSparkline([]float64{0, 1}); got != "▁█" {
		t.Errorf("sparkline = %q", got)
	}
}
