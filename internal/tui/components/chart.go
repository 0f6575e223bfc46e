package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/debtburn/internal/tui/theme"
)

var blocks = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	peak := peakOf(values)

	var buf strings.Builder
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-2))
		buf.WriteRune(blocks[1+min(max(idx, 0), len(blocks)-2)])
	}
	return lipgloss.NewStyle().Foreground(color).Render(buf.String())
}

// BarChart renders values as vertical bars with a dollar y-axis. When there
// are more values than columns, values are sampled evenly and the last value
// is always kept.
func BarChart(values []float64, labels []string, color lipgloss.Color, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(values, color)
	}
	t := theme.Active

	step := chartTickStep(peakOf(values))
	ceiling := math.Ceil(peakOf(values)/step) * step
	labelW := max(len(formatChartLabel(ceiling))+1, 5)

	cols := width - labelW - 1
	values, labels = sample(values, labels, cols)
	barW := max(min(cols/len(values), 4), 1)

	axis := lipgloss.NewStyle().Foreground(t.TextDim)
	bar := lipgloss.NewStyle().Foreground(color)

	var b strings.Builder
	for row := height; row >= 1; row-- {
		top := ceiling * float64(row) / float64(height)
		bottom := ceiling * float64(row-1) / float64(height)

		label := ""
		if row == height || row == (height+1)/2 {
			label = formatChartLabel(top)
		}
		b.WriteString(axis.Render(fmt.Sprintf("%*s│", labelW, label)))

		for _, v := range values {
			switch {
			case v >= top:
				b.WriteString(bar.Render(strings.Repeat("█", barW)))
			case v > bottom:
				idx := int((v - bottom) / (top - bottom) * 8)
				b.WriteString(bar.Render(strings.Repeat(string(blocks[min(max(idx, 1), 8)]), barW)))
			default:
				b.WriteString(strings.Repeat(" ", barW))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(axis.Render(fmt.Sprintf("%*s└%s", labelW, "$0", strings.Repeat("─", len(values)*barW))))
	if len(labels) == len(values) && len(labels) > 0 {
		first, last := labels[0], labels[len(labels)-1]
		gap := len(values)*barW - len(first) - len(last)
		if gap > 0 {
			b.WriteString("\n")
			b.WriteString(axis.Render(strings.Repeat(" ", labelW+1) + first + strings.Repeat(" ", gap) + last))
		}
	}
	return b.String()
}

func sample(values []float64, labels []string, n int) ([]float64, []string) {
	if n <= 0 || len(values) <= n {
		return values, labels
	}
	outV := make([]float64, n)
	var outL []string
	if len(labels) == len(values) {
		outL = make([]string, n)
	}
	for i := range outV {
		src := i * (len(values) - 1) / max(n-1, 1)
		outV[i] = values[src]
		if outL != nil {
			outL[i] = labels[src]
		}
	}
	return outV, outL
}

func peakOf(values []float64) float64 {
	peak := 0.0
	for _, v := range values {
		peak = max(peak, v)
	}
	if peak == 0 {
		return 1
	}
	return peak
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	base := math.Pow(10, math.Floor(math.Log10(rough)))

	switch frac := rough / base; {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatChartLabel(v float64) string {
	switch {
	case v >= 1e6:
		return fmt.Sprintf("$%.1fM", v/1e6)
	case v >= 1e3:
		if v == math.Trunc(v/1e3)*1e3 {
			return fmt.Sprintf("$%.0fk", v/1e3)
		}
		return fmt.Sprintf("$%.1fk", v/1e3)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}
