package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"powderteam/oaiprofile/internal/tui/styles"
)

// chartHeight is the fixed height of the duration plot.
const chartHeight = 6

// DurationChart plots render durations in milliseconds, oldest first, with
// a label header and a last/min/max summary. Empty data renders a
// "no data" line.
func DurationChart(label string, durationsMs []float64, width int) string {
	if len(durationsMs) == 0 {
		return styles.MutedText.Render(label + ": no data")
	}

	// Reserve room for the Y-axis labels.
	plotWidth := width - 9
	if plotWidth < 10 {
		plotWidth = 10
	}

	data := durationsMs
	if len(data) == 1 {
		// asciigraph needs two points to draw a line.
		data = []float64{data[0], data[0]}
	}

	chart := asciigraph.Plot(data,
		asciigraph.Height(chartHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Precision(0),
		asciigraph.SeriesColors(asciigraph.DodgerBlue),
		asciigraph.LabelColor(asciigraph.Default),
	)

	last := durationsMs[len(durationsMs)-1]
	lo, hi := minMax(durationsMs)
	summary := styles.MutedText.Render(fmt.Sprintf("  last: %s  min: %s  max: %s  renders: %d",
		formatMs(last), formatMs(lo), formatMs(hi), len(durationsMs)))

	return lipgloss.JoinVertical(lipgloss.Left, styles.Label.Render(label), chart, summary)
}

func minMax(data []float64) (float64, float64) {
	lo, hi := data[0], data[0]
	for _, v := range data[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}

func formatMs(v float64) string {
	if v >= 1000 {
		return fmt.Sprintf("%.1fs", v/1000)
	}
	return fmt.Sprintf("%.0fms", v)
}
