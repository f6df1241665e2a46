// Package components provides reusable UI components for the TUI.
package components

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/styles"
)

// HoursPerDay is the width of the hourly x-axis.
const HoursPerDay = 24

// Series is one labeled line of a multi-series chart.
type Series struct {
	Label  string
	Color  lipgloss.Color
	Values []float64
}

// Bar is one row of a horizontal bar chart.
type Bar struct {
	Label   string
	Value   float64
	Display string
	Color   lipgloss.Color
}

// HourlySeries spreads values over a 24-slot axis. Hours without a value stay NaN
// so the chart shows a gap instead of a fabricated zero.
func HourlySeries(hours []int, values []float64) []float64 {
	out := make([]float64, HoursPerDay)
	for i := range out {
		out[i] = math.NaN()
	}
	for i, h := range hours {
		if h >= 0 && h < HoursPerDay && i < len(values) {
			out[h] = values[i]
		}
	}
	return out
}

func hasValue(data []float64) bool {
	for _, v := range data {
		if !math.IsNaN(v) {
			return true
		}
	}
	return false
}

func clampChart(width, height int) (int, int) {
	return max(width, 20), max(height, 3)
}

// RenderLineChart creates a single-series ASCII line chart.
func RenderLineChart(data []float64, width, height int, caption string) string {
	if !hasValue(data) {
		return styles.HelpStyle.Render("No data available")
	}
	width, height = clampChart(width, height)

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(0),
		asciigraph.LowerBound(0),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(ansiColor(styles.Primary)),
	)
}

// RenderMultiLineChart plots several series on shared axes, each in its own color.
func RenderMultiLineChart(series []Series, width, height int, caption string) string {
	var data [][]float64
	var colors []asciigraph.AnsiColor
	for _, s := range series {
		if !hasValue(s.Values) {
			continue
		}
		data = append(data, s.Values)
		colors = append(colors, ansiColor(s.Color))
	}
	if len(data) == 0 {
		return styles.HelpStyle.Render("No data available")
	}
	width, height = clampChart(width, height)

	// Shorter series are padded with gaps.
	maxLen := 0
	for _, d := range data {
		maxLen = max(maxLen, len(d))
	}
	for i, d := range data {
		for len(d) < maxLen {
			d = append(d, math.NaN())
		}
		data[i] = d
	}

	return asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(0),
		asciigraph.LowerBound(0),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(colors...),
	)
}

// ansiColor maps a 256-color lipgloss color onto asciigraph's palette.
func ansiColor(c lipgloss.Color) asciigraph.AnsiColor {
	n, err := strconv.Atoi(string(c))
	if err != nil || n < 0 || n > 255 {
		return asciigraph.Default
	}
	return asciigraph.AnsiColor(n)
}

// RenderBarChart creates a horizontal bar chart scaled to the largest value.
func RenderBarChart(bars []Bar, width int) string {
	if len(bars) == 0 {
		return ""
	}

	maxVal := 0.0
	maxLabelLen := 0
	maxDisplayLen := 0
	for _, b := range bars {
		maxVal = math.Max(maxVal, b.Value)
		maxLabelLen = max(maxLabelLen, lipgloss.Width(b.Label))
		maxDisplayLen = max(maxDisplayLen, lipgloss.Width(b.Display))
	}
	if maxVal == 0 {
		maxVal = 1
	}

	barWidth := max(width-maxLabelLen-maxDisplayLen-4, 10)

	lines := make([]string, 0, len(bars))
	for i, b := range bars {
		barLen := max(int((b.Value/maxVal)*float64(barWidth)), 0)

		color := b.Color
		if color == "" {
			color = styles.Palette[i%len(styles.Palette)]
		}
		bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", barLen))

		lines = append(lines, fmt.Sprintf("%*s │%s %s", maxLabelLen, b.Label, bar, b.Display))
	}

	return strings.Join(lines, "\n")
}

// HeatmapBlocks are Unicode block characters for heatmaps (low to high intensity).
var HeatmapBlocks = []rune{'░', '▒', '▓', '█'}

// RenderHourlyHeatmap renders a 24-hour intensity strip. NaN hours are blank.
func RenderHourlyHeatmap(values []float64) string {
	if len(values) != HoursPerDay {
		padded := make([]float64, HoursPerDay)
		for i := range padded {
			padded[i] = math.NaN()
		}
		copy(padded, values)
		values = padded
	}

	maxVal := 0.0
	for _, v := range values {
		if !math.IsNaN(v) {
			maxVal = math.Max(maxVal, v)
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	var result strings.Builder
	result.WriteString("00 ")

	for i, v := range values {
		if math.IsNaN(v) {
			result.WriteString(" ")
		} else {
			intensity := min(max(int((v/maxVal)*float64(len(HeatmapBlocks)-1)), 0), len(HeatmapBlocks)-1)

			var style lipgloss.Style
			switch intensity {
			case 0:
				style = lipgloss.NewStyle().Foreground(styles.Subtle)
			case 1:
				style = lipgloss.NewStyle().Foreground(styles.Success)
			case 2:
				style = lipgloss.NewStyle().Foreground(styles.Warning)
			case 3:
				style = lipgloss.NewStyle().Foreground(styles.Error)
			}
			result.WriteString(style.Render(string(HeatmapBlocks[intensity])))
		}

		// Add gap at noon for readability
		if i == 11 {
			result.WriteString(" ")
		}
	}

	result.WriteString(" 23")
	return result.String()
}

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RenderSparkline creates a compact inline sparkline. NaN values render as spaces.
func RenderSparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	maxVal := 0.0
	for _, v := range values {
		if !math.IsNaN(v) {
			maxVal = math.Max(maxVal, v)
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	// Sample values to fit width
	var result strings.Builder
	step := math.Max(float64(len(values))/float64(width), 1)

	for i := 0; i < width && int(float64(i)*step) < len(values); i++ {
		val := values[int(float64(i)*step)]
		if math.IsNaN(val) {
			result.WriteRune(' ')
			continue
		}
		normalized := min(max(int((val/maxVal)*float64(len(sparkChars)-1)), 0), len(sparkChars)-1)
		result.WriteRune(sparkChars[normalized])
	}

	return result.String()
}

// RenderLegend creates a chart legend.
func RenderLegend(items []LegendItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		colorBox := lipgloss.NewStyle().Foreground(item.Color).Render("■")
		parts = append(parts, fmt.Sprintf("%s %s", colorBox, item.Label))
	}
	return strings.Join(parts, "  ")
}

// LegendItem represents a single legend entry.
type LegendItem struct {
	Label string
	Color lipgloss.Color
}

// LegendFor builds legend entries for series.
func LegendFor(series []Series) []LegendItem {
	items := make([]LegendItem, len(series))
	for i, s := range series {
		items[i] = LegendItem{Label: s.Label, Color: s.Color}
	}
	return items
}
