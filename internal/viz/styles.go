package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	Panel = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2)

	Title = lipgloss.NewStyle().Bold(true)

	Subtle = lipgloss.NewStyle()

	StatusRunning = lipgloss.NewStyle().Bold(true)
	StatusPaused  = lipgloss.NewStyle().Bold(true)
	StatusDone    = lipgloss.NewStyle().Bold(true)

	MetricLabel = lipgloss.NewStyle().Width(12)
	MetricValue = lipgloss.NewStyle().Bold(true)

	KeyHint = lipgloss.NewStyle().Italic(true)

	SparkHigh = lipgloss.NewStyle()
	SparkMid  = lipgloss.NewStyle()
	SparkLow  = lipgloss.NewStyle()
)

func init() { applyTheme(CurrentTheme) }

func applyTheme(t Theme) {
	Panel = Panel.BorderForeground(t.Muted)
	Title = Title.Foreground(t.Secondary)
	Subtle = Subtle.Foreground(t.Muted)
	StatusRunning = StatusRunning.Foreground(t.Good)
	StatusPaused = StatusPaused.Foreground(t.Warning)
	StatusDone = StatusDone.Foreground(t.Accent)
	MetricLabel = MetricLabel.Foreground(t.Muted)
	MetricValue = MetricValue.Foreground(t.Primary)
	KeyHint = KeyHint.Foreground(t.Muted)
	SparkHigh = SparkHigh.Foreground(t.Bad)
	SparkMid = SparkMid.Foreground(t.Warning)
	SparkLow = SparkLow.Foreground(t.Good)
}

// Metric renders one aligned label/value line.
func Metric(label, format string, args ...any) string {
	return MetricLabel.Render(label) + MetricValue.Render(fmt.Sprintf(format, args...))
}

func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	filled = max(0, min(filled, width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	if percent >= 1 {
		return StatusDone.Render(bar)
	}
	return StatusRunning.Render(bar)
}

// SparklineChart renders the last width values; high energies show red.
func SparklineChart(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	var result strings.Builder
	for _, v := range values {
		norm := (v - lo) / span
		c := string(chars[int(norm*float64(len(chars)-1))])
		switch {
		case norm > 0.7:
			result.WriteString(SparkHigh.Render(c))
		case norm > 0.3:
			result.WriteString(SparkMid.Render(c))
		default:
			result.WriteString(SparkLow.Render(c))
		}
	}
	return result.String()
}

func Separator(width int) string {
	return Subtle.Render(strings.Repeat("─", width))
}
