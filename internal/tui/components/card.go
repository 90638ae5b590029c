// Package components provides reusable widgets for the amort schedule browser.
package components

import (
	"github.com/theirongolddev/amort/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Metric is one labelled value shown in a card.
type Metric struct {
	Label string
	Value string
	Note  string // optional muted line under the value

	// Optional colors; zero values fall back to the theme's text colors.
	ValueColor lipgloss.Color
	NoteColor  lipgloss.Color
}

// LayoutRow distributes totalWidth into n widths that sum to exactly totalWidth.
// First items absorb the remainder from integer division.
func LayoutRow(totalWidth, n int) []int {
	if n <= 0 {
		return nil
	}
	base := totalWidth / n
	remainder := totalWidth % n
	widths := make([]int, n)
	for i := range widths {
		widths[i] = base
		if i < remainder {
			widths[i]++
		}
	}
	return widths
}

// MetricCard renders a bordered card. outerWidth includes the border.
func MetricCard(m Metric, outerWidth int) string {
	return metricCard(m, outerWidth, 0)
}

func metricContent(m Metric) string {
	t := theme.Active
	valueColor, noteColor := t.TextPrimary, t.TextDim
	if m.ValueColor != "" {
		valueColor = m.ValueColor
	}
	if m.NoteColor != "" {
		noteColor = m.NoteColor
	}

	content := lipgloss.NewStyle().Foreground(t.TextMuted).Render(m.Label) + "\n" +
		lipgloss.NewStyle().Foreground(valueColor).Bold(true).Render(m.Value)
	if m.Note != "" {
		content += "\n" + lipgloss.NewStyle().Foreground(noteColor).Render(m.Note)
	}
	return content
}

// metricCard renders a card whose content area is at least height lines tall.
func metricCard(m Metric, outerWidth, height int) string {
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Active.Border).
		Background(theme.Active.Surface).
		Width(max(outerWidth-2, 10)).
		Padding(0, 1)
	if height > 0 {
		cardStyle = cardStyle.Height(height)
	}
	return cardStyle.Render(metricContent(m))
}

// MetricCardRow renders cards side by side, summing to exactly totalWidth.
// Every card is stretched to the height of the tallest one.
func MetricCardRow(metrics []Metric, totalWidth int) string {
	if len(metrics) == 0 {
		return ""
	}

	height := 0
	for _, m := range metrics {
		height = max(height, lipgloss.Height(metricContent(m)))
	}

	widths := LayoutRow(totalWidth, len(metrics))
	rendered := make([]string, len(metrics))
	for i, m := range metrics {
		rendered[i] = metricCard(m, widths[i], height)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
