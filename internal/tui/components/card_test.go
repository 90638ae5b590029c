package components

import (
	"strings"
	"testing"

	"github.com/theirongolddev/amort/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func TestLayoutRow(t *testing.T) {
	widths := LayoutRow(100, 3)
	if len(widths) != 3 {
		t.Fatalf("LayoutRow returned %d widths", len(widths))
	}
	sum := 0
	for _, w := range widths {
		sum += w
	}
	if sum != 100 {
		t.Fatalf("widths sum to %d, want 100", sum)
	}
	if widths[0] != 34 || widths[2] != 33 {
		t.Fatalf("widths = %v, want remainder on the first items", widths)
	}
	if LayoutRow(10, 0) != nil {
		t.Fatal("LayoutRow(n=0) should be nil")
	}
}

func TestMetricCardRowEqualHeights(t *testing.T) {
	theme.SetActive("flexoki-dark")

	row := MetricCardRow([]Metric{
		{Label: "Balance", Value: "$1000.00"},
		{Label: "Interest", Value: "$32.62", Note: "3.2% of payments"},
	}, 60)

	lines := strings.Split(row, "\n")
	// border + label + value + note + border
	if len(lines) != 5 {
		t.Fatalf("row has %d lines, want 5:\n%s", len(lines), row)
	}
	if w := lipgloss.Width(row); w != 60 {
		t.Fatalf("row width = %d, want 60", w)
	}
	if !strings.Contains(row, "$32.62") || !strings.Contains(row, "Balance") {
		t.Fatalf("row missing content:\n%s", row)
	}
}

func TestMetricCardRowEmpty(t *testing.T) {
	if got := MetricCardRow(nil, 80); got != "" {
		t.Fatalf("MetricCardRow(nil) = %q", got)
	}
}
