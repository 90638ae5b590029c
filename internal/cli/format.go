// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
)

// DefaultDateLayout renders months in long form, e.g. "March 05, 2025".
const DefaultDateLayout = "January 02, 2006"

// FormatMonth renders the start date of a schedule period.
// An empty layout falls back to DefaultDateLayout.
func FormatMonth(t time.Time, layout string) string {
	if layout == "" {
		layout = DefaultDateLayout
	}
	return t.Format(layout)
}

// FormatRate renders a percentage rate with as few digits as needed.
// e.g., 5 -> "5", 6.25 -> "6.25"
func FormatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatTerm renders a month count as years and months.
// e.g., 1 -> "1 month", 14 -> "1y 2m", 24 -> "2y"
func FormatTerm(months int) string {
	if months <= 0 {
		return "0 months"
	}
	if months < 12 {
		if months == 1 {
			return "1 month"
		}
		return fmt.Sprintf("%d months", months)
	}
	years, rest := months/12, months%12
	if rest == 0 {
		return fmt.Sprintf("%dy", years)
	}
	return fmt.Sprintf("%dy %dm", years, rest)
}
