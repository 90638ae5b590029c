package cli

import (
	"github.com/theirongolddev/amort/internal/schedule"
)

// ScheduleHeaders are the column titles of an amortization table.
var ScheduleHeaders = []string{"Month", "Amount", "Interest Accumulated", "Interest Rate", "Payment"}

// ScheduleRow formats one entry as table cells.
func ScheduleRow(e schedule.Entry, layout string) []string {
	return []string{
		FormatMonth(e.Month, layout),
		e.Amount.String(),
		e.InterestAccumulated.String(),
		FormatRate(e.InterestRate),
		e.Payment.String(),
	}
}

// ScheduleTable builds the amortization table for entries.
func ScheduleTable(entries []schedule.Entry, layout string) Table {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, ScheduleRow(e, layout))
	}
	return Table{Headers: ScheduleHeaders, Rows: rows}
}

// SummaryTable builds a metric/value table from schedule totals.
func SummaryTable(s schedule.Summary, layout string) Table {
	rows := [][]string{
		{"Principal", s.Principal.String()},
		{"Periods", FormatNumber(int64(s.Months))},
		{"Term", FormatTerm(s.Months)},
		{Separator},
		{"Total Paid", s.TotalPaid.String()},
		{"Total Interest", s.TotalInterest.String()},
		{"Final Payment", s.FinalPayment.String()},
		{Separator},
		{"First Month", FormatMonth(s.FirstMonth, layout)},
		{"Last Month", FormatMonth(s.LastMonth, layout)},
	}
	if s.TotalPaid.Sign() > 0 {
		share := s.TotalInterest.Float64() / s.TotalPaid.Float64()
		rows = append(rows, []string{"Interest Share", FormatPercent(share)})
	}
	return Table{Headers: []string{"Metric", "Value"}, Rows: rows}
}
