package schedule

import (
	"iter"
	"time"

	"github.com/theirongolddev/amort/internal/currency"
)

// TakeWhile yields entries from seq until keep returns false.
func TakeWhile(seq iter.Seq[Entry], keep func(Entry) bool) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for e := range seq {
			if !keep(e) || !yield(e) {
				return
			}
		}
	}
}

// Limit yields at most n entries from seq. n <= 0 means no limit.
func Limit(seq iter.Seq[Entry], n int) iter.Seq[Entry] {
	if n <= 0 {
		return seq
	}
	return func(yield func(Entry) bool) {
		i := 0
		for e := range seq {
			if !yield(e) {
				return
			}
			i++
			if i >= n {
				return
			}
		}
	}
}

// Above keeps entries whose balance is strictly greater than floor.
func Above(floor currency.Currency) func(Entry) bool {
	return func(e Entry) bool {
		return e.Amount.GreaterThan(floor)
	}
}

// Collect drains seq into a slice.
func Collect(seq iter.Seq[Entry]) []Entry {
	var out []Entry
	for e := range seq {
		out = append(out, e)
	}
	return out
}

// Summary holds totals over a run of schedule entries.
type Summary struct {
	Months        int
	FirstMonth    time.Time
	LastMonth     time.Time
	Principal     currency.Currency // balance of the first entry
	TotalPaid     currency.Currency
	TotalInterest currency.Currency
	FinalPayment  currency.Currency
	PaidOff       bool // no balance carries past the last entry
}

// Summarize totals payments and interest over entries.
func Summarize(entries []Entry) Summary {
	var s Summary
	if len(entries) == 0 {
		return s
	}

	first, last := entries[0], entries[len(entries)-1]
	s.Months = len(entries)
	s.FirstMonth = first.Month
	s.LastMonth = last.Month
	s.Principal = first.Amount
	s.FinalPayment = last.Payment

	for _, e := range entries {
		s.TotalPaid = s.TotalPaid.Add(e.Payment)
		s.TotalInterest = s.TotalInterest.Add(e.InterestAccumulated)
	}

	s.PaidOff = !last.Amount.Sub(last.Payment).Add(last.InterestAccumulated).GreaterThan(currency.Zero)
	return s
}
