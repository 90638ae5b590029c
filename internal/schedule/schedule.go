// Package schedule generates monthly loan amortization schedules.
package schedule

import (
	"fmt"
	"iter"
	"time"

	"github.com/theirongolddev/amort/internal/currency"
)

// Entry is one month of an amortization schedule.
type Entry struct {
	Month               time.Time         // start of the period
	Amount              currency.Currency // balance owed at the start of the period
	InterestAccumulated currency.Currency // interest charged for the period
	InterestRate        float64           // nominal rate, percent
	Payment             currency.Currency // payment applied during the period
}

// Sequence lazily produces schedule entries, one month at a time.
//
// Each month pays the requested amount, or the whole balance when that is
// smaller. A Sequence is forward-only. It ends once the balance owed reaches zero; if
// the payment never covers the interest it never ends, and the consumer must
// stop on its own (see Converges and TakeWhile). A balance that grows past
// currency.MaxAmount also ends it, and Err then reports currency.ErrOverflow.
type Sequence struct {
	payment currency.Currency // requested monthly payment
	start   Entry
	current Entry
	started bool
	done    bool
	err     error
}

// MaxMonths is the longest schedule the CLI and daemon will produce: 100 years.
const MaxMonths = 1200

// Generate starts a schedule at the current time.
func Generate(principal currency.Currency, rate float64, payment currency.Currency) *Sequence {
	return GenerateAt(time.Now(), principal, rate, payment)
}

// GenerateAt starts a schedule whose first period begins at start.
//
// Terms outside the supported range yield an empty sequence whose Err says why.
func GenerateAt(start time.Time, principal currency.Currency, rate float64, payment currency.Currency) *Sequence {
	if err := checkTerms(principal, rate, payment); err != nil {
		return &Sequence{done: true, err: err}
	}
	return &Sequence{
		payment: payment,
		start: Entry{
			Month:               start,
			Amount:              principal,
			InterestAccumulated: principal.Interest(currency.MonthlyRate(rate)),
			InterestRate:        rate,
			Payment:             payment,
		},
	}
}

// Next returns the next entry, or false once the loan is paid off.
// The first call returns the starting entry.
func (s *Sequence) Next() (Entry, bool) {
	if s.done {
		return Entry{}, false
	}
	if !s.started {
		s.started = true
		s.current = s.start
		return s.current, true
	}

	next, ok, err := advance(s.current, s.payment)
	if err != nil {
		s.err = fmt.Errorf("after %s: %w", s.current.Month.Format("2006-01-02"), err)
	}
	if !ok {
		s.done = true
		return Entry{}, false
	}
	s.current = next
	return next, true
}

// Err returns the reason the sequence stopped early, or nil if it ended
// because the loan was paid off or has not ended yet.
func (s *Sequence) Err() error {
	return s.err
}

func checkTerms(principal currency.Currency, rate float64, payment currency.Currency) error {
	if err := currency.CheckRate(rate); err != nil {
		return err
	}
	if !principal.InRange() {
		return fmt.Errorf("principal %s: %w", principal, currency.ErrOverflow)
	}
	if !payment.InRange() {
		return fmt.Errorf("payment %s: %w", payment, currency.ErrOverflow)
	}
	return nil
}

// All returns the remaining entries as an iterator. Ranging over it advances s.
func (s *Sequence) All() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for {
			e, ok := s.Next()
			if !ok || !yield(e) {
				return
			}
		}
	}
}

// advance derives the month after cur. It reports false when the balance
// carried into that month is zero or below, or with an error when it grows
// past currency.MaxAmount. A balance smaller than the requested payment is
// paid off exactly.
func advance(cur Entry, requested currency.Currency) (Entry, bool, error) {
	// Every term is within MaxAmount, or a bounded multiple of it for the
	// interest, so these cannot overflow int64.
	amount := cur.Amount.Sub(cur.Payment).Add(cur.InterestAccumulated)
	if amount.Sign() <= 0 {
		return Entry{}, false, nil
	}
	if !amount.InRange() {
		return Entry{}, false, fmt.Errorf("balance %s: %w", amount, currency.ErrOverflow)
	}

	// Interest for the new period accrues on the balance before this payment.
	interest := cur.Amount.Interest(currency.MonthlyRate(cur.InterestRate))

	payment := requested
	if amount.LessThan(requested) {
		payment = amount
	}

	return Entry{
		Month:               AddMonth(cur.Month, 1),
		Amount:              amount,
		InterestAccumulated: interest,
		InterestRate:        cur.InterestRate,
		Payment:             payment,
	}, true, nil
}

// Converges reports whether a schedule with these terms is known to pay off.
// The payment must be positive and beat the first month's interest, and the
// rate must stay below 100 percent so the trailing interest shrinks to nothing.
func Converges(principal currency.Currency, rate float64, payment currency.Currency) bool {
	return checkTerms(principal, rate, payment) == nil &&
		rate < 100 &&
		payment.Sign() > 0 &&
		payment.GreaterThan(principal.Interest(currency.MonthlyRate(rate)))
}
