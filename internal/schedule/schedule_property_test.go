package schedule

import (
	"testing"
	"time"

	"github.com/theirongolddev/amort/internal/currency"
	"pgregory.net/rapid"
)

var propertyStart = time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)

// drawConvergentTerms picks terms that pay off within roughly a thousand months.
func drawConvergentTerms(t *rapid.T) (currency.Currency, float64, currency.Currency) {
	principal := currency.FromCents(rapid.Int64Range(1, 100_000_000).Draw(t, "principal"))
	rate := float64(rapid.IntRange(0, 3000).Draw(t, "bps")) / 100

	interest := principal.Interest(currency.MonthlyRate(rate))
	minStep := principal.Cents()/1000 + 1
	extra := rapid.Int64Range(minStep, principal.Cents()+minStep).Draw(t, "extra")
	payment := interest.Add(currency.FromCents(extra))
	return principal, rate, payment
}

func TestProperty_ConvergentSchedulesPayOff(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		principal, rate, payment := drawConvergentTerms(t)
		if !Converges(principal, rate, payment) {
			t.Fatalf("Converges(%s, %v, %s) = false", principal, rate, payment)
		}

		seq := GenerateAt(propertyStart, principal, rate, payment)
		n := 0
		for e := range seq.All() {
			if e.Amount.Sign() <= 0 {
				t.Fatalf("entry %d has non-positive balance %s", n, e.Amount)
			}
			n++
			if n > 5000 {
				t.Fatalf("schedule for %s at %v%% paying %s did not end", principal, rate, payment)
			}
		}
	})
}

func TestProperty_PaymentIsCappedToBalance(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		principal, rate, payment := drawConvergentTerms(t)
		entries := Collect(GenerateAt(propertyStart, principal, rate, payment).All())

		for i := 1; i < len(entries); i++ {
			cur := entries[i]
			want := payment
			if cur.Amount.LessThan(payment) {
				want = cur.Amount
			}
			if !cur.Payment.Equal(want) {
				t.Fatalf("entry %d: payment %s on balance %s, want %s", i, cur.Payment, cur.Amount, want)
			}
			if cur.Payment.GreaterThan(cur.Amount) {
				t.Fatalf("entry %d: payment %s exceeds balance %s", i, cur.Payment, cur.Amount)
			}
		}
	})
}

func TestProperty_ZeroRateDecreasesByPayment(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		principal := currency.FromCents(rapid.Int64Range(1, 10_000_000).Draw(t, "principal"))
		payment := currency.FromCents(rapid.Int64Range(principal.Cents()/500+1, principal.Cents()+1).Draw(t, "payment"))

		entries := Collect(GenerateAt(propertyStart, principal, 0, payment).All())
		for i := 1; i < len(entries); i++ {
			prev, cur := entries[i-1], entries[i]
			if !cur.Amount.LessThan(prev.Amount) {
				t.Fatalf("entry %d: balance %s did not drop below %s", i, cur.Amount, prev.Amount)
			}
			if want := prev.Amount.Sub(prev.Payment); !cur.Amount.Equal(want) {
				t.Fatalf("entry %d: balance %s, want %s", i, cur.Amount, want)
			}
		}
		last := entries[len(entries)-1]
		if owed := last.Amount.Sub(last.Payment); owed.Sign() > 0 {
			t.Fatalf("schedule ended with %s still owed", owed)
		}
	})
}

func TestProperty_MonthsAdvanceOneAtATime(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		principal, rate, payment := drawConvergentTerms(t)
		entries := Collect(Limit(GenerateAt(propertyStart, principal, rate, payment).All(), 48))

		for i := 1; i < len(entries); i++ {
			prev, cur := entries[i-1].Month, entries[i].Month
			gap := (cur.Year()*12 + int(cur.Month())) - (prev.Year()*12 + int(prev.Month()))
			if gap != 1 {
				t.Fatalf("entry %d: month moved from %s to %s", i, prev.Format("2006-01"), cur.Format("2006-01"))
			}
		}
	})
}
