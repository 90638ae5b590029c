package currency

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"
)

func drawCents(t *rapid.T, label string) int64 {
	return rapid.Int64Range(-99_999_999_99, 99_999_999_99).Draw(t, label)
}

func TestProperty_RoundingIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := FromCents(drawCents(t, "cents"))

		once := New(c.Float64())
		twice := New(once.Float64())
		if !once.Equal(c) {
			t.Fatalf("New(%v) = %s, want %s", c.Float64(), once, c)
		}
		if !twice.Equal(once) {
			t.Fatalf("rounding twice changed %s to %s", once, twice)
		}
	})
}

func TestProperty_FormatParseRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := FromCents(drawCents(t, "cents"))
		formatted := c.String()

		parsed, err := Parse(formatted)
		if err != nil {
			t.Fatalf("Parse(%q): %v", formatted, err)
		}
		if parsed.String() != formatted {
			t.Fatalf("format(parse(%q)) = %q", formatted, parsed.String())
		}
	})
}

func TestProperty_ParseRoundsHalfAwayFromZero(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		whole := rapid.Int64Range(0, 9_999_999).Draw(t, "whole")
		mils := rapid.Int64Range(0, 999).Draw(t, "mils")
		negative := rapid.Bool().Draw(t, "negative")

		text := fmt.Sprintf("%d.%03d", whole, mils)
		want := whole*100 + (mils+5)/10
		if negative {
			text = "-" + text
			want = -want
		}

		got, err := Parse("$" + text)
		if err != nil {
			t.Fatalf("Parse(%q): %v", text, err)
		}
		if got.Cents() != want {
			t.Fatalf("Parse(%q) = %d cents, want %d", text, got.Cents(), want)
		}
	})
}

func TestProperty_MonthlyInterestDecomposes(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := FromCents(rapid.Int64Range(0, 10_000_000_00).Draw(t, "cents"))
		rate := float64(rapid.IntRange(0, 3000).Draw(t, "bps")) / 100

		share, err := c.PercentOf(rate).Distribute(12)
		if err != nil {
			t.Fatalf("Distribute: %v", err)
		}
		if got := c.Interest(MonthlyRate(rate)); !got.Equal(share) {
			t.Fatalf("Interest(%s, %v%%) = %s, want %s", c, rate, got, share)
		}
	})
}

func TestProperty_AddSubInverse(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := FromCents(drawCents(t, "a"))
		b := FromCents(drawCents(t, "b"))

		if got := a.Add(b).Sub(b); !got.Equal(a) {
			t.Fatalf("(%s + %s) - %s = %s", a, b, b, got)
		}
		if a.Add(b).Cmp(b.Add(a)) != 0 {
			t.Fatalf("addition not commutative for %s, %s", a, b)
		}
	})
}
