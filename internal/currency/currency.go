// Package currency provides a fixed-point monetary value with two decimal places.
package currency

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is an amount of money held as a whole number of cents.
//
// Every operation that derives a new value rounds to the nearest cent, half
// away from zero, on the exact decimal result.
type Currency struct {
	cents int64
}

// Zero is the zero amount.
var Zero = Currency{}

// maxCents is the largest magnitude Parse and New accept: one trillion dollars.
// Monthly interest at MaxRate on it stays far inside int64.
const maxCents = 100_000_000_000_000

// MaxAmount is the largest amount Parse and New accept. Its negation is the smallest.
var MaxAmount = Currency{cents: maxCents}

var (
	minCentsDecimal = decimal.NewFromInt(math.MinInt64)
	maxCentsDecimal = decimal.NewFromInt(math.MaxInt64)
)

// New converts a dollar amount to Currency, rounding to the nearest cent.
// It panics if v is NaN, infinite, or beyond MaxAmount.
func New(v float64) Currency {
	c := mustFromDecimal(decimal.NewFromFloat(v))
	if !c.InRange() {
		panic(fmt.Errorf("currency: new %v: %w", v, ErrOverflow))
	}
	return c
}

// FromCents builds a Currency from a count of cents.
func FromCents(cents int64) Currency {
	return Currency{cents: cents}
}

// Cents returns the amount in cents.
func (c Currency) Cents() int64 {
	return c.cents
}

// Float64 returns the amount in dollars. The result may carry binary
// representation error and is meant for display math only.
func (c Currency) Float64() float64 {
	return c.decimal().InexactFloat64()
}

func (c Currency) decimal() decimal.Decimal {
	return decimal.New(c.cents, -2)
}

// fromDecimal rounds a dollar amount to whole cents. It fails with
// ErrOverflow when the cent count does not fit in an int64.
func fromDecimal(d decimal.Decimal) (Currency, error) {
	cents := d.Shift(2).Round(0)
	if cents.LessThan(minCentsDecimal) || cents.GreaterThan(maxCentsDecimal) {
		return Zero, ErrOverflow
	}
	return Currency{cents: cents.IntPart()}, nil
}

func mustFromDecimal(d decimal.Decimal) Currency {
	c, err := fromDecimal(d)
	if err != nil {
		panic(fmt.Errorf("currency: %s: %w", d, err))
	}
	return c
}

// InRange reports whether c lies within ±MaxAmount.
func (c Currency) InRange() bool {
	return c.cents >= -maxCents && c.cents <= maxCents
}

// PercentOf returns pct percent of c. It panics if pct is not finite or the
// result overflows; amounts within MaxAmount and rates accepted by CheckRate
// never do.
func (c Currency) PercentOf(pct float64) Currency {
	return mustFromDecimal(c.decimal().Mul(decimal.NewFromFloat(pct)).Shift(-2))
}

// Distribute splits c into count equal shares and returns one share.
func (c Currency) Distribute(count int) (Currency, error) {
	if count <= 0 {
		return Zero, fmt.Errorf("distribute %s into %d parts: %w", c, count, ErrDivideByZero)
	}
	return fromDecimal(c.decimal().Div(decimal.NewFromInt(int64(count))))
}

// Interest returns the charge c accrues for one period under i.
func (c Currency) Interest(i Interest) Currency {
	switch i.Compounding {
	case Monthly:
		// Round after taking the percentage and again after splitting it.
		share, _ := c.PercentOf(i.Rate).Distribute(monthsPerYear)
		return share
	default:
		panic(fmt.Sprintf("currency: unknown compounding %d", int(i.Compounding)))
	}
}

// CheckedAdd returns c + o, or ErrOverflow if the sum does not fit.
func (c Currency) CheckedAdd(o Currency) (Currency, error) {
	sum := c.cents + o.cents
	if (sum > c.cents) != (o.cents > 0) {
		return Zero, fmt.Errorf("add %s to %s: %w", o, c, ErrOverflow)
	}
	return Currency{cents: sum}, nil
}

// CheckedSub returns c - o, or ErrOverflow if the difference does not fit.
func (c Currency) CheckedSub(o Currency) (Currency, error) {
	diff := c.cents - o.cents
	if (diff < c.cents) != (o.cents > 0) {
		return Zero, fmt.Errorf("subtract %s from %s: %w", o, c, ErrOverflow)
	}
	return Currency{cents: diff}, nil
}

// Add returns c + o. It panics on overflow; use CheckedAdd for untrusted values.
func (c Currency) Add(o Currency) Currency {
	sum, err := c.CheckedAdd(o)
	if err != nil {
		panic(err)
	}
	return sum
}

// Sub returns c - o. It panics on overflow; use CheckedSub for untrusted values.
func (c Currency) Sub(o Currency) Currency {
	diff, err := c.CheckedSub(o)
	if err != nil {
		panic(err)
	}
	return diff
}

// Mul returns c * o, rounded to the cent. It panics on overflow.
func (c Currency) Mul(o Currency) Currency {
	return mustFromDecimal(c.decimal().Mul(o.decimal()))
}

// Div returns c / o, rounded to the cent.
func (c Currency) Div(o Currency) (Currency, error) {
	if o.cents == 0 {
		return Zero, fmt.Errorf("divide %s by %s: %w", c, o, ErrDivideByZero)
	}
	q, err := fromDecimal(c.decimal().Div(o.decimal()))
	if err != nil {
		return Zero, fmt.Errorf("divide %s by %s: %w", c, o, err)
	}
	return q, nil
}

// Cmp returns -1, 0 or +1 as c is less than, equal to or greater than o.
func (c Currency) Cmp(o Currency) int {
	switch {
	case c.cents < o.cents:
		return -1
	case c.cents > o.cents:
		return 1
	default:
		return 0
	}
}

// LessThan reports whether c < o.
func (c Currency) LessThan(o Currency) bool { return c.cents < o.cents }

// GreaterThan reports whether c > o.
func (c Currency) GreaterThan(o Currency) bool { return c.cents > o.cents }

// Equal reports whether c == o.
func (c Currency) Equal(o Currency) bool { return c.cents == o.cents }

// IsZero reports whether c is exactly zero.
func (c Currency) IsZero() bool { return c.cents == 0 }

// Sign returns -1, 0 or +1 depending on the sign of c.
func (c Currency) Sign() int { return c.Cmp(Zero) }

// String renders c as "$" followed by exactly two decimals, e.g. "$1234.50".
func (c Currency) String() string {
	return "$" + c.decimal().StringFixed(2)
}

// Parse reads an amount such as "$1234.56" or "1234.5". The "$" is optional.
// Amounts with more than two decimals are rounded to the cent. Amounts beyond
// MaxAmount fail with a *ParseError wrapping ErrOverflow.
func Parse(s string) (Currency, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "$")
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return Zero, &ParseError{Input: s, Err: err}
	}
	c, err := fromDecimal(d)
	if err == nil && !c.InRange() {
		err = ErrOverflow
	}
	if err != nil {
		return Zero, &ParseError{Input: s, Err: err}
	}
	return c, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Currency {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// MarshalText implements encoding.TextMarshaler.
func (c Currency) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Currency) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Set implements pflag.Value so Currency can back a command-line flag.
func (c *Currency) Set(s string) error {
	return c.UnmarshalText([]byte(s))
}

// Type implements pflag.Value.
func (c *Currency) Type() string {
	return "currency"
}
