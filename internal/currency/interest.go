package currency

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const monthsPerYear = 12

// MaxRate is the largest yearly percentage, in magnitude, that CheckRate accepts.
const MaxRate = 10_000

// Compounding describes how a stated rate is applied within a period.
type Compounding int

const (
	// Monthly applies the rate once, then splits the charge into 12 equal parts.
	Monthly Compounding = iota
)

func (c Compounding) String() string {
	switch c {
	case Monthly:
		return "monthly"
	default:
		return "unknown"
	}
}

// Interest is a percentage rate paired with its compounding policy.
type Interest struct {
	Rate        float64
	Compounding Compounding
}

// MonthlyRate is shorthand for Interest{Rate: rate, Compounding: Monthly}.
func MonthlyRate(rate float64) Interest {
	return Interest{Rate: rate, Compounding: Monthly}
}

// CheckRate rejects rates that are NaN, infinite, or beyond ±MaxRate.
func CheckRate(rate float64) error {
	if math.IsNaN(rate) || math.IsInf(rate, 0) || math.Abs(rate) > MaxRate {
		return fmt.Errorf("%w %v: want a finite percentage within ±%d", ErrInvalidRate, rate, MaxRate)
	}
	return nil
}

// ParseRate reads a yearly percentage such as "6.5" and validates it with CheckRate.
func ParseRate(s string) (float64, error) {
	rate, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w %q: not a number", ErrInvalidRate, s)
	}
	if err := CheckRate(rate); err != nil {
		return 0, err
	}
	return rate, nil
}
