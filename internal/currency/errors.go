package currency

import (
	"errors"
	"fmt"
)

// ErrDivideByZero is returned when an amount is divided by zero or split into
// zero parts.
var ErrDivideByZero = errors.New("division by zero")

// ErrOverflow is returned when an amount does not fit the supported range.
var ErrOverflow = errors.New("amount out of range")

// ErrInvalidRate is returned for interest rates that are not finite or exceed MaxRate.
var ErrInvalidRate = errors.New("invalid interest")

// ParseError reports text that could not be read as an amount.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	if errors.Is(e.Err, ErrOverflow) {
		return fmt.Sprintf("%q is out of range for currency (limit %s)", e.Input, MaxAmount)
	}
	return fmt.Sprintf("could not parse %q as currency", e.Input)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
