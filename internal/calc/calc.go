// Package calc holds the four-function calculator and the discount rule.
package calc

import (
	"errors"
	"fmt"
)

var (
	// ErrDivisionByZero is returned for "/" with a zero divisor.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrInvalidOperator is returned for anything but + - * /.
	ErrInvalidOperator = errors.New("invalid operator")
	// ErrNegativeInput is returned by Discount for a negative price or percentage.
	ErrNegativeInput = errors.New("negative input")
)

// Operators lists the accepted operators.
const Operators = "+-*/"

// Calculate applies op to a and b.
func Calculate(a, b float64, op string) (float64, error) {
	switch op {
	case "+":
		return a + b, nil
	case "-":
		return a - b, nil
	case "*", "x":
		return a * b, nil
	case "/":
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	default:
		return 0, fmt.Errorf("%w %q (use one of %s)", ErrInvalidOperator, op, Operators)
	}
}

// MinDiscountPercent is the smallest percentage Discount applies.
const MinDiscountPercent = 20

// Discount returns price reduced by pct percent when pct is at least
// MinDiscountPercent, and price unchanged otherwise.
func Discount(price, pct float64) (float64, error) {
	if price < 0 || pct < 0 {
		return 0, fmt.Errorf("%w: price %g, percent %g", ErrNegativeInput, price, pct)
	}
	if pct < MinDiscountPercent {
		return price, nil
	}
	return price - price*pct/100, nil
}
