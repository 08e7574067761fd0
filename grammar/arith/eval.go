package arith

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultDivisionPrecision is the number of decimal places kept by division.
const DefaultDivisionPrecision int32 = 16

// ErrDivisionByZero is returned when a divisor evaluates to zero.
var ErrDivisionByZero = errors.New("division by zero")

// Eval computes e exactly. Division rounds half away from zero to precision
// decimal places.
func Eval(e *Expr, precision int32) (decimal.Decimal, error) {
	switch e.Kind {
	case ExprValue:
		return e.Value, nil
	case ExprParen:
		return Eval(e.Inner, precision)
	}

	left, err := Eval(e.Left, precision)
	if err != nil {
		return decimal.Zero, err
	}

	right, err := Eval(e.Right, precision)
	if err != nil {
		return decimal.Zero, err
	}

	switch e.Op {
	case Add:
		return left.Add(right), nil
	case Sub:
		return left.Sub(right), nil
	case Mul:
		return left.Mul(right), nil
	default:
		if right.IsZero() {
			return decimal.Zero, fmt.Errorf("%w: %s", ErrDivisionByZero, e.Source())
		}

		return left.DivRound(right, precision), nil
	}
}
