package arith

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ExprKind is the node type of an expression tree.
type ExprKind int

const (
	ExprValue ExprKind = iota
	ExprBinary
	ExprParen
)

// Expr is a node of the expression tree.
//
// ExprValue uses Value, ExprBinary uses Op, Left and Right, and ExprParen
// wraps Inner.
type Expr struct {
	Kind  ExprKind
	Value decimal.Decimal
	Op    Oper
	Left  *Expr
	Right *Expr
	Inner *Expr
}

// NewValue returns a literal node.
func NewValue(v decimal.Decimal) *Expr {
	return &Expr{Kind: ExprValue, Value: v}
}

// NewBinary returns an operator node.
func NewBinary(left *Expr, op Oper, right *Expr) *Expr {
	return &Expr{Kind: ExprBinary, Op: op, Left: left, Right: right}
}

// NewParen returns a parenthesized node.
func NewParen(inner *Expr) *Expr {
	return &Expr{Kind: ExprParen, Inner: inner}
}

// String returns the debug form, e.g. "Add(Value(1), Paren(Value(2)))".
func (e *Expr) String() string {
	var sb strings.Builder
	e.debug(&sb)

	return sb.String()
}

func (e *Expr) debug(sb *strings.Builder) {
	switch e.Kind {
	case ExprValue:
		sb.WriteString("Value(")
		sb.WriteString(e.Value.String())
		sb.WriteString(")")
	case ExprBinary:
		sb.WriteString(e.Op.String())
		sb.WriteString("(")
		e.Left.debug(sb)
		sb.WriteString(", ")
		e.Right.debug(sb)
		sb.WriteString(")")
	case ExprParen:
		sb.WriteString("Paren(")
		e.Inner.debug(sb)
		sb.WriteString(")")
	}
}

// Source returns the expression in source form with minimal spacing.
func (e *Expr) Source() string {
	switch e.Kind {
	case ExprValue:
		return e.Value.String()
	case ExprBinary:
		return e.Left.Source() + " " + e.Op.Symbol() + " " + e.Right.Source()
	default:
		return "(" + e.Inner.Source() + ")"
	}
}
