package query

import (
	"fmt"

	irerrors "github.com/gcbaptista/go-ir-engine/internal/errors"
)

// Expr is a node of a Boolean query expression.
type Expr interface {
	String() string
	isExpr()
}

// TermExpr matches the documents containing a single term.
type TermExpr struct {
	Term string
}

// BinaryExpr combines two sub-expressions with an operator.
type BinaryExpr struct {
	Op    Operator
	Left  Expr
	Right Expr
}

func (e *TermExpr) String() string { return e.Term }

func (e *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left, e.Op, e.Right)
}

func (*TermExpr) isExpr()   {}
func (*BinaryExpr) isExpr() {}

// Parse builds the expression tree of q. The grammar is a single term, or
// exactly three tokens with and/or/not in the middle.
func Parse(q *Query) (Expr, error) {
	switch len(q.Tokens) {
	case 0:
		return nil, irerrors.NewQuerySyntaxError(q.Text, "query is empty")
	case 1:
		return &TermExpr{Term: q.Tokens[0]}, nil
	case 3:
		op, ok := ParseOperator(q.Tokens[1])
		if !ok {
			return nil, irerrors.NewQuerySyntaxError(q.Text,
				fmt.Sprintf("unknown operator '%s', expected and, or or not", q.Tokens[1]))
		}
		return &BinaryExpr{
			Op:    op,
			Left:  &TermExpr{Term: q.Tokens[0]},
			Right: &TermExpr{Term: q.Tokens[2]},
		}, nil
	default:
		return nil, irerrors.NewQuerySyntaxError(q.Text,
			fmt.Sprintf("expected 'term' or 'term1 operator term2', got %d tokens", len(q.Tokens)))
	}
}
