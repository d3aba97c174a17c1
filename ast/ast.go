package ast

import (
	"fmt"

	"github.com/thisisjab/exprzilla/fault"
	"github.com/thisisjab/exprzilla/token"
)

// Node is the interface that all nodes in the expression tree implement.
// It uses a private marker method so only types defined in this package can
// be used as nodes, which keeps type switches over Node exhaustive.
type Node interface {
	exprNode()
	// Pos is the position of the token the node starts at.
	Pos() token.Pos
	String() string
}

// Literal is a leaf wrapping exactly one literal token.
type Literal struct {
	tok token.Token
}

// NewLiteral wraps tok. Only INT, STRING, IDENT, TRUE and FALSE tokens are accepted.
func NewLiteral(tok token.Token) (*Literal, error) {
	if !tok.Kind.IsLiteral() {
		return nil, fault.Newf(fault.InternalCode, "token %s cannot form a literal", tok).WithPos(tok.Pos)
	}
	return &Literal{tok: tok}, nil
}

func (*Literal) exprNode() {}

func (l *Literal) Token() token.Token {
	return l.tok
}

func (l *Literal) Pos() token.Pos {
	return l.tok.Pos
}

func (l *Literal) String() string {
	switch l.tok.Kind {
	case token.INT:
		return fmt.Sprintf("%d", l.tok.Int)
	case token.STRING:
		return fmt.Sprintf("%q", l.tok.Literal)
	default:
		return l.tok.Literal
	}
}

func (l *Literal) MarshalYAML() (any, error) {
	m := map[string]any{
		"literal": l.tok.Kind.String(),
		"pos":     l.tok.Pos.String(),
	}
	if l.tok.Kind == token.INT {
		m["value"] = l.tok.Int
	} else {
		m["value"] = l.tok.Literal
	}
	return m, nil
}

// BinaryOp combines two subtrees with an operator token.
type BinaryOp struct {
	left  Node
	op    token.Token
	right Node
}

// NewBinaryOp builds left op right. The operator must be arithmetic or
// relational and both operands must be present.
func NewBinaryOp(left Node, op token.Token, right Node) (*BinaryOp, error) {
	if !op.Kind.IsArithmetic() && !op.Kind.IsRelational() {
		return nil, fault.Newf(fault.InternalCode, "token %s is not a binary operator", op).WithPos(op.Pos)
	}
	if left == nil || right == nil {
		return nil, fault.Newf(fault.InternalCode, "binary %s is missing an operand", op.Kind).WithPos(op.Pos)
	}
	return &BinaryOp{left: left, op: op, right: right}, nil
}

func (*BinaryOp) exprNode() {}

func (b *BinaryOp) Left() Node {
	return b.left
}

func (b *BinaryOp) Operator() token.Token {
	return b.op
}

func (b *BinaryOp) Right() Node {
	return b.right
}

func (b *BinaryOp) Pos() token.Pos {
	return b.left.Pos()
}

func (b *BinaryOp) String() string {
	return fmt.Sprintf("(%s %s %s)", b.op.Kind, b.left, b.right)
}

func (b *BinaryOp) MarshalYAML() (any, error) {
	return map[string]any{
		"op":    b.op.Kind.String(),
		"pos":   b.op.Pos.String(),
		"left":  b.left,
		"right": b.right,
	}, nil
}

// Walk calls fn for every node of the tree rooted at n in depth-first
// pre-order. If fn returns false the children of that node are skipped.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}

	if b, ok := n.(*BinaryOp); ok {
		Walk(b.left, fn)
		Walk(b.right, fn)
	}
}

// Count returns the number of nodes in the tree rooted at n.
func Count(n Node) int {
	count := 0
	Walk(n, func(Node) bool {
		count++
		return true
	})
	return count
}
