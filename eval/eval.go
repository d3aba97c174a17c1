package eval

import (
	"math"

	"github.com/thisisjab/exprzilla/ast"
	"github.com/thisisjab/exprzilla/fault"
	"github.com/thisisjab/exprzilla/token"
)

// Eval computes the integer value of the tree rooted at node. Subtrees are
// evaluated depth-first, left before right. Only integer literals carry a
// value; any other literal kind is a type mismatch.
func Eval(node ast.Node) (int32, error) {
	switch n := node.(type) {
	case *ast.Literal:
		return evalLiteral(n)
	case *ast.BinaryOp:
		return evalBinary(n)
	case nil:
		return 0, evalError(fault.InternalCode, token.Pos{}, "cannot evaluate an empty tree")
	default:
		return 0, evalError(fault.InternalCode, node.Pos(), "unknown node type %T", node)
	}
}

func evalLiteral(n *ast.Literal) (int32, error) {
	tok := n.Token()
	if tok.Kind != token.INT {
		return 0, evalError(fault.TypeMismatchCode, tok.Pos, "expected an integer, got %s", tok).
			WithMetadata(map[string]any{"kind": tok.Kind.String()})
	}
	return tok.Int, nil
}

func evalBinary(n *ast.BinaryOp) (int32, error) {
	left, err := Eval(n.Left())
	if err != nil {
		return 0, err
	}

	right, err := Eval(n.Right())
	if err != nil {
		return 0, err
	}

	op := n.Operator()

	// Widening to int64 makes every int32 sum, difference and product exact.
	var result int64
	switch op.Kind {
	case token.PLUS:
		result = int64(left) + int64(right)
	case token.MINUS:
		result = int64(left) - int64(right)
	case token.ASTERISK:
		result = int64(left) * int64(right)
	case token.SLASH:
		if right == 0 {
			return 0, evalError(fault.DivisionByZeroCode, op.Pos, "division by zero")
		}
		result = int64(left) / int64(right)
	default:
		return 0, evalError(fault.InternalCode, op.Pos, "operator %s has no integer meaning", op.Kind)
	}

	if result < math.MinInt32 || result > math.MaxInt32 {
		return 0, evalError(fault.ArithmeticOverflowCode, op.Pos, "%d %s %d overflows a 32-bit integer", left, op.Kind, right)
	}

	return int32(result), nil
}

func evalError(code fault.Code, pos token.Pos, format string, args ...any) fault.Fault {
	return fault.Newf(code, format, args...).WithStage(fault.StageEval).WithPos(pos)
}
