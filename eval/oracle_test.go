package eval

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/thisisjab/exprzilla/fault"
	lua "github.com/yuin/gopher-lua"
)

// luaEval evaluates src with gopher-lua. Lua numbers are float64, which is
// exact for every expression generated below.
func luaEval(t *testing.T, L *lua.LState, src string) float64 {
	t.Helper()

	if err := L.DoString("return " + src); err != nil {
		t.Fatalf("lua cannot evaluate %q: %v", src, err)
	}

	v := L.Get(-1)
	L.Pop(1)

	n, ok := v.(lua.LNumber)
	if !ok {
		t.Fatalf("lua returned %s for %q, want a number", v.Type(), src)
	}
	return float64(n)
}

// randomExpr builds an expression over + - * and parentheses. Division is
// left out because Lua 5.1 has no integer division.
func randomExpr(r *rand.Rand, depth int) string {
	if depth == 0 || r.Intn(3) == 0 {
		return strconv.Itoa(r.Intn(60))
	}

	ops := []string{"+", "-", "*"}
	left := randomExpr(r, depth-1)
	right := randomExpr(r, depth-1)
	expr := fmt.Sprintf("%s %s %s", left, ops[r.Intn(len(ops))], right)

	if r.Intn(2) == 0 {
		return "(" + expr + ")"
	}
	return expr
}

func TestEvalAgreesWithLua(t *testing.T) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	r := rand.New(rand.NewSource(20261019))

	fixed := []string{
		"1 + 2 - 3",
		"2 + 3 + 4",
		"2 * (3 + 4) - 5 * 6",
		"((7))",
		"1 - 2 - 3 - 4",
		"2147483647 - 1",
	}

	var inputs []string
	inputs = append(inputs, fixed...)
	for i := 0; i < 500; i++ {
		inputs = append(inputs, randomExpr(r, 4))
	}

	for _, input := range inputs {
		want := luaEval(t, L, input)
		got, err := Eval(build(t, input))

		if want < math.MinInt32 || want > math.MaxInt32 {
			if !fault.Is(err, fault.ArithmeticOverflowCode) {
				t.Fatalf("Eval(%q) = %d, %v; lua says %.0f which needs an overflow error", input, got, err, want)
			}
			continue
		}

		if err != nil {
			// An intermediate result can overflow even when the final value fits.
			if fault.Is(err, fault.ArithmeticOverflowCode) {
				continue
			}
			t.Fatalf("Eval(%q): unexpected error: %v", input, err)
		}

		if float64(got) != want {
			t.Fatalf("Eval(%q) = %d, lua says %s", input, got, strings.TrimSuffix(fmt.Sprintf("%f", want), ".000000"))
		}
	}
}
