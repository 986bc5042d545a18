package eval

import (
	"math/big"

	"github.com/solislang/solis/internal/ast"
	cerrors "github.com/solislang/solis/internal/errors"
	"github.com/solislang/solis/internal/value"
)

func bigIntFromDecimal(digits string) (value.Value, error) {
	n := new(big.Int)
	if _, ok := n.SetString(digits, 10); !ok {
		return nil, cerrors.New(cerrors.LexicalError, "invalid integer literal "+digits)
	}
	return &value.BigIntValue{Value: n}, nil
}

// evalBinOp implements spec.md §4.5's Binary operator rule: both operands
// are forced; arithmetic widens Int/BigInt/Float per the table there;
// comparison is structural for literals/strings and numeric (with
// widening) for numerics; ++ concatenates; :: prepends; &&/|| require Bool.
func (ev *Evaluator) evalBinOp(e *ast.BinOp, env *Environment) (value.Value, error) {
	leftVal, err := ev.Eval(e.Left, env)
	if err != nil {
		return nil, err
	}
	leftVal, err = value.Force(leftVal)
	if err != nil {
		return nil, err
	}

	if e.Op == "&&" || e.Op == "||" {
		lb, ok := leftVal.(*value.BoolValue)
		if !ok {
			return nil, cerrors.New(cerrors.UnsupportedPattern, "operand of "+e.Op+" is not a Bool").At(e.Left.Pos())
		}
		if e.Op == "&&" && !lb.Value {
			return &value.BoolValue{Value: false}, nil
		}
		if e.Op == "||" && lb.Value {
			return &value.BoolValue{Value: true}, nil
		}
		rightVal, err := ev.Eval(e.Right, env)
		if err != nil {
			return nil, err
		}
		rightVal, err = value.Force(rightVal)
		if err != nil {
			return nil, err
		}
		rb, ok := rightVal.(*value.BoolValue)
		if !ok {
			return nil, cerrors.New(cerrors.UnsupportedPattern, "operand of "+e.Op+" is not a Bool").At(e.Right.Pos())
		}
		return rb, nil
	}

	rightVal, err := ev.Eval(e.Right, env)
	if err != nil {
		return nil, err
	}
	rightVal, err = value.Force(rightVal)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case "+", "-", "*", "/":
		return arith(e.Op, leftVal, rightVal, e.Pos())
	case "==", "!=", "<", ">", "<=", ">=":
		return compare(e.Op, leftVal, rightVal, e.Pos())
	case "++":
		return concat(leftVal, rightVal, e.Pos())
	case "::", ":":
		list, ok := rightVal.(*value.ListValue)
		if !ok {
			return nil, cerrors.New(cerrors.UnsupportedPattern, "right side of "+e.Op+" is not a List").At(e.Right.Pos())
		}
		elems := append([]value.Value{leftVal}, list.Elements...)
		return &value.ListValue{Elements: elems}, nil
	default:
		return nil, cerrors.New(cerrors.UnsupportedPattern, "unknown operator "+e.Op).At(e.Pos())
	}
}

// numKind ranks the numeric widening ladder Int < BigInt < Float.
func numKind(v value.Value) int {
	switch v.(type) {
	case *value.IntValue:
		return 0
	case *value.BigIntValue:
		return 1
	case *value.FloatValue:
		return 2
	default:
		return -1
	}
}

func toBig(v value.Value) *big.Int {
	switch n := v.(type) {
	case *value.IntValue:
		return big.NewInt(n.Value)
	case *value.BigIntValue:
		return n.Value
	default:
		return nil
	}
}

func toFloat(v value.Value) float64 {
	switch n := v.(type) {
	case *value.IntValue:
		return float64(n.Value)
	case *value.BigIntValue:
		f := new(big.Float).SetInt(n.Value)
		out, _ := f.Float64()
		return out
	case *value.FloatValue:
		return n.Value
	default:
		return 0
	}
}

func arith(op string, l, r value.Value, loc cerrors.Location) (value.Value, error) {
	lk, rk := numKind(l), numKind(r)
	if lk < 0 || rk < 0 {
		return nil, cerrors.New(cerrors.UnsupportedPattern, "arithmetic operand is not numeric").At(loc)
	}
	kind := lk
	if rk > kind {
		kind = rk
	}

	switch kind {
	case 2: // Float
		a, b := toFloat(l), toFloat(r)
		switch op {
		case "+":
			return &value.FloatValue{Value: a + b}, nil
		case "-":
			return &value.FloatValue{Value: a - b}, nil
		case "*":
			return &value.FloatValue{Value: a * b}, nil
		case "/":
			if b == 0 {
				return nil, cerrors.New(cerrors.DivisionByZero, "division by zero").At(loc)
			}
			return &value.FloatValue{Value: a / b}, nil
		}
	case 1: // BigInt (mixed Int/BigInt widens to BigInt)
		a, b := toBig(l), toBig(r)
		out := new(big.Int)
		switch op {
		case "+":
			out.Add(a, b)
		case "-":
			out.Sub(a, b)
		case "*":
			out.Mul(a, b)
		case "/":
			if b.Sign() == 0 {
				return nil, cerrors.New(cerrors.DivisionByZero, "division by zero").At(loc)
			}
			out.Quo(a, b)
		}
		return &value.BigIntValue{Value: out}, nil
	default: // Int
		a, b := l.(*value.IntValue).Value, r.(*value.IntValue).Value
		switch op {
		case "+":
			return &value.IntValue{Value: a + b}, nil
		case "-":
			return &value.IntValue{Value: a - b}, nil
		case "*":
			return &value.IntValue{Value: a * b}, nil
		case "/":
			if b == 0 {
				return nil, cerrors.New(cerrors.DivisionByZero, "division by zero").At(loc)
			}
			return &value.IntValue{Value: a / b}, nil
		}
	}
	return nil, cerrors.New(cerrors.UnsupportedPattern, "unknown arithmetic operator "+op).At(loc)
}

func compare(op string, l, r value.Value, loc cerrors.Location) (value.Value, error) {
	var eq, lt bool
	switch {
	case numKind(l) >= 0 && numKind(r) >= 0:
		if numKind(l) == 2 || numKind(r) == 2 {
			a, b := toFloat(l), toFloat(r)
			eq, lt = a == b, a < b
		} else if numKind(l) == 1 || numKind(r) == 1 {
			a, b := toBig(l), toBig(r)
			c := a.Cmp(b)
			eq, lt = c == 0, c < 0
		} else {
			a, b := l.(*value.IntValue).Value, r.(*value.IntValue).Value
			eq, lt = a == b, a < b
		}
	case isString(l) && isString(r):
		a, b := l.(*value.StringValue).Value, r.(*value.StringValue).Value
		eq, lt = a == b, a < b
	case isBool(l) && isBool(r):
		a, b := l.(*value.BoolValue).Value, r.(*value.BoolValue).Value
		eq, lt = a == b, !a && b
	default:
		eq = l.String() == r.String()
	}
	switch op {
	case "==":
		return &value.BoolValue{Value: eq}, nil
	case "!=":
		return &value.BoolValue{Value: !eq}, nil
	case "<":
		return &value.BoolValue{Value: lt}, nil
	case "<=":
		return &value.BoolValue{Value: lt || eq}, nil
	case ">":
		return &value.BoolValue{Value: !lt && !eq}, nil
	case ">=":
		return &value.BoolValue{Value: !lt}, nil
	default:
		return nil, cerrors.New(cerrors.UnsupportedPattern, "unknown comparison operator "+op).At(loc)
	}
}

func isString(v value.Value) bool { _, ok := v.(*value.StringValue); return ok }
func isBool(v value.Value) bool   { _, ok := v.(*value.BoolValue); return ok }

func concat(l, r value.Value, loc cerrors.Location) (value.Value, error) {
	if ls, ok := l.(*value.StringValue); ok {
		rs, ok := r.(*value.StringValue)
		if !ok {
			return nil, cerrors.New(cerrors.UnsupportedPattern, "++ operands must both be String or both List").At(loc)
		}
		return &value.StringValue{Value: ls.Value + rs.Value}, nil
	}
	if ll, ok := l.(*value.ListValue); ok {
		rl, ok := r.(*value.ListValue)
		if !ok {
			return nil, cerrors.New(cerrors.UnsupportedPattern, "++ operands must both be String or both List").At(loc)
		}
		elems := append(append([]value.Value{}, ll.Elements...), rl.Elements...)
		return &value.ListValue{Elements: elems}, nil
	}
	return nil, cerrors.New(cerrors.UnsupportedPattern, "++ requires String or List operands").At(loc)
}
