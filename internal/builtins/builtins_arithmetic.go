package builtins

import (
	cerrors "github.com/solislang/solis/internal/errors"
	"github.com/solislang/solis/internal/value"
)

func registerArithmetic(r Registry) {
	r["even"] = unary("even", intPredicate("even", func(n int64) bool { return n%2 == 0 }))
	r["odd"] = unary("odd", intPredicate("odd", func(n int64) bool { return n%2 != 0 }))

	r["abs"] = unary("abs", func(a value.Value) (value.Value, error) {
		n, err := asInt(a, "abs")
		if err != nil {
			return nil, err
		}
		if n < 0 {
			n = -n
		}
		return &value.IntValue{Value: n}, nil
	})

	r["max"] = binary("max", func(a, b value.Value) (value.Value, error) {
		x, y, err := asIntPair(a, b, "max")
		if err != nil {
			return nil, err
		}
		if x > y {
			return &value.IntValue{Value: x}, nil
		}
		return &value.IntValue{Value: y}, nil
	})
	r["min"] = binary("min", func(a, b value.Value) (value.Value, error) {
		x, y, err := asIntPair(a, b, "min")
		if err != nil {
			return nil, err
		}
		if x < y {
			return &value.IntValue{Value: x}, nil
		}
		return &value.IntValue{Value: y}, nil
	})
	r["gcd"] = binary("gcd", func(a, b value.Value) (value.Value, error) {
		x, y, err := asIntPair(a, b, "gcd")
		if err != nil {
			return nil, err
		}
		return &value.IntValue{Value: gcd(x, y)}, nil
	})
	r["lcm"] = binary("lcm", func(a, b value.Value) (value.Value, error) {
		x, y, err := asIntPair(a, b, "lcm")
		if err != nil {
			return nil, err
		}
		g := gcd(x, y)
		if g == 0 {
			return &value.IntValue{Value: 0}, nil
		}
		return &value.IntValue{Value: (x / g) * y}, nil
	})
}

func intPredicate(who string, pred func(int64) bool) func(value.Value) (value.Value, error) {
	return func(a value.Value) (value.Value, error) {
		n, err := asInt(a, who)
		if err != nil {
			return nil, err
		}
		return &value.BoolValue{Value: pred(n)}, nil
	}
}

func asInt(v value.Value, who string) (int64, error) {
	n, ok := v.(*value.IntValue)
	if !ok {
		return 0, cerrors.New(cerrors.UnsupportedPattern, who+" expects an Int argument")
	}
	return n.Value, nil
}

func asIntPair(a, b value.Value, who string) (int64, int64, error) {
	x, err := asInt(a, who)
	if err != nil {
		return 0, 0, err
	}
	y, err := asInt(b, who)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
