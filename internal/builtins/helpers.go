package builtins

import "github.com/solislang/solis/internal/value"

// unary wraps a single-argument host function as a BuiltinValue, forcing
// the argument before calling fn (builtins are always strict).
func unary(name string, fn func(a value.Value) (value.Value, error)) *value.BuiltinValue {
	return &value.BuiltinValue{
		Name: name,
		Call: func(a value.Value) (value.Value, error) {
			forced, err := value.Force(a)
			if err != nil {
				return nil, err
			}
			return fn(forced)
		},
	}
}

// binary wraps a two-argument host function as a curried chain of two
// BuiltinValues (spec.md §4.5's currying discipline applies to built-ins
// exactly as it does to source-level functions).
func binary(name string, fn func(a, b value.Value) (value.Value, error)) *value.BuiltinValue {
	return &value.BuiltinValue{
		Name: name,
		Call: func(a value.Value) (value.Value, error) {
			af, err := value.Force(a)
			if err != nil {
				return nil, err
			}
			return &value.BuiltinValue{
				Name: name,
				Call: func(b value.Value) (value.Value, error) {
					bf, err := value.Force(b)
					if err != nil {
						return nil, err
					}
					return fn(af, bf)
				},
			}, nil
		},
	}
}
