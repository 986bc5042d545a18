// Package value implements the core's runtime value representation (C4):
// a tagged sum with in-place mutability confined to thunks and
// forward-reference placeholders (spec.md §4.4).
package value

import (
	"fmt"
	"math/big"
	"sort"
	"strconv"
	"strings"
)

// Value is the closed sum of runtime values.
type Value interface {
	Type() string
	String() string
	isValue()
}

// IntValue is a machine-width integer.
type IntValue struct{ Value int64 }

func (*IntValue) isValue()        {}
func (*IntValue) Type() string    { return "Int" }
func (v *IntValue) String() string { return strconv.FormatInt(v.Value, 10) }

// BigIntValue is an arbitrary-precision integer, used both for integer
// literals of more than 18 digits and for the widened result of mixed
// Int/BigInt arithmetic (spec.md §4.5).
type BigIntValue struct{ Value *big.Int }

func (*BigIntValue) isValue()        {}
func (*BigIntValue) Type() string    { return "BigInt" }
func (v *BigIntValue) String() string { return v.Value.String() }

// FloatValue is a 64-bit float.
type FloatValue struct{ Value float64 }

func (*FloatValue) isValue()        {}
func (*FloatValue) Type() string    { return "Float" }
func (v *FloatValue) String() string { return strconv.FormatFloat(v.Value, 'g', -1, 64) }

// StringValue is an immutable string.
type StringValue struct{ Value string }

func (*StringValue) isValue()        {}
func (*StringValue) Type() string    { return "String" }
func (v *StringValue) String() string { return v.Value }

// BoolValue is a boolean.
type BoolValue struct{ Value bool }

func (*BoolValue) isValue()     {}
func (*BoolValue) Type() string { return "Bool" }
func (v *BoolValue) String() string {
	if v.Value {
		return "true"
	}
	return "false"
}

// UnitValue is the single inhabitant of Unit.
type UnitValue struct{}

func (*UnitValue) isValue()         {}
func (*UnitValue) Type() string     { return "Unit" }
func (*UnitValue) String() string   { return "()" }

// ListValue is an eagerly-constructed, persistent list (spec.md §4.5's
// "List / Record ... construct eagerly").
type ListValue struct{ Elements []Value }

func (*ListValue) isValue()     {}
func (*ListValue) Type() string { return "List" }
func (v *ListValue) String() string {
	parts := make([]string, len(v.Elements))
	for i, e := range v.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// RecordValue is an eagerly-constructed record. Order preserves source
// field order for deterministic printing; Fields is shared (not deep
// copied) between a record and any RecordUpdate built from it, except for
// the fields that update replaces (spec.md §4.5).
type RecordValue struct {
	Fields map[string]Value
	Order  []string
}

func (*RecordValue) isValue()     {}
func (*RecordValue) Type() string { return "Record" }
func (v *RecordValue) String() string {
	order := v.Order
	if order == nil {
		order = make([]string, 0, len(v.Fields))
		for k := range v.Fields {
			order = append(order, k)
		}
		sort.Strings(order)
	}
	parts := make([]string, len(order))
	for i, k := range order {
		parts[i] = fmt.Sprintf("%s: %s", k, v.Fields[k].String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// ConstructorValue is an ADT value: a tag name with however many
// arguments it has accumulated so far. Arity is the constructor's full
// declared arity; a ConstructorValue with len(Args) < Arity is itself
// callable (spec.md §4.5's "Constructor with remaining arity").
type ConstructorValue struct {
	Name  string
	Arity int
	Args  []Value
}

func (*ConstructorValue) isValue()     {}
func (*ConstructorValue) Type() string { return "Constructor" }
func (v *ConstructorValue) String() string {
	if len(v.Args) == 0 {
		return v.Name
	}
	parts := make([]string, len(v.Args))
	for i, a := range v.Args {
		parts[i] = a.String()
	}
	return v.Name + " " + strings.Join(parts, " ")
}

// FunctionValue is a unary closure: applying it runs Call, which matches
// the parameter pattern against the argument in a fresh extension of the
// captured environment (spec.md §4.5's Lambda rule — currying is a chain
// of these).
type FunctionValue struct {
	Name string // debug label, e.g. the declaring function's name; "" for anonymous lambdas
	Call func(arg Value) (Value, error)
}

func (*FunctionValue) isValue()     {}
func (*FunctionValue) Type() string { return "Function" }
func (v *FunctionValue) String() string {
	if v.Name != "" {
		return "<function " + v.Name + ">"
	}
	return "<function>"
}

// BuiltinValue is a host-provided function registered by the built-in
// registry (C6). It is distinguished from FunctionValue only so
// diagnostics and `show` can name it distinctly; application treats both
// identically.
type BuiltinValue struct {
	Name string
	Call func(arg Value) (Value, error)
}

func (*BuiltinValue) isValue()     {}
func (*BuiltinValue) Type() string { return "Builtin" }
func (v *BuiltinValue) String() string {
	return "<builtin " + v.Name + ">"
}
