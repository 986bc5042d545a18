package builtins

import (
	"fmt"
	"strings"

	"github.com/solislang/solis/internal/value"
)

func registerCore(r Registry) {
	r["print"] = unary("print", func(a value.Value) (value.Value, error) {
		fmt.Println(a.String())
		return &value.BoolValue{Value: true}, nil
	})
	r["show"] = unary("show", func(a value.Value) (value.Value, error) {
		return &value.StringValue{Value: Show(a)}, nil
	})
}

// Show is the canonical textual form of spec.md §6: constructors applied
// to their arguments separated by spaces, strings quoted, lists in
// brackets. Unlike Value.String (used by print), Show always quotes
// strings so a String nested inside a List or Constructor is
// distinguishable from the literal text it holds.
func Show(v value.Value) string {
	switch val := v.(type) {
	case *value.StringValue:
		return `"` + val.Value + `"`
	case *value.ListValue:
		parts := make([]string, len(val.Elements))
		for i, e := range val.Elements {
			parts[i] = Show(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *value.ConstructorValue:
		if len(val.Args) == 0 {
			return val.Name
		}
		parts := make([]string, len(val.Args))
		for i, a := range val.Args {
			forced, err := value.Force(a)
			if err != nil {
				parts[i] = "<error>"
				continue
			}
			parts[i] = Show(forced)
		}
		return val.Name + " " + strings.Join(parts, " ")
	default:
		return v.String()
	}
}
