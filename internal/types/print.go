package types

import (
	"fmt"
	"sort"
	"strings"
)

// CanonicalString renders t the way a REPL or diagnostic would: ids are
// remapped to a, b, c, ... in order of first appearance, and grouped
// constraints are mapped to conventional class names (spec.md §4.1):
// {==,<,>} together render as "Ord v"; else any of {+,-,*,/} render as
// "Num v"; else bare "==" renders as "Eq v"; anything else falls through
// to the raw operator name.
func CanonicalString(t Type) string {
	order := []int{}
	seen := map[int]bool{}
	var walk func(Type)
	walk = func(t Type) {
		switch t := t.(type) {
		case *TyVar:
			if !seen[t.Id] {
				seen[t.Id] = true
				order = append(order, t.Id)
			}
		case *TyCon:
			for _, a := range t.Args {
				walk(a)
			}
		case *TyFun:
			walk(t.From)
			walk(t.To)
		case *TyQual:
			for _, c := range t.Constraints {
				walk(c.Witness)
			}
			walk(t.Body)
		case *TyForall:
			walk(t.Body)
		}
	}
	walk(t)

	names := map[int]string{}
	for i, id := range order {
		names[id] = letterName(i)
	}
	return render(t, names)
}

func letterName(i int) string {
	letters := "abcdefghijklmnopqrstuvwxyz"
	if i < len(letters) {
		return string(letters[i])
	}
	return fmt.Sprintf("t%d", i)
}

func render(t Type, names map[int]string) string {
	switch t := t.(type) {
	case *TyVar:
		if n, ok := names[t.Id]; ok {
			return n
		}
		return t.String()
	case *TyCon:
		if len(t.Args) == 0 {
			return t.Name
		}
		parts := make([]string, len(t.Args))
		for i, a := range t.Args {
			parts[i] = renderParen(a, names)
		}
		return t.Name + " " + strings.Join(parts, " ")
	case *TyFun:
		return renderParen(t.From, names) + " -> " + render(t.To, names)
	case *TyQual:
		return renderQual(t, names) + " => " + render(t.Body, names)
	case *TyForall:
		return render(t.Body, names)
	default:
		return t.String()
	}
}

func renderParen(t Type, names map[int]string) string {
	switch t.(type) {
	case *TyFun, *TyQual, *TyForall:
		return "(" + render(t, names) + ")"
	default:
		return render(t, names)
	}
}

// renderQual groups a TyQual's constraints by the variable they
// constrain and applies the class-name recipe per variable.
func renderQual(q *TyQual, names map[int]string) string {
	byVar := map[int][]string{}
	var varOrder []int
	for _, c := range q.Constraints {
		v, ok := c.Witness.(*TyVar)
		if !ok {
			// Fall back to rendering the raw op against the rendered witness.
			byVar[-1] = append(byVar[-1], c.Op)
			continue
		}
		if _, seen := byVar[v.Id]; !seen {
			varOrder = append(varOrder, v.Id)
		}
		byVar[v.Id] = append(byVar[v.Id], c.Op)
		_ = ok
	}
	sort.Ints(varOrder)

	var parts []string
	for _, id := range varOrder {
		parts = append(parts, classNameFor(byVar[id])+" "+names[id])
	}
	if raw, ok := byVar[-1]; ok {
		parts = append(parts, strings.Join(raw, ", "))
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// classNameFor maps a set of operator names on one variable to the
// conventional class name recipe of spec.md §4.1.
func classNameFor(ops []string) string {
	has := map[string]bool{}
	for _, op := range ops {
		has[op] = true
	}
	if has["=="] && (has["<"] || has[">"]) {
		return "Ord"
	}
	for _, arith := range []string{"+", "-", "*", "/"} {
		if has[arith] {
			return "Num"
		}
	}
	if has["=="] {
		return "Eq"
	}
	return strings.Join(ops, ",")
}
