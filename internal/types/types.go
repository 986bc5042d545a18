// Package types implements the core's type representation (C1), unifier
// (C2), and Algorithm-W-style inference engine (C3) from spec.md.
package types

import (
	"fmt"
	"strings"
)

// Type is the closed sum of inference-time types (spec.md §3).
type Type interface {
	isType()
	String() string
}

// TyVar is a unification variable or rigid placeholder. Equality is by Id,
// never by structural comparison of Hint (spec.md invariant I-1).
type TyVar struct {
	Id   int
	Hint string
}

func (*TyVar) isType() {}
func (t *TyVar) String() string {
	if t.Hint != "" {
		return t.Hint
	}
	return fmt.Sprintf("t%d", t.Id)
}

// TyCon is a nullary or parameterized type constructor: Int, Bool, String,
// Float, BigInt, List a, or a user-defined ADT.
type TyCon struct {
	Name string
	Args []Type
}

func (*TyCon) isType() {}
func (t *TyCon) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = parenIfCompound(a)
	}
	return t.Name + " " + strings.Join(parts, " ")
}

// TyFun is a single-argument arrow; multi-argument functions are
// right-associated chains of TyFun (spec.md §3).
type TyFun struct {
	From, To Type
}

func (*TyFun) isType() {}
func (t *TyFun) String() string {
	return parenIfCompound(t.From) + " -> " + t.To.String()
}

func parenIfCompound(t Type) string {
	switch t.(type) {
	case *TyFun, *TyQual, *TyForall:
		return "(" + t.String() + ")"
	default:
		return t.String()
	}
}

// Constraint is an operator/method name paired with the witness type it
// must be discharged against (spec.md §3, §4.1).
type Constraint struct {
	Op      string
	Witness Type
}

func (c Constraint) String() string {
	return fmt.Sprintf("%s(%s)", c.Op, c.Witness.String())
}

// TyQual is a qualified type: a list of constraints plus the body they
// qualify. Never nests directly under another TyQual (invariant I-4).
type TyQual struct {
	Constraints []Constraint
	Body        Type
}

func (*TyQual) isType() {}
func (t *TyQual) String() string {
	if len(t.Constraints) == 0 {
		return t.Body.String()
	}
	parts := make([]string, len(t.Constraints))
	for i, c := range t.Constraints {
		parts[i] = c.String()
	}
	return fmt.Sprintf("(%s) => %s", strings.Join(parts, ", "), t.Body.String())
}

// TyForall is rank-1 universal quantification over a set of variable ids
// (invariant I-3: never appears under a TyFun on the way to a value).
type TyForall struct {
	Quantified map[int]bool
	Body       Type
}

func (*TyForall) isType() {}
func (t *TyForall) String() string {
	ids := sortedIds(t.Quantified)
	if len(ids) == 0 {
		return t.Body.String()
	}
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = fmt.Sprintf("t%d", id)
	}
	return fmt.Sprintf("forall %s. %s", strings.Join(names, " "), t.Body.String())
}

func sortedIds(set map[int]bool) []int {
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	// simple insertion sort: these sets are small (a handful of quantified vars)
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
	return ids
}

// Well-known nullary constructors.
var (
	TInt    = &TyCon{Name: "Int"}
	TBigInt = &TyCon{Name: "BigInt"}
	TFloat  = &TyCon{Name: "Float"}
	TBool   = &TyCon{Name: "Bool"}
	TString = &TyCon{Name: "String"}
	TUnit   = &TyCon{Name: "Unit"}
)

// TList builds the type `List elem`.
func TList(elem Type) *TyCon {
	return &TyCon{Name: "List", Args: []Type{elem}}
}

// VarGen is the process-wide monotonic type-variable id counter (spec.md
// §5: "process-wide monotonic... need not be thread-safe because sessions
// are serial"). It is a field of Session/Inferencer, never a package
// global, so concurrent sessions in the same process (e.g. tests) don't
// collide.
type VarGen struct {
	next int
}

// NewVarGen returns a counter starting at 0.
func NewVarGen() *VarGen { return &VarGen{} }

// Fresh allocates a new TyVar with the given debug hint.
func (g *VarGen) Fresh(hint string) *TyVar {
	id := g.next
	g.next++
	return &TyVar{Id: id, Hint: hint}
}
