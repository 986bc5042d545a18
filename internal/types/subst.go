package types

// Substitution maps type-variable ids to the types that replace them
// (spec.md §3). Existing Type values are never mutated; Apply always
// returns a fresh Type (invariant I-2).
type Substitution map[int]Type

// EmptySubst is the identity substitution.
func EmptySubst() Substitution { return Substitution{} }

// FreeVars returns the set of unification-variable ids free in t. Ids
// bound by an enclosing TyForall are excluded.
func FreeVars(t Type) map[int]bool {
	set := map[int]bool{}
	collectFreeVars(t, nil, set)
	return set
}

func collectFreeVars(t Type, bound map[int]bool, out map[int]bool) {
	switch t := t.(type) {
	case *TyVar:
		if !bound[t.Id] {
			out[t.Id] = true
		}
	case *TyCon:
		for _, a := range t.Args {
			collectFreeVars(a, bound, out)
		}
	case *TyFun:
		collectFreeVars(t.From, bound, out)
		collectFreeVars(t.To, bound, out)
	case *TyQual:
		for _, c := range t.Constraints {
			collectFreeVars(c.Witness, bound, out)
		}
		collectFreeVars(t.Body, bound, out)
	case *TyForall:
		inner := map[int]bool{}
		for k, v := range bound {
			inner[k] = v
		}
		for id := range t.Quantified {
			inner[id] = true
		}
		collectFreeVars(t.Body, inner, out)
	}
}

// FreeVarsEnv unions the free variables of every scheme bound in env.
func FreeVarsEnv(env *Env) map[int]bool {
	out := map[int]bool{}
	env.forEach(func(_ string, sch *Scheme) {
		for id := range sch.FreeVars() {
			out[id] = true
		}
	})
	return out
}

// Apply performs capture-avoiding substitution. Under a TyForall, the
// substitution is restricted to ids not in the forall's quantified set
// (spec.md §4.1).
func Apply(s Substitution, t Type) Type {
	if len(s) == 0 {
		return t
	}
	switch t := t.(type) {
	case *TyVar:
		if repl, ok := s[t.Id]; ok {
			return repl
		}
		return t
	case *TyCon:
		if len(t.Args) == 0 {
			return t
		}
		args := make([]Type, len(t.Args))
		for i, a := range t.Args {
			args[i] = Apply(s, a)
		}
		return &TyCon{Name: t.Name, Args: args}
	case *TyFun:
		return &TyFun{From: Apply(s, t.From), To: Apply(s, t.To)}
	case *TyQual:
		cs := make([]Constraint, len(t.Constraints))
		for i, c := range t.Constraints {
			cs[i] = Constraint{Op: c.Op, Witness: Apply(s, c.Witness)}
		}
		return &TyQual{Constraints: cs, Body: Apply(s, t.Body)}
	case *TyForall:
		restricted := make(Substitution, len(s))
		for id, repl := range s {
			if !t.Quantified[id] {
				restricted[id] = repl
			}
		}
		return &TyForall{Quantified: t.Quantified, Body: Apply(restricted, t.Body)}
	default:
		return t
	}
}

// Compose returns s2 ∘ s1, such that Apply(Compose(s2,s1), t) ==
// Apply(s2, Apply(s1, t)) for every t (spec.md §3). It applies s2 to
// every range type of s1 first, then adds s2's own bindings that are not
// already present in s1.
func Compose(s2, s1 Substitution) Substitution {
	out := make(Substitution, len(s1)+len(s2))
	for id, t := range s1 {
		out[id] = Apply(s2, t)
	}
	for id, t := range s2 {
		if _, ok := out[id]; !ok {
			out[id] = t
		}
	}
	return out
}
