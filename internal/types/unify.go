package types

import (
	cerrors "github.com/solislang/solis/internal/errors"
)

// Unify implements the deterministic five-case algorithm from spec.md
// §4.2. Ordering of substitution composition and left-to-right argument
// passes is preserved exactly as specified, since diagnostic text depends
// on it.
func Unify(t1, t2 Type) (Substitution, *cerrors.SolisError) {
	v1, ok1 := t1.(*TyVar)
	v2, ok2 := t2.(*TyVar)

	// Case 1: same variable id.
	if ok1 && ok2 && v1.Id == v2.Id {
		return EmptySubst(), nil
	}

	// Case 2: one side a variable.
	if ok1 {
		return bindVar(v1, t2)
	}
	if ok2 {
		return bindVar(v2, t1)
	}

	switch l := t1.(type) {
	case *TyFun:
		r, ok := t2.(*TyFun)
		if !ok {
			return nil, mismatch(t1, t2)
		}
		s1, err := Unify(l.From, r.From)
		if err != nil {
			return nil, err
		}
		s2, err := Unify(Apply(s1, l.To), Apply(s1, r.To))
		if err != nil {
			return nil, err
		}
		return Compose(s2, s1), nil

	case *TyCon:
		r, ok := t2.(*TyCon)
		if !ok || r.Name != l.Name || len(r.Args) != len(l.Args) {
			return nil, mismatch(t1, t2)
		}
		sub := EmptySubst()
		for i := range l.Args {
			s, err := Unify(Apply(sub, l.Args[i]), Apply(sub, r.Args[i]))
			if err != nil {
				return nil, err
			}
			sub = Compose(s, sub)
		}
		return sub, nil

	default:
		return nil, mismatch(t1, t2)
	}
}

func bindVar(v *TyVar, t Type) (Substitution, *cerrors.SolisError) {
	if other, ok := t.(*TyVar); ok && other.Id == v.Id {
		return EmptySubst(), nil
	}
	if FreeVars(t)[v.Id] {
		return nil, cerrors.New(cerrors.InfiniteType, "infinite type").
			WithExplanation(v.String() + " occurs in " + t.String()).
			WithCarrier(v.Id)
	}
	return Substitution{v.Id: t}, nil
}

func mismatch(expected, actual Type) *cerrors.SolisError {
	return cerrors.New(cerrors.TypeMismatch, "type mismatch").
		WithExpectedActual(expected.String(), actual.String())
}
