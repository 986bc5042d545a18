package value

// Thunk is the one in-place-mutable carrier the spec allows outside
// placeholders (spec.md §4.4): it transitions exactly once from
// uncomputed to memoized. Forcing is not re-entrant — the language only
// uses thunks for forward references between top-level declarations,
// whose bodies are evaluated bottom-up by construction (spec.md §4.5), so
// a forcing-in-progress flag is unnecessary.
type Thunk struct {
	compute  func() (Value, error)
	computed bool
	result   Value
	err      error
}

func NewThunk(compute func() (Value, error)) *Thunk {
	return &Thunk{compute: compute}
}

func (*Thunk) isValue()     {}
func (*Thunk) Type() string { return "Thunk" }
func (t *Thunk) String() string {
	if t.computed {
		if t.err != nil {
			return "<thunk: error>"
		}
		return t.result.String()
	}
	return "<thunk>"
}

// Force runs compute() at most once, memoizing the outcome (spec.md
// §4.5's "Forcing" contract; §8's "Thunk singleton" property).
func (t *Thunk) Force() (Value, error) {
	if !t.computed {
		t.result, t.err = t.compute()
		t.computed = true
		t.compute = nil
	}
	return t.result, t.err
}

// Placeholder is the forward-reference shell of spec.md §4.5: an empty
// value cell a recursive or out-of-order top-level binding can refer to
// before its own defining expression has finished evaluating. Fill must
// be called exactly once, the first time that expression is evaluated.
type Placeholder struct {
	filled bool
	value  Value
}

func NewPlaceholder() *Placeholder { return &Placeholder{} }

func (*Placeholder) isValue()     {}
func (*Placeholder) Type() string { return "Placeholder" }
func (p *Placeholder) String() string {
	if p.filled {
		return p.value.String()
	}
	return "<unresolved>"
}

// Fill assigns the placeholder's value. Calling it a second time would
// violate the write-once invariant (spec.md §4.4); callers only ever
// reach Fill once because the evaluator calls it immediately after the
// one evaluation of the defining expression that created this placeholder.
func (p *Placeholder) Fill(v Value) {
	p.value = v
	p.filled = true
}

func (p *Placeholder) Filled() bool { return p.filled }

// Resolve unwraps the placeholder's underlying value. It is the caller's
// responsibility to ensure Fill already ran (the evaluator only ever
// forces a placeholder's owning binding after establishing it).
func (p *Placeholder) Resolve() Value { return p.value }

// Force repeatedly unwraps Thunk and Placeholder carriers until it
// reaches a value that is neither, memoizing every thunk it passes
// through along the way (spec.md §4.5's "Forcing" contract).
func Force(v Value) (Value, error) {
	for {
		switch t := v.(type) {
		case *Thunk:
			r, err := t.Force()
			if err != nil {
				return nil, err
			}
			v = r
		case *Placeholder:
			v = t.Resolve()
		default:
			return v, nil
		}
	}
}
