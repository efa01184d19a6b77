package types

// Subst is a finite mapping from symbols to expressions, applied by
// capture-avoiding substitution (§3). The zero value is the identity
// substitution.
type Subst struct {
	binds map[Symbol]Expr
}

// NewSubst builds a substitution from the given pairs, later pairs
// overriding earlier ones for the same symbol.
func NewSubst(pairs ...SubstPair) Subst {
	s := Subst{binds: make(map[Symbol]Expr, len(pairs))}
	for _, p := range pairs {
		s.binds[p.Sym] = p.Val
	}
	return s
}

// SubstPair is one (symbol, expression) entry of a Subst literal.
type SubstPair struct {
	Sym Symbol
	Val Expr
}

// Pair constructs a SubstPair; a small convenience for call sites that
// build a Subst inline.
func Pair(sym Symbol, val Expr) SubstPair {
	return SubstPair{Sym: sym, Val: val}
}

// IsEmpty reports whether s is the identity substitution.
func (s Subst) IsEmpty() bool {
	return len(s.binds) == 0
}

// Lookup returns the expression bound to sym, if any.
func (s Subst) Lookup(sym Symbol) (Expr, bool) {
	if s.binds == nil {
		return nil, false
	}
	e, ok := s.binds[sym]
	return e, ok
}

// Symbols returns the domain of s in a deterministic (sorted) order, so
// that callers needing reproducible iteration (logging, the LHS assembler's
// conjunct ordering) never depend on Go's randomised map order.
func (s Subst) Symbols() []Symbol {
	out := make([]Symbol, 0, len(s.binds))
	for sym := range s.binds {
		out = append(out, sym)
	}
	sortSymbols(out)
	return out
}

// Compose returns the substitution that first applies s, then other:
// composing s ∘ other over expressions. Composition is associative and the
// empty substitution is its identity.
func (s Subst) Compose(other Subst) Subst {
	if s.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return s
	}
	out := make(map[Symbol]Expr, len(s.binds)+len(other.binds))
	for sym, val := range s.binds {
		out[sym] = Apply(other, val)
	}
	for sym, val := range other.binds {
		if _, already := out[sym]; !already {
			out[sym] = val
		}
	}
	return Subst{binds: out}
}

// Equal reports whether s and other denote the same substitution, modulo
// the identity substitution being unique regardless of an empty-vs-nil map.
func (s Subst) Equal(other Subst) bool {
	if len(s.binds) != len(other.binds) {
		return false
	}
	for sym, val := range s.binds {
		ov, ok := other.binds[sym]
		if !ok || !ExprEqual(val, ov) {
			return false
		}
	}
	return true
}

func sortSymbols(syms []Symbol) {
	for i := 1; i < len(syms); i++ {
		for j := i; j > 0 && syms[j-1] > syms[j]; j-- {
			syms[j-1], syms[j] = syms[j], syms[j-1]
		}
	}
}
