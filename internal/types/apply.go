package types

import "fmt"

// Apply performs capture-avoiding substitution of s into e. KVarApp
// distributes s into its own substitution (§3: "KVar(k, σ) substitution
// distributes into σ") rather than being expanded — expansion is the LHS
// assembler's job (§4.C), not substitution's.
func Apply(s Subst, e Expr) Expr {
	if s.IsEmpty() {
		return e
	}
	switch n := e.(type) {
	case BoolLit, IntLit, RealLit:
		return e
	case Var:
		if v, ok := s.Lookup(Symbol(n)); ok {
			return v
		}
		return n
	case Not:
		return Not{X: Apply(s, n.X)}
	case And:
		return And{Ps: applyAll(s, n.Ps)}
	case Or:
		return Or{Ps: applyAll(s, n.Ps)}
	case Implies:
		return Implies{Ante: Apply(s, n.Ante), Conc: Apply(s, n.Conc)}
	case Iff:
		return Iff{L: Apply(s, n.L), R: Apply(s, n.R)}
	case Eq:
		return Eq{L: Apply(s, n.L), R: Apply(s, n.R)}
	case Ne:
		return Ne{L: Apply(s, n.L), R: Apply(s, n.R)}
	case Cmp:
		return Cmp{Op: n.Op, L: Apply(s, n.L), R: Apply(s, n.R)}
	case Arith:
		return Arith{Op: n.Op, Args: applyAll(s, n.Args)}
	case App:
		return App{Func: n.Func, Args: applyAll(s, n.Args)}
	case Forall:
		binds, body := applyUnderBinder(s, n.Binds, n.Body)
		return Forall{Binds: binds, Body: body}
	case Exists:
		binds, body := applyUnderBinder(s, n.Binds, n.Body)
		return Exists{Binds: binds, Body: body}
	case KVarApp:
		return KVarApp{K: n.K, S: n.S.Compose(s)}
	default:
		panic(fmt.Sprintf("types.Apply: unhandled expression node %T", e))
	}
}

func applyAll(s Subst, es []Expr) []Expr {
	out := make([]Expr, len(es))
	for i, e := range es {
		out[i] = Apply(s, e)
	}
	return out
}

// applyUnderBinder substitutes under a quantifier prefix. A bound symbol
// shadows any substitution entry for the same name; if a bound symbol would
// instead capture a symbol free in the substitution's range, it is renamed
// first, to "<sym>!<i>" where i is its position in the prefix.
func applyUnderBinder(s Subst, binds []Bind, body Expr) ([]Bind, Expr) {
	captured := rangeFreeVars(s)
	renamed := Subst{}
	newBinds := make([]Bind, len(binds))
	for i, b := range binds {
		if _, isCapture := captured[b.Sym]; isCapture {
			fresh := Symbol(fmt.Sprintf("%s!%d", b.Sym, i))
			renamed = renamed.Compose(NewSubst(Pair(b.Sym, Var(fresh))))
			newBinds[i] = Bind{Sym: fresh, Sort: b.Sort}
			continue
		}
		newBinds[i] = b
	}
	inner := s
	for _, b := range newBinds {
		inner = removeBinding(inner, b.Sym)
	}
	if !renamed.IsEmpty() {
		body = Apply(renamed, body)
	}
	return newBinds, Apply(inner, body)
}

func removeBinding(s Subst, sym Symbol) Subst {
	out := Subst{binds: map[Symbol]Expr{}}
	for _, k := range s.Symbols() {
		if k == sym {
			continue
		}
		v, _ := s.Lookup(k)
		out.binds[k] = v
	}
	return out
}

// rangeFreeVars collects the free variables occurring in the range of s, to
// detect potential capture when descending under a binder.
func rangeFreeVars(s Subst) map[Symbol]struct{} {
	out := map[Symbol]struct{}{}
	for _, sym := range s.Symbols() {
		v, _ := s.Lookup(sym)
		collectFreeVars(v, out)
	}
	return out
}

func collectFreeVars(e Expr, out map[Symbol]struct{}) {
	switch n := e.(type) {
	case Var:
		out[Symbol(n)] = struct{}{}
	case Not:
		collectFreeVars(n.X, out)
	case And:
		collectFreeVarsAll(n.Ps, out)
	case Or:
		collectFreeVarsAll(n.Ps, out)
	case Implies:
		collectFreeVars(n.Ante, out)
		collectFreeVars(n.Conc, out)
	case Iff:
		collectFreeVars(n.L, out)
		collectFreeVars(n.R, out)
	case Eq:
		collectFreeVars(n.L, out)
		collectFreeVars(n.R, out)
	case Ne:
		collectFreeVars(n.L, out)
		collectFreeVars(n.R, out)
	case Cmp:
		collectFreeVars(n.L, out)
		collectFreeVars(n.R, out)
	case Arith:
		collectFreeVarsAll(n.Args, out)
	case App:
		collectFreeVarsAll(n.Args, out)
	case Forall:
		collectFreeVars(n.Body, out)
	case Exists:
		collectFreeVars(n.Body, out)
	case KVarApp:
		for _, sym := range n.S.Symbols() {
			v, _ := n.S.Lookup(sym)
			collectFreeVars(v, out)
		}
	}
}

func collectFreeVarsAll(es []Expr, out map[Symbol]struct{}) {
	for _, e := range es {
		collectFreeVars(e, out)
	}
}
