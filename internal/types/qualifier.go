package types

// Qualifier is a closed, parameterised predicate template (§3): a list of
// formal parameters and a body expression written in terms of them.
// Instantiating Params to the arguments carried by a KVarApp's substitution
// yields a concrete expression.
type Qualifier struct {
	Name   string
	Params []Bind
	Body   Expr
}

// Instantiate substitutes q's formal parameters for the values bound in the
// KVar application's substitution, positionally by declaration order. A
// qualifier with more parameters than the substitution provides values for
// is skipped by the caller (§4.D only emits candidates it can fully
// instantiate).
func (q Qualifier) Instantiate(sub Subst) (Expr, bool) {
	if len(q.Params) == 0 {
		return q.Body, true
	}
	binds := make([]SubstPair, 0, len(q.Params))
	syms := sub.Symbols()
	if len(syms) < len(q.Params) {
		return nil, false
	}
	for i, p := range q.Params {
		v, ok := sub.Lookup(syms[i])
		if !ok {
			return nil, false
		}
		binds = append(binds, Pair(p.Sym, v))
	}
	return Apply(NewSubst(binds...), q.Body), true
}

// QualifierBind is the ordered sequence of qualifiers currently believed to
// hold for a KVar (§3). Order is preserved since §4.G Phase 3 minimisation
// is order-sensitive (ties keep the first).
type QualifierBind []Qualifier

// Conjunction turns a bind into a single predicate: the conjunction of
// q[σ] over every q in the bind (§3 "Semantics"). An empty bind is `true`
// (invariant I3).
func (qb QualifierBind) Conjunction(sub Subst) Expr {
	ps := make([]Expr, 0, len(qb))
	for _, q := range qb {
		p, ok := q.Instantiate(sub)
		if !ok {
			continue
		}
		ps = append(ps, p)
	}
	return PAnd(ps)
}

// Contains reports whether name identifies a qualifier already in qb.
func (qb QualifierBind) Contains(name string) bool {
	for _, q := range qb {
		if q.Name == name {
			return true
		}
	}
	return false
}

// Names returns the qualifier names in qb, in order.
func (qb QualifierBind) Names() []string {
	out := make([]string, len(qb))
	for i, q := range qb {
		out[i] = q.Name
	}
	return out
}

// Restrict returns the subsequence of qb whose names are in keep, preserving
// qb's original order — this is how §4.B Update implements its "restrict
// each k to exactly the qualifiers appearing in kqs" contract.
func (qb QualifierBind) Restrict(keep map[string]struct{}) QualifierBind {
	out := make(QualifierBind, 0, len(qb))
	for _, q := range qb {
		if _, ok := keep[q.Name]; ok {
			out = append(out, q)
		}
	}
	return out
}
