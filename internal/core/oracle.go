package core

import (
	"github.com/ZanzyTHEbar/errbuilder-go"

	"github.com/alanz/liquidfix/internal/ports"
	"github.com/alanz/liquidfix/internal/types"
)

// SortResolver answers the sort of a free symbol so the oracle can declare
// it on the SMT session before asserting anything that mentions it. It is
// populated from the problem's BindEnv and the qualifier parameter lists;
// a symbol it has never seen defaults to Int, which is adequate for every
// scenario in §8 and is documented here rather than silently assumed.
type SortResolver struct {
	sorts map[types.Symbol]types.Sort
}

// NewSortResolver builds a resolver from a BindEnv's declarations.
func NewSortResolver(env *types.BindEnv, ids []types.BindID) SortResolver {
	r := SortResolver{sorts: map[types.Symbol]types.Sort{}}
	for _, b := range env.Declarations(ids) {
		r.sorts[b.Sym] = b.Sort
	}
	return r
}

// Learn records the sort of sym if not already known.
func (r SortResolver) Learn(sym types.Symbol, sort types.Sort) {
	if _, ok := r.sorts[sym]; !ok {
		r.sorts[sym] = sort
	}
}

// SortOf returns the learned sort for sym, defaulting to Int.
func (r SortResolver) SortOf(sym types.Symbol) types.Sort {
	if s, ok := r.sorts[sym]; ok {
		return s
	}
	return types.SortInt
}

// Oracle is the §4.H facade: the single narrow dependency point between the
// fixpoint logic and the SMT session (§4.A via ports.SMTSession).
type Oracle struct {
	session   ports.SMTSession
	resolver  SortResolver
	declared  map[types.Symbol]struct{}
}

// NewOracle wraps session with the narrow valid/filterValid contract.
func NewOracle(session ports.SMTSession, resolver SortResolver) *Oracle {
	return &Oracle{session: session, resolver: resolver, declared: map[types.Symbol]struct{}{}}
}

var _ ports.OracleFacade = (*Oracle)(nil)

// FilterValid implements §4.E step 3 as one SMT bracket per constraint:
// push, assert lhs, then for each candidate push/assert ¬p, check-sat, pop;
// the outer pop discards everything. A candidate survives when lhs ∧ ¬p is
// UNSAT, i.e. lhs ⇒ p is valid.
func (o *Oracle) FilterValid(lhs types.Expr, cands []ports.Candidate) ([]ports.Candidate, error) {
	if len(cands) == 0 {
		return nil, nil
	}
	if err := o.declareFreeSymbols(lhs); err != nil {
		return nil, err
	}
	for _, c := range cands {
		if err := o.declareFreeSymbols(c.Pred); err != nil {
			return nil, err
		}
	}

	var survivors []ports.Candidate
	err := ports.Bracket(o.session, func() error {
		if err := o.session.Assert(lhs); err != nil {
			return err
		}
		for _, c := range cands {
			ok, err := o.checkImplied(c.Pred)
			if err != nil {
				return err
			}
			if ok {
				survivors = append(survivors, c)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return survivors, nil
}

// checkImplied runs the inner push/assert(not p)/check-sat/pop bracket for
// one candidate.
func (o *Oracle) checkImplied(p types.Expr) (bool, error) {
	var unsat bool
	err := ports.Bracket(o.session, func() error {
		if err := o.session.Assert(types.Not{X: p}); err != nil {
			return err
		}
		result, err := o.session.CheckSat()
		if err != nil {
			return err
		}
		unsat = result == ports.Unsat
		return nil
	})
	return unsat, err
}

// Valid is the §4.H single-predicate convenience: valid(p, q) :=
// filterValid(p, [(q, ())]) non-empty.
func (o *Oracle) Valid(p, q types.Expr) (bool, error) {
	survivors, err := o.FilterValid(p, []ports.Candidate{{Pred: q}})
	if err != nil {
		return false, err
	}
	return len(survivors) > 0, nil
}

func (o *Oracle) declareFreeSymbols(e types.Expr) error {
	free := map[types.Symbol]struct{}{}
	collectFree(e, free)
	syms := make([]types.Symbol, 0, len(free))
	for s := range free {
		syms = append(syms, s)
	}
	sortSymbolsDeterministic(syms)
	for _, sym := range syms {
		if _, ok := o.declared[sym]; ok {
			continue
		}
		if err := o.session.Declare(sym, nil, o.resolver.SortOf(sym)); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("oracle: failed to declare symbol on smt session").
				WithCause(err)
		}
		o.declared[sym] = struct{}{}
	}
	return nil
}

func sortSymbolsDeterministic(syms []types.Symbol) {
	for i := 1; i < len(syms); i++ {
		for j := i; j > 0 && syms[j-1] > syms[j]; j-- {
			syms[j-1], syms[j] = syms[j], syms[j-1]
		}
	}
}

func collectFree(e types.Expr, out map[types.Symbol]struct{}) {
	switch n := e.(type) {
	case types.Var:
		out[types.Symbol(n)] = struct{}{}
	case types.Not:
		collectFree(n.X, out)
	case types.And:
		collectFreeAll(n.Ps, out)
	case types.Or:
		collectFreeAll(n.Ps, out)
	case types.Implies:
		collectFree(n.Ante, out)
		collectFree(n.Conc, out)
	case types.Iff:
		collectFree(n.L, out)
		collectFree(n.R, out)
	case types.Eq:
		collectFree(n.L, out)
		collectFree(n.R, out)
	case types.Ne:
		collectFree(n.L, out)
		collectFree(n.R, out)
	case types.Cmp:
		collectFree(n.L, out)
		collectFree(n.R, out)
	case types.Arith:
		collectFreeAll(n.Args, out)
	case types.App:
		collectFreeAll(n.Args, out)
	}
}

func collectFreeAll(es []types.Expr, out map[types.Symbol]struct{}) {
	for _, e := range es {
		collectFree(e, out)
	}
}
