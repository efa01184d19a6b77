// Package result implements §4.G: classifying residual target constraints,
// materialising the final per-κ predicate, and (optionally) minimising it.
package result

import (
	"context"

	assert "github.com/ZanzyTHEbar/assert-lib"

	"github.com/alanz/liquidfix/internal/core"
	"github.com/alanz/liquidfix/internal/ports"
	"github.com/alanz/liquidfix/internal/types"
	"github.com/alanz/liquidfix/internal/worklist"
)

// Builder is §4.G.
type Builder struct {
	Env         *types.BindEnv
	Assembler   core.LHSAssembler
	Oracle      ports.OracleFacade
	Minimal     bool // §6 "minimalSol": enables Phase 3 minimisation
	Originals   map[types.Symbol]types.Symbol // tidySymbol table (§4.G Phase 2)
}

// NewBuilder wires the assembler and oracle the classify/materialise
// phases need.
func NewBuilder(env *types.BindEnv, assembler core.LHSAssembler, oracle ports.OracleFacade, minimal bool, originals map[types.Symbol]types.Symbol) Builder {
	return Builder{Env: env, Assembler: assembler, Oracle: oracle, Minimal: minimal, Originals: originals}
}

// Build runs all three phases and returns the final types.Result.
func (b Builder) Build(ctx context.Context, s types.Solution, w *worklist.Worklist) (types.Result, error) {
	unsafe, err := b.classify(ctx, s, w)
	if err != nil {
		return types.Result{}, err
	}

	solution := b.materialise(s)
	if b.Minimal {
		for k, p := range solution {
			minimized, err := b.minimise(p)
			if err != nil {
				return types.Result{}, err
			}
			solution[k] = minimized
		}
	}

	res := types.Result{Solution: solution}
	if len(unsafe) == 0 {
		res.Status = types.StatusSafe
	} else {
		res.Status = types.StatusUnsafe
		res.Unsafe = unsafe
	}
	return res, nil
}

// classify is Phase 1: for every target constraint, ask the oracle whether
// lhs ⇒ rhs is valid; collect those that are not (§4.G).
func (b Builder) classify(ctx context.Context, s types.Solution, w *worklist.Worklist) ([]types.UnsafeEntry, error) {
	var unsafe []types.UnsafeEntry
	for _, c := range w.UnsatCandidates() {
		assert.True(ctx, c.IsTarget, "result: non-target constraint reached the classifier")
		lp := b.Assembler.LHSPred(s, c)
		rp := c.RHS
		ok, err := b.Oracle.Valid(lp, rp)
		if err != nil {
			return nil, err
		}
		if !ok {
			unsafe = append(unsafe, types.UnsafeEntry{ID: c.ID, Tag: c.Tag})
		}
	}
	return unsafe, nil
}

// materialise is Phase 2: turn each κ's bind into a single conjunction and
// tidy its free variables back to their user-facing names.
func (b Builder) materialise(s types.Solution) map[types.KVar]types.Expr {
	out := make(map[types.KVar]types.Expr, len(s.KVars()))
	for _, k := range s.KVars() {
		bind := s.Get(k)
		ps := make([]types.Expr, 0, len(bind))
		for _, q := range bind {
			p, ok := q.Instantiate(types.Subst{})
			if !ok {
				// Qualifiers that still carry unresolved parameters are
				// instantiated against the problem's canonical binder
				// names, not against a KVar occurrence's σ — see
				// tidyQualifier below.
				p = b.tidyQualifier(q)
			}
			ps = append(ps, tidy(p, b.Originals))
		}
		out[k] = types.PAnd(ps)
	}
	return out
}

// tidyQualifier instantiates a qualifier against its own declared
// parameter names, used when materialising a κ's bind outside of any
// particular call site's substitution.
func (b Builder) tidyQualifier(q types.Qualifier) types.Expr {
	pairs := make([]types.SubstPair, len(q.Params))
	for i, p := range q.Params {
		pairs[i] = types.Pair(p.Sym, types.Var(p.Sym))
	}
	return types.Apply(types.NewSubst(pairs...), q.Body)
}

func tidy(e types.Expr, originals map[types.Symbol]types.Symbol) types.Expr {
	if len(originals) == 0 {
		return e
	}
	pairs := make([]types.SubstPair, 0, len(originals))
	for from, to := range originals {
		pairs = append(pairs, types.Pair(from, types.Var(to)))
	}
	return types.Apply(types.NewSubst(pairs...), e)
}

// minimise is Phase 3: in input order, drop pᵢ when the conjuncts already
// kept already imply it, else keep it (§4.G Phase 3). Using only the
// already-kept prefix as context — not the later, still-undecided
// conjuncts — is what makes two mutually-implying conjuncts resolve to
// keeping the first: the first has nothing to be implied by yet, so it
// survives, and the second is then implied by the first alone. It is also
// what makes a second pass a no-op (§8 "Minimisation idempotence"): no
// member of keep is implied by the members before it.
func (b Builder) minimise(p types.Expr) (types.Expr, error) {
	var keep []types.Expr
	for _, pi := range types.Conjuncts(p) {
		ok, err := b.Oracle.Valid(types.PAnd(keep), pi)
		if err != nil {
			return nil, err
		}
		if ok {
			continue
		}
		keep = append(keep, pi)
	}
	return types.PAnd(keep), nil
}
