package core

import "github.com/alanz/liquidfix/internal/types"

// expandKVars replaces every KVarApp node in e by its current predicate
// under the solution — the conjunction of qb[σ] over qb(k)'s qualifiers
// (§3 "Semantics"). This is the one place KVar nodes are eliminated; by the
// time an expression reaches the SMT session it must be KVar-free.
func expandKVars(s types.Solution, e types.Expr) types.Expr {
	switch n := e.(type) {
	case types.KVarApp:
		return s.Get(n.K).Conjunction(n.S)
	case types.Not:
		return types.Not{X: expandKVars(s, n.X)}
	case types.And:
		return types.And{Ps: expandKVarsAll(s, n.Ps)}
	case types.Or:
		return types.Or{Ps: expandKVarsAll(s, n.Ps)}
	case types.Implies:
		return types.Implies{Ante: expandKVars(s, n.Ante), Conc: expandKVars(s, n.Conc)}
	case types.Iff:
		return types.Iff{L: expandKVars(s, n.L), R: expandKVars(s, n.R)}
	default:
		return e
	}
}

func expandKVarsAll(s types.Solution, es []types.Expr) []types.Expr {
	out := make([]types.Expr, len(es))
	for i, e := range es {
		out[i] = expandKVars(s, e)
	}
	return out
}
