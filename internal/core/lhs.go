package core

import "github.com/alanz/liquidfix/internal/types"

// LHSAssembler is §4.C: it composes a constraint's antecedent from its
// shared binding environment, its own LHS predicate, and the current
// solution's expansion of any κ applications occurring on the LHS.
type LHSAssembler struct {
	Env *types.BindEnv
}

// NewLHSAssembler builds an assembler over the problem's shared
// environment.
func NewLHSAssembler(env *types.BindEnv) LHSAssembler {
	return LHSAssembler{Env: env}
}

// LHSPred implements the §4.C contract: lhsPred(env, solution, c) -> Expr.
// Conjunct order is the environment's declaration order, then the
// constraint's own LHS — deterministic, as required for reproducible logs
// (§4.C, §8 "Determinism").
func (a LHSAssembler) LHSPred(s types.Solution, c types.SimpC) types.Expr {
	envPred := a.Env.Predicate(c.Env)
	ownLHS := expandKVars(s, c.LHS)
	return types.PAnd([]types.Expr{envPred, ownLHS})
}
