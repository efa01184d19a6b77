package core

import "github.com/alanz/liquidfix/internal/types"

// RHSCandidate is one (instantiated predicate, owning κ, qualifier) triple
// the refiner asks the oracle to validate (§4.D).
type RHSCandidate struct {
	Pred types.Expr
	K    types.KVar
	Q    types.Qualifier
}

// RHSCandidateGenerator is §4.D.
type RHSCandidateGenerator struct{}

// NewRHSCandidateGenerator constructs a generator; it is stateless.
func NewRHSCandidateGenerator() RHSCandidateGenerator {
	return RHSCandidateGenerator{}
}

// RHSCands implements rhsCands(solution, c) -> (touchedKs, candidates).
// Only top-level KVarApp nodes of a (possibly implicit, single-element) And
// produce candidates; a target constraint's concrete RHS produces none —
// classifying those is §4.G's job, not the refiner's.
func (RHSCandidateGenerator) RHSCands(s types.Solution, c types.SimpC) ([]types.KVar, []RHSCandidate) {
	if c.IsTarget {
		return nil, nil
	}
	var ks []types.KVar
	var cands []RHSCandidate
	seen := map[types.KVar]struct{}{}
	for _, conjunct := range types.Conjuncts(c.RHS) {
		kapp, ok := conjunct.(types.KVarApp)
		if !ok {
			continue
		}
		if _, already := seen[kapp.K]; !already {
			seen[kapp.K] = struct{}{}
			ks = append(ks, kapp.K)
		}
		for _, q := range s.Get(kapp.K) {
			pred, ok := q.Instantiate(kapp.S)
			if !ok {
				continue
			}
			cands = append(cands, RHSCandidate{Pred: pred, K: kapp.K, Q: q})
		}
	}
	return ks, cands
}
