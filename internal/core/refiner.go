package core

import (
	"github.com/rs/zerolog/log"

	"github.com/alanz/liquidfix/internal/ports"
	"github.com/alanz/liquidfix/internal/types"
)

// Refiner is §4.E: per-constraint refinement. It is why the bind of every
// κ only ever shrinks (I2, "Why monotone" in §4.E) — only qualifiers
// already present can survive FilterValid, so the lattice has finite
// height and the worklist loop terminates.
type Refiner struct {
	Assembler LHSAssembler
	RHS       RHSCandidateGenerator
	Oracle    ports.OracleFacade
	Store     Store
}

// NewRefiner wires the three collaborators a single refinement step needs.
func NewRefiner(assembler LHSAssembler, oracle ports.OracleFacade) Refiner {
	return Refiner{
		Assembler: assembler,
		RHS:       NewRHSCandidateGenerator(),
		Oracle:    oracle,
		Store:     NewStore(),
	}
}

// RefineC implements refineC(iter, s, c) -> (changed, s'). iter is accepted
// for parity with §4.E's signature and future statistics hooks; it is not
// consulted by the algorithm itself.
func (r Refiner) RefineC(iter int, s types.Solution, c types.SimpC) (bool, types.Solution, error) {
	ks, cands := r.RHS.RHSCands(s, c)
	if len(cands) == 0 {
		return false, s, nil
	}

	lhs := r.Assembler.LHSPred(s, c)

	oracleCands := make([]ports.Candidate, len(cands))
	for i, cand := range cands {
		oracleCands[i] = ports.Candidate{Pred: cand.Pred, Tag: cand}
	}
	survivors, err := r.Oracle.FilterValid(lhs, oracleCands)
	if err != nil {
		return false, s, err
	}

	kqs := make([]KQ, 0, len(survivors))
	for _, sv := range survivors {
		cand := sv.Tag.(RHSCandidate)
		kqs = append(kqs, KQ{K: cand.K, Q: cand.Q})
	}

	newSolution, changed := r.Store.Update(s, ks, kqs)
	if changed {
		log.Debug().
			Int("iter", iter).
			Int("constraint", int(c.ID)).
			Int("dropped", len(cands)-len(survivors)).
			Msg("refiner: bind shrank")
	}
	return changed, newSolution, nil
}
