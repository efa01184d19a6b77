// Package ports declares the narrow interfaces the fixpoint core consumes
// from its external collaborators (§1 "Out of scope"): constraint parsing,
// qualifier candidate enumeration, dependency-graph construction, progress
// reporting, and the SMT session itself. The core never imports a concrete
// implementation of any of these — only internal/adapters and internal/smt
// do, and internal/app wires concrete values into the core at startup.
package ports

import (
	"context"

	"github.com/alanz/liquidfix/internal/types"
)

// ConstraintSource parses a problem (wherever it lives — a .fq file, an
// in-memory fixture) into the shared binding environment and the list of
// constraints, with enough source-location information to report errors
// against the original input. Source-location reporting itself is an
// external concern; the core only ever sees the ConstraintID.
type ConstraintSource interface {
	Load(ctx context.Context) (*types.BindEnv, []types.SimpC, error)
}

// QualifierSource enumerates, for a given κ, the full candidate qualifier
// set it may be refined to before any refinement has happened — the
// maximal bind a Solution starts from (I1).
type QualifierSource interface {
	CandidatesFor(k types.KVar) types.QualifierBind
	AllKVars() []types.KVar
}

// DependencyGraphPort builds the constraint dependency graph (SCC rank
// order) the worklist schedules over. Graph construction is explicitly out
// of scope for the core (§1); internal/adapters/dependency_graph.go
// provides the default implementation.
type DependencyGraphPort interface {
	Build(cs []types.SimpC) types.DependencyGraph
}

// ProgressPort reports fixpoint progress to whatever UI the caller wants
// (a terminal progress bar, a log line, nothing). Progress rendering is
// explicitly out of scope for the core (§1).
type ProgressPort interface {
	Tick(iteration int, wRanks int)
	Done()
}

// NoopProgress is the zero-cost ProgressPort used when no UI is wired up.
type NoopProgress struct{}

func (NoopProgress) Tick(int, int) {}
func (NoopProgress) Done()         {}
