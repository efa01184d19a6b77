// Package app wires the core's ports to their concrete adapters and exposes
// the single entry point a CLI (or a test) drives a solve through (§6
// "Configuration options consumed by the core").
package app

import "github.com/alanz/liquidfix/internal/smt"

// Config is every option spec §6 names, gathered into the one struct
// internal/cli binds its flags onto.
type Config struct {
	ProblemFile string

	Solver           smt.Kind
	Extensionality   bool
	AlphaEquivalence bool
	BetaEquivalence  bool
	NormalForm       bool
	StringTheory     bool

	// UseElim selects an external κ-elimination preprocessor (§1 "Out of
	// scope"). No such preprocessor ships with this build; when true,
	// Service.Solve reports a warning and proceeds against the constraint
	// graph unmodified rather than failing the solve outright.
	UseElim bool

	// MinimalSol enables §4.G Phase 3 bind minimisation.
	MinimalSol bool

	// SolverStats logs the final worklist/tick counters after a solve.
	SolverStats bool

	// Gradual delegates the whole solve to an external gradual-refinement
	// solver (§1 "Out of scope"); no such solver is bundled, so Service.Solve
	// fails fast rather than silently falling back to the core's own
	// non-gradual fixpoint, which would answer a different question.
	Gradual bool

	// SMTLogDir, when non-empty, enables the SMT session's sidecar
	// transcript log, written to LogDir/<base(ProblemFile)>.smt2 (§6 "Log
	// file").
	SMTLogDir string

	// MaxTickRatio caps the worklist at MaxTickRatio*WRanks total pops
	// before the engine aborts with a diagnostic (§4.F "Iteration bound").
	// Zero disables the cap.
	MaxTickRatio int
}

// smtOptions projects the subset of Config the SMT session itself consumes.
func (c Config) smtOptions() smt.Options {
	return smt.Options{
		Solver:           c.Solver,
		Extensionality:   c.Extensionality,
		AlphaEquivalence: c.AlphaEquivalence,
		BetaEquivalence:  c.BetaEquivalence,
		NormalForm:       c.NormalForm,
		StringTheory:     c.StringTheory,
	}
}
