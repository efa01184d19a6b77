package smt

// Options are the solver-affecting configuration toggles consumed by the
// SMT session (§6 "Configuration options consumed by the core"). Alpha-
// /beta-equivalence and normal-form are passed through to expression
// normalisation upstream of this package; they are surfaced here only so a
// Session can report them back to a caller that wants to log the full
// configuration.
type Options struct {
	Solver           Kind
	Extensionality   bool
	AlphaEquivalence bool
	BetaEquivalence  bool
	NormalForm       bool
	StringTheory     bool
}

// preambleCommands returns the option-setting commands issued right after
// the subprocess is spawned (§4.A "Startup"). Z3's option names changed at
// 4.3.2, hence the version-gated preamble.
func preambleCommands(opts Options, version Version) []string {
	switch opts.Solver {
	case Z3:
		return z3Preamble(opts, version)
	default:
		// MathSAT and CVC4 are driven purely by their command-line flags
		// (§6 "Solver discovery"); no additional preamble is required.
		return nil
	}
}

func z3Preamble(opts Options, version Version) []string {
	var cmds []string
	if version.Compare(z3OptionEpoch) >= 0 {
		cmds = append(cmds,
			commandSetOption("auto-config", "false"),
			commandSetOption("model", "true"),
			commandSetOption("model.partial", "false"),
		)
	} else {
		cmds = append(cmds,
			commandSetOption("AUTO_CONFIG", "false"),
			commandSetOption("MODEL", "true"),
			commandSetOption("MODEL_PARTIAL", "false"),
		)
	}
	if !opts.Extensionality {
		cmds = append(cmds, commandSetOption("smt.mbqi", "false"))
	}
	// Open question (§9): when extensionality is true, whether a
	// downstream consumer requires a sentinel empty preamble line in its
	// place is unresolved; we emit nothing, the simpler of the two options
	// the design notes allow.
	return cmds
}
