package smt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreambleCommandsOfNonZ3SolverIsEmpty(t *testing.T) {
	assert.Empty(t, preambleCommands(Options{Solver: MathSAT}, nil))
	assert.Empty(t, preambleCommands(Options{Solver: CVC4}, MustParseVersion("1.8")))
}

func TestZ3PreambleUsesLowercaseOptionNamesAtOrAboveEpoch(t *testing.T) {
	cmds := preambleCommands(Options{Solver: Z3}, MustParseVersion("4.3.2"))
	assert.Contains(t, cmds, "(set-option :auto-config false)")
	assert.Contains(t, cmds, "(set-option :model true)")
	assert.Contains(t, cmds, "(set-option :model.partial false)")
}

func TestZ3PreambleUsesUppercaseOptionNamesBelowEpoch(t *testing.T) {
	cmds := preambleCommands(Options{Solver: Z3}, MustParseVersion("4.3.1"))
	assert.Contains(t, cmds, "(set-option :AUTO_CONFIG false)")
	assert.Contains(t, cmds, "(set-option :MODEL true)")
	assert.Contains(t, cmds, "(set-option :MODEL_PARTIAL false)")
}

func TestZ3PreambleDisablesMBQIUnlessExtensionalityRequested(t *testing.T) {
	without := preambleCommands(Options{Solver: Z3}, MustParseVersion("4.8.12"))
	assert.Contains(t, without, "(set-option :smt.mbqi false)")

	with := preambleCommands(Options{Solver: Z3, Extensionality: true}, MustParseVersion("4.8.12"))
	assert.NotContains(t, with, "(set-option :smt.mbqi false)")
}
