package smt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "z3", Z3.String())
	assert.Equal(t, "mathsat", MathSAT.String())
	assert.Equal(t, "cvc4", CVC4.String())
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestParseKindAcceptsCaseVariants(t *testing.T) {
	for _, s := range []string{"z3", "Z3", ""} {
		k, err := ParseKind(s)
		require.NoError(t, err)
		assert.Equal(t, Z3, k)
	}
	for _, s := range []string{"mathsat", "MathSAT"} {
		k, err := ParseKind(s)
		require.NoError(t, err)
		assert.Equal(t, MathSAT, k)
	}
	for _, s := range []string{"cvc4", "CVC4"} {
		k, err := ParseKind(s)
		require.NoError(t, err)
		assert.Equal(t, CVC4, k)
	}
}

func TestParseKindRejectsUnknownSolver(t *testing.T) {
	k, err := ParseKind("boolector")
	assert.Error(t, err)
	assert.Equal(t, Z3, k, "zero value falls back to Z3 even on error")
}

func TestCommandPerKind(t *testing.T) {
	assert.Equal(t, []string{"z3", "-smt2", "-in"}, Z3.Command())
	assert.Equal(t, []string{"mathsat", "-input=smt2"}, MathSAT.Command())
	assert.Equal(t, []string{"cvc4", "--incremental", "-L", "smtlib2"}, CVC4.Command())
	assert.Nil(t, Kind(99).Command())
}

func TestSupportsStringTheoryOnlyZ3AtOrAboveThreshold(t *testing.T) {
	assert.True(t, Z3.SupportsStringTheory(MustParseVersion("4.4.2")))
	assert.True(t, Z3.SupportsStringTheory(MustParseVersion("4.8.12")))
	assert.False(t, Z3.SupportsStringTheory(MustParseVersion("4.4.1")))
	assert.False(t, MathSAT.SupportsStringTheory(MustParseVersion("4.8.12")), "only z3 ever supports the option")
	assert.False(t, CVC4.SupportsStringTheory(MustParseVersion("4.8.12")))
}
