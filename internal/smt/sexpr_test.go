package smt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSexprAtom(t *testing.T) {
	node, pos, err := parseSexpr("sat", 0)
	require.NoError(t, err)
	assert.Equal(t, "sat", node.String())
	assert.Equal(t, 3, pos)
}

func TestParseSexprQuotedString(t *testing.T) {
	node, _, err := parseSexpr(`"hello world"`, 0)
	require.NoError(t, err)
	assert.Equal(t, "hello world", node.atom)
	assert.Equal(t, `"hello world"`, node.String())
}

func TestParseSexprNestedList(t *testing.T) {
	node, _, err := parseSexpr("((x 1) (y 2))", 0)
	require.NoError(t, err)
	assert.Equal(t, "((x 1) (y 2))", node.String())
	require.Len(t, node.list, 2)
	assert.Equal(t, "x", node.list[0].list[0].atom)
}

func TestParseSexprUnterminatedListErrors(t *testing.T) {
	_, _, err := parseSexpr("(a b", 0)
	assert.Error(t, err)
}

func TestParseSexprUnterminatedQuoteErrors(t *testing.T) {
	_, _, err := parseSexpr(`"unterminated`, 0)
	assert.Error(t, err)
}

func TestBalanceRoundTrip(t *testing.T) {
	depth, complete := balance("(a (b c))")
	assert.Equal(t, 0, depth)
	assert.True(t, complete)
}

func TestBalanceIncompleteMultilineResponse(t *testing.T) {
	depth, complete := balance("(a (b")
	assert.Equal(t, 2, depth)
	assert.False(t, complete)
}

func TestBalanceBareLiteralIsComplete(t *testing.T) {
	_, complete := balance("sat")
	assert.True(t, complete)
}

func TestBalanceIgnoresParensInQuotes(t *testing.T) {
	depth, complete := balance(`(error "unexpected (")`)
	assert.Equal(t, 0, depth)
	assert.True(t, complete)
}

func TestBalanceEmptyIsIncomplete(t *testing.T) {
	_, complete := balance("")
	assert.False(t, complete)
}
