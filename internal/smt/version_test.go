package smt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	v, err := ParseVersion("4.8.12")
	require.NoError(t, err)
	assert.Equal(t, Version{4, 8, 12}, v)
}

func TestParseVersionTruncatesTrailingNoise(t *testing.T) {
	v, err := ParseVersion("4.8.12-abc")
	require.NoError(t, err)
	assert.Equal(t, Version{4, 8}, v)
}

func TestParseVersionLeadingNonNumericFails(t *testing.T) {
	_, err := ParseVersion("abc")
	assert.Error(t, err)
}

func TestVersionCompareMissingTrailingComponentsAreZero(t *testing.T) {
	a := MustParseVersion("4.3.2")
	b := MustParseVersion("4.3.2.1")
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(MustParseVersion("4.3.2")))
}

func TestVersionString(t *testing.T) {
	assert.Equal(t, "4.3.2", MustParseVersion("4.3.2").String())
}

func TestMustParseVersionPanicsOnGarbage(t *testing.T) {
	assert.Panics(t, func() { MustParseVersion("") })
}
