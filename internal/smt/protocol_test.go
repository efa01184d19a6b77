package smt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanz/liquidfix/internal/types"
)

func lineReaderOf(lines []string) LineReader {
	i := 0
	return func() (string, error) {
		if i >= len(lines) {
			return "", assert.AnError
		}
		line := lines[i]
		i++
		return line, nil
	}
}

func TestReadResponseSat(t *testing.T) {
	resp, err := ReadResponse(lineReaderOf([]string{"sat"}))
	require.NoError(t, err)
	assert.Equal(t, RespSat, resp.Kind)
	assert.Equal(t, "sat", resp.String())
}

func TestReadResponseUnsat(t *testing.T) {
	resp, err := ReadResponse(lineReaderOf([]string{"unsat"}))
	require.NoError(t, err)
	assert.Equal(t, RespUnsat, resp.Kind)
}

func TestReadResponseMultilineError(t *testing.T) {
	resp, err := ReadResponse(lineReaderOf([]string{`(error "line one`, `line two")`}))
	require.NoError(t, err)
	assert.Equal(t, RespError, resp.Kind)
	assert.Equal(t, "line one\nline two", resp.ErrorMsg)
}

func TestReadResponseModel(t *testing.T) {
	resp, err := ReadResponse(lineReaderOf([]string{"((x 3) (y (- 1)))"}))
	require.NoError(t, err)
	require.Equal(t, RespModel, resp.Kind)
	require.Len(t, resp.Model, 2)
	assert.Equal(t, types.Symbol("x"), resp.Model[0].Sym)
	assert.Equal(t, "3", resp.Model[0].Text)
	assert.Equal(t, types.Symbol("y"), resp.Model[1].Sym)
	assert.Equal(t, "(- 1)", resp.Model[1].Text)
}

func TestReadResponsePropagatesReadError(t *testing.T) {
	_, err := ReadResponse(lineReaderOf(nil))
	assert.Error(t, err)
}

func TestParseResponseUnparseableErrors(t *testing.T) {
	_, err := parseResponse("not-a-valid-response !")
	assert.Error(t, err)
}

func TestResponseStringRoundTrip(t *testing.T) {
	cases := []Response{
		{Kind: RespSat},
		{Kind: RespUnsat},
		{Kind: RespUnknown},
		{Kind: RespError, ErrorMsg: "boom"},
	}
	want := []string{"sat", "unsat", "unknown", `(error "boom")`}
	for i, c := range cases {
		assert.Equal(t, want[i], c.String())
	}
}
