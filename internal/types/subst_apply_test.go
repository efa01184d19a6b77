package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanz/liquidfix/internal/types"
)

func TestSubstLookupAndSymbols(t *testing.T) {
	s := types.NewSubst(types.Pair("b", types.IntLit(2)), types.Pair("a", types.IntLit(1)))
	assert.Equal(t, []types.Symbol{"a", "b"}, s.Symbols())

	v, ok := s.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, types.IntLit(1), v)

	_, ok = s.Lookup("missing")
	assert.False(t, ok)
}

func TestSubstIsEmpty(t *testing.T) {
	assert.True(t, types.Subst{}.IsEmpty())
	assert.False(t, types.NewSubst(types.Pair("a", types.IntLit(1))).IsEmpty())
}

func TestSubstComposeAppliesFirstThenSecond(t *testing.T) {
	// s: x -> y ; other: y -> 3
	s := types.NewSubst(types.Pair("x", types.Var("y")))
	other := types.NewSubst(types.Pair("y", types.IntLit(3)))
	composed := s.Compose(other)

	v, ok := composed.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, types.IntLit(3), v, "x should resolve through y to 3")

	v, ok = composed.Lookup("y")
	require.True(t, ok)
	assert.Equal(t, types.IntLit(3), v)
}

func TestSubstComposeWithEmptyIsIdentity(t *testing.T) {
	s := types.NewSubst(types.Pair("x", types.IntLit(1)))
	assert.True(t, s.Compose(types.Subst{}).Equal(s))
	assert.True(t, types.Subst{}.Compose(s).Equal(s))
}

func TestSubstEqual(t *testing.T) {
	a := types.NewSubst(types.Pair("x", types.IntLit(1)))
	b := types.NewSubst(types.Pair("x", types.IntLit(1)))
	c := types.NewSubst(types.Pair("x", types.IntLit(2)))
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.True(t, types.Subst{}.Equal(types.NewSubst()))
}

func TestApplySubstitutesFreeVar(t *testing.T) {
	e := types.Cmp{Op: types.CmpGe, L: types.Var("v"), R: types.IntLit(0)}
	s := types.NewSubst(types.Pair("v", types.Var("x")))
	got := types.Apply(s, e)
	assert.Equal(t, "(>= x 0)", got.String())
}

func TestApplyDistributesIntoKVarApp(t *testing.T) {
	app := types.KVarApp{K: "k0", S: types.NewSubst(types.Pair("a", types.Var("v")))}
	s := types.NewSubst(types.Pair("v", types.IntLit(7)))
	got := types.Apply(s, app).(types.KVarApp)

	val, ok := got.S.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, types.IntLit(7), val)
}

func TestApplyUnderBinderShadowsBoundSymbol(t *testing.T) {
	// forall x. x >= v, substituting v -> x should not capture the bound x.
	forall := types.Forall{
		Binds: []types.Bind{{Sym: "x", Sort: types.SortInt}},
		Body:  types.Cmp{Op: types.CmpGe, L: types.Var("x"), R: types.Var("v")},
	}
	s := types.NewSubst(types.Pair("v", types.Var("x")))
	got := types.Apply(s, forall).(types.Forall)

	// the original bound "x" must have been renamed to avoid capturing the
	// substituted-in free "x"
	assert.NotEqual(t, types.Symbol("x"), got.Binds[0].Sym)
	renamed := got.Binds[0].Sym
	want := types.Cmp{Op: types.CmpGe, L: types.Var(renamed), R: types.Var("x")}
	assert.Equal(t, want.String(), got.Body.String())
}

func TestApplyLeavesBoundSymbolUnsubstituted(t *testing.T) {
	// forall x. x >= 0, substituting x -> 5 must not touch the bound x.
	forall := types.Forall{
		Binds: []types.Bind{{Sym: "x", Sort: types.SortInt}},
		Body:  types.Cmp{Op: types.CmpGe, L: types.Var("x"), R: types.IntLit(0)},
	}
	s := types.NewSubst(types.Pair("x", types.IntLit(5)))
	got := types.Apply(s, forall).(types.Forall)
	assert.Equal(t, types.Symbol("x"), got.Binds[0].Sym)
	assert.Equal(t, "(>= x 0)", got.Body.String())
}

func TestApplyOnLiteralsIsIdentity(t *testing.T) {
	s := types.NewSubst(types.Pair("x", types.IntLit(1)))
	assert.Equal(t, types.BoolLit(true), types.Apply(s, types.BoolLit(true)))
	assert.Equal(t, types.IntLit(9), types.Apply(s, types.IntLit(9)))
}
