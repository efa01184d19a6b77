package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanz/liquidfix/internal/core"
	"github.com/alanz/liquidfix/internal/types"
)

func TestRHSCandsOfTargetConstraintIsEmpty(t *testing.T) {
	gen := core.NewRHSCandidateGenerator()
	c := types.SimpC{IsTarget: true, RHS: types.BoolLit(false)}
	ks, cands := gen.RHSCands(types.NewSolution(nil), c)
	assert.Nil(t, ks)
	assert.Nil(t, cands)
}

func TestRHSCandsGeneratesOneCandidatePerQualifier(t *testing.T) {
	k := types.KVar("k0")
	q1 := types.Qualifier{Name: "nonneg", Body: types.Cmp{Op: types.CmpGe, L: types.Var("v"), R: types.IntLit(0)}}
	q2 := types.Qualifier{Name: "small", Body: types.Cmp{Op: types.CmpLe, L: types.Var("v"), R: types.IntLit(100)}}
	sol := types.NewSolution(map[types.KVar]types.QualifierBind{k: {q1, q2}})

	c := types.SimpC{
		RHS: types.KVarApp{K: k, S: types.NewSubst(types.Pair("v", types.Var("y")))},
	}

	gen := core.NewRHSCandidateGenerator()
	ks, cands := gen.RHSCands(sol, c)

	require.Len(t, ks, 1)
	assert.Equal(t, k, ks[0])
	require.Len(t, cands, 2)
	assert.Equal(t, k, cands[0].K)
	assert.Equal(t, k, cands[1].K)
}

func TestRHSCandsDedupesRepeatedKVarAcrossConjuncts(t *testing.T) {
	k := types.KVar("k0")
	q := types.Qualifier{Name: "nonneg", Body: types.Cmp{Op: types.CmpGe, L: types.Var("v"), R: types.IntLit(0)}}
	sol := types.NewSolution(map[types.KVar]types.QualifierBind{k: {q}})

	app := types.KVarApp{K: k, S: types.NewSubst(types.Pair("v", types.Var("y")))}
	c := types.SimpC{RHS: types.And{Ps: []types.Expr{app, app}}}

	gen := core.NewRHSCandidateGenerator()
	ks, _ := gen.RHSCands(sol, c)
	assert.Len(t, ks, 1, "the same kvar appearing twice should only be reported once")
}

func TestRHSCandsSkipsNonKVarConjuncts(t *testing.T) {
	c := types.SimpC{RHS: types.Cmp{Op: types.CmpGe, L: types.Var("x"), R: types.IntLit(0)}}
	gen := core.NewRHSCandidateGenerator()
	ks, cands := gen.RHSCands(types.NewSolution(nil), c)
	assert.Nil(t, ks)
	assert.Nil(t, cands)
}

func TestRHSCandsSkipsQualifiersThatFailToInstantiate(t *testing.T) {
	k := types.KVar("k0")
	q := types.Qualifier{
		Name:   "needsTwoArgs",
		Params: []types.Bind{{Sym: "a", Sort: types.SortInt}, {Sym: "b", Sort: types.SortInt}},
		Body:   types.Cmp{Op: types.CmpGe, L: types.Var("a"), R: types.Var("b")},
	}
	sol := types.NewSolution(map[types.KVar]types.QualifierBind{k: {q}})

	// substitution only provides one value, so Instantiate can't fill both params.
	c := types.SimpC{RHS: types.KVarApp{K: k, S: types.NewSubst(types.Pair("v", types.Var("y")))}}

	gen := core.NewRHSCandidateGenerator()
	_, cands := gen.RHSCands(sol, c)
	assert.Empty(t, cands)
}
