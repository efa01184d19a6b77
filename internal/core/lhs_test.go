package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alanz/liquidfix/internal/core"
	"github.com/alanz/liquidfix/internal/types"
)

func TestLHSPredConjoinsEnvAndOwnLHS(t *testing.T) {
	env := types.NewBindEnv([]types.BindEntry{
		{Sym: "x", Sort: types.SortInt, Refine: types.Cmp{Op: types.CmpGe, L: types.Var("x"), R: types.IntLit(0)}},
	})
	asm := core.NewLHSAssembler(env)

	c := types.SimpC{
		Env: []types.BindID{0},
		LHS: types.Cmp{Op: types.CmpLe, L: types.Var("x"), R: types.IntLit(10)},
	}
	sol := types.NewSolution(nil)

	got := asm.LHSPred(sol, c)
	want := types.And{Ps: []types.Expr{
		types.Cmp{Op: types.CmpGe, L: types.Var("x"), R: types.IntLit(0)},
		types.Cmp{Op: types.CmpLe, L: types.Var("x"), R: types.IntLit(10)},
	}}
	assert.Equal(t, want.String(), got.String())
}

func TestLHSPredExpandsOwnLHSKVarApp(t *testing.T) {
	env := types.NewBindEnv(nil)
	asm := core.NewLHSAssembler(env)

	k := types.KVar("k0")
	q := types.Qualifier{
		Name:   "q",
		Params: []types.Bind{{Sym: "v", Sort: types.SortInt}},
		Body:   types.Cmp{Op: types.CmpGe, L: types.Var("v"), R: types.IntLit(0)},
	}
	sol := types.NewSolution(map[types.KVar]types.QualifierBind{k: {q}})

	c := types.SimpC{
		LHS: types.KVarApp{K: k, S: types.NewSubst(types.Pair("v", types.Var("x")))},
	}

	got := asm.LHSPred(sol, c)
	assert.Contains(t, got.String(), "x")
}

func TestLHSPredOfEmptyEnvAndTrueLHSIsTrue(t *testing.T) {
	env := types.NewBindEnv(nil)
	asm := core.NewLHSAssembler(env)
	c := types.SimpC{LHS: types.BoolLit(true)}
	sol := types.NewSolution(nil)

	got := asm.LHSPred(sol, c)
	assert.Equal(t, types.BoolLit(true).String(), got.String())
}
