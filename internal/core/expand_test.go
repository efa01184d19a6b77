package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alanz/liquidfix/internal/types"
)

func expandSolution() types.Solution {
	k := types.KVar("k0")
	q := types.Qualifier{
		Name:   "nonneg",
		Params: []types.Bind{{Sym: "v", Sort: types.SortInt}},
		Body:   types.Cmp{Op: types.CmpGe, L: types.Var("v"), R: types.IntLit(0)},
	}
	return types.NewSolution(map[types.KVar]types.QualifierBind{k: {q}})
}

func TestExpandKVarsReplacesKVarAppWithItsBindConjunction(t *testing.T) {
	s := expandSolution()
	app := types.KVarApp{K: "k0", S: types.NewSubst(types.Pair("v", types.Var("x")))}

	got := expandKVars(s, app)
	want := s.Get("k0").Conjunction(app.S)
	assert.Equal(t, want, got)
}

func TestExpandKVarsRecursesThroughBooleanConnectives(t *testing.T) {
	s := expandSolution()
	app := types.KVarApp{K: "k0", S: types.NewSubst(types.Pair("v", types.Var("x")))}
	cmp := types.Cmp{Op: types.CmpGe, L: types.Var("y"), R: types.IntLit(0)}

	cases := []types.Expr{
		types.Not{X: app},
		types.And{Ps: []types.Expr{app, cmp}},
		types.Or{Ps: []types.Expr{app, cmp}},
		types.Implies{Ante: app, Conc: cmp},
		types.Iff{L: app, R: cmp},
	}
	for _, e := range cases {
		got := expandKVars(s, e)
		assert.False(t, containsKVarApp(got), "every KVarApp must be eliminated: %#v", got)
	}
}

func containsKVarApp(e types.Expr) bool {
	switch n := e.(type) {
	case types.KVarApp:
		return true
	case types.Not:
		return containsKVarApp(n.X)
	case types.And:
		return anyContainsKVarApp(n.Ps)
	case types.Or:
		return anyContainsKVarApp(n.Ps)
	case types.Implies:
		return containsKVarApp(n.Ante) || containsKVarApp(n.Conc)
	case types.Iff:
		return containsKVarApp(n.L) || containsKVarApp(n.R)
	default:
		return false
	}
}

func anyContainsKVarApp(es []types.Expr) bool {
	for _, e := range es {
		if containsKVarApp(e) {
			return true
		}
	}
	return false
}

func TestExpandKVarsDoesNotRecurseIntoLeafNodes(t *testing.T) {
	s := expandSolution()

	cmp := types.Cmp{Op: types.CmpGe, L: types.Var("x"), R: types.IntLit(0)}
	assert.Equal(t, cmp, expandKVars(s, cmp), "Cmp has no KVarApp subterms to expand into")

	app := types.App{Func: "f", Args: []types.Expr{types.Var("x")}}
	assert.Equal(t, app, expandKVars(s, app), "uninterpreted App is returned unchanged, not descended into")

	lit := types.BoolLit(true)
	assert.Equal(t, lit, expandKVars(s, lit))
}
