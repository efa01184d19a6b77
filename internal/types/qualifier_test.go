package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanz/liquidfix/internal/types"
)

func nonNegQualifier() types.Qualifier {
	return types.Qualifier{
		Name:   "NonNeg",
		Params: []types.Bind{{Sym: "v", Sort: types.SortInt}},
		Body:   types.Cmp{Op: types.CmpGe, L: types.Var("v"), R: types.IntLit(0)},
	}
}

func TestQualifierInstantiate(t *testing.T) {
	q := nonNegQualifier()
	sub := types.NewSubst(types.Pair("x", types.Var("y")))
	got, ok := q.Instantiate(sub)
	require.True(t, ok)
	assert.Equal(t, "(>= y 0)", got.String())
}

func TestQualifierInstantiateTooFewArgsFails(t *testing.T) {
	q := types.Qualifier{
		Name:   "Rel",
		Params: []types.Bind{{Sym: "v1"}, {Sym: "v2"}},
		Body:   types.Eq{L: types.Var("v1"), R: types.Var("v2")},
	}
	_, ok := q.Instantiate(types.NewSubst(types.Pair("x", types.IntLit(1))))
	assert.False(t, ok)
}

func TestQualifierInstantiateNoParamsReturnsBodyVerbatim(t *testing.T) {
	q := types.Qualifier{Name: "True", Body: types.BoolLit(true)}
	got, ok := q.Instantiate(types.Subst{})
	require.True(t, ok)
	assert.Equal(t, types.BoolLit(true), got)
}

func TestQualifierBindConjunctionOfEmptyBindIsTrue(t *testing.T) {
	var qb types.QualifierBind
	assert.Equal(t, types.BoolLit(true), qb.Conjunction(types.Subst{}))
}

func TestQualifierBindConjunctionSkipsUninstantiable(t *testing.T) {
	ok1 := nonNegQualifier()
	bad := types.Qualifier{Name: "Bad", Params: []types.Bind{{Sym: "a"}, {Sym: "b"}}, Body: types.BoolLit(true)}
	qb := types.QualifierBind{ok1, bad}
	sub := types.NewSubst(types.Pair("x", types.IntLit(1)))
	got := qb.Conjunction(sub)
	assert.Equal(t, "(>= 1 0)", got.String())
}

func TestQualifierBindContainsAndNames(t *testing.T) {
	qb := types.QualifierBind{nonNegQualifier()}
	assert.True(t, qb.Contains("NonNeg"))
	assert.False(t, qb.Contains("Other"))
	assert.Equal(t, []string{"NonNeg"}, qb.Names())
}

func TestQualifierBindRestrictPreservesOrder(t *testing.T) {
	a := types.Qualifier{Name: "A"}
	b := types.Qualifier{Name: "B"}
	c := types.Qualifier{Name: "C"}
	qb := types.QualifierBind{a, b, c}
	keep := map[string]struct{}{"C": {}, "A": {}}
	got := qb.Restrict(keep)
	assert.Equal(t, []string{"A", "C"}, got.Names())
}

func TestQualifierBindRestrictCannotGrow(t *testing.T) {
	qb := types.QualifierBind{nonNegQualifier()}
	keep := map[string]struct{}{"NonNeg": {}, "DoesNotExist": {}}
	got := qb.Restrict(keep)
	assert.Len(t, got, 1)
}
