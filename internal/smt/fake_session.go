package smt

import (
	"fmt"
	"sort"

	"github.com/alanz/liquidfix/internal/ports"
	"github.com/alanz/liquidfix/internal/types"
)

// searchBound is the symmetric integer range the FakeSession brute-forces
// over. It exists only so unit tests can exercise the refiner/oracle
// without a real solver subprocess; it is not a general decision
// procedure, and callers should only feed it the small fixtures the test
// suite constructs.
const searchBound = 25

// FakeSession is an in-process stand-in for a real SMT subprocess,
// satisfying ports.SMTSession by brute-forcing small-integer models. It
// plays the role the teacher's testRepoIndex fake plays for RepoIndexPort:
// a deterministic double the core's unit tests assert against, so the
// fixpoint logic can be tested without spawning z3.
type FakeSession struct {
	intVars  map[types.Symbol]struct{}
	frames   [][]types.Expr
	lastModel map[types.Symbol]int64
	closed   bool
}

var _ ports.SMTSession = (*FakeSession)(nil)

// NewFakeSession returns an empty session with one base scope.
func NewFakeSession() *FakeSession {
	return &FakeSession{
		intVars: map[types.Symbol]struct{}{},
		frames:  [][]types.Expr{{}},
	}
}

func (f *FakeSession) Declare(sym types.Symbol, _ []types.Sort, retSort types.Sort) error {
	if retSort.Name == types.SortInt.Name {
		f.intVars[sym] = struct{}{}
	}
	return nil
}

func (f *FakeSession) Assert(p types.Expr) error {
	top := len(f.frames) - 1
	f.frames[top] = append(f.frames[top], p)
	return nil
}

func (f *FakeSession) AssertWithTrigger(p types.Expr, _ []types.Expr) error {
	return f.Assert(p)
}

func (f *FakeSession) Distinct(es []types.Expr) error {
	return f.Assert(types.Expr(distinctExpr(es)))
}

func distinctExpr(es []types.Expr) types.Expr {
	var ps []types.Expr
	for i := 0; i < len(es); i++ {
		for j := i + 1; j < len(es); j++ {
			ps = append(ps, types.Ne{L: es[i], R: es[j]})
		}
	}
	return types.PAnd(ps)
}

func (f *FakeSession) Push() error {
	f.frames = append(f.frames, nil)
	return nil
}

func (f *FakeSession) Pop() error {
	if len(f.frames) <= 1 {
		return fmt.Errorf("smt: fake session pop without matching push")
	}
	f.frames = f.frames[:len(f.frames)-1]
	return nil
}

func (f *FakeSession) allAsserts() []types.Expr {
	var out []types.Expr
	for _, frame := range f.frames {
		out = append(out, frame...)
	}
	return out
}

// CheckSat brute-forces every declared Int variable over
// [-searchBound, searchBound] looking for an assignment satisfying every
// currently-asserted formula.
func (f *FakeSession) CheckSat() (ports.CheckSatResult, error) {
	vars := make([]types.Symbol, 0, len(f.intVars))
	for v := range f.intVars {
		vars = append(vars, v)
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i] < vars[j] })

	asserts := f.allAsserts()
	assignment := make(map[types.Symbol]int64, len(vars))
	if searchSat(vars, 0, assignment, asserts) {
		f.lastModel = make(map[types.Symbol]int64, len(assignment))
		for k, v := range assignment {
			f.lastModel[k] = v
		}
		return ports.Sat, nil
	}
	return ports.Unsat, nil
}

func searchSat(vars []types.Symbol, idx int, assignment map[types.Symbol]int64, asserts []types.Expr) bool {
	if idx == len(vars) {
		for _, a := range asserts {
			v, ok := evalBool(a, assignment)
			if !ok || !v {
				return false
			}
		}
		return true
	}
	for i := int64(-searchBound); i <= searchBound; i++ {
		assignment[vars[idx]] = i
		if searchSat(vars, idx+1, assignment, asserts) {
			return true
		}
	}
	delete(assignment, vars[idx])
	return false
}

func (f *FakeSession) GetValue(syms []types.Symbol) ([]ports.ValueBinding, error) {
	out := make([]ports.ValueBinding, 0, len(syms))
	for _, s := range syms {
		v, ok := f.lastModel[s]
		if !ok {
			continue
		}
		out = append(out, ports.ValueBinding{Sym: s, Text: fmt.Sprintf("%d", v)})
	}
	return out, nil
}

func (f *FakeSession) Close() (int, error) {
	f.closed = true
	return 0, nil
}

// evalBool evaluates a quantifier-free boolean expression over an integer
// assignment. KVarApp must never reach this point (§4.C always expands it
// first); encountering one is a programmer error.
func evalBool(e types.Expr, a map[types.Symbol]int64) (bool, bool) {
	switch n := e.(type) {
	case types.BoolLit:
		return bool(n), true
	case types.Not:
		v, ok := evalBool(n.X, a)
		return !v, ok
	case types.And:
		for _, p := range n.Ps {
			v, ok := evalBool(p, a)
			if !ok || !v {
				return false, ok
			}
		}
		return true, true
	case types.Or:
		any := false
		for _, p := range n.Ps {
			v, ok := evalBool(p, a)
			if !ok {
				return false, false
			}
			if v {
				any = true
			}
		}
		return any, true
	case types.Implies:
		ante, ok := evalBool(n.Ante, a)
		if !ok {
			return false, false
		}
		if !ante {
			return true, true
		}
		return evalBool(n.Conc, a)
	case types.Iff:
		l, ok1 := evalBool(n.L, a)
		r, ok2 := evalBool(n.R, a)
		return l == r, ok1 && ok2
	case types.Eq:
		l, ok1 := evalInt(n.L, a)
		r, ok2 := evalInt(n.R, a)
		return l == r, ok1 && ok2
	case types.Ne:
		l, ok1 := evalInt(n.L, a)
		r, ok2 := evalInt(n.R, a)
		return l != r, ok1 && ok2
	case types.Cmp:
		l, ok1 := evalInt(n.L, a)
		r, ok2 := evalInt(n.R, a)
		if !ok1 || !ok2 {
			return false, false
		}
		switch n.Op {
		case types.CmpLt:
			return l < r, true
		case types.CmpLe:
			return l <= r, true
		case types.CmpGt:
			return l > r, true
		case types.CmpGe:
			return l >= r, true
		}
		return false, false
	case types.KVarApp:
		return false, false
	default:
		return false, false
	}
}

func evalInt(e types.Expr, a map[types.Symbol]int64) (int64, bool) {
	switch n := e.(type) {
	case types.IntLit:
		return int64(n), true
	case types.Var:
		v, ok := a[types.Symbol(n)]
		return v, ok
	case types.Arith:
		if len(n.Args) == 0 {
			return 0, false
		}
		acc, ok := evalInt(n.Args[0], a)
		if !ok {
			return 0, false
		}
		for _, arg := range n.Args[1:] {
			v, ok := evalInt(arg, a)
			if !ok {
				return 0, false
			}
			switch n.Op {
			case types.ArithAdd:
				acc += v
			case types.ArithSub:
				acc -= v
			case types.ArithMul:
				acc *= v
			case types.ArithDiv:
				if v == 0 {
					return 0, false
				}
				acc /= v
			case types.ArithMod:
				if v == 0 {
					return 0, false
				}
				acc %= v
			}
		}
		return acc, true
	default:
		return 0, false
	}
}
