package types

// Solution is the mapping κ → QualifierBind (§3). It is treated as an
// immutable value throughout the fixpoint loop: every refinement step
// produces a new Solution rather than mutating one in place, which is what
// makes the monotonicity invariant (I2) easy to audit locally (§9 Design
// Notes: "Solution as immutable value").
//
// Invariants:
//   - I1: the key set equals the set of all κs in the problem.
//   - I2: refinement only removes qualifiers from a bind, never adds.
//   - I3: the empty bind denotes true.
type Solution struct {
	binds map[KVar]QualifierBind
}

// NewSolution seeds a solution with the initial (maximal) bind for every
// KVar, satisfying I1 up front.
func NewSolution(initial map[KVar]QualifierBind) Solution {
	binds := make(map[KVar]QualifierBind, len(initial))
	for k, qb := range initial {
		cp := make(QualifierBind, len(qb))
		copy(cp, qb)
		binds[k] = cp
	}
	return Solution{binds: binds}
}

// Get returns the current bind for k. A κ absent from the map (should not
// happen under I1) is reported as an empty bind, i.e. true.
func (s Solution) Get(k KVar) QualifierBind {
	return s.binds[k]
}

// KVars returns every κ known to the solution, in deterministic order.
func (s Solution) KVars() []KVar {
	out := make([]KVar, 0, len(s.binds))
	for k := range s.binds {
		out = append(out, k)
	}
	sortKVars(out)
	return out
}

// set returns a new Solution identical to s except that k's bind is qb. It
// is unexported: external callers must go through core.Store.Update so that
// the contracting (I2) invariant is enforced at a single choke point.
func (s Solution) set(k KVar, qb QualifierBind) Solution {
	out := make(map[KVar]QualifierBind, len(s.binds))
	for kk, vv := range s.binds {
		out[kk] = vv
	}
	out[k] = qb
	return Solution{binds: out}
}

// WithBind is the exported escape hatch used by core.Store — kept separate
// from set so the package boundary documents that ordinary code should not
// call it directly.
func (s Solution) WithBind(k KVar, qb QualifierBind) Solution {
	return s.set(k, qb)
}

func sortKVars(ks []KVar) {
	for i := 1; i < len(ks); i++ {
		for j := i; j > 0 && ks[j-1] > ks[j]; j-- {
			ks[j-1], ks[j] = ks[j], ks[j-1]
		}
	}
}
