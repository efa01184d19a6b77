// Package core implements the predicate-abstraction fixpoint loop's
// per-constraint components: the solution store (§4.B), the LHS assembler
// (§4.C), the RHS candidate generator (§4.D), the refiner (§4.E), the
// oracle facade (§4.H), and the Engine (§4.F) that drives the refiner from
// a worklist. The worklist scheduler itself lives in internal/worklist and
// the result builder (§4.G) in internal/result.
package core

import "github.com/alanz/liquidfix/internal/types"

// Store provides the pure, contracting update operation of §4.B over an
// immutable types.Solution value. It has no state of its own — every
// method takes the solution it operates on and returns a new one, which is
// what makes monotonicity (I2) trivial to check at each call site.
type Store struct{}

// NewStore constructs a Store. It carries no configuration today; it exists
// as a named type so call sites read core.Store{}.Update(...) rather than a
// bare package function, matching how the teacher scopes stateless
// algorithms behind a receiver (core.ResolverCore, core.SpecCompiler).
func NewStore() Store {
	return Store{}
}

// Get returns the current bind for k.
func (Store) Get(s types.Solution, k types.KVar) types.QualifierBind {
	return s.Get(k)
}

// KQ pairs a κ with one qualifier that survived filtering, the shape
// §4.B's contract calls kqs.
type KQ struct {
	K types.KVar
	Q types.Qualifier
}

// Update restricts each k in ks to exactly the qualifiers that appear for
// it in kqs (§4.B contract), returning the new solution and whether any
// bind actually shrank. It is contracting by construction: Restrict only
// ever removes qualifiers, it can't add ones that weren't already present
// in the current bind.
func (Store) Update(s types.Solution, ks []types.KVar, kqs []KQ) (types.Solution, bool) {
	keep := make(map[types.KVar]map[string]struct{}, len(ks))
	for _, k := range ks {
		keep[k] = map[string]struct{}{}
	}
	for _, kq := range kqs {
		if _, tracked := keep[kq.K]; tracked {
			keep[kq.K][kq.Q.Name] = struct{}{}
		}
	}
	changed := false
	out := s
	for _, k := range ks {
		before := out.Get(k)
		after := before.Restrict(keep[k])
		if len(after) != len(before) {
			changed = true
		}
		out = out.WithBind(k, after)
	}
	return out, changed
}
