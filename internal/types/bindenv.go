package types

// BindEntry is one (symbol, sort, refinement) triple stored in a
// BindEnv (§3).
type BindEntry struct {
	Sym    Symbol
	Sort   Sort
	Refine Expr // the refinement predicate over Sym, e.g. v >= 0; BoolLit(true) if none
}

// BindID indexes a BindEntry inside a BindEnv.
type BindID int

// BindEnv is a persistent, indexed table of (symbol, sort, refinement)
// triples shared across constraints; constraints carry only index lists
// into it (§3), avoiding the need to duplicate a large typing environment
// per constraint.
type BindEnv struct {
	entries []BindEntry
}

// NewBindEnv builds an environment from entries in insertion order; the
// returned BindID for entries[i] is i.
func NewBindEnv(entries []BindEntry) *BindEnv {
	return &BindEnv{entries: append([]BindEntry(nil), entries...)}
}

// AllIDs returns every BindID in the environment, in declaration order —
// the full set a caller seeding a SortResolver over the whole problem
// needs, as opposed to the per-constraint subset Env carries.
func (e *BindEnv) AllIDs() []BindID {
	ids := make([]BindID, len(e.entries))
	for i := range e.entries {
		ids[i] = BindID(i)
	}
	return ids
}

// Lookup returns the entry at id.
func (e *BindEnv) Lookup(id BindID) (BindEntry, bool) {
	if id < 0 || int(id) >= len(e.entries) {
		return BindEntry{}, false
	}
	return e.entries[id], true
}

// Predicate composes the environment predicate for a list of BindIDs: the
// conjunction of each entry's refinement as stored, with no renaming (a
// refinement is written in terms of the entry's own Sym). IDs not in the
// environment are skipped.
func (e *BindEnv) Predicate(ids []BindID) Expr {
	ps := make([]Expr, 0, len(ids))
	for _, id := range ids {
		entry, ok := e.Lookup(id)
		if !ok {
			continue
		}
		ps = append(ps, entry.Refine)
	}
	return PAnd(ps)
}

// Declarations returns the (symbol, sort) pairs for ids, in order, for the
// SMT session to declare before asserting a predicate that mentions them.
func (e *BindEnv) Declarations(ids []BindID) []Bind {
	out := make([]Bind, 0, len(ids))
	for _, id := range ids {
		entry, ok := e.Lookup(id)
		if !ok {
			continue
		}
		out = append(out, Bind{Sym: entry.Sym, Sort: entry.Sort})
	}
	return out
}
