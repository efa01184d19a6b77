package types

// SCCRank is the topological rank of a strongly connected component in the
// constraint dependency graph; lower ranks are solved first (§3, GLOSSARY).
type SCCRank int

// DependencyGraph describes, for each constraint, which other constraints
// depend on it (via shared κs) and at what SCC rank it sits. Construction
// of this graph is an external collaborator (§1 "Out of scope"); the core
// only consumes it through ports.DependencyGraphPort.
type DependencyGraph struct {
	Rank     map[ConstraintID]SCCRank
	SCC      map[ConstraintID]int // SCC identifier a constraint belongs to
	Edges    map[ConstraintID][]ConstraintID
	MaxRank  SCCRank
}

// Dependants returns the constraints that depend on c (edges c -> c').
func (g DependencyGraph) Dependants(c ConstraintID) []ConstraintID {
	return g.Edges[c]
}
