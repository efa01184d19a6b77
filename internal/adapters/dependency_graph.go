package adapters

import (
	"sort"
	"strconv"

	"github.com/katalvlaran/lvlath/core"

	"github.com/alanz/liquidfix/internal/ports"
	"github.com/alanz/liquidfix/internal/types"
)

// DependencyGraphAdapter is the default ports.DependencyGraphPort (§1 "Out
// of scope": construction of the dependency SCC graph). One vertex per
// constraint id; a directed edge c -> c' whenever c assigns to a κ
// appearing in c''s LHS (§3 "Dependency Graph"), stored and queried through
// lvlath's core.Graph. lvlath carries no SCC algorithm of its own, so
// Tarjan's algorithm below walks that graph directly.
type DependencyGraphAdapter struct{}

// NewDependencyGraphAdapter constructs the adapter; it is stateless.
func NewDependencyGraphAdapter() DependencyGraphAdapter {
	return DependencyGraphAdapter{}
}

var _ ports.DependencyGraphPort = DependencyGraphAdapter{}

// Build implements ports.DependencyGraphPort.
func (DependencyGraphAdapter) Build(cs []types.SimpC) types.DependencyGraph {
	g := core.NewGraph(core.WithDirected(true))
	for _, c := range cs {
		_ = g.AddVertex(vertexID(c.ID))
	}

	srcIndex := make(map[types.KVar][]types.ConstraintID)
	for _, c := range cs {
		for _, k := range c.SrcKVars {
			srcIndex[k] = append(srcIndex[k], c.ID)
		}
	}

	edges := make(map[types.ConstraintID][]types.ConstraintID)
	seen := make(map[[2]types.ConstraintID]struct{})
	for _, c := range cs {
		for _, k := range c.DstKVars {
			for _, dependant := range srcIndex[k] {
				if dependant == c.ID {
					continue
				}
				key := [2]types.ConstraintID{c.ID, dependant}
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				edges[c.ID] = append(edges[c.ID], dependant)
				if _, err := g.AddEdge(vertexID(c.ID), vertexID(dependant), 1); err != nil {
					continue
				}
			}
		}
	}
	for id := range edges {
		sort.Slice(edges[id], func(i, j int) bool { return edges[id][i] < edges[id][j] })
	}

	sccOf, order := tarjanSCC(g)
	rank, maxRank := rankSCCs(order)

	return types.DependencyGraph{
		Rank:    rank,
		SCC:     sccOf,
		Edges:   edges,
		MaxRank: maxRank,
	}
}

func vertexID(id types.ConstraintID) string {
	return strconv.Itoa(int(id))
}

func constraintID(vertex string) types.ConstraintID {
	n, _ := strconv.Atoi(vertex)
	return types.ConstraintID(n)
}

// tarjanSCC runs Tarjan's strongly-connected-components algorithm over g,
// returning each vertex's component id and the components themselves in
// the order Tarjan completes them — the reverse of topological order (a
// sink component of the condensation DAG finishes first).
func tarjanSCC(g *core.Graph) (map[types.ConstraintID]int, [][]types.ConstraintID) {
	vertices := append([]string(nil), g.Vertices()...)
	sort.Strings(vertices)

	index := make(map[string]int)
	lowlink := make(map[string]int)
	onStack := make(map[string]bool)
	var stack []string
	next := 0

	sccOf := make(map[types.ConstraintID]int)
	var order [][]types.ConstraintID
	component := 0

	var strongconnect func(v string)
	strongconnect = func(v string) {
		index[v] = next
		lowlink[v] = next
		next++
		stack = append(stack, v)
		onStack[v] = true

		neighbors, _ := g.NeighborIDs(v)
		sorted := append([]string(nil), neighbors...)
		sort.Strings(sorted)
		for _, w := range sorted {
			if _, visited := index[w]; !visited {
				strongconnect(w)
				if lowlink[w] < lowlink[v] {
					lowlink[v] = lowlink[w]
				}
			} else if onStack[w] {
				if index[w] < lowlink[v] {
					lowlink[v] = index[w]
				}
			}
		}

		if lowlink[v] == index[v] {
			var comp []types.ConstraintID
			for {
				n := len(stack) - 1
				w := stack[n]
				stack = stack[:n]
				onStack[w] = false
				sccOf[constraintID(w)] = component
				comp = append(comp, constraintID(w))
				if w == v {
					break
				}
			}
			order = append(order, comp)
			component++
		}
	}

	for _, v := range vertices {
		if _, visited := index[v]; !visited {
			strongconnect(v)
		}
	}
	return sccOf, order
}

// rankSCCs assigns the topological rank of each SCC: the lowest rank goes
// to a source component of the condensation DAG (no incoming edges from
// another component), so the worklist visits dependencies before
// dependants (§3 "SCC rank"). order is in Tarjan completion order, which is
// already the reverse of topological order, so reversing it directly gives
// increasing rank.
func rankSCCs(order [][]types.ConstraintID) (map[types.ConstraintID]types.SCCRank, types.SCCRank) {
	rank := make(map[types.ConstraintID]types.SCCRank)
	var maxRank types.SCCRank
	for i, comp := range order {
		r := types.SCCRank(len(order) - 1 - i)
		for _, id := range comp {
			rank[id] = r
		}
		if r > maxRank {
			maxRank = r
		}
	}
	return rank, maxRank
}
