// Package worklist implements §4.F: scheduling constraints in SCC/rank
// order, requeuing dependants on change, and detecting fixpoint.
package worklist

import (
	"sort"

	"github.com/alanz/liquidfix/internal/types"
)

// Worklist is a priority queue keyed by (rank, ..., id) as described in §3
// "Worklist". Constraints are grouped into per-rank FIFO queues; pop always
// drains the lowest non-empty rank first, guaranteeing dependencies are
// revisited before their dependants within one fixpoint pass.
type Worklist struct {
	graph     types.DependencyGraph
	queues    [][]types.ConstraintID // queues[rank]
	queued    map[types.ConstraintID]bool
	byID      map[types.ConstraintID]types.SimpC
	targets   []types.SimpC
	lastSCC   int
	haveLast  bool
	iteration int
}

// Init builds a worklist from the dependency graph and constraint set
// (§4.F "init(solverInfo) -> W"). Every constraint starts queued, one
// initial fixpoint pass visits everything.
func Init(graph types.DependencyGraph, cs []types.SimpC) *Worklist {
	w := &Worklist{
		graph:  graph,
		queues: make([][]types.ConstraintID, graph.MaxRank+1),
		queued: map[types.ConstraintID]bool{},
		byID:   map[types.ConstraintID]types.SimpC{},
	}
	sorted := append([]types.SimpC(nil), cs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	for _, c := range sorted {
		w.byID[c.ID] = c
		if c.IsTarget {
			w.targets = append(w.targets, c)
		}
		w.enqueue(c.ID)
	}
	return w
}

func (w *Worklist) enqueue(id types.ConstraintID) {
	if w.queued[id] {
		return
	}
	rank := w.graph.Rank[id]
	w.queues[rank] = append(w.queues[rank], id)
	w.queued[id] = true
}

// Pop implements pop(W) -> Maybe (c, W', newScc, rank). It returns ok=false
// exactly when every constraint has been popped at least once since the
// last push on it — i.e. every queue is empty — which is the §4.F fixpoint
// condition.
func (w *Worklist) Pop() (c types.SimpC, newScc bool, rank types.SCCRank, ok bool) {
	for r, q := range w.queues {
		if len(q) == 0 {
			continue
		}
		id := q[0]
		w.queues[r] = q[1:]
		delete(w.queued, id)
		c = w.byID[id]
		rank = types.SCCRank(r)
		scc := w.graph.SCC[id]
		newScc = !w.haveLast || scc != w.lastSCC
		if newScc {
			w.iteration++
		}
		w.lastSCC = scc
		w.haveLast = true
		return c, newScc, rank, true
	}
	return types.SimpC{}, false, 0, false
}

// Push reinserts c behind its current peers at its own rank (§4.F: "push
// reinserts a constraint behind its peers to guarantee bounded re-visits
// per iteration"). A constraint already queued is left where it is.
func (w *Worklist) Push(c types.SimpC) {
	w.enqueue(c.ID)
}

// UnsatCandidates returns every target constraint (§3 "Target
// constraint"); by the time the driver calls this, Pop has returned
// ok=false, so every constraint's ancestors have converged.
func (w *Worklist) UnsatCandidates() []types.SimpC {
	return append([]types.SimpC(nil), w.targets...)
}

// WRanks is the scalar iteration-budget hint of §3 "Worklist": the number
// of distinct SCC ranks in the dependency graph, used by a driver that
// wants to cap total ticks at a multiple of it (§4.F "Iteration bound").
func (w *Worklist) WRanks() int {
	return len(w.queues)
}

// Iteration returns the number of pops so far that reported newScc, i.e.
// that entered a different SCC from the previous pop (§4.F).
func (w *Worklist) Iteration() int {
	return w.iteration
}
