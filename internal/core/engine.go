package core

import (
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"

	"github.com/alanz/liquidfix/internal/ports"
	"github.com/alanz/liquidfix/internal/types"
	"github.com/alanz/liquidfix/internal/worklist"
)

// Engine is the driver that pairs the worklist (§4.F) with the refiner
// (§4.E): "F drives E" (§2 Dataflow). It pops a constraint, refines it,
// and on change requeues every dependant so the change propagates before
// the next fixpoint check.
type Engine struct {
	Refiner      Refiner
	Graph        types.DependencyGraph
	MaxTickRatio int // 0 disables the iteration cap (§4.F "Iteration bound")
	Progress     ports.ProgressPort
	Logger       zerolog.Logger
}

// NewEngine wires a refiner and dependency graph into a driver. Progress
// defaults to ports.NoopProgress when nil.
func NewEngine(refiner Refiner, graph types.DependencyGraph, progress ports.ProgressPort) Engine {
	if progress == nil {
		progress = ports.NoopProgress{}
	}
	return Engine{Refiner: refiner, Graph: graph, Progress: progress}
}

// Run drives constraints to a fixpoint starting from the given Solution,
// returning the final solution and the worklist (the result builder needs
// it for UnsatCandidates). Termination follows from §4.E's monotonicity
// unless MaxTickRatio is set, in which case overflow aborts with a
// diagnostic (§4.F "Iteration bound").
func (e Engine) Run(cs []types.SimpC, initial types.Solution) (types.Solution, *worklist.Worklist, error) {
	w := worklist.Init(e.Graph, cs)
	solution := initial
	ticks := 0
	tickCap := 0
	if e.MaxTickRatio > 0 {
		tickCap = e.MaxTickRatio * w.WRanks()
	}

	for {
		c, newScc, rank, ok := w.Pop()
		if !ok {
			break
		}
		if newScc {
			e.Progress.Tick(w.Iteration(), w.WRanks())
		}
		_ = rank

		ticks++
		if tickCap > 0 && ticks > tickCap {
			return solution, w, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("worklist: exceeded iteration cap without reaching a fixpoint")
		}

		changed, next, err := e.Refiner.RefineC(w.Iteration(), solution, c)
		if err != nil {
			return solution, w, err
		}
		solution = next
		if changed {
			for _, dep := range e.Graph.Dependants(c.ID) {
				w.Push(depConstraint(cs, dep))
			}
		}
	}
	e.Progress.Done()
	return solution, w, nil
}

func depConstraint(cs []types.SimpC, id types.ConstraintID) types.SimpC {
	for _, c := range cs {
		if c.ID == id {
			return c
		}
	}
	return types.SimpC{ID: id}
}
