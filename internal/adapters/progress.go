package adapters

import (
	"github.com/rs/zerolog"

	"github.com/alanz/liquidfix/internal/ports"
)

// ProgressAdapter is a ports.ProgressPort that logs each new SCC tick at
// info level via zerolog, for a real CLI run with --solver-stats (§1 "Out
// of scope": progress rendering). ports.NoopProgress covers the default
// case; this is the alternative a caller opts into.
type ProgressAdapter struct {
	Logger zerolog.Logger
}

// NewProgressAdapter builds an adapter over the given logger.
func NewProgressAdapter(logger zerolog.Logger) ProgressAdapter {
	return ProgressAdapter{Logger: logger}
}

var _ ports.ProgressPort = ProgressAdapter{}

func (p ProgressAdapter) Tick(iteration int, wRanks int) {
	p.Logger.Info().
		Int("iteration", iteration).
		Int("wranks", wRanks).
		Msg("fixpoint: new scc reached")
}

func (p ProgressAdapter) Done() {
	p.Logger.Info().Msg("fixpoint: worklist drained")
}
