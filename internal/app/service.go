package app

import (
	"context"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"github.com/alanz/liquidfix/internal/adapters"
	"github.com/alanz/liquidfix/internal/core"
	"github.com/alanz/liquidfix/internal/ports"
	"github.com/alanz/liquidfix/internal/result"
	"github.com/alanz/liquidfix/internal/smt"
	"github.com/alanz/liquidfix/internal/types"
)

// Service is the single entry point that wires every collaborator §1 calls
// "out of scope" — the problem source, the SMT session, the dependency
// graph — into one run of the core fixpoint loop (§2 Dataflow).
type Service struct{}

// NewService constructs a Service. It carries no state: every Solve call is
// independent, each spawning and tearing down its own SMT session.
func NewService() Service {
	return Service{}
}

// Solve runs one complete solve: load the problem, stand up an SMT session,
// drive the fixpoint engine to completion, then classify and materialise
// the result (§2 Dataflow, §4.G).
func (Service) Solve(ctx context.Context, cfg Config) (types.Result, error) {
	if cfg.Gradual {
		return types.Result{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("gradual refinement requires an external gradual solver; this build only drives the core's own fixpoint loop")
	}

	var warnings []string
	if cfg.UseElim {
		warnings = append(warnings, "use-elim requested but no external κ-elimination preprocessor is bundled; solving against the constraint dependency graph unmodified")
		log.Warn().Msg("app: --use-elim has no bundled preprocessor, proceeding without elimination")
	}

	source, err := adapters.NewProblemFileAdapter(cfg.ProblemFile)
	if err != nil {
		return types.Result{}, err
	}
	env, cs, err := source.Load(ctx)
	if err != nil {
		return types.Result{}, err
	}

	session, err := smt.NewSession(ctx, smt.Config{
		Options: cfg.smtOptions(),
		LogPath: smtLogPath(cfg),
		Logger:  log.Logger,
	})
	if err != nil {
		return types.Result{}, err
	}
	defer func() {
		if _, closeErr := session.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("app: error closing smt session")
		}
	}()

	resolver := core.NewSortResolver(env, env.AllIDs())
	learnQualifierSorts(resolver, source)

	oracle := core.NewOracle(session, resolver)
	assembler := core.NewLHSAssembler(env)
	refiner := core.NewRefiner(assembler, oracle)
	graph := adapters.NewDependencyGraphAdapter().Build(cs)
	initial := buildInitialSolution(source)

	var progress ports.ProgressPort = ports.NoopProgress{}
	if cfg.SolverStats {
		progress = adapters.NewProgressAdapter(log.Logger)
	}

	engine := core.NewEngine(refiner, graph, progress)
	engine.MaxTickRatio = cfg.MaxTickRatio

	solution, w, err := engine.Run(cs, initial)
	if err != nil {
		return types.Result{Status: types.StatusCrash, Warnings: warnings}, err
	}

	builder := result.NewBuilder(env, assembler, oracle, cfg.MinimalSol, nil)
	res, err := builder.Build(ctx, solution, w)
	if err != nil {
		return types.Result{}, err
	}
	res.Warnings = append(res.Warnings, warnings...)

	if cfg.SolverStats {
		log.Info().
			Int("iterations", w.Iteration()).
			Int("wranks", w.WRanks()).
			Msg("app: solver stats")
	}

	return res, nil
}

// smtLogPath derives the sidecar transcript path from §6 "Log file": the
// problem file's base name under the configured log directory. An empty
// SMTLogDir disables the transcript.
func smtLogPath(cfg Config) string {
	if cfg.SMTLogDir == "" {
		return ""
	}
	return filepath.Join(cfg.SMTLogDir, filepath.Base(smt.LogCommandPath(cfg.ProblemFile)))
}

func buildInitialSolution(source *adapters.ProblemFileAdapter) types.Solution {
	initial := make(map[types.KVar]types.QualifierBind, len(source.AllKVars()))
	for _, k := range source.AllKVars() {
		initial[k] = source.CandidatesFor(k)
	}
	return types.NewSolution(initial)
}

// learnQualifierSorts teaches the resolver the sort of every qualifier
// parameter (§3): these symbols are bound by a qualifier's own parameter
// list rather than the shared BindEnv, so the resolver would otherwise
// default them to Int even when a qualifier is declared over Bool or Real.
func learnQualifierSorts(resolver core.SortResolver, source *adapters.ProblemFileAdapter) {
	for _, k := range source.AllKVars() {
		for _, q := range source.CandidatesFor(k) {
			for _, p := range q.Params {
				resolver.Learn(p.Sym, p.Sort)
			}
		}
	}
}
