package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/alanz/liquidfix/internal/app"
	"github.com/alanz/liquidfix/internal/smt"
	"github.com/alanz/liquidfix/internal/types"
)

type solveOptions struct {
	Problem          string
	Solver           string
	Extensionality   bool
	AlphaEquivalence bool
	BetaEquivalence  bool
	NormalForm       bool
	StringTheory     bool
	UseElim          bool
	MinimalSol       bool
	SolverStats      bool
	Gradual          bool
	SMTLogDir        string
	MaxTickRatio     int
}

func newSolveCommand() *cobra.Command {
	opts := solveOptions{}
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Run the predicate-abstraction fixpoint loop over a problem file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSolve(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Problem, "problem", "", "Problem file path")
	cmd.Flags().StringVar(&opts.Solver, "solver", "z3", "SMT backend: z3, mathsat, cvc4")
	cmd.Flags().BoolVar(&opts.Extensionality, "extensionality", false, "Enable array extensionality / mbqi")
	cmd.Flags().BoolVar(&opts.AlphaEquivalence, "alpha-equivalence", false, "Normalise bound-variable names before querying the oracle")
	cmd.Flags().BoolVar(&opts.BetaEquivalence, "beta-equivalence", false, "Beta-reduce substitutions eagerly")
	cmd.Flags().BoolVar(&opts.NormalForm, "normal-form", false, "Put queries into a canonical normal form before asserting")
	cmd.Flags().BoolVar(&opts.StringTheory, "string-theory", false, "Enable SMT-LIB2 string theory (Z3 >= 4.4.2 only)")
	cmd.Flags().BoolVar(&opts.UseElim, "use-elim", false, "Use an external κ-elimination preprocessor (not bundled)")
	cmd.Flags().BoolVar(&opts.MinimalSol, "minimal-sol", false, "Minimise each κ's bind before reporting it")
	cmd.Flags().BoolVar(&opts.SolverStats, "solver-stats", false, "Log worklist/tick statistics after solving")
	cmd.Flags().BoolVar(&opts.Gradual, "gradual", false, "Delegate to an external gradual solver (not bundled; always fails)")
	cmd.Flags().StringVar(&opts.SMTLogDir, "smt-log-dir", "", "Directory for the SMT session's sidecar transcript log")
	cmd.Flags().IntVar(&opts.MaxTickRatio, "max-tick-ratio", 0, "Cap worklist ticks at this multiple of the rank count (0 disables)")

	_ = viper.BindPFlag("problem", cmd.Flags().Lookup("problem"))
	_ = viper.BindPFlag("solver", cmd.Flags().Lookup("solver"))
	_ = viper.BindPFlag("extensionality", cmd.Flags().Lookup("extensionality"))
	_ = viper.BindPFlag("alpha_equivalence", cmd.Flags().Lookup("alpha-equivalence"))
	_ = viper.BindPFlag("beta_equivalence", cmd.Flags().Lookup("beta-equivalence"))
	_ = viper.BindPFlag("normal_form", cmd.Flags().Lookup("normal-form"))
	_ = viper.BindPFlag("string_theory", cmd.Flags().Lookup("string-theory"))
	_ = viper.BindPFlag("use_elim", cmd.Flags().Lookup("use-elim"))
	_ = viper.BindPFlag("minimal_sol", cmd.Flags().Lookup("minimal-sol"))
	_ = viper.BindPFlag("solver_stats", cmd.Flags().Lookup("solver-stats"))
	_ = viper.BindPFlag("gradual", cmd.Flags().Lookup("gradual"))
	_ = viper.BindPFlag("smt_log_dir", cmd.Flags().Lookup("smt-log-dir"))
	_ = viper.BindPFlag("max_tick_ratio", cmd.Flags().Lookup("max-tick-ratio"))

	return cmd
}

func runSolve(ctx context.Context, cmd *cobra.Command, opts solveOptions) error {
	solverKind, err := smt.ParseKind(resolveString(cmd, opts.Solver, "solver", "solver"))
	if err != nil {
		return err
	}

	service := newAppService()
	res, err := service.Solve(ctx, app.Config{
		ProblemFile:      resolveString(cmd, opts.Problem, "problem", "problem"),
		Solver:           solverKind,
		Extensionality:   resolveBool(cmd, opts.Extensionality, "extensionality", "extensionality"),
		AlphaEquivalence: resolveBool(cmd, opts.AlphaEquivalence, "alpha_equivalence", "alpha-equivalence"),
		BetaEquivalence:  resolveBool(cmd, opts.BetaEquivalence, "beta_equivalence", "beta-equivalence"),
		NormalForm:       resolveBool(cmd, opts.NormalForm, "normal_form", "normal-form"),
		StringTheory:     resolveBool(cmd, opts.StringTheory, "string_theory", "string-theory"),
		UseElim:          resolveBool(cmd, opts.UseElim, "use_elim", "use-elim"),
		MinimalSol:       resolveBool(cmd, opts.MinimalSol, "minimal_sol", "minimal-sol"),
		SolverStats:      resolveBool(cmd, opts.SolverStats, "solver_stats", "solver-stats"),
		Gradual:          resolveBool(cmd, opts.Gradual, "gradual", "gradual"),
		SMTLogDir:        resolveString(cmd, opts.SMTLogDir, "smt_log_dir", "smt-log-dir"),
		MaxTickRatio:     resolveInt(cmd, opts.MaxTickRatio, "max_tick_ratio", "max-tick-ratio"),
	})
	if err != nil {
		return err
	}

	printResult(res)
	return nil
}

func printResult(res types.Result) {
	fmt.Printf("status: %s\n", res.Status)
	for _, u := range res.Unsafe {
		fmt.Printf("  unsafe: constraint %d (%s)\n", u.ID, u.Tag)
	}
	kvars := make([]string, 0, len(res.Solution))
	for k := range res.Solution {
		kvars = append(kvars, string(k))
	}
	sort.Strings(kvars)
	for _, k := range kvars {
		fmt.Printf("  %s := %s\n", k, res.Solution[types.KVar(k)].String())
	}
	for _, w := range res.Warnings {
		fmt.Printf("warning: %s\n", w)
	}
}

func resolveInt(cmd *cobra.Command, value int, key string, flagName string) int {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetInt(key)
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveBool(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetBool(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
