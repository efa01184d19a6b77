package adapters

import (
	"context"
	"fmt"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"github.com/alanz/liquidfix/internal/ports"
	"github.com/alanz/liquidfix/internal/types"
)

// ProblemFileAdapter is the default ports.ConstraintSource and
// ports.QualifierSource (§1 "Out of scope": constraint parsing and
// qualifier candidate enumeration), loaded once from a YAML problem file in
// the spirit of the teacher's SpecFileAdapter (internal/adapters/spec_file.go):
// one os.ReadFile, one yaml.Unmarshal, validated up front. Parsing eagerly
// at construction time — rather than lazily in Load — is what lets
// CandidatesFor and AllKVars satisfy ports.QualifierSource's error-free
// signature.
type ProblemFileAdapter struct {
	env   *types.BindEnv
	cs    []types.SimpC
	binds map[types.KVar]types.QualifierBind
	kvars []types.KVar
}

var (
	_ ports.ConstraintSource = (*ProblemFileAdapter)(nil)
	_ ports.QualifierSource  = (*ProblemFileAdapter)(nil)
)

// NewProblemFileAdapter reads and validates path, returning an adapter
// ready to serve both ports the core needs.
func NewProblemFileAdapter(path string) (*ProblemFileAdapter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("problem file %q not found", path)).
			WithCause(err)
	}
	var doc problemDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("problem file %q: failed to parse yaml", path)).
			WithCause(err)
	}
	return buildProblemFileAdapter(doc)
}

func buildProblemFileAdapter(doc problemDoc) (*ProblemFileAdapter, error) {
	entries := make([]types.BindEntry, 0, len(doc.Bindings))
	for _, b := range doc.Bindings {
		refine := types.Expr(types.BoolLit(true))
		if b.Refine != "" {
			var err error
			refine, err = parseExpr(b.Refine)
			if err != nil {
				return nil, err
			}
		}
		entries = append(entries, types.BindEntry{
			Sym:    types.Symbol(b.Sym),
			Sort:   parseSort(b.Sort),
			Refine: refine,
		})
	}
	env := types.NewBindEnv(entries)

	qualifiersByName := make(map[string]types.Qualifier, len(doc.Qualifiers))
	for _, q := range doc.Qualifiers {
		body, err := parseExpr(q.Body)
		if err != nil {
			return nil, err
		}
		params := make([]types.Bind, 0, len(q.Params))
		for _, p := range q.Params {
			params = append(params, types.Bind{Sym: types.Symbol(p.Sym), Sort: parseSort(p.Sort)})
		}
		qualifiersByName[q.Name] = types.Qualifier{Name: q.Name, Params: params, Body: body}
	}

	binds := make(map[types.KVar]types.QualifierBind, len(doc.Binds))
	for kname, qnames := range doc.Binds {
		bind := make(types.QualifierBind, 0, len(qnames))
		for _, qname := range qnames {
			q, ok := qualifiersByName[qname]
			if !ok {
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("problem file: qualifier_binds references unknown qualifier %q", qname))
			}
			bind = append(bind, q)
		}
		binds[types.KVar(kname)] = bind
	}

	cs := make([]types.SimpC, 0, len(doc.Constraints))
	kvarSeen := make(map[types.KVar]struct{})
	var kvarOrder []types.KVar
	for _, c := range doc.Constraints {
		lhs, err := parseExpr(c.LHS)
		if err != nil {
			return nil, err
		}
		rhs, err := parseExpr(c.RHS)
		if err != nil {
			return nil, err
		}
		envIDs := make([]types.BindID, len(c.Env))
		for i, id := range c.Env {
			envIDs[i] = types.BindID(id)
		}
		srcKVars := collectKVars(lhs)
		dstKVars := collectKVars(rhs)
		for _, k := range append(append([]types.KVar(nil), srcKVars...), dstKVars...) {
			if _, ok := kvarSeen[k]; !ok {
				kvarSeen[k] = struct{}{}
				kvarOrder = append(kvarOrder, k)
			}
		}
		sc := types.SimpC{
			ID:       types.ConstraintID(c.ID),
			Env:      envIDs,
			LHS:      lhs,
			RHS:      rhs,
			Tag:      c.Tag,
			IsTarget: c.IsTarget,
			SrcKVars: srcKVars,
			DstKVars: dstKVars,
		}
		if !sc.IsWellFormed() {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("problem file: constraint %d is malformed (target/κ mismatch on rhs)", c.ID))
		}
		cs = append(cs, sc)
	}

	return &ProblemFileAdapter{env: env, cs: cs, binds: binds, kvars: kvarOrder}, nil
}

// Load implements ports.ConstraintSource.
func (a *ProblemFileAdapter) Load(ctx context.Context) (*types.BindEnv, []types.SimpC, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	return a.env, append([]types.SimpC(nil), a.cs...), nil
}

// CandidatesFor implements ports.QualifierSource. A κ absent from the
// file's qualifier_binds starts with the empty bind (I3: vacuously true).
func (a *ProblemFileAdapter) CandidatesFor(k types.KVar) types.QualifierBind {
	return a.binds[k]
}

// AllKVars implements ports.QualifierSource, returning every κ occurring in
// some constraint, in first-occurrence order (§3: "the set of all κs in the
// problem").
func (a *ProblemFileAdapter) AllKVars() []types.KVar {
	return append([]types.KVar(nil), a.kvars...)
}

func collectKVars(e types.Expr) []types.KVar {
	seen := make(map[types.KVar]struct{})
	var out []types.KVar
	var walk func(types.Expr)
	walk = func(e types.Expr) {
		switch n := e.(type) {
		case types.KVarApp:
			if _, ok := seen[n.K]; !ok {
				seen[n.K] = struct{}{}
				out = append(out, n.K)
			}
		case types.Not:
			walk(n.X)
		case types.And:
			for _, p := range n.Ps {
				walk(p)
			}
		case types.Or:
			for _, p := range n.Ps {
				walk(p)
			}
		case types.Implies:
			walk(n.Ante)
			walk(n.Conc)
		case types.Iff:
			walk(n.L)
			walk(n.R)
		}
	}
	walk(e)
	return out
}
