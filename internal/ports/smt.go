package ports

import "github.com/alanz/liquidfix/internal/types"

// CheckSatResult is the three-valued answer an SMT session's check-sat
// returns (§3 "Worklist" area / §4.A response grammar).
type CheckSatResult int

const (
	Sat CheckSatResult = iota
	Unsat
	Unknown
)

func (r CheckSatResult) String() string {
	switch r {
	case Sat:
		return "sat"
	case Unsat:
		return "unsat"
	default:
		return "unknown"
	}
}

// ValueBinding is one (symbol, raw value text) pair returned by get-value
// (§4.A response grammar).
type ValueBinding struct {
	Sym  types.Symbol
	Text string
}

// SMTSession is the contract of §4.A: one long-lived solver subprocess
// conversation. Every session method may return an error that is fatal to
// the whole solve (§7 categories 1-3) — callers propagate it up. Close is
// deferred by whoever opened the session (app.Service.Solve); Bracket only
// pairs Push with Pop.
type SMTSession interface {
	Declare(sym types.Symbol, argSorts []types.Sort, retSort types.Sort) error
	Assert(p types.Expr) error
	AssertWithTrigger(p types.Expr, triggers []types.Expr) error
	Distinct(es []types.Expr) error
	Push() error
	Pop() error
	CheckSat() (CheckSatResult, error)
	GetValue(syms []types.Symbol) ([]ValueBinding, error)
	Close() (exitCode int, err error)
}

// Bracket issues Push, runs body, then Pop on every exit path including a
// panic or an error return from body — the scoped-acquisition discipline of
// §4.A / §5 "Scoped acquisition".
func Bracket(s SMTSession, body func() error) (err error) {
	if pushErr := s.Push(); pushErr != nil {
		return pushErr
	}
	defer func() {
		popErr := s.Pop()
		if err == nil {
			err = popErr
		}
	}()
	return body()
}

// OracleFacade is the narrow §4.H dependency point between the fixpoint
// logic (LHS assembler, refiner, result builder) and the SMT session.
type OracleFacade interface {
	// FilterValid returns the subset of cands for which lhs ⇒ p is valid,
	// i.e. lhs ∧ ¬p is UNSAT, implemented as one SMT bracket per call (§4.E
	// step 3).
	FilterValid(lhs types.Expr, cands []Candidate) ([]Candidate, error)
	// Valid is the single-predicate convenience built on FilterValid (§4.H).
	Valid(p, q types.Expr) (bool, error)
}

// Candidate pairs a concrete predicate with an opaque tag the caller wants
// back for any member of cands that survives filtering. The refiner tags
// each candidate with its core.RHSCandidate; Valid, which the result
// builder uses, passes a single candidate with a nil tag.
type Candidate struct {
	Pred types.Expr
	Tag  any
}
