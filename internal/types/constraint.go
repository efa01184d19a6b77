package types

// ConstraintID uniquely identifies a SimpC within a problem.
type ConstraintID int

// SimpC is a single Horn implication Γ ⊢ LHS ⇒ RHS (§3). The RHS is
// syntactically either a conjunction of KVar applications (a refining
// constraint) or a concrete proposition (a target constraint, IsTarget
// true).
type SimpC struct {
	ID        ConstraintID
	Env       []BindID // indices into the shared BindEnv
	LHS       Expr
	RHS       Expr
	Tag       string // user-supplied label surfaced in an Unsafe result
	IsTarget  bool
	SrcKVars  []KVar // κs appearing in LHS, used to build dependency edges
	DstKVars  []KVar // κs appearing in RHS, used to build dependency edges
}

// IsWellFormed checks the §3 invariant that a target constraint's RHS holds
// no KVar application and a non-target constraint's RHS is a (possibly
// singleton) conjunction of KVar applications. The problem-file loader
// rejects a constraint that fails this check with an invalid-argument
// error, so a malformed constraint never reaches the result classifier.
func (c SimpC) IsWellFormed() bool {
	hasKVar := exprHasKVar(c.RHS)
	if c.IsTarget {
		return !hasKVar
	}
	return hasKVar
}

func exprHasKVar(e Expr) bool {
	switch n := e.(type) {
	case KVarApp:
		return true
	case And:
		for _, p := range n.Ps {
			if exprHasKVar(p) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
