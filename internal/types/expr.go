package types

import (
	"fmt"
	"sort"
	"strings"
)

// Expr is a node in the quantifier-free (plus background quantifiers)
// first-order expression tree described in §3: boolean connectives,
// (in)equality, arithmetic, uninterpreted application, quantifiers, and the
// distinguished KVarApp node.
type Expr interface {
	isExpr()
	// String renders the node as an SMT-LIB2 S-expression fragment.
	String() string
}

// CmpOp is an arithmetic comparison operator.
type CmpOp string

const (
	CmpLt CmpOp = "<"
	CmpLe CmpOp = "<="
	CmpGt CmpOp = ">"
	CmpGe CmpOp = ">="
)

// ArithOp is an arithmetic combinator.
type ArithOp string

const (
	ArithAdd ArithOp = "+"
	ArithSub ArithOp = "-"
	ArithMul ArithOp = "*"
	ArithDiv ArithOp = "/"
	ArithMod ArithOp = "mod"
)

// BoolLit is a literal boolean.
type BoolLit bool

func (BoolLit) isExpr() {}
func (b BoolLit) String() string {
	if b {
		return "true"
	}
	return "false"
}

// IntLit is a literal integer.
type IntLit int64

func (IntLit) isExpr() {}
func (i IntLit) String() string {
	if i < 0 {
		return fmt.Sprintf("(- %d)", -int64(i))
	}
	return fmt.Sprintf("%d", int64(i))
}

// RealLit is a literal real, carried as text to avoid float round-tripping.
type RealLit string

func (RealLit) isExpr() {}
func (r RealLit) String() string { return string(r) }

// Var is a reference to a bound or free symbol.
type Var Symbol

func (Var) isExpr() {}
func (v Var) String() string { return string(v) }

// Not negates its operand.
type Not struct{ X Expr }

func (Not) isExpr() {}
func (n Not) String() string { return "(not " + n.X.String() + ")" }

// And is an explicit n-ary conjunction (§3: "Conjunction is explicitly an
// n-ary And ps").
type And struct{ Ps []Expr }

func (And) isExpr() {}
func (a And) String() string {
	if len(a.Ps) == 0 {
		return "true"
	}
	return "(and " + exprListString(a.Ps) + ")"
}

// Or is an n-ary disjunction.
type Or struct{ Ps []Expr }

func (Or) isExpr() {}
func (o Or) String() string {
	if len(o.Ps) == 0 {
		return "false"
	}
	return "(or " + exprListString(o.Ps) + ")"
}

// Implies is Ante => Conc.
type Implies struct{ Ante, Conc Expr }

func (Implies) isExpr() {}
func (i Implies) String() string {
	return "(=> " + i.Ante.String() + " " + i.Conc.String() + ")"
}

// Iff is L <=> R.
type Iff struct{ L, R Expr }

func (Iff) isExpr() {}
func (i Iff) String() string { return "(= " + i.L.String() + " " + i.R.String() + ")" } // SMT-LIB2 uses = for Bool iff

// Eq is L = R; Ne is its negation rendered as distinct.
type Eq struct{ L, R Expr }

func (Eq) isExpr() {}
func (e Eq) String() string { return "(= " + e.L.String() + " " + e.R.String() + ")" }

type Ne struct{ L, R Expr }

func (Ne) isExpr() {}
func (n Ne) String() string { return "(distinct " + n.L.String() + " " + n.R.String() + ")" }

// Cmp is an arithmetic comparison L op R.
type Cmp struct {
	Op   CmpOp
	L, R Expr
}

func (Cmp) isExpr() {}
func (c Cmp) String() string {
	return "(" + string(c.Op) + " " + c.L.String() + " " + c.R.String() + ")"
}

// Arith is a variadic arithmetic combination.
type Arith struct {
	Op   ArithOp
	Args []Expr
}

func (Arith) isExpr() {}
func (a Arith) String() string {
	return "(" + string(a.Op) + " " + exprListString(a.Args) + ")"
}

// App is an uninterpreted function application.
type App struct {
	Func Symbol
	Args []Expr
}

func (App) isExpr() {}
func (a App) String() string {
	if len(a.Args) == 0 {
		return string(a.Func)
	}
	return "(" + string(a.Func) + " " + exprListString(a.Args) + ")"
}

// Bind is one (symbol, sort) pair of a quantifier prefix.
type Bind struct {
	Sym  Symbol
	Sort Sort
}

// Forall/Exists are the quantifier nodes.
type Forall struct {
	Binds []Bind
	Body  Expr
}

func (Forall) isExpr() {}
func (f Forall) String() string { return quantString("forall", f.Binds, f.Body) }

type Exists struct {
	Binds []Bind
	Body  Expr
}

func (Exists) isExpr() {}
func (e Exists) String() string { return quantString("exists", e.Binds, e.Body) }

func quantString(kw string, binds []Bind, body Expr) string {
	parts := make([]string, len(binds))
	for i, b := range binds {
		parts[i] = "(" + string(b.Sym) + " " + b.Sort.String() + ")"
	}
	return "(" + kw + " (" + strings.Join(parts, " ") + ") " + body.String() + ")"
}

// KVarApp is the distinguished unknown-predicate node KVar(k, σ): the
// predicate for an occurrence is determined by the current solution's bind
// for k, instantiated under σ (§3, §4.D). KVarApp never reaches the SMT
// session directly — it is always expanded first (§4.C).
type KVarApp struct {
	K KVar
	S Subst
}

func (KVarApp) isExpr() {}
func (k KVarApp) String() string {
	syms := k.S.Symbols()
	parts := make([]string, len(syms))
	for i, sym := range syms {
		v, _ := k.S.Lookup(sym)
		parts[i] = fmt.Sprintf("%s:=%s", sym, v.String())
	}
	return fmt.Sprintf("$k{%s}[%s]", k.K, strings.Join(parts, ","))
}

func exprListString(es []Expr) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = e.String()
	}
	return strings.Join(parts, " ")
}

// PAnd builds a conjunction, collapsing the degenerate cases: zero operands
// is `true`, one operand is that operand unwrapped.
func PAnd(ps []Expr) Expr {
	flat := conjunctsOfAll(ps)
	switch len(flat) {
	case 0:
		return BoolLit(true)
	case 1:
		return flat[0]
	default:
		return And{Ps: flat}
	}
}

// Conjuncts flattens nested Ands, per §3: "conjuncts(p) flattens nested
// And's". The literal true has no conjuncts; any other non-And node is a
// single-element conjunct list.
func Conjuncts(p Expr) []Expr {
	switch n := p.(type) {
	case And:
		return conjunctsOfAll(n.Ps)
	case BoolLit:
		if bool(n) {
			return nil
		}
		return []Expr{p}
	default:
		return []Expr{p}
	}
}

func conjunctsOfAll(ps []Expr) []Expr {
	out := make([]Expr, 0, len(ps))
	for _, p := range ps {
		out = append(out, Conjuncts(p)...)
	}
	return out
}

// ExprEqual is syntactic equality (after rendering to canonical SMT-LIB2
// text); good enough for the dedup and idempotence checks in §4.G and §8 —
// the solver never needs semantic equality outside the SMT oracle itself.
func ExprEqual(a, b Expr) bool {
	return a.String() == b.String()
}

// SortExprs orders expressions by their canonical text, giving the
// deterministic conjunct ordering §4.C requires for reproducible logs.
func SortExprs(es []Expr) []Expr {
	out := append([]Expr(nil), es...)
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}
