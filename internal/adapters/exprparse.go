package adapters

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"github.com/alanz/liquidfix/internal/types"
)

// parseExpr reads the small Lisp-like surface syntax a problem file's
// "lhs"/"rhs"/"body" fields are written in, producing the same Expr tree
// the core operates on (§3). It recognises the boolean connectives, (in)
// equality, arithmetic, uninterpreted application, and a reserved "kvar"
// head for KVarApp — the one node with no natural S-expression rendering
// of its own, since a KVar occurrence is an application of an *unknown*,
// not a declared function.
//
// This grammar is a problem-file concern only; the core never parses text,
// and the SMT session's own S-expression reader (internal/smt/sexpr.go)
// solves a different problem (parsing solver responses) and is not reused
// here to keep that package's surface narrow.
func parseExpr(text string) (types.Expr, error) {
	toks := tokenize(text)
	if len(toks) == 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("problem file: empty expression")
	}
	e, rest, err := parseTokens(toks)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("problem file: trailing tokens after expression: %q", strings.Join(rest, " ")))
	}
	return e, nil
}

func tokenize(text string) []string {
	var toks []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			toks = append(toks, cur.String())
			cur.Reset()
		}
	}
	for _, r := range text {
		switch r {
		case '(', ')':
			flush()
			toks = append(toks, string(r))
		case ' ', '\t', '\n', '\r':
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return toks
}

func parseTokens(toks []string) (types.Expr, []string, error) {
	if len(toks) == 0 {
		return nil, nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("problem file: unexpected end of expression")
	}
	head := toks[0]
	if head != "(" {
		return atomExpr(head), toks[1:], nil
	}
	toks = toks[1:]
	if len(toks) == 0 || toks[0] == ")" {
		return nil, nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("problem file: empty parenthesised form")
	}
	op := toks[0]
	toks = toks[1:]

	var args []types.Expr
	for len(toks) > 0 && toks[0] != ")" {
		var arg types.Expr
		var err error
		arg, toks, err = parseTokens(toks)
		if err != nil {
			return nil, nil, err
		}
		args = append(args, arg)
	}
	if len(toks) == 0 {
		return nil, nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("problem file: unterminated parenthesised form")
	}
	toks = toks[1:] // consume ")"

	e, err := buildForm(op, args)
	if err != nil {
		return nil, nil, err
	}
	return e, toks, nil
}

func buildForm(op string, args []types.Expr) (types.Expr, error) {
	switch op {
	case "and":
		return types.And{Ps: args}, nil
	case "or":
		return types.Or{Ps: args}, nil
	case "not":
		if len(args) != 1 {
			return nil, formArityErr("not", 1, len(args))
		}
		return types.Not{X: args[0]}, nil
	case "=>":
		if len(args) != 2 {
			return nil, formArityErr("=>", 2, len(args))
		}
		return types.Implies{Ante: args[0], Conc: args[1]}, nil
	case "=":
		if len(args) != 2 {
			return nil, formArityErr("=", 2, len(args))
		}
		return types.Eq{L: args[0], R: args[1]}, nil
	case "distinct":
		if len(args) != 2 {
			return nil, formArityErr("distinct", 2, len(args))
		}
		return types.Ne{L: args[0], R: args[1]}, nil
	case "<", "<=", ">", ">=":
		if len(args) != 2 {
			return nil, formArityErr(op, 2, len(args))
		}
		return types.Cmp{Op: types.CmpOp(op), L: args[0], R: args[1]}, nil
	case "+", "-", "*", "/", "mod":
		return types.Arith{Op: types.ArithOp(op), Args: args}, nil
	case "kvar":
		return buildKVarApp(args)
	default:
		return types.App{Func: types.Symbol(op), Args: args}, nil
	}
}

// buildKVarApp implements the "(kvar NAME sym1 val1 sym2 val2 ...)" form:
// NAME must parse back out of a variable atom (it is not itself an
// expression), and the remaining arguments come in (symbol, value) pairs.
func buildKVarApp(args []types.Expr) (types.Expr, error) {
	if len(args) == 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("problem file: kvar form requires a name")
	}
	name, ok := args[0].(types.Var)
	if !ok {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("problem file: kvar name must be a bare symbol")
	}
	rest := args[1:]
	if len(rest)%2 != 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("problem file: kvar substitution must be symbol/value pairs")
	}
	pairs := make([]types.SubstPair, 0, len(rest)/2)
	for i := 0; i < len(rest); i += 2 {
		sym, ok := rest[i].(types.Var)
		if !ok {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("problem file: kvar substitution key must be a bare symbol")
		}
		pairs = append(pairs, types.Pair(types.Symbol(sym), rest[i+1]))
	}
	return types.KVarApp{K: types.KVar(name), S: types.NewSubst(pairs...)}, nil
}

func atomExpr(tok string) types.Expr {
	switch tok {
	case "true":
		return types.BoolLit(true)
	case "false":
		return types.BoolLit(false)
	}
	if n, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return types.IntLit(n)
	}
	if looksLikeReal(tok) {
		return types.RealLit(tok)
	}
	return types.Var(tok)
}

func looksLikeReal(tok string) bool {
	if !strings.Contains(tok, ".") {
		return false
	}
	_, err := strconv.ParseFloat(tok, 64)
	return err == nil
}

func formArityErr(op string, want, got int) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("problem file: form %q wants %d argument(s), got %d", op, want, got))
}

// parseSort maps a problem file's sort name to the declared base sorts;
// functional sorts are not expressible in the file format (no scenario in
// §8 needs one at the problem-file boundary — qualifiers and bindings are
// always over base-sorted symbols).
func parseSort(name string) types.Sort {
	switch name {
	case "Bool":
		return types.SortBool
	case "Real":
		return types.SortReal
	case "":
		return types.SortInt
	default:
		return types.Sort{Name: name}
	}
}
