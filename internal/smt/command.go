package smt

import (
	"fmt"
	"strings"

	"github.com/alanz/liquidfix/internal/types"
)

// Each command* function renders one outbound SMT-LIB2 line. Keeping them
// pure functions of their arguments (no receiver on *Session) is what §9 means by "avoid
// virtual dispatch inside the hot filter-validity loop": serialisation
// never branches on which solver kind is on the other end of the pipe.
func commandDeclareFun(sym types.Symbol, argSorts []types.Sort, retSort types.Sort) string {
	args := make([]string, len(argSorts))
	for i, s := range argSorts {
		args[i] = s.String()
	}
	return fmt.Sprintf("(declare-fun %s (%s) %s)", sym, strings.Join(args, " "), retSort.String())
}

func commandAssert(p types.Expr) string {
	return fmt.Sprintf("(assert %s)", p.String())
}

func commandAssertTrigger(p types.Expr, triggers []types.Expr) string {
	if len(triggers) == 0 {
		return commandAssert(p)
	}
	parts := make([]string, len(triggers))
	for i, t := range triggers {
		parts[i] = t.String()
	}
	return fmt.Sprintf("(assert (! %s :pattern (%s)))", p.String(), strings.Join(parts, " "))
}

func commandDistinct(es []types.Expr) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = e.String()
	}
	return fmt.Sprintf("(assert (distinct %s))", strings.Join(parts, " "))
}

func commandPush() string { return "(push 1)" }
func commandPop() string  { return "(pop 1)" }

func commandCheckSat() string { return "(check-sat)" }

func commandGetValue(syms []types.Symbol) string {
	parts := make([]string, len(syms))
	for i, s := range syms {
		parts[i] = string(s)
	}
	return fmt.Sprintf("(get-value (%s))", strings.Join(parts, " "))
}

func commandSetOption(name string, value string) string {
	return fmt.Sprintf("(set-option :%s %s)", name, value)
}

func commandGetInfoVersion() string { return "(get-info :version)" }
