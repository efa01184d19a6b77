package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Symbol is a textual identifier with a hashable identity: two symbols are
// the same binder iff their text compares equal. Symbols built by TempArg
// (kVarArg$N, see §4.G Phase 2) can be mapped back to a user-facing name
// with Tidy.
type Symbol string

// tempArgPrefix marks a parameter name synthesised for a qualifier
// instantiation or a KVar application, e.g. "kVarArg$0".
const tempArgPrefix = "kVarArg$"

// TempArg returns the n-th synthesised temporary argument symbol.
func TempArg(n int) Symbol {
	return Symbol(tempArgPrefix + strconv.Itoa(n))
}

// IsTemp reports whether s was synthesised by TempArg.
func (s Symbol) IsTemp() bool {
	return strings.HasPrefix(string(s), tempArgPrefix)
}

// String implements fmt.Stringer.
func (s Symbol) String() string {
	return string(s)
}

// Tidy renames s using the supplied original-name table when s is a
// synthesised temporary; otherwise s is returned unchanged. This is the
// "tidySymbol" step of §4.G Phase 2: internal kVarArg$N parameter names are
// replaced by the names declared in the well-formedness constraints of the
// binding environment the KVar was applied under.
func (s Symbol) Tidy(originals map[Symbol]Symbol) Symbol {
	if !s.IsTemp() {
		return s
	}
	if orig, ok := originals[s]; ok {
		return orig
	}
	return s
}

// KVarName renders the SMT-LIB2 function name used to represent a KVar
// application as an uninterpreted predicate, for logging purposes only —
// KVars never reach the SMT session directly (§4.A: only the expanded
// solution does).
func KVarName(k KVar) Symbol {
	return Symbol(fmt.Sprintf("k$%s", string(k)))
}
