package types

import "strings"

// Sort is a first-order sort. A functional sort decomposes into argument
// sorts and a return sort; a base sort (Int, Bool, an uninterpreted name)
// carries only a Name and no Args/Ret.
type Sort struct {
	Name string
	Args []Sort
	Ret  *Sort
}

// Base sorts recognised by the SMT-LIB2 transcript (§6).
var (
	SortInt  = Sort{Name: "Int"}
	SortBool = Sort{Name: "Bool"}
	SortReal = Sort{Name: "Real"}
)

// FuncSort builds the functional sort (args) -> ret.
func FuncSort(ret Sort, args ...Sort) Sort {
	return Sort{Name: "->", Args: args, Ret: &ret}
}

// IsFunc reports whether s decomposes into argument sorts and a return sort.
func (s Sort) IsFunc() bool {
	return s.Ret != nil
}

// String renders a sort the way it appears in a `declare-fun` command.
func (s Sort) String() string {
	if !s.IsFunc() {
		return s.Name
	}
	args := make([]string, len(s.Args))
	for i, a := range s.Args {
		args[i] = a.String()
	}
	return "(" + strings.Join(args, " ") + ") " + s.Ret.String()
}
