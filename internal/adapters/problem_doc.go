package adapters

// problemDoc is the on-disk YAML shape a problem file is read from: a
// shared binding environment, the κ qualifier universe, and the list of
// Horn implications. It exists purely as the yaml-tagged boundary type;
// buildProblemFileAdapter converts it into the core's own types (§3) once, at
// construction time, so nothing downstream of ProblemFileAdapter ever sees
// YAML tags or raw strings.
type problemDoc struct {
	Bindings    []bindingDoc        `yaml:"bindings"`
	Qualifiers  []qualifierDoc      `yaml:"qualifiers"`
	Binds       map[string][]string `yaml:"qualifier_binds"`
	Constraints []constraintDoc     `yaml:"constraints"`
}

type bindingDoc struct {
	Sym    string `yaml:"sym"`
	Sort   string `yaml:"sort"`
	Refine string `yaml:"refine"`
}

type paramDoc struct {
	Sym  string `yaml:"sym"`
	Sort string `yaml:"sort"`
}

type qualifierDoc struct {
	Name   string     `yaml:"name"`
	Params []paramDoc `yaml:"params"`
	Body   string     `yaml:"body"`
}

type constraintDoc struct {
	ID       int    `yaml:"id"`
	Env      []int  `yaml:"env"`
	LHS      string `yaml:"lhs"`
	RHS      string `yaml:"rhs"`
	Tag      string `yaml:"tag"`
	IsTarget bool   `yaml:"target"`
}
