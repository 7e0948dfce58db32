package gojinja

// State is the per-render mutable context (spec §3/§4.6, component C6):
// a stack of variable scopes, the block-override tables driving template
// inheritance, the current-block stack (for `super()`), and the
// `extends_target` anchor the evaluator climbs while resolving an
// inheritance chain. A fresh State is created for every render and never
// shared across renders (spec §5).
//
// Grounded on the teacher's ExecutionContext (context.go), generalized
// from its two fixed Public/Private maps to an arbitrary scope stack per
// spec §9 ("Scopes as a stack of maps").
type State struct {
	env *Environment
	tpl *Template

	scopes []map[string]*Value

	autoescape bool
	macroDepth int

	// recordingOverrides is true while evaluating a template's own body
	// (first pass of the inheritance protocol, spec §4.4.2): block nodes
	// record their body as an override instead of consuming one.
	recordingOverrides bool

	blocks        map[string]*NodeList // child overrides, keyed by block name
	parentBlocks  map[string]*NodeList // saved parent bodies, for super()
	blockStack    []string
	extendsTarget *Template
}

const maxMacroDepth = 1000

func newState(env *Environment, tpl *Template, ctx map[string]*Value) *State {
	base := map[string]*Value{}
	for k, v := range ctx {
		base[k] = v
	}
	return &State{
		env:          env,
		tpl:          tpl,
		scopes:       []map[string]*Value{base},
		autoescape:   env.AutoescapeDefault,
		blocks:       map[string]*NodeList{},
		parentBlocks: map[string]*NodeList{},
	}
}

func (s *State) pushScope() {
	s.scopes = append(s.scopes, map[string]*Value{})
}

func (s *State) popScope() {
	s.scopes = s.scopes[:len(s.scopes)-1]
}

// Lookup walks scopes innermost-to-outermost, then the Environment's
// globals (which are pre-seeded with built-in functions, so a
// user-registered global of the same name naturally wins per spec §9's
// "user-registered first" resolution order). An unresolved name yields
// Undefined rather than an error — Jinja2's forgiving lookup.
func (s *State) Lookup(name string) *Value {
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if v, ok := s.scopes[i][name]; ok {
			return v
		}
	}
	if v, ok := s.env.Globals[name]; ok {
		return v
	}
	return Undefined()
}

// Set writes into the innermost scope.
func (s *State) Set(name string, v *Value) {
	s.scopes[len(s.scopes)-1][name] = v
}

// SetGlobal writes into scope index 0, per spec §9: "Writes always
// target the innermost scope except set_global which targets scope
// index 0."
func (s *State) SetGlobal(name string, v *Value) {
	s.scopes[0][name] = v
}

// currentBlock returns the name of the block currently being evaluated
// (the top of blockStack).
func (s *State) currentBlock() (string, bool) {
	if len(s.blockStack) == 0 {
		return "", false
	}
	return s.blockStack[len(s.blockStack)-1], true
}
