package gojinja

// FilterFunc is the type every filter (built-in or user-registered) must
// satisfy: spec §4.5's contract is `(subject, positional_args,
// keyword_args, state) -> Value`, grounded on the teacher's
// FilterFunction type (filters.go) generalized from a single `param` to
// the full positional/keyword argument lists Jinja2 filters take.
type FilterFunc func(subject *Value, args []*Value, kwargs map[string]*Value, state *State) (*Value, error)

// arg fetches the i'th positional argument, or def if absent.
func arg(args []*Value, i int, def *Value) *Value {
	if i < len(args) {
		return args[i]
	}
	return def
}

func kwarg(kwargs map[string]*Value, name string, def *Value) *Value {
	if v, ok := kwargs[name]; ok {
		return v
	}
	return def
}
