package gojinja

import "strings"

// Template is an immutable compiled AST (spec §3, component C3): a name
// plus an ordered list of statements. Grounded on the teacher's Template
// (template.go), minus the lexer/parser fields the teacher kept around
// after parsing — gojinja discards tokens once parsing is done.
type Template struct {
	name string
	env  *Environment
	body *NodeList
}

func (t *Template) Name() string { return t.name }

// Render executes the two-pass inheritance protocol of spec §4.4.2 and
// returns the rendered string. ctx may be nil, meaning an empty context.
func (t *Template) Render(ctx *Context) (string, error) {
	vars := map[string]*Value{}
	if ctx != nil {
		vars = ctx.vars
	}
	return t.renderFresh(vars)
}

// renderFresh drives a brand-new State through the extends loop; used
// by Render and by `include`, which each need their own State. `import`
// builds its own fresh State in evalModule instead.
func (t *Template) renderFresh(vars map[string]*Value) (string, error) {
	state := newState(t.env, t, vars)
	return t.renderWithState(state)
}

func (t *Template) renderWithState(state *State) (string, error) {
	state.tpl = t
	state.recordingOverrides = true
	var buf strings.Builder
	if err := t.body.Execute(state, &buf); err != nil {
		return "", err
	}
	result := buf.String()

	state.recordingOverrides = false
	for state.extendsTarget != nil {
		next := state.extendsTarget
		state.extendsTarget = nil
		state.tpl = next
		var buf2 strings.Builder
		if err := next.body.Execute(state, &buf2); err != nil {
			return "", err
		}
		result = buf2.String()
	}
	return result, nil
}
