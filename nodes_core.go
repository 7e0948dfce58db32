package gojinja

import "strings"

// dataNode emits literal template text verbatim, bypassing auto-escape
// since it was never a Value to begin with.
type dataNode struct {
	text string
}

func (n *dataNode) Execute(state *State, w TemplateWriter) error {
	_, err := w.WriteString(n.text)
	return err
}

// printNode is the `{{ expr }}` statement: evaluate, suppress Undefined/
// None, then apply the auto-escape policy (spec §4.4/§4.4.1).
type printNode struct {
	expr Evaluator
}

func (n *printNode) Execute(state *State, w TemplateWriter) error {
	v, err := n.expr.Evaluate(state)
	if err != nil {
		return err
	}
	if v.IsUndefined() || v.IsNone() {
		return nil
	}
	_, err = w.WriteString(emitValue(v, state))
	return err
}

// emitValue renders a Value for output under the current auto-escape
// policy: safe strings and non-string kinds (after stringification) pass
// through escaping rules per spec §4.4.1.
func emitValue(v *Value, state *State) string {
	if v.Kind() == KindString {
		if v.IsSafe() || !state.autoescape {
			return v.Str()
		}
		return htmlEscape(v.Str())
	}
	s := v.String()
	if !state.autoescape {
		return s
	}
	return htmlEscape(s)
}

func htmlEscape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&#34;")
		case '\'':
			b.WriteString("&#39;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
