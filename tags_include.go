package gojinja

// includeNode implements `{% include expr [ignore missing] %}` (spec
// §4.4/§4.4.3): the included template renders against a snapshot of the
// current scope, merged innermost-last so inner bindings win; a missing
// template is a no-op when `ignore missing` was given, otherwise it
// propagates.
type includeNode struct {
	target Evaluator
	ignore bool
	tok    *Token
}

func (n *includeNode) Execute(state *State, w TemplateWriter) error {
	v, err := n.target.Evaluate(state)
	if err != nil {
		return err
	}
	tpl, err := state.env.GetTemplate(v.String())
	if err != nil {
		if n.ignore {
			return nil
		}
		return err
	}

	vars := map[string]*Value{}
	for _, scope := range state.scopes {
		for k, sv := range scope {
			vars[k] = sv
		}
	}

	out, err := tpl.renderFresh(vars)
	if err != nil {
		return err
	}
	_, err = w.WriteString(out)
	return err
}

func parseInclude(p *Parser, startTok *Token) (Node, error) {
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	ignore := false
	if p.PeekKeyword("ignore") {
		p.Consume()
		if _, err := p.expectKeyword("missing"); err != nil {
			return nil, err
		}
		ignore = true
	}
	if err := p.expectEndOfBlock(); err != nil {
		return nil, err
	}
	return &includeNode{target: expr, ignore: ignore, tok: startTok}, nil
}

func init() { registerTag("include", parseInclude) }
