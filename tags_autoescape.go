package gojinja

// autoescapeNode implements `{% autoescape expr %}...{% endautoescape %}`.
// Spec §9 leaves this tag's effect open, permitting either a pass-through
// or a real toggle of the render's auto-escape flag; this implementation
// takes the latter, saving and restoring State.autoescape around the
// body so nested autoescape blocks compose correctly.
type autoescapeNode struct {
	expr Evaluator
	body *NodeList
}

func (n *autoescapeNode) Execute(state *State, w TemplateWriter) error {
	v, err := n.expr.Evaluate(state)
	if err != nil {
		return err
	}
	saved := state.autoescape
	state.autoescape = v.IsTrue()
	err = n.body.Execute(state, w)
	state.autoescape = saved
	return err
}

func parseAutoescape(p *Parser, startTok *Token) (Node, error) {
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectEndOfBlock(); err != nil {
		return nil, err
	}
	body, err := p.parseStatements([]string{"endautoescape"})
	if err != nil {
		return nil, err
	}
	if err := p.expectEndKeyword("endautoescape"); err != nil {
		return nil, err
	}
	return &autoescapeNode{expr: expr, body: body}, nil
}

func init() { registerTag("autoescape", parseAutoescape) }
