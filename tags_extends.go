package gojinja

// extendsNode marks the current template as a child of another template,
// per the two-pass inheritance protocol of spec §4.4.2: it does not
// render anything itself, it only arms State.extendsTarget so
// Template.renderWithState knows to run a further pass once the child's
// own body (and its block overrides) has been recorded.
type extendsNode struct {
	target Evaluator
	tok    *Token
}

func (n *extendsNode) Execute(state *State, w TemplateWriter) error {
	v, err := n.target.Evaluate(state)
	if err != nil {
		return err
	}
	tpl, err := state.env.GetTemplate(v.String())
	if err != nil {
		return err
	}
	state.extendsTarget = tpl
	return nil
}

func parseExtends(p *Parser, startTok *Token) (Node, error) {
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectEndOfBlock(); err != nil {
		return nil, err
	}
	return &extendsNode{target: expr, tok: startTok}, nil
}

func init() { registerTag("extends", parseExtends) }
