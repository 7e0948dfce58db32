package gojinja

// setNode implements `{% set name = expr %}` and `{% set name.attr = expr %}`
// (spec §9's namespace-escape-hatch for scope writes).
type setNode struct {
	name      string
	attr      string
	valueExpr Evaluator
}

func (n *setNode) Execute(state *State, w TemplateWriter) error {
	v, err := n.valueExpr.Evaluate(state)
	if err != nil {
		return err
	}

	if n.attr == "" {
		state.Set(n.name, v)
		return nil
	}

	// Other targets are silently unchanged: only an object supporting
	// MutableObject (namespace()) can receive `set ns.attr = ...`.
	target := state.Lookup(n.name)
	if obj, ok := target.AsObject(); ok {
		if mobj, ok := obj.(MutableObject); ok {
			mobj.SetAttr(n.attr, v)
		}
	}
	return nil
}

func parseSet(p *Parser, startTok *Token) (Node, error) {
	nameTok, err := p.expectType(TokenIdent)
	if err != nil {
		return nil, err
	}

	attr := ""
	if p.PeekSymbol(".") {
		p.Consume()
		attrTok, err := p.expectType(TokenIdent)
		if err != nil {
			return nil, err
		}
		attr = attrTok.Val
	}

	if _, err := p.expectSymbol("="); err != nil {
		return nil, err
	}
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectEndOfBlock(); err != nil {
		return nil, err
	}
	return &setNode{name: nameTok.Val, attr: attr, valueExpr: expr}, nil
}

func init() { registerTag("set", parseSet) }
