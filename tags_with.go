package gojinja

// withNode implements `{% with name=expr[, name=expr...] %}`: the
// expressions are evaluated in the outer scope, then bound in a single
// pushed scope for the body, per spec §4.4's "with opens a nested scope".
type withNode struct {
	names []string
	exprs []Evaluator
	body  *NodeList
}

func (n *withNode) Execute(state *State, w TemplateWriter) error {
	vals := make([]*Value, len(n.exprs))
	for i, e := range n.exprs {
		v, err := e.Evaluate(state)
		if err != nil {
			return err
		}
		vals[i] = v
	}
	state.pushScope()
	for i, name := range n.names {
		state.Set(name, vals[i])
	}
	err := n.body.Execute(state, w)
	state.popScope()
	return err
}

func parseWith(p *Parser, startTok *Token) (Node, error) {
	var names []string
	var exprs []Evaluator
	for {
		nameTok, err := p.expectType(TokenIdent)
		if err != nil {
			return nil, err
		}
		if _, err := p.expectSymbol("="); err != nil {
			return nil, err
		}
		expr, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		names = append(names, nameTok.Val)
		exprs = append(exprs, expr)
		if p.PeekSymbol(",") {
			p.Consume()
			continue
		}
		break
	}
	if err := p.expectEndOfBlock(); err != nil {
		return nil, err
	}
	body, err := p.parseStatements([]string{"endwith"})
	if err != nil {
		return nil, err
	}
	if err := p.expectEndKeyword("endwith"); err != nil {
		return nil, err
	}
	return &withNode{names: names, exprs: exprs, body: body}, nil
}

func init() { registerTag("with", parseWith) }
