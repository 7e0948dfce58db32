package gojinja

// filterCall is one `name` or `name(args)` link of a `{% filter %}`
// chain.
type filterCall struct {
	name string
	args *argList
}

// filterBlockNode implements `{% filter name[(args)]|name[(args)]... %}
// body {% endfilter %}` (spec §4.4): the body is rendered to a string,
// then piped through each filter in turn, mirroring how a filter
// expression chains in a `{{ ... }}` print.
type filterBlockNode struct {
	chain []filterCall
	body  *NodeList
}

func (n *filterBlockNode) Execute(state *State, w TemplateWriter) error {
	out, err := renderNodeList(n.body, state)
	if err != nil {
		return err
	}

	value := String(out)
	for _, call := range n.chain {
		pos, kw, err := call.args.evaluate(state)
		if err != nil {
			return err
		}
		fn, err := state.env.resolveFilter(call.name)
		if err != nil {
			return wrapError(err, SenderUnknownName, "applying filter '"+call.name+"'")
		}
		value, err = fn(value, pos, kw, state)
		if err != nil {
			return err
		}
	}

	if value.IsUndefined() || value.IsNone() {
		return nil
	}
	_, err = w.WriteString(emitValue(value, state))
	return err
}

func parseFilter(p *Parser, startTok *Token) (Node, error) {
	var chain []filterCall
	for {
		nameTok, err := p.expectType(TokenIdent)
		if err != nil {
			return nil, err
		}
		call := filterCall{name: nameTok.Val, args: &argList{}}
		if p.PeekSymbol("(") {
			call.args, err = p.parseCallArgs()
			if err != nil {
				return nil, err
			}
		}
		chain = append(chain, call)
		if p.PeekSymbol("|") {
			p.Consume()
			continue
		}
		break
	}
	if err := p.expectEndOfBlock(); err != nil {
		return nil, err
	}
	body, err := p.parseStatements([]string{"endfilter"})
	if err != nil {
		return nil, err
	}
	if err := p.expectEndKeyword("endfilter"); err != nil {
		return nil, err
	}
	return &filterBlockNode{chain: chain, body: body}, nil
}

func init() { registerTag("filter", parseFilter) }
