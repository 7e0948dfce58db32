package gojinja

// blockNode implements template inheritance (spec §4.4.2). On a
// template's own first pass (State.recordingOverrides) a block just
// records its body as the override an ancestor might consume, then
// renders itself. On an ancestor's pass, a recorded override (if any)
// is rendered in the block's place and the override is then removed
// from the table — so a block name reused at a third inheritance level
// doesn't see a stale override meant for a different ancestor.
type blockNode struct {
	name string
	body *NodeList
}

func (n *blockNode) Execute(state *State, w TemplateWriter) error {
	if state.recordingOverrides {
		if _, exists := state.blocks[n.name]; !exists {
			state.blocks[n.name] = n.body
		}
		return n.render(state, w, n.body)
	}

	if override, ok := state.blocks[n.name]; ok {
		state.parentBlocks[n.name] = n.body
		err := n.render(state, w, override)
		delete(state.blocks, n.name)
		return err
	}

	state.blocks[n.name] = n.body
	return n.render(state, w, n.body)
}

// render executes body with `super` bound in a pushed scope and the
// block name on State.blockStack; the `super` callable below closes
// over the block's name to find the matching parentBlocks entry.
func (n *blockNode) render(state *State, w TemplateWriter, body *NodeList) error {
	state.blockStack = append(state.blockStack, n.name)
	state.pushScope()
	state.Set("super", NewCallable(func(args []*Value, kwargs map[string]*Value, st *State) (*Value, error) {
		parent, ok := st.parentBlocks[n.name]
		if !ok {
			return SafeString(""), nil
		}
		out, err := renderNodeList(parent, st)
		if err != nil {
			return nil, err
		}
		return SafeString(out), nil
	}))
	err := body.Execute(state, w)
	state.popScope()
	state.blockStack = state.blockStack[:len(state.blockStack)-1]
	return err
}

func parseBlock(p *Parser, startTok *Token) (Node, error) {
	nameTok, err := p.expectType(TokenIdent)
	if err != nil {
		return nil, err
	}
	if err := p.expectEndOfBlock(); err != nil {
		return nil, err
	}
	body, err := p.parseStatements([]string{"endblock"})
	if err != nil {
		return nil, err
	}
	if _, err := p.expectType(TokenBlockStart); err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword("endblock"); err != nil {
		return nil, err
	}
	if t := p.Current(); t != nil && t.Type == TokenIdent {
		p.Consume()
	}
	if err := p.expectEndOfBlock(); err != nil {
		return nil, err
	}
	return &blockNode{name: nameTok.Val, body: body}, nil
}

func init() { registerTag("block", parseBlock) }
