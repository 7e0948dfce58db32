package gojinja

// importNode implements `{% import expr as name %}` (spec §4.4,
// "Import"): the target template is evaluated once in a fresh State
// against no context, and its top-level scope (macros, set variables)
// is wrapped as a moduleObject bound under `name`.
type importNode struct {
	target Evaluator
	as     string
	tok    *Token
}

// fromImportNode implements `{% from expr import name[, name as
// alias]... %}`: same fresh-State evaluation, but copies the named
// entries directly into the current scope instead of binding a module
// object.
type fromImportNode struct {
	target  Evaluator
	names   []string
	aliases []string
	tok     *Token
}

// evalModule renders tpl in a brand-new, context-free State and returns
// its top-level scope once rendering (and any extends chain) completes.
func evalModule(tpl *Template) (map[string]*Value, error) {
	state := newState(tpl.env, tpl, nil)
	if _, err := tpl.renderWithState(state); err != nil {
		return nil, err
	}
	return state.scopes[0], nil
}

func (n *importNode) Execute(state *State, w TemplateWriter) error {
	v, err := n.target.Evaluate(state)
	if err != nil {
		return err
	}
	tpl, err := state.env.GetTemplate(v.String())
	if err != nil {
		return err
	}
	vars, err := evalModule(tpl)
	if err != nil {
		return err
	}
	state.Set(n.as, FromObject(&moduleObject{vars: vars}))
	return nil
}

func (n *fromImportNode) Execute(state *State, w TemplateWriter) error {
	v, err := n.target.Evaluate(state)
	if err != nil {
		return err
	}
	tpl, err := state.env.GetTemplate(v.String())
	if err != nil {
		return err
	}
	vars, err := evalModule(tpl)
	if err != nil {
		return err
	}
	for i, name := range n.names {
		target := n.aliases[i]
		if mv, ok := vars[name]; ok {
			state.Set(target, mv)
		} else {
			state.Set(target, Undefined())
		}
	}
	return nil
}

func parseImport(p *Parser, startTok *Token) (Node, error) {
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword("as"); err != nil {
		return nil, err
	}
	nameTok, err := p.expectType(TokenIdent)
	if err != nil {
		return nil, err
	}
	if err := p.expectEndOfBlock(); err != nil {
		return nil, err
	}
	return &importNode{target: expr, as: nameTok.Val, tok: startTok}, nil
}

func parseFrom(p *Parser, startTok *Token) (Node, error) {
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword("import"); err != nil {
		return nil, err
	}
	var names, aliases []string
	for {
		nameTok, err := p.expectType(TokenIdent)
		if err != nil {
			return nil, err
		}
		alias := nameTok.Val
		if p.PeekKeyword("as") {
			p.Consume()
			aliasTok, err := p.expectType(TokenIdent)
			if err != nil {
				return nil, err
			}
			alias = aliasTok.Val
		}
		names = append(names, nameTok.Val)
		aliases = append(aliases, alias)
		if p.PeekSymbol(",") {
			p.Consume()
			continue
		}
		break
	}
	if err := p.expectEndOfBlock(); err != nil {
		return nil, err
	}
	return &fromImportNode{target: expr, names: names, aliases: aliases, tok: startTok}, nil
}

func init() {
	registerTag("import", parseImport)
	registerTag("from", parseFrom)
}
