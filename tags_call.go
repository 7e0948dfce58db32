package gojinja

// callBlockNode implements `{% call[(params)] macro(args) %}body{%
// endcall %}` (spec §4.4): the body is wrapped as a Callable bound to
// `caller` in the current scope before the macro expression is
// evaluated, so a macro that invokes `caller()` renders this block's
// body — Lookup's innermost-to-outermost walk finds it regardless of
// how many further scopes the macro itself pushes.
type callBlockNode struct {
	params []macroParam
	expr   Evaluator
	body   *NodeList
}

func (n *callBlockNode) Execute(state *State, w TemplateWriter) error {
	state.pushScope()
	state.Set("caller", NewCallable(func(args []*Value, kwargs map[string]*Value, callState *State) (*Value, error) {
		callState.pushScope()
		for i, p := range n.params {
			var v *Value
			if i < len(args) {
				v = args[i]
			}
			if kv, ok := kwargs[p.name]; ok {
				v = kv
			}
			if v == nil {
				if p.def != nil {
					dv, err := p.def.Evaluate(callState)
					if err != nil {
						callState.popScope()
						return nil, err
					}
					v = dv
				} else {
					v = Undefined()
				}
			}
			callState.Set(p.name, v)
		}
		out, err := renderNodeList(n.body, callState)
		callState.popScope()
		if err != nil {
			return nil, err
		}
		return SafeString(out), nil
	}))

	v, err := n.expr.Evaluate(state)
	state.popScope()
	if err != nil {
		return err
	}
	if v.IsUndefined() || v.IsNone() {
		return nil
	}
	_, err = w.WriteString(emitValue(v, state))
	return err
}

func parseCall(p *Parser, startTok *Token) (Node, error) {
	var params []macroParam
	if p.PeekSymbol("(") {
		p.Consume()
		for !p.PeekSymbol(")") {
			if len(params) > 0 {
				if _, err := p.expectSymbol(","); err != nil {
					return nil, err
				}
				if p.PeekSymbol(")") {
					break
				}
			}
			t, err := p.expectType(TokenIdent)
			if err != nil {
				return nil, err
			}
			var def Evaluator
			if p.PeekSymbol("=") {
				p.Consume()
				def, err = p.ParseExpression()
				if err != nil {
					return nil, err
				}
			}
			params = append(params, macroParam{name: t.Val, def: def})
		}
		if _, err := p.expectSymbol(")"); err != nil {
			return nil, err
		}
	}

	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectEndOfBlock(); err != nil {
		return nil, err
	}
	body, err := p.parseStatements([]string{"endcall"})
	if err != nil {
		return nil, err
	}
	if err := p.expectEndKeyword("endcall"); err != nil {
		return nil, err
	}
	return &callBlockNode{params: params, expr: expr, body: body}, nil
}

func init() { registerTag("call", parseCall) }
