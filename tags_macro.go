package gojinja

// macroParam is one formal parameter of a macro or call-block caller
// signature: name plus an optional default-value expression (nil means
// required).
type macroParam struct {
	name string
	def  Evaluator
}

// macroNode implements `{% macro name(params) %}...{% endmacro %}`
// (spec §4.4): defining a macro binds an ordinary Callable Value into
// the current scope under its name, so both direct invocation
// (`{{ name(...) }}`) and `{% from "tpl" import name %}` fall out of
// the existing nameNode/callNode evaluation and module-scope extraction
// without any separate macro table.
type macroNode struct {
	name        string
	params      []macroParam
	varargsName string
	kwargsName  string
	body        *NodeList
}

func (n *macroNode) Execute(state *State, w TemplateWriter) error {
	state.Set(n.name, NewCallable(n.callable()))
	return nil
}

func (n *macroNode) callable() Callable {
	return func(args []*Value, kwargs map[string]*Value, callState *State) (*Value, error) {
		callState.macroDepth++
		if callState.macroDepth > maxMacroDepth {
			callState.macroDepth--
			return nil, newError(SenderType, "macro %q exceeded maximum recursion depth", n.name)
		}

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
						callState.macroDepth--
						return nil, err
					}
					v = dv
				} else {
					v = Undefined()
				}
			}
			callState.Set(p.name, v)
		}

		if n.varargsName != "" {
			var extra []*Value
			if len(args) > len(n.params) {
				extra = args[len(n.params):]
			}
			callState.Set(n.varargsName, Seq(extra))
		}
		if n.kwargsName != "" {
			extraKw := NewMap()
			for k, v := range kwargs {
				isParam := false
				for _, p := range n.params {
					if p.name == k {
						isParam = true
						break
					}
				}
				if !isParam {
					extraKw.MapSet(k, v)
				}
			}
			callState.Set(n.kwargsName, extraKw)
		}

		out, err := renderNodeList(n.body, callState)
		callState.popScope()
		callState.macroDepth--
		if err != nil {
			return nil, err
		}
		return SafeString(out), nil
	}
}

func parseMacro(p *Parser, startTok *Token) (Node, error) {
	nameTok, err := p.expectType(TokenIdent)
	if err != nil {
		return nil, err
	}

	var params []macroParam
	varargsName, kwargsName := "", ""
	if _, err := p.expectSymbol("("); err != nil {
		return nil, err
	}
	for !p.PeekSymbol(")") {
		if len(params) > 0 || varargsName != "" || kwargsName != "" {
			if _, err := p.expectSymbol(","); err != nil {
				return nil, err
			}
			if p.PeekSymbol(")") {
				break
			}
		}
		if p.PeekSymbol("**") {
			p.Consume()
			t, err := p.expectType(TokenIdent)
			if err != nil {
				return nil, err
			}
			kwargsName = t.Val
			continue
		}
		if p.PeekSymbol("*") {
			p.Consume()
			t, err := p.expectType(TokenIdent)
			if err != nil {
				return nil, err
			}
			varargsName = t.Val
			continue
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
	if err := p.expectEndOfBlock(); err != nil {
		return nil, err
	}
	body, err := p.parseStatements([]string{"endmacro"})
	if err != nil {
		return nil, err
	}
	if err := p.expectEndKeyword("endmacro"); err != nil {
		return nil, err
	}
	return &macroNode{name: nameTok.Val, params: params, varargsName: varargsName, kwargsName: kwargsName, body: body}, nil
}

func init() { registerTag("macro", parseMacro) }
