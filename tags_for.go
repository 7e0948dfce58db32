package gojinja

import "strings"

// forNode implements `{% for target[, target...] in iter [if cond]
// [recursive] %}`, per spec §4.4: targets bind either a single item or
// (for sequences of pairs, e.g. the output of `|items`) an unpacked
// tuple, `if` filters the iterable before the loop body or `else`
// clause is chosen, and `recursive` lets the body call `loop(children)`
// to walk a tree.
type forNode struct {
	targets    []string
	iterExpr   Evaluator
	filterExpr Evaluator
	recursive  bool
	body       *NodeList
	elseBody   *NodeList
}

func (n *forNode) Execute(state *State, w TemplateWriter) error {
	iterVal, err := n.iterExpr.Evaluate(state)
	if err != nil {
		return err
	}
	items, err := iterVal.Iterate()
	if err != nil {
		return err
	}

	if n.filterExpr != nil {
		var filtered []*Value
		for _, item := range items {
			state.pushScope()
			bindForTargets(state, n.targets, item)
			v, err := n.filterExpr.Evaluate(state)
			state.popScope()
			if err != nil {
				return err
			}
			if v.IsTrue() {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	if len(items) == 0 {
		if n.elseBody != nil {
			return n.elseBody.Execute(state, w)
		}
		return nil
	}

	return n.runLoop(state, w, items, 1)
}

func (n *forNode) runLoop(state *State, w TemplateWriter, items []*Value, depth int) error {
	lo := &loopObject{items: items, depth: depth}
	if n.recursive {
		lo.recurse = func(children []*Value) (*Value, error) {
			var buf strings.Builder
			if err := n.runLoop(state, &buf, children, depth+1); err != nil {
				return nil, err
			}
			return SafeString(buf.String()), nil
		}
	}

	for i, item := range items {
		lo.index0 = i
		state.pushScope()
		bindForTargets(state, n.targets, item)
		state.Set("loop", FromObject(lo))
		err := n.body.Execute(state, w)
		state.popScope()
		if err != nil {
			return err
		}
	}
	return nil
}

// bindForTargets binds a single loop item into one variable, or unpacks
// it positionally across several (e.g. `for k, v in mapping|items`).
func bindForTargets(state *State, targets []string, item *Value) {
	if len(targets) == 1 {
		state.Set(targets[0], item)
		return
	}
	parts := item.SeqItems()
	for i, name := range targets {
		if i < len(parts) {
			state.Set(name, parts[i])
		} else {
			state.Set(name, Undefined())
		}
	}
}

func parseFor(p *Parser, startTok *Token) (Node, error) {
	var targets []string
	for {
		nameTok, err := p.expectType(TokenIdent)
		if err != nil {
			return nil, err
		}
		targets = append(targets, nameTok.Val)
		if p.PeekSymbol(",") {
			p.Consume()
			continue
		}
		break
	}
	if _, err := p.expectKeyword("in"); err != nil {
		return nil, err
	}
	iterExpr, err := p.ParseExpressionNoCondition()
	if err != nil {
		return nil, err
	}
	var filterExpr Evaluator
	if p.PeekKeyword("if") {
		p.Consume()
		filterExpr, err = p.ParseExpression()
		if err != nil {
			return nil, err
		}
	}
	recursive := false
	if p.PeekKeyword("recursive") {
		p.Consume()
		recursive = true
	}
	if err := p.expectEndOfBlock(); err != nil {
		return nil, err
	}
	body, err := p.parseStatements([]string{"else", "endfor"})
	if err != nil {
		return nil, err
	}

	var elseBody *NodeList
	if _, err := p.expectType(TokenBlockStart); err != nil {
		return nil, err
	}
	kwTok := p.Current()
	if kwTok != nil && kwTok.Type == TokenKeyword && kwTok.Val == "else" {
		p.Consume()
		if err := p.expectEndOfBlock(); err != nil {
			return nil, err
		}
		elseBody, err = p.parseStatements([]string{"endfor"})
		if err != nil {
			return nil, err
		}
		if _, err := p.expectType(TokenBlockStart); err != nil {
			return nil, err
		}
	}
	if _, err := p.expectKeyword("endfor"); err != nil {
		return nil, err
	}
	if err := p.expectEndOfBlock(); err != nil {
		return nil, err
	}

	return &forNode{
		targets:    targets,
		iterExpr:   iterExpr,
		filterExpr: filterExpr,
		recursive:  recursive,
		body:       body,
		elseBody:   elseBody,
	}, nil
}

func init() { registerTag("for", parseFor) }
