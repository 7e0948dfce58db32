package gojinja

// ifBranch pairs a condition with the body to run when it is the first
// true one in the chain; cond is nil for a trailing `else`.
type ifBranch struct {
	cond Evaluator
	body *NodeList
}

type ifNode struct {
	branches []ifBranch
}

func (n *ifNode) Execute(state *State, w TemplateWriter) error {
	for _, b := range n.branches {
		if b.cond == nil {
			return b.body.Execute(state, w)
		}
		v, err := b.cond.Evaluate(state)
		if err != nil {
			return err
		}
		if v.IsTrue() {
			return b.body.Execute(state, w)
		}
	}
	return nil
}

func parseIf(p *Parser, startTok *Token) (Node, error) {
	var branches []ifBranch
	for {
		cond, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expectEndOfBlock(); err != nil {
			return nil, err
		}
		body, err := p.parseStatements([]string{"elif", "else", "endif"})
		if err != nil {
			return nil, err
		}
		branches = append(branches, ifBranch{cond: cond, body: body})

		if _, err := p.expectType(TokenBlockStart); err != nil {
			return nil, err
		}
		kwTok := p.Current()
		if kwTok == nil || kwTok.Type != TokenKeyword {
			return nil, p.errorf("Expected 'elif', 'else', or 'endif', got %s", p.describe(kwTok))
		}
		switch kwTok.Val {
		case "elif":
			p.Consume()
			continue
		case "else":
			p.Consume()
			if err := p.expectEndOfBlock(); err != nil {
				return nil, err
			}
			elseBody, err := p.parseStatements([]string{"endif"})
			if err != nil {
				return nil, err
			}
			branches = append(branches, ifBranch{body: elseBody})
			if err := p.expectEndKeyword("endif"); err != nil {
				return nil, err
			}
			return &ifNode{branches: branches}, nil
		case "endif":
			p.Consume()
			if err := p.expectEndOfBlock(); err != nil {
				return nil, err
			}
			return &ifNode{branches: branches}, nil
		default:
			return nil, p.errorf("Expected 'elif', 'else', or 'endif', got %s", p.describe(kwTok))
		}
	}
}

func init() { registerTag("if", parseIf) }
