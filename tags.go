package gojinja

// tagParseFunc parses one statement's arguments and (for block-style
// statements) its body, given that the opening `{% KEYWORD` has already
// been consumed up through the keyword token itself. It must consume
// through the statement's own closing `%}` (and, for block statements,
// through the matching end-keyword's `%}` too) before returning.
//
// Grounded on the teacher's tagParser func type and `tags` registry
// (tags.go), generalized from Django tag names to the fixed Jinja2
// keyword set spec §4.2 enumerates.
type tagParseFunc func(p *Parser, startTok *Token) (Node, error)

var tagParsers = map[string]tagParseFunc{}

// registerTag adds a statement parser to the registry; called from
// init() in each tag's own file, mirroring the teacher's RegisterTag.
func registerTag(name string, fn tagParseFunc) {
	tagParsers[name] = fn
}

// parseStatements parses a run of statements until either the input is
// exhausted or a TokenBlockStart is found whose keyword is in stop
// (in which case the BlockStart/keyword pair is left unconsumed so the
// caller can inspect and consume it itself — used by if/for/etc. to find
// their own elif/else/end keyword).
func (p *Parser) parseStatements(stop []string) (*NodeList, error) {
	var nodes []Node
	for {
		tok := p.Current()
		if tok == nil {
			break
		}
		switch tok.Type {
		case TokenData:
			p.Consume()
			nodes = append(nodes, &dataNode{text: tok.Val})

		case TokenVariableStart:
			p.Consume()
			expr, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expectType(TokenVariableEnd); err != nil {
				return nil, err
			}
			nodes = append(nodes, &printNode{expr: expr})

		case TokenBlockStart:
			kwTok := p.Get(p.idx + 1)
			if kwTok == nil || kwTok.Type != TokenKeyword {
				return nil, p.errorf("Expected block keyword, got %s", p.describe(kwTok))
			}
			if containsStr(stop, kwTok.Val) {
				return &NodeList{Nodes: nodes}, nil
			}
			p.Consume() // {%
			p.Consume() // keyword
			parseFn, ok := tagParsers[kwTok.Val]
			if !ok {
				return nil, p.errorf("Unknown block statement: %s", kwTok.Val)
			}
			node, err := parseFn(p, kwTok)
			if err != nil {
				return nil, err
			}
			if node != nil {
				nodes = append(nodes, node)
			}

		default:
			return nil, p.errorf("Unexpected token %s", p.describe(tok))
		}
	}
	return &NodeList{Nodes: nodes}, nil
}

func containsStr(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

// expectEndOfBlock consumes a trailing `%}`.
func (p *Parser) expectEndOfBlock() error {
	_, err := p.expectType(TokenBlockEnd)
	return err
}

// expectEndKeyword asserts the upcoming `{% KEYWORD %}` matches name and
// consumes all three tokens, used to close a block statement (endif,
// endfor, endblock, ...).
func (p *Parser) expectEndKeyword(name string) error {
	if _, err := p.expectType(TokenBlockStart); err != nil {
		return err
	}
	if _, err := p.expectKeyword(name); err != nil {
		return err
	}
	return p.expectEndOfBlock()
}
