package gojinja

// parseRaw implements `{% raw %}...{% endraw %}` (spec §4.1): the
// lexer has already collapsed the body into a single TokenData token,
// so parsing is just wrapping it back in a dataNode.
func parseRaw(p *Parser, startTok *Token) (Node, error) {
	if err := p.expectEndOfBlock(); err != nil {
		return nil, err
	}
	bodyTok, err := p.expectType(TokenData)
	if err != nil {
		return nil, err
	}
	if err := p.expectEndKeyword("endraw"); err != nil {
		return nil, err
	}
	return &dataNode{text: bodyTok.Val}, nil
}

func init() { registerTag("raw", parseRaw) }
