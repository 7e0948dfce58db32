package gojinja

// Parser is a cursor over a token slice. The cursor primitives below are
// grounded directly on the teacher's Parser (parser.go): Consume/Current/
// Get plus the MatchSymbol/PeekSymbol/MatchKeyword/PeekKeyword/MatchType
// family, pure plumbing independent of the Django-vs-Jinja2 grammar
// riding on top.
type Parser struct {
	filename string
	tokens   []*Token
	idx      int
}

func newParser(filename string, tokens []*Token) *Parser {
	return &Parser{filename: filename, tokens: tokens}
}

func (p *Parser) Consume() { p.idx++ }

func (p *Parser) Current() *Token {
	return p.Get(p.idx)
}

func (p *Parser) Get(i int) *Token {
	if i < 0 || i >= len(p.tokens) {
		return nil
	}
	return p.tokens[i]
}

func (p *Parser) Remaining() int { return len(p.tokens) - p.idx }

// MatchSymbol consumes and returns the current token if it is a
// TokenSymbol with the given value.
func (p *Parser) MatchSymbol(val string) *Token {
	t := p.Current()
	if t != nil && t.Type == TokenSymbol && t.Val == val {
		p.Consume()
		return t
	}
	return nil
}

// PeekSymbol reports the current token without consuming it.
func (p *Parser) PeekSymbol(val string) bool {
	t := p.Current()
	return t != nil && t.Type == TokenSymbol && t.Val == val
}

func (p *Parser) MatchKeyword(val string) *Token {
	t := p.Current()
	if t != nil && t.Type == TokenKeyword && t.Val == val {
		p.Consume()
		return t
	}
	return nil
}

func (p *Parser) PeekKeyword(val string) bool {
	t := p.Current()
	return t != nil && t.Type == TokenKeyword && t.Val == val
}

func (p *Parser) MatchType(typ TokenType) *Token {
	t := p.Current()
	if t != nil && t.Type == typ {
		p.Consume()
		return t
	}
	return nil
}

func (p *Parser) expectSymbol(val string) (*Token, error) {
	if t := p.MatchSymbol(val); t != nil {
		return t, nil
	}
	return nil, p.errorf("Expected %q, got %s", val, p.describe(p.Current()))
}

func (p *Parser) expectKeyword(val string) (*Token, error) {
	if t := p.MatchKeyword(val); t != nil {
		return t, nil
	}
	return nil, p.errorf("Expected %q, got %s", val, p.describe(p.Current()))
}

func (p *Parser) expectType(typ TokenType) (*Token, error) {
	if t := p.MatchType(typ); t != nil {
		return t, nil
	}
	return nil, p.errorf("Expected token of type %d, got %s", typ, p.describe(p.Current()))
}

func (p *Parser) describe(t *Token) string {
	if t == nil {
		return "end of template"
	}
	return "'" + t.Val + "'"
}

func (p *Parser) errorf(format string, args ...interface{}) error {
	return newErrorAt(p.Current(), p.filename, SenderSyntax, format, args...)
}

// ParseTemplate tokenizes and parses source into a NodeList, the
// top-level entry point both Environment.AddTemplate and
// Environment.TemplateFromString use.
func ParseTemplate(filename, source string) (*NodeList, error) {
	tokens, err := Tokenize(filename, source)
	if err != nil {
		return nil, err
	}
	applyWhitespaceControl(tokens)
	p := newParser(filename, tokens)
	body, err := p.parseStatements(nil)
	if err != nil {
		return nil, err
	}
	if p.Current() != nil {
		return nil, p.errorf("Unexpected token %s", p.describe(p.Current()))
	}
	return body, nil
}

// applyWhitespaceControl implements the '-' trim markers (spec §4.1 and
// SPEC_FULL's whitespace-control supplement): a TrimBefore on a
// delimiter-start token strips trailing whitespace from the preceding
// TokenData; a TrimAfter on a delimiter-end token strips leading
// whitespace from the following TokenData.
func applyWhitespaceControl(tokens []*Token) {
	for i, t := range tokens {
		switch t.Type {
		case TokenVariableStart, TokenBlockStart:
			if t.TrimBefore && i > 0 && tokens[i-1].Type == TokenData {
				tokens[i-1].Val = trimRight(tokens[i-1].Val)
			}
		case TokenVariableEnd, TokenBlockEnd:
			if t.TrimAfter && i+1 < len(tokens) && tokens[i+1].Type == TokenData {
				tokens[i+1].Val = trimLeft(tokens[i+1].Val)
			}
		}
	}
}

func trimRight(s string) string {
	i := len(s)
	for i > 0 && isSpaceByte(s[i-1]) {
		i--
	}
	return s[:i]
}

func trimLeft(s string) string {
	i := 0
	for i < len(s) && isSpaceByte(s[i]) {
		i++
	}
	return s[i:]
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
