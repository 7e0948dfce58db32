package gojinja

// parser_expression.go implements the twelve-level precedence ladder of
// spec §4.2 as a chain of recursive-descent functions, one per level,
// each calling the next-higher level — the same ladder-of-functions
// idiom the teacher uses in parser_expression.go (term/power/
// simpleExpression/relationalExpression), regrounded on Jinja2's
// precedence table instead of Django's.

// ParseExpression parses a full expression, including the conditional
// (`x if c else y`) level. This is the entry point used by `{{ }}`,
// filter/macro/call arguments, and anywhere else a complete expression
// is expected.
func (p *Parser) ParseExpression() (Evaluator, error) {
	return p.parseConditional()
}

// ParseExpressionNoCondition parses an expression starting one level
// below conditional, for contexts where a trailing `if` belongs to the
// surrounding statement rather than the expression — spec §4.2: "For-loop
// iterator expression must not consume an if".
func (p *Parser) ParseExpressionNoCondition() (Evaluator, error) {
	return p.parseOr()
}

func (p *Parser) parseConditional() (Evaluator, error) {
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.PeekKeyword("if") {
		p.Consume()
		cond, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		var elseExpr Evaluator
		if p.PeekKeyword("else") {
			p.Consume()
			elseExpr, err = p.parseConditional()
			if err != nil {
				return nil, err
			}
		}
		return &condNode{ifTrue: expr, cond: cond, ifFalse: elseExpr}, nil
	}
	return expr, nil
}

func (p *Parser) parseOr() (Evaluator, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.PeekKeyword("or") {
		p.Consume()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &orNode{left: left, right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (Evaluator, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.PeekKeyword("and") {
		p.Consume()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &andNode{left: left, right: right}
	}
	return left, nil
}

func (p *Parser) parseNot() (Evaluator, error) {
	if p.PeekKeyword("not") {
		p.Consume()
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &unaryNode{op: "not", operand: operand}, nil
	}
	return p.parseComparison()
}

func (p *Parser) parseComparison() (Evaluator, error) {
	left, err := p.parseConcat()
	if err != nil {
		return nil, err
	}

	for _, op := range []string{"==", "!=", "<=", ">=", "<", ">"} {
		if p.PeekSymbol(op) {
			p.Consume()
			right, err := p.parseConcat()
			if err != nil {
				return nil, err
			}
			return &compareNode{op: op, left: left, right: right}, nil
		}
	}

	if p.PeekKeyword("in") {
		p.Consume()
		right, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		return &compareNode{op: "in", left: left, right: right}, nil
	}

	if p.PeekKeyword("not") && p.Get(p.idx+1) != nil && p.Get(p.idx+1).Type == TokenKeyword && p.Get(p.idx+1).Val == "in" {
		p.Consume()
		p.Consume()
		right, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		return &compareNode{op: "not in", left: left, right: right}, nil
	}

	if p.PeekKeyword("is") {
		p.Consume()
		negate := false
		if p.PeekKeyword("not") {
			negate = true
			p.Consume()
		}
		nameTok := p.MatchType(TokenIdent)
		if nameTok == nil {
			nameTok = p.MatchType(TokenKeyword)
		}
		if nameTok == nil {
			return nil, p.errorf("Expected test name after 'is', got %s", p.describe(p.Current()))
		}
		args := &argList{kwargs: map[string]Evaluator{}}
		var err error
		if p.PeekSymbol("(") {
			args, err = p.parseCallArgs()
			if err != nil {
				return nil, err
			}
		} else if canStartExpression(p.Current()) {
			// `is divisibleby 3` style: single bare argument, no parens.
			arg, err := p.parseConcat()
			if err != nil {
				return nil, err
			}
			args.positional = append(args.positional, arg)
		}
		return &testNode{negate: negate, target: left, name: nameTok.Val, args: args}, nil
	}

	return left, nil
}

// canStartExpression reports whether tok could begin a primary
// expression, used to decide whether a bare `is test arg` trailing
// argument is present.
func canStartExpression(tok *Token) bool {
	if tok == nil {
		return false
	}
	switch tok.Type {
	case TokenIdent, TokenString, TokenInt, TokenFloat:
		return true
	case TokenKeyword:
		return tok.Val == "true" || tok.Val == "false" || tok.Val == "none"
	case TokenSymbol:
		return tok.Val == "(" || tok.Val == "[" || tok.Val == "{" || tok.Val == "-" || tok.Val == "+"
	}
	return false
}

func (p *Parser) parseConcat() (Evaluator, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for p.PeekSymbol("~") {
		p.Consume()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &concatNode{left: left, right: right}
	}
	return left, nil
}

func (p *Parser) parseAdditive() (Evaluator, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.PeekSymbol("+") || p.PeekSymbol("-") {
		op := p.Current().Val
		tok := p.Current()
		p.Consume()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: op, left: left, right: right, tok: tok}
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (Evaluator, error) {
	left, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	for p.PeekSymbol("*") || p.PeekSymbol("/") || p.PeekSymbol("//") || p.PeekSymbol("%") {
		op := p.Current().Val
		tok := p.Current()
		p.Consume()
		right, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: op, left: left, right: right, tok: tok}
	}
	return left, nil
}

func (p *Parser) parsePower() (Evaluator, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if p.PeekSymbol("**") {
		tok := p.Current()
		p.Consume()
		right, err := p.parsePower() // right-associative
		if err != nil {
			return nil, err
		}
		return &binaryNode{op: "**", left: left, right: right, tok: tok}, nil
	}
	return left, nil
}

func (p *Parser) parseUnary() (Evaluator, error) {
	if p.PeekSymbol("+") || p.PeekSymbol("-") {
		op := p.Current().Val
		p.Consume()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &unaryNode{op: op, operand: operand}, nil
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (Evaluator, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.PeekSymbol("."):
			p.Consume()
			nameTok, err := p.expectType(TokenIdent)
			if err != nil {
				return nil, err
			}
			expr = &attrNode{target: expr, name: nameTok.Val}
		case p.PeekSymbol("["):
			expr, err = p.parseSubscript(expr)
			if err != nil {
				return nil, err
			}
		case p.PeekSymbol("("):
			args, err := p.parseCallArgs()
			if err != nil {
				return nil, err
			}
			expr = &callNode{target: expr, args: args, tok: p.Current()}
		case p.PeekSymbol("|"):
			p.Consume()
			nameTok, err := p.expectType(TokenIdent)
			if err != nil {
				return nil, err
			}
			args := &argList{kwargs: map[string]Evaluator{}}
			if p.PeekSymbol("(") {
				args, err = p.parseCallArgs()
				if err != nil {
					return nil, err
				}
			}
			expr = &filterExprNode{target: expr, name: nameTok.Val, args: args, tok: nameTok}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parseSubscript(target Evaluator) (Evaluator, error) {
	p.Consume() // [
	var start, stop, step Evaluator
	isSlice := false

	if !p.PeekSymbol(":") {
		e, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		start = e
	}
	if p.PeekSymbol(":") {
		isSlice = true
		p.Consume()
		if !p.PeekSymbol(":") && !p.PeekSymbol("]") {
			e, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			stop = e
		}
		if p.PeekSymbol(":") {
			p.Consume()
			if !p.PeekSymbol("]") {
				e, err := p.ParseExpression()
				if err != nil {
					return nil, err
				}
				step = e
			}
		}
	}
	if _, err := p.expectSymbol("]"); err != nil {
		return nil, err
	}
	if isSlice {
		return &sliceNode{target: target, start: start, stop: stop, step: step}, nil
	}
	return &indexNode{target: target, key: start}, nil
}

// parseCallArgs parses `(args, kw=val, ...)` for both calls and filter
// invocations.
func (p *Parser) parseCallArgs() (*argList, error) {
	if _, err := p.expectSymbol("("); err != nil {
		return nil, err
	}
	args := &argList{kwargs: map[string]Evaluator{}}
	for !p.PeekSymbol(")") {
		if len(args.positional) > 0 || len(args.kwOrder) > 0 {
			if _, err := p.expectSymbol(","); err != nil {
				return nil, err
			}
			if p.PeekSymbol(")") {
				break
			}
		}
		if p.Current() != nil && p.Current().Type == TokenIdent &&
			p.Get(p.idx+1) != nil && p.Get(p.idx+1).Type == TokenSymbol && p.Get(p.idx+1).Val == "=" {
			name := p.Current().Val
			p.Consume()
			p.Consume()
			val, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			args.kwargs[name] = val
			args.kwOrder = append(args.kwOrder, name)
			continue
		}
		val, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		args.positional = append(args.positional, val)
	}
	if _, err := p.expectSymbol(")"); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parsePrimary() (Evaluator, error) {
	tok := p.Current()
	if tok == nil {
		return nil, p.errorf("Unexpected end of expression")
	}

	switch tok.Type {
	case TokenInt:
		p.Consume()
		return &literalNode{val: Int(parseIntLiteral(tok.Val))}, nil
	case TokenFloat:
		p.Consume()
		return &literalNode{val: Float(parseFloatLiteral(tok.Val))}, nil
	case TokenString:
		p.Consume()
		return &literalNode{val: String(tok.Val)}, nil
	case TokenIdent:
		p.Consume()
		return &nameNode{name: tok.Val, tok: tok}, nil
	case TokenKeyword:
		switch tok.Val {
		case "true":
			p.Consume()
			return &literalNode{val: Bool(true)}, nil
		case "false":
			p.Consume()
			return &literalNode{val: Bool(false)}, nil
		case "none":
			p.Consume()
			return &literalNode{val: None()}, nil
		case "not":
			return p.parseNot()
		}
	case TokenSymbol:
		switch tok.Val {
		case "(":
			return p.parseParenOrTuple()
		case "[":
			return p.parseListLiteral()
		case "{":
			return p.parseDictLiteral()
		}
	}
	return nil, p.errorf("Unexpected token %s in expression", p.describe(tok))
}

func (p *Parser) parseParenOrTuple() (Evaluator, error) {
	p.Consume() // (
	if p.PeekSymbol(")") {
		p.Consume()
		return &listNode{}, nil
	}
	first, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if p.PeekSymbol(",") {
		items := []Evaluator{first}
		for p.PeekSymbol(",") {
			p.Consume()
			if p.PeekSymbol(")") {
				break
			}
			e, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			items = append(items, e)
		}
		if _, err := p.expectSymbol(")"); err != nil {
			return nil, err
		}
		return &listNode{items: items}, nil
	}
	if _, err := p.expectSymbol(")"); err != nil {
		return nil, err
	}
	return first, nil
}

func (p *Parser) parseListLiteral() (Evaluator, error) {
	p.Consume() // [
	var items []Evaluator
	for !p.PeekSymbol("]") {
		if len(items) > 0 {
			if _, err := p.expectSymbol(","); err != nil {
				return nil, err
			}
			if p.PeekSymbol("]") {
				break
			}
		}
		e, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	if _, err := p.expectSymbol("]"); err != nil {
		return nil, err
	}
	return &listNode{items: items}, nil
}

func (p *Parser) parseDictLiteral() (Evaluator, error) {
	p.Consume() // {
	var entries []dictEntry
	for !p.PeekSymbol("}") {
		if len(entries) > 0 {
			if _, err := p.expectSymbol(","); err != nil {
				return nil, err
			}
			if p.PeekSymbol("}") {
				break
			}
		}
		key, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectSymbol(":"); err != nil {
			return nil, err
		}
		val, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		entries = append(entries, dictEntry{key: key, val: val})
	}
	if _, err := p.expectSymbol("}"); err != nil {
		return nil, err
	}
	return &dictNode{entries: entries}, nil
}

func parseIntLiteral(s string) int64 {
	var n int64
	for i := 0; i < len(s); i++ {
		n = n*10 + int64(s[i]-'0')
	}
	return n
}

func parseFloatLiteral(s string) float64 {
	var whole, frac float64
	var fracDiv float64 = 1
	inFrac := false
	i := 0
	for ; i < len(s) && s[i] != 'e' && s[i] != 'E'; i++ {
		c := s[i]
		if c == '.' {
			inFrac = true
			continue
		}
		if inFrac {
			frac = frac*10 + float64(c-'0')
			fracDiv *= 10
		} else {
			whole = whole*10 + float64(c-'0')
		}
	}
	result := whole + frac/fracDiv
	if i < len(s) {
		sign := 1.0
		i++ // skip e/E
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			if s[i] == '-' {
				sign = -1
			}
			i++
		}
		exp := 0.0
		for ; i < len(s); i++ {
			exp = exp*10 + float64(s[i]-'0')
		}
		result *= pow10(sign * exp)
	}
	return result
}

func pow10(exp float64) float64 {
	result := 1.0
	if exp >= 0 {
		for i := 0; i < int(exp); i++ {
			result *= 10
		}
		return result
	}
	for i := 0; i < int(-exp); i++ {
		result /= 10
	}
	return result
}
