package filter

// Recursive-descent parser for the options filter grammar:
//
//	Expr      := OrExpr
//	OrExpr    := AndExpr ('+' AndExpr)*
//	AndExpr   := Primary (',' Primary)*
//	Primary   := '(' Expr ')' | Comparison
//	Comparison:= Identifier CompOp Literal
//
// ',' (AND) binds tighter than '+' (OR); parentheses override.
// Field vocabulary and literal/unit compatibility are checked here
// so a typo fails once per compilation, not once per record.

type parser struct {
	tokens []Token
	pos    int
}

func parse(tokens []Token) (Expr, error) {
	p := &parser{tokens: tokens}
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Type != TokenEOF {
		return nil, &ParseError{Pos: tok.Pos, Expected: "',', '+' or end of filter", Found: describe(tok)}
	}
	return expr, nil
}

func (p *parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *parser) next() Token {
	tok := p.tokens[p.pos]
	if tok.Type != TokenEOF {
		p.pos++
	}
	return tok
}

func (p *parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == TokenPlus {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: OpOr, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (Expr, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == TokenComma {
		p.next()
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: OpAnd, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parsePrimary() (Expr, error) {
	tok := p.peek()
	if tok.Type == TokenLParen {
		p.next()
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if closing := p.peek(); closing.Type != TokenRParen {
			return nil, &ParseError{Pos: closing.Pos, Expected: "')'", Found: describe(closing)}
		}
		p.next()
		return expr, nil
	}
	return p.parseComparison()
}

func (p *parser) parseComparison() (Expr, error) {
	field := p.next()
	if field.Type != TokenIdent {
		return nil, &ParseError{Pos: field.Pos, Expected: "field name or '('", Found: describe(field)}
	}
	dom, known := fieldDomains[field.Text]
	if !known {
		return nil, &CompileError{Field: field.Text, Reason: "unknown field, expected one of: " + knownFieldList()}
	}

	op := p.next()
	if op.Type != TokenOp {
		return nil, &ParseError{Pos: op.Pos, Expected: "comparison operator (>, <, >=, <=, =, !=)", Found: describe(op)}
	}

	lit := p.next()
	switch lit.Type {
	case TokenNumber, TokenPercent, TokenDuration:
	default:
		return nil, &ParseError{Pos: lit.Pos, Expected: "number, percent or duration literal", Found: describe(lit)}
	}

	value, err := normalize(lit, field.Text, dom)
	if err != nil {
		return nil, err
	}
	return &CompareExpr{Field: field.Text, Op: op.Text, Value: value}, nil
}
