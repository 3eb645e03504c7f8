package parser

// parseTypeExpression parses a type annotation. Postfix '!' and '?' must be
// on the same line as the type they modify; a postfix '?' is kept only when
// the annotation ends right after it, so `x as T ? a : b` stays a
// conditional.
func (p *Parser) parseTypeExpression() (Expr, error) {
	typ, err := p.parseTypePrimary()
	if err != nil {
		return nil, err
	}
	for !p.lineBreakBefore() {
		switch p.tok().Kind {
		case TokenNot:
			p.markAt(typ.Location())
			if err := p.next(); err != nil {
				return nil, err
			}
			typ = finish(p, &NonNullableType{Base: typ})
			continue
		case TokenQuestion:
			st := p.Snapshot()
			p.markAt(typ.Location())
			if err := p.next(); err == nil && p.atTypeEnd() {
				typ = finish(p, &NullableType{Base: typ})
				continue
			}
			p.Restore(st)
		}
		return typ, nil
	}
	return typ, nil
}

// atTypeEnd reports whether the current token cannot continue a type
// annotation.
func (p *Parser) atTypeEnd() bool {
	switch p.tok().Kind {
	case TokenComma, TokenSemicolon, TokenRParen, TokenRBracket, TokenRBrace, TokenLBrace,
		TokenAssign, TokenGT, TokenShr, TokenUShr, TokenGE, TokenShrAssign, TokenUShrAssign, TokenEOF:
		return true
	}
	return p.lineBreakBefore()
}

func (p *Parser) parseTypePrimary() (Expr, error) {
	t := p.tok()
	switch t.Kind {
	case TokenStar:
		return leaf(p, &AnyType{})
	case TokenVoid:
		return leaf(p, &VoidType{})
	case TokenQuestion:
		p.mark()
		if err := p.next(); err != nil {
			return nil, err
		}
		base, err := p.parseTypePrimary()
		if err != nil {
			return nil, err
		}
		return finish(p, &NullableType{Base: base}), nil
	case TokenLBracket:
		return p.parseArrayOrTupleType()
	case TokenFunction:
		return p.parseFunctionType()
	case TokenLParen:
		p.mark()
		if err := p.open(TokenLParen); err != nil {
			return nil, err
		}
		inner, err := p.parseTypeExpression()
		if err != nil {
			return nil, err
		}
		if err := p.close(); err != nil {
			return nil, err
		}
		return finish(p, &Paren{Expr: inner}), nil
	case TokenIdent, TokenPublic, TokenPrivate, TokenProtected, TokenInternal:
		return p.parseTypeName()
	}
	if t.Kind == TokenEOF {
		return nil, p.fail(ErrUnexpectedEnd, t.Span())
	}
	return nil, p.failExpectingTerm("type")
}

// parseTypeName parses a dotted, possibly qualified name with optional type
// arguments, such as flash.utils::Dictionary or Vector.<int>.
func (p *Parser) parseTypeName() (Expr, error) {
	typ, err := p.parsePrimary(false)
	if err != nil {
		return nil, err
	}
	for {
		switch p.tok().Kind {
		case TokenDotLt, TokenColonColon:
			typ, err = p.parseMemberSuffix(typ)
		case TokenDot:
			p.markAt(typ.Location())
			if err := p.next(); err != nil {
				return nil, err
			}
			name, nerr := p.parseNameToken()
			if nerr != nil {
				return nil, nerr
			}
			typ = finish(p, &Dot{Base: typ, Name: name})
		default:
			return typ, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func (p *Parser) parseArrayOrTupleType() (Expr, error) {
	p.mark()
	if err := p.open(TokenLBracket); err != nil {
		return nil, err
	}
	var elements []Expr
	for {
		e, err := p.parseTypeExpression()
		if err != nil {
			return nil, err
		}
		elements = append(elements, e)
		if !p.check(TokenComma) {
			break
		}
		if err := p.next(); err != nil {
			return nil, err
		}
	}
	if err := p.close(); err != nil {
		return nil, err
	}
	if len(elements) == 1 {
		return finish(p, &ArrayType{Element: elements[0]}), nil
	}
	return finish(p, &TupleType{Elements: elements}), nil
}

// parseFunctionType parses function(T, U, ...R): Result.
func (p *Parser) parseFunctionType() (Expr, error) {
	p.mark()
	if err := p.next(); err != nil {
		return nil, err
	}
	if err := p.open(TokenLParen); err != nil {
		return nil, err
	}
	ft := &FunctionType{}
	for !p.check(TokenRParen) {
		if p.check(TokenEllipsis) {
			if err := p.next(); err != nil {
				return nil, err
			}
			rest, err := p.parseTypeExpression()
			if err != nil {
				return nil, err
			}
			ft.Rest = rest
			break
		}
		param, err := p.parseTypeExpression()
		if err != nil {
			return nil, err
		}
		ft.Params = append(ft.Params, param)
		if !p.check(TokenRParen) {
			if err := p.expect(TokenComma); err != nil {
				return nil, err
			}
		}
	}
	if err := p.close(); err != nil {
		return nil, err
	}
	var err error
	if ft.Result, err = p.parseOptionalAnnotation(); err != nil {
		return nil, err
	}
	return finish(p, ft), nil
}

// parseTypeArguments parses .<T, U> starting at '.<'.
func (p *Parser) parseTypeArguments() ([]Expr, error) {
	if err := p.expect(TokenDotLt); err != nil {
		return nil, err
	}
	var args []Expr
	for {
		arg, err := p.parseTypeExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.check(TokenComma) {
			break
		}
		if err := p.next(); err != nil {
			return nil, err
		}
	}
	return args, p.expectGreater()
}

// parseTypeParameters parses .<T, U> in a definition header.
func (p *Parser) parseTypeParameters() ([]*Identifier, error) {
	if !p.check(TokenDotLt) {
		return nil, nil
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	var params []*Identifier
	for {
		t := p.tok()
		if t.Kind != TokenIdent {
			return nil, p.failExpecting(TokenIdent)
		}
		id := &Identifier{Name: t.Value}
		id.setLocation(t.Span())
		params = append(params, id)
		if err := p.next(); err != nil {
			return nil, err
		}
		if !p.check(TokenComma) {
			break
		}
		if err := p.next(); err != nil {
			return nil, err
		}
	}
	return params, p.expectGreater()
}

// expectGreater closes a type argument list. A token that merely starts
// with '>' (>>, >>>, >=, ...) is split so the rest of it is scanned again.
func (p *Parser) expectGreater() error {
	switch p.tok().Kind {
	case TokenGT:
		return p.next()
	case TokenShr, TokenUShr, TokenGE, TokenShrAssign, TokenUShrAssign:
		return p.lexer.splitGreater()
	}
	return p.failExpecting(TokenGT)
}
