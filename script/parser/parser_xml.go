package parser

// parseXMLLiteral parses an XML initializer starting at '<' in expression
// position: markup, an element or a <>...</> list.
func (p *Parser) parseXMLLiteral() (Expr, error) {
	p.mark()
	if r := p.lexer.Lookahead(0); r == '!' || r == '?' {
		if err := p.lexer.ScanXMLMarkup(); err != nil {
			return nil, err
		}
		m := &XMLMarkup{Text: p.tok().Value}
		if err := p.next(); err != nil {
			return nil, err
		}
		return finish(p, m), nil
	}
	return p.parseXMLTagged(ModeNormal)
}

// parseXMLTagged continues after a marked '<'. Scanning resumes in mode
// once the element or list is closed.
func (p *Parser) parseXMLTagged(resume LexerMode) (Expr, error) {
	p.lexer.SetMode(ModeXMLTag)
	if err := p.next(); err != nil {
		return nil, err
	}
	if p.check(TokenGT) {
		return p.parseXMLList(resume)
	}
	return p.parseXMLElement(resume)
}

func (p *Parser) parseXMLList(resume LexerMode) (Expr, error) {
	p.lexer.SetMode(ModeXMLContent)
	if err := p.next(); err != nil {
		return nil, err
	}
	list := &XMLList{}
	var err error
	if list.Content, err = p.parseXMLContent(); err != nil {
		return nil, err
	}
	p.lexer.SetMode(ModeXMLTag)
	if err := p.next(); err != nil {
		return nil, err
	}
	if err := p.closeXMLTag(resume); err != nil {
		return nil, err
	}
	return finish(p, list), nil
}

// parseXMLElement parses an element whose '<' the caller has consumed and
// marked. The current token is the first one of the tag.
func (p *Parser) parseXMLElement(resume LexerMode) (Expr, error) {
	el := &XMLElement{}
	var err error
	if el.Name, el.NameExpr, err = p.parseXMLTagName(); err != nil {
		return nil, err
	}
	if err := p.parseXMLAttributes(el); err != nil {
		return nil, err
	}
	if p.check(TokenXMLSlashGt) {
		el.Empty = true
		if err := p.closeXMLTag(resume); err != nil {
			return nil, err
		}
		return finish(p, el), nil
	}
	if !p.check(TokenGT) {
		return nil, p.failExpecting(TokenGT)
	}
	p.lexer.SetMode(ModeXMLContent)
	if err := p.next(); err != nil {
		return nil, err
	}
	if el.Content, err = p.parseXMLContent(); err != nil {
		return nil, err
	}
	p.lexer.SetMode(ModeXMLTag)
	if err := p.next(); err != nil {
		return nil, err
	}
	closeSpan := p.tok().Span()
	if el.CloseName, el.CloseNameExpr, err = p.parseXMLTagName(); err != nil {
		return nil, err
	}
	if el.NameExpr == nil && el.CloseNameExpr == nil && el.Name != el.CloseName {
		p.syntaxError(ErrXMLClosingTagMismatch, closeSpan, el.CloseName, el.Name)
	}
	if err := p.closeXMLTag(resume); err != nil {
		return nil, err
	}
	return finish(p, el), nil
}

// parseXMLTagName accepts a plain name or an interpolated {expr}.
func (p *Parser) parseXMLTagName() (string, Expr, error) {
	t := p.tok()
	switch t.Kind {
	case TokenXMLName:
		return t.Value, nil, p.next()
	case TokenLBrace:
		e, err := p.parseXMLInterpolation(ModeXMLTag)
		return "", e, err
	}
	return "", nil, p.failExpecting(TokenXMLName)
}

func (p *Parser) parseXMLAttributes(el *XMLElement) error {
	seen := make(map[string]bool)
	for {
		t := p.tok()
		switch t.Kind {
		case TokenLBrace:
			if el.AttributeExpr != nil {
				return p.failExpecting(TokenGT)
			}
			e, err := p.parseXMLInterpolation(ModeXMLTag)
			if err != nil {
				return err
			}
			el.AttributeExpr = e
			continue
		case TokenXMLName:
		default:
			return nil
		}
		p.mark()
		attr := &XMLAttribute{Name: t.Value}
		if seen[attr.Name] {
			p.syntaxError(ErrDuplicateAttribute, t.Span(), attr.Name)
		}
		seen[attr.Name] = true
		if err := p.next(); err != nil {
			return err
		}
		if err := p.expect(TokenAssign); err != nil {
			return err
		}
		switch v := p.tok(); v.Kind {
		case TokenXMLAttributeValue:
			attr.Value = v.Value
			if err := p.next(); err != nil {
				return err
			}
		case TokenLBrace:
			e, err := p.parseXMLInterpolation(ModeXMLTag)
			if err != nil {
				return err
			}
			attr.ValueExpr = e
		default:
			return p.failExpecting(TokenXMLAttributeValue)
		}
		el.Attributes = append(el.Attributes, finish(p, attr))
	}
}

// closeXMLTag consumes the '>' or '/>' that ends a tag and switches the
// lexer back to resume before scanning on.
func (p *Parser) closeXMLTag(resume LexerMode) error {
	if !p.check(TokenGT) && !p.check(TokenXMLSlashGt) {
		return p.failExpecting(TokenGT)
	}
	p.lexer.SetMode(resume)
	return p.next()
}

// parseXMLContent collects children up to the '</' of the enclosing
// element, which is left as the current token.
func (p *Parser) parseXMLContent() ([]XMLNode, error) {
	var content []XMLNode
	for {
		t := p.tok()
		switch t.Kind {
		case TokenXMLLtSlash:
			return content, nil
		case TokenXMLText:
			text := &XMLText{Text: t.Value}
			text.setLocation(t.Span())
			content = append(content, text)
			if err := p.next(); err != nil {
				return nil, err
			}
		case TokenXMLMarkup:
			m := &XMLMarkup{Text: t.Value}
			m.setLocation(t.Span())
			content = append(content, m)
			if err := p.next(); err != nil {
				return nil, err
			}
		case TokenLBrace:
			p.mark()
			e, err := p.parseXMLInterpolation(ModeXMLContent)
			if err != nil {
				return nil, err
			}
			content = append(content, finish(p, &XMLText{Expr: e}))
		case TokenLT:
			p.mark()
			child, err := p.parseXMLTagged(ModeXMLContent)
			if err != nil {
				return nil, err
			}
			content = append(content, child.(XMLNode))
		case TokenEOF:
			return nil, p.failExpecting(TokenXMLLtSlash)
		default:
			return nil, p.failUnexpected()
		}
	}
}

// parseXMLInterpolation parses {expr} inside XML. The '{' was scanned in an
// XML mode; the expression is scanned normally and mode applies again after
// the '}'.
func (p *Parser) parseXMLInterpolation(mode LexerMode) (Expr, error) {
	p.lexer.SetMode(ModeNormal)
	if err := p.open(TokenLBrace); err != nil {
		return nil, err
	}
	e, err := p.parseListExpression()
	if err != nil {
		return nil, err
	}
	if err := p.closeInMode(mode); err != nil {
		return nil, err
	}
	return e, nil
}
