package parser

// parseExpression parses an expression whose operators bind at least as
// tightly as minPrec. allowIn gates the `in` operator (off in for-heads) and
// allowAssign gates assignment operators.
func (p *Parser) parseExpression(allowIn bool, minPrec Precedence, allowAssign bool) (Expr, error) {
	base, err := p.parsePrefix(allowIn, allowAssign)
	if err != nil {
		return nil, err
	}
	for {
		next, ok, err := p.parseInfix(base, allowIn, minPrec, allowAssign)
		if err != nil {
			return nil, err
		}
		if !ok {
			return base, nil
		}
		base = next
	}
}

func (p *Parser) parseAssignmentExpression() (Expr, error) {
	return p.parseExpression(true, PrecAssignment, true)
}

func (p *Parser) parseListExpression() (Expr, error) {
	return p.parseExpression(true, PrecList, true)
}

func (p *Parser) parsePrefix(allowIn, allowAssign bool) (Expr, error) {
	t := p.tok()
	if op, prec, ok := unaryOperatorFor(t.Kind); ok {
		p.mark()
		if err := p.next(); err != nil {
			return nil, err
		}
		operand, err := p.parseExpression(allowIn, prec, false)
		if err != nil {
			return nil, err
		}
		return finish(p, &Unary{Op: op, Operand: operand}), nil
	}
	if p.inFunctionBody() {
		switch {
		case t.Is("yield"):
			p.functionFlags[len(p.functionFlags)-1].yields = true
			return p.parseYield(allowIn)
		case t.Is("await"):
			p.functionFlags[len(p.functionFlags)-1].awaits = true
			p.mark()
			if err := p.next(); err != nil {
				return nil, err
			}
			operand, err := p.parseExpression(allowIn, PrecUnary, false)
			if err != nil {
				return nil, err
			}
			return finish(p, &Unary{Op: OpAwait, Operand: operand}), nil
		}
	}
	return p.parsePrimary(allowAssign)
}

// parseYield takes an operand unless the expression ends right after the
// keyword.
func (p *Parser) parseYield(allowIn bool) (Expr, error) {
	p.mark()
	if err := p.next(); err != nil {
		return nil, err
	}
	y := &Unary{Op: OpYield}
	if !p.atExpressionEnd() {
		operand, err := p.parseExpression(allowIn, PrecAssignment, true)
		if err != nil {
			return nil, err
		}
		y.Operand = operand
	}
	return finish(p, y), nil
}

// atExpressionEnd reports whether no operand can follow the previous token.
func (p *Parser) atExpressionEnd() bool {
	switch p.tok().Kind {
	case TokenSemicolon, TokenRBrace, TokenRParen, TokenRBracket, TokenComma, TokenColon, TokenEOF:
		return true
	}
	return p.lineBreakBefore()
}

func (p *Parser) failExpectingExpression() error {
	if p.check(TokenEOF) {
		return p.fail(ErrUnexpectedEnd, p.tok().Span())
	}
	return p.failExpectingTerm("expression")
}

func (p *Parser) parsePrimary(allowAssign bool) (Expr, error) {
	t := p.tok()
	switch t.Kind {
	case TokenIdent:
		id := &Identifier{Name: t.Value}
		id.setLocation(t.Span())
		return id, p.next()
	case TokenAt:
		return p.parsePropertyName()
	case TokenStar:
		id := &Identifier{Name: "*"}
		id.setLocation(t.Span())
		return id, p.next()
	case TokenPublic, TokenPrivate, TokenProtected, TokenInternal:
		ns := &ReservedNamespace{Name: t.Kind.String()}
		ns.setLocation(t.Span())
		return ns, p.next()
	case TokenString:
		return leaf(p, &StringLiteral{Value: t.Value})
	case TokenNumber:
		return leaf(p, &NumberLiteral{Value: t.Number})
	case TokenTrue, TokenFalse:
		return leaf(p, &BooleanLiteral{Value: t.Kind == TokenTrue})
	case TokenNull:
		return leaf(p, &NullLiteral{})
	case TokenThis:
		return leaf(p, &ThisLiteral{})
	case TokenSlash, TokenSlashAssign:
		if err := p.lexer.ScanRegExp(); err != nil {
			return nil, err
		}
		t = p.tok()
		return leaf(p, &RegExpLiteral{Pattern: t.Value, Flags: t.Flags})
	case TokenLParen:
		p.mark()
		if err := p.open(TokenLParen); err != nil {
			return nil, err
		}
		inner, err := p.parseListExpression()
		if err != nil {
			return nil, err
		}
		if err := p.close(); err != nil {
			return nil, err
		}
		return finish(p, &Paren{Expr: inner}), nil
	case TokenLBracket:
		return p.parseLiteralOrPatternAssignment(allowAssign, p.parseArrayLiteral)
	case TokenLBrace:
		return p.parseLiteralOrPatternAssignment(allowAssign, p.parseObjectLiteral)
	case TokenFunction:
		return p.parseFunctionExpression()
	case TokenNew:
		return p.parseNew()
	case TokenSuper:
		return p.parseSuper()
	case TokenLT:
		return p.parseXMLLiteral()
	}
	return nil, p.failExpectingExpression()
}

// leaf builds a node from the current token alone.
func leaf[T Expr](p *Parser, n T) (Expr, error) {
	n.setLocation(p.tok().Span())
	return n, p.next()
}

// parseLiteralOrPatternAssignment parses an array or object literal. When
// the literal is followed by '=' it is parsed again from the same position
// as a destructuring pattern.
func (p *Parser) parseLiteralOrPatternAssignment(allowAssign bool, literal func() (Expr, error)) (Expr, error) {
	st := p.Snapshot()
	lit, err := literal()
	if err != nil {
		return nil, err
	}
	if !allowAssign || !p.check(TokenAssign) {
		return lit, nil
	}
	p.Restore(st)
	p.mark()
	left, err := p.parsePattern()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenAssign); err != nil {
		return nil, err
	}
	right, err := p.parseAssignmentExpression()
	if err != nil {
		return nil, err
	}
	return finish(p, &PatternAssignment{Left: left, Right: right}), nil
}

func (p *Parser) parseArrayLiteral() (Expr, error) {
	p.mark()
	if err := p.open(TokenLBracket); err != nil {
		return nil, err
	}
	var elements []Expr
	for !p.check(TokenRBracket) {
		if p.check(TokenComma) {
			elements = append(elements, nil)
			if err := p.next(); err != nil {
				return nil, err
			}
			continue
		}
		e, err := p.parseElement()
		if err != nil {
			return nil, err
		}
		elements = append(elements, e)
		if !p.check(TokenRBracket) {
			if err := p.expect(TokenComma); err != nil {
				return nil, err
			}
		}
	}
	if err := p.close(); err != nil {
		return nil, err
	}
	return finish(p, &ArrayLiteral{Elements: elements}), nil
}

// parseElement parses an array element or call argument, which may be
// spread.
func (p *Parser) parseElement() (Expr, error) {
	if !p.check(TokenEllipsis) {
		return p.parseAssignmentExpression()
	}
	p.mark()
	if err := p.next(); err != nil {
		return nil, err
	}
	e, err := p.parseAssignmentExpression()
	if err != nil {
		return nil, err
	}
	return finish(p, &Spread{Expr: e}), nil
}

func (p *Parser) parseObjectLiteral() (Expr, error) {
	p.mark()
	if err := p.open(TokenLBrace); err != nil {
		return nil, err
	}
	var fields []*ObjectField
	for !p.check(TokenRBrace) {
		f, err := p.parseObjectField()
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
		if !p.check(TokenRBrace) {
			if err := p.expect(TokenComma); err != nil {
				return nil, err
			}
		}
	}
	if err := p.close(); err != nil {
		return nil, err
	}
	return finish(p, &ObjectLiteral{Fields: fields}), nil
}

func (p *Parser) parseObjectField() (*ObjectField, error) {
	p.mark()
	if ok, err := p.consume(TokenEllipsis); err != nil {
		return nil, err
	} else if ok {
		value, err := p.parseAssignmentExpression()
		if err != nil {
			return nil, err
		}
		return finish(p, &ObjectField{Value: value}), nil
	}
	key, computed, err := p.parseFieldKey()
	if err != nil {
		return nil, err
	}
	f := &ObjectField{Key: key, Computed: computed}
	if _, isName := key.(*Identifier); isName && !computed && !p.check(TokenColon) {
		return finish(p, f), nil
	}
	if err := p.expect(TokenColon); err != nil {
		return nil, err
	}
	if f.Value, err = p.parseAssignmentExpression(); err != nil {
		return nil, err
	}
	return finish(p, f), nil
}

// parseFieldKey parses an object or object-pattern key: a name, a string, a
// number or a computed [expr].
func (p *Parser) parseFieldKey() (Expr, bool, error) {
	t := p.tok()
	switch {
	case t.Kind == TokenLBracket:
		key, err := p.parseBracketKey()
		return key, true, err
	case t.Kind == TokenString:
		key, err := leaf(p, &StringLiteral{Value: t.Value})
		return key, false, err
	case t.Kind == TokenNumber:
		key, err := leaf(p, &NumberLiteral{Value: t.Number})
		return key, false, err
	case t.Kind.IsIdentifierName():
		key, err := leaf(p, &Identifier{Name: tokenName(t)})
		return key, false, err
	}
	return nil, false, p.failExpectingTerm("field name")
}

func (p *Parser) parseBracketKey() (Expr, error) {
	if err := p.open(TokenLBracket); err != nil {
		return nil, err
	}
	key, err := p.parseListExpression()
	if err != nil {
		return nil, err
	}
	return key, p.close()
}

func (p *Parser) parseArguments() ([]Expr, error) {
	if err := p.open(TokenLParen); err != nil {
		return nil, err
	}
	args := []Expr{}
	for !p.check(TokenRParen) {
		arg, err := p.parseElement()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.check(TokenRParen) {
			if err := p.expect(TokenComma); err != nil {
				return nil, err
			}
		}
	}
	return args, p.close()
}

func (p *Parser) parseFunctionExpression() (Expr, error) {
	p.mark()
	if err := p.next(); err != nil {
		return nil, err
	}
	fn := &FunctionExpression{}
	if t := p.tok(); t.Kind == TokenIdent {
		fn.Name, fn.NameSpan = t.Value, t.Span()
		if err := p.next(); err != nil {
			return nil, err
		}
	}
	common, err := p.parseFunctionCommon(parseContext{}, false)
	if err != nil {
		return nil, err
	}
	fn.Common = common
	return finish(p, fn), nil
}

// parseNew parses `new Base(args)`. The base takes member accesses only, so
// the first argument list belongs to the new expression.
func (p *Parser) parseNew() (Expr, error) {
	p.mark()
	if err := p.next(); err != nil {
		return nil, err
	}
	var base Expr
	var err error
	if p.check(TokenNew) {
		base, err = p.parseNew()
	} else {
		base, err = p.parsePrimary(false)
	}
	if err != nil {
		return nil, err
	}
	for p.atMemberSuffix(base) {
		if base, err = p.parseMemberSuffix(base); err != nil {
			return nil, err
		}
	}
	n := &New{Base: base}
	if p.check(TokenLParen) && !p.lineBreakBefore() {
		if n.Arguments, err = p.parseArguments(); err != nil {
			return nil, err
		}
	}
	return finish(p, n), nil
}

func (p *Parser) parseSuper() (Expr, error) {
	p.mark()
	if err := p.next(); err != nil {
		return nil, err
	}
	s := &Super{}
	if p.check(TokenLParen) {
		args, err := p.parseArguments()
		if err != nil {
			return nil, err
		}
		s.Arguments = args
	}
	return finish(p, s), nil
}

// continuesOnLine reports whether a '[' or '(' at the current token extends
// base: it must be on the same line, or on a line indented deeper than the
// line base starts on.
func (p *Parser) continuesOnLine(base Expr) bool {
	return !p.lineBreakBefore() || p.moreIndented(base.Location().FirstLine)
}

func (p *Parser) atMemberSuffix(base Expr) bool {
	switch p.tok().Kind {
	case TokenDot, TokenDotDot, TokenDotLt, TokenColonColon:
		return true
	case TokenLBracket:
		return p.continuesOnLine(base)
	}
	return false
}

// parseMemberSuffix extends base by one of .name, .(filter), ..name, .<T>,
// ::name or [key].
func (p *Parser) parseMemberSuffix(base Expr) (Expr, error) {
	switch p.tok().Kind {
	case TokenColonColon:
		return p.parseQualifiedSuffix(base)
	case TokenLBracket:
		p.markAt(base.Location())
		key, err := p.parseBracketKey()
		if err != nil {
			return nil, err
		}
		return finish(p, &Brackets{Base: base, Key: key}), nil
	case TokenDotLt:
		p.markAt(base.Location())
		args, err := p.parseTypeArguments()
		if err != nil {
			return nil, err
		}
		return finish(p, &TypeArguments{Base: base, Arguments: args}), nil
	case TokenDotDot:
		p.markAt(base.Location())
		if err := p.next(); err != nil {
			return nil, err
		}
		name, err := p.parsePropertyName()
		if err != nil {
			return nil, err
		}
		return finish(p, &Descendants{Base: base, Name: name}), nil
	}
	p.markAt(base.Location())
	if err := p.next(); err != nil {
		return nil, err
	}
	if p.check(TokenLParen) {
		if err := p.open(TokenLParen); err != nil {
			return nil, err
		}
		test, err := p.parseListExpression()
		if err != nil {
			return nil, err
		}
		if err := p.close(); err != nil {
			return nil, err
		}
		return finish(p, &Filter{Base: base, Test: test}), nil
	}
	name, err := p.parsePropertyName()
	if err != nil {
		return nil, err
	}
	return finish(p, &Dot{Base: base, Name: name}), nil
}

// parsePropertyName parses what may follow '.', '..' or stand alone after
// '@': an optionally attribute-marked, optionally qualified name.
func (p *Parser) parsePropertyName() (*Identifier, error) {
	p.mark()
	attribute, err := p.consume(TokenAt)
	if err != nil {
		return nil, err
	}
	if attribute && p.check(TokenLBracket) {
		key, err := p.parseBracketKey()
		if err != nil {
			return nil, err
		}
		return finish(p, &Identifier{Brackets: key, Attribute: true}), nil
	}
	id, err := p.parseNameToken()
	if err != nil {
		return nil, err
	}
	for p.check(TokenColonColon) {
		if id, err = p.parseQualifiedSuffix(id); err != nil {
			return nil, err
		}
	}
	id.Attribute = attribute
	id.setLocation(p.pop())
	return id, nil
}

// parseNameToken turns the current identifier name or '*' into an
// Identifier.
func (p *Parser) parseNameToken() (*Identifier, error) {
	t := p.tok()
	var name string
	switch {
	case t.Kind == TokenStar:
		name = "*"
	case t.Kind.IsIdentifierName():
		name = tokenName(t)
	default:
		return nil, p.failExpecting(TokenIdent)
	}
	id := &Identifier{Name: name}
	id.setLocation(t.Span())
	return id, p.next()
}

// parseQualifiedSuffix parses `::name` or `::[key]` after qualifier.
func (p *Parser) parseQualifiedSuffix(qualifier Expr) (*Identifier, error) {
	p.markAt(qualifier.Location())
	if err := p.expect(TokenColonColon); err != nil {
		return nil, err
	}
	if p.check(TokenLBracket) {
		key, err := p.parseBracketKey()
		if err != nil {
			return nil, err
		}
		return finish(p, &Identifier{Qualifier: qualifier, Brackets: key}), nil
	}
	t := p.tok()
	name := "*"
	if t.Kind != TokenStar {
		if !t.Kind.IsIdentifierName() {
			return nil, p.failExpecting(TokenIdent)
		}
		name = tokenName(t)
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	return finish(p, &Identifier{Qualifier: qualifier, Name: name}), nil
}

// parseInfix tries every way of extending base in turn. It reports false
// when the current token does not continue the expression at minPrec.
func (p *Parser) parseInfix(base Expr, allowIn bool, minPrec Precedence, allowAssign bool) (Expr, bool, error) {
	t := p.tok()
	switch t.Kind {
	case TokenDot, TokenDotDot, TokenDotLt, TokenColonColon, TokenLBracket:
		if !p.atMemberSuffix(base) {
			return base, false, nil
		}
		e, err := p.parseMemberSuffix(base)
		return e, err == nil, err
	case TokenLParen:
		if !p.continuesOnLine(base) {
			return base, false, nil
		}
		p.markAt(base.Location())
		args, err := p.parseArguments()
		if err != nil {
			return nil, false, err
		}
		return finish(p, &Call{Base: base, Arguments: args}), true, nil
	case TokenIncrement, TokenDecrement:
		if p.lineBreakBefore() {
			return base, false, nil
		}
		op := OpPostIncrement
		if t.Kind == TokenDecrement {
			op = OpPostDecrement
		}
		return p.parsePostfix(base, op)
	case TokenNot:
		if p.lineBreakBefore() {
			return base, false, nil
		}
		return p.parsePostfix(base, OpNonNull)
	case TokenAs, TokenIs, TokenInstanceof:
		if PrecRelational < minPrec {
			return base, false, nil
		}
		e, err := p.parseTypeOperator(base, allowIn)
		return e, err == nil, err
	case TokenQuestion:
		if PrecTernary < minPrec {
			return base, false, nil
		}
		e, err := p.parseTernary(base, allowIn)
		return e, err == nil, err
	case TokenComma:
		if minPrec != PrecList {
			return base, false, nil
		}
		e, err := p.parseList(base, allowIn, allowAssign)
		return e, err == nil, err
	}
	if t.Kind == TokenAssign || t.Kind.IsCompoundAssignment() {
		if !allowAssign || PrecAssignment < minPrec {
			return base, false, nil
		}
		e, err := p.parseAssignment(base, allowIn)
		return e, err == nil, err
	}
	op, prec, ok := binaryOperatorFor(t.Kind, minPrec, allowIn)
	if !ok {
		return base, false, nil
	}
	p.markAt(base.Location())
	if err := p.next(); err != nil {
		return nil, false, err
	}
	right, err := p.parseExpression(allowIn, rightOperandPrecedence(prec), false)
	if err != nil {
		return nil, false, err
	}
	return finish(p, &Binary{Op: op, Left: base, Right: right}), true, nil
}

func (p *Parser) parsePostfix(base Expr, op Operator) (Expr, bool, error) {
	p.markAt(base.Location())
	if err := p.next(); err != nil {
		return nil, false, err
	}
	return finish(p, &Unary{Op: op, Operand: base}), true, nil
}

// parseTypeOperator parses `as T`, `instanceof expr` and `is T`. For `is`
// a binding `is x:T` is attempted first and abandoned unless it parses and
// carries a type annotation.
func (p *Parser) parseTypeOperator(base Expr, allowIn bool) (Expr, error) {
	kind := p.tok().Kind
	p.markAt(base.Location())
	if err := p.next(); err != nil {
		return nil, err
	}
	switch kind {
	case TokenAs:
		typ, err := p.parseTypeExpression()
		if err != nil {
			return nil, err
		}
		return finish(p, &TypeOperator{Op: OpAs, Base: base, Type: typ}), nil
	case TokenInstanceof:
		right, err := p.parseExpression(allowIn, rightOperandPrecedence(PrecRelational), false)
		if err != nil {
			return nil, err
		}
		return finish(p, &TypeOperator{Op: OpInstanceof, Base: base, Type: right}), nil
	}
	if binding := p.tryTypedNamePattern(); binding != nil {
		return finish(p, &TypeOperator{Op: OpIs, Base: base, Type: binding.Type, Binding: binding}), nil
	}
	typ, err := p.parseTypeExpression()
	if err != nil {
		return nil, err
	}
	return finish(p, &TypeOperator{Op: OpIs, Base: base, Type: typ}), nil
}

// tryTypedNamePattern speculatively parses `name: T`. On any failure the
// parser is rolled back and nil is returned.
func (p *Parser) tryTypedNamePattern() *NamePattern {
	if p.untypedIs || !p.check(TokenIdent) {
		return nil
	}
	st := p.Snapshot()
	pattern, err := p.parseNamePattern()
	if err != nil || pattern.Type == nil {
		p.Restore(st)
		return nil
	}
	return pattern
}

func (p *Parser) parseTernary(test Expr, allowIn bool) (Expr, error) {
	p.markAt(test.Location())
	if err := p.next(); err != nil {
		return nil, err
	}
	consequent, err := p.parseConsequent()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenColon); err != nil {
		return nil, err
	}
	alternative, err := p.parseExpression(allowIn, PrecAssignment, true)
	if err != nil {
		return nil, err
	}
	return finish(p, &Ternary{Test: test, Consequent: consequent, Alternative: alternative}), nil
}

// parseConsequent parses the middle operand of a conditional. If an
// `is name: T` binding took the ':' the conditional needs, the operand is
// parsed again without bindings.
func (p *Parser) parseConsequent() (Expr, error) {
	st := p.Snapshot()
	consequent, err := p.parseAssignmentExpression()
	if err != nil || p.check(TokenColon) || p.untypedIs {
		return consequent, err
	}
	p.Restore(st)
	p.untypedIs = true
	defer func() { p.untypedIs = false }()
	return p.parseAssignmentExpression()
}

func (p *Parser) parseList(first Expr, allowIn, allowAssign bool) (Expr, error) {
	p.markAt(first.Location())
	items := []Expr{first}
	for p.check(TokenComma) {
		if err := p.next(); err != nil {
			return nil, err
		}
		item, err := p.parseExpression(allowIn, PrecAssignment, allowAssign)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return finish(p, &List{Items: items}), nil
}

// parseAssignment is right associative. An invalid target is reported
// without abandoning the expression.
func (p *Parser) parseAssignment(left Expr, allowIn bool) (Expr, error) {
	op := OpNone
	if kind := p.tok().Kind; kind != TokenAssign {
		op = compoundOperators[kind]
	}
	if !isAssignmentTarget(left) {
		p.syntaxError(ErrInvalidAssignmentTarget, left.Location())
	}
	p.markAt(left.Location())
	if err := p.next(); err != nil {
		return nil, err
	}
	right, err := p.parseExpression(allowIn, PrecAssignment, true)
	if err != nil {
		return nil, err
	}
	return finish(p, &Assignment{Op: op, Left: left, Right: right}), nil
}

func isAssignmentTarget(e Expr) bool {
	switch e := e.(type) {
	case *Identifier, *Dot, *Brackets, *Descendants:
		return true
	case *Paren:
		return isAssignmentTarget(e.Expr)
	}
	return false
}

// parsePattern parses a destructuring pattern: a name, [elements] or
// {fields}, each optionally followed by a type annotation.
func (p *Parser) parsePattern() (Pattern, error) {
	switch p.tok().Kind {
	case TokenLBracket:
		return p.parseArrayPattern()
	case TokenLBrace:
		return p.parseObjectPattern()
	case TokenIdent:
		return p.parseNamePattern()
	}
	if p.check(TokenEOF) {
		return nil, p.fail(ErrUnexpectedEnd, p.tok().Span())
	}
	return nil, p.fail(ErrInvalidDestructuringTarget, p.tok().Span())
}

func (p *Parser) parseNamePattern() (*NamePattern, error) {
	p.mark()
	name, span, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	np := &NamePattern{Name: name, NameSpan: span}
	if np.Type, err = p.parseOptionalAnnotation(); err != nil {
		return nil, err
	}
	return finish(p, np), nil
}

// parseOptionalAnnotation parses `: T` when present.
func (p *Parser) parseOptionalAnnotation() (Expr, error) {
	if !p.check(TokenColon) {
		return nil, nil
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	return p.parseTypeExpression()
}

func (p *Parser) parseArrayPattern() (Pattern, error) {
	p.mark()
	if err := p.open(TokenLBracket); err != nil {
		return nil, err
	}
	ap := &ArrayPattern{}
	for !p.check(TokenRBracket) {
		if p.check(TokenComma) {
			ap.Elements = append(ap.Elements, nil)
			if err := p.next(); err != nil {
				return nil, err
			}
			continue
		}
		if p.check(TokenEllipsis) {
			if err := p.next(); err != nil {
				return nil, err
			}
			rest, err := p.parsePattern()
			if err != nil {
				return nil, err
			}
			ap.Rest = rest
			if !p.check(TokenRBracket) {
				p.syntaxError(ErrRestParameterNotLast, rest.Location())
			}
			break
		}
		e, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		ap.Elements = append(ap.Elements, e)
		if !p.check(TokenRBracket) {
			if err := p.expect(TokenComma); err != nil {
				return nil, err
			}
		}
	}
	if err := p.close(); err != nil {
		return nil, err
	}
	var err error
	if ap.Type, err = p.parseOptionalAnnotation(); err != nil {
		return nil, err
	}
	return finish(p, ap), nil
}

func (p *Parser) parseObjectPattern() (Pattern, error) {
	p.mark()
	if err := p.open(TokenLBrace); err != nil {
		return nil, err
	}
	op := &ObjectPattern{}
	for !p.check(TokenRBrace) {
		f, err := p.parseObjectPatternField()
		if err != nil {
			return nil, err
		}
		op.Fields = append(op.Fields, f)
		if !p.check(TokenRBrace) {
			if err := p.expect(TokenComma); err != nil {
				return nil, err
			}
		}
	}
	if err := p.close(); err != nil {
		return nil, err
	}
	var err error
	if op.Type, err = p.parseOptionalAnnotation(); err != nil {
		return nil, err
	}
	return finish(p, op), nil
}

func (p *Parser) parseObjectPatternField() (*ObjectPatternField, error) {
	p.mark()
	keyToken := p.tok()
	key, computed, err := p.parseFieldKey()
	if err != nil {
		return nil, err
	}
	f := &ObjectPatternField{Key: key}
	if !p.check(TokenColon) {
		id, isName := key.(*Identifier)
		if computed || !isName || keyToken.Kind != TokenIdent {
			return nil, p.failExpecting(TokenColon)
		}
		np := &NamePattern{Name: id.Name, NameSpan: id.Location()}
		np.setLocation(id.Location())
		f.Value = np
		return finish(p, f), nil
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	if f.Value, err = p.parsePattern(); err != nil {
		return nil, err
	}
	return finish(p, f), nil
}
