package parser

// parseDirectives parses directives up to terminator, which is left
// unconsumed.
func (p *Parser) parseDirectives(ctx parseContext, terminator TokenKind) []Directive {
	return p.parseDirectiveList(ctx, terminator, nil)
}

// parseDirectiveList is the recovery boundary for blocks and the program.
// A construct that aborts is dropped: the parser stacks are unwound, the
// lexer returns to normal mode and at least one token is skipped before the
// next directive. stop, when set, ends the list early (switch cases).
func (p *Parser) parseDirectiveList(ctx parseContext, terminator TokenKind, stop func() bool) []Directive {
	var list []Directive
	for !p.check(terminator) && !p.check(TokenEOF) {
		if stop != nil && stop() {
			break
		}
		start, depths := p.tok().Start, p.depths()
		d, err := p.parseDirective(ctx)
		if err != nil {
			p.recoverFrom(err, start, depths, terminator)
			continue
		}
		if d != nil {
			list = append(list, d)
		}
	}
	return list
}

func (p *Parser) recoverFrom(err error, start int, depths stackDepths, terminator TokenKind) {
	if !isAbort(err) {
		p.log.Errorf("%s: unexpected parser error: %s", p.source.URL, err)
	}
	p.unwind(depths)
	p.recover(start, terminator)
	p.log.Debugf("%s: resuming at %s", p.source.URL, p.source.Position(p.tok().Start))
}

// terminate applies automatic semicolon insertion after a statement. A
// missing terminator is reported but parsing goes on.
func (p *Parser) terminate() error {
	ok, err := p.parseSemicolon()
	if err != nil {
		return err
	}
	if !ok {
		t := p.tok()
		p.syntaxError(ErrExpectingBefore, t.Span(), TokenSemicolon, t.Kind)
	}
	return nil
}

// peekToken scans the token after the current one and rolls back.
func (p *Parser) peekToken() Token {
	st := p.Snapshot()
	defer p.Restore(st)
	if err := p.next(); err != nil {
		return Token{Kind: TokenInvalid}
	}
	return p.tok()
}

// peekOnSameLine reports the kind of the next token, or TokenInvalid when it
// starts on a later line.
func (p *Parser) peekOnSameLine() Token {
	cur := p.tok()
	next := p.peekToken()
	if next.FirstLine > cur.LastLine {
		return Token{Kind: TokenInvalid}
	}
	return next
}

func (p *Parser) parseBlock(ctx parseContext) (*Block, error) {
	p.mark()
	if err := p.open(TokenLBrace); err != nil {
		return nil, err
	}
	directives := p.parseDirectives(ctx, TokenRBrace)
	if err := p.close(); err != nil {
		return nil, err
	}
	return finish(p, &Block{Directives: directives}), nil
}

// parseSubstatement parses the body of an if, with, label and the like.
func (p *Parser) parseSubstatement(ctx parseContext) (Statement, error) {
	return p.parseStatement(ctx.withBlock())
}

func (p *Parser) parseStatement(ctx parseContext) (Statement, error) {
	t := p.tok()
	switch t.Kind {
	case TokenDo:
		return p.parseDo(ctx)
	case TokenWhile:
		return p.parseWhile(ctx)
	case TokenFor:
		return p.parseFor(ctx)
	case TokenIdent:
		if next := p.peekToken(); next.Kind == TokenColon {
			return p.parseLabeled(ctx)
		}
	}
	ctx = ctx.withoutPending()
	switch t.Kind {
	case TokenLBrace:
		return p.parseBlock(ctx.withBlock())
	case TokenSemicolon:
		p.mark()
		if err := p.next(); err != nil {
			return nil, err
		}
		return finish(p, &EmptyStatement{}), nil
	case TokenIf:
		return p.parseIf(ctx)
	case TokenSwitch:
		return p.parseSwitch(ctx)
	case TokenBreak:
		return p.parseBreak(ctx)
	case TokenContinue:
		return p.parseContinue(ctx)
	case TokenReturn:
		return p.parseReturn(ctx)
	case TokenThrow:
		return p.parseThrow()
	case TokenTry:
		return p.parseTry(ctx)
	case TokenWith:
		return p.parseWith(ctx)
	case TokenDefault:
		if next := p.peekOnSameLine(); next.Is("xml") {
			return p.parseDefaultXMLNamespace()
		}
	case TokenSuper:
		if ctx.frame == FrameConstructorBlock {
			if s := p.trySuperStatement(); s != nil {
				return s, nil
			}
		}
	}
	return p.parseExpressionStatement()
}

func (p *Parser) parseExpressionStatement() (Statement, error) {
	p.mark()
	expr, err := p.parseListExpression()
	if err != nil {
		return nil, err
	}
	if err := p.terminate(); err != nil {
		return nil, err
	}
	return finish(p, &ExpressionStatement{Expr: expr}), nil
}

// trySuperStatement parses super(args) as the constructor call unless the
// call is used as the base of a longer expression such as super(x).f().
func (p *Parser) trySuperStatement() *SuperStatement {
	st := p.Snapshot()
	p.mark()
	if err := p.next(); err != nil || !p.check(TokenLParen) {
		p.Restore(st)
		return nil
	}
	args, err := p.parseArguments()
	if err != nil {
		p.Restore(st)
		return nil
	}
	if ok, err := p.parseSemicolon(); err != nil || !ok {
		p.Restore(st)
		return nil
	}
	return finish(p, &SuperStatement{Arguments: args})
}

func (p *Parser) parseLabeled(ctx parseContext) (Statement, error) {
	p.mark()
	name, span, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenColon); err != nil {
		return nil, err
	}
	if _, dup := ctx.label(name); dup {
		p.syntaxError(ErrDuplicateLabel, span, name)
	}
	stmt := &LabeledStatement{Label: name, LabelSpan: span}
	body, err := p.parseStatement(ctx.withLabel(name))
	if err != nil {
		return nil, err
	}
	stmt.Body = body
	return finish(p, stmt), nil
}

// parseCondition parses a parenthesized expression.
func (p *Parser) parseCondition() (Expr, error) {
	if err := p.open(TokenLParen); err != nil {
		return nil, err
	}
	test, err := p.parseListExpression()
	if err != nil {
		return nil, err
	}
	return test, p.close()
}

func (p *Parser) parseIf(ctx parseContext) (Statement, error) {
	p.mark()
	if err := p.next(); err != nil {
		return nil, err
	}
	stmt := &IfStatement{}
	var err error
	if stmt.Test, err = p.parseCondition(); err != nil {
		return nil, err
	}
	if stmt.Consequent, err = p.parseSubstatement(ctx); err != nil {
		return nil, err
	}
	if p.check(TokenElse) {
		if err := p.next(); err != nil {
			return nil, err
		}
		if stmt.Alternative, err = p.parseSubstatement(ctx); err != nil {
			return nil, err
		}
	}
	return finish(p, stmt), nil
}

func (p *Parser) parseSwitch(ctx parseContext) (Statement, error) {
	p.mark()
	if err := p.next(); err != nil {
		return nil, err
	}
	if p.checkName("type") && p.peekToken().Kind == TokenLParen {
		return p.parseSwitchType(ctx)
	}
	stmt := &SwitchStatement{}
	var err error
	if stmt.Discriminant, err = p.parseCondition(); err != nil {
		return nil, err
	}
	inner := ctx.withSwitch(stmt)
	if err := p.open(TokenLBrace); err != nil {
		return nil, err
	}
	for !p.check(TokenRBrace) {
		c, err := p.parseCase(inner)
		if err != nil {
			return nil, err
		}
		stmt.Cases = append(stmt.Cases, c)
	}
	if err := p.close(); err != nil {
		return nil, err
	}
	return finish(p, stmt), nil
}

func (p *Parser) parseCase(ctx parseContext) (*Case, error) {
	p.mark()
	c := &Case{}
	switch p.tok().Kind {
	case TokenCase:
		if err := p.next(); err != nil {
			return nil, err
		}
		test, err := p.parseListExpression()
		if err != nil {
			return nil, err
		}
		c.Test = test
	case TokenDefault:
		if err := p.next(); err != nil {
			return nil, err
		}
	default:
		return nil, p.failExpecting(TokenCase)
	}
	if err := p.expect(TokenColon); err != nil {
		return nil, err
	}
	c.Directives = p.parseDirectiveList(ctx.withBlock(), TokenRBrace, p.atCaseLabel)
	return finish(p, c), nil
}

// atCaseLabel reports whether the current token starts the next case of a
// switch. `default xml namespace` is a statement, not a label.
func (p *Parser) atCaseLabel() bool {
	switch p.tok().Kind {
	case TokenCase:
		return true
	case TokenDefault:
		return p.peekToken().Kind == TokenColon
	}
	return false
}

// parseSwitchType is entered after `switch` with `type` current.
func (p *Parser) parseSwitchType(ctx parseContext) (Statement, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	stmt := &SwitchTypeStatement{}
	var err error
	if stmt.Discriminant, err = p.parseCondition(); err != nil {
		return nil, err
	}
	inner := ctx.withSwitch(stmt)
	if err := p.open(TokenLBrace); err != nil {
		return nil, err
	}
	for !p.check(TokenRBrace) {
		c, err := p.parseTypeCase(inner)
		if err != nil {
			return nil, err
		}
		stmt.Cases = append(stmt.Cases, c)
	}
	if err := p.close(); err != nil {
		return nil, err
	}
	return finish(p, stmt), nil
}

func (p *Parser) parseTypeCase(ctx parseContext) (*TypeCase, error) {
	p.mark()
	c := &TypeCase{}
	switch p.tok().Kind {
	case TokenCase:
		if err := p.next(); err != nil {
			return nil, err
		}
		if err := p.open(TokenLParen); err != nil {
			return nil, err
		}
		binding, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		c.Binding = binding
		if err := p.close(); err != nil {
			return nil, err
		}
	case TokenDefault:
		if err := p.next(); err != nil {
			return nil, err
		}
	default:
		return nil, p.failExpecting(TokenCase)
	}
	block, err := p.parseBlock(ctx.withBlock())
	if err != nil {
		return nil, err
	}
	c.Block = block
	return finish(p, c), nil
}

func (p *Parser) parseDo(ctx parseContext) (Statement, error) {
	p.mark()
	if err := p.next(); err != nil {
		return nil, err
	}
	stmt := &DoStatement{}
	var err error
	if stmt.Body, err = p.parseStatement(ctx.withLoop(stmt)); err != nil {
		return nil, err
	}
	if err := p.expect(TokenWhile); err != nil {
		return nil, err
	}
	if stmt.Test, err = p.parseCondition(); err != nil {
		return nil, err
	}
	if _, err := p.consume(TokenSemicolon); err != nil {
		return nil, err
	}
	return finish(p, stmt), nil
}

func (p *Parser) parseWhile(ctx parseContext) (Statement, error) {
	p.mark()
	if err := p.next(); err != nil {
		return nil, err
	}
	stmt := &WhileStatement{}
	var err error
	if stmt.Test, err = p.parseCondition(); err != nil {
		return nil, err
	}
	if stmt.Body, err = p.parseStatement(ctx.withLoop(stmt)); err != nil {
		return nil, err
	}
	return finish(p, stmt), nil
}

// parseFor covers for (;;), for (x in o) and for each (x in o). The head is
// parsed without the `in` operator so that `in` can be recognized.
func (p *Parser) parseFor(ctx parseContext) (Statement, error) {
	p.mark()
	if err := p.next(); err != nil {
		return nil, err
	}
	each := p.checkName("each")
	if each {
		if err := p.next(); err != nil {
			return nil, err
		}
	}
	if err := p.open(TokenLParen); err != nil {
		return nil, err
	}
	var init Node
	switch {
	case p.check(TokenVar) || p.check(TokenConst):
		p.mark()
		vd, err := p.parseVariableBindings(DefinitionHeader{}, false)
		if err != nil {
			return nil, err
		}
		init = finish(p, vd)
	case !p.check(TokenSemicolon):
		e, err := p.parseExpression(false, PrecList, true)
		if err != nil {
			return nil, err
		}
		init = e
	}
	if init != nil && p.check(TokenIn) {
		return p.parseForIn(ctx, each, init)
	}
	if each {
		return nil, p.failExpecting(TokenIn)
	}
	stmt := &ForStatement{Init: init}
	if err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}
	if !p.check(TokenSemicolon) {
		test, err := p.parseListExpression()
		if err != nil {
			return nil, err
		}
		stmt.Test = test
	}
	if err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}
	if !p.check(TokenRParen) {
		update, err := p.parseListExpression()
		if err != nil {
			return nil, err
		}
		stmt.Update = update
	}
	if err := p.close(); err != nil {
		return nil, err
	}
	body, err := p.parseStatement(ctx.withLoop(stmt))
	if err != nil {
		return nil, err
	}
	stmt.Body = body
	return finish(p, stmt), nil
}

func (p *Parser) parseForIn(ctx parseContext, each bool, left Node) (Statement, error) {
	if vd, ok := left.(*VariableDefinition); ok {
		if len(vd.Bindings) != 1 || vd.Bindings[0].Init != nil {
			p.syntaxError(ErrUnallowedHere, vd.Location(), "initializer")
		}
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	stmt := &ForInStatement{Each: each, Left: left}
	var err error
	if stmt.Right, err = p.parseListExpression(); err != nil {
		return nil, err
	}
	if err := p.close(); err != nil {
		return nil, err
	}
	if stmt.Body, err = p.parseStatement(ctx.withLoop(stmt)); err != nil {
		return nil, err
	}
	return finish(p, stmt), nil
}

// parseJumpLabel consumes the optional label of break and continue; it must
// be on the same line as the keyword.
func (p *Parser) parseJumpLabel() (string, Span, error) {
	if !p.check(TokenIdent) || p.lineBreakBefore() {
		return "", Span{}, nil
	}
	return p.expectIdentifier()
}

func (p *Parser) parseBreak(ctx parseContext) (Statement, error) {
	p.mark()
	keyword := p.tok().Span()
	if err := p.next(); err != nil {
		return nil, err
	}
	label, span, err := p.parseJumpLabel()
	if err != nil {
		return nil, err
	}
	stmt := &BreakStatement{Label: label}
	switch {
	case label != "":
		// Labels only name iteration statements.
		target, ok := ctx.label(label)
		switch {
		case !ok:
			p.syntaxError(ErrUndefinedLabel, span, label)
		case target.loop == nil:
			p.syntaxError(ErrIllegalBreak, span)
		default:
			stmt.Target = target.loop
		}
	case ctx.breakTarget != nil:
		stmt.Target = ctx.breakTarget
	default:
		p.syntaxError(ErrIllegalBreak, keyword)
	}
	if err := p.terminate(); err != nil {
		return nil, err
	}
	return finish(p, stmt), nil
}

func (p *Parser) parseContinue(ctx parseContext) (Statement, error) {
	p.mark()
	keyword := p.tok().Span()
	if err := p.next(); err != nil {
		return nil, err
	}
	label, span, err := p.parseJumpLabel()
	if err != nil {
		return nil, err
	}
	stmt := &ContinueStatement{Label: label}
	switch {
	case label != "":
		target, ok := ctx.label(label)
		switch {
		case !ok:
			p.syntaxError(ErrUndefinedLabel, span, label)
		case target.loop == nil:
			p.syntaxError(ErrIllegalContinue, span)
		default:
			stmt.Target = target.loop
		}
	case ctx.continueTarget != nil:
		stmt.Target = ctx.continueTarget
	default:
		p.syntaxError(ErrIllegalContinue, keyword)
	}
	if err := p.terminate(); err != nil {
		return nil, err
	}
	return finish(p, stmt), nil
}

func (p *Parser) parseReturn(ctx parseContext) (Statement, error) {
	p.mark()
	if !ctx.inFunction {
		p.syntaxError(ErrUnallowedHere, p.tok().Span(), TokenReturn)
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	stmt := &ReturnStatement{}
	if !p.atStatementEnd() {
		value, err := p.parseListExpression()
		if err != nil {
			return nil, err
		}
		stmt.Value = value
	}
	if err := p.terminate(); err != nil {
		return nil, err
	}
	return finish(p, stmt), nil
}

// atStatementEnd reports whether automatic semicolon insertion would end
// the statement before the current token.
func (p *Parser) atStatementEnd() bool {
	switch p.tok().Kind {
	case TokenSemicolon, TokenRBrace, TokenEOF:
		return true
	}
	return p.lineBreakBefore()
}

func (p *Parser) parseThrow() (Statement, error) {
	p.mark()
	if err := p.next(); err != nil {
		return nil, err
	}
	value, err := p.parseListExpression()
	if err != nil {
		return nil, err
	}
	if err := p.terminate(); err != nil {
		return nil, err
	}
	return finish(p, &ThrowStatement{Value: value}), nil
}

func (p *Parser) parseTry(ctx parseContext) (Statement, error) {
	p.mark()
	if err := p.next(); err != nil {
		return nil, err
	}
	stmt := &TryStatement{}
	var err error
	if stmt.Block, err = p.parseBlock(ctx.withBlock()); err != nil {
		return nil, err
	}
	for p.check(TokenCatch) {
		p.mark()
		if err := p.next(); err != nil {
			return nil, err
		}
		if err := p.open(TokenLParen); err != nil {
			return nil, err
		}
		param, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		if err := p.close(); err != nil {
			return nil, err
		}
		block, err := p.parseBlock(ctx.withBlock())
		if err != nil {
			return nil, err
		}
		stmt.Catches = append(stmt.Catches, finish(p, &CatchClause{Param: param, Block: block}))
	}
	if p.check(TokenFinally) {
		if err := p.next(); err != nil {
			return nil, err
		}
		if stmt.Finally, err = p.parseBlock(ctx.withBlock()); err != nil {
			return nil, err
		}
	}
	if len(stmt.Catches) == 0 && stmt.Finally == nil {
		t := p.tok()
		p.syntaxError(ErrExpectingBefore, t.Span(), TokenCatch, t.Kind)
	}
	return finish(p, stmt), nil
}

func (p *Parser) parseWith(ctx parseContext) (Statement, error) {
	p.mark()
	if err := p.next(); err != nil {
		return nil, err
	}
	stmt := &WithStatement{}
	var err error
	if stmt.Object, err = p.parseCondition(); err != nil {
		return nil, err
	}
	if stmt.Body, err = p.parseSubstatement(ctx); err != nil {
		return nil, err
	}
	return finish(p, stmt), nil
}

// parseDefaultXMLNamespace parses `default xml namespace = expr`.
func (p *Parser) parseDefaultXMLNamespace() (Statement, error) {
	p.mark()
	if err := p.next(); err != nil {
		return nil, err
	}
	for _, word := range []string{"xml", "namespace"} {
		if !p.checkName(word) {
			return nil, p.failExpectingTerm(word)
		}
		if err := p.next(); err != nil {
			return nil, err
		}
	}
	if err := p.expect(TokenAssign); err != nil {
		return nil, err
	}
	ns, err := p.parseExpression(true, PrecAssignment, false)
	if err != nil {
		return nil, err
	}
	if err := p.terminate(); err != nil {
		return nil, err
	}
	return finish(p, &DefaultXMLNamespaceStatement{Namespace: ns}), nil
}
