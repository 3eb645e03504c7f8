package parser

var modifierNames = map[string]func(*Modifiers) *bool{
	"static":   func(m *Modifiers) *bool { return &m.Static },
	"override": func(m *Modifiers) *bool { return &m.Override },
	"final":    func(m *Modifiers) *bool { return &m.Final },
	"native":   func(m *Modifiers) *bool { return &m.Native },
	"dynamic":  func(m *Modifiers) *bool { return &m.Dynamic },
}

// contextualDefinitions are identifiers that start a definition when an
// identifier follows them on the same line.
var contextualDefinitions = map[string]bool{
	"enum":      true,
	"type":      true,
	"namespace": true,
}

func isDefinitionKeyword(kind TokenKind) bool {
	switch kind {
	case TokenVar, TokenConst, TokenFunction, TokenClass, TokenInterface:
		return true
	}
	return false
}

// atContextualDefinition reports whether the current token is enum, type or
// namespace used as a definition keyword.
func (p *Parser) atContextualDefinition() bool {
	t := p.tok()
	if t.Kind != TokenIdent || !contextualDefinitions[t.Value] {
		return false
	}
	return p.peekOnSameLine().Kind == TokenIdent
}

// atAttributeList decides the central ambiguity of the grammar: an
// identifier or reserved namespace followed on the same line by another
// identifier or a definition keyword starts an attribute list.
func (p *Parser) atAttributeList(ctx parseContext) bool {
	t := p.tok()
	if t.Kind != TokenIdent && !t.Kind.IsReservedNamespace() {
		return false
	}
	if ctx.inFunction && (t.Is("yield") || t.Is("await")) {
		return false
	}
	next := p.peekOnSameLine()
	return next.Kind == TokenIdent || next.Kind.IsReservedNamespace() || isDefinitionKeyword(next.Kind)
}

// atDefinition reports whether a definition, possibly preceded by
// attributes, starts at the current token.
func (p *Parser) atDefinition(ctx parseContext) bool {
	return isDefinitionKeyword(p.tok().Kind) || p.atContextualDefinition() || p.atAttributeList(ctx)
}

func (p *Parser) parseDirective(ctx parseContext) (Directive, error) {
	t := p.tok()
	switch {
	case t.Kind == TokenLBracket:
		return p.parseMetadataOrStatement(ctx)
	case t.Kind == TokenImport:
		return p.parseImport()
	case t.Kind == TokenUse:
		return p.parseUseNamespace()
	case t.Kind == TokenPackage:
		p.syntaxError(ErrUnallowedHere, t.Span(), TokenPackage)
		_, err := p.parsePackage(ctx)
		return nil, err
	case t.Is("include") && p.peekOnSameLine().Kind == TokenString:
		return p.parseInclude(ctx)
	case p.atDefinition(ctx):
		p.mark()
		return p.parseAnnotatedDefinition(ctx, nil)
	}
	return p.parseStatement(ctx)
}

// parseMetadataOrStatement reads bracketed array literals as metadata while
// a definition follows them. Otherwise the first bracket is parsed again as
// an expression statement.
func (p *Parser) parseMetadataOrStatement(ctx parseContext) (Directive, error) {
	st := p.Snapshot()
	p.mark()
	var metadata []*Metadata
	ok := true
	for ok && p.check(TokenLBracket) {
		var lit Expr
		if lit, ok = p.tryArrayLiteral(); ok {
			var m *Metadata
			if m, ok = metadataFrom(lit.(*ArrayLiteral)); ok {
				metadata = append(metadata, m)
			}
		}
	}
	if ok && len(metadata) > 0 && p.atDefinition(ctx) {
		return p.parseAnnotatedDefinition(ctx, metadata)
	}
	p.Restore(st)
	return p.parseStatement(ctx)
}

func (p *Parser) tryArrayLiteral() (Expr, bool) {
	lit, err := p.parseArrayLiteral()
	return lit, err == nil
}

// metadataFrom reinterprets [Name] or [Name(key = value, value)] as
// metadata.
func metadataFrom(lit *ArrayLiteral) (*Metadata, bool) {
	if len(lit.Elements) != 1 {
		return nil, false
	}
	m := &Metadata{}
	m.setLocation(lit.Location())
	var args []Expr
	switch e := lit.Elements[0].(type) {
	case *Identifier:
		if e.Qualifier != nil || e.Brackets != nil || e.Attribute {
			return nil, false
		}
		m.Name = e.Name
	case *Call:
		id, ok := e.Base.(*Identifier)
		if !ok || id.Qualifier != nil || id.Brackets != nil || id.Attribute {
			return nil, false
		}
		m.Name = id.Name
		args = e.Arguments
	default:
		return nil, false
	}
	for _, arg := range args {
		entry := &MetadataEntry{Value: arg, Loc: arg.Location()}
		if a, ok := arg.(*Assignment); ok && a.Op == OpNone {
			key, ok := a.Left.(*Identifier)
			if !ok || key.Qualifier != nil {
				return nil, false
			}
			entry.Key, entry.Value = key.Name, a.Right
		}
		m.Entries = append(m.Entries, entry)
	}
	return m, true
}

// parseAnnotatedDefinition parses attributes and the definition they
// precede. The caller has marked the start of the definition.
func (p *Parser) parseAnnotatedDefinition(ctx parseContext, metadata []*Metadata) (Directive, error) {
	h := DefinitionHeader{Metadata: metadata}
	if err := p.parseAttributes(ctx, &h); err != nil {
		return nil, err
	}
	t := p.tok()
	switch {
	case t.Kind == TokenVar || t.Kind == TokenConst:
		return p.parseVariableDefinition(ctx, h)
	case t.Kind == TokenFunction:
		return p.parseFunctionDefinition(ctx, h)
	case t.Kind == TokenClass:
		return p.parseClassDefinition(ctx, h)
	case t.Kind == TokenInterface:
		return p.parseInterfaceDefinition(ctx, h)
	case t.Is("enum"):
		return p.parseEnumDefinition(ctx, h)
	case t.Is("namespace"):
		return p.parseNamespaceDefinition(ctx, h)
	case t.Is("type"):
		return p.parseTypeDefinition(ctx, h)
	}
	return nil, p.failExpectingTerm("definition")
}

// parseAttributes consumes namespace and modifier attributes up to the
// definition keyword. Each attribute must be on the same line as the one
// before it.
func (p *Parser) parseAttributes(ctx parseContext, h *DefinitionHeader) error {
	first := true
	for {
		t := p.tok()
		if isDefinitionKeyword(t.Kind) || p.atContextualDefinition() {
			return nil
		}
		if !first && p.lineBreakBefore() {
			return p.failExpectingTerm("definition")
		}
		first = false
		switch {
		case t.Kind.IsReservedNamespace():
			ns := &ReservedNamespace{Name: t.Kind.String()}
			ns.setLocation(t.Span())
			p.setAccess(h, ns)
		case t.Kind == TokenIdent && modifierNames[t.Value] != nil:
			flag := modifierNames[t.Value](&h.Modifiers)
			if *flag {
				p.syntaxError(ErrDuplicateAttribute, t.Span(), t.Value)
			}
			*flag = true
		case t.Kind == TokenIdent:
			id := &Identifier{Name: t.Value}
			id.setLocation(t.Span())
			p.setAccess(h, id)
		default:
			return p.failExpectingTerm("definition")
		}
		if err := p.next(); err != nil {
			return err
		}
	}
}

func (p *Parser) setAccess(h *DefinitionHeader, ns Expr) {
	if h.Access != nil {
		p.syntaxError(ErrDuplicateNamespaceAttribute, ns.Location())
		return
	}
	h.Access = ns
}

// modifierRule decides whether a modifier is legal for a definition.
type modifierRule func(name string) bool

// checkModifiers reports every modifier that allowed rejects.
func (p *Parser) checkModifiers(h *DefinitionHeader, allowed modifierRule) {
	for _, name := range h.Modifiers.Names() {
		if !allowed(name) {
			p.syntaxError(ErrUnallowedAttribute, h.NameSpan, name)
		}
	}
}

func (p *Parser) parseVariableDefinition(ctx parseContext, h DefinitionHeader) (Directive, error) {
	vd, err := p.parseVariableBindings(h, true)
	if err != nil {
		return nil, err
	}
	p.checkModifiers(&vd.DefinitionHeader, func(name string) bool {
		return name == "static" && ctx.allowsStatic()
	})
	if err := p.terminate(); err != nil {
		return nil, err
	}
	return finish(p, vd), nil
}

// parseVariableBindings parses `var` or `const` and its comma separated
// bindings. The caller terminates and finishes the definition.
func (p *Parser) parseVariableBindings(h DefinitionHeader, allowIn bool) (*VariableDefinition, error) {
	vd := &VariableDefinition{Const: p.check(TokenConst)}
	vd.DefinitionHeader = h
	if err := p.next(); err != nil {
		return nil, err
	}
	for {
		p.mark()
		pattern, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		b := &VariableBinding{Pattern: pattern}
		if p.check(TokenAssign) {
			if err := p.next(); err != nil {
				return nil, err
			}
			if b.Init, err = p.parseExpression(allowIn, PrecAssignment, true); err != nil {
				return nil, err
			}
		}
		vd.Bindings = append(vd.Bindings, finish(p, b))
		if !p.check(TokenComma) {
			break
		}
		if err := p.next(); err != nil {
			return nil, err
		}
	}
	if np, ok := vd.Bindings[0].Pattern.(*NamePattern); ok {
		vd.NameSpan = np.NameSpan
	} else {
		vd.NameSpan = vd.Bindings[0].Pattern.Location()
	}
	return vd, nil
}

func (p *Parser) parseFunctionDefinition(ctx parseContext, h DefinitionHeader) (Directive, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	fd := &FunctionDefinition{}
	fd.DefinitionHeader = h
	if t := p.tok(); t.Is("get") || t.Is("set") {
		if next := p.peekOnSameLine(); next.Kind.IsIdentifierName() {
			fd.FunctionKind = FunctionGetter
			if t.Is("set") {
				fd.FunctionKind = FunctionSetter
			}
			if err := p.next(); err != nil {
				return nil, err
			}
		}
	}
	var err error
	if fd.FunctionKind == FunctionNormal {
		fd.Name, fd.NameSpan, err = p.expectIdentifier()
	} else {
		fd.Name, fd.NameSpan, err = p.expectName()
	}
	if err != nil {
		return nil, err
	}
	if fd.FunctionKind == FunctionNormal && ctx.frame == FrameClass && fd.Name == ctx.className {
		fd.FunctionKind = FunctionConstructor
	}
	if fd.Common, err = p.parseFunctionCommon(ctx, fd.FunctionKind == FunctionConstructor); err != nil {
		return nil, err
	}
	p.validateFunction(ctx, fd)
	if _, isBlock := fd.Common.Body.(*Block); !isBlock {
		if err := p.terminate(); err != nil {
			return nil, err
		}
	}
	return finish(p, fd), nil
}

func (p *Parser) validateFunction(ctx parseContext, fd *FunctionDefinition) {
	m := fd.Modifiers
	p.checkModifiers(&fd.DefinitionHeader, func(name string) bool {
		switch name {
		case "static":
			return ctx.allowsStatic() && fd.FunctionKind != FunctionConstructor
		case "override":
			return ctx.allowsStatic() && !m.Static
		case "final":
			return ctx.frame == FrameClass
		case "native":
			return true
		}
		return false
	})
	hasBody := fd.Common.Body != nil
	switch {
	case hasBody && (m.Native || ctx.frame == FrameInterface):
		p.syntaxError(ErrFunctionMustNotSpecifyBody, fd.NameSpan)
	case !hasBody && !m.Native && ctx.frame != FrameInterface:
		p.syntaxError(ErrFunctionOmitsBody, fd.NameSpan)
	}
	params := fd.Common.Params
	switch fd.FunctionKind {
	case FunctionGetter:
		if len(params) != 0 {
			p.syntaxError(ErrGetterParameters, fd.NameSpan)
		}
	case FunctionSetter:
		if len(params) != 1 || params[0].ParamKind == ParameterRest {
			p.syntaxError(ErrSetterParameters, fd.NameSpan)
		}
	}
}

// parseFunctionCommon parses type parameters, the parameter list, the
// result annotation and the body.
func (p *Parser) parseFunctionCommon(ctx parseContext, constructor bool) (*FunctionCommon, error) {
	p.mark()
	fc := &FunctionCommon{}
	var err error
	if fc.TypeParams, err = p.parseTypeParameters(); err != nil {
		return nil, err
	}
	if fc.Params, err = p.parseParameters(); err != nil {
		return nil, err
	}
	if fc.Result, err = p.parseOptionalAnnotation(); err != nil {
		return nil, err
	}
	p.pushFunction()
	body, err := p.parseFunctionBody(ctx.withFunction(constructor))
	if err != nil {
		return nil, err
	}
	flags := p.popFunction()
	fc.Body, fc.Yields, fc.Awaits = body, flags.yields, flags.awaits
	return finish(p, fc), nil
}

func (p *Parser) parseParameters() ([]*Parameter, error) {
	if err := p.open(TokenLParen); err != nil {
		return nil, err
	}
	var params []*Parameter
	for !p.check(TokenRParen) {
		p.mark()
		param := &Parameter{}
		rest, err := p.consume(TokenEllipsis)
		if err != nil {
			return nil, err
		}
		if param.Pattern, err = p.parsePattern(); err != nil {
			return nil, err
		}
		switch {
		case rest:
			param.ParamKind = ParameterRest
		case p.check(TokenAssign):
			if err := p.next(); err != nil {
				return nil, err
			}
			if param.Default, err = p.parseAssignmentExpression(); err != nil {
				return nil, err
			}
			param.ParamKind = ParameterOptional
		}
		params = append(params, finish(p, param))
		if p.check(TokenRParen) {
			break
		}
		if rest {
			p.syntaxError(ErrRestParameterNotLast, param.Location())
		}
		if err := p.expect(TokenComma); err != nil {
			return nil, err
		}
	}
	return params, p.close()
}

// parseFunctionBody returns a *Block, an Expr, or nil when the body is
// omitted: the next token ends the definition, or starts a line that is
// not indented deeper than the header.
func (p *Parser) parseFunctionBody(ctx parseContext) (Node, error) {
	switch p.tok().Kind {
	case TokenLBrace:
		return p.parseBlock(ctx)
	case TokenSemicolon, TokenRBrace, TokenEOF:
		return nil, nil
	}
	if p.lineBreakBefore() && !p.moreIndented(p.lexer.prev.LastLine) {
		return nil, nil
	}
	return p.parseAssignmentExpression()
}

func (p *Parser) parseClassDefinition(ctx parseContext, h DefinitionHeader) (Directive, error) {
	keyword := p.tok()
	if err := p.next(); err != nil {
		return nil, err
	}
	cd := &ClassDefinition{}
	cd.DefinitionHeader = h
	var err error
	if cd.Name, cd.NameSpan, err = p.expectIdentifier(); err != nil {
		return nil, err
	}
	if !ctx.atTopLevel() {
		p.syntaxError(ErrUnallowedHere, keyword.Span(), keyword.Kind)
	}
	p.checkModifiers(&cd.DefinitionHeader, func(name string) bool {
		return name == "final" || name == "dynamic"
	})
	if cd.TypeParams, err = p.parseTypeParameters(); err != nil {
		return nil, err
	}
	if p.check(TokenExtends) {
		if err := p.next(); err != nil {
			return nil, err
		}
		if cd.Extends, err = p.parseTypeName(); err != nil {
			return nil, err
		}
	}
	if p.check(TokenImplements) {
		if err := p.next(); err != nil {
			return nil, err
		}
		if cd.Implements, err = p.parseTypeNameList(); err != nil {
			return nil, err
		}
	}
	if cd.Block, err = p.parseBlock(ctx.withFrame(FrameClass, cd.Name)); err != nil {
		return nil, err
	}
	return finish(p, cd), nil
}

func (p *Parser) parseTypeNameList() ([]Expr, error) {
	var list []Expr
	for {
		name, err := p.parseTypeName()
		if err != nil {
			return nil, err
		}
		list = append(list, name)
		if !p.check(TokenComma) {
			return list, nil
		}
		if err := p.next(); err != nil {
			return nil, err
		}
	}
}

func (p *Parser) parseInterfaceDefinition(ctx parseContext, h DefinitionHeader) (Directive, error) {
	keyword := p.tok()
	if err := p.next(); err != nil {
		return nil, err
	}
	id := &InterfaceDefinition{}
	id.DefinitionHeader = h
	var err error
	if id.Name, id.NameSpan, err = p.expectIdentifier(); err != nil {
		return nil, err
	}
	if !ctx.atTopLevel() {
		p.syntaxError(ErrUnallowedHere, keyword.Span(), keyword.Kind)
	}
	p.checkModifiers(&id.DefinitionHeader, func(string) bool { return false })
	if id.TypeParams, err = p.parseTypeParameters(); err != nil {
		return nil, err
	}
	if p.check(TokenExtends) {
		if err := p.next(); err != nil {
			return nil, err
		}
		if id.Extends, err = p.parseTypeNameList(); err != nil {
			return nil, err
		}
	}
	if id.Block, err = p.parseBlock(ctx.withFrame(FrameInterface, id.Name)); err != nil {
		return nil, err
	}
	return finish(p, id), nil
}

// parseEnumDefinition parses `enum Name [: T] { ... }`.
func (p *Parser) parseEnumDefinition(ctx parseContext, h DefinitionHeader) (Directive, error) {
	keyword := p.tok()
	if err := p.next(); err != nil {
		return nil, err
	}
	ed := &EnumDefinition{}
	ed.DefinitionHeader = h
	var err error
	if ed.Name, ed.NameSpan, err = p.expectIdentifier(); err != nil {
		return nil, err
	}
	if !ctx.atTopLevel() {
		p.syntaxError(ErrUnallowedHere, keyword.Span(), "enum")
	}
	p.checkModifiers(&ed.DefinitionHeader, func(string) bool { return false })
	if ed.Type, err = p.parseOptionalAnnotation(); err != nil {
		return nil, err
	}
	if ed.Block, err = p.parseBlock(ctx.withFrame(FrameEnum, ed.Name)); err != nil {
		return nil, err
	}
	return finish(p, ed), nil
}

// parseNamespaceDefinition parses `namespace N [= value]`.
func (p *Parser) parseNamespaceDefinition(ctx parseContext, h DefinitionHeader) (Directive, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	nd := &NamespaceDefinition{}
	nd.DefinitionHeader = h
	var err error
	if nd.Name, nd.NameSpan, err = p.expectIdentifier(); err != nil {
		return nil, err
	}
	p.checkModifiers(&nd.DefinitionHeader, func(name string) bool {
		return name == "static" && ctx.allowsStatic()
	})
	if p.check(TokenAssign) {
		if err := p.next(); err != nil {
			return nil, err
		}
		if nd.Value, err = p.parseAssignmentExpression(); err != nil {
			return nil, err
		}
	}
	if err := p.terminate(); err != nil {
		return nil, err
	}
	return finish(p, nd), nil
}

// parseTypeDefinition parses `type Name[.<T>] = T`.
func (p *Parser) parseTypeDefinition(ctx parseContext, h DefinitionHeader) (Directive, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	td := &TypeDefinition{}
	td.DefinitionHeader = h
	var err error
	if td.Name, td.NameSpan, err = p.expectIdentifier(); err != nil {
		return nil, err
	}
	p.checkModifiers(&td.DefinitionHeader, func(string) bool { return false })
	if td.TypeParams, err = p.parseTypeParameters(); err != nil {
		return nil, err
	}
	if err := p.expect(TokenAssign); err != nil {
		return nil, err
	}
	if td.Type, err = p.parseTypeExpression(); err != nil {
		return nil, err
	}
	if err := p.terminate(); err != nil {
		return nil, err
	}
	return finish(p, td), nil
}

// parseImport parses `import a.b.C`, `import a.b.*` and `import x = a.b.C`.
func (p *Parser) parseImport() (Directive, error) {
	p.mark()
	if err := p.next(); err != nil {
		return nil, err
	}
	d := &ImportDirective{}
	first, _, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if p.check(TokenAssign) {
		if err := p.next(); err != nil {
			return nil, err
		}
		d.Alias = first
		if first, _, err = p.expectIdentifier(); err != nil {
			return nil, err
		}
	}
	d.Path = []string{first}
	for p.check(TokenDot) {
		if err := p.next(); err != nil {
			return nil, err
		}
		if p.check(TokenStar) {
			d.Wildcard = true
			if err := p.next(); err != nil {
				return nil, err
			}
			break
		}
		name, _, err := p.expectName()
		if err != nil {
			return nil, err
		}
		d.Path = append(d.Path, name)
	}
	if err := p.terminate(); err != nil {
		return nil, err
	}
	return finish(p, d), nil
}

func (p *Parser) parseUseNamespace() (Directive, error) {
	p.mark()
	if err := p.next(); err != nil {
		return nil, err
	}
	if !p.checkName("namespace") {
		return nil, p.failExpectingTerm("namespace")
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	ns, err := p.parseExpression(true, PrecAssignment, false)
	if err != nil {
		return nil, err
	}
	if err := p.terminate(); err != nil {
		return nil, err
	}
	return finish(p, &UseNamespaceDirective{Namespace: ns}), nil
}

// parsePackage parses `package a.b { ... }`; the name may be empty.
func (p *Parser) parsePackage(ctx parseContext) (*PackageDefinition, error) {
	p.mark()
	if err := p.next(); err != nil {
		return nil, err
	}
	pkg := &PackageDefinition{}
	if !p.check(TokenLBrace) {
		name, _, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		pkg.Name = []string{name}
		for p.check(TokenDot) {
			if err := p.next(); err != nil {
				return nil, err
			}
			name, _, err := p.expectName()
			if err != nil {
				return nil, err
			}
			pkg.Name = append(pkg.Name, name)
		}
	}
	block, err := p.parseBlock(ctx.withFrame(FramePackage, ""))
	if err != nil {
		return nil, err
	}
	pkg.Block = block
	return finish(p, pkg), nil
}

// parseLeadingDirectives parses the package definitions and include
// directives at the top of a unit. Packages found later are reported.
func (p *Parser) parseLeadingDirectives(ctx parseContext) ([]*PackageDefinition, []Directive) {
	var packages []*PackageDefinition
	var includes []Directive
	for {
		start, depths := p.tok().Start, p.depths()
		switch {
		case p.check(TokenPackage):
			pkg, err := p.parsePackage(ctx)
			if err != nil {
				p.recoverFrom(err, start, depths, TokenEOF)
				continue
			}
			packages = append(packages, pkg)
		case p.checkName("include") && p.peekOnSameLine().Kind == TokenString:
			d, err := p.parseInclude(ctx)
			if err != nil {
				p.recoverFrom(err, start, depths, TokenEOF)
				continue
			}
			includes = append(includes, d)
		default:
			return packages, includes
		}
	}
}
