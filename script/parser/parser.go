package parser

import (
	"errors"
	"io"
	"io/fs"

	"github.com/tliron/commonlog"
)

const DefaultMaxIncludeDepth = 32

type options struct {
	url             string
	fsys            fs.FS
	log             commonlog.Logger
	validateRegExp  bool
	maxIncludeDepth int
}

type Option func(*options)

// WithURL sets the origin used for diagnostics and for resolving relative
// include paths.
func WithURL(url string) Option {
	return func(o *options) {
		o.url = url
	}
}

// WithFS resolves include directives inside fsys instead of the host file
// system. URLs are then slash-separated paths relative to the root of fsys.
func WithFS(fsys fs.FS) Option {
	return func(o *options) {
		o.fsys = fsys
	}
}

func WithLogger(log commonlog.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// WithRegExpValidation compiles every regular expression literal and
// reports the ones the ECMAScript engine rejects as warnings.
func WithRegExpValidation(enabled bool) Option {
	return func(o *options) {
		o.validateRegExp = enabled
	}
}

func WithMaxIncludeDepth(depth int) Option {
	return func(o *options) {
		o.maxIncludeDepth = depth
	}
}

func buildOptions(opts []Option) options {
	o := options{maxIncludeDepth: DefaultMaxIncludeDepth}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = commonlog.GetLogger("wasc.parser")
	}
	return o
}

type functionFlags struct {
	yields bool
	awaits bool
}

// Parser owns one Lexer and the Source it reads. A Parser is not safe for
// concurrent use; parse independent units with independent parsers.
type Parser struct {
	lexer   *Lexer
	source  *Source
	options options
	log     commonlog.Logger

	locations     []Span
	delimiters    []TokenKind
	functionFlags []functionFlags

	// untypedIs disables `is name: T` bindings while the consequent of a
	// conditional is parsed again.
	untypedIs bool
}

// NewParser creates a parser over src. The option set by WithURL is
// ignored; src already carries its URL.
func NewParser(src *Source, opts ...Option) *Parser {
	return newParser(src, buildOptions(opts))
}

func newParser(src *Source, o options) *Parser {
	l := NewLexer(src)
	l.validateRegExp = o.validateRegExp
	return &Parser{
		lexer:   l,
		source:  src,
		options: o,
		log:     o.log,
	}
}

func (p *Parser) Source() *Source {
	return p.source
}

// Parse parses text as a program. Callers must check src.Invalidated()
// before trusting the tree.
func Parse(text string, opts ...Option) (*Program, *Source) {
	o := buildOptions(opts)
	src := NewSource(text, o.url)
	return newParser(src, o).ParseProgram(), src
}

// ParseReader reads r fully and parses it as a program. The error is only
// about reading; syntax problems are diagnostics on the returned Source.
func ParseReader(r io.Reader, opts ...Option) (*Program, *Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}
	program, src := Parse(string(data), opts...)
	return program, src, nil
}

// ParseExpression parses text as a single expression.
func ParseExpression(text string, opts ...Option) (Expr, *Source) {
	o := buildOptions(opts)
	src := NewSource(text, o.url)
	p := newParser(src, o)
	return p.ParseExpression(), src
}

// ParseProgram parses the whole source unit. It never fails; problems are
// recorded as diagnostics on the source.
func (p *Parser) ParseProgram() *Program {
	p.start()
	p.mark()
	ctx := newProgramContext()
	program := &Program{}
	program.Packages, program.Directives = p.parseLeadingDirectives(ctx)
	program.Directives = append(program.Directives, p.parseDirectives(ctx, TokenEOF)...)
	return finish(p, program)
}

// ParseExpression returns nil when the input is not an expression; the
// reason is recorded on the source.
func (p *Parser) ParseExpression() Expr {
	p.start()
	expr, err := p.parseExpression(true, PrecList, true)
	if err != nil {
		return nil
	}
	if !p.check(TokenEOF) {
		p.failUnexpected()
		return nil
	}
	return expr
}

// start scans the first token. A lexical error there is already recorded;
// scanning moves on to the first good token.
func (p *Parser) start() {
	if err := p.lexer.Advance(); err != nil {
		p.recover(-1, TokenEOF)
	}
}

func (p *Parser) tok() Token {
	return p.lexer.token
}

func (p *Parser) check(kind TokenKind) bool {
	return p.lexer.token.Kind == kind
}

// checkName reports whether the current token is the contextual keyword
// name.
func (p *Parser) checkName(name string) bool {
	return p.lexer.token.Is(name)
}

func (p *Parser) next() error {
	return p.lexer.Advance()
}

// consume advances past the current token when it has the given kind.
func (p *Parser) consume(kind TokenKind) (bool, error) {
	if !p.check(kind) {
		return false, nil
	}
	return true, p.next()
}

func (p *Parser) expect(kind TokenKind) error {
	if !p.check(kind) {
		return p.failExpecting(kind)
	}
	return p.next()
}

// lineBreakBefore reports whether the current token starts on a later line
// than the previous token ended.
func (p *Parser) lineBreakBefore() bool {
	return p.lexer.token.FirstLine > p.lexer.prev.LastLine
}

// moreIndented reports whether the current token's line is indented deeper
// than line.
func (p *Parser) moreIndented(line int) bool {
	return p.source.Indentation(p.lexer.token.FirstLine) > p.source.Indentation(line)
}

func (p *Parser) report(kind DiagnosticKind, code ErrorCode, loc Span, args ...any) *Diagnostic {
	d := &Diagnostic{Kind: kind, Code: code, Loc: loc, Arguments: describeArgs(args...)}
	p.source.AddDiagnostic(d)
	return d
}

func (p *Parser) syntaxError(code ErrorCode, loc Span, args ...any) {
	p.report(DiagSyntaxError, code, loc, args...)
}

func (p *Parser) warn(code ErrorCode, loc Span, args ...any) {
	p.report(DiagWarning, code, loc, args...)
}

// fail records a syntax error and returns the signal that unwinds to the
// nearest recovery boundary.
func (p *Parser) fail(code ErrorCode, loc Span, args ...any) error {
	return &AbortError{Diagnostic: p.report(DiagSyntaxError, code, loc, args...)}
}

func (p *Parser) failExpecting(kind TokenKind) error {
	t := p.tok()
	if t.Kind == TokenEOF {
		return p.fail(ErrExpectingBefore, t.Span(), kind, TermArgument("end of program"))
	}
	return p.fail(ErrExpectingBefore, t.Span(), kind, t.Kind)
}

func (p *Parser) failExpectingTerm(term string) error {
	t := p.tok()
	return p.fail(ErrExpectingBefore, t.Span(), TermArgument(term), t.Kind)
}

func (p *Parser) failUnexpected() error {
	t := p.tok()
	if t.Kind == TokenEOF {
		return p.fail(ErrUnexpectedEnd, t.Span())
	}
	return p.fail(ErrUnexpectedToken, t.Span(), t.Kind)
}

func isAbort(err error) bool {
	var abort *AbortError
	return errors.As(err, &abort)
}

// recover moves past at least one token after an abort. The block
// terminator is kept when the failed construct already consumed input, so
// the enclosing block can still close.
func (p *Parser) recover(startedAt int, terminator TokenKind) {
	p.lexer.SetMode(ModeNormal)
	t := p.tok()
	if t.Kind == TokenEOF {
		return
	}
	if t.Kind == terminator && t.Start > startedAt {
		return
	}
	for {
		err := p.next()
		if err == nil {
			return
		}
	}
}

// mark pushes the start of the current token onto the location stack.
func (p *Parser) mark() {
	t := p.lexer.token
	p.locations = append(p.locations, Span{FirstLine: t.FirstLine, Start: t.Start})
}

// markAt pushes the start of an already parsed node, for nodes that extend
// it.
func (p *Parser) markAt(loc Span) {
	p.locations = append(p.locations, Span{FirstLine: loc.FirstLine, Start: loc.Start})
}

// pop closes the innermost mark at the end of the previous token.
func (p *Parser) pop() Span {
	n := len(p.locations) - 1
	loc := p.locations[n]
	p.locations = p.locations[:n]
	prev := p.lexer.prev
	loc.End, loc.LastLine = prev.End, prev.LastLine
	if loc.End < loc.Start {
		loc.End, loc.LastLine = loc.Start, loc.FirstLine
	}
	return loc
}

func finish[T Node](p *Parser, n T) T {
	n.setLocation(p.pop())
	return n
}

var closers = map[TokenKind]TokenKind{
	TokenLParen:   TokenRParen,
	TokenLBracket: TokenRBracket,
	TokenLBrace:   TokenRBrace,
}

// open consumes an opening bracket and remembers the closer it needs.
func (p *Parser) open(kind TokenKind) error {
	if err := p.expect(kind); err != nil {
		return err
	}
	p.delimiters = append(p.delimiters, closers[kind])
	return nil
}

// close consumes the closer of the innermost open bracket.
func (p *Parser) close() error {
	n := len(p.delimiters) - 1
	want := p.delimiters[n]
	if !p.check(want) {
		return p.failExpecting(want)
	}
	p.delimiters = p.delimiters[:n]
	return p.next()
}

// closeInMode is close for a '}' after which scanning continues in mode.
func (p *Parser) closeInMode(mode LexerMode) error {
	n := len(p.delimiters) - 1
	want := p.delimiters[n]
	if !p.check(want) {
		return p.failExpecting(want)
	}
	p.delimiters = p.delimiters[:n]
	p.lexer.SetMode(mode)
	return p.next()
}

func (p *Parser) pushFunction() {
	p.functionFlags = append(p.functionFlags, functionFlags{})
}

func (p *Parser) popFunction() functionFlags {
	n := len(p.functionFlags) - 1
	f := p.functionFlags[n]
	p.functionFlags = p.functionFlags[:n]
	return f
}

func (p *Parser) inFunctionBody() bool {
	return len(p.functionFlags) > 0
}

// parseSemicolon reports whether the construct just parsed is terminated:
// by an explicit ';', a line break, a closing brace or the end of input.
func (p *Parser) parseSemicolon() (bool, error) {
	if p.check(TokenSemicolon) {
		return true, p.next()
	}
	return p.check(TokenRBrace) || p.check(TokenEOF) || p.lineBreakBefore(), nil
}

// expectIdentifier consumes an identifier and returns its name and span.
func (p *Parser) expectIdentifier() (string, Span, error) {
	t := p.tok()
	if t.Kind != TokenIdent {
		return "", Span{}, p.failExpecting(TokenIdent)
	}
	return t.Value, t.Span(), p.next()
}

// expectName accepts any identifier name including reserved words, as used
// after '.' and in object keys.
func (p *Parser) expectName() (string, Span, error) {
	t := p.tok()
	if !t.Kind.IsIdentifierName() {
		return "", Span{}, p.failExpecting(TokenIdent)
	}
	return tokenName(t), t.Span(), p.next()
}

func tokenName(t Token) string {
	if t.Kind == TokenIdent {
		return t.Value
	}
	return t.Kind.String()
}
