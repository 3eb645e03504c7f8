package parser

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/dlclark/regexp2"
)

type LexerMode int

const (
	ModeNormal LexerMode = iota
	ModeXMLTag
	ModeXMLContent
)

func (m LexerMode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeXMLTag:
		return "xml-tag"
	case ModeXMLContent:
		return "xml-content"
	}
	return "unknown"
}

// punctuators holds the operator spellings indexed by length minus one, so
// scanning can try the longest match first.
var punctuators [4]map[string]TokenKind

func init() {
	for i := range punctuators {
		punctuators[i] = make(map[string]TokenKind)
	}
	for kind, name := range tokenKindNames {
		if kind.IsPunctuator() || kind.IsCompoundAssignment() {
			punctuators[len(name)-1][name] = kind
		}
	}
}

// Lexer pulls tokens from a Source on demand. It owns the current and
// previous token slots; both are overwritten on every Advance.
type Lexer struct {
	source *Source
	text   []rune
	index  int
	line   int
	mode   LexerMode
	token  Token
	prev   Token

	validateRegExp bool
}

func NewLexer(source *Source) *Lexer {
	return &Lexer{
		source: source,
		text:   source.Text,
		line:   1,
		token:  Token{Kind: TokenEOF, FirstLine: 1, LastLine: 1},
	}
}

func (l *Lexer) Source() *Source {
	return l.source
}

func (l *Lexer) Current() Token {
	return l.token
}

func (l *Lexer) Previous() Token {
	return l.prev
}

func (l *Lexer) Mode() LexerMode {
	return l.mode
}

// SetMode changes how the next Advance scans. The current token is kept.
func (l *Lexer) SetMode(mode LexerMode) {
	l.mode = mode
}

// Lookahead returns the raw code point k positions past the end of the
// current token without consuming anything.
func (l *Lexer) Lookahead(k int) rune {
	return l.peekN(k)
}

// Advance moves the current token into the previous slot and scans the next
// one. On a lexical error the diagnostic is already recorded, at least one
// code point has been consumed and the current token is TokenInvalid.
func (l *Lexer) Advance() error {
	l.prev = l.token
	return l.scan()
}

func (l *Lexer) scan() error {
	begin, beginLine := l.index, l.line
	var err error
	switch l.mode {
	case ModeXMLTag:
		err = l.scanXMLTag()
	case ModeXMLContent:
		err = l.scanXMLContent()
	default:
		err = l.scanNormal()
	}
	if err != nil {
		l.token = Token{Kind: TokenInvalid, Start: begin, End: l.index, FirstLine: beginLine, LastLine: l.line}
	}
	return err
}

// splitGreater consumes only the leading '>' of the current token, which
// must be one of >>, >>>, >=, >>= or >>>=. Used when closing nested type
// argument lists.
func (l *Lexer) splitGreater() error {
	t := l.token
	l.prev = Token{Kind: TokenGT, Start: t.Start, End: t.Start + 1, FirstLine: t.FirstLine, LastLine: t.FirstLine}
	l.index = t.Start + 1
	return l.scan()
}

func (l *Lexer) at(i int) rune {
	if i < 0 || i >= len(l.text) {
		return eof
	}
	return l.text[i]
}

func (l *Lexer) peek() rune {
	return l.at(l.index)
}

func (l *Lexer) peekN(n int) rune {
	return l.at(l.index + n)
}

func (l *Lexer) skipLineTerminator() {
	if l.peek() == '\r' && l.peekN(1) == '\n' {
		l.index += 2
	} else {
		l.index++
	}
	l.line++
	l.source.addLineStart(l.index)
}

func (l *Lexer) spanFrom(start, line int) Span {
	return Span{FirstLine: line, Start: start, LastLine: l.line, End: l.index}
}

func (l *Lexer) emit(kind TokenKind, start, line int) {
	l.token = Token{Kind: kind, Start: start, End: l.index, FirstLine: line, LastLine: l.line}
}

func (l *Lexer) report(kind DiagnosticKind, code ErrorCode, loc Span, args ...any) *Diagnostic {
	d := &Diagnostic{Kind: kind, Code: code, Loc: loc, Arguments: describeArgs(args...)}
	l.source.AddDiagnostic(d)
	return d
}

func (l *Lexer) fail(code ErrorCode, loc Span, args ...any) error {
	return &AbortError{Diagnostic: l.report(DiagSyntaxError, code, loc, args...)}
}

func (l *Lexer) skipTrivia() error {
	for {
		ch := l.peek()
		switch {
		case IsWhitespace(ch):
			l.index++
		case IsLineTerminator(ch):
			l.skipLineTerminator()
		case ch == '/' && l.peekN(1) == '/':
			l.scanLineComment()
		case ch == '/' && l.peekN(1) == '*':
			if err := l.scanBlockComment(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (l *Lexer) scanLineComment() {
	start, line := l.index, l.line
	l.index += 2
	for ch := l.peek(); ch != eof && !IsLineTerminator(ch); ch = l.peek() {
		l.index++
	}
	l.source.Comments = append(l.source.Comments, &Comment{
		Content: string(l.text[start+2 : l.index]),
		Loc:     l.spanFrom(start, line),
	})
}

// Block comments nest.
func (l *Lexer) scanBlockComment() error {
	start, line := l.index, l.line
	l.index += 2
	depth := 1
	for depth > 0 {
		ch := l.peek()
		switch {
		case ch == eof:
			return l.fail(ErrUnterminatedComment, l.spanFrom(start, line))
		case ch == '/' && l.peekN(1) == '*':
			depth++
			l.index += 2
		case ch == '*' && l.peekN(1) == '/':
			depth--
			l.index += 2
		case IsLineTerminator(ch):
			l.skipLineTerminator()
		default:
			l.index++
		}
	}
	l.source.Comments = append(l.source.Comments, &Comment{
		Multiline: true,
		Content:   string(l.text[start+2 : l.index-2]),
		Loc:       l.spanFrom(start, line),
	})
	return nil
}

func (l *Lexer) scanNormal() error {
	if err := l.skipTrivia(); err != nil {
		return err
	}
	start, line := l.index, l.line
	ch := l.peek()
	switch {
	case ch == eof:
		l.emit(TokenEOF, start, line)
		return nil
	case IsIdentifierStart(ch) || ch == '\\':
		return l.scanIdentifier(start, line)
	case IsDecimalDigit(ch) || (ch == '.' && IsDecimalDigit(l.peekN(1))):
		return l.scanNumber(start, line)
	case ch == '"' || ch == '\'':
		if l.peekN(1) == ch && l.peekN(2) == ch {
			return l.scanTripleString(start, line, ch)
		}
		return l.scanString(start, line, ch)
	}
	return l.scanPunctuator(start, line)
}

// scanIdentifier accepts \uXXXX and \u{X...} escapes anywhere in the name.
// An identifier spelled with an escape is never a keyword.
func (l *Lexer) scanIdentifier(start, line int) error {
	var b strings.Builder
	escaped := false
	first := true
	for {
		ch := l.peek()
		if ch == '\\' {
			escStart := l.index
			if l.peekN(1) != 'u' {
				l.index++
				return l.fail(ErrInvalidEscape, l.spanFrom(escStart, line))
			}
			cp, next, ok := decodeUnicodeEscape(l.text, l.index+2)
			l.index = next
			if !ok || !IsIdentifierPart(cp) || (first && !IsIdentifierStart(cp)) {
				return l.fail(ErrInvalidEscape, l.spanFrom(escStart, line))
			}
			b.WriteRune(cp)
			escaped = true
		} else if (first && IsIdentifierStart(ch)) || (!first && IsIdentifierPart(ch)) {
			b.WriteRune(ch)
			l.index++
		} else {
			break
		}
		first = false
	}
	name := b.String()
	kind := TokenIdent
	if !escaped {
		kind = LookupKeyword(name)
	}
	l.emit(kind, start, line)
	l.token.Value = name
	return nil
}

func (l *Lexer) scanNumber(start, line int) error {
	var value float64
	if l.peek() == '0' && (l.peekN(1) == 'x' || l.peekN(1) == 'X') {
		l.index += 2
		digits := l.index
		for IsHexDigit(l.peek()) {
			l.index++
		}
		if l.index == digits {
			return l.fail(ErrInvalidNumber, l.spanFrom(start, line))
		}
		value, _ = strconv.ParseFloat("0x"+string(l.text[digits:l.index])+"p0", 64)
	} else {
		for IsDecimalDigit(l.peek()) {
			l.index++
		}
		if l.peek() == '.' && IsDecimalDigit(l.peekN(1)) {
			l.index++
			for IsDecimalDigit(l.peek()) {
				l.index++
			}
		}
		if e := l.peek(); e == 'e' || e == 'E' {
			n := 1
			if s := l.peekN(1); s == '+' || s == '-' {
				n = 2
			}
			if IsDecimalDigit(l.peekN(n)) {
				l.index += n
				for IsDecimalDigit(l.peek()) {
					l.index++
				}
			}
		}
		// ParseFloat reports overflow as ErrRange with an infinite value,
		// which is what the literal means.
		value, _ = strconv.ParseFloat(string(l.text[start:l.index]), 64)
	}
	if IsIdentifierStart(l.peek()) || IsDecimalDigit(l.peek()) {
		for IsIdentifierPart(l.peek()) {
			l.index++
		}
		return l.fail(ErrInvalidNumber, l.spanFrom(start, line))
	}
	l.emit(TokenNumber, start, line)
	l.token.Number = value
	return nil
}

func (l *Lexer) scanString(start, line int, quote rune) error {
	l.index++
	var b strings.Builder
	for {
		ch := l.peek()
		switch {
		case ch == quote:
			l.index++
			l.emit(TokenString, start, line)
			l.token.Value = b.String()
			return nil
		case ch == eof || IsLineTerminator(ch):
			return l.fail(ErrUnterminatedString, l.spanFrom(start, line))
		case ch == '\\':
			if IsLineTerminator(l.peekN(1)) {
				l.index++
				l.skipLineTerminator()
				continue
			}
			escStart := l.index
			s, next, ok := decodeEscape(l.text, l.index+1)
			l.index = max(next, l.index+1)
			if !ok {
				return l.fail(ErrInvalidEscape, Span{FirstLine: l.line, Start: escStart, LastLine: l.line, End: l.index})
			}
			b.WriteString(s)
		default:
			b.WriteRune(ch)
			l.index++
		}
	}
}

// scanTripleString scans a """ or ''' string. The body is dedented by the
// indentation of its last line before escapes are decoded.
func (l *Lexer) scanTripleString(start, line int, quote rune) error {
	l.index += 3
	body := l.index
	for {
		ch := l.peek()
		switch {
		case ch == eof:
			return l.fail(ErrUnterminatedString, l.spanFrom(start, line))
		case ch == quote && l.peekN(1) == quote && l.peekN(2) == quote:
			raw := l.text[body:l.index]
			l.index += 3
			value, ok := decodeString(dedent(raw))
			if !ok {
				return l.fail(ErrInvalidEscape, l.spanFrom(start, line))
			}
			l.emit(TokenString, start, line)
			l.token.Value = value
			return nil
		case ch == '\\':
			l.index++
			if next := l.peek(); IsLineTerminator(next) {
				l.skipLineTerminator()
			} else if next != eof {
				l.index++
			}
		case IsLineTerminator(ch):
			l.skipLineTerminator()
		default:
			l.index++
		}
	}
}

func (l *Lexer) scanPunctuator(start, line int) error {
	for n := len(punctuators); n >= 1; n-- {
		if l.index+n > len(l.text) {
			continue
		}
		if kind, ok := punctuators[n-1][string(l.text[l.index:l.index+n])]; ok {
			l.index += n
			l.emit(kind, start, line)
			return nil
		}
	}
	ch := l.peek()
	l.index++
	return l.fail(ErrUnexpectedCharacter, l.spanFrom(start, line), StringArgument(string(ch)))
}

var regExpFlags = map[rune]regexp2.RegexOptions{
	'g': 0,
	'i': regexp2.IgnoreCase,
	'm': regexp2.Multiline,
	's': regexp2.Singleline,
	'x': regexp2.IgnorePatternWhitespace,
}

// ScanRegExp rescans the current '/' or '/=' token as a regular expression
// literal. The parser calls it where a division sign cannot appear.
func (l *Lexer) ScanRegExp() error {
	start, line := l.token.Start, l.token.FirstLine
	l.index = start + 1
	body := l.index
	inClass := false
scan:
	for {
		ch := l.peek()
		switch {
		case ch == eof || IsLineTerminator(ch):
			err := l.fail(ErrUnterminatedRegExp, l.spanFrom(start, line))
			l.token = Token{Kind: TokenInvalid, Start: start, End: l.index, FirstLine: line, LastLine: l.line}
			return err
		case ch == '\\':
			l.index++
			if next := l.peek(); next != eof && !IsLineTerminator(next) {
				l.index++
			}
			continue
		case ch == '[':
			inClass = true
		case ch == ']':
			inClass = false
		case ch == '/' && !inClass:
			break scan
		}
		l.index++
	}
	pattern := string(l.text[body:l.index])
	l.index++
	flagStart := l.index
	for IsIdentifierPart(l.peek()) {
		l.index++
	}
	flags := string(l.text[flagStart:l.index])
	l.emit(TokenRegExp, start, line)
	l.token.Value = pattern
	l.token.Flags = flags

	options := regexp2.RegexOptions(regexp2.ECMAScript)
	seen := make(map[rune]bool)
	for _, f := range flags {
		opt, ok := regExpFlags[f]
		if !ok || seen[f] {
			l.report(DiagSyntaxError, ErrInvalidRegExpFlags, l.token.Span(), StringArgument(flags))
			return nil
		}
		seen[f] = true
		options |= opt
	}
	if options&(regexp2.Singleline|regexp2.IgnorePatternWhitespace) != 0 {
		// The ECMAScript dialect rejects these options; s and x fall back
		// to the default dialect.
		options &^= regexp2.ECMAScript
	}
	if l.validateRegExp {
		if _, err := regexp2.Compile(pattern, options); err != nil {
			l.report(DiagWarning, ErrInvalidRegExp, l.token.Span(), TermArgument(err.Error()))
		}
	}
	return nil
}

// Tokens scans src to the end in normal mode. Lexical errors are recorded on
// src and scanning resumes after the offending input.
func Tokens(src *Source) []Token {
	l := NewLexer(src)
	var out []Token
	for {
		if err := l.Advance(); err != nil {
			continue
		}
		out = append(out, l.token)
		if l.token.Kind == TokenEOF {
			return out
		}
	}
}

func runeAt(text []rune, i int) rune {
	if i < 0 || i >= len(text) {
		return eof
	}
	return text[i]
}

// decodeUnicodeEscape decodes the digits following "\u" at text[i]. It
// returns the code point and the index just past the escape.
func decodeUnicodeEscape(text []rune, i int) (rune, int, bool) {
	if runeAt(text, i) == '{' {
		j := i + 1
		v := 0
		for IsHexDigit(runeAt(text, j)) {
			v = v*16 + hexValue(runeAt(text, j))
			if v > 0x10FFFF {
				return 0, j, false
			}
			j++
		}
		if j == i+1 || runeAt(text, j) != '}' {
			return 0, j, false
		}
		return rune(v), j + 1, true
	}
	v := 0
	for j := i; j < i+4; j++ {
		ch := runeAt(text, j)
		if !IsHexDigit(ch) {
			return 0, j, false
		}
		v = v*16 + hexValue(ch)
	}
	return rune(v), i + 4, true
}

// decodeEscape decodes the escape whose introducing backslash precedes
// text[i]. Line continuations are handled by the callers.
func decodeEscape(text []rune, i int) (string, int, bool) {
	ch := runeAt(text, i)
	switch ch {
	case eof:
		return "", i, false
	case 'n':
		return "\n", i + 1, true
	case 'r':
		return "\r", i + 1, true
	case 't':
		return "\t", i + 1, true
	case 'b':
		return "\b", i + 1, true
	case 'f':
		return "\f", i + 1, true
	case 'v':
		return "\v", i + 1, true
	case '0':
		if IsDecimalDigit(runeAt(text, i+1)) {
			return "", i + 1, false
		}
		return "\x00", i + 1, true
	case 'x':
		hi, lo := runeAt(text, i+1), runeAt(text, i+2)
		if !IsHexDigit(hi) || !IsHexDigit(lo) {
			return "", i + 1, false
		}
		return string(rune(hexValue(hi)*16 + hexValue(lo))), i + 3, true
	case 'u':
		cp, next, ok := decodeUnicodeEscape(text, i+1)
		if !ok {
			return "", next, false
		}
		if utf16.IsSurrogate(cp) && runeAt(text, next) == '\\' && runeAt(text, next+1) == 'u' {
			if low, after, ok := decodeUnicodeEscape(text, next+2); ok {
				if pair := utf16.DecodeRune(cp, low); pair != unicode.ReplacementChar {
					return string(pair), after, true
				}
			}
		}
		return string(cp), next, true
	}
	return string(ch), i + 1, true
}

func decodeString(text []rune) (string, bool) {
	var b strings.Builder
	for i := 0; i < len(text); {
		ch := text[i]
		if ch != '\\' {
			b.WriteRune(ch)
			i++
			continue
		}
		next := runeAt(text, i+1)
		if IsLineTerminator(next) {
			i += 2
			if next == '\r' && runeAt(text, i) == '\n' {
				i++
			}
			continue
		}
		s, j, ok := decodeEscape(text, i+1)
		if !ok {
			return "", false
		}
		b.WriteString(s)
		i = j
	}
	return b.String(), true
}

func splitLines(text []rune) [][]rune {
	var lines [][]rune
	begin := 0
	for i := 0; i < len(text); i++ {
		if !IsLineTerminator(text[i]) {
			continue
		}
		lines = append(lines, text[begin:i])
		if text[i] == '\r' && runeAt(text, i+1) == '\n' {
			i++
		}
		begin = i + 1
	}
	return append(lines, text[begin:])
}

func leadingWhitespace(line []rune) int {
	n := 0
	for n < len(line) && IsWhitespace(line[n]) {
		n++
	}
	return n
}

// dedent drops a leading line break and strips from every line up to as
// much leading whitespace as the last line carries. A whitespace-only last
// line is dropped.
func dedent(raw []rune) []rune {
	lines := splitLines(raw)
	if len(lines) > 1 && len(lines[0]) == 0 {
		lines = lines[1:]
	}
	last := lines[len(lines)-1]
	indent := leadingWhitespace(last)
	if indent == len(last) && len(lines) > 1 {
		lines = lines[:len(lines)-1]
	}
	out := make([]rune, 0, len(raw))
	for i, line := range lines {
		if i > 0 {
			out = append(out, '\n')
		}
		out = append(out, line[min(indent, leadingWhitespace(line)):]...)
	}
	return out
}
