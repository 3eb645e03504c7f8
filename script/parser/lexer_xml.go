package parser

// scanXMLTag scans inside an element tag: names, '=', quoted attribute
// values, '{' and the '>' or '/>' terminators.
func (l *Lexer) scanXMLTag() error {
	if err := l.skipTrivia(); err != nil {
		return err
	}
	start, line := l.index, l.line
	ch := l.peek()
	switch {
	case ch == eof:
		l.emit(TokenEOF, start, line)
	case ch == '>':
		l.index++
		l.emit(TokenGT, start, line)
	case ch == '/' && l.peekN(1) == '>':
		l.index += 2
		l.emit(TokenXMLSlashGt, start, line)
	case ch == '=':
		l.index++
		l.emit(TokenAssign, start, line)
	case ch == '{':
		l.index++
		l.emit(TokenLBrace, start, line)
	case ch == '"' || ch == '\'':
		return l.scanXMLAttributeValue(start, line, ch)
	case IsXMLNameStart(ch):
		for IsXMLNamePart(l.peek()) {
			l.index++
		}
		l.emit(TokenXMLName, start, line)
		l.token.Value = string(l.text[start:l.index])
	default:
		l.index++
		return l.fail(ErrUnexpectedCharacter, l.spanFrom(start, line), StringArgument(string(ch)))
	}
	return nil
}

// Attribute values keep entity references verbatim.
func (l *Lexer) scanXMLAttributeValue(start, line int, quote rune) error {
	l.index++
	for {
		ch := l.peek()
		switch {
		case ch == quote:
			l.index++
			l.emit(TokenXMLAttributeValue, start, line)
			l.token.Value = string(l.text[start+1 : l.index-1])
			return nil
		case ch == eof:
			return l.fail(ErrUnterminatedString, l.spanFrom(start, line))
		case IsLineTerminator(ch):
			l.skipLineTerminator()
		default:
			l.index++
		}
	}
}

// scanXMLContent scans between tags: text runs, markup, '<', '</' and '{'.
// Whitespace is significant here, so nothing is skipped.
func (l *Lexer) scanXMLContent() error {
	start, line := l.index, l.line
	ch := l.peek()
	switch {
	case ch == eof:
		l.emit(TokenEOF, start, line)
		return nil
	case ch == '<' && l.peekN(1) == '/':
		l.index += 2
		l.emit(TokenXMLLtSlash, start, line)
		return nil
	case ch == '<' && (l.peekN(1) == '!' || l.peekN(1) == '?'):
		return l.scanXMLMarkup(start, line)
	case ch == '<':
		l.index++
		l.emit(TokenLT, start, line)
		return nil
	case ch == '{':
		l.index++
		l.emit(TokenLBrace, start, line)
		return nil
	}
	for {
		ch := l.peek()
		if ch == eof || ch == '<' || ch == '{' {
			break
		}
		if IsLineTerminator(ch) {
			l.skipLineTerminator()
		} else {
			l.index++
		}
	}
	l.emit(TokenXMLText, start, line)
	l.token.Value = string(l.text[start:l.index])
	return nil
}

// ScanXMLMarkup rescans the current '<' token as a comment, CDATA section or
// processing instruction. The parser calls it when '<' in expression
// position is followed by '!' or '?'.
func (l *Lexer) ScanXMLMarkup() error {
	start, line := l.token.Start, l.token.FirstLine
	l.index = start
	if err := l.scanXMLMarkup(start, line); err != nil {
		l.token = Token{Kind: TokenInvalid, Start: start, End: l.index, FirstLine: line, LastLine: l.line}
		return err
	}
	return nil
}

var xmlMarkupDelimiters = []struct{ open, close string }{
	{"<!--", "-->"},
	{"<![CDATA[", "]]>"},
	{"<?", "?>"},
}

func (l *Lexer) hasPrefix(s string) bool {
	i := l.index
	for _, ch := range s {
		if l.at(i) != ch {
			return false
		}
		i++
	}
	return true
}

func (l *Lexer) scanXMLMarkup(start, line int) error {
	for _, d := range xmlMarkupDelimiters {
		if !l.hasPrefix(d.open) {
			continue
		}
		l.index += len(d.open)
		for !l.hasPrefix(d.close) {
			ch := l.peek()
			switch {
			case ch == eof:
				return l.fail(ErrUnterminatedXMLMarkup, l.spanFrom(start, line))
			case IsLineTerminator(ch):
				l.skipLineTerminator()
			default:
				l.index++
			}
		}
		l.index += len(d.close)
		l.emit(TokenXMLMarkup, start, line)
		l.token.Value = string(l.text[start:l.index])
		return nil
	}
	l.index++
	return l.fail(ErrUnexpectedCharacter, l.spanFrom(start, line), StringArgument("<"))
}
