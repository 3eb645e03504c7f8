package parser

import "unicode"

const (
	lineSeparator      = '\u2028'
	paragraphSeparator = '\u2029'
	zeroWidthNonJoiner = '\u200C'
	zeroWidthJoiner    = '\u200D'
	eof                = -1
)

var (
	asciiIdentStart [128]bool
	asciiIdentPart  [128]bool
	asciiHexDigit   [128]bool
)

func init() {
	for i := 0; i < 128; i++ {
		ch := rune(i)
		letter := ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
		digit := '0' <= ch && ch <= '9'
		asciiIdentStart[i] = letter || ch == '_' || ch == '$'
		asciiIdentPart[i] = asciiIdentStart[i] || digit
		asciiHexDigit[i] = digit || ('a' <= ch && ch <= 'f') || ('A' <= ch && ch <= 'F')
	}
}

// IsWhitespace reports whether ch is insignificant horizontal whitespace.
func IsWhitespace(ch rune) bool {
	switch ch {
	case ' ', '\t', '\v', '\f', '\u00A0', '\uFEFF':
		return true
	}
	return ch > 127 && unicode.Is(unicode.Zs, ch)
}

// IsLineTerminator reports whether ch ends a source line.
func IsLineTerminator(ch rune) bool {
	return ch == '\n' || ch == '\r' || ch == lineSeparator || ch == paragraphSeparator
}

func IsIdentifierStart(ch rune) bool {
	if ch < 0 {
		return false
	}
	if ch < 128 {
		return asciiIdentStart[ch]
	}
	return unicode.IsLetter(ch) || unicode.Is(unicode.Nl, ch)
}

func IsIdentifierPart(ch rune) bool {
	if ch < 0 {
		return false
	}
	if ch < 128 {
		return asciiIdentPart[ch]
	}
	if IsIdentifierStart(ch) || ch == zeroWidthNonJoiner || ch == zeroWidthJoiner {
		return true
	}
	return unicode.In(ch, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc)
}

func IsDecimalDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func IsHexDigit(ch rune) bool {
	return ch >= 0 && ch < 128 && asciiHexDigit[ch]
}

func hexValue(ch rune) int {
	switch {
	case '0' <= ch && ch <= '9':
		return int(ch - '0')
	case 'a' <= ch && ch <= 'f':
		return int(ch-'a') + 10
	case 'A' <= ch && ch <= 'F':
		return int(ch-'A') + 10
	}
	return -1
}

// IsXMLNameStart follows the XML 1.0 NameStartChar production, minus the
// astral ranges which unicode.IsLetter already covers.
func IsXMLNameStart(ch rune) bool {
	if ch < 0 {
		return false
	}
	if ch < 128 {
		return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch == '_' || ch == ':'
	}
	return unicode.IsLetter(ch) || unicode.Is(unicode.Nl, ch)
}

func IsXMLNamePart(ch rune) bool {
	if IsXMLNameStart(ch) || IsDecimalDigit(ch) {
		return true
	}
	switch ch {
	case '.', '-', '\u00B7':
		return true
	}
	return ch > 127 && unicode.In(ch, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc)
}

// IsXMLWhitespace covers the four whitespace characters XML allows.
func IsXMLWhitespace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}
