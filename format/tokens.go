package format

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dhamidi/wasc/script/parser"
)

// TokenWriter prints one token per line: span, kind and payload.
type TokenWriter struct {
	w   io.Writer
	src *parser.Source
}

func NewTokenWriter(w io.Writer, src *parser.Source) *TokenWriter {
	return &TokenWriter{w: w, src: src}
}

func (tw *TokenWriter) Write(tok parser.Token) error {
	start := tw.src.Position(tok.Start)
	end := tw.src.Position(tok.End)
	_, err := fmt.Fprintf(tw.w, "%s-%s\t%s\t%s\n", start, end, tok.Kind.String(), tokenPayload(tok))
	return err
}

func (tw *TokenWriter) WriteAll(tokens []parser.Token) error {
	for _, tok := range tokens {
		if err := tw.Write(tok); err != nil {
			return err
		}
	}
	return nil
}

func tokenPayload(tok parser.Token) string {
	switch tok.Kind {
	case parser.TokenIdent, parser.TokenString, parser.TokenXMLName,
		parser.TokenXMLAttributeValue, parser.TokenXMLText, parser.TokenXMLMarkup:
		return strconv.Quote(tok.Value)
	case parser.TokenNumber:
		return strconv.FormatFloat(tok.Number, 'g', -1, 64)
	case parser.TokenRegExp:
		return "/" + tok.Value + "/" + tok.Flags
	}
	return ""
}
