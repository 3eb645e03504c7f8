package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/wasc/script/parser"
)

// TreeEncoder writes a syntax tree. Positions are resolved against the
// source the tree was parsed from.
type TreeEncoder interface {
	Encode(node parser.Node) error
	MarshalTree(node parser.Node) ([]byte, error)
}

// Formats lists the names accepted by NewTreeEncoder.
var Formats = []string{"json", "yaml", "sexpr"}

func NewTreeEncoder(format string, w io.Writer, src *parser.Source) (TreeEncoder, error) {
	switch strings.ToLower(format) {
	case "json":
		return NewASTJSONEncoder(w, src), nil
	case "yaml", "yml":
		return NewASTYAMLEncoder(w, src), nil
	case "sexpr":
		return NewSexprEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format %q (want one of %s)", format, strings.Join(Formats, ", "))
}

type SexprEncoder struct {
	w io.Writer
}

func NewSexprEncoder(w io.Writer) *SexprEncoder {
	return &SexprEncoder{w: w}
}

func (e *SexprEncoder) Encode(node parser.Node) error {
	text, err := e.MarshalTree(node)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *SexprEncoder) MarshalTree(node parser.Node) ([]byte, error) {
	return []byte(parser.Sexpr(node) + "\n"), nil
}
