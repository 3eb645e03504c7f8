package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/wasc/script/parser"
)

type ASTJSONEncoder struct {
	w   io.Writer
	src *parser.Source
}

func NewASTJSONEncoder(w io.Writer, src *parser.Source) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w, src: src}
}

func (e *ASTJSONEncoder) Encode(node parser.Node) error {
	text, err := e.MarshalTree(node)
	if err != nil {
		return err
	}
	if _, err := e.w.Write(text); err != nil {
		return err
	}
	_, err = io.WriteString(e.w, "\n")
	return err
}

func (e *ASTJSONEncoder) MarshalTree(node parser.Node) ([]byte, error) {
	return json.MarshalIndent(buildTree(node, e.src), "", "  ")
}
