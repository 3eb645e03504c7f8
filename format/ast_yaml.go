package format

import (
	"bytes"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/wasc/script/parser"
)

type ASTYAMLEncoder struct {
	w   io.Writer
	src *parser.Source
}

func NewASTYAMLEncoder(w io.Writer, src *parser.Source) *ASTYAMLEncoder {
	return &ASTYAMLEncoder{w: w, src: src}
}

func (e *ASTYAMLEncoder) Encode(node parser.Node) error {
	text, err := e.MarshalTree(node)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *ASTYAMLEncoder) MarshalTree(node parser.Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(buildTree(node, e.src)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
