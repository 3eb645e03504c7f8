package format

import (
	"strings"

	"github.com/dhamidi/wasc/script/parser"
)

// treeNode is the serialized shape shared by the JSON and YAML encoders.
type treeNode struct {
	Kind     string      `json:"kind" yaml:"kind"`
	Detail   string      `json:"detail,omitempty" yaml:"detail,omitempty"`
	Source   string      `json:"source,omitempty" yaml:"source,omitempty"`
	Span     *treeSpan   `json:"span,omitempty" yaml:"span,omitempty"`
	Children []*treeNode `json:"children,omitempty" yaml:"children,omitempty"`
}

type treeSpan struct {
	Start treePosition `json:"start" yaml:"start"`
	End   treePosition `json:"end" yaml:"end"`
}

type treePosition struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

func buildTree(n parser.Node, src *parser.Source) *treeNode {
	kind := n.Kind().String()
	tn := &treeNode{
		Kind:   kind,
		Detail: strings.TrimSpace(strings.TrimPrefix(parser.Label(n), kind)),
	}

	if src != nil {
		loc := n.Location()
		start := src.Position(loc.Start)
		end := src.Position(loc.End)
		tn.Span = &treeSpan{
			Start: treePosition{Line: start.Line, Column: start.Column},
			End:   treePosition{Line: end.Line, Column: end.Column},
		}
	}

	// Nodes below an include directive belong to the included unit.
	childSrc := src
	if inc, ok := n.(*parser.IncludeDirective); ok && inc.Source != nil {
		tn.Source = inc.Source.URL
		childSrc = inc.Source
	}

	children := parser.Children(n)
	if len(children) > 0 {
		tn.Children = make([]*treeNode, len(children))
		for i, child := range children {
			tn.Children[i] = buildTree(child, childSrc)
		}
	}

	return tn
}
