package lsp

import (
	"net/url"
	"path/filepath"
	"strings"
	"unicode/utf16"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/wasc/script/parser"
)

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(filepath.FromSlash(parsed.Path)), nil
	}
	return uri, nil
}

func pathToURI(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}

// toPosition converts a code point offset to a zero-based line and UTF-16
// character offset.
func toPosition(src *parser.Source, offset int) protocol.Position {
	if offset > len(src.Text) {
		offset = len(src.Text)
	}
	if offset < 0 {
		offset = 0
	}
	line := src.LineOf(offset)
	start := src.LineStart(line)
	if start < 0 || start > offset {
		start = offset
	}
	character := 0
	for _, ch := range src.Text[start:offset] {
		n := utf16.RuneLen(ch)
		if n < 0 {
			n = 1
		}
		character += n
	}
	return protocol.Position{
		Line:      protocol.UInteger(line - 1),
		Character: protocol.UInteger(character),
	}
}

func toRange(src *parser.Source, span parser.Span) protocol.Range {
	return protocol.Range{
		Start: toPosition(src, span.Start),
		End:   toPosition(src, span.End),
	}
}

func toDiagnostic(d *parser.Diagnostic) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	if d.IsWarning() {
		severity = protocol.DiagnosticSeverityWarning
	}
	source := lsName
	diag := protocol.Diagnostic{
		Severity: &severity,
		Code:     &protocol.IntegerOrString{Value: protocol.Integer(d.Code)},
		Source:   &source,
		Message:  d.Message(),
	}
	if d.Source != nil {
		diag.Range = toRange(d.Source, d.Loc)
	}
	return diag
}

// diagnosticsByURI groups the diagnostics of doc by the unit they were
// found in. Every unit of the document gets an entry, possibly empty, so
// that publishing the map clears stale diagnostics.
func diagnosticsByURI(doc *Document) map[string][]protocol.Diagnostic {
	out := map[string][]protocol.Diagnostic{doc.URI: {}}
	var addUnits func(src *parser.Source)
	addUnits = func(src *parser.Source) {
		for _, child := range src.Included {
			out[pathToURI(child.URL)] = []protocol.Diagnostic{}
			addUnits(child)
		}
	}
	addUnits(doc.Source)

	for _, d := range doc.Source.Diagnostics {
		uri := doc.URI
		if d.Source != nil && d.Source != doc.Source {
			uri = pathToURI(d.Source.URL)
		}
		out[uri] = append(out[uri], toDiagnostic(d))
	}
	return out
}
