package format

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/wasc/script/parser"
)

func TestDiagnosticWriter(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		url      string
		diag     parser.Diagnostic
		expected string
	}{
		{
			name: "single token",
			text: "var x = ;",
			url:  "main.as",
			diag: parser.Diagnostic{
				Kind:      parser.DiagSyntaxError,
				Code:      parser.ErrUnexpectedToken,
				Loc:       parser.Span{FirstLine: 1, Start: 8, LastLine: 1, End: 9},
				Arguments: []parser.DiagnosticArgument{parser.TokenArgument(parser.TokenSemicolon)},
			},
			expected: "main.as:1:9: syntax error: unexpected ';'\n" +
				"  var x = ;\n" +
				"          ^\n",
		},
		{
			name: "wide span",
			text: "a = (b)",
			diag: parser.Diagnostic{
				Kind:      parser.DiagWarning,
				Code:      parser.ErrInvalidRegExp,
				Loc:       parser.Span{FirstLine: 1, Start: 4, LastLine: 1, End: 7},
				Arguments: []parser.DiagnosticArgument{parser.TermArgument("oops")},
			},
			expected: "1:5: warning: invalid regular expression: oops\n" +
				"  a = (b)\n" +
				"      ^~~\n",
		},
		{
			name: "multiline span",
			text: "function f() {\n  return\n}",
			url:  "f.as",
			diag: parser.Diagnostic{
				Kind: parser.DiagSyntaxError,
				Code: parser.ErrUnexpectedEnd,
				Loc:  parser.Span{FirstLine: 1, Start: 9, LastLine: 3, End: 25},
			},
			expected: "f.as:1:10: syntax error: unexpected end of program\n" +
				"  function f() {\n" +
				"           ^~~~~\n",
		},
		{
			name: "tab indentation",
			text: "\tx = ;",
			diag: parser.Diagnostic{
				Kind:      parser.DiagSyntaxError,
				Code:      parser.ErrUnexpectedToken,
				Loc:       parser.Span{FirstLine: 1, Start: 5, LastLine: 1, End: 6},
				Arguments: []parser.DiagnosticArgument{parser.TokenArgument(parser.TokenSemicolon)},
			},
			expected: "1:6: syntax error: unexpected ';'\n" +
				"  \tx = ;\n" +
				"  \t    ^\n",
		},
		{
			name: "multiline span from line end",
			text: "a = (\nb",
			diag: parser.Diagnostic{
				Kind: parser.DiagSyntaxError,
				Code: parser.ErrUnexpectedEnd,
				Loc:  parser.Span{FirstLine: 1, Start: 5, LastLine: 2, End: 7},
			},
			expected: "1:6: syntax error: unexpected end of program\n" +
				"  a = (\n" +
				"       ^\n",
		},
		{
			name: "inverted span",
			text: "var x = ;",
			diag: parser.Diagnostic{
				Kind:      parser.DiagSyntaxError,
				Code:      parser.ErrUnexpectedToken,
				Loc:       parser.Span{FirstLine: 1, Start: 8, LastLine: 1, End: 4},
				Arguments: []parser.DiagnosticArgument{parser.TokenArgument(parser.TokenSemicolon)},
			},
			expected: "1:9: syntax error: unexpected ';'\n" +
				"  var x = ;\n" +
				"          ^\n",
		},
		{
			name: "blank line",
			text: "\n\n",
			diag: parser.Diagnostic{
				Kind: parser.DiagSyntaxError,
				Code: parser.ErrUnexpectedEnd,
				Loc:  parser.Span{FirstLine: 3, Start: 2, LastLine: 3, End: 2},
			},
			expected: "3:1: syntax error: unexpected end of program\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, src := parser.Parse(tt.text, parser.WithURL(tt.url))
			d := tt.diag
			d.Source = src

			var buf bytes.Buffer
			dw := NewDiagnosticWriter(&buf, ColorNever)
			require.NoError(t, dw.Write(&d))
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestDiagnosticWriterSummary(t *testing.T) {
	_, src := parser.Parse("a\nb\nc", parser.WithURL("main.as"))
	diags := []*parser.Diagnostic{
		{Kind: parser.DiagSyntaxError, Code: parser.ErrUnexpectedEnd, Source: src, Loc: parser.Span{FirstLine: 1, Start: 0, LastLine: 1, End: 1}},
		{Kind: parser.DiagWarning, Code: parser.ErrUnexpectedEnd, Source: src, Loc: parser.Span{FirstLine: 2, Start: 2, LastLine: 2, End: 3}},
		{Kind: parser.DiagSyntaxError, Code: parser.ErrUnexpectedEnd, Source: src, Loc: parser.Span{FirstLine: 3, Start: 4, LastLine: 3, End: 5}},
	}

	var buf bytes.Buffer
	dw := NewDiagnosticWriter(&buf, ColorNever)
	require.NoError(t, dw.WriteAll(diags))
	assert.Contains(t, buf.String(), "main.as:2:1: warning: unexpected end of program\n  b\n  ^\n")
	errs, warnings := dw.Counts()
	assert.Equal(t, 2, errs)
	assert.Equal(t, 1, warnings)

	buf.Reset()
	require.NoError(t, dw.Summary())
	assert.Equal(t, "2 errors, 1 warning\n", buf.String())

	buf.Reset()
	require.NoError(t, NewDiagnosticWriter(&buf, ColorNever).Summary())
	assert.Empty(t, buf.String())
}

func TestDiagnosticWriterColor(t *testing.T) {
	_, src := parser.Parse("var x = ;", parser.WithURL("main.as"))
	require.NotEmpty(t, src.Diagnostics)

	var plain, colored bytes.Buffer
	require.NoError(t, NewDiagnosticWriter(&plain, ColorNever).Write(src.Diagnostics[0]))
	require.NoError(t, NewDiagnosticWriter(&colored, ColorAlways).Write(src.Diagnostics[0]))
	assert.NotContains(t, plain.String(), "\x1b[")
	assert.Contains(t, colored.String(), "\x1b[")
}

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		input    string
		expected ColorMode
		err      bool
	}{
		{input: "auto", expected: ColorAuto},
		{input: "Always", expected: ColorAlways},
		{input: "never", expected: ColorNever},
		{input: "sometimes", err: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseColorMode(tt.input)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
