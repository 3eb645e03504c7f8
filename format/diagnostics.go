package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/dhamidi/wasc/script/parser"
)

// ColorMode selects when diagnostics are colored: "auto" follows the
// terminal and NO_COLOR, "always" and "never" force it.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(strings.ToLower(s)); m {
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	}
	return "", fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
}

type styles struct {
	location *color.Color
	error    *color.Color
	warning  *color.Color
	message  *color.Color
	caret    *color.Color
}

func newStyles(mode ColorMode) *styles {
	s := &styles{
		location: color.New(color.Bold),
		error:    color.New(color.Bold, color.FgRed),
		warning:  color.New(color.Bold, color.FgYellow),
		message:  color.New(color.Bold),
		caret:    color.New(color.FgGreen),
	}
	all := []*color.Color{s.location, s.error, s.warning, s.message, s.caret}
	switch mode {
	case ColorNever:
		for _, c := range all {
			c.DisableColor()
		}
	case ColorAlways:
		for _, c := range all {
			c.EnableColor()
		}
	}
	return s
}

// DiagnosticWriter prints diagnostics compiler style:
//
//	main.as:3:9: syntax error: unexpected ';'
//	  var x = ;
//	          ^
type DiagnosticWriter struct {
	w        io.Writer
	styles   *styles
	errors   int
	warnings int
}

func NewDiagnosticWriter(w io.Writer, mode ColorMode) *DiagnosticWriter {
	return &DiagnosticWriter{w: w, styles: newStyles(mode)}
}

func (dw *DiagnosticWriter) Write(d *parser.Diagnostic) error {
	kind := dw.styles.error
	if d.IsWarning() {
		kind = dw.styles.warning
		dw.warnings++
	} else {
		dw.errors++
	}

	var location string
	var pos parser.Position
	if d.Source != nil {
		pos = d.Source.Position(d.Loc.Start)
		location = pos.String()
		if d.Source.URL != "" {
			location = d.Source.URL + ":" + location
		}
		location += ": "
	}

	if _, err := fmt.Fprintf(dw.w, "%s%s %s\n",
		dw.styles.location.Sprint(location),
		kind.Sprint(d.Kind.String()+":"),
		dw.styles.message.Sprint(d.Message()),
	); err != nil {
		return err
	}

	if d.Source == nil {
		return nil
	}
	line := d.Source.Line(pos.Line)
	if strings.TrimSpace(line) == "" {
		return nil
	}
	_, err := fmt.Fprintf(dw.w, "  %s\n  %s%s\n", line, caretIndent(line, pos.Column), dw.styles.caret.Sprint(caret(d, line, pos)))
	return err
}

func (dw *DiagnosticWriter) WriteAll(list []*parser.Diagnostic) error {
	for _, d := range list {
		if err := dw.Write(d); err != nil {
			return err
		}
	}
	return nil
}

// Counts returns the number of errors and warnings written so far.
func (dw *DiagnosticWriter) Counts() (errors, warnings int) {
	return dw.errors, dw.warnings
}

// Summary prints "N errors, M warnings" unless nothing was written.
func (dw *DiagnosticWriter) Summary() error {
	if dw.errors == 0 && dw.warnings == 0 {
		return nil
	}
	_, err := fmt.Fprintf(dw.w, "%s, %s\n", plural(dw.errors, "error"), plural(dw.warnings, "warning"))
	return err
}

// caretIndent keeps tabs so the caret lines up under tab-indented code.
func caretIndent(line string, column int) string {
	var b strings.Builder
	i := 1
	for _, ch := range line {
		if i >= column {
			break
		}
		if ch == '\t' {
			b.WriteRune('\t')
		} else {
			b.WriteByte(' ')
		}
		i++
	}
	return b.String()
}

// caret underlines the span from start to its end, or to the end of the
// line for spans that continue on later lines. Empty and inverted spans,
// and spans starting at the line terminator, get a single caret.
func caret(d *parser.Diagnostic, line string, start parser.Position) string {
	end := d.Source.Position(d.Loc.End)
	lineLen := len([]rune(line))
	width := 1
	switch {
	case end.Line == start.Line:
		width = end.Column - start.Column
	case end.Line > start.Line:
		width = lineLen - start.Column + 1
	}
	width = max(width, 1)
	return "^" + strings.Repeat("~", width-1)
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
