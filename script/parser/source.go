package parser

import (
	"errors"
	"fmt"
	"sort"
)

// Span is a half-open range [Start, End) of code point offsets together with
// the first and last line it touches. Lines are 1-based.
type Span struct {
	FirstLine int
	Start     int
	LastLine  int
	End       int
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", s.FirstLine, s.Start, s.LastLine, s.End)
}

// Union returns the smallest span covering both s and other.
func (s Span) Union(other Span) Span {
	u := s
	if other.Start < u.Start {
		u.Start, u.FirstLine = other.Start, other.FirstLine
	}
	if other.End > u.End {
		u.End, u.LastLine = other.End, other.LastLine
	}
	return u
}

// Position is a resolved line and column; Column is 1-based and counts code
// points.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Comment is a line or block comment discovered while scanning.
type Comment struct {
	Multiline bool
	Content   string
	Loc       Span
}

// Source is one compilation unit: a top-level file or an included fragment.
// It is mutated while a single Parser runs over it and is read-only once
// parsing completes.
type Source struct {
	URL  string
	Text []rune

	Comments    []*Comment
	Diagnostics []*Diagnostic

	// Included holds the child units created by include directives, in
	// source order. The parent exclusively owns them.
	Included []*Source
	Parent   *Source

	lineStarts  []int
	invalidated bool
}

func NewSource(text string, url string) *Source {
	return &Source{
		URL:        url,
		Text:       []rune(text),
		lineStarts: []int{0},
	}
}

// Invalidated reports whether a non-warning diagnostic has been recorded.
func (s *Source) Invalidated() bool {
	return s.invalidated
}

// AddDiagnostic records d. A diagnostic that already names its unit (one
// propagated from an included child) keeps it.
func (s *Source) AddDiagnostic(d *Diagnostic) {
	if d.Source == nil {
		d.Source = s
	}
	s.Diagnostics = append(s.Diagnostics, d)
	if d.Kind != DiagWarning {
		s.invalidated = true
	}
}

// AllDiagnostics returns this unit's diagnostics. Diagnostics of included
// units are already merged into their parent, so the list is complete.
func (s *Source) AllDiagnostics() []*Diagnostic {
	return s.Diagnostics
}

// Err joins all non-warning diagnostics into a single error, or returns nil.
func (s *Source) Err() error {
	var errs []error
	for _, d := range s.Diagnostics {
		if d.Kind != DiagWarning {
			errs = append(errs, d)
		}
	}
	return errors.Join(errs...)
}

func (s *Source) LineCount() int {
	return len(s.lineStarts)
}

// LineStart returns the offset at which the given 1-based line begins, or -1
// when the line has not been scanned yet.
func (s *Source) LineStart(line int) int {
	if line < 1 || line > len(s.lineStarts) {
		return -1
	}
	return s.lineStarts[line-1]
}

// Line returns the text of a scanned 1-based line without its terminator.
func (s *Source) Line(line int) string {
	start := s.LineStart(line)
	if start < 0 {
		return ""
	}
	end := start
	for end < len(s.Text) && !IsLineTerminator(s.Text[end]) {
		end++
	}
	return string(s.Text[start:end])
}

func (s *Source) addLineStart(offset int) {
	if n := len(s.lineStarts); n > 0 && s.lineStarts[n-1] >= offset {
		return
	}
	s.lineStarts = append(s.lineStarts, offset)
}

// LineOf returns the 1-based line containing offset.
func (s *Source) LineOf(offset int) int {
	i := sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > offset
	})
	if i == 0 {
		return 1
	}
	return i
}

func (s *Source) Position(offset int) Position {
	line := s.LineOf(offset)
	return Position{Line: line, Column: offset - s.lineStarts[line-1] + 1}
}

// Indentation counts the leading whitespace code points of a scanned line.
func (s *Source) Indentation(line int) int {
	start := s.LineStart(line)
	if start < 0 {
		return 0
	}
	n := 0
	for i := start; i < len(s.Text) && IsWhitespace(s.Text[i]); i++ {
		n++
	}
	return n
}

func (s *Source) Slice(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(s.Text) {
		end = len(s.Text)
	}
	if start >= end {
		return ""
	}
	return string(s.Text[start:end])
}

// TextOf returns the source text covered by span.
func (s *Source) TextOf(span Span) string {
	return s.Slice(span.Start, span.End)
}

// Root walks up the include chain.
func (s *Source) Root() *Source {
	for s.Parent != nil {
		s = s.Parent
	}
	return s
}

// includeChain reports whether url names this unit or one of its ancestors.
func (s *Source) includeChain(url string) bool {
	for u := s; u != nil; u = u.Parent {
		if u.URL == url {
			return true
		}
	}
	return false
}

func (s *Source) includeDepth() int {
	depth := 0
	for u := s.Parent; u != nil; u = u.Parent {
		depth++
	}
	return depth
}
