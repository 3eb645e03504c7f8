package parser

import (
	"fmt"
	"strconv"
	"strings"
)

type DiagnosticKind int

const (
	DiagSyntaxError DiagnosticKind = iota
	// DiagVerifyError is reserved for the verifier and never emitted by the
	// parser.
	DiagVerifyError
	DiagWarning
)

func (k DiagnosticKind) String() string {
	switch k {
	case DiagSyntaxError:
		return "syntax error"
	case DiagVerifyError:
		return "verify error"
	case DiagWarning:
		return "warning"
	}
	return "unknown"
}

type ErrorCode int

const (
	ErrExpectingBefore ErrorCode = iota
	ErrUnexpectedCharacter
	ErrUnexpectedToken
	ErrUnexpectedEnd
	ErrUnterminatedString
	ErrUnterminatedComment
	ErrUnterminatedRegExp
	ErrUnterminatedXMLMarkup
	ErrInvalidEscape
	ErrInvalidNumber
	ErrInvalidRegExpFlags
	ErrInvalidRegExp
	ErrUnallowedHere
	ErrDuplicateAttribute
	ErrDuplicateNamespaceAttribute
	ErrUnallowedAttribute
	ErrFunctionMustNotSpecifyBody
	ErrFunctionOmitsBody
	ErrGetterParameters
	ErrSetterParameters
	ErrRestParameterNotLast
	ErrInvalidAssignmentTarget
	ErrInvalidDestructuringTarget
	ErrUndefinedLabel
	ErrDuplicateLabel
	ErrIllegalBreak
	ErrIllegalContinue
	ErrXMLClosingTagMismatch
	ErrCouldNotResolveInclude
	ErrCouldNotReadInclude
	ErrCircularInclude
	ErrIncludeTooDeep
)

// messages use $1, $2, ... as argument placeholders.
var errorMessages = map[ErrorCode]string{
	ErrExpectingBefore:             "expecting $1 before $2",
	ErrUnexpectedCharacter:         "unexpected character $1",
	ErrUnexpectedToken:             "unexpected $1",
	ErrUnexpectedEnd:               "unexpected end of program",
	ErrUnterminatedString:          "unterminated string literal",
	ErrUnterminatedComment:         "unterminated comment",
	ErrUnterminatedRegExp:          "unterminated regular expression",
	ErrUnterminatedXMLMarkup:       "unterminated XML markup",
	ErrInvalidEscape:               "invalid escape sequence",
	ErrInvalidNumber:               "invalid numeric literal",
	ErrInvalidRegExpFlags:          "invalid regular expression flags $1",
	ErrInvalidRegExp:               "invalid regular expression: $1",
	ErrUnallowedHere:               "$1 not allowed here",
	ErrDuplicateAttribute:          "duplicate attribute $1",
	ErrDuplicateNamespaceAttribute: "duplicate namespace attribute",
	ErrUnallowedAttribute:          "attribute $1 not allowed for this definition",
	ErrFunctionMustNotSpecifyBody:  "function must not specify body",
	ErrFunctionOmitsBody:           "function omits body",
	ErrGetterParameters:            "getter must not take parameters",
	ErrSetterParameters:            "setter must take exactly one parameter",
	ErrRestParameterNotLast:        "rest parameter must be last",
	ErrInvalidAssignmentTarget:     "invalid assignment target",
	ErrInvalidDestructuringTarget:  "invalid destructuring target",
	ErrUndefinedLabel:              "undefined label $1",
	ErrDuplicateLabel:              "duplicate label $1",
	ErrIllegalBreak:                "illegal break statement",
	ErrIllegalContinue:             "illegal continue statement",
	ErrXMLClosingTagMismatch:       "closing tag $1 does not match $2",
	ErrCouldNotResolveInclude:      "could not resolve include $1",
	ErrCouldNotReadInclude:         "could not read include $1: $2",
	ErrCircularInclude:             "circular include $1",
	ErrIncludeTooDeep:              "include $1 nested deeper than $2 levels",
}

func (c ErrorCode) String() string {
	if msg, ok := errorMessages[c]; ok {
		return msg
	}
	return "unknown error"
}

// DiagnosticArgument is one formatted argument of a diagnostic message.
type DiagnosticArgument interface {
	FormatArgument() string
}

// TokenArgument prints a token kind the way users write it.
type TokenArgument TokenKind

func (a TokenArgument) FormatArgument() string {
	return TokenKind(a).Describe()
}

// StringArgument is printed quoted.
type StringArgument string

func (a StringArgument) FormatArgument() string {
	return strconv.Quote(string(a))
}

// TermArgument is printed verbatim.
type TermArgument string

func (a TermArgument) FormatArgument() string {
	return string(a)
}

type NumberArgument float64

func (a NumberArgument) FormatArgument() string {
	return strconv.FormatFloat(float64(a), 'g', -1, 64)
}

type Diagnostic struct {
	Kind      DiagnosticKind
	Code      ErrorCode
	Loc       Span
	Source    *Source
	Arguments []DiagnosticArgument
}

func (d *Diagnostic) Message() string {
	msg := d.Code.String()
	for i := len(d.Arguments); i >= 1; i-- {
		msg = strings.ReplaceAll(msg, "$"+strconv.Itoa(i), d.Arguments[i-1].FormatArgument())
	}
	return msg
}

func (d *Diagnostic) IsWarning() bool {
	return d.Kind == DiagWarning
}

// Error renders "url:line:column: kind: message".
func (d *Diagnostic) Error() string {
	var b strings.Builder
	if d.Source != nil {
		pos := d.Source.Position(d.Loc.Start)
		if d.Source.URL != "" {
			b.WriteString(d.Source.URL)
			b.WriteByte(':')
		}
		b.WriteString(pos.String())
		b.WriteString(": ")
	}
	b.WriteString(d.Kind.String())
	b.WriteString(": ")
	b.WriteString(d.Message())
	return b.String()
}

// AbortError signals that a structural diagnostic was recorded and the parse
// must unwind to the nearest recovery point.
type AbortError struct {
	Diagnostic *Diagnostic
}

func (e *AbortError) Error() string {
	if e.Diagnostic == nil {
		return "parse aborted"
	}
	return e.Diagnostic.Error()
}

func (e *AbortError) Unwrap() error {
	if e.Diagnostic == nil {
		return nil
	}
	return e.Diagnostic
}

func describeArgs(args ...any) []DiagnosticArgument {
	out := make([]DiagnosticArgument, 0, len(args))
	for _, a := range args {
		switch v := a.(type) {
		case DiagnosticArgument:
			out = append(out, v)
		case TokenKind:
			out = append(out, TokenArgument(v))
		case string:
			out = append(out, TermArgument(v))
		case float64:
			out = append(out, NumberArgument(v))
		case int:
			out = append(out, NumberArgument(float64(v)))
		default:
			out = append(out, TermArgument(fmt.Sprint(v)))
		}
	}
	return out
}
