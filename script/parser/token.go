package parser

// TokenKind values are grouped so that category tests are range checks:
// end of stream and literals first, then punctuators, keywords and finally
// compound assignments.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	// TokenInvalid is left in the cursor after a lexical error.
	TokenInvalid
	TokenIdent
	TokenString
	TokenNumber
	TokenRegExp

	// Produced only in the XML lexer modes.
	TokenXMLName
	TokenXMLAttributeValue
	TokenXMLText
	TokenXMLMarkup
	TokenXMLLtSlash
	TokenXMLSlashGt

	punctuatorBegin
	TokenDot
	TokenDotDot
	TokenEllipsis
	TokenDotLt
	TokenComma
	TokenSemicolon
	TokenColon
	TokenColonColon
	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket
	TokenLBrace
	TokenRBrace
	TokenAt
	TokenQuestion
	TokenQuestionQuestion
	TokenNot
	TokenBitNot
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPercent
	TokenIncrement
	TokenDecrement
	TokenLT
	TokenGT
	TokenLE
	TokenGE
	TokenEQ
	TokenNE
	TokenStrictEQ
	TokenStrictNE
	TokenShl
	TokenShr
	TokenUShr
	TokenBitAnd
	TokenBitOr
	TokenBitXor
	TokenAnd
	TokenOr
	TokenAssign
	punctuatorEnd

	keywordBegin
	TokenAs
	TokenBreak
	TokenCase
	TokenCatch
	TokenClass
	TokenConst
	TokenContinue
	TokenDefault
	TokenDelete
	TokenDo
	TokenElse
	TokenExtends
	TokenFalse
	TokenFinally
	TokenFor
	TokenFunction
	TokenIf
	TokenImplements
	TokenImport
	TokenIn
	TokenInstanceof
	TokenInterface
	TokenInternal
	TokenIs
	TokenNew
	TokenNull
	TokenPackage
	TokenPrivate
	TokenProtected
	TokenPublic
	TokenReturn
	TokenSuper
	TokenSwitch
	TokenThis
	TokenThrow
	TokenTrue
	TokenTry
	TokenTypeof
	TokenUse
	TokenVar
	TokenVoid
	TokenWhile
	TokenWith
	keywordEnd

	compoundAssignBegin
	TokenPlusAssign
	TokenMinusAssign
	TokenStarAssign
	TokenSlashAssign
	TokenPercentAssign
	TokenShlAssign
	TokenShrAssign
	TokenUShrAssign
	TokenBitAndAssign
	TokenBitOrAssign
	TokenBitXorAssign
	TokenAndAssign
	TokenOrAssign
	TokenNullishAssign
	compoundAssignEnd
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:               "EOF",
	TokenInvalid:           "Invalid",
	TokenIdent:             "Identifier",
	TokenString:            "StringLiteral",
	TokenNumber:            "NumericLiteral",
	TokenRegExp:            "RegExpLiteral",
	TokenXMLName:           "XMLName",
	TokenXMLAttributeValue: "XMLAttributeValue",
	TokenXMLText:           "XMLText",
	TokenXMLMarkup:         "XMLMarkup",
	TokenXMLLtSlash:        "</",
	TokenXMLSlashGt:        "/>",
	TokenDot:               ".",
	TokenDotDot:            "..",
	TokenEllipsis:          "...",
	TokenDotLt:             ".<",
	TokenComma:             ",",
	TokenSemicolon:         ";",
	TokenColon:             ":",
	TokenColonColon:        "::",
	TokenLParen:            "(",
	TokenRParen:            ")",
	TokenLBracket:          "[",
	TokenRBracket:          "]",
	TokenLBrace:            "{",
	TokenRBrace:            "}",
	TokenAt:                "@",
	TokenQuestion:          "?",
	TokenQuestionQuestion:  "??",
	TokenNot:               "!",
	TokenBitNot:            "~",
	TokenPlus:              "+",
	TokenMinus:             "-",
	TokenStar:              "*",
	TokenSlash:             "/",
	TokenPercent:           "%",
	TokenIncrement:         "++",
	TokenDecrement:         "--",
	TokenLT:                "<",
	TokenGT:                ">",
	TokenLE:                "<=",
	TokenGE:                ">=",
	TokenEQ:                "==",
	TokenNE:                "!=",
	TokenStrictEQ:          "===",
	TokenStrictNE:          "!==",
	TokenShl:               "<<",
	TokenShr:               ">>",
	TokenUShr:              ">>>",
	TokenBitAnd:            "&",
	TokenBitOr:             "|",
	TokenBitXor:            "^",
	TokenAnd:               "&&",
	TokenOr:                "||",
	TokenAssign:            "=",
	TokenAs:                "as",
	TokenBreak:             "break",
	TokenCase:              "case",
	TokenCatch:             "catch",
	TokenClass:             "class",
	TokenConst:             "const",
	TokenContinue:          "continue",
	TokenDefault:           "default",
	TokenDelete:            "delete",
	TokenDo:                "do",
	TokenElse:              "else",
	TokenExtends:           "extends",
	TokenFalse:             "false",
	TokenFinally:           "finally",
	TokenFor:               "for",
	TokenFunction:          "function",
	TokenIf:                "if",
	TokenImplements:        "implements",
	TokenImport:            "import",
	TokenIn:                "in",
	TokenInstanceof:        "instanceof",
	TokenInterface:         "interface",
	TokenInternal:          "internal",
	TokenIs:                "is",
	TokenNew:               "new",
	TokenNull:              "null",
	TokenPackage:           "package",
	TokenPrivate:           "private",
	TokenProtected:         "protected",
	TokenPublic:            "public",
	TokenReturn:            "return",
	TokenSuper:             "super",
	TokenSwitch:            "switch",
	TokenThis:              "this",
	TokenThrow:             "throw",
	TokenTrue:              "true",
	TokenTry:               "try",
	TokenTypeof:            "typeof",
	TokenUse:               "use",
	TokenVar:               "var",
	TokenVoid:              "void",
	TokenWhile:             "while",
	TokenWith:              "with",
	TokenPlusAssign:        "+=",
	TokenMinusAssign:       "-=",
	TokenStarAssign:        "*=",
	TokenSlashAssign:       "/=",
	TokenPercentAssign:     "%=",
	TokenShlAssign:         "<<=",
	TokenShrAssign:         ">>=",
	TokenUShrAssign:        ">>>=",
	TokenBitAndAssign:      "&=",
	TokenBitOrAssign:       "|=",
	TokenBitXorAssign:      "^=",
	TokenAndAssign:         "&&=",
	TokenOrAssign:          "||=",
	TokenNullishAssign:     "??=",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Describe is the user-facing spelling used in diagnostics.
func (k TokenKind) Describe() string {
	switch {
	case k == TokenEOF:
		return "end of program"
	case k == TokenInvalid:
		return "invalid token"
	case k == TokenIdent:
		return "identifier"
	case k == TokenString:
		return "string"
	case k == TokenNumber:
		return "number"
	case k == TokenRegExp:
		return "regular expression"
	case k == TokenXMLName:
		return "XML name"
	case k == TokenXMLAttributeValue:
		return "XML attribute value"
	case k == TokenXMLText:
		return "XML text"
	case k == TokenXMLMarkup:
		return "XML markup"
	}
	return "'" + k.String() + "'"
}

func (k TokenKind) IsPunctuator() bool {
	return k > punctuatorBegin && k < punctuatorEnd
}

func (k TokenKind) IsKeyword() bool {
	return k > keywordBegin && k < keywordEnd
}

func (k TokenKind) IsCompoundAssignment() bool {
	return k > compoundAssignBegin && k < compoundAssignEnd
}

func (k TokenKind) IsLiteral() bool {
	return k >= TokenIdent && k <= TokenRegExp
}

// IsReservedNamespace reports whether k is one of the access namespaces that
// double as attributes.
func (k TokenKind) IsReservedNamespace() bool {
	switch k {
	case TokenPublic, TokenPrivate, TokenProtected, TokenInternal:
		return true
	}
	return false
}

// IsIdentifierName reports whether k can be used where any identifier name,
// including a reserved word, is accepted (after a dot, as an object key).
func (k TokenKind) IsIdentifierName() bool {
	return k == TokenIdent || k.IsKeyword()
}

var keywords = map[string]TokenKind{
	"as":         TokenAs,
	"break":      TokenBreak,
	"case":       TokenCase,
	"catch":      TokenCatch,
	"class":      TokenClass,
	"const":      TokenConst,
	"continue":   TokenContinue,
	"default":    TokenDefault,
	"delete":     TokenDelete,
	"do":         TokenDo,
	"else":       TokenElse,
	"extends":    TokenExtends,
	"false":      TokenFalse,
	"finally":    TokenFinally,
	"for":        TokenFor,
	"function":   TokenFunction,
	"if":         TokenIf,
	"implements": TokenImplements,
	"import":     TokenImport,
	"in":         TokenIn,
	"instanceof": TokenInstanceof,
	"interface":  TokenInterface,
	"internal":   TokenInternal,
	"is":         TokenIs,
	"new":        TokenNew,
	"null":       TokenNull,
	"package":    TokenPackage,
	"private":    TokenPrivate,
	"protected":  TokenProtected,
	"public":     TokenPublic,
	"return":     TokenReturn,
	"super":      TokenSuper,
	"switch":     TokenSwitch,
	"this":       TokenThis,
	"throw":      TokenThrow,
	"true":       TokenTrue,
	"try":        TokenTry,
	"typeof":     TokenTypeof,
	"use":        TokenUse,
	"var":        TokenVar,
	"void":       TokenVoid,
	"while":      TokenWhile,
	"with":       TokenWith,
}

func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenIdent
}

// Token is the lexer's cursor record. At most one payload field is
// meaningful for a given kind: Value for identifiers, strings and XML
// tokens, Number for numeric literals, Value and Flags for regular
// expressions.
type Token struct {
	Kind      TokenKind
	Value     string
	Number    float64
	Flags     string
	Start     int
	End       int
	FirstLine int
	LastLine  int
}

func (t Token) Span() Span {
	return Span{FirstLine: t.FirstLine, Start: t.Start, LastLine: t.LastLine, End: t.End}
}

// Is reports whether t is the identifier name (contextual keyword).
func (t Token) Is(name string) bool {
	return t.Kind == TokenIdent && t.Value == name
}
