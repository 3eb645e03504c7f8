package parser

type NodeKind int

const (
	KindInvalid NodeKind = iota

	// Top level
	KindProgram
	KindPackageDefinition
	KindMetadata

	// Expressions
	KindIdentifier
	KindReservedNamespace
	KindStringLiteral
	KindNumberLiteral
	KindBooleanLiteral
	KindNullLiteral
	KindThisLiteral
	KindRegExpLiteral
	KindParen
	KindList
	KindArrayLiteral
	KindObjectLiteral
	KindObjectField
	KindSpread
	KindFunctionExpression
	KindNew
	KindCall
	KindDot
	KindBrackets
	KindDescendants
	KindFilter
	KindTypeArguments
	KindUnary
	KindBinary
	KindTernary
	KindAssignment
	KindPatternAssignment
	KindTypeOperator
	KindSuper

	// Type expressions
	KindAnyType
	KindVoidType
	KindNullableType
	KindNonNullableType
	KindArrayType
	KindTupleType
	KindFunctionType

	// Patterns
	KindNamePattern
	KindArrayPattern
	KindObjectPattern
	KindObjectPatternField

	// Statements
	KindExpressionStatement
	KindEmptyStatement
	KindSuperStatement
	KindBlock
	KindLabeledStatement
	KindIfStatement
	KindSwitchStatement
	KindCase
	KindSwitchTypeStatement
	KindTypeCase
	KindDoStatement
	KindWhileStatement
	KindForStatement
	KindForInStatement
	KindBreakStatement
	KindContinueStatement
	KindReturnStatement
	KindThrowStatement
	KindTryStatement
	KindCatchClause
	KindWithStatement
	KindDefaultXMLNamespaceStatement

	// Directives
	KindImportDirective
	KindUseNamespaceDirective
	KindIncludeDirective

	// Definitions
	KindVariableDefinition
	KindVariableBinding
	KindFunctionDefinition
	KindFunctionCommon
	KindParameter
	KindClassDefinition
	KindInterfaceDefinition
	KindEnumDefinition
	KindNamespaceDefinition
	KindTypeDefinition

	// XML
	KindXMLElement
	KindXMLList
	KindXMLAttribute
	KindXMLMarkup
	KindXMLText
)

var nodeKindNames = map[NodeKind]string{
	KindInvalid:                      "Invalid",
	KindProgram:                      "Program",
	KindPackageDefinition:            "PackageDefinition",
	KindMetadata:                     "Metadata",
	KindIdentifier:                   "Identifier",
	KindReservedNamespace:            "ReservedNamespace",
	KindStringLiteral:                "StringLiteral",
	KindNumberLiteral:                "NumberLiteral",
	KindBooleanLiteral:               "BooleanLiteral",
	KindNullLiteral:                  "NullLiteral",
	KindThisLiteral:                  "ThisLiteral",
	KindRegExpLiteral:                "RegExpLiteral",
	KindParen:                        "Paren",
	KindList:                         "List",
	KindArrayLiteral:                 "ArrayLiteral",
	KindObjectLiteral:                "ObjectLiteral",
	KindObjectField:                  "ObjectField",
	KindSpread:                       "Spread",
	KindFunctionExpression:           "FunctionExpression",
	KindNew:                          "New",
	KindCall:                         "Call",
	KindDot:                          "Dot",
	KindBrackets:                     "Brackets",
	KindDescendants:                  "Descendants",
	KindFilter:                       "Filter",
	KindTypeArguments:                "TypeArguments",
	KindUnary:                        "Unary",
	KindBinary:                       "Binary",
	KindTernary:                      "Ternary",
	KindAssignment:                   "Assignment",
	KindPatternAssignment:            "PatternAssignment",
	KindTypeOperator:                 "TypeOperator",
	KindSuper:                        "Super",
	KindAnyType:                      "AnyType",
	KindVoidType:                     "VoidType",
	KindNullableType:                 "NullableType",
	KindNonNullableType:              "NonNullableType",
	KindArrayType:                    "ArrayType",
	KindTupleType:                    "TupleType",
	KindFunctionType:                 "FunctionType",
	KindNamePattern:                  "NamePattern",
	KindArrayPattern:                 "ArrayPattern",
	KindObjectPattern:                "ObjectPattern",
	KindObjectPatternField:           "ObjectPatternField",
	KindExpressionStatement:          "ExpressionStatement",
	KindEmptyStatement:               "EmptyStatement",
	KindSuperStatement:               "SuperStatement",
	KindBlock:                        "Block",
	KindLabeledStatement:             "LabeledStatement",
	KindIfStatement:                  "IfStatement",
	KindSwitchStatement:              "SwitchStatement",
	KindCase:                         "Case",
	KindSwitchTypeStatement:          "SwitchTypeStatement",
	KindTypeCase:                     "TypeCase",
	KindDoStatement:                  "DoStatement",
	KindWhileStatement:               "WhileStatement",
	KindForStatement:                 "ForStatement",
	KindForInStatement:               "ForInStatement",
	KindBreakStatement:               "BreakStatement",
	KindContinueStatement:            "ContinueStatement",
	KindReturnStatement:              "ReturnStatement",
	KindThrowStatement:               "ThrowStatement",
	KindTryStatement:                 "TryStatement",
	KindCatchClause:                  "CatchClause",
	KindWithStatement:                "WithStatement",
	KindDefaultXMLNamespaceStatement: "DefaultXMLNamespaceStatement",
	KindImportDirective:              "ImportDirective",
	KindUseNamespaceDirective:        "UseNamespaceDirective",
	KindIncludeDirective:             "IncludeDirective",
	KindVariableDefinition:           "VariableDefinition",
	KindVariableBinding:              "VariableBinding",
	KindFunctionDefinition:           "FunctionDefinition",
	KindFunctionCommon:               "FunctionCommon",
	KindParameter:                    "Parameter",
	KindClassDefinition:              "ClassDefinition",
	KindInterfaceDefinition:          "InterfaceDefinition",
	KindEnumDefinition:               "EnumDefinition",
	KindNamespaceDefinition:          "NamespaceDefinition",
	KindTypeDefinition:               "TypeDefinition",
	KindXMLElement:                   "XMLElement",
	KindXMLList:                      "XMLList",
	KindXMLAttribute:                 "XMLAttribute",
	KindXMLMarkup:                    "XMLMarkup",
	KindXMLText:                      "XMLText",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Family is the coarse node category. Consumers switch on it before
// switching on the concrete type.
type Family int

const (
	FamilyOther Family = iota
	FamilyExpression
	FamilyPattern
	FamilyStatement
	FamilyDirective
	FamilyDefinition
	FamilyXML
)

func (f Family) String() string {
	switch f {
	case FamilyExpression:
		return "expression"
	case FamilyPattern:
		return "pattern"
	case FamilyStatement:
		return "statement"
	case FamilyDirective:
		return "directive"
	case FamilyDefinition:
		return "definition"
	case FamilyXML:
		return "xml"
	}
	return "other"
}

type Node interface {
	Kind() NodeKind
	Family() Family
	Location() Span
	setLocation(Span)
}

// Expr is any expression, including type expressions and XML literals.
type Expr interface {
	Node
	exprNode()
}

type Pattern interface {
	Node
	patternNode()
}

// Directive is anything that may appear in a block: statements,
// definitions and the import/use/include directives.
type Directive interface {
	Node
	directiveNode()
}

type Statement interface {
	Directive
	statementNode()
}

type Definition interface {
	Directive
	Header() *DefinitionHeader
}

type XMLNode interface {
	Node
	xmlNode()
}

type base struct {
	Loc Span
}

func (b *base) Location() Span { return b.Loc }
func (b *base) setLocation(loc Span) { b.Loc = loc }

type otherBase struct{ base }

func (*otherBase) Family() Family { return FamilyOther }

type exprBase struct{ base }

func (*exprBase) Family() Family { return FamilyExpression }
func (*exprBase) exprNode() {}

type patternBase struct{ base }

func (*patternBase) Family() Family { return FamilyPattern }
func (*patternBase) patternNode() {}

type stmtBase struct{ base }

func (*stmtBase) Family() Family { return FamilyStatement }
func (*stmtBase) directiveNode() {}
func (*stmtBase) statementNode() {}

type directiveBase struct{ base }

func (*directiveBase) Family() Family { return FamilyDirective }
func (*directiveBase) directiveNode() {}

type defBase struct {
	base
	DefinitionHeader
}

func (*defBase) Family() Family { return FamilyDefinition }
func (*defBase) directiveNode() {}

func (d *defBase) Header() *DefinitionHeader { return &d.DefinitionHeader }

type xmlBase struct{ base }

func (*xmlBase) Family() Family { return FamilyXML }
func (*xmlBase) xmlNode() {}

// Modifiers are the fixed attribute names a definition may carry.
type Modifiers struct {
	Static   bool
	Override bool
	Final    bool
	Native   bool
	Dynamic  bool
}

func (m Modifiers) IsZero() bool {
	return m == Modifiers{}
}

func (m Modifiers) Names() []string {
	var names []string
	if m.Static {
		names = append(names, "static")
	}
	if m.Override {
		names = append(names, "override")
	}
	if m.Final {
		names = append(names, "final")
	}
	if m.Native {
		names = append(names, "native")
	}
	if m.Dynamic {
		names = append(names, "dynamic")
	}
	return names
}

// DefinitionHeader carries what precedes a definition keyword: metadata,
// the access namespace and modifier attributes.
type DefinitionHeader struct {
	Metadata  []*Metadata
	Access    Expr
	Modifiers Modifiers
	NameSpan  Span
}

// Metadata is a bracketed annotation such as [Event(name="change")].
type Metadata struct {
	otherBase
	Name    string
	Entries []*MetadataEntry
}

func (*Metadata) Kind() NodeKind { return KindMetadata }

// MetadataEntry is one argument of a metadata annotation. Key is empty for
// positional entries.
type MetadataEntry struct {
	Key   string
	Value Expr
	Loc   Span
}

// FindMetadata returns the first entry of list named name.
func FindMetadata(list []*Metadata, name string) *Metadata {
	for _, m := range list {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// RemoveMetadata returns list without m. Other entries sharing m's name
// are kept.
func RemoveMetadata(list []*Metadata, m *Metadata) []*Metadata {
	out := list[:0:0]
	for _, x := range list {
		if x != m {
			out = append(out, x)
		}
	}
	return out
}

type Program struct {
	otherBase
	Packages   []*PackageDefinition
	Directives []Directive
}

func (*Program) Kind() NodeKind { return KindProgram }

type PackageDefinition struct {
	otherBase
	Name  []string
	Block *Block
}

func (*PackageDefinition) Kind() NodeKind { return KindPackageDefinition }
