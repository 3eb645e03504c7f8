package parser

type VariableDefinition struct {
	defBase
	Const    bool
	Bindings []*VariableBinding
}

func (*VariableDefinition) Kind() NodeKind { return KindVariableDefinition }

type VariableBinding struct {
	otherBase
	Pattern Pattern
	Init    Expr
}

func (*VariableBinding) Kind() NodeKind { return KindVariableBinding }

type FunctionKind int

const (
	FunctionNormal FunctionKind = iota
	FunctionGetter
	FunctionSetter
	FunctionConstructor
)

func (k FunctionKind) String() string {
	switch k {
	case FunctionGetter:
		return "getter"
	case FunctionSetter:
		return "setter"
	case FunctionConstructor:
		return "constructor"
	}
	return "function"
}

type FunctionDefinition struct {
	defBase
	Name         string
	FunctionKind FunctionKind
	Common       *FunctionCommon
}

func (*FunctionDefinition) Kind() NodeKind { return KindFunctionDefinition }

type ParameterKind int

const (
	ParameterRequired ParameterKind = iota
	ParameterOptional
	ParameterRest
)

type Parameter struct {
	otherBase
	ParamKind ParameterKind
	Pattern   Pattern
	Default   Expr
}

func (*Parameter) Kind() NodeKind { return KindParameter }

// FunctionCommon is shared by function definitions and expressions. Body is
// a *Block, an Expr, or nil when omitted.
type FunctionCommon struct {
	otherBase
	TypeParams []*Identifier
	Params     []*Parameter
	Result     Expr
	Body       Node
	Yields     bool
	Awaits     bool
}

func (*FunctionCommon) Kind() NodeKind { return KindFunctionCommon }

// Rest returns the rest parameter, if any.
func (f *FunctionCommon) Rest() *Parameter {
	if n := len(f.Params); n > 0 && f.Params[n-1].ParamKind == ParameterRest {
		return f.Params[n-1]
	}
	return nil
}

type ClassDefinition struct {
	defBase
	Name       string
	TypeParams []*Identifier
	Extends    Expr
	Implements []Expr
	Block      *Block
}

func (*ClassDefinition) Kind() NodeKind { return KindClassDefinition }

type InterfaceDefinition struct {
	defBase
	Name       string
	TypeParams []*Identifier
	Extends    []Expr
	Block      *Block
}

func (*InterfaceDefinition) Kind() NodeKind { return KindInterfaceDefinition }

// EnumDefinition members are const definitions inside Block.
type EnumDefinition struct {
	defBase
	Name  string
	Type  Expr
	Block *Block
}

func (*EnumDefinition) Kind() NodeKind { return KindEnumDefinition }

type NamespaceDefinition struct {
	defBase
	Name  string
	Value Expr
}

func (*NamespaceDefinition) Kind() NodeKind { return KindNamespaceDefinition }

// TypeDefinition is the alias `type Name = T`.
type TypeDefinition struct {
	defBase
	Name       string
	TypeParams []*Identifier
	Type       Expr
}

func (*TypeDefinition) Kind() NodeKind { return KindTypeDefinition }

// XMLElement's open and close names are either plain (Name) or interpolated
// (NameExpr). Empty is set for the self-closing form <a/>.
type XMLElement struct {
	xmlBase
	Name          string
	NameExpr      Expr
	Attributes    []*XMLAttribute
	AttributeExpr Expr
	Content       []XMLNode
	Empty         bool
	CloseName     string
	CloseNameExpr Expr
}

func (*XMLElement) Kind() NodeKind { return KindXMLElement }
func (*XMLElement) exprNode() {}

// XMLList is <>...</>.
type XMLList struct {
	xmlBase
	Content []XMLNode
}

func (*XMLList) Kind() NodeKind { return KindXMLList }
func (*XMLList) exprNode() {}

// XMLAttribute values are either literal (Value) or interpolated
// (ValueExpr).
type XMLAttribute struct {
	xmlBase
	Name      string
	Value     string
	ValueExpr Expr
}

func (*XMLAttribute) Kind() NodeKind { return KindXMLAttribute }

// XMLMarkup is a comment, CDATA section or processing instruction kept
// verbatim.
type XMLMarkup struct {
	xmlBase
	Text string
}

func (*XMLMarkup) Kind() NodeKind { return KindXMLMarkup }
func (*XMLMarkup) exprNode() {}

// XMLText is a run of character data, or an interpolated {expr} when Expr
// is set.
type XMLText struct {
	xmlBase
	Text string
	Expr Expr
}

func (*XMLText) Kind() NodeKind { return KindXMLText }
