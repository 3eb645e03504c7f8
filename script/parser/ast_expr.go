package parser

// Identifier is a possibly qualified name. Name is "*" for the wildcard and
// empty when the qualified part is computed (ns::[expr]).
type Identifier struct {
	exprBase
	Qualifier Expr
	Name      string
	Brackets  Expr
	Attribute bool
}

func (*Identifier) Kind() NodeKind { return KindIdentifier }

// ReservedNamespace is public, private, protected or internal used as an
// expression or attribute.
type ReservedNamespace struct {
	exprBase
	Name string
}

func (*ReservedNamespace) Kind() NodeKind { return KindReservedNamespace }

type StringLiteral struct {
	exprBase
	Value string
}

func (*StringLiteral) Kind() NodeKind { return KindStringLiteral }

type NumberLiteral struct {
	exprBase
	Value float64
}

func (*NumberLiteral) Kind() NodeKind { return KindNumberLiteral }

type BooleanLiteral struct {
	exprBase
	Value bool
}

func (*BooleanLiteral) Kind() NodeKind { return KindBooleanLiteral }

type NullLiteral struct{ exprBase }

func (*NullLiteral) Kind() NodeKind { return KindNullLiteral }

type ThisLiteral struct{ exprBase }

func (*ThisLiteral) Kind() NodeKind { return KindThisLiteral }

type RegExpLiteral struct {
	exprBase
	Pattern string
	Flags   string
}

func (*RegExpLiteral) Kind() NodeKind { return KindRegExpLiteral }

type Paren struct {
	exprBase
	Expr Expr
}

func (*Paren) Kind() NodeKind { return KindParen }

// List is the comma operator.
type List struct {
	exprBase
	Items []Expr
}

func (*List) Kind() NodeKind { return KindList }

// ArrayLiteral elements are nil for holes.
type ArrayLiteral struct {
	exprBase
	Elements []Expr
}

func (*ArrayLiteral) Kind() NodeKind { return KindArrayLiteral }

type ObjectLiteral struct {
	exprBase
	Fields []*ObjectField
}

func (*ObjectLiteral) Kind() NodeKind { return KindObjectLiteral }

// ObjectField is key: value. A field with a nil Key spreads Value; a field
// with a nil Value is the shorthand {name}.
type ObjectField struct {
	otherBase
	Key      Expr
	Computed bool
	Value    Expr
}

func (*ObjectField) Kind() NodeKind { return KindObjectField }

type Spread struct {
	exprBase
	Expr Expr
}

func (*Spread) Kind() NodeKind { return KindSpread }

type FunctionExpression struct {
	exprBase
	Name     string
	NameSpan Span
	Common   *FunctionCommon
}

func (*FunctionExpression) Kind() NodeKind { return KindFunctionExpression }

// New has nil Arguments when the constructor is invoked without parentheses.
type New struct {
	exprBase
	Base      Expr
	Arguments []Expr
}

func (*New) Kind() NodeKind { return KindNew }

type Call struct {
	exprBase
	Base      Expr
	Arguments []Expr
}

func (*Call) Kind() NodeKind { return KindCall }

type Dot struct {
	exprBase
	Base Expr
	Name *Identifier
}

func (*Dot) Kind() NodeKind { return KindDot }

type Brackets struct {
	exprBase
	Base Expr
	Key  Expr
}

func (*Brackets) Kind() NodeKind { return KindBrackets }

// Descendants is base..name.
type Descendants struct {
	exprBase
	Base Expr
	Name *Identifier
}

func (*Descendants) Kind() NodeKind { return KindDescendants }

// Filter is base.(test).
type Filter struct {
	exprBase
	Base Expr
	Test Expr
}

func (*Filter) Kind() NodeKind { return KindFilter }

// TypeArguments is base.<T, U>.
type TypeArguments struct {
	exprBase
	Base      Expr
	Arguments []Expr
}

func (*TypeArguments) Kind() NodeKind { return KindTypeArguments }

type Unary struct {
	exprBase
	Op      Operator
	Operand Expr
}

func (*Unary) Kind() NodeKind { return KindUnary }

type Binary struct {
	exprBase
	Op    Operator
	Left  Expr
	Right Expr
}

func (*Binary) Kind() NodeKind { return KindBinary }

type Ternary struct {
	exprBase
	Test        Expr
	Consequent  Expr
	Alternative Expr
}

func (*Ternary) Kind() NodeKind { return KindTernary }

// Assignment has Op set to the applied binary operator for compound forms
// and OpNone for '='.
type Assignment struct {
	exprBase
	Op    Operator
	Left  Expr
	Right Expr
}

func (*Assignment) Kind() NodeKind { return KindAssignment }

// PatternAssignment is a destructuring assignment such as [a, b] = c.
type PatternAssignment struct {
	exprBase
	Left  Pattern
	Right Expr
}

func (*PatternAssignment) Kind() NodeKind { return KindPatternAssignment }

// TypeOperator is `as`, `is` or `instanceof`. For `is x:T` Binding holds the
// name pattern and Type is its annotation.
type TypeOperator struct {
	exprBase
	Op      Operator
	Base    Expr
	Type    Expr
	Binding *NamePattern
}

func (*TypeOperator) Kind() NodeKind { return KindTypeOperator }

// Super is the super expression; Arguments is set for super(obj).
type Super struct {
	exprBase
	Arguments []Expr
}

func (*Super) Kind() NodeKind { return KindSuper }

// AnyType is '*'.
type AnyType struct{ exprBase }

func (*AnyType) Kind() NodeKind { return KindAnyType }

type VoidType struct{ exprBase }

func (*VoidType) Kind() NodeKind { return KindVoidType }

// NullableType is ?T or T?.
type NullableType struct {
	exprBase
	Base Expr
}

func (*NullableType) Kind() NodeKind { return KindNullableType }

// NonNullableType is T!.
type NonNullableType struct {
	exprBase
	Base Expr
}

func (*NonNullableType) Kind() NodeKind { return KindNonNullableType }

// ArrayType is [T].
type ArrayType struct {
	exprBase
	Element Expr
}

func (*ArrayType) Kind() NodeKind { return KindArrayType }

// TupleType is [T, U, ...].
type TupleType struct {
	exprBase
	Elements []Expr
}

func (*TupleType) Kind() NodeKind { return KindTupleType }

type FunctionType struct {
	exprBase
	Params []Expr
	Rest   Expr
	Result Expr
}

func (*FunctionType) Kind() NodeKind { return KindFunctionType }

// NamePattern binds a single name, optionally annotated.
type NamePattern struct {
	patternBase
	Name     string
	NameSpan Span
	Type     Expr
}

func (*NamePattern) Kind() NodeKind { return KindNamePattern }

// ArrayPattern elements are nil for holes.
type ArrayPattern struct {
	patternBase
	Elements []Pattern
	Rest     Pattern
	Type     Expr
}

func (*ArrayPattern) Kind() NodeKind { return KindArrayPattern }

type ObjectPattern struct {
	patternBase
	Fields []*ObjectPatternField
	Type   Expr
}

func (*ObjectPattern) Kind() NodeKind { return KindObjectPattern }

// ObjectPatternField is key: pattern. For the shorthand {x} Value is a
// NamePattern named after the key.
type ObjectPatternField struct {
	otherBase
	Key   Expr
	Value Pattern
}

func (*ObjectPatternField) Kind() NodeKind { return KindObjectPatternField }
