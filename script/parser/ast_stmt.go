package parser

type ExpressionStatement struct {
	stmtBase
	Expr Expr
}

func (*ExpressionStatement) Kind() NodeKind { return KindExpressionStatement }

type EmptyStatement struct{ stmtBase }

func (*EmptyStatement) Kind() NodeKind { return KindEmptyStatement }

// SuperStatement is the super(...) constructor call.
type SuperStatement struct {
	stmtBase
	Arguments []Expr
}

func (*SuperStatement) Kind() NodeKind { return KindSuperStatement }

type Block struct {
	stmtBase
	Directives []Directive
}

func (*Block) Kind() NodeKind { return KindBlock }

type LabeledStatement struct {
	stmtBase
	Label     string
	LabelSpan Span
	Body      Statement
}

func (*LabeledStatement) Kind() NodeKind { return KindLabeledStatement }

type IfStatement struct {
	stmtBase
	Test        Expr
	Consequent  Statement
	Alternative Statement
}

func (*IfStatement) Kind() NodeKind { return KindIfStatement }

type SwitchStatement struct {
	stmtBase
	Discriminant Expr
	Cases        []*Case
}

func (*SwitchStatement) Kind() NodeKind { return KindSwitchStatement }

// Case has a nil Test for the default case.
type Case struct {
	otherBase
	Test       Expr
	Directives []Directive
}

func (*Case) Kind() NodeKind { return KindCase }

// SwitchTypeStatement is `switch type (x) { case (v: T) {...} }`.
type SwitchTypeStatement struct {
	stmtBase
	Discriminant Expr
	Cases        []*TypeCase
}

func (*SwitchTypeStatement) Kind() NodeKind { return KindSwitchTypeStatement }

// TypeCase has a nil Binding for the default case.
type TypeCase struct {
	otherBase
	Binding Pattern
	Block   *Block
}

func (*TypeCase) Kind() NodeKind { return KindTypeCase }

type DoStatement struct {
	stmtBase
	Body Statement
	Test Expr
}

func (*DoStatement) Kind() NodeKind { return KindDoStatement }

type WhileStatement struct {
	stmtBase
	Test Expr
	Body Statement
}

func (*WhileStatement) Kind() NodeKind { return KindWhileStatement }

// ForStatement Init is an Expr, a *VariableDefinition or nil.
type ForStatement struct {
	stmtBase
	Init   Node
	Test   Expr
	Update Expr
	Body   Statement
}

func (*ForStatement) Kind() NodeKind { return KindForStatement }

// ForInStatement covers for-in and for-each-in. Left is an Expr or a
// *VariableDefinition with a single binding.
type ForInStatement struct {
	stmtBase
	Each  bool
	Left  Node
	Right Expr
	Body  Statement
}

func (*ForInStatement) Kind() NodeKind { return KindForInStatement }

// BreakStatement.Target refers back to the statement it exits. It is not a
// child.
type BreakStatement struct {
	stmtBase
	Label  string
	Target Statement
}

func (*BreakStatement) Kind() NodeKind { return KindBreakStatement }

type ContinueStatement struct {
	stmtBase
	Label  string
	Target Statement
}

func (*ContinueStatement) Kind() NodeKind { return KindContinueStatement }

type ReturnStatement struct {
	stmtBase
	Value Expr
}

func (*ReturnStatement) Kind() NodeKind { return KindReturnStatement }

type ThrowStatement struct {
	stmtBase
	Value Expr
}

func (*ThrowStatement) Kind() NodeKind { return KindThrowStatement }

type TryStatement struct {
	stmtBase
	Block   *Block
	Catches []*CatchClause
	Finally *Block
}

func (*TryStatement) Kind() NodeKind { return KindTryStatement }

type CatchClause struct {
	otherBase
	Param Pattern
	Block *Block
}

func (*CatchClause) Kind() NodeKind { return KindCatchClause }

type WithStatement struct {
	stmtBase
	Object Expr
	Body   Statement
}

func (*WithStatement) Kind() NodeKind { return KindWithStatement }

// DefaultXMLNamespaceStatement is `default xml namespace = expr`.
type DefaultXMLNamespaceStatement struct {
	stmtBase
	Namespace Expr
}

func (*DefaultXMLNamespaceStatement) Kind() NodeKind { return KindDefaultXMLNamespaceStatement }

// ImportDirective is `import a.b.C`, `import a.b.*` or `import x = a.b.C`.
type ImportDirective struct {
	directiveBase
	Alias    string
	Path     []string
	Wildcard bool
}

func (*ImportDirective) Kind() NodeKind { return KindImportDirective }

type UseNamespaceDirective struct {
	directiveBase
	Namespace Expr
}

func (*UseNamespaceDirective) Kind() NodeKind { return KindUseNamespaceDirective }

// IncludeDirective owns the unit it pulled in. Packages are the package
// definitions found at the top of the included file; Directives the rest.
// Source is nil when the file could not be read.
type IncludeDirective struct {
	directiveBase
	Path       string
	Source     *Source
	Packages   []*PackageDefinition
	Directives []Directive
}

func (*IncludeDirective) Kind() NodeKind { return KindIncludeDirective }
