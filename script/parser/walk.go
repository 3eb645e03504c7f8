package parser

import (
	"strconv"
	"strings"
)

type collector []Node

// add appends n unless it is a nil interface. Callers check typed
// pointers themselves.
func (c *collector) add(n Node) {
	if n != nil {
		*c = append(*c, n)
	}
}

func (c *collector) exprs(list []Expr) {
	for _, e := range list {
		c.add(e)
	}
}

func (c *collector) directives(list []Directive) {
	for _, d := range list {
		c.add(d)
	}
}

func (c *collector) block(b *Block) {
	if b != nil {
		*c = append(*c, b)
	}
}

func (c *collector) ident(id *Identifier) {
	if id != nil {
		*c = append(*c, id)
	}
}

func (c *collector) header(h *DefinitionHeader) {
	for _, m := range h.Metadata {
		*c = append(*c, m)
	}
	c.add(h.Access)
}

func (c *collector) typeParams(list []*Identifier) {
	for _, id := range list {
		*c = append(*c, id)
	}
}

func (c *collector) xml(list []XMLNode) {
	for _, x := range list {
		c.add(x)
	}
}

// Children returns the direct children of n in source order. Back
// references such as a break statement's target are not children.
func Children(n Node) []Node {
	var c collector
	switch n := n.(type) {
	case *Program:
		for _, p := range n.Packages {
			c = append(c, p)
		}
		c.directives(n.Directives)
	case *PackageDefinition:
		c.block(n.Block)
	case *Metadata:
		for _, e := range n.Entries {
			c.add(e.Value)
		}

	case *Identifier:
		c.add(n.Qualifier)
		c.add(n.Brackets)
	case *ReservedNamespace, *StringLiteral, *NumberLiteral, *BooleanLiteral,
		*NullLiteral, *ThisLiteral, *RegExpLiteral, *AnyType, *VoidType:
	case *Paren:
		c.add(n.Expr)
	case *List:
		c.exprs(n.Items)
	case *ArrayLiteral:
		c.exprs(n.Elements)
	case *ObjectLiteral:
		for _, f := range n.Fields {
			c = append(c, f)
		}
	case *ObjectField:
		c.add(n.Key)
		c.add(n.Value)
	case *Spread:
		c.add(n.Expr)
	case *FunctionExpression:
		if n.Common != nil {
			c = append(c, n.Common)
		}
	case *New:
		c.add(n.Base)
		c.exprs(n.Arguments)
	case *Call:
		c.add(n.Base)
		c.exprs(n.Arguments)
	case *Dot:
		c.add(n.Base)
		c.ident(n.Name)
	case *Brackets:
		c.add(n.Base)
		c.add(n.Key)
	case *Descendants:
		c.add(n.Base)
		c.ident(n.Name)
	case *Filter:
		c.add(n.Base)
		c.add(n.Test)
	case *TypeArguments:
		c.add(n.Base)
		c.exprs(n.Arguments)
	case *Unary:
		c.add(n.Operand)
	case *Binary:
		c.add(n.Left)
		c.add(n.Right)
	case *Ternary:
		c.add(n.Test)
		c.add(n.Consequent)
		c.add(n.Alternative)
	case *Assignment:
		c.add(n.Left)
		c.add(n.Right)
	case *PatternAssignment:
		c.add(n.Left)
		c.add(n.Right)
	case *TypeOperator:
		c.add(n.Base)
		if n.Binding != nil {
			c = append(c, n.Binding)
		} else {
			c.add(n.Type)
		}
	case *Super:
		c.exprs(n.Arguments)
	case *NullableType:
		c.add(n.Base)
	case *NonNullableType:
		c.add(n.Base)
	case *ArrayType:
		c.add(n.Element)
	case *TupleType:
		c.exprs(n.Elements)
	case *FunctionType:
		c.exprs(n.Params)
		c.add(n.Rest)
		c.add(n.Result)

	case *NamePattern:
		c.add(n.Type)
	case *ArrayPattern:
		for _, e := range n.Elements {
			c.add(e)
		}
		c.add(n.Rest)
		c.add(n.Type)
	case *ObjectPattern:
		for _, f := range n.Fields {
			c = append(c, f)
		}
		c.add(n.Type)
	case *ObjectPatternField:
		c.add(n.Key)
		c.add(n.Value)

	case *ExpressionStatement:
		c.add(n.Expr)
	case *EmptyStatement, *BreakStatement, *ContinueStatement, *ImportDirective:
	case *SuperStatement:
		c.exprs(n.Arguments)
	case *Block:
		c.directives(n.Directives)
	case *LabeledStatement:
		c.add(n.Body)
	case *IfStatement:
		c.add(n.Test)
		c.add(n.Consequent)
		c.add(n.Alternative)
	case *SwitchStatement:
		c.add(n.Discriminant)
		for _, k := range n.Cases {
			c = append(c, k)
		}
	case *Case:
		c.add(n.Test)
		c.directives(n.Directives)
	case *SwitchTypeStatement:
		c.add(n.Discriminant)
		for _, k := range n.Cases {
			c = append(c, k)
		}
	case *TypeCase:
		c.add(n.Binding)
		c.block(n.Block)
	case *DoStatement:
		c.add(n.Body)
		c.add(n.Test)
	case *WhileStatement:
		c.add(n.Test)
		c.add(n.Body)
	case *ForStatement:
		c.add(n.Init)
		c.add(n.Test)
		c.add(n.Update)
		c.add(n.Body)
	case *ForInStatement:
		c.add(n.Left)
		c.add(n.Right)
		c.add(n.Body)
	case *ReturnStatement:
		c.add(n.Value)
	case *ThrowStatement:
		c.add(n.Value)
	case *TryStatement:
		c.block(n.Block)
		for _, k := range n.Catches {
			c = append(c, k)
		}
		c.block(n.Finally)
	case *CatchClause:
		c.add(n.Param)
		c.block(n.Block)
	case *WithStatement:
		c.add(n.Object)
		c.add(n.Body)
	case *DefaultXMLNamespaceStatement:
		c.add(n.Namespace)

	case *UseNamespaceDirective:
		c.add(n.Namespace)
	case *IncludeDirective:
		for _, p := range n.Packages {
			c = append(c, p)
		}
		c.directives(n.Directives)

	case *VariableDefinition:
		c.header(&n.DefinitionHeader)
		for _, b := range n.Bindings {
			c = append(c, b)
		}
	case *VariableBinding:
		c.add(n.Pattern)
		c.add(n.Init)
	case *FunctionDefinition:
		c.header(&n.DefinitionHeader)
		if n.Common != nil {
			c = append(c, n.Common)
		}
	case *FunctionCommon:
		c.typeParams(n.TypeParams)
		for _, p := range n.Params {
			c = append(c, p)
		}
		c.add(n.Result)
		c.add(n.Body)
	case *Parameter:
		c.add(n.Pattern)
		c.add(n.Default)
	case *ClassDefinition:
		c.header(&n.DefinitionHeader)
		c.typeParams(n.TypeParams)
		c.add(n.Extends)
		c.exprs(n.Implements)
		c.block(n.Block)
	case *InterfaceDefinition:
		c.header(&n.DefinitionHeader)
		c.typeParams(n.TypeParams)
		c.exprs(n.Extends)
		c.block(n.Block)
	case *EnumDefinition:
		c.header(&n.DefinitionHeader)
		c.add(n.Type)
		c.block(n.Block)
	case *NamespaceDefinition:
		c.header(&n.DefinitionHeader)
		c.add(n.Value)
	case *TypeDefinition:
		c.header(&n.DefinitionHeader)
		c.typeParams(n.TypeParams)
		c.add(n.Type)

	case *XMLElement:
		c.add(n.NameExpr)
		for _, a := range n.Attributes {
			c = append(c, a)
		}
		c.add(n.AttributeExpr)
		c.xml(n.Content)
		c.add(n.CloseNameExpr)
	case *XMLList:
		c.xml(n.Content)
	case *XMLAttribute:
		c.add(n.ValueExpr)
	case *XMLMarkup:
	case *XMLText:
		c.add(n.Expr)
	}
	return c
}

// Walk visits n and its descendants depth first. Returning false from fn
// skips the children of the visited node.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range Children(n) {
		Walk(child, fn)
	}
}

// Label is a one-line description of n without its children: the kind
// followed by the node's own payload.
func Label(n Node) string {
	kind := n.Kind().String()
	switch n := n.(type) {
	case *Identifier:
		name := n.Name
		if n.Attribute {
			name = "@" + name
		}
		return kind + " " + name
	case *ReservedNamespace:
		return kind + " " + n.Name
	case *StringLiteral:
		return kind + " " + strconv.Quote(n.Value)
	case *NumberLiteral:
		return kind + " " + strconv.FormatFloat(n.Value, 'g', -1, 64)
	case *BooleanLiteral:
		return kind + " " + strconv.FormatBool(n.Value)
	case *RegExpLiteral:
		return kind + " /" + n.Pattern + "/" + n.Flags
	case *Unary:
		return kind + " " + n.Op.String()
	case *Binary:
		return kind + " " + n.Op.String()
	case *Assignment:
		if n.Op == OpNone {
			return kind + " ="
		}
		return kind + " " + n.Op.String() + "="
	case *TypeOperator:
		return kind + " " + n.Op.String()
	case *FunctionExpression:
		if n.Name != "" {
			return kind + " " + n.Name
		}
	case *NamePattern:
		return kind + " " + n.Name
	case *LabeledStatement:
		return kind + " " + n.Label
	case *BreakStatement:
		if n.Label != "" {
			return kind + " " + n.Label
		}
	case *ContinueStatement:
		if n.Label != "" {
			return kind + " " + n.Label
		}
	case *ForInStatement:
		if n.Each {
			return kind + " each"
		}
	case *PackageDefinition:
		return kind + " " + strings.Join(n.Name, ".")
	case *Metadata:
		return kind + " " + n.Name
	case *ImportDirective:
		path := strings.Join(n.Path, ".")
		if n.Wildcard {
			path += ".*"
		}
		if n.Alias != "" {
			path = n.Alias + " = " + path
		}
		return kind + " " + path
	case *IncludeDirective:
		return kind + " " + strconv.Quote(n.Path)
	case *VariableDefinition:
		if n.Const {
			return kind + " const"
		}
		return kind + " var"
	case *FunctionDefinition:
		if n.FunctionKind != FunctionNormal {
			return kind + " " + n.FunctionKind.String() + " " + n.Name
		}
		return kind + " " + n.Name
	case *ClassDefinition:
		return kind + " " + n.Name
	case *InterfaceDefinition:
		return kind + " " + n.Name
	case *EnumDefinition:
		return kind + " " + n.Name
	case *NamespaceDefinition:
		return kind + " " + n.Name
	case *TypeDefinition:
		return kind + " " + n.Name
	case *Parameter:
		switch n.ParamKind {
		case ParameterOptional:
			return kind + " optional"
		case ParameterRest:
			return kind + " rest"
		}
	case *XMLElement:
		if n.NameExpr == nil {
			return kind + " " + n.Name
		}
	case *XMLAttribute:
		return kind + " " + n.Name
	case *XMLMarkup:
		return kind + " " + strconv.Quote(n.Text)
	case *XMLText:
		if n.Expr == nil {
			return kind + " " + strconv.Quote(n.Text)
		}
	}
	return kind
}

// Sexpr renders n as a parenthesized tree of labels, e.g.
// (Binary + (NumberLiteral 1) (NumberLiteral 2)).
func Sexpr(n Node) string {
	var b strings.Builder
	writeSexpr(&b, n)
	return b.String()
}

func writeSexpr(b *strings.Builder, n Node) {
	b.WriteByte('(')
	b.WriteString(Label(n))
	for _, child := range Children(n) {
		b.WriteByte(' ')
		writeSexpr(b, child)
	}
	b.WriteByte(')')
}
