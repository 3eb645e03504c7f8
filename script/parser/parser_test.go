package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExpression(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2 * 3", "(Binary + (NumberLiteral 1) (Binary * (NumberLiteral 2) (NumberLiteral 3)))"},
		{"(1 + 2) * 3", "(Binary * (Paren (Binary + (NumberLiteral 1) (NumberLiteral 2))) (NumberLiteral 3))"},
		{"a = b = c", "(Assignment = (Identifier a) (Assignment = (Identifier b) (Identifier c)))"},
		{"a - b - c", "(Binary - (Binary - (Identifier a) (Identifier b)) (Identifier c))"},
		{"a += 1", "(Assignment += (Identifier a) (NumberLiteral 1))"},
		{"a || b && c", "(Binary || (Identifier a) (Binary && (Identifier b) (Identifier c)))"},
		{"a ?? b", "(Binary ?? (Identifier a) (Identifier b))"},
		{"a ? b : c", "(Ternary (Identifier a) (Identifier b) (Identifier c))"},
		{"-a * b", "(Binary * (Unary - (Identifier a)) (Identifier b))"},
		{"!a", "(Unary ! (Identifier a))"},
		{"typeof a", "(Unary typeof (Identifier a))"},
		{"a++", "(Unary x++ (Identifier a))"},
		{"a!", "(Unary x! (Identifier a))"},
		{"a, b", "(List (Identifier a) (Identifier b))"},
		{"a.b[c](d)", "(Call (Brackets (Dot (Identifier a) (Identifier b)) (Identifier c)) (Identifier d))"},
		{"a.class", "(Dot (Identifier a) (Identifier class))"},
		{"x..y", "(Descendants (Identifier x) (Identifier y))"},
		{"x.@id", "(Dot (Identifier x) (Identifier @id))"},
		{"x.(@id == 1)", "(Filter (Identifier x) (Binary == (Identifier @id) (NumberLiteral 1)))"},
		{"ns::name", "(Identifier name (Identifier ns))"},
		{"x as T", "(TypeOperator as (Identifier x) (Identifier T))"},
		{"x is T", "(TypeOperator is (Identifier x) (Identifier T))"},
		{"a ? b is C : d", "(Ternary (Identifier a) (TypeOperator is (Identifier b) (Identifier C)) (Identifier d))"},
		{"a ? b is x:T : d", "(Ternary (Identifier a) (TypeOperator is (Identifier b) (NamePattern x (Identifier T))) (Identifier d))"},
		{"x instanceof T", "(TypeOperator instanceof (Identifier x) (Identifier T))"},
		{"a < b", "(Binary < (Identifier a) (Identifier b))"},
		{"v.<int>", "(TypeArguments (Identifier v) (Identifier int))"},
		{"new Vector.<Vector.<int>>()", "(New (TypeArguments (Identifier Vector) (TypeArguments (Identifier Vector) (Identifier int))))"},
		{"new A(1)", "(New (Identifier A) (NumberLiteral 1))"},
		{"new a.B", "(New (Dot (Identifier a) (Identifier B)))"},
		{"/ab+c/gi", "(RegExpLiteral /ab+c/gi)"},
		{"a / b / c", "(Binary / (Binary / (Identifier a) (Identifier b)) (Identifier c))"},
		{`"s"`, `(StringLiteral "s")`},
		{"true", "(BooleanLiteral true)"},
		{"null", "(NullLiteral)"},
		{"this.x", "(Dot (ThisLiteral) (Identifier x))"},
		{"[1, , ...a]", "(ArrayLiteral (NumberLiteral 1) (Spread (Identifier a)))"},
		{"{a: 1, b}", "(ObjectLiteral (ObjectField (Identifier a) (NumberLiteral 1)) (ObjectField (Identifier b)))"},
		{"[a, b] = [1, 2]", "(PatternAssignment (ArrayPattern (NamePattern a) (NamePattern b)) (ArrayLiteral (NumberLiteral 1) (NumberLiteral 2)))"},
		{"{x, y: z} = o", "(PatternAssignment (ObjectPattern (ObjectPatternField (Identifier x) (NamePattern x)) (ObjectPatternField (Identifier y) (NamePattern z))) (Identifier o))"},
		{"[a, b]", "(ArrayLiteral (Identifier a) (Identifier b))"},
		{"function (x) { return x }", "(FunctionExpression (FunctionCommon (Parameter (NamePattern x)) (Block (ReturnStatement (Identifier x)))))"},
		{"function f(): void {}", "(FunctionExpression f (FunctionCommon (VoidType) (Block)))"},
		{`<a b="1">{x}</a>`, `(XMLElement a (XMLAttribute b) (XMLText (Identifier x)))`},
		{"<a/>", "(XMLElement a)"},
		{"<><b>t</b><!-- c --></>", `(XMLList (XMLElement b (XMLText "t")) (XMLMarkup "<!-- c -->"))`},
		{"<!-- note -->", `(XMLMarkup "<!-- note -->")`},
		{"<{tag} {attrs}/>", "(XMLElement (Identifier tag) (Identifier attrs))"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr, src := ParseExpression(tt.input)
			require.Empty(t, src.Diagnostics, "diagnostics: %v", src.Diagnostics)
			require.NotNil(t, expr)
			assert.Equal(t, tt.expected, Sexpr(expr))
		})
	}
}

func TestParseExpressionErrors(t *testing.T) {
	tests := []struct {
		input   string
		code    ErrorCode
		message string
	}{
		{"(1 + 2", ErrExpectingBefore, "expecting ')' before end of program"},
		{"a +", ErrUnexpectedEnd, "unexpected end of program"},
		{"a b", ErrUnexpectedToken, "unexpected identifier"},
		{"1 = 2", ErrInvalidAssignmentTarget, "invalid assignment target"},
		{"<a></b>", ErrXMLClosingTagMismatch, `closing tag b does not match a`},
		{`<a x="1" x="2"/>`, ErrDuplicateAttribute, "duplicate attribute x"},
		{"f(a b)", ErrExpectingBefore, "expecting ',' before identifier"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, src := ParseExpression(tt.input)
			require.NotEmpty(t, src.Diagnostics)
			d := src.Diagnostics[0]
			assert.Equal(t, tt.code, d.Code)
			assert.Equal(t, tt.message, d.Message())
			assert.True(t, src.Invalidated())
		})
	}
}

func TestParseProgram(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "return before line break",
			input:    "function f() {\n  return\n  1\n}",
			expected: "(Program (FunctionDefinition f (FunctionCommon (Block (ReturnStatement) (ExpressionStatement (NumberLiteral 1))))))",
		},
		{
			name:     "paren on next line",
			input:    "a\n(b)",
			expected: "(Program (ExpressionStatement (Identifier a)) (ExpressionStatement (Paren (Identifier b))))",
		},
		{
			name:     "arguments across lines",
			input:    "a(\nb)",
			expected: "(Program (ExpressionStatement (Call (Identifier a) (Identifier b))))",
		},
		{
			name:     "indented continuation",
			input:    "a\n  (b)",
			expected: "(Program (ExpressionStatement (Call (Identifier a) (Identifier b))))",
		},
		{
			name:     "postfix on next line",
			input:    "a\n++b",
			expected: "(Program (ExpressionStatement (Identifier a)) (ExpressionStatement (Unary ++x (Identifier b))))",
		},
		{
			name:     "variables",
			input:    "var a:int = 1, [b, c] = d;\nconst e = 2",
			expected: "(Program (VariableDefinition var (VariableBinding (NamePattern a (Identifier int)) (NumberLiteral 1)) (VariableBinding (ArrayPattern (NamePattern b) (NamePattern c)) (Identifier d))) (VariableDefinition const (VariableBinding (NamePattern e) (NumberLiteral 2))))",
		},
		{
			name:     "package and imports",
			input:    "package a.b {\n  import flash.display.*;\n  import m = x.y.Z;\n}",
			expected: "(Program (PackageDefinition a.b (Block (ImportDirective flash.display.*) (ImportDirective m = x.y.Z))))",
		},
		{
			name:     "class",
			input:    "public class A extends B implements I, J {\n  private var x:int;\n  public function A() { super(); }\n  public function get y():int { return x }\n}",
			expected: "(Program (ClassDefinition A (ReservedNamespace public) (Identifier B) (Identifier I) (Identifier J) (Block (VariableDefinition var (ReservedNamespace private) (VariableBinding (NamePattern x (Identifier int)))) (FunctionDefinition constructor A (ReservedNamespace public) (FunctionCommon (Block (SuperStatement)))) (FunctionDefinition getter y (ReservedNamespace public) (FunctionCommon (Identifier int) (Block (ReturnStatement (Identifier x))))))))",
		},
		{
			name:     "interface",
			input:    "interface I extends J {\n  function f(a, b = 1, ...rest);\n}",
			expected: "(Program (InterfaceDefinition I (Identifier J) (Block (FunctionDefinition f (FunctionCommon (Parameter (NamePattern a)) (Parameter optional (NamePattern b) (NumberLiteral 1)) (Parameter rest (NamePattern rest)))))))",
		},
		{
			name:     "enum",
			input:    "enum Color : uint {\n  const RED = 1\n}",
			expected: "(Program (EnumDefinition Color (Identifier uint) (Block (VariableDefinition const (VariableBinding (NamePattern RED) (NumberLiteral 1))))))",
		},
		{
			name:     "namespace and use",
			input:    "namespace ns = \"http://x\"\nuse namespace ns",
			expected: "(Program (NamespaceDefinition ns (StringLiteral \"http://x\")) (UseNamespaceDirective (Identifier ns)))",
		},
		{
			name:     "type alias",
			input:    "type Pair.<T> = [T, T]",
			expected: "(Program (TypeDefinition Pair (Identifier T) (TupleType (Identifier T) (Identifier T))))",
		},
		{
			name:     "metadata",
			input:    "[Event(name=\"change\", \"x\")]\n[Bindable]\npublic var v;",
			expected: "(Program (VariableDefinition var (Metadata Event (StringLiteral \"change\") (StringLiteral \"x\")) (Metadata Bindable) (ReservedNamespace public) (VariableBinding (NamePattern v))))",
		},
		{
			name:     "bracket statement is not metadata",
			input:    "[a, b].length",
			expected: "(Program (ExpressionStatement (Dot (ArrayLiteral (Identifier a) (Identifier b)) (Identifier length))))",
		},
		{
			name:     "for loops",
			input:    "for (var i = 0; i < n; i++) {}\nfor each (var v in o) {}\nfor (k in o) ;",
			expected: "(Program (ForStatement (VariableDefinition var (VariableBinding (NamePattern i) (NumberLiteral 0))) (Binary < (Identifier i) (Identifier n)) (Unary x++ (Identifier i)) (Block)) (ForInStatement each (VariableDefinition var (VariableBinding (NamePattern v))) (Identifier o) (Block)) (ForInStatement (Identifier k) (Identifier o) (EmptyStatement)))",
		},
		{
			name:     "if else and switch",
			input:    "if (a) b(); else { c() }\nswitch (x) { case 1: y(); break; default: z() }",
			expected: "(Program (IfStatement (Identifier a) (ExpressionStatement (Call (Identifier b))) (Block (ExpressionStatement (Call (Identifier c))))) (SwitchStatement (Identifier x) (Case (NumberLiteral 1) (ExpressionStatement (Call (Identifier y))) (BreakStatement)) (Case (ExpressionStatement (Call (Identifier z))))))",
		},
		{
			name:     "switch type",
			input:    "switch type (v) { case (s:String) {} default {} }",
			expected: "(Program (SwitchTypeStatement (Identifier v) (TypeCase (NamePattern s (Identifier String)) (Block)) (TypeCase (Block))))",
		},
		{
			name:     "try",
			input:    "try { f() } catch (e:Error) { } finally { g() }",
			expected: "(Program (TryStatement (Block (ExpressionStatement (Call (Identifier f)))) (CatchClause (NamePattern e (Identifier Error)) (Block)) (Block (ExpressionStatement (Call (Identifier g))))))",
		},
		{
			name:     "do while",
			input:    "do x++; while (x < 3)",
			expected: "(Program (DoStatement (ExpressionStatement (Unary x++ (Identifier x))) (Binary < (Identifier x) (NumberLiteral 3))))",
		},
		{
			name:     "default xml namespace",
			input:    "default xml namespace = ns",
			expected: "(Program (DefaultXMLNamespaceStatement (Identifier ns)))",
		},
		{
			name:     "labels",
			input:    "outer: while (true) { for (;;) { continue outer } }",
			expected: "(Program (LabeledStatement outer (WhileStatement (BooleanLiteral true) (Block (ForStatement (Block (ContinueStatement outer)))))))",
		},
		{
			name:     "is with binding",
			input:    "if (v is s:String) s",
			expected: "(Program (IfStatement (TypeOperator is (Identifier v) (NamePattern s (Identifier String))) (ExpressionStatement (Identifier s))))",
		},
		{
			name:     "nullable types",
			input:    "var a:?int, b:int?, c:Object!",
			expected: "(Program (VariableDefinition var (VariableBinding (NamePattern a (NullableType (Identifier int)))) (VariableBinding (NamePattern b (NullableType (Identifier int)))) (VariableBinding (NamePattern c (NonNullableType (Identifier Object))))))",
		},
		{
			name:     "conditional after as",
			input:    "x as T ? a : b",
			expected: "(Program (ExpressionStatement (Ternary (TypeOperator as (Identifier x) (Identifier T)) (Identifier a) (Identifier b))))",
		},
		{
			name:     "expression bodied function",
			input:    "function sq(x) x * x",
			expected: "(Program (FunctionDefinition sq (FunctionCommon (Parameter (NamePattern x)) (Binary * (Identifier x) (Identifier x)))))",
		},
		{
			name:     "generic function",
			input:    "function id.<T>(v:T):T { return v }",
			expected: "(Program (FunctionDefinition id (FunctionCommon (Identifier T) (Parameter (NamePattern v (Identifier T))) (Identifier T) (Block (ReturnStatement (Identifier v))))))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program, src := Parse(tt.input)
			require.Empty(t, src.Diagnostics, "diagnostics: %v", src.Diagnostics)
			assert.Equal(t, tt.expected, Sexpr(program))
		})
	}
}

func TestParseDiagnostics(t *testing.T) {
	tests := []struct {
		name  string
		input string
		codes []ErrorCode
	}{
		{"break outside loop", "break;", []ErrorCode{ErrIllegalBreak}},
		{"continue outside loop", "continue", []ErrorCode{ErrIllegalContinue}},
		{"undefined label", "while (a) { break missing }", []ErrorCode{ErrUndefinedLabel}},
		{"continue to block label", "L: { while (a) { continue L } }", []ErrorCode{ErrIllegalContinue}},
		{"break to block label", "L: { break L }", []ErrorCode{ErrIllegalBreak}},
		{"break to if label", "M: if (a) { break M }", []ErrorCode{ErrIllegalBreak}},
		{"break to labels off loops", "L: { break L }\nM: if (a) { break M }", []ErrorCode{ErrIllegalBreak, ErrIllegalBreak}},
		{"duplicate label", "L: L: ;", []ErrorCode{ErrDuplicateLabel}},
		{"return outside function", "return 1", []ErrorCode{ErrUnallowedHere}},
		{"attribute without definition", "a b", []ErrorCode{ErrDuplicateNamespaceAttribute, ErrExpectingBefore}},
		{"statements on one line", "a() b()", []ErrorCode{ErrExpectingBefore}},
		{"omitted body", "class A {\n  public static function f():void;\n}", []ErrorCode{ErrFunctionOmitsBody}},
		{"body in interface", "interface I {\n  function f() {}\n}", []ErrorCode{ErrFunctionMustNotSpecifyBody}},
		{"native with body", "class A {\n  native function f() {}\n}", []ErrorCode{ErrFunctionMustNotSpecifyBody}},
		{"getter with parameter", "class A {\n  function get x(v) { }\n}", []ErrorCode{ErrGetterParameters}},
		{"setter without parameter", "class A {\n  function set x() { }\n}", []ErrorCode{ErrSetterParameters}},
		{"rest not last", "function f(...a, b) {}", []ErrorCode{ErrRestParameterNotLast}},
		{"duplicate attribute", "class A {\n  static static var x;\n}", []ErrorCode{ErrDuplicateAttribute}},
		{"duplicate namespace", "class A {\n  public private var x;\n}", []ErrorCode{ErrDuplicateNamespaceAttribute}},
		{"static outside class", "static var x;", []ErrorCode{ErrUnallowedAttribute}},
		{"nested class", "function f() {\n  class B {}\n}", []ErrorCode{ErrUnallowedHere}},
		{"late package", "var a;\npackage p {}", []ErrorCode{ErrUnallowedHere}},
		{"for-in initializer", "for (var k = 1 in o) {}", []ErrorCode{ErrUnallowedHere}},
		{"try without handler", "try {}", []ErrorCode{ErrExpectingBefore}},
		{"bad pattern", "var 1 = a;", []ErrorCode{ErrInvalidDestructuringTarget, ErrExpectingBefore}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, src := Parse(tt.input)
			assert.Equal(t, tt.codes, diagnosticCodes(src), "diagnostics: %v", src.Diagnostics)
			assert.True(t, src.Invalidated())
		})
	}
}

func TestNativeFunctionAttributes(t *testing.T) {
	program, src := Parse("class A {\n  public static native function f():void;\n}")
	require.Empty(t, src.Diagnostics, "diagnostics: %v", src.Diagnostics)

	class := program.Directives[0].(*ClassDefinition)
	require.Len(t, class.Block.Directives, 1)
	fn := class.Block.Directives[0].(*FunctionDefinition)

	assert.Equal(t, "f", fn.Name)
	assert.Equal(t, Modifiers{Static: true, Native: true}, fn.Modifiers)
	assert.Equal(t, []string{"static", "native"}, fn.Modifiers.Names())
	ns, ok := fn.Access.(*ReservedNamespace)
	require.True(t, ok)
	assert.Equal(t, "public", ns.Name)
	assert.Nil(t, fn.Common.Body)
	assert.IsType(t, &VoidType{}, fn.Common.Result)
	assert.Equal(t, "f", src.TextOf(fn.NameSpan))
}

func TestFunctionBodyRule(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		hasBody bool
	}{
		{"block", "native function f() {}", true},
		{"semicolon", "native function f();", false},
		{"next line", "native function f()\nx()", false},
		{"indented expression", "native function f()\n    x()", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program, src := Parse(tt.input)
			require.NotEmpty(t, program.Directives)
			fn := program.Directives[0].(*FunctionDefinition)
			assert.Equal(t, tt.hasBody, fn.Common.Body != nil)
			if tt.hasBody {
				assert.Equal(t, []ErrorCode{ErrFunctionMustNotSpecifyBody}, diagnosticCodes(src))
			} else {
				assert.Empty(t, src.Diagnostics)
			}
		})
	}
}

func TestYieldAndAwaitFlags(t *testing.T) {
	program, src := Parse("function g() {\n  yield 1\n  var f = function () { await x }\n}\nyield(2)")
	require.Empty(t, src.Diagnostics, "diagnostics: %v", src.Diagnostics)
	require.Len(t, program.Directives, 2)

	g := program.Directives[0].(*FunctionDefinition)
	assert.True(t, g.Common.Yields)
	assert.False(t, g.Common.Awaits)

	body := g.Common.Body.(*Block)
	inner := body.Directives[1].(*VariableDefinition).Bindings[0].Init.(*FunctionExpression)
	assert.True(t, inner.Common.Awaits)
	assert.False(t, inner.Common.Yields)

	call := program.Directives[1].(*ExpressionStatement).Expr
	assert.IsType(t, &Call{}, call)
}

func TestBreakTargets(t *testing.T) {
	program, src := Parse("L: while (a) {\n  switch (b) { case 1: break; default: break L }\n}")
	require.Empty(t, src.Diagnostics, "diagnostics: %v", src.Diagnostics)

	labeled := program.Directives[0].(*LabeledStatement)
	loop := labeled.Body.(*WhileStatement)
	sw := loop.Body.(*Block).Directives[0].(*SwitchStatement)

	plain := sw.Cases[0].Directives[0].(*BreakStatement)
	assert.Same(t, sw, plain.Target)

	labeledBreak := sw.Cases[1].Directives[0].(*BreakStatement)
	assert.Same(t, loop, labeledBreak.Target)
}

func TestRecovery(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		directives int
		codes      []ErrorCode
	}{
		{"unclosed paren", "var a = (1;\nvar b = 2", 1, []ErrorCode{ErrExpectingBefore}},
		{"stray closers", "}}}", 0, []ErrorCode{ErrExpectingBefore, ErrExpectingBefore, ErrExpectingBefore}},
		{"error inside block", "function f() {\n  x = ;\n  y()\n}\nz()", 2, []ErrorCode{ErrExpectingBefore}},
		{"unterminated string", "var s = \"abc\nvar t = 1", 1, []ErrorCode{ErrUnterminatedString}},
		{"end of input", "if (a", 0, []ErrorCode{ErrExpectingBefore}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program, src := Parse(tt.input)
			assert.Len(t, program.Directives, tt.directives)
			assert.Equal(t, tt.codes, diagnosticCodes(src), "diagnostics: %v", src.Diagnostics)
			assert.True(t, src.Invalidated())
		})
	}
}

func TestSnapshotRestore(t *testing.T) {
	const input = "[a, 1] = x; y"
	p := NewParser(NewSource(input, ""))
	p.start()

	st := p.Snapshot()
	_, err := p.parsePattern()
	require.Error(t, err)
	require.NotEmpty(t, p.source.Diagnostics)

	p.Restore(st)
	assert.Empty(t, p.source.Diagnostics)
	assert.False(t, p.source.Invalidated())
	assert.Empty(t, p.locations)
	assert.Empty(t, p.delimiters)

	var replayed []Token
	for {
		replayed = append(replayed, p.tok())
		if p.check(TokenEOF) {
			break
		}
		require.NoError(t, p.next())
	}
	assert.Equal(t, Tokens(NewSource(input, "")), replayed)
}

func TestSnapshotRestoresFunctionFlags(t *testing.T) {
	p := NewParser(NewSource("yield", ""))
	p.start()
	p.pushFunction()

	st := p.Snapshot()
	_, err := p.parseAssignmentExpression()
	require.NoError(t, err)
	assert.True(t, p.functionFlags[0].yields)

	p.Restore(st)
	assert.False(t, p.functionFlags[0].yields)
}

func TestSpanCoverage(t *testing.T) {
	const input = `package p {
  import a.b.*;
  [Meta(k = "v")]
  public class C extends B {
    private static const N:int = 1 << 2;
    public function C(x:int, ...rest) { super(x); this.x = x ?? 0 }
    public function get v():Vector.<int> { return new Vector.<int>() }
    function f() {
      var [a, {b}] = g(), re = /x+/g;
      for each (var i in list) { if (i is Number) continue; else break }
      var doc = <root id={a}><item>t</item></root>;
      return doc..item.(@id == "1");
    }
  }
}
`
	program, src := Parse(input)
	require.Empty(t, src.Diagnostics, "diagnostics: %v", src.Diagnostics)

	var check func(n Node, parent Span)
	check = func(n Node, parent Span) {
		loc := n.Location()
		assert.LessOrEqual(t, loc.Start, loc.End, "%s", Label(n))
		assert.GreaterOrEqual(t, loc.Start, parent.Start, "%s starts before its parent", Label(n))
		assert.LessOrEqual(t, loc.End, parent.End, "%s ends after its parent", Label(n))
		if _, isText := n.(*XMLText); !isText {
			text := src.TextOf(loc)
			assert.Equal(t, strings.TrimSpace(text), text, "%s has untrimmed span %q", Label(n), text)
		}
		for _, child := range Children(n) {
			check(child, loc)
		}
	}
	check(program, Span{Start: 0, End: len(src.Text)})
}

func TestSpans(t *testing.T) {
	program, src := Parse("x = a.b(1) + c[2];\nvar v:int = 3")
	require.Empty(t, src.Diagnostics)

	stmt := program.Directives[0].(*ExpressionStatement)
	assert.Equal(t, "x = a.b(1) + c[2];", src.TextOf(stmt.Location()))
	assign := stmt.Expr.(*Assignment)
	assert.Equal(t, "x = a.b(1) + c[2]", src.TextOf(assign.Location()))
	sum := assign.Right.(*Binary)
	assert.Equal(t, "a.b(1)", src.TextOf(sum.Left.Location()))
	assert.Equal(t, "c[2]", src.TextOf(sum.Right.Location()))

	vd := program.Directives[1].(*VariableDefinition)
	assert.Equal(t, "var v:int = 3", src.TextOf(vd.Location()))
	assert.Equal(t, "v", src.TextOf(vd.NameSpan))
	assert.Equal(t, 2, vd.Location().FirstLine)
}

func firstOfKind(n Node, kind NodeKind) Node {
	var found Node
	Walk(n, func(n Node) bool {
		if found == nil && n.Kind() == kind {
			found = n
		}
		return found == nil
	})
	return found
}

func TestNodeSpans(t *testing.T) {
	tests := []struct {
		input     string
		kind      NodeKind
		text      string
		firstLine int
		lastLine  int
	}{
		{"x = a.b(1) + c[2];", KindCall, "a.b(1)", 1, 1},
		{"x = a.b(1) + c[2];", KindBrackets, "c[2]", 1, 1},
		{"x = a.b(1) + c[2];", KindBinary, "a.b(1) + c[2]", 1, 1},
		{"x = a ? b : c;", KindTernary, "a ? b : c", 1, 1},
		{"x = a ? b : c;", KindExpressionStatement, "x = a ? b : c;", 1, 1},
		{"a++", KindUnary, "a++", 1, 1},
		{"new A(1)", KindNew, "new A(1)", 1, 1},
		{"v.<int>", KindTypeArguments, "v.<int>", 1, 1},
		{"x = /x+/g", KindRegExpLiteral, "/x+/g", 1, 1},
		{"[a, b] = [1, 2]", KindArrayPattern, "[a, b]", 1, 1},
		{"if (a) b(); else { c }", KindIfStatement, "if (a) b(); else { c }", 1, 1},
		{"if (a) b(); else { c }", KindBlock, "{ c }", 1, 1},
		{"if (a)\n  b()", KindIfStatement, "if (a)\n  b()", 1, 2},
		{"L: while (a) {}", KindLabeledStatement, "L: while (a) {}", 1, 1},
		{"L: while (a) {}", KindWhileStatement, "while (a) {}", 1, 1},
		{"x = <a b=\"1\">{y}</a>", KindXMLElement, "<a b=\"1\">{y}</a>", 1, 1},
		{"class C extends B {\n  var v\n}", KindClassDefinition, "class C extends B {\n  var v\n}", 1, 3},
		{"class C extends B {\n  var v\n}", KindVariableDefinition, "var v", 2, 2},
		{"x = 1\ny = 2", KindAssignment, "x = 1", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.input+" "+tt.kind.String(), func(t *testing.T) {
			program, src := Parse(tt.input)
			require.Empty(t, src.Diagnostics, "diagnostics: %v", src.Diagnostics)
			n := firstOfKind(program, tt.kind)
			require.NotNil(t, n, "no %s node", tt.kind)

			loc := n.Location()
			start := strings.Index(tt.input, tt.text)
			require.GreaterOrEqual(t, start, 0)
			assert.Equal(t, start, loc.Start)
			assert.Equal(t, start+len(tt.text), loc.End)
			assert.Equal(t, tt.firstLine, loc.FirstLine)
			assert.Equal(t, tt.lastLine, loc.LastLine)
		})
	}
}

func TestMetadataHelpers(t *testing.T) {
	program, src := Parse("[A] [B(x = 1)] [A(2)] var v;")
	require.Empty(t, src.Diagnostics, "diagnostics: %v", src.Diagnostics)

	vd := program.Directives[0].(*VariableDefinition)
	require.Len(t, vd.Metadata, 3)

	b := FindMetadata(vd.Metadata, "B")
	require.NotNil(t, b)
	require.Len(t, b.Entries, 1)
	assert.Equal(t, "x", b.Entries[0].Key)
	assert.Nil(t, FindMetadata(vd.Metadata, "C"))

	first := FindMetadata(vd.Metadata, "A")
	rest := RemoveMetadata(vd.Metadata, first)
	require.Len(t, rest, 2)
	assert.Equal(t, "A", FindMetadata(rest, "A").Name)
	assert.Len(t, FindMetadata(rest, "A").Entries, 1)
	assert.Len(t, vd.Metadata, 3)
}
