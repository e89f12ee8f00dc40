package s2l

import (
	"strings"
	"testing"
)

func parseSource(t *testing.T, source string) *Program {
	t.Helper()
	tokens := NewLexer(source).Tokenize()
	prog, err := NewParser(tokens).Parse()
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return prog
}

func parseError(t *testing.T, source string) *ParseError {
	t.Helper()
	tokens := NewLexer(source).Tokenize()
	_, err := NewParser(tokens).Parse()
	if err == nil {
		t.Fatal("expected a parse error")
	}
	perr, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	return perr
}

func firstFunction(t *testing.T, prog *Program) *FunctionDecl {
	t.Helper()
	for _, d := range prog.Decls {
		if fn, ok := d.(*FunctionDecl); ok {
			return fn
		}
	}
	t.Fatal("no function declaration found")
	return nil
}

func TestParseFunctionModernForm(t *testing.T) {
	prog := parseSource(t, "fn main(uv: vec2) vec4 { return uv; }")

	fn := firstFunction(t, prog)
	if fn.Name != "main" {
		t.Errorf("expected name %q, got %q", "main", fn.Name)
	}
	if fn.ReturnType != "vec4" {
		t.Errorf("expected return type %q, got %q", "vec4", fn.ReturnType)
	}
	if len(fn.Params) != 1 {
		t.Fatalf("expected 1 parameter, got %d", len(fn.Params))
	}
	if fn.Params[0].Name != "uv" || fn.Params[0].Type != "vec2" {
		t.Errorf("unexpected parameter: %+v", fn.Params[0])
	}
}

func TestParseFunctionModernFormDefaultsToVoid(t *testing.T) {
	prog := parseSource(t, "fn setup() { }")

	fn := firstFunction(t, prog)
	if fn.ReturnType != "void" {
		t.Errorf("expected return type %q, got %q", "void", fn.ReturnType)
	}
}

func TestParseFunctionLegacyForm(t *testing.T) {
	prog := parseSource(t, "vec4 shade(vec2 uv, float t) { return uv; }")

	fn := firstFunction(t, prog)
	if fn.Name != "shade" {
		t.Errorf("expected name %q, got %q", "shade", fn.Name)
	}
	if fn.ReturnType != "vec4" {
		t.Errorf("expected return type %q, got %q", "vec4", fn.ReturnType)
	}
	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 parameters, got %d", len(fn.Params))
	}
	if fn.Params[1].Name != "t" || fn.Params[1].Type != "float" {
		t.Errorf("unexpected parameter: %+v", fn.Params[1])
	}
}

func TestParseParameterQualifiersSkipped(t *testing.T) {
	prog := parseSource(t, "void f(in vec2 uv, out float d) { }")

	fn := firstFunction(t, prog)
	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 parameters, got %d", len(fn.Params))
	}
	if fn.Params[0].Type != "vec2" || fn.Params[0].Name != "uv" {
		t.Errorf("unexpected parameter: %+v", fn.Params[0])
	}
	if fn.Params[1].Type != "float" || fn.Params[1].Name != "d" {
		t.Errorf("unexpected parameter: %+v", fn.Params[1])
	}
}

func TestParseStruct(t *testing.T) {
	prog := parseSource(t, "struct Light { vec3 position; float intensity; };")

	st, ok := prog.Decls[0].(*StructDecl)
	if !ok {
		t.Fatalf("expected *StructDecl, got %T", prog.Decls[0])
	}
	if st.Name != "Light" {
		t.Errorf("expected name %q, got %q", "Light", st.Name)
	}
	if len(st.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(st.Fields))
	}
	if st.Fields[0].Type != "vec3" || st.Fields[0].Name != "position" {
		t.Errorf("unexpected field: %+v", st.Fields[0])
	}
}

func TestParseStructRequiresTrailingSemicolon(t *testing.T) {
	perr := parseError(t, "struct Light { vec3 position; }")
	if !strings.Contains(perr.Message, ";") {
		t.Errorf("expected message about missing semicolon, got %q", perr.Message)
	}
}

func TestParseDocComments(t *testing.T) {
	prog := parseSource(t, `
/// Computes the light falloff.
/// Distance is in world units.
fn falloff(d: float) float { return d; }

fn undocumented() { }
`)

	fn, ok := prog.Decls[0].(*FunctionDecl)
	if !ok {
		t.Fatalf("expected *FunctionDecl, got %T", prog.Decls[0])
	}
	want := "Computes the light falloff.\nDistance is in world units."
	if fn.Doc != want {
		t.Errorf("expected doc %q, got %q", want, fn.Doc)
	}

	// Docs attach to the immediately following declaration only.
	second := prog.Decls[1].(*FunctionDecl)
	if second.Doc != "" {
		t.Errorf("doc leaked onto next declaration: %q", second.Doc)
	}
}

func TestParsePrecedence(t *testing.T) {
	prog := parseSource(t, "fn f() float { return 1 + 2 * 3; }")

	ret := firstFunction(t, prog).Body.Statements[0].(*ReturnStmt)
	add, ok := ret.Value.(*BinaryExpr)
	if !ok {
		t.Fatalf("expected *BinaryExpr, got %T", ret.Value)
	}
	if add.Op != OpAdd {
		t.Fatalf("expected + at the root, got %s", add.Op)
	}
	mul, ok := add.Right.(*BinaryExpr)
	if !ok || mul.Op != OpMul {
		t.Fatalf("expected * on the right, got %#v", add.Right)
	}
}

func TestParseComparisonLowerThanAdditive(t *testing.T) {
	prog := parseSource(t, "fn f() float { return a + b < c; }")

	ret := firstFunction(t, prog).Body.Statements[0].(*ReturnStmt)
	cmp := ret.Value.(*BinaryExpr)
	if cmp.Op != OpLess {
		t.Fatalf("expected < at the root, got %s", cmp.Op)
	}
	if left, ok := cmp.Left.(*BinaryExpr); !ok || left.Op != OpAdd {
		t.Errorf("expected + on the left, got %#v", cmp.Left)
	}
}

func TestParseUnaryAndPostfix(t *testing.T) {
	prog := parseSource(t, "fn f() float { return -length(p.xy[0]); }")

	ret := firstFunction(t, prog).Body.Statements[0].(*ReturnStmt)
	neg, ok := ret.Value.(*UnaryExpr)
	if !ok || neg.Op != OpNegate {
		t.Fatalf("expected negation, got %#v", ret.Value)
	}
	call, ok := neg.Operand.(*CallExpr)
	if !ok || call.Func != "length" {
		t.Fatalf("expected call to length, got %#v", neg.Operand)
	}
	idx, ok := call.Args[0].(*IndexExpr)
	if !ok {
		t.Fatalf("expected *IndexExpr argument, got %T", call.Args[0])
	}
	member, ok := idx.Base.(*MemberExpr)
	if !ok || member.Member != "xy" {
		t.Fatalf("expected member access .xy, got %#v", idx.Base)
	}
}

func TestParseDanglingElse(t *testing.T) {
	prog := parseSource(t, `
fn f() {
    if (a) if (b) return 1; else return 2;
}
`)

	outer := firstFunction(t, prog).Body.Statements[0].(*IfStmt)
	if outer.Else != nil {
		t.Fatal("else bound to the outer if")
	}
	inner := outer.Then.(*IfStmt)
	if inner.Else == nil {
		t.Fatal("else did not bind to the nearest if")
	}
}

func TestParseStatementDisambiguation(t *testing.T) {
	prog := parseSource(t, `
fn f() {
    float y = 4.0;
    var x: float = 1.0;
    foo(1);
    a.b = 2;
    x = 3;
}
`)

	stmts := firstFunction(t, prog).Body.Statements
	if len(stmts) != 5 {
		t.Fatalf("expected 5 statements, got %d", len(stmts))
	}
	if v, ok := stmts[0].(*VarDecl); !ok || v.TypeName != "float" || v.Name != "y" {
		t.Errorf("statement 0: expected legacy declaration, got %#v", stmts[0])
	}
	if v, ok := stmts[1].(*VarDecl); !ok || v.TypeName != "float" || v.Name != "x" {
		t.Errorf("statement 1: expected var declaration, got %#v", stmts[1])
	}
	if e, ok := stmts[2].(*ExprStmt); !ok {
		t.Errorf("statement 2: expected expression statement, got %T", stmts[2])
	} else if _, ok := e.Expr.(*CallExpr); !ok {
		t.Errorf("statement 2: expected call, got %T", e.Expr)
	}
	if a, ok := stmts[3].(*AssignStmt); !ok {
		t.Errorf("statement 3: expected assignment, got %T", stmts[3])
	} else if _, ok := a.Target.(*MemberExpr); !ok {
		t.Errorf("statement 3: expected member target, got %T", a.Target)
	}
	if a, ok := stmts[4].(*AssignStmt); !ok {
		t.Errorf("statement 4: expected assignment, got %T", stmts[4])
	} else if id, ok := a.Target.(*Ident); !ok || id.Name != "x" {
		t.Errorf("statement 4: unexpected target %#v", a.Target)
	}
}

func TestParseArrayDeclarations(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"legacy", "fn f() { float k[3] = { 1.0, 2.0, 3.0 }; }"},
		{"var", "fn f() { var k: float[3] = { 1.0, 2.0, 3.0 }; }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := parseSource(t, tt.source)
			arr, ok := firstFunction(t, prog).Body.Statements[0].(*ArrayDecl)
			if !ok {
				t.Fatalf("expected *ArrayDecl, got %T", firstFunction(t, prog).Body.Statements[0])
			}
			if arr.TypeName != "float" || arr.Name != "k" || arr.Size != 3 {
				t.Errorf("unexpected declaration: %+v", arr)
			}
			if len(arr.Values) != 3 {
				t.Errorf("expected 3 initializers, got %d", len(arr.Values))
			}
		})
	}
}

func TestParseForLoop(t *testing.T) {
	prog := parseSource(t, `
fn f() {
    for (float i = 0.0; i < 10.0; i = i + 1.0) {
        if (i > 5.0) break;
    }
}
`)

	loop, ok := firstFunction(t, prog).Body.Statements[0].(*ForStmt)
	if !ok {
		t.Fatalf("expected *ForStmt, got %T", firstFunction(t, prog).Body.Statements[0])
	}
	if _, ok := loop.Init.(*VarDecl); !ok {
		t.Errorf("expected declaration init, got %T", loop.Init)
	}
	if cond, ok := loop.Condition.(*BinaryExpr); !ok || cond.Op != OpLess {
		t.Errorf("unexpected condition: %#v", loop.Condition)
	}
	if _, ok := loop.Increment.(*AssignStmt); !ok {
		t.Errorf("expected assignment increment, got %T", loop.Increment)
	}
}

func TestParseErrorAtEOF(t *testing.T) {
	perr := parseError(t, "fn f() { return foo(1; }")
	if !strings.Contains(perr.Message, "expected )") {
		t.Errorf("unexpected message %q", perr.Message)
	}

	perr = parseError(t, "fn f() { return foo(1")
	if perr.Message != "expected ), got EOF" {
		t.Errorf("unexpected message %q", perr.Message)
	}
}

func TestParseErrorReportsPosition(t *testing.T) {
	perr := parseError(t, "fn f() {\n    return +;\n}")
	if perr.Token.Line != 2 {
		t.Errorf("expected error on line 2, got line %d", perr.Token.Line)
	}
	if !strings.Contains(perr.Error(), "line 2") {
		t.Errorf("position missing from %q", perr.Error())
	}
}

func TestParseCallRequiresIdentifierCallee(t *testing.T) {
	perr := parseError(t, "fn f() { return a.b(1); }")
	if !strings.Contains(perr.Message, "identifier") {
		t.Errorf("unexpected message %q", perr.Message)
	}
}

func TestParseNumericOverflowFallsBackToZero(t *testing.T) {
	prog := parseSource(t, "fn f() int { return 99999999999999999999999999; }")

	ret := firstFunction(t, prog).Body.Statements[0].(*ReturnStmt)
	lit, ok := ret.Value.(*IntLit)
	if !ok {
		t.Fatalf("expected *IntLit, got %T", ret.Value)
	}
	if lit.Value != 0 {
		t.Errorf("expected 0, got %d", lit.Value)
	}
}

func TestFormatWithContext(t *testing.T) {
	source := "fn f() {\n    return +;\n}"
	perr := parseError(t, source)

	out := perr.FormatWithContext(source)
	if !strings.Contains(out, "return +;") {
		t.Errorf("source line missing from context:\n%s", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("caret missing from context:\n%s", out)
	}
}
