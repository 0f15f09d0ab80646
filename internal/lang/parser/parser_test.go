// File: parser_test.go
// Title: gwent Parser Unit Tests
// Description: Tests for precedence, declarations, statements, for-loop
//              desugaring, error recovery and limits.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-15
// Modified: 2026-10-15
//
// Change History:
// - 2026-10-15 v0.2.0: Initial test suite

package parser

import (
	"strings"
	"testing"

	gwerror "github.com/msto63/gwent/internal/core/error"
	"github.com/msto63/gwent/internal/lang/ast"
	"github.com/msto63/gwent/internal/lang/lexer"
	"github.com/msto63/gwent/internal/lang/printer"
	"github.com/msto63/gwent/internal/lang/token"
)

func parseSource(t *testing.T, src string, opts Options) ([]ast.Stmt, []*ParseError) {
	t.Helper()
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize(%q) failed: %v", src, err)
	}
	return New(tokens, opts).Parse()
}

func mustParse(t *testing.T, src string) []ast.Stmt {
	t.Helper()
	stmts, errs := parseSource(t, src, Options{})
	if len(errs) > 0 {
		t.Fatalf("Parse(%q) failed: %v", src, errs[0])
	}
	return stmts
}

func TestInvalidAssignmentTarget(t *testing.T) {
	stmts, errs := parseSource(t, "1 = 2;", Options{})

	if len(stmts) != 0 {
		t.Errorf("Expected no statements, got %d", len(stmts))
	}
	if len(errs) != 1 {
		t.Fatalf("Expected 1 error, got %d", len(errs))
	}
	if errs[0].Code != gwerror.CodeParseInvalidTarget {
		t.Errorf("Expected %s, got %s", gwerror.CodeParseInvalidTarget, errs[0].Code)
	}
	if errs[0].Message != "Invalid assignment target." {
		t.Errorf("Unexpected message: %q", errs[0].Message)
	}
	if errs[0].Token.Kind != token.Assign || errs[0].Token.Column != 3 {
		t.Errorf("Expected error at '=' column 3, got %v", errs[0].Token)
	}
}

func TestRecoveryCollectsMultipleErrors(t *testing.T) {
	stmts, errs := parseSource(t, "int = 1; int b = 2; 1 = 2; int c = 3;", Options{})

	if len(errs) != 2 {
		t.Fatalf("Expected 2 errors, got %d: %v", len(errs), errs)
	}
	if errs[0].Code != gwerror.CodeParseExpectedToken || errs[0].Message != "Expect variable name." {
		t.Errorf("Unexpected first error: %v", errs[0])
	}
	if errs[1].Code != gwerror.CodeParseInvalidTarget {
		t.Errorf("Unexpected second error: %v", errs[1])
	}
	if len(stmts) != 2 {
		t.Fatalf("Expected 2 surviving declarations, got %d", len(stmts))
	}
	if got := printer.Program(stmts); got != "int b = 2;\nint c = 3;" {
		t.Errorf("Unexpected surviving program: %q", got)
	}
}

func TestPrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3;", "(1 + (2 * 3));"},
		{"1 - 2 - 3;", "((1 - 2) - 3);"},
		{"a = b = 1;", "a = b = 1;"},
		{"a || b && c;", "(a || (b && c));"},
		{"1 < 2 == true;", "((1 < 2) == true);"},
		{"!-x;", "(!(-x));"},
		{"c ? 1 : d ? 2 : 3;", "(c ? 1 : (d ? 2 : 3));"},
		{"f(1, 2)(3);", "f(1, 2)(3);"},
		{"((1 + 2)) * 3;", "(((1 + 2)) * 3);"},
		{"a[1 + 1] = 2;", "a[(1 + 1)] = 2;"},
		{"x += 2;", "x = (x + 2);"},
		{"x %= 2;", "x = (x % 2);"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			stmts := mustParse(t, tt.src)
			if got := printer.Program(stmts); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestLogicalNodes(t *testing.T) {
	stmts := mustParse(t, "a && b;")
	es := stmts[0].(*ast.ExprStmt)
	if _, ok := es.Expression.(*ast.Logical); !ok {
		t.Errorf("Expected Logical node, got %T", es.Expression)
	}
}

func TestLiteralKinds(t *testing.T) {
	stmts := mustParse(t, `f(1, 0x10, 0b11, 1.5, "s", 'c', true, false, null);`)
	call := stmts[0].(*ast.ExprStmt).Expression.(*ast.Call)

	want := []interface{}{int64(1), int64(16), int64(3), 1.5, "s", 'c', true, false, nil}
	if len(call.Arguments) != len(want) {
		t.Fatalf("Expected %d arguments, got %d", len(want), len(call.Arguments))
	}
	for i, arg := range call.Arguments {
		lit, ok := arg.(*ast.Literal)
		if !ok {
			t.Fatalf("Argument %d: expected literal, got %T", i, arg)
		}
		if lit.Value != want[i] {
			t.Errorf("Argument %d: expected %v, got %v", i, want[i], lit.Value)
		}
	}
}

func TestDeclarationsWithoutInitializer(t *testing.T) {
	stmts := mustParse(t, "int a;")
	decl := stmts[0].(*ast.VarDecl)
	lit, ok := decl.Initializer.(*ast.Literal)
	if !ok || lit.Value != nil {
		t.Errorf("Expected null literal initializer, got %#v", decl.Initializer)
	}
}

func TestFunctionDeclaration(t *testing.T) {
	stmts := mustParse(t, "fun int add(int a, int b) { return a + b; }")
	fn, ok := stmts[0].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("Expected FunctionDecl, got %T", stmts[0])
	}
	if fn.ReturnType == nil || fn.ReturnType.Lexeme != "int" {
		t.Errorf("Expected return type int, got %v", fn.ReturnType)
	}
	if len(fn.Params) != 2 || fn.Params[1].Name.Lexeme != "b" {
		t.Errorf("Unexpected params: %v", fn.Params)
	}

	stmts = mustParse(t, "fun greet() { }")
	if fn := stmts[0].(*ast.FunctionDecl); fn.ReturnType != nil {
		t.Errorf("Expected no return type, got %v", fn.ReturnType)
	}
}

func TestLambdaIsAnExpression(t *testing.T) {
	stmts := mustParse(t, "fun (int x) { return x; }(1);")
	call, ok := stmts[0].(*ast.ExprStmt).Expression.(*ast.Call)
	if !ok {
		t.Fatalf("Expected call expression, got %T", stmts[0].(*ast.ExprStmt).Expression)
	}
	if _, ok := call.Callee.(*ast.Lambda); !ok {
		t.Errorf("Expected lambda callee, got %T", call.Callee)
	}
}

func TestIfWithoutElseGetsEmptyBlock(t *testing.T) {
	stmts := mustParse(t, "if (x) y = 1;")
	ifStmt := stmts[0].(*ast.If)
	block, ok := ifStmt.Else.(*ast.Block)
	if !ok || len(block.Statements) != 0 {
		t.Errorf("Expected empty else block, got %#v", ifStmt.Else)
	}
}

func TestForDesugaring(t *testing.T) {
	desugared := mustParse(t, "for (int i=0; i<3; i=i+1) x=x+1;")
	handWritten := mustParse(t, "{ int i=0; while (i<3) { x=x+1; i=i+1; } }")

	if len(desugared) != 1 {
		t.Fatalf("Expected one statement, got %d", len(desugared))
	}
	outer, ok := desugared[0].(*ast.Block)
	if !ok {
		t.Fatalf("Expected Block, got %T", desugared[0])
	}
	if _, ok := outer.Statements[0].(*ast.VarDecl); !ok {
		t.Errorf("Expected VarDecl first, got %T", outer.Statements[0])
	}
	loop, ok := outer.Statements[1].(*ast.While)
	if !ok {
		t.Fatalf("Expected While, got %T", outer.Statements[1])
	}
	if body, ok := loop.Body.(*ast.Block); !ok || len(body.Statements) != 2 {
		t.Errorf("Expected loop body block with 2 statements, got %#v", loop.Body)
	}

	if got, want := printer.Program(desugared), printer.Program(handWritten); got != want {
		t.Errorf("Desugared form differs from hand-written form:\n%s\nvs\n%s", got, want)
	}

	ast.Inspect(outer, func(n ast.Node) bool {
		if _, isFor := n.(*ast.For); isFor {
			t.Error("Expected no For node after parsing")
		}
		return true
	})
}

func TestForWithEmptyClauses(t *testing.T) {
	stmts := mustParse(t, "for (;;) break;")
	loop, ok := stmts[0].(*ast.While)
	if !ok {
		t.Fatalf("Expected bare While, got %T", stmts[0])
	}
	if lit, ok := loop.Condition.(*ast.Literal); !ok || lit.Value != true {
		t.Errorf("Expected literal true condition, got %#v", loop.Condition)
	}
	if _, ok := loop.Body.(*ast.Break); !ok {
		t.Errorf("Expected break body, got %T", loop.Body)
	}
}

func TestSwitchStatement(t *testing.T) {
	stmts := mustParse(t, "switch (x) { case 1: y = 1; break; case 2: y = 2; default: y = 0; }")
	sw, ok := stmts[0].(*ast.Switch)
	if !ok {
		t.Fatalf("Expected Switch, got %T", stmts[0])
	}
	if len(sw.Cases) != 2 {
		t.Fatalf("Expected 2 cases, got %d", len(sw.Cases))
	}
	if len(sw.Cases[0].Body.Statements) != 2 {
		t.Errorf("Expected 2 statements in first case, got %d", len(sw.Cases[0].Body.Statements))
	}
	if sw.Default == nil || len(sw.Default.Statements) != 1 {
		t.Errorf("Expected default arm with 1 statement, got %#v", sw.Default)
	}
}

func TestTooManyArgumentsIsSoft(t *testing.T) {
	args := make([]string, 256)
	for i := range args {
		args[i] = "1"
	}
	stmts, errs := parseSource(t, "f("+strings.Join(args, ", ")+");", Options{})

	if len(errs) != 1 || errs[0].Code != gwerror.CodeParseTooManyArgs {
		t.Fatalf("Expected one too-many-arguments error, got %v", errs)
	}
	if len(stmts) != 1 {
		t.Errorf("Expected parsing to continue, got %d statements", len(stmts))
	}
}

func TestMaxDepth(t *testing.T) {
	src := strings.Repeat("(", 50) + "1" + strings.Repeat(")", 50) + ";"
	_, errs := parseSource(t, src, Options{MaxDepth: 20})
	if len(errs) == 0 || errs[0].Code != gwerror.CodeParseTooDeep {
		t.Fatalf("Expected %s, got %v", gwerror.CodeParseTooDeep, errs)
	}

	if _, errs := parseSource(t, src, Options{}); len(errs) != 0 {
		t.Errorf("Expected default depth to accept 50 levels, got %v", errs)
	}
}

func TestMissingEOFIsAppended(t *testing.T) {
	tokens := []token.Token{
		token.New(token.ID, "x", nil, 1, 1),
		token.New(token.Semicolon, ";", nil, 1, 2),
	}
	stmts, errs := New(tokens, Options{}).Parse()
	if len(errs) != 0 || len(stmts) != 1 {
		t.Errorf("Expected one statement and no errors, got %d/%v", len(stmts), errs)
	}
}

func TestParseErrorFormatting(t *testing.T) {
	_, errs := parseSource(t, "int x = 1", Options{})
	if len(errs) != 1 {
		t.Fatalf("Expected 1 error, got %d", len(errs))
	}
	msg := errs[0].Error()
	if !strings.Contains(msg, "Expect ';' after variable declaration.") || !strings.Contains(msg, "at end") {
		t.Errorf("Unexpected message: %s", msg)
	}

	gwErr := errs[0].ToError()
	if gwErr.Stage() != gwerror.StageParse {
		t.Errorf("Expected parse stage, got %v", gwErr.Stage())
	}
}

func TestDuplicateErrorsAreDropped(t *testing.T) {
	tok := token.New(token.ID, "x", nil, 4, 2)
	p := New([]token.Token{tok}, Options{})

	p.report(p.errorAt(tok, gwerror.CodeParseExpectedToken, "Expect ';'."))
	p.report(p.errorAt(tok, gwerror.CodeParseExpectedToken, "Expect ';'."))
	p.report(p.errorAt(tok, gwerror.CodeParseExpectedExpr, "Expect expression."))

	if len(p.errors) != 2 {
		t.Errorf("Expected 2 errors after dropping the duplicate, got %d", len(p.errors))
	}
}
