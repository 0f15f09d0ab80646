package eval

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	gwerror "github.com/msto63/gwent/internal/core/error"
	gwlog "github.com/msto63/gwent/internal/core/log"
	"github.com/msto63/gwent/internal/lang/ast"
	"github.com/msto63/gwent/internal/lang/lexer"
	"github.com/msto63/gwent/internal/lang/parser"
	"github.com/msto63/gwent/internal/lang/scope"
	"github.com/msto63/gwent/internal/lang/value"
)

func parse(t *testing.T, src string) []ast.Stmt {
	t.Helper()
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	stmts, errs := parser.New(tokens, parser.Options{Logger: gwlog.Discard()}).Parse()
	if len(errs) > 0 {
		t.Fatalf("Parse failed: %v", errs[0])
	}
	return stmts
}

func run(t *testing.T, src string) (*Evaluator, string, error) {
	t.Helper()
	var out bytes.Buffer
	e := New(Options{Logger: gwlog.Discard(), Output: &out})
	err := e.Execute(context.Background(), parse(t, src))
	return e, out.String(), err
}

func mustRun(t *testing.T, src string) (*Evaluator, string) {
	t.Helper()
	e, out, err := run(t, src)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	return e, out
}

func global(t *testing.T, e *Evaluator, name string) value.Value {
	t.Helper()
	v, ok := e.Lookup(name)
	if !ok {
		t.Fatalf("Expected global %s to be defined", name)
	}
	return v
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"int x = 1 + 2 * 3;", "7"},
		{"int x = (1 + 2) * 3;", "9"},
		{"int x = 7 / 2;", "3"},
		{"int x = 7 % 3;", "1"},
		{"int x = -7 + 2;", "-5"},
		{"int x = 0x1F + 0b11;", "34"},
		{"float x = 1.5 * 2.0;", "3"},
		{"float x = 7.5 % 2.0;", "1.5"},
		{"string x = \"foo\" + \"bar\";", "foobar"},
		{"bool x = 1 < 2;", "true"},
		{"bool x = 2.5 >= 3.0;", "false"},
		{"bool x = \"a\" == \"a\";", "true"},
		{"bool x = 'a' != 'b';", "true"},
		{"bool x = !(1 == 2);", "true"},
		{"bool x = true && false || true;", "true"},
		{"int x = 9223372036854775807 + 1;", "-9223372036854775808"},
		{"int x = 1; x += 4;", "5"},
		{"int x = 10; x %= 4;", "2"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			e, _ := mustRun(t, tt.src)
			if got := global(t, e, "x").String(); got != tt.want {
				t.Errorf("Expected x = %s, got %s", tt.want, got)
			}
		})
	}
}

func TestEvaluationErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code gwerror.Code
	}{
		{"division by zero", "int x = 1 / 0;", gwerror.CodeEvalDivisionByZero},
		{"modulo by zero", "int x = 1 % 0;", gwerror.CodeEvalDivisionByZero},
		{"float division by zero", "float x = 1.0 / 0.0;", gwerror.CodeEvalDivisionByZero},
		{"int equals float", "bool b = 1 == 1.0;", gwerror.CodeEvalTypeMismatch},
		{"int plus string", "int x = 1 + \"a\";", gwerror.CodeEvalTypeMismatch},
		{"string comparison", "bool b = \"a\" < \"b\";", gwerror.CodeEvalTypeMismatch},
		{"negate bool", "bool b = -true;", gwerror.CodeEvalTypeMismatch},
		{"not int", "bool b = !1;", gwerror.CodeEvalTypeMismatch},
		{"logical on ints", "bool b = 1 && 2;", gwerror.CodeEvalTypeMismatch},
		{"null operand", "int x = null + 1;", gwerror.CodeEvalNullOperand},
		{"null initializer", "int x;", gwerror.CodeEvalNullInitializer},
		{"assign null", "int x = 1; x = null;", gwerror.CodeEvalNullInitializer},
		{"declared type", "int x = \"s\";", gwerror.CodeEvalTypeMismatch},
		{"assignment type", "int x = 1; x = 'c';", gwerror.CodeEvalTypeMismatch},
		{"undefined variable", "int x = y;", gwerror.CodeEvalUndefinedVariable},
		{"undefined assignment", "y = 1;", gwerror.CodeEvalUndefinedAssignment},
		{"non-boolean if", "if (1) { }", gwerror.CodeEvalNonBooleanCondition},
		{"non-boolean while", "while (\"x\") { }", gwerror.CodeEvalNonBooleanCondition},
		{"non-boolean ternary", "int x = 1 ? 2 : 3;", gwerror.CodeEvalNonBooleanCondition},
		{"return outside function", "return 1;", gwerror.CodeEvalReturnOutside},
		{"break outside loop", "break;", gwerror.CodeEvalBreakOutside},
		{"continue outside loop", "continue;", gwerror.CodeEvalBreakOutside},
		{"continue in switch", "switch (1) { case 1: continue; }", gwerror.CodeEvalBreakOutside},
		{"arity", "fun f(int a) { } f();", gwerror.CodeEvalArityMismatch},
		{"argument type", "fun f(int a) { } f(\"s\");", gwerror.CodeEvalTypeMismatch},
		{"not callable", "int x = 1; x();", gwerror.CodeEvalNotCallable},
		{"return type", "fun int f() { return \"s\"; } f();", gwerror.CodeEvalReturnTypeMismatch},
		{"missing return value", "fun int f() { return; } f();", gwerror.CodeEvalReturnTypeMismatch},
		{"case type", "switch (1) { case \"a\": break; }", gwerror.CodeEvalTypeMismatch},
		{"import", "import math;", gwerror.CodeEvalImportUnsupported},
		{"uncaught throw", "throw 42;", gwerror.CodeEvalUncaughtThrow},
		{"array null size", "int a[null];", gwerror.CodeEvalNullOperand},
		{"array element type", "int a[2] = { 1, \"b\" };", gwerror.CodeEvalTypeMismatch},
		{"array null index", "int a[1] = { 1 }; a[null];", gwerror.CodeEvalNullOperand},
		{"undefined array", "b[0] = 1;", gwerror.CodeEvalUndefinedVariable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.src)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !gwerror.HasCode(err, tt.code) {
				t.Errorf("Expected code %s, got %s (%v)", tt.code, gwerror.GetCode(err), err)
			}
		})
	}
}

func TestErrorPosition(t *testing.T) {
	_, _, err := run(t, "int a = 1;\nint b = a / 0;")
	var gwErr *gwerror.Error
	if !errors.As(err, &gwErr) {
		t.Fatalf("Expected *gwerror.Error, got %T", err)
	}
	line, col := gwErr.Position()
	if line != 2 || col != 11 {
		t.Errorf("Expected position 2:11, got %d:%d", line, col)
	}
	if gwErr.Stage() != gwerror.StageEval {
		t.Errorf("Expected stage Eval, got %v", gwErr.Stage())
	}
}

func TestShadowThenRestore(t *testing.T) {
	e, _ := mustRun(t, "int a = 1; { int a = 2; }")
	if got := global(t, e, "a").AsInt(); got != 1 {
		t.Errorf("Expected a = 1, got %d", got)
	}
}

func TestAssignmentReachesOuterScope(t *testing.T) {
	e, _ := mustRun(t, "int a = 1; { a = 2; }")
	if got := global(t, e, "a").AsInt(); got != 2 {
		t.Errorf("Expected a = 2, got %d", got)
	}
}

func TestNamesAreCaseInsensitive(t *testing.T) {
	e, _ := mustRun(t, "int Total = 1; TOTAL = total + 1;")
	if got := global(t, e, "total").AsInt(); got != 2 {
		t.Errorf("Expected total = 2, got %d", got)
	}
}

func TestConsoleWriteLine(t *testing.T) {
	_, out := mustRun(t, `
		Console.WriteLine("hello");
		console_writeline(1 + 1);
		Console.WriteLine(2.5);
		Console.WriteLine(true);
		Console.WriteLine('c');
	`)
	want := "hello\n2\n2.5\ntrue\nc\n"
	if out != want {
		t.Errorf("Expected output %q, got %q", want, out)
	}
}

func TestLoops(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want int64
	}{
		{"while", "int s = 0; int i = 0; while (i < 5) { s += i; i += 1; }", 10},
		{"for", "int s = 0; for (int i = 0; i < 5; i = i + 1) { s += i; }", 10},
		{"break", "int s = 0; for (int i = 0; i < 10; i = i + 1) { if (i == 3) { break; } s += 1; }", 3},
		{"continue", "int s = 0; for (int i = 0; i < 5; i = i + 1) { if (i % 2 == 0) { continue; } s += i; }", 4},
		{"nested break", "int s = 0; for (int i = 0; i < 3; i = i + 1) { for (int j = 0; j < 3; j = j + 1) { if (j == 1) { break; } s += 1; } }", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := mustRun(t, tt.src)
			if got := global(t, e, "s").AsInt(); got != tt.want {
				t.Errorf("Expected s = %d, got %d", tt.want, got)
			}
		})
	}
}

func TestLoopVariableDoesNotLeak(t *testing.T) {
	e, _ := mustRun(t, "for (int i = 0; i < 2; i = i + 1) { }")
	if _, ok := e.Lookup("i"); ok {
		t.Error("Expected loop variable to be scoped to the loop")
	}
}

func TestFunctions(t *testing.T) {
	e, out := mustRun(t, `
		fun int add(int a, int b) { return a + b; }
		fun int fib(int n) {
			if (n < 2) { return n; }
			return fib(n - 1) + fib(n - 2);
		}
		fun greet(string name) { Console.WriteLine("hi " + name); }
		int x = add(2, 3);
		int f = fib(10);
		greet("bob");
	`)
	if got := global(t, e, "x").AsInt(); got != 5 {
		t.Errorf("Expected x = 5, got %d", got)
	}
	if got := global(t, e, "f").AsInt(); got != 55 {
		t.Errorf("Expected f = 55, got %d", got)
	}
	if out != "hi bob\n" {
		t.Errorf("Expected greeting, got %q", out)
	}
}

func TestClosureCapturesDeclaringScope(t *testing.T) {
	e, _ := mustRun(t, `
		fun adder(int a) { return fun int (int b) { return a + b; }; }
		int r = adder(2)(3);
	`)
	if got := global(t, e, "r").AsInt(); got != 5 {
		t.Errorf("Expected r = 5, got %d", got)
	}
}

func TestClosureSeesLaterAssignments(t *testing.T) {
	e, _ := mustRun(t, `
		int n = 1;
		fun int get() { return n; }
		n = 2;
		int r = get();
	`)
	if got := global(t, e, "r").AsInt(); got != 2 {
		t.Errorf("Expected r = 2, got %d", got)
	}
}

func TestCallArgumentsUseCallerScope(t *testing.T) {
	e, _ := mustRun(t, `
		int a = 10;
		fun int id(int a) { return a; }
		int r = id(a + 1);
	`)
	if got := global(t, e, "r").AsInt(); got != 11 {
		t.Errorf("Expected r = 11, got %d", got)
	}
}

func TestTernarySelectsByCondition(t *testing.T) {
	e, _ := mustRun(t, "int a = true ? 1 : 2; int b = false ? 1 : 2;")
	if global(t, e, "a").AsInt() != 1 || global(t, e, "b").AsInt() != 2 {
		t.Errorf("Expected a = 1 and b = 2, got %s and %s", global(t, e, "a"), global(t, e, "b"))
	}
}

func TestSwitch(t *testing.T) {
	src := `
		string r = "none";
		switch (%s) {
			case 1: r = "one"; break;
			case 2: r = "two";
			default: r = "other";
		}
	`
	tests := []struct {
		subject string
		want    string
	}{
		{"1", "one"},
		{"2", "two"},
		{"3", "other"},
	}
	for _, tt := range tests {
		t.Run(tt.subject, func(t *testing.T) {
			e, _ := mustRun(t, fmt.Sprintf(src, tt.subject))
			if got := global(t, e, "r").AsString(); got != tt.want {
				t.Errorf("Expected r = %s, got %s", tt.want, got)
			}
		})
	}
}

func TestTryCatchFinally(t *testing.T) {
	_, out := mustRun(t, `
		try {
			Console.WriteLine("try");
			throw "boom";
			Console.WriteLine("unreachable");
		} catch (string e) {
			Console.WriteLine("caught " + e);
		} finally {
			Console.WriteLine("finally");
		}
	`)
	want := "try\ncaught boom\nfinally\n"
	if out != want {
		t.Errorf("Expected %q, got %q", want, out)
	}
}

func TestThrowAcrossCall(t *testing.T) {
	e, _ := mustRun(t, `
		fun fail() { throw 7; }
		int r = 0;
		try { fail(); } catch (int code) { r = code; }
	`)
	if got := global(t, e, "r").AsInt(); got != 7 {
		t.Errorf("Expected r = 7, got %d", got)
	}
}

func TestCatchTypeMustMatch(t *testing.T) {
	_, out, err := run(t, `
		try { throw 1; } catch (string s) { Console.WriteLine("wrong"); } finally { Console.WriteLine("cleanup"); }
	`)
	if !gwerror.HasCode(err, gwerror.CodeEvalUncaughtThrow) {
		t.Fatalf("Expected uncaught throw, got %v", err)
	}
	if out != "cleanup\n" {
		t.Errorf("Expected only finally output, got %q", out)
	}
}

func TestEvalErrorsAreNotCatchable(t *testing.T) {
	_, out, err := run(t, `
		try { int x = 1 / 0; } catch (int e) { Console.WriteLine("caught"); } finally { Console.WriteLine("finally"); }
	`)
	if !gwerror.HasCode(err, gwerror.CodeEvalDivisionByZero) {
		t.Fatalf("Expected division by zero, got %v", err)
	}
	if out != "finally\n" {
		t.Errorf("Expected finally to run, got %q", out)
	}
}

func TestReturnInsideLoopInsideFunction(t *testing.T) {
	e, _ := mustRun(t, `
		fun int first(int limit) {
			for (int i = 0; i < limit; i = i + 1) {
				if (i == 3) { return i; }
			}
			return -1;
		}
		int r = first(10);
	`)
	if got := global(t, e, "r").AsInt(); got != 3 {
		t.Errorf("Expected r = 3, got %d", got)
	}
}

func TestDeclarations(t *testing.T) {
	e, _ := mustRun(t, `
		struct Point { int x; int y; }
		enum Color { Red, Green }
		int values[3] = { 1, 2, 3 };
		int buf[];
		values[0] = 5;
	`)
	tests := []struct {
		name string
		kind value.DeclKind
	}{
		{"Point", value.DeclStruct},
		{"Color", value.DeclEnum},
		{"values", value.DeclArray},
		{"buf", value.DeclArray},
	}
	for _, tt := range tests {
		v := global(t, e, tt.name)
		if v.Kind() != value.KindDecl || v.AsDecl().Kind != tt.kind {
			t.Errorf("Expected %s to be a %s declaration, got %s", tt.name, tt.kind, v)
		}
	}
}

func TestMaxDepth(t *testing.T) {
	stmts := parse(t, "fun int down(int n) { return down(n + 1); } down(0);")
	e := New(Options{Logger: gwlog.Discard(), MaxDepth: 32})
	err := e.Execute(context.Background(), stmts)
	if !gwerror.HasCode(err, gwerror.CodeEvalTooDeep) {
		t.Errorf("Expected too deep, got %v", err)
	}
}

func TestCancellation(t *testing.T) {
	stmts := parse(t, "while (true) { }")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := New(Options{Logger: gwlog.Discard()})
	err := e.Execute(ctx, stmts)
	if !gwerror.HasCode(err, gwerror.CodeEvalCancelled) {
		t.Errorf("Expected cancellation, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Error("Expected error chain to contain context.Canceled")
	}
}

func TestStatePersistsAcrossExecutions(t *testing.T) {
	e := New(Options{Logger: gwlog.Discard()})
	if err := e.Execute(context.Background(), parse(t, "int a = 40;")); err != nil {
		t.Fatalf("First execution failed: %v", err)
	}
	if err := e.Execute(context.Background(), parse(t, "a + 2;")); err != nil {
		t.Fatalf("Second execution failed: %v", err)
	}
	if got := e.LastValue().AsInt(); got != 42 {
		t.Errorf("Expected last value 42, got %d", got)
	}
}

func TestScopesAreReleased(t *testing.T) {
	e, _ := mustRun(t, "int s = 0; for (int i = 0; i < 50; i = i + 1) { { s += 1; } }")
	if live := e.Arena().Live(); live != 1 {
		t.Errorf("Expected only the global scope to be live, got %d", live)
	}
	if size := e.Arena().Size(); size > 8 {
		t.Errorf("Expected released scopes to be reused, arena grew to %d", size)
	}
}

func TestPinnedClosureScopeStaysLive(t *testing.T) {
	e, _ := mustRun(t, "fun outer() { int k = 1; fun int inner() { return k; } return inner(); } outer();")
	if e.Arena().Live() < 2 {
		t.Errorf("Expected the captured call scope to stay live, got %d", e.Arena().Live())
	}
	if _, ok := e.Arena().Lookup(scope.Root, "outer"); !ok {
		t.Error("Expected outer to be bound globally")
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	noop := func(*Evaluator, []value.Value) (value.Value, error) { return value.Null, nil }

	if err := r.Register(NewBuiltin("Len", 1, noop)); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := r.Register(NewBuiltin("len", 1, noop)); err == nil {
		t.Error("Expected duplicate registration to fail")
	}
	if err := r.Register(NewBuiltin(" ", 0, noop)); err == nil {
		t.Error("Expected empty name to fail")
	}
	if err := r.Register(nil); err == nil {
		t.Error("Expected nil builtin to fail")
	}
	if _, ok := r.Lookup("LEN"); !ok {
		t.Error("Expected case-insensitive lookup")
	}
}

func TestCustomBuiltin(t *testing.T) {
	r := StandardBuiltins()
	double := func(_ *Evaluator, args []value.Value) (value.Value, error) {
		return value.Int(args[0].AsInt() * 2), nil
	}
	if err := r.Register(NewBuiltin("double", 1, double)); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	e := New(Options{Logger: gwlog.Discard(), Builtins: r, Output: &bytes.Buffer{}})
	if err := e.Execute(context.Background(), parse(t, "int x = double(21);")); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if got := global(t, e, "x").AsInt(); got != 42 {
		t.Errorf("Expected x = 42, got %d", got)
	}
}
