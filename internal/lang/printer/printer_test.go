package printer

import (
	"testing"

	"github.com/msto63/gwent/internal/lang/lexer"
	"github.com/msto63/gwent/internal/lang/parser"
)

func printSource(t *testing.T, src string) string {
	t.Helper()
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize(%q) failed: %v", src, err)
	}
	stmts, errs := parser.Parse(tokens)
	if len(errs) > 0 {
		t.Fatalf("Parse(%q) failed: %v", src, errs[0])
	}
	return Program(stmts)
}

func TestPrintStatementKinds(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"variable", "int a = 1 + 2;", "int a = (1 + 2);"},
		{"variable without initializer", "string s;", "string s = null;"},
		{"float literal", "float f = 2.50;", "float f = 2.5;"},
		{"char and string literals", `Console.WriteLine('c', "text");`, "Console.WriteLine(c, text);"},
		{"booleans", "bool b = !true || false;", "bool b = ((!true) || false);"},
		{"function", "fun add(int a, int b) { return a + b; }",
			"function add(int a, int b) {\n  return (a + b);\n}"},
		{"function with return type", "fun int one() { return 1; }",
			"function int one() {\n  return 1;\n}"},
		{"expression", "x = y;", "x = y;"},
		{"if else", "if (a < b) x = 1; else { x = 2; }",
			"if ((a < b)) x = 1; else {\n  x = 2;\n}"},
		{"if without else", "if (a) x = 1;", "if (a) x = 1; else {\n}"},
		{"while", "while (i < 3) i = i + 1;", "while ((i < 3)) i = (i + 1);"},
		{"block", "{ int a = 1; { a = 2; } }",
			"{\n  int a = 1;\n  {\n  a = 2;\n}\n}"},
		{"return without value", "fun f() { return; }", "function f() {\n  return null;\n}"},
		{"array", "int xs[3] = { 1, 2, 3 };", "int xs[3] = { 1, 2, 3 };"},
		{"array without initializer", "int xs[3];", "int xs[3];"},
		{"array without size", "int xs[] = {4};", "int xs[] = { 4 };"},
		{"array access", "xs[0] = xs[1];", "xs[0] = xs[1];"},
		{"struct", "struct Point { int x; int y; }", "struct Point {\n  int x;\n  int y;\n}"},
		{"enum", "enum Color { Red, Green, Blue }", "enum Color { Red, Green, Blue }"},
		{"import", "import math;", "import math;"},
		{"throw", `throw "bad";`, "throw bad;"},
		{"try catch finally", "try { f(); } catch (string e) { g(e); } finally { h(); }",
			"try {\n  f();\n} catch (string e) {\n  g(e);\n} finally {\n  h();\n}"},
		{"try catch", "try { f(); } catch (int e) { }", "try {\n  f();\n} catch (int e) {\n}"},
		{"switch", "switch (x) { case 1: y = 1; break; default: y = 0; }",
			"switch (x) {\ncase 1: {\n  y = 1;\n  break;\n}\ndefault: {\n  y = 0;\n}\n}"},
		{"switch without default", "switch (x) { case 1: continue; }",
			"switch (x) {\ncase 1: {\n  continue;\n}\n\n}"},
		{"ternary", "int m = a > b ? a : b;", "int m = ((a > b) ? a : b);"},
		{"lambda", "f = fun (int x) { return x * 2; };",
			"f = (int x) => {\n  return (x * 2);\n};"},
		{"grouping", "int g = (1);", "int g = (1);"},
		{"unary minus", "int n = -5;", "int n = (-5);"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := printSource(t, tt.src); got != tt.want {
				t.Errorf("Expected:\n%s\ngot:\n%s", tt.want, got)
			}
		})
	}
}

func TestPrintDesugaredFor(t *testing.T) {
	got := printSource(t, "for (int i = 0; i < 2; i = i + 1) x = x + i;")
	want := "{\n  int i = 0;\n  while ((i < 2)) {\n  x = (x + i);\n  i = (i + 1);\n}\n}"
	if got != want {
		t.Errorf("Expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestLiteral(t *testing.T) {
	tests := []struct {
		value interface{}
		want  string
	}{
		{nil, "null"},
		{true, "true"},
		{int64(-7), "-7"},
		{3.0, "3"},
		{0.1, "0.1"},
		{float32(1.5), "1.5"},
		{"raw", "raw"},
		{'z', "z"},
	}
	for _, tt := range tests {
		if got := Literal(tt.value); got != tt.want {
			t.Errorf("Literal(%#v): expected %q, got %q", tt.value, tt.want, got)
		}
	}
}
