// File: printer.go
// Title: AST Pretty Printer
// Description: Renders AST nodes in the textual form other tooling reads.
//              The output format is fixed; changes here are breaking.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-15
// Modified: 2026-10-15
//
// Change History:
// - 2026-10-15 v0.2.0: Printer for the gwent node set

package printer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/msto63/gwent/internal/lang/ast"
)

// Program prints each top-level statement on its own line
func Program(stmts []ast.Stmt) string {
	lines := make([]string, len(stmts))
	for i, s := range stmts {
		lines[i] = Print(s)
	}
	return strings.Join(lines, "\n")
}

// Print renders a single node
func Print(n ast.Node) string {
	switch n := n.(type) {
	case *ast.Binary:
		return fmt.Sprintf("(%s %s %s)", Print(n.Left), n.Operator.Lexeme, Print(n.Right))
	case *ast.Logical:
		return fmt.Sprintf("(%s %s %s)", Print(n.Left), n.Operator.Lexeme, Print(n.Right))
	case *ast.Unary:
		return fmt.Sprintf("(%s%s)", n.Operator.Lexeme, Print(n.Right))
	case *ast.Literal:
		return Literal(n.Value)
	case *ast.Grouping:
		return fmt.Sprintf("(%s)", Print(n.Expression))
	case *ast.Variable:
		return n.Name.Lexeme
	case *ast.Assignment:
		return fmt.Sprintf("%s = %s", n.Name.Lexeme, Print(n.Value))
	case *ast.ArrayAccess:
		return fmt.Sprintf("%s[%s]", n.Name.Lexeme, Print(n.Index))
	case *ast.ArrayAssignment:
		return fmt.Sprintf("%s[%s] = %s", n.Name.Lexeme, Print(n.Index), Print(n.Value))
	case *ast.Call:
		return fmt.Sprintf("%s(%s)", Print(n.Callee), exprList(n.Arguments))
	case *ast.Ternary:
		return fmt.Sprintf("(%s ? %s : %s)", Print(n.Condition), Print(n.Then), Print(n.Else))
	case *ast.Lambda:
		return fmt.Sprintf("(%s) => %s", params(n.Params), Print(n.Body))

	case *ast.VarDecl:
		return fmt.Sprintf("%s %s = %s;", n.Type.Lexeme, n.Name.Lexeme, Print(n.Initializer))
	case *ast.FunctionDecl:
		name := n.Name.Lexeme
		if n.ReturnType != nil {
			name = n.ReturnType.Lexeme + " " + name
		}
		return fmt.Sprintf("function %s(%s) %s", name, params(n.Params), Print(n.Body))
	case *ast.ArrayDecl:
		size := ""
		if n.Size != nil {
			size = Print(n.Size)
		}
		init := ""
		if len(n.Elements) > 0 {
			init = fmt.Sprintf(" = { %s }", exprList(n.Elements))
		}
		return fmt.Sprintf("%s %s[%s]%s;", n.Type.Lexeme, n.Name.Lexeme, size, init)
	case *ast.StructDecl:
		fields := make([]string, len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = fmt.Sprintf("%s %s;", f.Type.Lexeme, f.Name.Lexeme)
		}
		return fmt.Sprintf("struct %s {\n  %s\n}", n.Name.Lexeme, strings.Join(fields, "\n  "))
	case *ast.EnumDecl:
		values := make([]string, len(n.Values))
		for i, v := range n.Values {
			values[i] = v.Lexeme
		}
		return fmt.Sprintf("enum %s { %s }", n.Name.Lexeme, strings.Join(values, ", "))
	case *ast.ExprStmt:
		return Print(n.Expression) + ";"
	case *ast.If:
		out := fmt.Sprintf("if (%s) %s", Print(n.Condition), Print(n.Then))
		if n.Else != nil {
			out += " else " + Print(n.Else)
		}
		return out
	case *ast.While:
		return fmt.Sprintf("while (%s) %s", Print(n.Condition), Print(n.Body))
	case *ast.For:
		return fmt.Sprintf("for (%s; %s; %s) %s",
			optional(n.Initializer), optional(n.Condition), optional(n.Increment), Print(n.Body))
	case *ast.Block:
		var b strings.Builder
		b.WriteString("{\n")
		for _, s := range n.Statements {
			b.WriteString("  ")
			b.WriteString(Print(s))
			b.WriteString("\n")
		}
		b.WriteString("}")
		return b.String()
	case *ast.Return:
		return fmt.Sprintf("return %s;", Print(n.Value))
	case *ast.Switch:
		cases := make([]string, len(n.Cases))
		for i, c := range n.Cases {
			cases[i] = Print(c)
		}
		def := ""
		if n.Default != nil {
			def = "default: " + Print(n.Default)
		}
		return fmt.Sprintf("switch (%s) {\n%s\n%s\n}", Print(n.Subject), strings.Join(cases, "\n"), def)
	case *ast.Case:
		return fmt.Sprintf("case %s: %s", Print(n.Value), Print(n.Body))
	case *ast.Break:
		return "break;"
	case *ast.Continue:
		return "continue;"
	case *ast.TryCatch:
		out := fmt.Sprintf("try %s catch (%s %s) %s",
			Print(n.Try), n.CatchParam.Type.Lexeme, n.CatchParam.Name.Lexeme, Print(n.Catch))
		if n.Finally != nil {
			out += " finally " + Print(n.Finally)
		}
		return out
	case *ast.Throw:
		return fmt.Sprintf("throw %s;", Print(n.Value))
	case *ast.Import:
		return fmt.Sprintf("import %s;", n.Module.Lexeme)
	default:
		panic(fmt.Sprintf("printer: unexpected node %T", n))
	}
}

// Literal renders a literal payload
func Literal(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case string:
		return v
	case rune:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

func exprList(exprs []ast.Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = Print(e)
	}
	return strings.Join(parts, ", ")
}

func params(ps []ast.Param) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = p.Type.Lexeme + " " + p.Name.Lexeme
	}
	return strings.Join(parts, ", ")
}

func optional(n ast.Node) string {
	if n == nil {
		return ""
	}
	return Print(n)
}
