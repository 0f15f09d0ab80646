// File: walk.go
// Title: AST Traversal Helpers
// Description: Generic depth-first traversal over the closed node set and the
//              for-loop rewrite used by the parser.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-15
// Modified: 2026-10-15
//
// Change History:
// - 2026-10-15 v0.2.0: Inspect and Desugar

package ast

import (
	"fmt"

	"github.com/msto63/gwent/internal/lang/token"
)

// Inspect traverses the tree rooted at n in depth-first order. If f returns
// false the children of that node are skipped. Nil nodes are ignored.
func Inspect(n Node, f func(Node) bool) {
	if isNil(n) || !f(n) {
		return
	}

	switch n := n.(type) {
	case *Binary:
		Inspect(n.Left, f)
		Inspect(n.Right, f)
	case *Logical:
		Inspect(n.Left, f)
		Inspect(n.Right, f)
	case *Unary:
		Inspect(n.Right, f)
	case *Literal, *Variable, *Break, *Continue, *Import, *StructDecl, *EnumDecl:
		// leaves
	case *Grouping:
		Inspect(n.Expression, f)
	case *Assignment:
		Inspect(n.Value, f)
	case *ArrayAccess:
		Inspect(n.Index, f)
	case *ArrayAssignment:
		Inspect(n.Index, f)
		Inspect(n.Value, f)
	case *Call:
		Inspect(n.Callee, f)
		for _, arg := range n.Arguments {
			Inspect(arg, f)
		}
	case *Ternary:
		Inspect(n.Condition, f)
		Inspect(n.Then, f)
		Inspect(n.Else, f)
	case *Lambda:
		Inspect(n.Body, f)
	case *VarDecl:
		Inspect(n.Initializer, f)
	case *FunctionDecl:
		Inspect(n.Body, f)
	case *ArrayDecl:
		Inspect(n.Size, f)
		for _, e := range n.Elements {
			Inspect(e, f)
		}
	case *ExprStmt:
		Inspect(n.Expression, f)
	case *If:
		Inspect(n.Condition, f)
		Inspect(n.Then, f)
		Inspect(n.Else, f)
	case *While:
		Inspect(n.Condition, f)
		Inspect(n.Body, f)
	case *For:
		Inspect(n.Initializer, f)
		Inspect(n.Condition, f)
		Inspect(n.Increment, f)
		Inspect(n.Body, f)
	case *Block:
		for _, s := range n.Statements {
			Inspect(s, f)
		}
	case *Return:
		Inspect(n.Value, f)
	case *Switch:
		Inspect(n.Subject, f)
		for _, c := range n.Cases {
			Inspect(c, f)
		}
		Inspect(n.Default, f)
	case *Case:
		Inspect(n.Value, f)
		Inspect(n.Body, f)
	case *TryCatch:
		Inspect(n.Try, f)
		Inspect(n.Catch, f)
		Inspect(n.Finally, f)
	case *Throw:
		Inspect(n.Value, f)
	default:
		panic(fmt.Sprintf("ast.Inspect: unexpected node %T", n))
	}
}

// isNil catches both untyped nil and typed nil pointers stored in an interface
func isNil(n Node) bool {
	if n == nil {
		return true
	}
	switch v := n.(type) {
	case *Block:
		return v == nil
	case *Case:
		return v == nil
	case *Grouping:
		return v == nil
	}
	return false
}

// Desugar rewrites a for loop into its while form:
//
//	Block[init, While[cond, Block[body, increment;]]]
//
// The increment block is only built when an increment exists, the condition
// defaults to true and the outer block only exists when there is an
// initializer.
func Desugar(f *For) Stmt {
	body := f.Body
	if f.Increment != nil {
		body = &Block{
			Brace:      f.Keyword,
			Statements: []Stmt{f.Body, &ExprStmt{Expression: f.Increment}},
			Stepped:    true,
		}
	}

	condition := f.Condition
	if condition == nil {
		condition = &Literal{Value: true, Token: token.New(token.True, "true", nil, f.Keyword.Line, f.Keyword.Column)}
	}

	var loop Stmt = &While{Keyword: f.Keyword, Condition: condition, Body: body}
	if f.Initializer != nil {
		loop = &Block{Brace: f.Keyword, Statements: []Stmt{f.Initializer, loop}}
	}
	return loop
}
