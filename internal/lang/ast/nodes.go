// File: nodes.go
// Title: gwent AST Node Definitions
// Description: Defines the closed set of AST node variants. Node, Expr and
//              Stmt are sealed by unexported marker methods, so every
//              traversal is an exhaustive type switch over this file.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-15
// Modified: 2026-10-15
//
// Change History:
// - 2026-10-15 v0.2.0: Node set for the gwent language

package ast

import (
	"github.com/msto63/gwent/internal/lang/token"
)

// Node represents the base interface for all AST nodes
type Node interface {
	// Position returns the source position of the node
	Position() Position

	node()
}

// Expr represents the base interface for all expressions
type Expr interface {
	Node
	exprNode()
}

// Stmt represents the base interface for statements and declarations
type Stmt interface {
	Node
	stmtNode()
}

// Position represents a position in the source code
type Position struct {
	Line   int // Line number (1-based)
	Column int // Column number (1-based)
}

func positionOf(tok token.Token) Position {
	return Position{Line: tok.Line, Column: tok.Column}
}

// Param is a typed name: a function or lambda parameter, a catch
// parameter or a struct field
type Param struct {
	Type token.Token
	Name token.Token
}

// Expressions

// Binary is an arithmetic, comparison or equality operation
type Binary struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

// Logical is && or ||
type Logical struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

// Unary is a prefix ! or -
type Unary struct {
	Operator token.Token
	Right    Expr
}

// Literal holds nil, bool, int64, float64, string or rune
type Literal struct {
	Value interface{}
	Token token.Token
}

// Grouping is a parenthesized expression
type Grouping struct {
	Expression Expr
}

// Variable references a binding by name
type Variable struct {
	Name token.Token
}

// Assignment assigns to an existing binding
type Assignment struct {
	Name  token.Token
	Value Expr
}

// ArrayAccess is name[index]
type ArrayAccess struct {
	Name  token.Token
	Index Expr
}

// ArrayAssignment is name[index] = value
type ArrayAssignment struct {
	Name  token.Token
	Index Expr
	Value Expr
}

// Call invokes a callee; Paren is the closing parenthesis
type Call struct {
	Callee    Expr
	Paren     token.Token
	Arguments []Expr
}

// Ternary is cond ? then : else
type Ternary struct {
	Condition Expr
	Then      Expr
	Else      Expr
}

// Lambda is an anonymous function
type Lambda struct {
	Keyword    token.Token
	ReturnType *token.Token
	Params     []Param
	Body       *Block
}

// Statements and declarations

// VarDecl declares a variable. Initializer is never nil; a missing
// initializer is a null Literal.
type VarDecl struct {
	Type        token.Token
	Name        token.Token
	Initializer Expr
}

// FunctionDecl declares a named function
type FunctionDecl struct {
	Name       token.Token
	ReturnType *token.Token
	Params     []Param
	Body       *Block
}

// ArrayDecl declares an array. Size is nil when omitted.
type ArrayDecl struct {
	Type     token.Token
	Name     token.Token
	Size     Expr
	Elements []Expr
}

// StructDecl declares a struct type
type StructDecl struct {
	Name   token.Token
	Fields []Param
}

// EnumDecl declares an enumeration
type EnumDecl struct {
	Name   token.Token
	Values []token.Token
}

// ExprStmt evaluates an expression for its effect
type ExprStmt struct {
	Expression Expr
}

// If always has an Else; the parser supplies an empty Block
type If struct {
	Keyword   token.Token
	Condition Expr
	Then      Stmt
	Else      Stmt
}

// While loops while Condition is true
type While struct {
	Keyword   token.Token
	Condition Expr
	Body      Stmt
}

// For is only an intermediate form; see Desugar
type For struct {
	Keyword     token.Token
	Initializer Stmt
	Condition   Expr
	Increment   Expr
	Body        Stmt
}

// Block is a brace-delimited statement list with its own scope.
// Stepped marks the block Desugar builds from a for body and its
// increment: a continue in the body still runs the increment.
type Block struct {
	Brace      token.Token
	Statements []Stmt
	Stepped    bool
}

// Return leaves the enclosing function. Value is never nil.
type Return struct {
	Keyword token.Token
	Value   Expr
}

// Switch selects the first Case equal to Subject. Default may be nil.
type Switch struct {
	Keyword token.Token
	Subject Expr
	Cases   []*Case
	Default *Block
}

// Case is one arm of a Switch
type Case struct {
	Keyword token.Token
	Value   Expr
	Body    *Block
}

// Break leaves the innermost loop or switch
type Break struct {
	Keyword token.Token
}

// Continue starts the next iteration of the innermost loop
type Continue struct {
	Keyword token.Token
}

// TryCatch runs Try, then Catch on a thrown value, then Finally if present
type TryCatch struct {
	Keyword    token.Token
	Try        *Block
	CatchParam Param
	Catch      *Block
	Finally    *Block
}

// Throw raises a script exception
type Throw struct {
	Keyword token.Token
	Value   Expr
}

// Import names a module; evaluation rejects it
type Import struct {
	Keyword token.Token
	Module  token.Token
}

// NewGrouping wraps e, collapsing a directly nested grouping
func NewGrouping(e Expr) *Grouping {
	if inner, ok := e.(*Grouping); ok {
		return &Grouping{Expression: inner.Expression}
	}
	return &Grouping{Expression: e}
}

// NewNull returns a null literal positioned at tok
func NewNull(tok token.Token) *Literal {
	return &Literal{Value: nil, Token: tok}
}

// Position implementations

func (n *Binary) Position() Position          { return n.Left.Position() }
func (n *Logical) Position() Position         { return n.Left.Position() }
func (n *Unary) Position() Position           { return positionOf(n.Operator) }
func (n *Literal) Position() Position         { return positionOf(n.Token) }
func (n *Grouping) Position() Position        { return n.Expression.Position() }
func (n *Variable) Position() Position        { return positionOf(n.Name) }
func (n *Assignment) Position() Position      { return positionOf(n.Name) }
func (n *ArrayAccess) Position() Position     { return positionOf(n.Name) }
func (n *ArrayAssignment) Position() Position { return positionOf(n.Name) }
func (n *Call) Position() Position            { return n.Callee.Position() }
func (n *Ternary) Position() Position         { return n.Condition.Position() }
func (n *Lambda) Position() Position          { return positionOf(n.Keyword) }
func (n *VarDecl) Position() Position         { return positionOf(n.Type) }
func (n *FunctionDecl) Position() Position    { return positionOf(n.Name) }
func (n *ArrayDecl) Position() Position       { return positionOf(n.Type) }
func (n *StructDecl) Position() Position      { return positionOf(n.Name) }
func (n *EnumDecl) Position() Position        { return positionOf(n.Name) }
func (n *ExprStmt) Position() Position        { return n.Expression.Position() }
func (n *If) Position() Position              { return positionOf(n.Keyword) }
func (n *While) Position() Position           { return positionOf(n.Keyword) }
func (n *For) Position() Position             { return positionOf(n.Keyword) }
func (n *Block) Position() Position           { return positionOf(n.Brace) }
func (n *Return) Position() Position          { return positionOf(n.Keyword) }
func (n *Switch) Position() Position          { return positionOf(n.Keyword) }
func (n *Case) Position() Position            { return positionOf(n.Keyword) }
func (n *Break) Position() Position           { return positionOf(n.Keyword) }
func (n *Continue) Position() Position        { return positionOf(n.Keyword) }
func (n *TryCatch) Position() Position        { return positionOf(n.Keyword) }
func (n *Throw) Position() Position           { return positionOf(n.Keyword) }
func (n *Import) Position() Position          { return positionOf(n.Keyword) }

// Sealing markers

func (*Binary) node()          {}
func (*Logical) node()         {}
func (*Unary) node()           {}
func (*Literal) node()         {}
func (*Grouping) node()        {}
func (*Variable) node()        {}
func (*Assignment) node()      {}
func (*ArrayAccess) node()     {}
func (*ArrayAssignment) node() {}
func (*Call) node()            {}
func (*Ternary) node()         {}
func (*Lambda) node()          {}
func (*VarDecl) node()         {}
func (*FunctionDecl) node()    {}
func (*ArrayDecl) node()       {}
func (*StructDecl) node()      {}
func (*EnumDecl) node()        {}
func (*ExprStmt) node()        {}
func (*If) node()              {}
func (*While) node()           {}
func (*For) node()             {}
func (*Block) node()           {}
func (*Return) node()          {}
func (*Switch) node()          {}
func (*Case) node()            {}
func (*Break) node()           {}
func (*Continue) node()        {}
func (*TryCatch) node()        {}
func (*Throw) node()           {}
func (*Import) node()          {}

func (*Binary) exprNode()          {}
func (*Logical) exprNode()         {}
func (*Unary) exprNode()           {}
func (*Literal) exprNode()         {}
func (*Grouping) exprNode()        {}
func (*Variable) exprNode()        {}
func (*Assignment) exprNode()      {}
func (*ArrayAccess) exprNode()     {}
func (*ArrayAssignment) exprNode() {}
func (*Call) exprNode()            {}
func (*Ternary) exprNode()         {}
func (*Lambda) exprNode()          {}

func (*VarDecl) stmtNode()      {}
func (*FunctionDecl) stmtNode() {}
func (*ArrayDecl) stmtNode()    {}
func (*StructDecl) stmtNode()   {}
func (*EnumDecl) stmtNode()     {}
func (*ExprStmt) stmtNode()     {}
func (*If) stmtNode()           {}
func (*While) stmtNode()        {}
func (*For) stmtNode()          {}
func (*Block) stmtNode()        {}
func (*Return) stmtNode()       {}
func (*Switch) stmtNode()       {}
func (*Break) stmtNode()        {}
func (*Continue) stmtNode()     {}
func (*TryCatch) stmtNode()     {}
func (*Throw) stmtNode()        {}
func (*Import) stmtNode()       {}
