// File: token.go
// Title: Token Definitions
// Description: Token kinds and the immutable Token record produced by the
//              lexer and consumed by the parser.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-15
// Modified: 2026-10-15
//
// Change History:
// - 2026-10-15 v0.2.0: Full token table, equality and hashing

package token

import (
	"fmt"
	"math"
	"strconv"

	"github.com/segmentio/fasthash/fnv1a"
)

// Kind represents the type of a token
type Kind int

const (
	// Literals
	BinNumber Kind = iota
	Character
	Float
	HexNumber
	Number
	Null
	String
	True
	False
	ID

	// Arithmetic
	Divide
	Minus
	Modulo
	Plus
	Times

	// Comparison
	Equal
	GreaterEqual
	GreaterThan
	LessEqual
	LessThan
	NotEqual

	// Logical
	And
	Or
	Not

	// Assignment
	Assign
	AndAssign
	DivideAssign
	MinusAssign
	ModuloAssign
	OrAssign
	PlusAssign
	ShiftLeftAssign
	ShiftRightAssign
	TimesAssign
	XorAssign

	Decrement
	Increment

	// Bitwise
	BitAnd
	BitNot
	BitOr
	BitXor
	ShiftLeft
	ShiftRight

	// Separators
	Backslash
	Backtick
	Colon
	Comma
	Dot
	Dollar
	Hash
	Question
	Semicolon

	// Brackets
	LBrace
	LBracket
	LParen
	RBrace
	RBracket
	RParen

	// Keywords
	Break
	Case
	Catch
	Class
	Continue
	Default
	Else
	Enum
	Extends
	Finally
	For
	Fun
	If
	Import
	Private
	Protected
	Public
	Return
	Static
	Struct
	Switch
	Throw
	Try
	Type
	Void
	While

	EOF
	Newline
	ConsoleWriteLine
)

var kindNames = [...]string{
	BinNumber: "BIN_NUMBER", Character: "CHARACTER", Float: "FLOAT", HexNumber: "HEX_NUMBER",
	Number: "NUMBER", Null: "NULL", String: "STRING", True: "TRUE", False: "FALSE", ID: "ID",

	Divide: "DIVIDE", Minus: "MINUS", Modulo: "MODULO", Plus: "PLUS", Times: "TIMES",

	Equal: "EQUAL", GreaterEqual: "GREATER_EQUAL", GreaterThan: "GREATER_THAN",
	LessEqual: "LESS_EQUAL", LessThan: "LESS_THAN", NotEqual: "NOT_EQUAL",

	And: "AND", Or: "OR", Not: "NOT",

	Assign: "ASSIGN", AndAssign: "AND_ASSIGN", DivideAssign: "DIVIDE_ASSIGN",
	MinusAssign: "MINUS_ASSIGN", ModuloAssign: "MODULO_ASSIGN", OrAssign: "OR_ASSIGN",
	PlusAssign: "PLUS_ASSIGN", ShiftLeftAssign: "SHIFT_LEFT_ASSIGN",
	ShiftRightAssign: "SHIFT_RIGHT_ASSIGN", TimesAssign: "TIMES_ASSIGN", XorAssign: "XOR_ASSIGN",

	Decrement: "DECREMENT", Increment: "INCREMENT",

	BitAnd: "BIT_AND", BitNot: "BIT_NOT", BitOr: "BIT_OR", BitXor: "BIT_XOR",
	ShiftLeft: "SHIFT_LEFT", ShiftRight: "SHIFT_RIGHT",

	Backslash: "BACKSLASH", Backtick: "BACKTICK", Colon: "COLON", Comma: "COMMA", Dot: "DOT",
	Dollar: "DOLLAR", Hash: "HASH", Question: "QUESTION", Semicolon: "SEMICOLON",

	LBrace: "LBRACE", LBracket: "LBRACKET", LParen: "LPAREN",
	RBrace: "RBRACE", RBracket: "RBRACKET", RParen: "RPAREN",

	Break: "BREAK", Case: "CASE", Catch: "CATCH", Class: "CLASS", Continue: "CONTINUE",
	Default: "DEFAULT", Else: "ELSE", Enum: "ENUM", Extends: "EXTENDS", Finally: "FINALLY",
	For: "FOR", Fun: "FUN", If: "IF", Import: "IMPORT", Private: "PRIVATE",
	Protected: "PROTECTED", Public: "PUBLIC", Return: "RETURN", Static: "STATIC",
	Struct: "STRUCT", Switch: "SWITCH", Throw: "THROW", Try: "TRY", Type: "TYPE",
	Void: "VOID", While: "WHILE",

	EOF: "EOF", Newline: "NEWLINE", ConsoleWriteLine: "CONSOLE_WRITELINE",
}

// String returns the upper-case token kind name
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsLiteral reports whether the kind carries a literal payload
func (k Kind) IsLiteral() bool {
	switch k {
	case BinNumber, Character, Float, HexNumber, Number, String:
		return true
	}
	return false
}

// Token is an immutable lexical token
type Token struct {
	Kind    Kind
	Lexeme  string
	Literal interface{}
	Line    int
	Column  int
}

// New creates a token
func New(kind Kind, lexeme string, literal interface{}, line, column int) Token {
	return Token{Kind: kind, Lexeme: lexeme, Literal: literal, Line: line, Column: column}
}

// Equal reports whether all five fields match
func (t Token) Equal(other Token) bool {
	return t.Kind == other.Kind &&
		t.Lexeme == other.Lexeme &&
		t.Literal == other.Literal &&
		t.Line == other.Line &&
		t.Column == other.Column
}

// Hash returns an FNV-1a hash over all five fields, consistent with Equal
func (t Token) Hash() uint64 {
	h := fnv1a.Init64
	h = fnv1a.AddUint64(h, uint64(t.Kind))
	h = fnv1a.AddString64(h, t.Lexeme)
	h = fnv1a.AddString64(h, literalKey(t.Literal))
	h = fnv1a.AddUint64(h, uint64(t.Line))
	h = fnv1a.AddUint64(h, uint64(t.Column))
	return h
}

func literalKey(lit interface{}) string {
	switch v := lit.(type) {
	case nil:
		return "nil"
	case int64:
		return "i" + strconv.FormatInt(v, 10)
	case float64:
		return "f" + strconv.FormatUint(math.Float64bits(v), 16)
	case string:
		return "s" + v
	case rune:
		return "c" + strconv.FormatInt(int64(v), 10)
	default:
		return fmt.Sprintf("%T:%v", v, v)
	}
}

// String renders the token the way the tokens dump prints it
func (t Token) String() string {
	if t.Literal != nil {
		return fmt.Sprintf("%s %q %v (%d:%d)", t.Kind, t.Lexeme, t.Literal, t.Line, t.Column)
	}
	return fmt.Sprintf("%s %q (%d:%d)", t.Kind, t.Lexeme, t.Line, t.Column)
}
