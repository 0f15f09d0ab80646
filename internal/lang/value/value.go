// File: value.go
// Title: Runtime Values
// Description: Tagged runtime value produced by evaluation. There is no
//              implicit conversion between kinds anywhere in the runtime.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-15
// Modified: 2026-10-15
//
// Change History:
// - 2026-10-15 v0.2.0: Initial implementation

package value

import (
	"fmt"
	"strconv"

	"github.com/msto63/gwent/internal/lang/ast"
)

// Kind identifies the runtime type of a Value
type Kind int

const (
	KindNull Kind = iota
	KindInt
	KindFloat32
	KindFloat64
	KindBool
	KindChar
	KindString
	KindFunction
	KindDecl
)

// String returns the kind name used in error messages
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInt:
		return "int"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindBool:
		return "bool"
	case KindChar:
		return "char"
	case KindString:
		return "string"
	case KindFunction:
		return "function"
	case KindDecl:
		return "declaration"
	default:
		return "unknown"
	}
}

// IsNumeric reports whether arithmetic is defined for the kind
func (k Kind) IsNumeric() bool {
	return k == KindInt || k == KindFloat32 || k == KindFloat64
}

// Callable is implemented by user functions, lambdas and builtins
type Callable interface {
	// Name is used in messages; lambdas report "lambda"
	Name() string

	// Arity is the exact number of arguments accepted
	Arity() int
}

// DeclKind tells which declaration a Decl value refers to
type DeclKind int

const (
	DeclStruct DeclKind = iota
	DeclArray
	DeclEnum
)

// Decl is a reference to a struct, array or enum declaration
type Decl struct {
	Kind DeclKind
	Name string
	Node ast.Stmt
}

// Value is an immutable tagged runtime value
type Value struct {
	kind Kind
	num  int64   // Int, Bool, Char
	flt  float64 // Float32, Float64
	str  string
	obj  interface{} // Callable or *Decl
}

// Null is the null value
var Null = Value{kind: KindNull}

// Int creates an integer value
func Int(v int64) Value { return Value{kind: KindInt, num: v} }

// Float64 creates a 64-bit float value
func Float64(v float64) Value { return Value{kind: KindFloat64, flt: v} }

// Float32 creates a 32-bit float value
func Float32(v float32) Value { return Value{kind: KindFloat32, flt: float64(v)} }

// Bool creates a boolean value
func Bool(v bool) Value {
	if v {
		return Value{kind: KindBool, num: 1}
	}
	return Value{kind: KindBool}
}

// Char creates a character value
func Char(v rune) Value { return Value{kind: KindChar, num: int64(v)} }

// String creates a string value
func String(v string) Value { return Value{kind: KindString, str: v} }

// Function wraps a callable
func Function(fn Callable) Value { return Value{kind: KindFunction, obj: fn} }

// Declaration wraps a declaration reference
func Declaration(d *Decl) Value { return Value{kind: KindDecl, obj: d} }

// FromLiteral converts a literal payload from the AST
func FromLiteral(lit interface{}) (Value, error) {
	switch v := lit.(type) {
	case nil:
		return Null, nil
	case bool:
		return Bool(v), nil
	case int64:
		return Int(v), nil
	case float64:
		return Float64(v), nil
	case float32:
		return Float32(v), nil
	case string:
		return String(v), nil
	case rune:
		return Char(v), nil
	default:
		return Null, fmt.Errorf("unsupported literal type %T", lit)
	}
}

// Kind returns the runtime kind
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsInt returns the integer payload
func (v Value) AsInt() int64 { return v.num }

// AsFloat returns the float payload of either float kind
func (v Value) AsFloat() float64 { return v.flt }

// AsBool returns the boolean payload
func (v Value) AsBool() bool { return v.num != 0 }

// AsChar returns the character payload
func (v Value) AsChar() rune { return rune(v.num) }

// AsString returns the string payload
func (v Value) AsString() string { return v.str }

// AsFunction returns the callable, or nil for other kinds
func (v Value) AsFunction() Callable {
	fn, _ := v.obj.(Callable)
	return fn
}

// AsDecl returns the declaration, or nil for other kinds
func (v Value) AsDecl() *Decl {
	d, _ := v.obj.(*Decl)
	return d
}

// Equal reports value equality. Values of different kinds are never equal;
// callers that must reject mixed kinds check Kind first.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindInt, KindBool, KindChar:
		return v.num == other.num
	case KindFloat32, KindFloat64:
		return v.flt == other.flt
	case KindString:
		return v.str == other.str
	default:
		return v.obj == other.obj
	}
}

// MatchesType reports whether v may be stored under a declared type name
func (v Value) MatchesType(typeName string) bool {
	switch typeName {
	case "int":
		return v.kind == KindInt
	case "float":
		return v.kind == KindFloat32 || v.kind == KindFloat64
	case "char":
		return v.kind == KindChar
	case "bool":
		return v.kind == KindBool
	case "string":
		return v.kind == KindString
	case "empty":
		return v.kind == KindNull
	default:
		return false
	}
}

// String renders the value the way Console.WriteLine prints it
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindFloat32:
		return strconv.FormatFloat(v.flt, 'f', -1, 32)
	case KindFloat64:
		return strconv.FormatFloat(v.flt, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.AsBool())
	case KindChar:
		return string(v.AsChar())
	case KindString:
		return v.str
	case KindFunction:
		return fmt.Sprintf("<fun %s>", v.AsFunction().Name())
	case KindDecl:
		d := v.AsDecl()
		return fmt.Sprintf("<%s %s>", d.Kind, d.Name)
	default:
		return "<unknown>"
	}
}

// String returns the declaration keyword
func (k DeclKind) String() string {
	switch k {
	case DeclStruct:
		return "struct"
	case DeclArray:
		return "array"
	case DeclEnum:
		return "enum"
	default:
		return "decl"
	}
}
