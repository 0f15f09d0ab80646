// File: expressions.go
// Title: Expression Evaluation
// Description: Evaluates expressions with strict operand typing. Operands
//              are never converted: mixed kinds are a type mismatch, null
//              operands are rejected, and integer arithmetic wraps.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-15
// Modified: 2026-10-15
//
// Change History:
// - 2026-10-15 v0.2.0: Initial implementation

package eval

import (
	"fmt"
	"math"

	gwerror "github.com/msto63/gwent/internal/core/error"
	"github.com/msto63/gwent/internal/lang/ast"
	"github.com/msto63/gwent/internal/lang/token"
	"github.com/msto63/gwent/internal/lang/value"
)

func (e *Evaluator) evaluate(expr ast.Expr) (value.Value, error) {
	switch n := expr.(type) {
	case *ast.Literal:
		v, err := value.FromLiteral(n.Value)
		if err != nil {
			return value.Null, gwerror.Wrap(err, "invalid literal").
				WithCode(gwerror.CodeInternal).
				WithPosition(n.Token.Line, n.Token.Column)
		}
		return v, nil
	case *ast.Grouping:
		return e.evaluate(n.Expression)
	case *ast.Variable:
		return e.lookup(n.Name)
	case *ast.Assignment:
		return e.evalAssignment(n)
	case *ast.ArrayAccess:
		if _, err := e.lookup(n.Name); err != nil {
			return value.Null, err
		}
		if _, err := e.operand(n.Index, n.Name); err != nil {
			return value.Null, err
		}
		return value.Null, nil
	case *ast.ArrayAssignment:
		return e.evalArrayAssignment(n)
	case *ast.Unary:
		return e.evalUnary(n)
	case *ast.Binary:
		return e.evalBinary(n)
	case *ast.Logical:
		return e.evalLogical(n)
	case *ast.Ternary:
		return e.evalTernary(n)
	case *ast.Call:
		return e.evalCall(n)
	case *ast.Lambda:
		return value.Function(e.newFunction("lambda", n.Params, n.ReturnType, n.Body)), nil
	default:
		panic(fmt.Sprintf("eval: unhandled expression %T", expr))
	}
}

func (e *Evaluator) lookup(name token.Token) (value.Value, error) {
	v, ok := e.arena.Lookup(e.current, name.Lexeme)
	if !ok {
		return value.Null, errorAt(name, gwerror.CodeEvalUndefinedVariable,
			"Undefined variable '%s'.", name.Lexeme)
	}
	return v, nil
}

// operand evaluates expr and rejects null
func (e *Evaluator) operand(expr ast.Expr, at token.Token) (value.Value, error) {
	v, err := e.evaluate(expr)
	if err != nil {
		return value.Null, err
	}
	if v.IsNull() {
		return value.Null, errorAt(at, gwerror.CodeEvalNullOperand, "Operand of '%s' is null.", at.Lexeme)
	}
	return v, nil
}

func (e *Evaluator) evalAssignment(n *ast.Assignment) (value.Value, error) {
	v, err := e.evaluate(n.Value)
	if err != nil {
		return value.Null, err
	}
	if v.IsNull() {
		return value.Null, errorAt(n.Name, gwerror.CodeEvalNullInitializer,
			"Cannot assign null to '%s'.", n.Name.Lexeme)
	}

	old, ok := e.arena.Lookup(e.current, n.Name.Lexeme)
	if !ok {
		return value.Null, errorAt(n.Name, gwerror.CodeEvalUndefinedAssignment,
			"Undefined variable '%s'.", n.Name.Lexeme)
	}
	if !sameFamily(old.Kind(), v.Kind()) {
		return value.Null, errorAt(n.Name, gwerror.CodeEvalTypeMismatch,
			"Cannot assign %s to '%s' of type %s.", v.Kind(), n.Name.Lexeme, old.Kind())
	}
	e.arena.Assign(e.current, n.Name.Lexeme, v)
	return v, nil
}

func (e *Evaluator) evalArrayAssignment(n *ast.ArrayAssignment) (value.Value, error) {
	if _, err := e.lookup(n.Name); err != nil {
		return value.Null, err
	}
	if _, err := e.operand(n.Index, n.Name); err != nil {
		return value.Null, err
	}
	v, err := e.evaluate(n.Value)
	if err != nil {
		return value.Null, err
	}
	if v.IsNull() {
		return value.Null, errorAt(n.Name, gwerror.CodeEvalNullInitializer,
			"Cannot store null in '%s'.", n.Name.Lexeme)
	}
	return v, nil
}

func (e *Evaluator) evalUnary(n *ast.Unary) (value.Value, error) {
	right, err := e.operand(n.Right, n.Operator)
	if err != nil {
		return value.Null, err
	}

	switch n.Operator.Kind {
	case token.Minus:
		switch right.Kind() {
		case value.KindInt:
			return value.Int(-right.AsInt()), nil
		case value.KindFloat64:
			return value.Float64(-right.AsFloat()), nil
		case value.KindFloat32:
			return value.Float32(-float32(right.AsFloat())), nil
		}
	case token.Not:
		if right.Kind() == value.KindBool {
			return value.Bool(!right.AsBool()), nil
		}
	default:
		return value.Null, errorAt(n.Operator, gwerror.CodeEvalUnsupportedOperator,
			"Unsupported unary operator '%s'.", n.Operator.Lexeme)
	}
	return value.Null, errorAt(n.Operator, gwerror.CodeEvalTypeMismatch,
		"Operator '%s' is not defined for %s.", n.Operator.Lexeme, right.Kind())
}

func (e *Evaluator) evalLogical(n *ast.Logical) (value.Value, error) {
	left, err := e.operand(n.Left, n.Operator)
	if err != nil {
		return value.Null, err
	}
	right, err := e.operand(n.Right, n.Operator)
	if err != nil {
		return value.Null, err
	}
	if left.Kind() != value.KindBool || right.Kind() != value.KindBool {
		return value.Null, errorAt(n.Operator, gwerror.CodeEvalTypeMismatch,
			"Operator '%s' requires bool operands, got %s and %s.", n.Operator.Lexeme, left.Kind(), right.Kind())
	}

	if n.Operator.Kind == token.And {
		return value.Bool(left.AsBool() && right.AsBool()), nil
	}
	return value.Bool(left.AsBool() || right.AsBool()), nil
}

func (e *Evaluator) evalTernary(n *ast.Ternary) (value.Value, error) {
	cond, err := e.condition(n.Condition, "?:")
	if err != nil {
		return value.Null, err
	}
	then, err := e.evaluate(n.Then)
	if err != nil {
		return value.Null, err
	}
	otherwise, err := e.evaluate(n.Else)
	if err != nil {
		return value.Null, err
	}
	if cond {
		return then, nil
	}
	return otherwise, nil
}

func (e *Evaluator) evalBinary(n *ast.Binary) (value.Value, error) {
	left, err := e.operand(n.Left, n.Operator)
	if err != nil {
		return value.Null, err
	}
	right, err := e.operand(n.Right, n.Operator)
	if err != nil {
		return value.Null, err
	}
	op := n.Operator

	if left.Kind() != right.Kind() {
		return value.Null, errorAt(op, gwerror.CodeEvalTypeMismatch,
			"Operands of '%s' must have the same type, got %s and %s.", op.Lexeme, left.Kind(), right.Kind())
	}

	switch op.Kind {
	case token.Equal:
		return value.Bool(left.Equal(right)), nil
	case token.NotEqual:
		return value.Bool(!left.Equal(right)), nil
	}

	switch left.Kind() {
	case value.KindInt:
		return intBinary(op, left.AsInt(), right.AsInt())
	case value.KindFloat64:
		return floatBinary(op, left.AsFloat(), right.AsFloat(), value.Float64)
	case value.KindFloat32:
		return floatBinary(op, left.AsFloat(), right.AsFloat(), func(f float64) value.Value {
			return value.Float32(float32(f))
		})
	case value.KindString:
		if op.Kind == token.Plus {
			return value.String(left.AsString() + right.AsString()), nil
		}
	}
	return value.Null, undefinedFor(op, left.Kind())
}

func intBinary(op token.Token, l, r int64) (value.Value, error) {
	switch op.Kind {
	case token.Plus:
		return value.Int(l + r), nil
	case token.Minus:
		return value.Int(l - r), nil
	case token.Times:
		return value.Int(l * r), nil
	case token.Divide, token.Modulo:
		if r == 0 {
			return value.Null, errorAt(op, gwerror.CodeEvalDivisionByZero, "Division by zero.")
		}
		if op.Kind == token.Divide {
			return value.Int(l / r), nil
		}
		return value.Int(l % r), nil
	case token.LessThan:
		return value.Bool(l < r), nil
	case token.LessEqual:
		return value.Bool(l <= r), nil
	case token.GreaterThan:
		return value.Bool(l > r), nil
	case token.GreaterEqual:
		return value.Bool(l >= r), nil
	}
	return value.Null, undefinedFor(op, value.KindInt)
}

func floatBinary(op token.Token, l, r float64, wrap func(float64) value.Value) (value.Value, error) {
	switch op.Kind {
	case token.Plus:
		return wrap(l + r), nil
	case token.Minus:
		return wrap(l - r), nil
	case token.Times:
		return wrap(l * r), nil
	case token.Divide, token.Modulo:
		if r == 0 {
			return value.Null, errorAt(op, gwerror.CodeEvalDivisionByZero, "Division by zero.")
		}
		if op.Kind == token.Divide {
			return wrap(l / r), nil
		}
		return wrap(math.Mod(l, r)), nil
	case token.LessThan:
		return value.Bool(l < r), nil
	case token.LessEqual:
		return value.Bool(l <= r), nil
	case token.GreaterThan:
		return value.Bool(l > r), nil
	case token.GreaterEqual:
		return value.Bool(l >= r), nil
	}
	return value.Null, undefinedFor(op, value.KindFloat64)
}

func undefinedFor(op token.Token, kind value.Kind) error {
	switch op.Kind {
	case token.Plus, token.Minus, token.Times, token.Divide, token.Modulo,
		token.LessThan, token.LessEqual, token.GreaterThan, token.GreaterEqual:
		return errorAt(op, gwerror.CodeEvalTypeMismatch, "Operator '%s' is not defined for %s.", op.Lexeme, kind)
	}
	return errorAt(op, gwerror.CodeEvalUnsupportedOperator, "Unsupported binary operator '%s'.", op.Lexeme)
}

// sameFamily reports whether a binding of kind old may be overwritten by kind v
func sameFamily(old, v value.Kind) bool {
	if old == v {
		return true
	}
	isFloat := func(k value.Kind) bool { return k == value.KindFloat32 || k == value.KindFloat64 }
	return isFloat(old) && isFloat(v)
}
