// File: statements.go
// Title: Statement Execution
// Description: Executes declarations and statements and threads control
//              flow results through blocks, loops, switches and calls.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-15
// Modified: 2026-10-15
//
// Change History:
// - 2026-10-15 v0.2.0: Initial implementation

package eval

import (
	"errors"
	"fmt"

	gwerror "github.com/msto63/gwent/internal/core/error"
	"github.com/msto63/gwent/internal/lang/ast"
	"github.com/msto63/gwent/internal/lang/scope"
	"github.com/msto63/gwent/internal/lang/value"
)

type flowKind int

const (
	flowNormal flowKind = iota
	flowBreak
	flowContinue
	flowReturn
)

// flow is the completion of a statement
type flow struct {
	kind  flowKind
	value value.Value
}

var normal = flow{kind: flowNormal}

func (e *Evaluator) execute(stmt ast.Stmt) (flow, error) {
	switch n := stmt.(type) {
	case *ast.VarDecl:
		return normal, e.execVarDecl(n)
	case *ast.FunctionDecl:
		fn := e.newFunction(n.Name.Lexeme, n.Params, n.ReturnType, n.Body)
		e.arena.Declare(e.current, n.Name.Lexeme, value.Function(fn))
		return normal, nil
	case *ast.ArrayDecl:
		return normal, e.execArrayDecl(n)
	case *ast.StructDecl:
		d := &value.Decl{Kind: value.DeclStruct, Name: n.Name.Lexeme, Node: n}
		e.arena.Declare(e.current, n.Name.Lexeme, value.Declaration(d))
		return normal, nil
	case *ast.EnumDecl:
		d := &value.Decl{Kind: value.DeclEnum, Name: n.Name.Lexeme, Node: n}
		e.arena.Declare(e.current, n.Name.Lexeme, value.Declaration(d))
		return normal, nil
	case *ast.ExprStmt:
		v, err := e.evaluate(n.Expression)
		if err != nil {
			return normal, err
		}
		e.last = v
		return normal, nil
	case *ast.If:
		return e.execIf(n)
	case *ast.While:
		return e.execWhile(n)
	case *ast.For:
		return e.execute(ast.Desugar(n))
	case *ast.Block:
		return e.withScope(e.current, func(scope.Handle) (flow, error) {
			if n.Stepped {
				return e.executeStepped(n.Statements)
			}
			return e.executeAll(n.Statements)
		})
	case *ast.Return:
		return e.execReturn(n)
	case *ast.Switch:
		return e.execSwitch(n)
	case *ast.Break:
		if e.frame.loops == 0 && e.frame.switches == 0 {
			return normal, errorAt(n.Keyword, gwerror.CodeEvalBreakOutside, "'break' outside of a loop or switch.")
		}
		return flow{kind: flowBreak}, nil
	case *ast.Continue:
		if e.frame.loops == 0 {
			return normal, errorAt(n.Keyword, gwerror.CodeEvalBreakOutside, "'continue' outside of a loop.")
		}
		return flow{kind: flowContinue}, nil
	case *ast.TryCatch:
		return e.execTryCatch(n)
	case *ast.Throw:
		v, err := e.evaluate(n.Value)
		if err != nil {
			return normal, err
		}
		return normal, &thrown{value: v, token: n.Keyword}
	case *ast.Import:
		return normal, errorAt(n.Module, gwerror.CodeEvalImportUnsupported,
			"Import of '%s' is not supported.", n.Module.Lexeme)
	default:
		panic(fmt.Sprintf("eval: unhandled statement %T", stmt))
	}
}

// executeAll runs stmts in the current scope until one completes abruptly
func (e *Evaluator) executeAll(stmts []ast.Stmt) (flow, error) {
	for _, stmt := range stmts {
		fl, err := e.execute(stmt)
		if err != nil || fl.kind != flowNormal {
			return fl, err
		}
	}
	return normal, nil
}

// executeStepped runs a for body followed by its increment. A continue
// ends the body early but not the increment.
func (e *Evaluator) executeStepped(stmts []ast.Stmt) (flow, error) {
	fl, err := e.execute(stmts[0])
	if err != nil {
		return fl, err
	}
	if fl.kind == flowContinue {
		fl = normal
	}
	if fl.kind != flowNormal {
		return fl, nil
	}
	return e.executeAll(stmts[1:])
}

func (e *Evaluator) execVarDecl(n *ast.VarDecl) error {
	v, err := e.evaluate(n.Initializer)
	if err != nil {
		return err
	}
	if v.IsNull() {
		return errorAt(n.Name, gwerror.CodeEvalNullInitializer,
			"Variable '%s' cannot be initialized with null.", n.Name.Lexeme)
	}
	if !v.MatchesType(n.Type.Lexeme) {
		return errorAt(n.Name, gwerror.CodeEvalTypeMismatch,
			"Cannot initialize %s '%s' with %s.", n.Type.Lexeme, n.Name.Lexeme, v.Kind())
	}
	e.arena.Declare(e.current, n.Name.Lexeme, v)
	return nil
}

func (e *Evaluator) execArrayDecl(n *ast.ArrayDecl) error {
	if n.Size != nil {
		size, err := e.evaluate(n.Size)
		if err != nil {
			return err
		}
		if size.IsNull() {
			return errorAtNode(n.Size, gwerror.CodeEvalNullOperand, "Array size of '%s' is null.", n.Name.Lexeme)
		}
		if size.Kind() != value.KindInt {
			return errorAtNode(n.Size, gwerror.CodeEvalTypeMismatch,
				"Array size of '%s' must be int, got %s.", n.Name.Lexeme, size.Kind())
		}
	}

	for _, el := range n.Elements {
		v, err := e.evaluate(el)
		if err != nil {
			return err
		}
		if v.IsNull() {
			return errorAtNode(el, gwerror.CodeEvalNullInitializer,
				"Array '%s' cannot hold null elements.", n.Name.Lexeme)
		}
		if !v.MatchesType(n.Type.Lexeme) {
			return errorAtNode(el, gwerror.CodeEvalTypeMismatch,
				"Array '%s' of %s cannot hold %s.", n.Name.Lexeme, n.Type.Lexeme, v.Kind())
		}
	}

	d := &value.Decl{Kind: value.DeclArray, Name: n.Name.Lexeme, Node: n}
	e.arena.Declare(e.current, n.Name.Lexeme, value.Declaration(d))
	return nil
}

func (e *Evaluator) execIf(n *ast.If) (flow, error) {
	cond, err := e.condition(n.Condition, "if")
	if err != nil {
		return normal, err
	}
	if cond {
		return e.execute(n.Then)
	}
	return e.execute(n.Else)
}

func (e *Evaluator) execWhile(n *ast.While) (flow, error) {
	e.frame.loops++
	defer func() { e.frame.loops-- }()

	for {
		if err := e.checkContext(n.Position()); err != nil {
			return normal, err
		}
		cond, err := e.condition(n.Condition, "while")
		if err != nil {
			return normal, err
		}
		if !cond {
			return normal, nil
		}

		fl, err := e.execute(n.Body)
		if err != nil {
			return normal, err
		}
		switch fl.kind {
		case flowBreak:
			return normal, nil
		case flowReturn:
			return fl, nil
		}
	}
}

func (e *Evaluator) execReturn(n *ast.Return) (flow, error) {
	if !e.frame.function {
		return normal, errorAt(n.Keyword, gwerror.CodeEvalReturnOutside, "Cannot return from top-level code.")
	}
	v, err := e.evaluate(n.Value)
	if err != nil {
		return normal, err
	}
	if rt := e.frame.returnType; rt != nil && !v.MatchesType(rt.Lexeme) {
		return normal, errorAt(n.Keyword, gwerror.CodeEvalReturnTypeMismatch,
			"Function '%s' must return %s, got %s.", e.frame.name, rt.Lexeme, v.Kind())
	}
	return flow{kind: flowReturn, value: v}, nil
}

func (e *Evaluator) execSwitch(n *ast.Switch) (flow, error) {
	subject, err := e.evaluate(n.Subject)
	if err != nil {
		return normal, err
	}

	body := n.Default
	for _, c := range n.Cases {
		v, err := e.evaluate(c.Value)
		if err != nil {
			return normal, err
		}
		if v.Kind() != subject.Kind() {
			return normal, errorAt(c.Keyword, gwerror.CodeEvalTypeMismatch,
				"Case value of type %s does not match switch subject of type %s.", v.Kind(), subject.Kind())
		}
		if v.Equal(subject) {
			body = c.Body
			break
		}
	}
	if body == nil {
		return normal, nil
	}

	e.frame.switches++
	defer func() { e.frame.switches-- }()

	fl, err := e.execute(body)
	if fl.kind == flowBreak {
		return normal, err
	}
	return fl, err
}

func (e *Evaluator) execTryCatch(n *ast.TryCatch) (flow, error) {
	fl, err := e.execute(n.Try)

	var th *thrown
	if err != nil && errors.As(err, &th) && th.value.MatchesType(n.CatchParam.Type.Lexeme) {
		fl, err = e.withScope(e.current, func(h scope.Handle) (flow, error) {
			e.arena.Declare(h, n.CatchParam.Name.Lexeme, th.value)
			return e.execute(n.Catch)
		})
	}

	if n.Finally != nil {
		ffl, ferr := e.execute(n.Finally)
		if ferr != nil || ffl.kind != flowNormal {
			return ffl, ferr
		}
	}
	return fl, err
}

// condition evaluates a boolean condition for construct
func (e *Evaluator) condition(expr ast.Expr, construct string) (bool, error) {
	v, err := e.evaluate(expr)
	if err != nil {
		return false, err
	}
	if v.Kind() != value.KindBool {
		return false, errorAtNode(expr, gwerror.CodeEvalNonBooleanCondition,
			"Condition of '%s' must be bool, got %s.", construct, v.Kind())
	}
	return v.AsBool(), nil
}
