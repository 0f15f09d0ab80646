package eval

import (
	gwerror "github.com/msto63/gwent/internal/core/error"
	"github.com/msto63/gwent/internal/lang/ast"
	"github.com/msto63/gwent/internal/lang/scope"
	"github.com/msto63/gwent/internal/lang/token"
	"github.com/msto63/gwent/internal/lang/value"
)

// function is a user function or lambda closed over its declaring scope
type function struct {
	name       string
	params     []ast.Param
	returnType *token.Token
	body       *ast.Block
	closure    scope.Handle
}

func (f *function) Name() string { return f.name }
func (f *function) Arity() int   { return len(f.params) }

// newFunction captures the current scope and pins it for the closure
func (e *Evaluator) newFunction(name string, params []ast.Param, returnType *token.Token, body *ast.Block) *function {
	e.arena.Pin(e.current)
	return &function{
		name:       name,
		params:     params,
		returnType: returnType,
		body:       body,
		closure:    e.current,
	}
}

func (e *Evaluator) evalCall(n *ast.Call) (value.Value, error) {
	callee, err := e.evaluate(n.Callee)
	if err != nil {
		return value.Null, err
	}
	if callee.Kind() != value.KindFunction {
		return value.Null, errorAt(n.Paren, gwerror.CodeEvalNotCallable,
			"Can only call functions, got %s.", callee.Kind())
	}
	fn := callee.AsFunction()

	args := make([]value.Value, 0, len(n.Arguments))
	for _, arg := range n.Arguments {
		v, err := e.evaluate(arg)
		if err != nil {
			return value.Null, err
		}
		args = append(args, v)
	}
	if len(args) != fn.Arity() {
		return value.Null, errorAt(n.Paren, gwerror.CodeEvalArityMismatch,
			"Expected %d arguments but got %d.", fn.Arity(), len(args))
	}

	if e.depth >= e.options.MaxDepth {
		return value.Null, errorAt(n.Paren, gwerror.CodeEvalTooDeep,
			"Call depth exceeds %d.", e.options.MaxDepth)
	}
	if err := e.checkContext(n.Position()); err != nil {
		return value.Null, err
	}
	e.depth++
	defer func() { e.depth-- }()

	switch f := fn.(type) {
	case *Builtin:
		return f.fn(e, args)
	case *function:
		return e.callFunction(f, args, n.Paren)
	default:
		return value.Null, errorAt(n.Paren, gwerror.CodeEvalNotCallable, "Unknown callable %s.", fn.Name())
	}
}

func (e *Evaluator) callFunction(f *function, args []value.Value, paren token.Token) (value.Value, error) {
	for i, p := range f.params {
		if !args[i].MatchesType(p.Type.Lexeme) {
			return value.Null, errorAt(paren, gwerror.CodeEvalTypeMismatch,
				"Argument '%s' of '%s' must be %s, got %s.", p.Name.Lexeme, f.name, p.Type.Lexeme, args[i].Kind())
		}
	}

	caller := e.frame
	e.frame = &frame{function: true, name: f.name, returnType: f.returnType}
	defer func() { e.frame = caller }()

	fl, err := e.withScope(f.closure, func(h scope.Handle) (flow, error) {
		for i, p := range f.params {
			e.arena.Declare(h, p.Name.Lexeme, args[i])
		}
		return e.executeAll(f.body.Statements)
	})
	if err != nil {
		return value.Null, err
	}
	if fl.kind == flowReturn {
		return fl.value, nil
	}
	return value.Null, nil
}
