// File: evaluator.go
// Title: gwent Evaluator
// Description: Tree-walking evaluator that checks operand and declaration
//              types while it executes. Scopes live in an arena owned by the
//              evaluator; control flow is threaded through statements as a
//              tagged result, and a script throw travels as a Go error that
//              only try/catch recognizes.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-15
// Modified: 2026-10-15
//
// Change History:
// - 2026-10-15 v0.2.0: Initial implementation

package eval

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	gwerror "github.com/msto63/gwent/internal/core/error"
	gwlog "github.com/msto63/gwent/internal/core/log"
	"github.com/msto63/gwent/internal/lang/ast"
	"github.com/msto63/gwent/internal/lang/scope"
	"github.com/msto63/gwent/internal/lang/token"
	"github.com/msto63/gwent/internal/lang/value"
)

// DefaultMaxDepth bounds nested function calls
const DefaultMaxDepth = 256

// Options configures an Evaluator
type Options struct {
	Logger   *gwlog.Logger
	Output   io.Writer // Console.WriteLine target, defaults to stdout
	MaxDepth int
	Builtins *Registry // defaults to the standard builtins
}

// Evaluator executes statements against a persistent global scope.
// It is not safe for concurrent use.
type Evaluator struct {
	arena    *scope.Arena
	current  scope.Handle
	frame    *frame
	depth    int
	ctx      context.Context
	last     value.Value
	output   io.Writer
	logger   *gwlog.Logger
	options  Options
	builtins *Registry
}

// frame is the state of one function activation or of the top level
type frame struct {
	function   bool
	name       string
	returnType *token.Token
	loops      int
	switches   int
}

// New creates an evaluator with the builtins bound in the global scope
func New(opts Options) *Evaluator {
	if opts.Logger == nil {
		opts.Logger = gwlog.GetDefault()
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.Builtins == nil {
		opts.Builtins = StandardBuiltins()
	}

	e := &Evaluator{
		arena:    scope.NewArena(),
		current:  scope.Root,
		frame:    &frame{},
		ctx:      context.Background(),
		last:     value.Null,
		output:   opts.Output,
		logger:   opts.Logger.WithField("component", "evaluator"),
		options:  opts,
		builtins: opts.Builtins,
	}

	for _, b := range e.builtins.All() {
		e.arena.Declare(scope.Root, b.Name(), value.Function(b))
	}
	return e
}

// Execute runs stmts in the global scope. Evaluation stops at the first
// error; bindings made before it remain visible to later calls.
func (e *Evaluator) Execute(ctx context.Context, stmts []ast.Stmt) error {
	if ctx == nil {
		ctx = context.Background()
	}
	e.ctx = ctx
	e.current = scope.Root
	e.frame = &frame{}
	e.depth = 0

	timer := e.logger.StartTimer("execute")
	for _, stmt := range stmts {
		if err := e.checkContext(stmt.Position()); err != nil {
			return err
		}
		if _, err := e.execute(stmt); err != nil {
			err = e.uncaught(err)
			timer.Stop(gwlog.Fields{"statements": len(stmts), "failed": true})
			return err
		}
	}
	timer.Stop(gwlog.Fields{"statements": len(stmts)})
	return nil
}

// Lookup resolves a global binding
func (e *Evaluator) Lookup(name string) (value.Value, bool) {
	return e.arena.Lookup(scope.Root, name)
}

// LastValue returns the value of the most recent expression statement
func (e *Evaluator) LastValue() value.Value {
	return e.last
}

// Arena exposes the scope arena for inspection
func (e *Evaluator) Arena() *scope.Arena {
	return e.arena
}

// thrown carries a script exception up to the nearest matching catch
type thrown struct {
	value value.Value
	token token.Token
}

func (t *thrown) Error() string {
	return fmt.Sprintf("uncaught throw of %s %s", t.value.Kind(), t.value)
}

// uncaught converts an escaped script throw into an evaluation error
func (e *Evaluator) uncaught(err error) error {
	var th *thrown
	if !errors.As(err, &th) {
		return err
	}
	return errorAt(th.token, gwerror.CodeEvalUncaughtThrow, "Uncaught exception: %s", th.value).
		WithDetail("value", th.value.String())
}

func (e *Evaluator) checkContext(pos ast.Position) error {
	if err := e.ctx.Err(); err != nil {
		return gwerror.Wrap(err, "evaluation cancelled").
			WithCode(gwerror.CodeEvalCancelled).
			WithPosition(pos.Line, pos.Column)
	}
	return nil
}

// withScope runs fn in a fresh child of parent and restores the previous
// scope on every exit path
func (e *Evaluator) withScope(parent scope.Handle, fn func(h scope.Handle) (flow, error)) (flow, error) {
	prev := e.current
	h := e.arena.Push(parent)
	e.current = h
	defer func() {
		e.current = prev
		e.arena.Release(h)
	}()
	return fn(h)
}

func errorAt(tok token.Token, code gwerror.Code, format string, args ...interface{}) *gwerror.Error {
	return gwerror.Newf(format, args...).
		WithCode(code).
		WithPosition(tok.Line, tok.Column).
		WithDetail("lexeme", tok.Lexeme)
}

func errorAtNode(n ast.Node, code gwerror.Code, format string, args ...interface{}) *gwerror.Error {
	pos := n.Position()
	return gwerror.Newf(format, args...).
		WithCode(code).
		WithPosition(pos.Line, pos.Column)
}
