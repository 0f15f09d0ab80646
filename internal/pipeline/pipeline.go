// File: pipeline.go
// Title: Source Pipeline
// Description: Runs one source text through the lexer, parser and evaluator
//              and collects every failure as a stage-tagged diagnostic. Lex
//              and evaluation failures end the run; parse errors accumulate
//              and suppress evaluation.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-15
// Modified: 2026-10-15
//
// Change History:
// - 2026-10-15 v0.2.0: Initial implementation

package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/msto63/gwent/internal/core/config"
	gwerror "github.com/msto63/gwent/internal/core/error"
	gwlog "github.com/msto63/gwent/internal/core/log"
	"github.com/msto63/gwent/internal/lang/ast"
	"github.com/msto63/gwent/internal/lang/eval"
	"github.com/msto63/gwent/internal/lang/lexer"
	"github.com/msto63/gwent/internal/lang/parser"
	"github.com/msto63/gwent/internal/lang/token"
	"github.com/msto63/gwent/internal/lang/value"
)

// Options configures a Run
type Options struct {
	Logger *gwlog.Logger

	// Output receives script output in addition to Result.Output
	Output io.Writer

	// StopAfter ends the run after the given stage; StageNone runs everything
	StopAfter gwerror.Stage

	ParserMaxDepth int
	EvalMaxDepth   int
	Timeout        time.Duration
	TraceTokens    bool // log every token at trace level

	// Evaluator, when set, is reused so bindings persist between runs.
	// Its own output writer is used and Result.Output stays empty.
	Evaluator *eval.Evaluator
}

// FromConfig derives run options from the loaded configuration
func FromConfig(cfg *config.Config, logger *gwlog.Logger) Options {
	return Options{
		Logger:         logger,
		ParserMaxDepth: cfg.Parser.MaxDepth,
		EvalMaxDepth:   cfg.Eval.MaxDepth,
		Timeout:        cfg.Eval.Timeout.Duration,
		TraceTokens:    cfg.Lexer.TraceTokens,
	}
}

// Diagnostic is one failure reported by a stage
type Diagnostic struct {
	Stage   gwerror.Stage
	Code    gwerror.Code
	Message string
	Line    int
	Column  int
	Token   *token.Token // offending token for parse diagnostics
	Err     error
}

// String formats the diagnostic for terminal output
func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("[%s] %d:%d %s: %s", d.Stage, d.Line, d.Column, d.Code, d.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", d.Stage, d.Code, d.Message)
}

// Result holds everything a run produced
type Result struct {
	RunID       string
	Tokens      []token.Token
	Nodes       []ast.Stmt
	Diagnostics []Diagnostic
	Output      string
	Value       value.Value
	Duration    time.Duration
}

// Failed reports whether any stage produced a diagnostic
func (r *Result) Failed() bool {
	return len(r.Diagnostics) > 0
}

// Err returns the first diagnostic as an error, or nil
func (r *Result) Err() error {
	if len(r.Diagnostics) == 0 {
		return nil
	}
	return r.Diagnostics[0].Err
}

// Run processes source. It never returns nil.
func Run(ctx context.Context, source string, opts Options) *Result {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = gwlog.GetDefault()
	}

	result := &Result{RunID: uuid.NewString(), Value: value.Null}
	logger := opts.Logger.WithRunID(result.RunID).WithField("component", "pipeline")
	start := time.Now()
	defer func() { result.Duration = time.Since(start) }()

	tokens, err := lexer.New(source, lexer.Options{Logger: logger}).Tokenize()
	if err != nil {
		result.add(fromError(gwerror.StageLex, err))
		logger.LogError(err)
		return result
	}
	result.Tokens = tokens
	logger.Debug("Tokenized", gwlog.Fields{"tokens": len(tokens)})
	if opts.TraceTokens {
		for _, tok := range tokens {
			logger.Trace("Token", gwlog.Fields{"kind": tok.Kind.String(), "lexeme": tok.Lexeme, "line": tok.Line, "column": tok.Column})
		}
	}
	if opts.StopAfter == gwerror.StageLex {
		return result
	}

	p := parser.New(tokens, parser.Options{Logger: logger, MaxDepth: opts.ParserMaxDepth})
	nodes, parseErrors := p.Parse()
	result.Nodes = nodes
	for _, pe := range parseErrors {
		tok := pe.Token
		result.add(Diagnostic{
			Stage:   gwerror.StageParse,
			Code:    pe.Code,
			Message: pe.Message,
			Line:    tok.Line,
			Column:  tok.Column,
			Token:   &tok,
			Err:     pe.ToError(),
		})
	}
	if len(parseErrors) > 0 || opts.StopAfter == gwerror.StageParse {
		return result
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	evaluator := opts.Evaluator
	var captured bytes.Buffer
	if evaluator == nil {
		var out io.Writer = &captured
		if opts.Output != nil {
			out = io.MultiWriter(&captured, opts.Output)
		}
		evaluator = eval.New(eval.Options{Logger: logger, Output: out, MaxDepth: opts.EvalMaxDepth})
	}

	timer := logger.StartTimer("evaluate")
	err = evaluator.Execute(ctx, nodes)
	timer.Stop(gwlog.Fields{"statements": len(nodes)})
	result.Output = captured.String()
	if err != nil {
		result.add(fromError(gwerror.StageEval, err))
		logger.LogError(err)
		return result
	}
	result.Value = evaluator.LastValue()
	return result
}

func (r *Result) add(d Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d)
}

// fromError converts a stage failure into a diagnostic
func fromError(stage gwerror.Stage, err error) Diagnostic {
	d := Diagnostic{Stage: stage, Code: gwerror.GetCode(err), Message: err.Error(), Err: err}

	var gwErr *gwerror.Error
	if errors.As(err, &gwErr) {
		d.Message = gwErr.Message()
		d.Line, d.Column = gwErr.Position()
	}
	return d
}
