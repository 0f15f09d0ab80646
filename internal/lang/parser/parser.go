// File: parser.go
// Title: gwent Recursive Descent Parser
// Description: Core parser state, error type and token helpers. Parse errors
//              are recovered at each declaration boundary by discarding
//              tokens up to a likely statement start, so one run reports
//              every independent syntax error.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-15
// Modified: 2026-10-15
//
// Change History:
// - 2026-10-15 v0.2.0: Parser for the gwent grammar

package parser

import (
	"fmt"

	gwerror "github.com/msto63/gwent/internal/core/error"
	gwlog "github.com/msto63/gwent/internal/core/log"
	"github.com/msto63/gwent/internal/lang/ast"
	"github.com/msto63/gwent/internal/lang/token"
)

const (
	// MaxParameters is the soft limit for parameters and call arguments
	MaxParameters = 255

	// DefaultMaxDepth bounds statement and expression nesting
	DefaultMaxDepth = 256
)

// Options configures a Parser
type Options struct {
	Logger   *gwlog.Logger
	MaxDepth int
}

// Parser turns a token sequence into statements
type Parser struct {
	tokens  []token.Token
	current int
	depth   int
	errors  []*ParseError
	seen    map[errorKey]struct{}
	logger  *gwlog.Logger
	options Options
}

// errorKey identifies an error by code and token so each is reported once
type errorKey struct {
	code  gwerror.Code
	token uint64
}

// ParseError is a recoverable syntax error at a specific token
type ParseError struct {
	Code    gwerror.Code
	Message string
	Token   token.Token
}

// Error implements the error interface
func (pe *ParseError) Error() string {
	near := fmt.Sprintf("near '%s'", pe.Token.Lexeme)
	if pe.Token.Kind == token.EOF {
		near = "at end"
	}
	return fmt.Sprintf("parse error at line %d, column %d: %s (%s)",
		pe.Token.Line, pe.Token.Column, pe.Message, near)
}

// ToError converts the parse error into a coded gwent error
func (pe *ParseError) ToError() *gwerror.Error {
	return gwerror.New(pe.Message).
		WithCode(pe.Code).
		WithPosition(pe.Token.Line, pe.Token.Column).
		WithDetail("lexeme", pe.Token.Lexeme)
}

// New creates a parser over tokens. A missing EOF sentinel is appended.
func New(tokens []token.Token, opts Options) *Parser {
	if opts.Logger == nil {
		opts.Logger = gwlog.GetDefault()
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}

	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EOF {
		line, column := 1, 1
		if len(tokens) > 0 {
			last := tokens[len(tokens)-1]
			line, column = last.Line, last.Column+len([]rune(last.Lexeme))
		}
		tokens = append(tokens[:len(tokens):len(tokens)], token.New(token.EOF, "", nil, line, column))
	}

	return &Parser{
		tokens:  tokens,
		seen:    make(map[errorKey]struct{}),
		logger:  opts.Logger.WithField("component", "parser"),
		options: opts,
	}
}

// Parse parses the whole token sequence. Failed declarations produce no
// statement; all errors are returned in source order.
func (p *Parser) Parse() ([]ast.Stmt, []*ParseError) {
	p.logger.Debug("Starting parse", gwlog.Fields{"tokens": len(p.tokens)})

	var stmts []ast.Stmt
	for !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}

	if len(p.errors) > 0 {
		p.logger.Warn("Parse completed with errors", gwlog.Fields{
			"errors":     len(p.errors),
			"statements": len(stmts),
		})
	} else {
		p.logger.Debug("Parse completed", gwlog.Fields{"statements": len(stmts)})
	}
	return stmts, p.errors
}

// Parse is a convenience wrapper using default options
func Parse(tokens []token.Token) ([]ast.Stmt, []*ParseError) {
	return New(tokens, Options{}).Parse()
}

// synchronize discards tokens until just past a ';' or at a token that
// starts a new declaration or statement
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Kind == token.Semicolon {
			return
		}
		switch p.peek().Kind {
		case token.Type, token.Fun, token.If, token.While, token.For, token.Return:
			return
		}
		p.advance()
	}
}

// enter tracks nesting depth; every successful enter needs a leave
func (p *Parser) enter() error {
	p.depth++
	if p.depth > p.options.MaxDepth {
		p.depth--
		return p.errorAt(p.peek(), gwerror.CodeParseTooDeep,
			fmt.Sprintf("Nesting exceeds maximum depth of %d.", p.options.MaxDepth))
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(kind token.Kind, message string) (token.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return token.Token{}, p.errorAt(p.peek(), gwerror.CodeParseExpectedToken, message)
}

func (p *Parser) check(kind token.Kind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) checkAhead(offset int, kind token.Kind) bool {
	i := p.current + offset
	if i >= len(p.tokens) {
		return false
	}
	return p.tokens[i].Kind == kind
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == token.EOF
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	if p.current == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.current-1]
}

// errorAt builds a parse error; the caller decides whether to unwind
func (p *Parser) errorAt(tok token.Token, code gwerror.Code, message string) *ParseError {
	return &ParseError{Code: code, Message: message, Token: tok}
}

// report records an error without unwinding. A second error with the same
// code at the same token is dropped.
func (p *Parser) report(err *ParseError) {
	key := errorKey{code: err.Code, token: err.Token.Hash()}
	if _, dup := p.seen[key]; dup {
		return
	}
	p.seen[key] = struct{}{}
	p.errors = append(p.errors, err)
	p.logger.Debug("Parse error", gwlog.Fields{
		"code":   err.Code,
		"line":   err.Token.Line,
		"column": err.Token.Column,
		"error":  err.Message,
	})
}
