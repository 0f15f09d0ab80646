// File: builtins.go
// Title: Builtin Function Registry
// Description: Registry of host functions bound into the global scope of
//              every evaluator. Names are matched case-insensitively, the
//              same way script identifiers are resolved.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-15
// Modified: 2026-10-15
//
// Change History:
// - 2026-10-15 v0.2.0: Registry with Console.WriteLine

package eval

import (
	"fmt"
	"sort"
	"strings"

	gwerror "github.com/msto63/gwent/internal/core/error"
	"github.com/msto63/gwent/internal/lang/value"
)

// BuiltinFunc implements a builtin. args has exactly Arity entries.
type BuiltinFunc func(e *Evaluator, args []value.Value) (value.Value, error)

// Builtin is a host function callable from scripts
type Builtin struct {
	name  string
	arity int
	fn    BuiltinFunc
}

// NewBuiltin creates a builtin
func NewBuiltin(name string, arity int, fn BuiltinFunc) *Builtin {
	return &Builtin{name: name, arity: arity, fn: fn}
}

// Name implements value.Callable
func (b *Builtin) Name() string { return b.name }

// Arity implements value.Callable
func (b *Builtin) Arity() int { return b.arity }

// Registry holds builtins by normalized name
type Registry struct {
	builtins map[string]*Builtin
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{builtins: make(map[string]*Builtin)}
}

// StandardBuiltins returns a registry with the console builtins
func StandardBuiltins() *Registry {
	r := NewRegistry()
	writeLine := func(e *Evaluator, args []value.Value) (value.Value, error) {
		if _, err := fmt.Fprintln(e.output, args[0].String()); err != nil {
			return value.Null, gwerror.Wrap(err, "write failed").WithCode(gwerror.CodeIO)
		}
		return value.Null, nil
	}
	// both spellings resolve to the same host function
	_ = r.Register(NewBuiltin("Console.WriteLine", 1, writeLine))
	_ = r.Register(NewBuiltin("console_writeline", 1, writeLine))
	return r
}

// Register adds a builtin. Names must be unique ignoring case.
func (r *Registry) Register(b *Builtin) error {
	if b == nil {
		return gwerror.New("builtin cannot be nil").WithCode(gwerror.CodeInvalidInput)
	}
	if strings.TrimSpace(b.name) == "" {
		return gwerror.New("builtin name cannot be empty").WithCode(gwerror.CodeInvalidInput)
	}
	if b.arity < 0 || b.fn == nil {
		return gwerror.Newf("builtin %s is incomplete", b.name).WithCode(gwerror.CodeInvalidInput)
	}

	key := strings.ToLower(b.name)
	if _, exists := r.builtins[key]; exists {
		return gwerror.Newf("builtin %s already registered", b.name).WithCode(gwerror.CodeInvalidInput)
	}
	r.builtins[key] = b
	return nil
}

// Lookup returns the builtin registered under name
func (r *Registry) Lookup(name string) (*Builtin, bool) {
	b, ok := r.builtins[strings.ToLower(name)]
	return b, ok
}

// All returns the builtins sorted by name
func (r *Registry) All() []*Builtin {
	out := make([]*Builtin, 0, len(r.builtins))
	for _, b := range r.builtins {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}
