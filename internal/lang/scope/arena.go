// File: arena.go
// Title: Scope Arena
// Description: Lexical scopes stored in a growable arena and addressed by
//              index handles. A scope is released when the region that
//              opened it exits, unless a closure pinned it; released slots
//              are queued on a FIFO free list and reused by later pushes.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-15
// Modified: 2026-10-15
//
// Change History:
// - 2026-10-15 v0.2.0: Initial implementation

package scope

import (
	"strings"

	"github.com/edwingeng/deque"

	"github.com/msto63/gwent/internal/lang/value"
)

// Handle addresses a scope record in an Arena
type Handle int

const (
	// Root is the global scope; it is never released
	Root Handle = 0

	// None marks the absence of a parent
	None Handle = -1
)

type record struct {
	vars   map[string]value.Value
	parent Handle
	pins   int
	live   bool
	closed bool // region exited while pinned
}

// Arena owns every scope of one evaluator
type Arena struct {
	records []record
	free    deque.Deque
}

// NewArena creates an arena holding only the root scope
func NewArena() *Arena {
	return &Arena{
		records: []record{{vars: make(map[string]value.Value), parent: None, live: true}},
		free:    deque.NewDeque(),
	}
}

// Push opens a child scope of parent and returns its handle
func (a *Arena) Push(parent Handle) Handle {
	a.mustBeLive(parent)

	if !a.free.Empty() {
		h := a.free.PopFront().(Handle)
		a.records[h] = record{vars: make(map[string]value.Value), parent: parent, live: true}
		return h
	}

	a.records = append(a.records, record{vars: make(map[string]value.Value), parent: parent, live: true})
	return Handle(len(a.records) - 1)
}

// Release marks the region of h as exited. A pinned scope stays readable
// for the closures holding it and is never returned to the free list.
func (a *Arena) Release(h Handle) {
	if h == Root || !a.valid(h) || !a.records[h].live {
		return
	}
	r := &a.records[h]
	if r.pins > 0 {
		r.closed = true
		return
	}
	r.live = false
	r.vars = nil
	a.free.PushBack(h)
}

// Pin keeps h and all of its ancestors alive for a closure
func (a *Arena) Pin(h Handle) {
	for ; h != None; h = a.records[h].parent {
		a.mustBeLive(h)
		a.records[h].pins++
	}
}

// Parent returns the enclosing scope of h, or None for the root
func (a *Arena) Parent(h Handle) Handle {
	a.mustBeLive(h)
	return a.records[h].parent
}

// Declare binds name in h, shadowing any binding in enclosing scopes
func (a *Arena) Declare(h Handle, name string, v value.Value) {
	a.mustBeLive(h)
	a.records[h].vars[normalize(name)] = v
}

// Lookup resolves name from h outwards
func (a *Arena) Lookup(h Handle, name string) (value.Value, bool) {
	key := normalize(name)
	for ; h != None; h = a.records[h].parent {
		a.mustBeLive(h)
		if v, ok := a.records[h].vars[key]; ok {
			return v, true
		}
	}
	return value.Null, false
}

// Assign updates the nearest existing binding of name. It reports false
// when no scope from h outwards binds the name.
func (a *Arena) Assign(h Handle, name string, v value.Value) bool {
	key := normalize(name)
	for ; h != None; h = a.records[h].parent {
		a.mustBeLive(h)
		if _, ok := a.records[h].vars[key]; ok {
			a.records[h].vars[key] = v
			return true
		}
	}
	return false
}

// Live returns the number of scopes currently holding bindings
func (a *Arena) Live() int {
	n := 0
	for i := range a.records {
		if a.records[i].live {
			n++
		}
	}
	return n
}

// Free returns the number of slots waiting for reuse
func (a *Arena) Free() int {
	return a.free.Len()
}

// Size returns the number of slots ever allocated
func (a *Arena) Size() int {
	return len(a.records)
}

func (a *Arena) valid(h Handle) bool {
	return h >= 0 && int(h) < len(a.records)
}

func (a *Arena) mustBeLive(h Handle) {
	if !a.valid(h) || !a.records[h].live {
		panic("scope: use of released handle")
	}
}

func normalize(name string) string {
	return strings.ToLower(name)
}
