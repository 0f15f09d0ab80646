// File: doc.go
// Title: Evaluator Package Documentation
// Description: Documents the fused type checker and interpreter.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-15
// Modified: 2026-10-15
//
// Change History:
// - 2026-10-15 v0.2.0: Initial evaluator

/*
Package eval type-checks and executes gwent statements in one walk.

There is no separate checking pass. Each operator and declaration checks the
kinds of the values it receives and fails with an EVAL_ coded error at the
first mismatch. Variables live in a scope.Arena owned by the Evaluator, so
declarations made by one Execute call are visible to the next.

Script exceptions raised by throw travel as Go errors until a try statement
with a matching catch type takes them. Evaluation errors are never caught by
scripts.

Builtins are Go functions registered in a Registry and bound into the global
scope when the Evaluator is created.
*/
package eval
