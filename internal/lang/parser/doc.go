// File: doc.go
// Title: Parser Package Documentation
// Description: Documents the recursive-descent parser producing gwent ASTs.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-15
// Modified: 2026-10-15
//
// Change History:
// - 2026-10-15 v0.2.0: Initial parser

/*
Package parser builds an AST from a token sequence.

The grammar is parsed top-down, one method per precedence level, from
assignment down to primary expressions. Syntax errors do not stop parsing:
the parser records a ParseError, skips to the next declaration boundary and
carries on, so one pass reports every error in a file.

For loops never reach the tree. They are desugared into a block holding the
initializer and a while loop whose body runs the original body and then the
increment.

Usage:

	p := parser.New(tokens, parser.Options{MaxDepth: 256})
	stmts, errs := p.Parse()
	for _, e := range errs {
		fmt.Println(e)
	}
*/
package parser
