// File: doc.go
// Title: Lexer Package Documentation
// Description: Documents the tokenizer for gwent source text.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-15
// Modified: 2026-10-15
//
// Change History:
// - 2026-10-15 v0.2.0: Initial tokenizer

/*
Package lexer turns gwent source text into a flat token sequence.

Block comments are removed by a pre-pass that keeps their newlines, so every
token still reports the line and column where it starts. The scanner itself is
a small state machine over runes:

	Start -> Identifier | Number | String | Character | SingleLineComment

The first problem stops tokenizing and is returned as a *error.Error with a
LEX_ code and the position of the offending character.

Usage:

	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return err
	}
*/
package lexer
