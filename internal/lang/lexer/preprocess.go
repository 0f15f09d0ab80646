// File: preprocess.go
// Title: Block Comment Pre-pass
// Description: Blanks out /* ... */ comments before scanning. Comment text is
//              replaced by spaces and newlines are kept, so every later token
//              keeps its true line and column.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-15
// Modified: 2026-10-15
//
// Change History:
// - 2026-10-15 v0.2.0: Initial implementation

package lexer

import (
	gwerror "github.com/msto63/gwent/internal/core/error"
)

// stripBlockComments returns input with block comments blanked.
// Comments do not nest; the first */ closes the comment.
func stripBlockComments(input []rune) ([]rune, error) {
	out := make([]rune, len(input))
	copy(out, input)

	line, column := 1, 1
	openLine, openColumn := 0, 0
	inComment := false

	for i := 0; i < len(out); i++ {
		c := out[i]
		switch {
		case !inComment && c == '/' && i+1 < len(out) && out[i+1] == '*':
			inComment = true
			openLine, openColumn = line, column
			out[i], out[i+1] = ' ', ' '
			i++
			column += 2
			continue
		case inComment && c == '*' && i+1 < len(out) && out[i+1] == '/':
			inComment = false
			out[i], out[i+1] = ' ', ' '
			i++
			column += 2
			continue
		case !inComment && c == '/' && i+1 < len(out) && out[i+1] == '/':
			// a line comment may contain "/*"; skip to end of line untouched
			for i < len(out) && out[i] != '\n' {
				i++
				column++
			}
			if i < len(out) {
				line++
				column = 1
			}
			continue
		case !inComment && (c == '"' || c == '\''):
			// quoted text may contain "/*"; skip it with the scanner's escape rule
			j := i + 1
			for j < len(out) && !(out[j] == c && out[j-1] != '\\') {
				j++
			}
			for ; i < j && i < len(out); i++ {
				if out[i] == '\n' {
					line++
					column = 1
				} else {
					column++
				}
			}
			if i < len(out) {
				column++
			}
			continue
		}

		if c == '\n' {
			line++
			column = 1
			continue
		}
		if inComment {
			out[i] = ' '
		}
		column++
	}

	if inComment {
		return nil, gwerror.New("unterminated block comment").
			WithCode(gwerror.CodeLexUnterminatedComment).
			WithPosition(openLine, openColumn)
	}
	return out, nil
}
