// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used across gwent. Codes are grouped by
//              the pipeline stage that raises them (LEX_, PARSE_, EVAL_) plus a
//              few generic codes for configuration and I/O.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-15
// Modified: 2026-10-15
//
// Change History:
// - 2026-10-15 v0.2.0: Replaced service codes with front-end stage codes

package error

import "strings"

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeIO           Code = "IO_ERROR"
	CodeConfigError  Code = "CONFIG_ERROR"
	CodeTimeout      Code = "TIMEOUT"

	// Lexical analysis
	CodeLexIllegalCharacter     Code = "LEX_ILLEGAL_CHARACTER"
	CodeLexUnterminatedString   Code = "LEX_UNTERMINATED_STRING"
	CodeLexUnterminatedChar     Code = "LEX_UNTERMINATED_CHARACTER"
	CodeLexUnterminatedComment  Code = "LEX_UNTERMINATED_COMMENT"
	CodeLexInvalidNumber        Code = "LEX_INVALID_NUMBER"
	CodeLexInvalidCharacter     Code = "LEX_INVALID_CHARACTER"
	CodeLexUnexpectedEndOfInput Code = "LEX_UNEXPECTED_EOF"

	// Parsing
	CodeParseExpectedToken   Code = "PARSE_EXPECTED_TOKEN"
	CodeParseInvalidTarget   Code = "PARSE_INVALID_ASSIGNMENT_TARGET"
	CodeParseTooManyParams   Code = "PARSE_TOO_MANY_PARAMETERS"
	CodeParseTooManyArgs     Code = "PARSE_TOO_MANY_ARGUMENTS"
	CodeParseExpectedExpr    Code = "PARSE_EXPECTED_EXPRESSION"
	CodeParseTooDeep         Code = "PARSE_TOO_DEEP"

	// Evaluation
	CodeEvalUndefinedVariable   Code = "EVAL_UNDEFINED_VARIABLE"
	CodeEvalUndefinedAssignment Code = "EVAL_UNDEFINED_ASSIGNMENT"
	CodeEvalNullInitializer     Code = "EVAL_NULL_INITIALIZER"
	CodeEvalNullOperand         Code = "EVAL_NULL_OPERAND"
	CodeEvalTypeMismatch        Code = "EVAL_TYPE_MISMATCH"
	CodeEvalDivisionByZero      Code = "EVAL_DIVISION_BY_ZERO"
	CodeEvalNonBooleanCondition Code = "EVAL_NON_BOOLEAN_CONDITION"
	CodeEvalArityMismatch       Code = "EVAL_ARITY_MISMATCH"
	CodeEvalNotCallable         Code = "EVAL_NOT_CALLABLE"
	CodeEvalReturnOutside       Code = "EVAL_RETURN_OUTSIDE_FUNCTION"
	CodeEvalBreakOutside        Code = "EVAL_BREAK_OUTSIDE_LOOP"
	CodeEvalReturnTypeMismatch  Code = "EVAL_RETURN_TYPE_MISMATCH"
	CodeEvalUnsupportedOperator Code = "EVAL_UNSUPPORTED_OPERATOR"
	CodeEvalImportUnsupported   Code = "EVAL_IMPORT_UNSUPPORTED"
	CodeEvalUncaughtThrow       Code = "EVAL_UNCAUGHT_THROW"
	CodeEvalTooDeep             Code = "EVAL_TOO_DEEP"
	CodeEvalCancelled           Code = "EVAL_CANCELLED"
)

// Stage identifies the front-end phase an error code belongs to
type Stage int

const (
	StageNone Stage = iota
	StageLex
	StageParse
	StageEval
)

// String returns the stage name used in diagnostics
func (s Stage) String() string {
	switch s {
	case StageLex:
		return "Lex"
	case StageParse:
		return "Parse"
	case StageEval:
		return "Eval"
	default:
		return "None"
	}
}

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// Stage returns the pipeline stage of the code, derived from its prefix
func (c Code) Stage() Stage {
	s := string(c)
	switch {
	case strings.HasPrefix(s, "LEX_"):
		return StageLex
	case strings.HasPrefix(s, "PARSE_"):
		return StageParse
	case strings.HasPrefix(s, "EVAL_"):
		return StageEval
	default:
		return StageNone
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c.Stage() {
	case StageLex:
		return "lexer"
	case StageParse:
		return "parser"
	case StageEval:
		return "evaluator"
	}
	switch c {
	case CodeConfigError:
		return "configuration"
	case CodeIO:
		return "io"
	default:
		return "generic"
	}
}
