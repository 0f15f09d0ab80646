// File: severity.go
// Title: Error Severity Levels
// Description: Severity levels for gwent errors and the default mapping from
//              error codes to severities.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-15
// Modified: 2026-10-15
//
// Change History:
// - 2026-10-15 v0.2.0: Mapping rewritten for front-end codes

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow is a recoverable problem; parsing continues after it
	SeverityLow Severity = iota

	// SeverityMedium stops the current file but not the run
	SeverityMedium

	// SeverityHigh indicates an environment problem (config, I/O)
	SeverityHigh

	// SeverityCritical indicates an internal fault
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// GetSeverityFromCode determines the default severity for a code
func GetSeverityFromCode(code Code) Severity {
	switch code.Stage() {
	case StageParse:
		return SeverityLow
	case StageLex, StageEval:
		return SeverityMedium
	}

	switch code {
	case CodeInternal:
		return SeverityCritical
	case CodeIO, CodeConfigError:
		return SeverityHigh
	default:
		return SeverityMedium
	}
}
