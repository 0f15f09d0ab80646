// ============================================================================
// gwent - Script Language Front End
// ============================================================================
//
// Package:     version
// Description: Central version information for the gwent binary
// Author:      Mike Stoffels
// Created:     2026-10-15
// License:     MIT
// ============================================================================

package version

import "fmt"

// Version constants
const (
	// Tool version
	Tool = "0.2.0"

	// Language is the revision of the accepted source language
	Language = "1"
)

// Set by the linker: -ldflags "-X .../version.Commit=abc123"
var Commit = "dev"

// String returns the human-readable version line
func String() string {
	return fmt.Sprintf("gwent %s (language %s, commit %s)", Tool, Language, Commit)
}
