// File: level.go
// Title: Log Level Definitions
// Description: Log levels and output formats for the gwent logger. Names,
//              short labels and console colors live in one table per level.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-15
// Modified: 2026-10-15
//
// Change History:
// - 2026-10-15 v0.2.0: Reduced to the levels the front end emits, table-driven

package log

import "strings"

// Level represents the importance level of a log message
type Level int

const (
	// LevelTrace logs every token and node as it is produced
	LevelTrace Level = iota

	// LevelDebug logs stage boundaries and recoveries
	LevelDebug

	// LevelInfo logs one line per processed file
	LevelInfo

	// LevelWarn logs recoverable diagnostics
	LevelWarn

	// LevelError logs failures
	LevelError

	// LevelOff disables logging
	LevelOff
)

type levelInfo struct {
	name    string
	short   string
	color   string
	aliases []string
}

var levels = [...]levelInfo{
	LevelTrace: {"trace", "TRC", "\033[90m", []string{"trc"}},
	LevelDebug: {"debug", "DBG", "\033[36m", []string{"dbg"}},
	LevelInfo:  {"info", "INF", "\033[32m", []string{"inf", ""}},
	LevelWarn:  {"warn", "WRN", "\033[33m", []string{"wrn", "warning"}},
	LevelError: {"error", "ERR", "\033[31m", []string{"err"}},
	LevelOff:   {"off", "???", "\033[0m", []string{"none"}},
}

func (l Level) info() (levelInfo, bool) {
	if l < LevelTrace || l > LevelOff {
		return levelInfo{}, false
	}
	return levels[l], true
}

// String returns the lower-case level name
func (l Level) String() string {
	if li, ok := l.info(); ok {
		return li.name
	}
	return "unknown"
}

// ShortString returns a three-letter label used by the text formatter
func (l Level) ShortString() string {
	if li, ok := l.info(); ok {
		return li.short
	}
	return "???"
}

// Color returns the ANSI color sequence for console output
func (l Level) Color() string {
	if li, ok := l.info(); ok {
		return li.color
	}
	return "\033[0m"
}

// ShouldLog reports whether an entry at l passes the minimum level
func (l Level) ShouldLog(minLevel Level) bool {
	return minLevel != LevelOff && l >= minLevel
}

// ParseLevel accepts a level name or one of its aliases, ignoring case.
// An empty string means info.
func ParseLevel(level string) (Level, error) {
	s := strings.ToLower(strings.TrimSpace(level))
	for l, li := range levels {
		if s == li.name {
			return Level(l), nil
		}
		for _, alias := range li.aliases {
			if s == alias {
				return Level(l), nil
			}
		}
	}
	return LevelInfo, &ParseError{Input: level, Type: "level"}
}

// Format selects how entries are rendered
type Format int

const (
	FormatText Format = iota
	FormatJSON
	FormatConsole
)

var formatNames = map[Format]string{
	FormatText:    "text",
	FormatJSON:    "json",
	FormatConsole: "console",
}

// String returns the format name; unknown formats render as text
func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "text"
}

// ParseFormat parses a format name; an empty string means text
func ParseFormat(format string) (Format, error) {
	s := strings.ToLower(strings.TrimSpace(format))
	if s == "" {
		return FormatText, nil
	}
	for f, name := range formatNames {
		if name == s {
			return f, nil
		}
	}
	return FormatText, &ParseError{Input: format, Type: "format"}
}

// ParseError is returned for an unknown level or format name
type ParseError struct {
	Input string
	Type  string
}

func (e *ParseError) Error() string {
	return "invalid " + e.Type + ": " + e.Input
}
