// ============================================================================
// logchain - Severity Dispatch Chain
// ============================================================================
//
// Package:     logging
// Description: Diagnostic log levels
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package logging

import (
	"fmt"
	"strings"
)

// Level represents diagnostic log severity
type Level int

const (
	// LevelTrace is the most verbose level
	LevelTrace Level = iota
	// LevelDebug provides detailed information for debugging purposes
	LevelDebug
	// LevelInfo represents general informational messages
	LevelInfo
	// LevelWarn indicates potentially harmful situations
	LevelWarn
	// LevelError represents error conditions that need attention
	LevelError
)

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// ShortString returns a three letter tag used by the text formatter
func (l Level) ShortString() string {
	switch l {
	case LevelTrace:
		return "TRC"
	case LevelDebug:
		return "DBG"
	case LevelInfo:
		return "INF"
	case LevelWarn:
		return "WRN"
	case LevelError:
		return "ERR"
	default:
		return "???"
	}
}

// ShouldLog returns true if this level passes the given minimum level
func (l Level) ShouldLog(minLevel Level) bool {
	return l >= minLevel
}

// ParseLevel parses a string into a level
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "trc":
		return LevelTrace, nil
	case "debug", "dbg":
		return LevelDebug, nil
	case "info", "inf", "":
		return LevelInfo, nil
	case "warn", "wrn", "warning":
		return LevelWarn, nil
	case "error", "err":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("invalid log level: %q", level)
	}
}
