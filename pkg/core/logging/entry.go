// ============================================================================
// logchain - Severity Dispatch Chain
// ============================================================================
//
// Package:     logging
// Description: Log entry structure and structured fields
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package logging

import (
	"time"
)

// Entry represents a single diagnostic log entry
type Entry struct {
	Timestamp time.Time
	Level     Level
	Message   string
	Logger    string
	Fields    Fields
}

// Fields represents custom key-value pairs for structured logging
type Fields map[string]interface{}

// NewEntry creates a new entry with the given level and message
func NewEntry(level Level, message string) *Entry {
	return &Entry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
		Fields:    make(Fields),
	}
}

// Merge combines two field sets into a new one; other wins on conflicts
func (f Fields) Merge(other Fields) Fields {
	result := make(Fields, len(f)+len(other))
	for k, v := range f {
		result[k] = v
	}
	for k, v := range other {
		result[k] = v
	}
	return result
}

// toFields converts key-value pairs to Fields. Non-string keys and a
// trailing orphan value are skipped.
func toFields(keysAndValues ...interface{}) Fields {
	if len(keysAndValues) == 0 {
		return nil
	}

	fields := make(Fields)
	for i := 0; i < len(keysAndValues)-1; i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}
