// ============================================================================
// logchain - Severity Dispatch Chain
// ============================================================================
//
// Package:     logging
// Description: Structured diagnostic logger (stderr by default)
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"
	"sync"
)

// Logger is a leveled, structured logger with key-value convenience methods.
// Diagnostic output never goes to stdout, which carries dispatch lines.
type Logger struct {
	level     Level
	formatter Formatter
	output    io.Writer
	name      string
	fields    Fields

	mu *sync.Mutex
}

// Config holds logger configuration
type Config struct {
	Level  Level
	Format Format
	Output io.Writer
	Name   string
}

// DefaultConfig returns the default configuration for a named logger
func DefaultConfig(name string) Config {
	return Config{
		Level:  LevelInfo,
		Format: FormatText,
		Output: os.Stderr,
		Name:   name,
	}
}

// New creates a logger with default configuration
func New(name string) *Logger {
	return NewWithConfig(DefaultConfig(name))
}

// NewWithConfig creates a logger with the specified configuration
func NewWithConfig(cfg Config) *Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	return &Logger{
		level:     cfg.Level,
		formatter: GetFormatter(cfg.Format),
		output:    output,
		name:      cfg.Name,
		fields:    make(Fields),
		mu:        &sync.Mutex{},
	}
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return NewWithConfig(Config{Level: LevelError + 1, Output: io.Discard})
}

// With returns a child logger that adds the key-value pairs to every entry.
// The child shares the parent's output lock.
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	clone := *l
	clone.fields = l.fields.Merge(toFields(keysAndValues...))
	return &clone
}

// WithName returns a child logger with a different name
func (l *Logger) WithName(name string) *Logger {
	clone := *l
	clone.name = name
	return &clone
}

// Level returns the minimum level
func (l *Logger) Level() Level {
	return l.level
}

// IsLevelEnabled returns true if the given level would be written
func (l *Logger) IsLevelEnabled(level Level) bool {
	return level.ShouldLog(l.level)
}

// Trace logs a trace message
func (l *Logger) Trace(msg string, keysAndValues ...interface{}) {
	l.log(LevelTrace, msg, keysAndValues)
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.log(LevelDebug, msg, keysAndValues)
}

// Info logs an info message
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.log(LevelInfo, msg, keysAndValues)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.log(LevelWarn, msg, keysAndValues)
}

// Error logs an error message
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.log(LevelError, msg, keysAndValues)
}

func (l *Logger) log(level Level, msg string, keysAndValues []interface{}) {
	if !level.ShouldLog(l.level) {
		return
	}

	entry := NewEntry(level, msg)
	entry.Logger = l.name
	entry.Fields = l.fields.Merge(toFields(keysAndValues...))

	formatted, err := l.formatter.Format(entry)
	if err != nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.output.Write(formatted)
}
