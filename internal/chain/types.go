package chain

import (
	"context"
	"errors"
)

var (
	// ErrDuplicateHandler is returned when two handlers share a name
	ErrDuplicateHandler = errors.New("duplicate handler")
	// ErrHandlerNotFound is returned when a named handler is not linked
	ErrHandlerNotFound = errors.New("handler not found")
)

// Handler is a single link in the chain
type Handler interface {
	// Name returns the unique handler name
	Name() string

	// Accepts decides if this handler consumes messages of the severity
	Accepts(sev Severity) bool

	// Handle performs the handler's side effect
	Handle(ctx context.Context, message string, sev Severity) error
}

// HandlerFunc adapts a function into a Handler that accepts one severity
type HandlerFunc struct {
	HandlerName string
	Severity    Severity
	Fn          func(ctx context.Context, message string, sev Severity) error
}

// Name returns the handler name
func (h HandlerFunc) Name() string { return h.HandlerName }

// Accepts returns true for the configured severity
func (h HandlerFunc) Accepts(sev Severity) bool { return sev == h.Severity }

// Handle calls the wrapped function
func (h HandlerFunc) Handle(ctx context.Context, message string, sev Severity) error {
	if h.Fn == nil {
		return nil
	}
	return h.Fn(ctx, message, sev)
}
