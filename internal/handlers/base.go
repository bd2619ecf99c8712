package handlers

import (
	"github.com/msto63/logchain/internal/chain"
)

// BaseHandler provides the name and severity predicate shared by handlers
type BaseHandler struct {
	name     string
	severity chain.Severity
	enabled  bool
}

// NewBaseHandler creates a new base handler
func NewBaseHandler(name string, severity chain.Severity) *BaseHandler {
	return &BaseHandler{
		name:     name,
		severity: severity,
		enabled:  true,
	}
}

// Name returns the handler name
func (h *BaseHandler) Name() string {
	return h.name
}

// Severity returns the severity this handler consumes
func (h *BaseHandler) Severity() chain.Severity {
	return h.severity
}

// SetEnabled enables or disables the handler
func (h *BaseHandler) SetEnabled(enabled bool) {
	h.enabled = enabled
}

// IsEnabled returns whether the handler is enabled
func (h *BaseHandler) IsEnabled() bool {
	return h.enabled
}

// Accepts returns true if the handler is enabled and the severity matches.
// A disabled handler forwards everything.
func (h *BaseHandler) Accepts(sev chain.Severity) bool {
	return h.enabled && sev == h.severity
}
