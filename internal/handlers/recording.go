package handlers

import (
	"context"
	"fmt"

	"github.com/msto63/logchain/internal/chain"
	"github.com/msto63/logchain/internal/store"
)

// Recorder persists consumed messages
type Recorder interface {
	Record(ctx context.Context, entry *store.Entry) error
}

// RecordingHandler wraps a handler and records every message it consumed
type RecordingHandler struct {
	inner    chain.Handler
	recorder Recorder
}

// NewRecordingHandler creates a recording decorator around inner
func NewRecordingHandler(inner chain.Handler, recorder Recorder) *RecordingHandler {
	return &RecordingHandler{
		inner:    inner,
		recorder: recorder,
	}
}

// Name returns the wrapped handler's name
func (h *RecordingHandler) Name() string {
	return h.inner.Name()
}

// Accepts delegates to the wrapped handler
func (h *RecordingHandler) Accepts(sev chain.Severity) bool {
	return h.inner.Accepts(sev)
}

// Handle runs the wrapped handler, then records the message. A record
// failure is returned even though the message was already delivered.
func (h *RecordingHandler) Handle(ctx context.Context, message string, sev chain.Severity) error {
	if err := h.inner.Handle(ctx, message, sev); err != nil {
		return err
	}

	entry := &store.Entry{
		Severity:  sev.String(),
		Handler:   h.inner.Name(),
		Message:   message,
		CommandID: chain.CommandIDFrom(ctx),
	}
	if err := h.recorder.Record(ctx, entry); err != nil {
		return fmt.Errorf("record: %w", err)
	}

	return nil
}
