package chain

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/msto63/logchain/pkg/core/logging"
)

// MockHandler is a test handler
type MockHandler struct {
	name       string
	severity   Severity
	handleFunc func(ctx context.Context, message string, sev Severity) error
	callCount  atomic.Int32
	lastMsg    string
}

func NewMockHandler(name string, sev Severity) *MockHandler {
	return &MockHandler{name: name, severity: sev}
}

func (h *MockHandler) Name() string              { return h.name }
func (h *MockHandler) Accepts(sev Severity) bool { return sev == h.severity }

func (h *MockHandler) Handle(ctx context.Context, message string, sev Severity) error {
	h.callCount.Add(1)
	h.lastMsg = message
	if h.handleFunc != nil {
		return h.handleFunc(ctx, message, sev)
	}
	return nil
}

func (h *MockHandler) CallCount() int32 {
	return h.callCount.Load()
}

func newTestChain(t *testing.T) (*Chain, *MockHandler, *MockHandler, *MockHandler) {
	t.Helper()

	info := NewMockHandler("info", SeverityInfo)
	debug := NewMockHandler("debug", SeverityDebug)
	errh := NewMockHandler("error", SeverityError)

	c, err := NewChain(logging.Discard(), info, debug, errh)
	if err != nil {
		t.Fatalf("NewChain failed: %v", err)
	}
	return c, info, debug, errh
}

func TestNewChain(t *testing.T) {
	c, _, _, _ := newTestChain(t)

	if c.Len() != 3 {
		t.Errorf("expected 3 handlers, got %d", c.Len())
	}

	names := c.Handlers()
	expected := []string{"info", "debug", "error"}
	for i, name := range expected {
		if names[i] != name {
			t.Errorf("handler %d: expected %s, got %s", i, name, names[i])
		}
	}
}

func TestNewChain_NilLogger(t *testing.T) {
	c, err := NewChain(nil, NewMockHandler("info", SeverityInfo))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.Handle(context.Background(), "msg", SeverityInfo); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNewChain_DuplicateName(t *testing.T) {
	_, err := NewChain(logging.Discard(),
		NewMockHandler("info", SeverityInfo),
		NewMockHandler("info", SeverityDebug))

	if !errors.Is(err, ErrDuplicateHandler) {
		t.Errorf("expected ErrDuplicateHandler, got %v", err)
	}
}

func TestChain_Handle_FirstMatch(t *testing.T) {
	tests := []struct {
		name     string
		severity Severity
		expected string
	}{
		{"info goes to info handler", SeverityInfo, "info"},
		{"debug goes to debug handler", SeverityDebug, "debug"},
		{"error goes to error handler", SeverityError, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, info, debug, errh := newTestChain(t)

			handled, err := c.Handle(context.Background(), "payload", tt.severity)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !handled {
				t.Fatal("expected message to be handled")
			}

			total := info.CallCount() + debug.CallCount() + errh.CallCount()
			if total != 1 {
				t.Errorf("expected exactly one handler call, got %d", total)
			}

			byName := map[string]*MockHandler{"info": info, "debug": debug, "error": errh}
			if byName[tt.expected].CallCount() != 1 {
				t.Errorf("expected %s handler to be called", tt.expected)
			}
			if byName[tt.expected].lastMsg != "payload" {
				t.Errorf("expected message 'payload', got %q", byName[tt.expected].lastMsg)
			}
		})
	}
}

func TestChain_Handle_StopsAtFirstMatch(t *testing.T) {
	first := NewMockHandler("first", SeverityError)
	second := NewMockHandler("second", SeverityError)

	c, err := NewChain(logging.Discard(), first, second)
	if err != nil {
		t.Fatalf("NewChain failed: %v", err)
	}

	if _, err := c.Handle(context.Background(), "boom", SeverityError); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.CallCount() != 1 {
		t.Errorf("expected first handler to be called once, got %d", first.CallCount())
	}
	if second.CallCount() != 0 {
		t.Errorf("expected second handler to be skipped, got %d calls", second.CallCount())
	}
}

func TestChain_Handle_UnknownSeverityDropped(t *testing.T) {
	c, info, debug, errh := newTestChain(t)

	handled, err := c.Handle(context.Background(), "nobody listens", Severity(42))
	if err != nil {
		t.Fatalf("dropping must not be an error, got %v", err)
	}
	if handled {
		t.Error("expected message to be dropped")
	}
	if info.CallCount()+debug.CallCount()+errh.CallCount() != 0 {
		t.Error("no handler should be called for an unmatched severity")
	}
}

func TestChain_Remove(t *testing.T) {
	c, _, _, errh := newTestChain(t)

	if !c.Remove("error") {
		t.Fatal("expected Remove to return true")
	}
	if c.Remove("error") {
		t.Error("second Remove should return false")
	}

	handled, err := c.Handle(context.Background(), "lost", SeverityError)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if handled {
		t.Error("ERROR should be dropped once its handler is removed")
	}
	if errh.CallCount() != 0 {
		t.Error("removed handler must not be called")
	}
}

func TestChain_From(t *testing.T) {
	c, info, debug, _ := newTestChain(t)

	tail, err := c.From("debug")
	if err != nil {
		t.Fatalf("From failed: %v", err)
	}

	if tail.Len() != 2 {
		t.Errorf("expected tail of 2 handlers, got %d", tail.Len())
	}

	handled, err := tail.Handle(context.Background(), "skipped", SeverityInfo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if handled || info.CallCount() != 0 {
		t.Error("handlers before the entry point must not receive messages")
	}

	handled, _ = tail.Handle(context.Background(), "seen", SeverityDebug)
	if !handled || debug.CallCount() != 1 {
		t.Error("expected debug handler to consume message from the tail")
	}

	// The original chain is unaffected
	if c.Len() != 3 {
		t.Errorf("From must not modify the original chain, got %d handlers", c.Len())
	}
}

func TestChain_From_Unknown(t *testing.T) {
	c, _, _, _ := newTestChain(t)

	if _, err := c.From("warn"); !errors.Is(err, ErrHandlerNotFound) {
		t.Errorf("expected ErrHandlerNotFound, got %v", err)
	}
}

func TestChain_Handle_Error(t *testing.T) {
	failing := NewMockHandler("info", SeverityInfo)
	failing.handleFunc = func(context.Context, string, Severity) error {
		return errors.New("disk full")
	}
	fallback := NewMockHandler("fallback", SeverityInfo)

	c, err := NewChain(logging.Discard(), failing, fallback)
	if err != nil {
		t.Fatalf("NewChain failed: %v", err)
	}

	handled, err := c.Handle(context.Background(), "msg", SeverityInfo)
	if err == nil {
		t.Fatal("expected error from failing handler")
	}
	if handled {
		t.Error("failed handling should not report handled")
	}
	if err.Error() != "handler info failed: disk full" {
		t.Errorf("unexpected error message: %v", err)
	}
	if fallback.CallCount() != 0 {
		t.Error("walk must stop at the failing handler")
	}
}

func TestHandlerFunc(t *testing.T) {
	var got string
	h := HandlerFunc{
		HandlerName: "func",
		Severity:    SeverityDebug,
		Fn: func(_ context.Context, message string, _ Severity) error {
			got = message
			return nil
		},
	}

	c, err := NewChain(logging.Discard(), h)
	if err != nil {
		t.Fatalf("NewChain failed: %v", err)
	}

	if handled, _ := c.Handle(context.Background(), "hello", SeverityDebug); !handled {
		t.Error("expected HandlerFunc to handle DEBUG")
	}
	if got != "hello" {
		t.Errorf("expected 'hello', got %q", got)
	}
	if h.Accepts(SeverityInfo) {
		t.Error("HandlerFunc should only accept its severity")
	}
}
