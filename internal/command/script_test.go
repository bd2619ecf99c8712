package command

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msto63/logchain/internal/chain"
)

func TestParseScript(t *testing.T) {
	script := `# startup
INFO: System started successfully.

debug: Debugging connection issue.
ERROR: Error detected in module X: code 7
`

	entries, err := ParseScript(strings.NewReader(script))
	if err != nil {
		t.Fatalf("ParseScript failed: %v", err)
	}

	expected := []ScriptEntry{
		{Line: 2, Severity: chain.SeverityInfo, Message: "System started successfully."},
		{Line: 4, Severity: chain.SeverityDebug, Message: "Debugging connection issue."},
		{Line: 5, Severity: chain.SeverityError, Message: "Error detected in module X: code 7"},
	}

	if len(entries) != len(expected) {
		t.Fatalf("expected %d entries, got %d", len(expected), len(entries))
	}
	for i, want := range expected {
		if entries[i] != want {
			t.Errorf("entry %d = %+v, want %+v", i, entries[i], want)
		}
	}
}

func TestParseScript_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"missing separator", "INFO hello", "line 1: missing ':'"},
		{"unknown severity", "INFO: ok\nWARN: nope", "line 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScript(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should contain %q", err.Error(), tt.wantMsg)
			}
		})
	}

	_, err := ParseScript(strings.NewReader("TRACE: x"))
	if !errors.Is(err, chain.ErrUnknownSeverity) {
		t.Errorf("expected ErrUnknownSeverity, got %v", err)
	}
}

func TestParseScript_ConsoleRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	c := newConsoleChain(t, &buf)

	sent := []ScriptEntry{
		{Severity: chain.SeverityInfo, Message: "  indented"},
		{Severity: chain.SeverityDebug, Message: "trailing  "},
		{Severity: chain.SeverityError, Message: "key: value: more"},
		{Severity: chain.SeverityInfo, Message: ""},
		{Severity: chain.SeverityError, Message: strings.Repeat("x", 70000)},
	}
	for _, e := range sent {
		handled, err := c.Handle(context.Background(), e.Message, e.Severity)
		require.NoError(t, err)
		require.True(t, handled)
	}

	entries, err := ParseScript(&buf)
	require.NoError(t, err)
	require.Len(t, entries, len(sent))
	for i, want := range sent {
		assert.Equal(t, i+1, entries[i].Line)
		assert.Equal(t, want.Severity, entries[i].Severity)
		assert.Equal(t, want.Message, entries[i].Message, "entry %d", i)
	}
}

func TestParseScript_CRLFAndNoTrailingNewline(t *testing.T) {
	entries, err := ParseScript(strings.NewReader("INFO: first\r\n\r\nERROR: last"))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, ScriptEntry{Line: 1, Severity: chain.SeverityInfo, Message: "first"}, entries[0])
	assert.Equal(t, ScriptEntry{Line: 3, Severity: chain.SeverityError, Message: "last"}, entries[1])
}
