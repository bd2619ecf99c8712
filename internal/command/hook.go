package command

import (
	"context"

	"github.com/msto63/logchain/internal/chain"
)

// Hook provides observability callpoints around command execution
type Hook interface {
	OnCommandStart(ctx context.Context, info Info) (context.Context, HookToken)
	OnCommandEnd(ctx context.Context, token HookToken, info Info, err error)
}

// HookToken is an opaque value returned by OnCommandStart and passed back
// to OnCommandEnd. Only meaningful to the Hook that created it.
type HookToken interface{}

// Info carries command metadata passed to hooks
type Info struct {
	ID       string
	Position int // zero-based position within the current RunAll

	// Severity is only set for LogCommands
	Severity    chain.Severity
	HasSeverity bool
}

func infoFor(cmd Command, position int) Info {
	info := Info{ID: cmd.ID(), Position: position}
	if lc, ok := cmd.(*LogCommand); ok {
		info.Severity = lc.Severity()
		info.HasSeverity = true
	}
	return info
}
