package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/msto63/logchain/internal/chain"
)

// ErrAlreadyExecuted is returned when a command is executed a second time
var ErrAlreadyExecuted = errors.New("command already executed")

// Dispatcher is the entry point a command delivers its message to.
// *chain.Chain and the tails returned by Chain.From satisfy it.
type Dispatcher interface {
	Handle(ctx context.Context, message string, sev chain.Severity) (bool, error)
}

// Command is a deferred invocation
type Command interface {
	ID() string
	Execute(ctx context.Context) error
}

// LogCommand delivers a stored message to a dispatcher exactly once
type LogCommand struct {
	id        string
	target    Dispatcher
	message   string
	severity  chain.Severity
	createdAt time.Time
	executed  bool
	handled   bool
}

// NewLogCommand creates a log command. The stored message is the one that
// gets delivered; Execute takes no message argument.
func NewLogCommand(target Dispatcher, message string, sev chain.Severity) *LogCommand {
	return &LogCommand{
		id:        uuid.New().String(),
		target:    target,
		message:   message,
		severity:  sev,
		createdAt: time.Now(),
	}
}

// ID returns the command id
func (c *LogCommand) ID() string { return c.id }

// Message returns the stored message
func (c *LogCommand) Message() string { return c.message }

// Severity returns the stored severity
func (c *LogCommand) Severity() chain.Severity { return c.severity }

// CreatedAt returns when the command was created
func (c *LogCommand) CreatedAt() time.Time { return c.createdAt }

// Executed reports whether Execute has been called
func (c *LogCommand) Executed() bool { return c.executed }

// Handled reports whether a handler consumed the message
func (c *LogCommand) Handled() bool { return c.handled }

// Execute dispatches the stored message through the target
func (c *LogCommand) Execute(ctx context.Context) error {
	if c.executed {
		return fmt.Errorf("%w: %s", ErrAlreadyExecuted, c.id)
	}
	c.executed = true

	handled, err := c.target.Handle(chain.WithCommandID(ctx, c.id), c.message, c.severity)
	c.handled = handled
	return err
}
