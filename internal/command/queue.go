package command

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/msto63/logchain/internal/chain"
	"github.com/msto63/logchain/pkg/core/logging"
)

// Queue holds deferred commands and runs them in FIFO order.
//
// RunAll halts on the first failing command. The failed command has already
// been removed from the queue and is not retried; commands queued behind it
// stay queued for the next RunAll.
type Queue struct {
	commands []Command
	hook     Hook
	logger   *logging.Logger
	mu       sync.Mutex
}

// NewQueue creates an empty queue
func NewQueue(logger *logging.Logger) *Queue {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Queue{
		commands: make([]Command, 0),
		logger:   logger,
	}
}

// SetHook installs an observability hook (nil removes it)
func (q *Queue) SetHook(h Hook) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.hook = h
}

// Enqueue appends a log command targeting the given entry point
func (q *Queue) Enqueue(target Dispatcher, message string, sev chain.Severity) *LogCommand {
	cmd := NewLogCommand(target, message, sev)
	q.Add(cmd)
	return cmd
}

// Add appends any command
func (q *Queue) Add(cmd Command) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.commands = append(q.commands, cmd)
	q.logger.Trace("Command queued", "id", cmd.ID(), "pending", len(q.commands))
}

// RunAll executes every queued command once, in insertion order. It returns
// the number of commands that completed without error.
func (q *Queue) RunAll(ctx context.Context) (int, error) {
	executed := 0
	start := time.Now()

	for position := 0; ; position++ {
		if err := ctx.Err(); err != nil {
			q.logger.Warn("Queue run cancelled",
				"executed", executed,
				"pending", q.Len())
			return executed, err
		}

		cmd, hook, ok := q.pop()
		if !ok {
			break
		}

		if err := q.execute(ctx, cmd, hook, position); err != nil {
			q.logger.Error("Command failed",
				"id", cmd.ID(),
				"position", position,
				"pending", q.Len(),
				"error", err)
			return executed, fmt.Errorf("command %s failed: %w", cmd.ID(), err)
		}
		executed++
	}

	q.logger.Debug("Queue drained",
		"executed", executed,
		"duration_ms", time.Since(start).Milliseconds())

	return executed, nil
}

func (q *Queue) execute(ctx context.Context, cmd Command, hook Hook, position int) error {
	if hook == nil {
		return cmd.Execute(ctx)
	}

	info := infoFor(cmd, position)
	hctx, token := hook.OnCommandStart(ctx, info)
	err := cmd.Execute(hctx)
	hook.OnCommandEnd(hctx, token, info, err)
	return err
}

// pop removes the head of the queue
func (q *Queue) pop() (Command, Hook, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.commands) == 0 {
		return nil, nil, false
	}

	cmd := q.commands[0]
	q.commands[0] = nil
	q.commands = q.commands[1:]
	return cmd, q.hook, true
}

// Len returns the number of pending commands
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.commands)
}

// Pending returns a snapshot of the pending commands
func (q *Queue) Pending() []Command {
	q.mu.Lock()
	defer q.mu.Unlock()

	pending := make([]Command, len(q.commands))
	copy(pending, q.commands)
	return pending
}

// Clear discards all pending commands
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.commands = make([]Command, 0)
}
