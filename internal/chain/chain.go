package chain

import (
	"context"
	"fmt"
	"sync"

	"github.com/msto63/logchain/pkg/core/logging"
)

// Chain dispatches a message to the first linked handler that accepts its
// severity. Handlers are kept as an ordered list; order is link order.
type Chain struct {
	handlers []Handler
	logger   *logging.Logger
	mu       sync.RWMutex
}

// NewChain creates a chain linking the handlers in the given order
func NewChain(logger *logging.Logger, handlers ...Handler) (*Chain, error) {
	if logger == nil {
		logger = logging.Discard()
	}

	c := &Chain{
		handlers: make([]Handler, 0, len(handlers)),
		logger:   logger,
	}

	for _, h := range handlers {
		if err := c.Append(h); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Append links a handler at the tail of the chain
func (c *Chain) Append(h Handler) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.indexOf(h.Name()) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateHandler, h.Name())
	}

	c.handlers = append(c.handlers, h)

	c.logger.Debug("Handler linked",
		"name", h.Name(),
		"position", len(c.handlers)-1)

	return nil
}

// Remove unlinks a handler by name
func (c *Chain) Remove(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(name)
	if idx < 0 {
		return false
	}

	result := make([]Handler, 0, len(c.handlers)-1)
	result = append(result, c.handlers[:idx]...)
	result = append(result, c.handlers[idx+1:]...)
	c.handlers = result

	c.logger.Debug("Handler unlinked", "name", name)
	return true
}

// From returns the tail of the chain that starts at the named handler.
// Handlers linked before it never see messages dispatched through the tail.
func (c *Chain) From(name string) (*Chain, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	idx := c.indexOf(name)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrHandlerNotFound, name)
	}

	tail := make([]Handler, len(c.handlers)-idx)
	copy(tail, c.handlers[idx:])

	return &Chain{
		handlers: tail,
		logger:   c.logger,
	}, nil
}

// Handle walks the chain and lets the first accepting handler consume the
// message. It returns false with a nil error if no handler accepts the
// severity; that message is dropped.
func (c *Chain) Handle(ctx context.Context, message string, sev Severity) (bool, error) {
	c.mu.RLock()
	handlers := make([]Handler, len(c.handlers))
	copy(handlers, c.handlers)
	c.mu.RUnlock()

	for _, h := range handlers {
		if !h.Accepts(sev) {
			continue
		}

		if err := h.Handle(ctx, message, sev); err != nil {
			c.logger.Error("Handler failed",
				"handler", h.Name(),
				"severity", sev.String(),
				"error", err)
			return false, fmt.Errorf("handler %s failed: %w", h.Name(), err)
		}

		c.logger.Trace("Message handled",
			"handler", h.Name(),
			"severity", sev.String())
		return true, nil
	}

	c.logger.Debug("Message dropped", "severity", sev.String())
	return false, nil
}

// Handlers returns the linked handler names in order
func (c *Chain) Handlers() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, len(c.handlers))
	for i, h := range c.handlers {
		names[i] = h.Name()
	}
	return names
}

// Len returns the number of linked handlers
func (c *Chain) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.handlers)
}

func (c *Chain) indexOf(name string) int {
	for i, h := range c.handlers {
		if h.Name() == name {
			return i
		}
	}
	return -1
}
