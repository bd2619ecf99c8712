package handlers

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/msto63/logchain/internal/chain"
)

// Style selects how the console handler renders the severity tag
type Style int

const (
	// StylePlain writes "<SEVERITY>: <message>" without decoration
	StylePlain Style = iota
	// StyleColor renders the severity tag in its palette color
	StyleColor
)

// ParseStyle parses a style name
func ParseStyle(name string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "plain", "":
		return StylePlain, nil
	case "color", "colour":
		return StyleColor, nil
	default:
		return StylePlain, fmt.Errorf("unknown console style: %q", name)
	}
}

var severityStyles = map[chain.Severity]lipgloss.Style{
	chain.SeverityInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4")).Bold(true),
	chain.SeverityDebug: lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8")).Bold(true),
	chain.SeverityError: lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true),
}

// ConsoleHandler prints consumed messages, one line each
type ConsoleHandler struct {
	*BaseHandler
	out   io.Writer
	style Style
	mu    sync.Mutex
}

// NewConsoleHandler creates a console handler for one severity
func NewConsoleHandler(name string, severity chain.Severity, out io.Writer, style Style) *ConsoleHandler {
	return &ConsoleHandler{
		BaseHandler: NewBaseHandler(name, severity),
		out:         out,
		style:       style,
	}
}

// NewInfoHandler creates the plain INFO console handler
func NewInfoHandler(out io.Writer) *ConsoleHandler {
	return NewConsoleHandler(HandlerName(chain.SeverityInfo), chain.SeverityInfo, out, StylePlain)
}

// NewDebugHandler creates the plain DEBUG console handler
func NewDebugHandler(out io.Writer) *ConsoleHandler {
	return NewConsoleHandler(HandlerName(chain.SeverityDebug), chain.SeverityDebug, out, StylePlain)
}

// NewErrorHandler creates the plain ERROR console handler
func NewErrorHandler(out io.Writer) *ConsoleHandler {
	return NewConsoleHandler(HandlerName(chain.SeverityError), chain.SeverityError, out, StylePlain)
}

// Handle writes "<SEVERITY>: <message>" followed by a newline
func (h *ConsoleHandler) Handle(_ context.Context, message string, sev chain.Severity) error {
	tag := sev.String()
	if h.style == StyleColor {
		if style, ok := severityStyles[sev]; ok {
			tag = style.Render(tag)
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := fmt.Fprintf(h.out, "%s: %s\n", tag, message)
	return err
}

// HandlerName returns the conventional handler name for a severity
func HandlerName(sev chain.Severity) string {
	return strings.ToLower(sev.String())
}
