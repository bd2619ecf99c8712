package handlers

import (
	"fmt"
	"io"
	"os"

	"github.com/msto63/logchain/internal/chain"
	"github.com/msto63/logchain/pkg/core/logging"
)

// BuildOptions configures chain assembly
type BuildOptions struct {
	// Order lists the severities in link order. Empty means INFO, DEBUG, ERROR.
	Order []chain.Severity

	// Out receives console lines (default: os.Stdout)
	Out io.Writer

	// Style selects plain or colored severity tags
	Style Style

	// Recorder, if set, wraps each handler in a RecordingHandler
	Recorder Recorder

	Logger *logging.Logger
}

// BuildChain assembles a console handler chain in the configured order
func BuildChain(opts BuildOptions) (*chain.Chain, error) {
	order := opts.Order
	if len(order) == 0 {
		order = chain.AllSeverities()
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	linked := make([]chain.Handler, 0, len(order))
	for _, sev := range order {
		if !sev.IsValid() {
			return nil, fmt.Errorf("build chain: %w: %d", chain.ErrUnknownSeverity, int(sev))
		}

		var h chain.Handler = NewConsoleHandler(HandlerName(sev), sev, out, opts.Style)
		if opts.Recorder != nil {
			h = NewRecordingHandler(h, opts.Recorder)
		}
		linked = append(linked, h)
	}

	c, err := chain.NewChain(opts.Logger, linked...)
	if err != nil {
		return nil, fmt.Errorf("build chain: %w", err)
	}

	return c, nil
}
