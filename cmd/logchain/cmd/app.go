// ============================================================================
// logchain - Severity Dispatch Chain
// ============================================================================
//
// Package:     cmd
// Description: Process-wide application state for the CLI
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/msto63/logchain/internal/chain"
	"github.com/msto63/logchain/internal/command"
	"github.com/msto63/logchain/internal/handlers"
	"github.com/msto63/logchain/internal/store"
	"github.com/msto63/logchain/internal/telemetry"
	"github.com/msto63/logchain/pkg/core/config"
	"github.com/msto63/logchain/pkg/core/logging"
)

// app holds everything a command needs. It is built once per invocation.
type app struct {
	cfg       *config.Config
	logger    *logging.Logger
	store     store.Store
	chain     *chain.Chain
	telemetry *telemetry.Providers

	out io.Writer
}

// appOptions are the root flags that influence app construction
type appOptions struct {
	cfgFile string
	verbose bool
}

// init loads config and wires logger, store, chain and telemetry
func (a *app) init(ctx context.Context, opts *appOptions, out, errOut io.Writer) error {
	var err error
	if opts.cfgFile != "" {
		a.cfg, err = config.Load(opts.cfgFile)
	} else {
		a.cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return fmt.Errorf("Konfiguration laden: %w", err)
	}

	level, err := logging.ParseLevel(a.cfg.General.LogLevel)
	if err != nil {
		return fmt.Errorf("Konfiguration laden: %w", err)
	}
	if opts.verbose {
		level = logging.LevelDebug
	}
	format, err := logging.ParseFormat(a.cfg.General.LogFormat)
	if err != nil {
		return fmt.Errorf("Konfiguration laden: %w", err)
	}

	a.out = out
	a.logger = logging.NewWithConfig(logging.Config{
		Level:  level,
		Format: format,
		Output: errOut,
		Name:   a.cfg.General.Name,
	})

	if a.cfg.Store.Enabled {
		a.store, err = store.NewSQLiteStore(store.SQLiteConfig{Path: a.cfg.Store.Path})
		if err != nil {
			return fmt.Errorf("Verlauf öffnen: %w", err)
		}
		a.logger.Debug("History store opened", "path", a.cfg.Store.Path)
	}

	order, err := a.cfg.Severities()
	if err != nil {
		return fmt.Errorf("Kette aufbauen: %w", err)
	}
	style, err := handlers.ParseStyle(a.cfg.Chain.Style)
	if err != nil {
		return fmt.Errorf("Kette aufbauen: %w", err)
	}

	build := handlers.BuildOptions{
		Order:  order,
		Out:    out,
		Style:  style,
		Logger: a.logger.WithName("chain"),
	}
	if a.store != nil {
		build.Recorder = a.store
	}
	a.chain, err = handlers.BuildChain(build)
	if err != nil {
		return fmt.Errorf("Kette aufbauen: %w", err)
	}

	a.telemetry, err = telemetry.Setup(ctx, a.cfg.Telemetry, errOut)
	if err != nil {
		return fmt.Errorf("Telemetrie starten: %w", err)
	}

	a.logger.Debug("Chain ready", "handlers", strings.Join(a.chain.Handlers(), ","))
	return nil
}

// newQueue returns a command queue instrumented with the app's telemetry
func (a *app) newQueue() *command.Queue {
	q := command.NewQueue(a.logger.WithName("queue"))
	if a.telemetry != nil {
		q.SetHook(a.telemetry.QueueHook())
	}
	return q
}

// entry resolves a handler name to a private chain view starting there.
// An empty name means the head.
func (a *app) entry(name string) (*chain.Chain, error) {
	if name == "" {
		names := a.chain.Handlers()
		if len(names) == 0 {
			return a.chain, nil
		}
		name = names[0]
	}
	return a.chain.From(strings.ToLower(name))
}

// requireStore fails when history recording is disabled
func (a *app) requireStore() (store.Store, error) {
	if a.store == nil {
		return nil, errors.New("Verlauf ist deaktiviert (store.enabled = false)")
	}
	return a.store, nil
}

// close releases the store and flushes telemetry
func (a *app) close(ctx context.Context) error {
	var errs []error
	if a.telemetry != nil {
		errs = append(errs, a.telemetry.Shutdown(ctx))
	}
	if a.store != nil {
		errs = append(errs, a.store.Close())
		a.store = nil
	}
	return errors.Join(errs...)
}
