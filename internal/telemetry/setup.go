package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	noopmetric "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/msto63/logchain/internal/command"
	"github.com/msto63/logchain/pkg/core/config"
)

// Providers bundles the tracer and meter providers built by Setup
type Providers struct {
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider

	shutdown []func(context.Context) error
}

// Setup builds providers with stdout exporters writing to w. When telemetry
// is disabled it returns no-op providers.
func Setup(ctx context.Context, cfg config.TelemetryConfig, w io.Writer) (*Providers, error) {
	p := &Providers{
		TracerProvider: nooptrace.NewTracerProvider(),
		MeterProvider:  noopmetric.NewMeterProvider(),
	}

	if !cfg.Enabled {
		return p, nil
	}

	if cfg.Traces {
		opts := []stdouttrace.Option{stdouttrace.WithWriter(w)}
		if cfg.PrettyPrint {
			opts = append(opts, stdouttrace.WithPrettyPrint())
		}
		exporter, err := stdouttrace.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("create trace exporter: %w", err)
		}

		tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
		p.TracerProvider = tp
		p.shutdown = append(p.shutdown, tp.Shutdown)
	}

	if cfg.Metrics {
		opts := []stdoutmetric.Option{stdoutmetric.WithWriter(w)}
		if cfg.PrettyPrint {
			opts = append(opts, stdoutmetric.WithPrettyPrint())
		}
		exporter, err := stdoutmetric.New(opts...)
		if err != nil {
			p.Shutdown(ctx)
			return nil, fmt.Errorf("create metric exporter: %w", err)
		}

		interval := cfg.MetricInterval.Duration
		if interval <= 0 {
			interval = 10 * time.Second
		}
		mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval)),
		))
		p.MeterProvider = mp
		p.shutdown = append(p.shutdown, mp.Shutdown)
	}

	return p, nil
}

// Shutdown flushes and stops all SDK providers
func (p *Providers) Shutdown(ctx context.Context) error {
	var errs []error
	for _, fn := range p.shutdown {
		if err := fn(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	p.shutdown = nil
	return errors.Join(errs...)
}

// QueueHook returns a command hook bound to these providers
func (p *Providers) QueueHook() command.Hook {
	return NewQueueHook(p.TracerProvider, p.MeterProvider)
}
