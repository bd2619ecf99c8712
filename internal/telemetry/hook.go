// Package telemetry provides OpenTelemetry instrumentation for the command
// queue. It implements command.Hook to add a span per executed command and
// command counters/durations.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/msto63/logchain/internal/command"
)

const instrumentationName = "logchain"

// queueHook implements command.Hook with OpenTelemetry tracing and metrics
type queueHook struct {
	tracer            trace.Tracer
	commandCounter    metric.Int64Counter
	durationHistogram metric.Float64Histogram
}

// spanToken is the HookToken returned by OnCommandStart
type spanToken struct {
	span      trace.Span
	startTime time.Time
}

// NewQueueHook creates a queue hook. Nil providers fall back to the globals.
func NewQueueHook(tp trace.TracerProvider, mp metric.MeterProvider) command.Hook {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	if mp == nil {
		mp = otel.GetMeterProvider()
	}

	h := &queueHook{
		tracer: tp.Tracer(instrumentationName),
	}

	meter := mp.Meter(instrumentationName)
	h.commandCounter, _ = meter.Int64Counter("logchain.commands",
		metric.WithUnit("{command}"),
		metric.WithDescription("Number of executed queue commands"),
	)
	h.durationHistogram, _ = meter.Float64Histogram("logchain.command.duration",
		metric.WithUnit("s"),
		metric.WithDescription("Duration of queue command execution"),
	)

	return h
}

// OnCommandStart starts a span for the command
func (h *queueHook) OnCommandStart(ctx context.Context, info command.Info) (context.Context, command.HookToken) {
	attrs := []attribute.KeyValue{
		attribute.String("logchain.command.id", info.ID),
		attribute.Int("logchain.command.position", info.Position),
	}
	if info.HasSeverity {
		attrs = append(attrs, attribute.String("logchain.severity", info.Severity.String()))
	}

	ctx, span := h.tracer.Start(ctx, "logchain/command",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)

	return ctx, &spanToken{span: span, startTime: time.Now()}
}

// OnCommandEnd records metrics and ends the span
func (h *queueHook) OnCommandEnd(ctx context.Context, token command.HookToken, info command.Info, err error) {
	st, ok := token.(*spanToken)
	if !ok {
		return
	}

	duration := time.Since(st.startTime)

	status := "ok"
	if err != nil {
		status = "error"
	}

	metricAttrs := []attribute.KeyValue{attribute.String("status", status)}
	if info.HasSeverity {
		metricAttrs = append(metricAttrs, attribute.String("logchain.severity", info.Severity.String()))
	}
	opt := metric.WithAttributes(metricAttrs...)

	if h.commandCounter != nil {
		h.commandCounter.Add(ctx, 1, opt)
	}
	if h.durationHistogram != nil {
		h.durationHistogram.Record(ctx, duration.Seconds(), opt)
	}

	if err != nil {
		st.span.SetStatus(codes.Error, err.Error())
		st.span.RecordError(err)
		st.span.SetAttributes(attribute.String("logchain.error_type", fmt.Sprintf("%T", err)))
	} else {
		st.span.SetStatus(codes.Ok, "")
	}

	st.span.End()
}
