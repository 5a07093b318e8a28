// Package tracing provides a chain option recording OpenTelemetry spans.
//
// Every run gets a chain.Run span, and every link a child span named after the link.
// Links receive the context holding their span.
package tracing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/askiada/go-cichain/pkg/chain/model"
)

const (
	instrumentationName = "github.com/askiada/go-cichain/pkg/chain"
	RunSpanName         = "chain.Run"
)

type chainTracer struct {
	tracer trace.Tracer
}

func (ct *chainTracer) New() error {
	return nil
}

func (ct *chainTracer) PrepareLink(_, _ *model.LinkInfo) error {
	return nil
}

func (ct *chainTracer) BeforeRun(ctx context.Context, run *model.RunInfo) (context.Context, error) {
	ctx, _ = ct.tracer.Start(ctx, RunSpanName,
		trace.WithAttributes(
			attribute.String("chain.run_id", run.ID),
			attribute.String("chain.command_id", run.CommandID),
			attribute.String("chain.pipeline_kind", run.Kind),
		),
	)

	return ctx, nil
}

func (ct *chainTracer) BeforeLink(ctx context.Context, run *model.RunInfo, link *model.LinkInfo) (context.Context, error) {
	ctx, _ = ct.tracer.Start(ctx, link.Name,
		trace.WithAttributes(
			attribute.String("chain.link", link.Name),
			attribute.Int("chain.link_index", link.Index),
			attribute.String("chain.run_id", run.ID),
		),
	)

	return ctx, nil
}

func (ct *chainTracer) AfterLink(ctx context.Context, run *model.RunInfo, _ *model.LinkInfo, elapsed time.Duration, linkErr error) error {
	span := trace.SpanFromContext(ctx)
	defer span.End()

	span.SetAttributes(attribute.Int64("chain.link_elapsed_us", elapsed.Microseconds()))

	if linkErr != nil {
		span.RecordError(linkErr)
		span.SetStatus(codes.Error, linkErr.Error())

		return nil
	}

	span.SetAttributes(attribute.Bool("chain.break", run.State == model.StateBroken))
	span.SetStatus(codes.Ok, "")

	return nil
}

func (ct *chainTracer) Finish(ctx context.Context, run *model.RunInfo, _ time.Duration) error {
	span := trace.SpanFromContext(ctx)
	defer span.End()

	span.SetAttributes(attribute.String("chain.state", string(run.State)))
	if run.BrokenAt != "" {
		span.SetAttributes(attribute.String("chain.broken_at", run.BrokenAt))
	}

	if run.State == model.StateFailed {
		if run.Err != nil {
			span.RecordError(run.Err)
		}

		span.SetStatus(codes.Error, "chain run failed")

		return nil
	}

	span.SetStatus(codes.Ok, "")

	return nil
}

// ChainTracer traces runs with a tracer from tp. A nil tp uses the global tracer provider.
func ChainTracer(tp trace.TracerProvider) model.ChainOption {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	return &chainTracer{tracer: tp.Tracer(instrumentationName)}
}
