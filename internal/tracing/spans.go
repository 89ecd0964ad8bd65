package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys.
const (
	AttrCommand      = "backend.command"
	AttrItemID       = "item.id"
	AttrGroupID      = "group.id"
	AttrScanRoots    = "scan.roots"
	AttrResultCount  = "result.count"
	AttrErrorMessage = "error.message"
)

// SpanPrefixBackend prefixes every backend command span.
const SpanPrefixBackend = "backend."

// Run executes fn inside a span named name. A returned error is recorded on
// the span and its status set; success sets status Ok.
func Run(ctx context.Context, tracer trace.Tracer, name string, fn func(context.Context) error, attrs ...attribute.KeyValue) error {
	if tracer == nil {
		return fn(ctx)
	}

	ctx, span := tracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(attrs...)

	err := fn(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
		return err
	}
	span.SetStatus(codes.Ok, "")
	return nil
}
