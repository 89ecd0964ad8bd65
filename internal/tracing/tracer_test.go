package tracing

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/rungrid/rungrid/internal/config"
)

func TestNewProvider_Disabled(t *testing.T) {
	p, err := NewProvider(config.TracingConfig{})
	require.NoError(t, err)
	require.False(t, p.Enabled())
	require.NotNil(t, p.Tracer())

	_, span := p.Tracer().Start(context.Background(), "noop")
	span.End()
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestNewProvider_FileExporter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traces.jsonl")
	p, err := NewProvider(config.TracingConfig{Enabled: true, Exporter: "file", FilePath: path, SampleRate: 1})
	require.NoError(t, err)
	require.True(t, p.Enabled())

	_, span := p.Tracer().Start(context.Background(), "backend.ListItems")
	span.End()
	require.NoError(t, p.Shutdown(context.Background()))

	recs := readRecords(t, path)
	require.Len(t, recs, 1)
	require.Equal(t, "backend.ListItems", recs[0].Name)
}

func TestNewProvider_NoneExporter(t *testing.T) {
	p, err := NewProvider(config.TracingConfig{Enabled: true, Exporter: "none"})
	require.NoError(t, err)
	require.True(t, p.Enabled())
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestNewProvider_Errors(t *testing.T) {
	_, err := NewProvider(config.TracingConfig{Enabled: true, Exporter: "file"})
	require.ErrorContains(t, err, "file_path required")

	_, err = NewProvider(config.TracingConfig{Enabled: true, Exporter: "carrier-pigeon"})
	require.ErrorContains(t, err, "unsupported exporter type")
}

func newRecorder() (*tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	rec := tracetest.NewSpanRecorder()
	return rec, sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
}

func TestRun_Success(t *testing.T) {
	rec, tp := newRecorder()

	err := Run(context.Background(), tp.Tracer("test"), "backend.ListGroups", func(context.Context) error {
		return nil
	}, attribute.String(AttrGroupID, "g1"))

	require.NoError(t, err)
	spans := rec.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, "backend.ListGroups", spans[0].Name())
	require.Equal(t, codes.Ok, spans[0].Status().Code)
	require.Contains(t, spans[0].Attributes(), attribute.String(AttrGroupID, "g1"))
}

func TestRun_RecordsError(t *testing.T) {
	rec, tp := newRecorder()
	boom := errors.New("boom")

	err := Run(context.Background(), tp.Tracer("test"), "backend.DeleteItem", func(context.Context) error {
		return boom
	})

	require.ErrorIs(t, err, boom)
	span := rec.Ended()[0]
	require.Equal(t, codes.Error, span.Status().Code)
	require.Equal(t, "boom", span.Status().Description)
	require.Len(t, span.Events(), 1)
}

func TestRun_NilTracer(t *testing.T) {
	called := false
	err := Run(context.Background(), nil, "x", func(context.Context) error {
		called = true
		return nil
	})

	require.NoError(t, err)
	require.True(t, called)
}
