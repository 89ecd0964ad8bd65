package tracing

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func readRecords(t *testing.T, path string) []SpanRecord {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var out []SpanRecord
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var rec SpanRecord
		require.NoError(t, json.Unmarshal(sc.Bytes(), &rec))
		out = append(out, rec)
	}
	require.NoError(t, sc.Err())
	return out
}

func TestNewFileExporter_CreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "traces.jsonl")

	exp, err := NewFileExporter(path)
	require.NoError(t, err)
	require.NoError(t, exp.Shutdown(context.Background()))

	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestFileExporter_WritesRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traces.jsonl")
	exp, err := NewFileExporter(path)
	require.NoError(t, err)

	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	stub := tracetest.SpanStub{
		Name:       "backend.LaunchItem",
		SpanKind:   trace.SpanKindClient,
		StartTime:  start,
		EndTime:    start.Add(250 * time.Millisecond),
		Attributes: []attribute.KeyValue{attribute.String(AttrItemID, "item-1")},
		Status:     sdktrace.Status{Code: codes.Error, Description: "not found"},
	}
	require.NoError(t, exp.ExportSpans(context.Background(), []sdktrace.ReadOnlySpan{stub.Snapshot()}))
	require.NoError(t, exp.Shutdown(context.Background()))

	recs := readRecords(t, path)
	require.Len(t, recs, 1)
	rec := recs[0]
	require.Equal(t, "backend.LaunchItem", rec.Name)
	require.Equal(t, "CLIENT", rec.Kind)
	require.Equal(t, "ERROR", rec.Status)
	require.Equal(t, "not found", rec.StatusMsg)
	require.InDelta(t, 250.0, rec.DurationMs, 0.001)
	require.Equal(t, "item-1", rec.Attributes[AttrItemID])
	require.Empty(t, rec.ParentID)
}

func TestFileExporter_Appends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traces.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"old"}`+"\n"), 0600))

	exp, err := NewFileExporter(path)
	require.NoError(t, err)
	stub := tracetest.SpanStub{Name: "new", StartTime: time.Now(), EndTime: time.Now()}
	require.NoError(t, exp.ExportSpans(context.Background(), []sdktrace.ReadOnlySpan{stub.Snapshot()}))
	require.NoError(t, exp.Shutdown(context.Background()))

	recs := readRecords(t, path)
	require.Len(t, recs, 2)
	require.Equal(t, "old", recs[0].Name)
	require.Equal(t, "new", recs[1].Name)
}

func TestFileExporter_EmptyBatchIsNoop(t *testing.T) {
	exp, err := NewFileExporter(filepath.Join(t.TempDir(), "traces.jsonl"))
	require.NoError(t, err)
	defer exp.Shutdown(context.Background())

	require.NoError(t, exp.ExportSpans(context.Background(), nil))
}

func TestFileExporter_ExportAfterShutdownFails(t *testing.T) {
	exp, err := NewFileExporter(filepath.Join(t.TempDir(), "traces.jsonl"))
	require.NoError(t, err)
	require.NoError(t, exp.Shutdown(context.Background()))
	require.NoError(t, exp.Shutdown(context.Background()))

	stub := tracetest.SpanStub{Name: "late"}
	require.Error(t, exp.ExportSpans(context.Background(), []sdktrace.ReadOnlySpan{stub.Snapshot()}))
}
