package tracing

import (
	"context"
	"sync"
	"testing"
	"time"
)

type fakeExporter struct {
	mu       sync.Mutex
	spans    []SpanData
	shutdown bool
}

func (f *fakeExporter) ExportSpans(ctx context.Context, spans []SpanData) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.spans = append(f.spans, spans...)
}

func (f *fakeExporter) Shutdown(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shutdown = true
	return nil
}

func TestCollector_FlushOnStop(t *testing.T) {
	c := NewCollector()
	exp := &fakeExporter{}
	c.SetExporter(exp)

	for i := 0; i < 3; i++ {
		c.Record(SpanData{RunID: "run", Name: "task_run", StartedAt: time.Now(), Status: "ok"})
	}
	c.Stop(context.Background())

	exp.mu.Lock()
	defer exp.mu.Unlock()
	if len(exp.spans) != 3 {
		t.Errorf("expected 3 spans flushed, got %d", len(exp.spans))
	}
	if !exp.shutdown {
		t.Error("exporter should be shut down")
	}
}

func TestCollector_NoExporterDropsQuietly(t *testing.T) {
	c := NewCollector()
	c.Record(SpanData{RunID: "run", Name: "task_run"})
	// Must not panic or block without an exporter.
	c.Stop(context.Background())
}
