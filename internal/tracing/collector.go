// Package tracing buffers task-run spans and hands them to an optional
// exporter in batches.
package tracing

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	defaultFlushInterval = 5 * time.Second
	defaultBufferSize    = 256
)

// SpanData describes one recorded task run.
type SpanData struct {
	RunID     string
	Name      string
	TaskID    string
	Model     string
	StartedAt time.Time
	EndedAt   time.Time
	Status    string // "ok" or "error"
	Error     string
}

// SpanExporter is implemented by backends that receive span batches
// (e.g. OpenTelemetry OTLP). Keeping this as an interface lets the OTel
// dependency live in a separate sub-package compiled behind a build tag.
type SpanExporter interface {
	ExportSpans(ctx context.Context, spans []SpanData)
	Shutdown(ctx context.Context) error
}

// Collector buffers spans in memory and flushes them periodically.
// Without an exporter attached, spans are counted and dropped.
type Collector struct {
	spanCh chan SpanData
	stopCh chan struct{}
	wg     sync.WaitGroup

	mu       sync.Mutex
	pending  []SpanData
	exporter SpanExporter
}

// NewCollector creates a collector and starts its flush loop.
func NewCollector() *Collector {
	c := &Collector{
		spanCh: make(chan SpanData, defaultBufferSize),
		stopCh: make(chan struct{}),
	}
	c.wg.Add(1)
	go c.loop()
	return c
}

// SetExporter attaches an external span exporter. Safe to call before or
// after spans have been recorded.
func (c *Collector) SetExporter(e SpanExporter) {
	c.mu.Lock()
	c.exporter = e
	c.mu.Unlock()
}

// Record enqueues a span. Never blocks: if the buffer is full the span is
// dropped with a warning, since tracing must not slow task runs.
func (c *Collector) Record(span SpanData) {
	select {
	case c.spanCh <- span:
	default:
		slog.Warn("tracing buffer full, span dropped", "run_id", span.RunID)
	}
}

// Stop flushes remaining spans and shuts down the exporter.
func (c *Collector) Stop(ctx context.Context) {
	close(c.stopCh)
	c.wg.Wait()
	c.flush(ctx)

	c.mu.Lock()
	exporter := c.exporter
	c.mu.Unlock()
	if exporter != nil {
		if err := exporter.Shutdown(ctx); err != nil {
			slog.Error("span exporter shutdown failed", "error", err)
		}
	}
}

func (c *Collector) loop() {
	defer c.wg.Done()
	ticker := time.NewTicker(defaultFlushInterval)
	defer ticker.Stop()

	for {
		select {
		case span := <-c.spanCh:
			c.mu.Lock()
			c.pending = append(c.pending, span)
			c.mu.Unlock()
		case <-ticker.C:
			c.flush(context.Background())
		case <-c.stopCh:
			// Drain whatever is queued before the final flush.
			for {
				select {
				case span := <-c.spanCh:
					c.mu.Lock()
					c.pending = append(c.pending, span)
					c.mu.Unlock()
				default:
					return
				}
			}
		}
	}
}

func (c *Collector) flush(ctx context.Context) {
	c.mu.Lock()
	batch := c.pending
	c.pending = nil
	exporter := c.exporter
	c.mu.Unlock()

	if len(batch) == 0 {
		return
	}
	if exporter == nil {
		slog.Debug("spans collected without exporter", "count", len(batch))
		return
	}
	exporter.ExportSpans(ctx, batch)
}
