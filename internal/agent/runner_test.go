package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/nextlevelbuilder/cloudeng/internal/tracing"
)

type fakeModel struct {
	lastSystem string
	lastPrompt string
	reply      string
	err        error
}

func (m *fakeModel) Name() string { return "fake-model" }

func (m *fakeModel) Invoke(ctx context.Context, system, prompt string) (string, error) {
	m.lastSystem = system
	m.lastPrompt = prompt
	return m.reply, m.err
}

func TestRun_PredefinedTask(t *testing.T) {
	model := &fakeModel{reply: "three instances running"}
	r := NewRunner(model, nil, nil, nil)

	res, err := r.Run(context.Background(), RunRequest{TaskID: "ec2_status", CallerKey: "cli"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.RunID == "" {
		t.Error("expected a run ID")
	}
	if res.Output != "three instances running" {
		t.Errorf("unexpected output %q", res.Output)
	}
	task, _ := Lookup("ec2_status")
	if model.lastPrompt != task.Prompt {
		t.Errorf("expected predefined prompt, got %q", model.lastPrompt)
	}
}

func TestRun_CustomPrompt(t *testing.T) {
	model := &fakeModel{reply: "done"}
	r := NewRunner(model, nil, nil, nil)

	if _, err := r.Run(context.Background(), RunRequest{Prompt: "explain VPC peering"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if model.lastPrompt != "explain VPC peering" {
		t.Errorf("expected custom prompt, got %q", model.lastPrompt)
	}
}

func TestRun_UnknownTask(t *testing.T) {
	r := NewRunner(&fakeModel{}, nil, nil, nil)
	if _, err := r.Run(context.Background(), RunRequest{TaskID: "no_such_task"}); err == nil {
		t.Fatal("expected error for unknown task")
	}
}

func TestRun_EmptyPrompt(t *testing.T) {
	r := NewRunner(&fakeModel{}, nil, nil, nil)
	if _, err := r.Run(context.Background(), RunRequest{Prompt: "   "}); err == nil {
		t.Fatal("expected error for empty prompt")
	}
}

func TestRun_ModelError(t *testing.T) {
	r := NewRunner(&fakeModel{err: errors.New("upstream down")}, nil, nil, nil)
	if _, err := r.Run(context.Background(), RunRequest{TaskID: "s3_buckets"}); err == nil {
		t.Fatal("expected model error to surface")
	}
}

func TestRun_RateLimited(t *testing.T) {
	// 1 run per minute with burst 1: the second immediate run must be rejected.
	limiter := NewRateLimiter(1, 1)
	r := NewRunner(&fakeModel{reply: "ok"}, nil, limiter, nil)

	if _, err := r.Run(context.Background(), RunRequest{TaskID: "s3_buckets", CallerKey: "u1"}); err != nil {
		t.Fatalf("first run should pass: %v", err)
	}
	_, err := r.Run(context.Background(), RunRequest{TaskID: "s3_buckets", CallerKey: "u1"})
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}

	// A different caller key has its own bucket.
	if _, err := r.Run(context.Background(), RunRequest{TaskID: "s3_buckets", CallerKey: "u2"}); err != nil {
		t.Fatalf("other caller should pass: %v", err)
	}
}

func TestRun_StripsThinking(t *testing.T) {
	model := &fakeModel{reply: "<thinking>secret plan</thinking>the answer"}
	r := NewRunner(model, nil, nil, nil)

	res, err := r.Run(context.Background(), RunRequest{TaskID: "s3_buckets"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Output != "the answer" {
		t.Errorf("expected thinking stripped, got %q", res.Output)
	}
}

func TestBuildSystemPrompt_IncludesTools(t *testing.T) {
	tools := []ToolInfo{{Name: "search_documentation", Description: "Search AWS docs"}}
	r := NewRunner(&fakeModel{}, tools, nil, nil)

	got := r.buildSystemPrompt()
	if !strings.Contains(got, "search_documentation") {
		t.Error("system prompt should list available tools")
	}
	if !strings.Contains(got, "AWS Cloud Engineer") {
		t.Error("system prompt should carry the base instructions")
	}
}

type captureExporter struct {
	spans []tracing.SpanData
}

func (c *captureExporter) ExportSpans(ctx context.Context, spans []tracing.SpanData) {
	c.spans = append(c.spans, spans...)
}

func (c *captureExporter) Shutdown(ctx context.Context) error { return nil }

func TestRun_RecordsSpan(t *testing.T) {
	collector := tracing.NewCollector()
	exporter := &captureExporter{}
	collector.SetExporter(exporter)

	r := NewRunner(&fakeModel{reply: "ok"}, nil, nil, collector)
	res, err := r.Run(context.Background(), RunRequest{TaskID: "vpc_analysis"})
	if err != nil {
		t.Fatal(err)
	}

	collector.Stop(context.Background())

	if len(exporter.spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(exporter.spans))
	}
	span := exporter.spans[0]
	if span.RunID != res.RunID {
		t.Errorf("span run ID %q does not match result %q", span.RunID, res.RunID)
	}
	if span.TaskID != "vpc_analysis" || span.Status != "ok" {
		t.Errorf("unexpected span %+v", span)
	}
}
