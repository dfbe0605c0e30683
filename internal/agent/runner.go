package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nextlevelbuilder/cloudeng/internal/tracing"
)

// Model invokes the managed AI model. The model is an opaque external
// collaborator; implementations live in internal/providers.
type Model interface {
	Name() string
	Invoke(ctx context.Context, system, prompt string) (string, error)
}

// ToolInfo describes one tool available to the agent, for prompt context.
type ToolInfo struct {
	Name        string
	Description string
}

// ErrRateLimited is returned when the caller exceeded the run rate limit.
var ErrRateLimited = errors.New("task run rate limited")

const systemPrompt = `You are an expert AWS Cloud Engineer assistant. Your job is to help with AWS infrastructure
management, optimization, security, and best practices. You can:

1. Analyze AWS resources and configurations
2. Provide recommendations for security improvements
3. Identify cost optimization opportunities
4. Troubleshoot AWS service issues
5. Explain AWS concepts and best practices
6. Generate infrastructure diagrams using the AWS diagram tools
7. Search AWS documentation for specific information

When asked to create diagrams, use the AWS diagram MCP tools to generate visual representations
of architecture based on the user's description. Be creative and thorough in translating text
descriptions into complete architecture diagrams.

Always provide clear, actionable advice with specific AWS CLI commands or console steps when applicable.
Focus on security best practices and cost optimization in your recommendations.

IMPORTANT: Never include <thinking> tags or expose your internal thought process in responses.`

// RunRequest asks the runner to execute one task.
type RunRequest struct {
	// TaskID selects a predefined task. Empty means Prompt is a custom task.
	TaskID string
	Prompt string
	// CallerKey identifies the caller for rate limiting ("cli", user ID, …).
	CallerKey string
}

// RunResult is the outcome of a single task run.
type RunResult struct {
	RunID    string
	TaskID   string
	Output   string
	Duration time.Duration
}

// Runner executes tasks against the model, one model invocation per run.
// Tool orchestration happens inside the external agent runtime; the runner
// only supplies prompt context and records the run.
type Runner struct {
	model   Model
	tools   []ToolInfo
	limiter *RateLimiter
	tracer  *tracing.Collector
}

// NewRunner creates a task runner. tracer may be nil (tracing disabled).
func NewRunner(model Model, tools []ToolInfo, limiter *RateLimiter, tracer *tracing.Collector) *Runner {
	return &Runner{model: model, tools: tools, limiter: limiter, tracer: tracer}
}

// Run executes one task. The prompt comes from the predefined table when
// TaskID is set, otherwise from req.Prompt.
func (r *Runner) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	prompt := req.Prompt
	if req.TaskID != "" {
		task, ok := Lookup(req.TaskID)
		if !ok {
			return nil, fmt.Errorf("unknown task %q", req.TaskID)
		}
		prompt = task.Prompt
	}
	if strings.TrimSpace(prompt) == "" {
		return nil, errors.New("empty task prompt")
	}

	if r.limiter != nil && !r.limiter.Allow(req.CallerKey) {
		return nil, ErrRateLimited
	}

	runID := uuid.NewString()
	started := time.Now()
	slog.Info("task run started", "run_id", runID, "task", req.TaskID, "model", r.model.Name())

	output, err := r.model.Invoke(ctx, r.buildSystemPrompt(), prompt)
	duration := time.Since(started)

	if r.tracer != nil {
		span := tracing.SpanData{
			RunID:     runID,
			Name:      "task_run",
			TaskID:    req.TaskID,
			Model:     r.model.Name(),
			StartedAt: started,
			EndedAt:   started.Add(duration),
			Status:    "ok",
		}
		if err != nil {
			span.Status = "error"
			span.Error = err.Error()
		}
		r.tracer.Record(span)
	}

	if err != nil {
		slog.Error("task run failed", "run_id", runID, "error", err)
		return nil, fmt.Errorf("task run %s: %w", runID, err)
	}

	slog.Info("task run finished", "run_id", runID, "duration", duration)
	return &RunResult{
		RunID:    runID,
		TaskID:   req.TaskID,
		Output:   CleanResponse(output),
		Duration: duration,
	}, nil
}

// buildSystemPrompt appends the available tool inventory so the model knows
// what the runtime can execute on its behalf.
func (r *Runner) buildSystemPrompt() string {
	if len(r.tools) == 0 {
		return systemPrompt
	}
	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\nAvailable tools:\n")
	for _, t := range r.tools {
		fmt.Fprintf(&b, "- %s: %s\n", t.Name, t.Description)
	}
	return b.String()
}
