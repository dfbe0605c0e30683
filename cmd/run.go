package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nextlevelbuilder/cloudeng/internal/agent"
	"github.com/nextlevelbuilder/cloudeng/internal/artifacts"
	"github.com/nextlevelbuilder/cloudeng/internal/config"
	"github.com/nextlevelbuilder/cloudeng/internal/envcheck"
	"github.com/nextlevelbuilder/cloudeng/internal/mcp"
	"github.com/nextlevelbuilder/cloudeng/internal/providers"
	"github.com/nextlevelbuilder/cloudeng/internal/tracing"
)

func runCmd() *cobra.Command {
	var prompt string
	cmd := &cobra.Command{
		Use:   "run [task-id]",
		Short: "Run a predefined cloud-engineering task, or a custom prompt",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			taskID := ""
			if len(args) == 1 {
				taskID = args[0]
			}
			runTask(taskID, prompt)
		},
	}
	cmd.Flags().StringVar(&prompt, "prompt", "", "custom task prompt (instead of a task ID)")
	return cmd
}

func runTask(taskID, prompt string) {
	if taskID == "" && prompt == "" {
		fmt.Fprintln(os.Stderr, "Error: a task ID or --prompt is required. See 'cloudeng tasks'.")
		os.Exit(1)
	}

	cfg, err := config.Load(resolveConfigPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if cfg.Agent.Endpoint == "" {
		fmt.Fprintln(os.Stderr, "Error: agent.endpoint is not configured.")
		os.Exit(1)
	}

	snap := envcheck.FromEnviron(os.Environ())
	res := envcheck.Validate(snap)
	if !res.OK() {
		fmt.Fprintln(os.Stderr, envcheck.FormatError(res))
		fmt.Fprintln(os.Stderr, "FATAL: Cannot run tasks without required AWS credentials.")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	awsCfg, err := agent.AWSConfig(ctx, snap)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building AWS config: %v\n", err)
		os.Exit(1)
	}

	servers := mcp.ConnectAll(ctx, cfg.MCP.Servers)
	defer mcp.CloseAll(servers)

	var tools []agent.ToolInfo
	for _, s := range servers {
		for _, t := range s.Tools() {
			tools = append(tools, agent.ToolInfo{Name: t.Name, Description: t.Description})
		}
	}

	collector := tracing.NewCollector()
	initTelemetry(ctx, cfg, collector)
	defer collector.Stop(context.Background())

	model := providers.NewOpenAICompat("cloudeng", cfg.Agent.APIKey, cfg.Agent.Endpoint, cfg.Agent.Model)
	limiter := agent.NewRateLimiter(cfg.Agent.RatePerMinute, cfg.Agent.Burst)
	runner := agent.NewRunner(model, tools, limiter, collector)

	result, err := runner.Run(ctx, agent.RunRequest{
		TaskID:    taskID,
		Prompt:    prompt,
		CallerKey: "cli",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Task failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(result.Output)

	if cfg.Artifacts.Bucket != "" {
		uploader := artifacts.NewUploader(awsCfg, cfg.Artifacts.Bucket, cfg.Artifacts.Prefix)
		uris, uerr := uploader.UploadDir(ctx, cfg.Artifacts.Dir)
		if uerr != nil {
			fmt.Fprintf(os.Stderr, "Warning: artifact upload failed: %v\n", uerr)
		}
		for _, uri := range uris {
			fmt.Printf("Artifact: %s\n", uri)
		}
	}
}
