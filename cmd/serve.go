package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nextlevelbuilder/cloudeng/internal/config"
	"github.com/nextlevelbuilder/cloudeng/internal/envcheck"
	"github.com/nextlevelbuilder/cloudeng/internal/health"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the health check server",
		Run: func(cmd *cobra.Command, args []string) {
			runServe()
		},
	}
}

func runServe() {
	cfgPath := resolveConfigPath()
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Fail fast before serving anything: a misconfigured shell should
	// never look half-started to the orchestrator.
	snap := envcheck.FromEnviron(os.Environ())
	res := envcheck.Validate(snap)
	if !res.OK() {
		fmt.Fprintln(os.Stderr, envcheck.FormatError(res))
		fmt.Fprintln(os.Stderr, "FATAL: Cannot start application without required AWS credentials.")
		os.Exit(1)
	}
	fmt.Print(envcheck.Summary(res, snap))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := health.NewServer(health.Options{
		Port:        cfg.Health.Port,
		Application: config.Application,
		Commands:    cfg.HealthCommands(),
		Files:       cfg.Health.Files,
	})

	// Hot-reload check targets when the config file changes. The port is
	// fixed for the process lifetime; changing it needs a restart.
	if _, statErr := os.Stat(cfgPath); statErr == nil {
		watcher, werr := config.NewWatcher(cfgPath)
		if werr != nil {
			fmt.Fprintf(os.Stderr, "Warning: config watcher unavailable: %v\n", werr)
		} else {
			watcher.OnChange(func(newCfg *config.Config) {
				srv.UpdateChecks(newCfg.HealthCommands(), newCfg.Health.Files)
			})
			if werr := watcher.Start(); werr != nil {
				fmt.Fprintf(os.Stderr, "Warning: config watcher failed to start: %v\n", werr)
			} else {
				defer watcher.Stop()
			}
		}
	}

	if err := srv.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Health server error: %v\n", err)
		os.Exit(1)
	}
}
