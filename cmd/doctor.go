package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/nextlevelbuilder/cloudeng/internal/config"
	"github.com/nextlevelbuilder/cloudeng/internal/envcheck"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check system environment and configuration health",
		Run: func(cmd *cobra.Command, args []string) {
			runDoctor()
		},
	}
}

func runDoctor() {
	fmt.Println("cloudeng doctor")
	fmt.Printf("  Version:  %s\n", Version)
	fmt.Printf("  OS:       %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Printf("  Go:       %s\n", runtime.Version())
	fmt.Println()

	// Config
	cfgPath := resolveConfigPath()
	fmt.Printf("  Config:   %s", cfgPath)
	if _, err := os.Stat(cfgPath); err != nil {
		fmt.Println(" (NOT FOUND, using defaults)")
	} else {
		fmt.Println(" (OK)")
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Printf("  Config load error: %s\n", err)
		return
	}

	// Credentials
	fmt.Println()
	fmt.Println("  Environment:")
	snap := envcheck.FromEnviron(os.Environ())
	for _, v := range envcheck.Variables {
		switch {
		case snap.IsSet(v.Name):
			fmt.Printf("    %-24s set\n", v.Name)
		case v.Required:
			fmt.Printf("    %-24s MISSING (%s)\n", v.Name, v.Description)
		default:
			fmt.Printf("    %-24s not set (optional)\n", v.Name)
		}
	}

	// MCP launcher commands
	fmt.Println()
	fmt.Println("  Commands:")
	for _, c := range cfg.HealthCommands() {
		if _, err := exec.LookPath(c); err != nil {
			fmt.Printf("    %-24s NOT FOUND on PATH\n", c)
		} else {
			fmt.Printf("    %-24s ok\n", c)
		}
	}

	// Application files
	fmt.Println()
	fmt.Println("  Files:")
	for _, f := range cfg.Health.Files {
		if _, err := os.Stat(f); err != nil {
			fmt.Printf("    %-40s MISSING\n", f)
		} else {
			fmt.Printf("    %-40s ok\n", f)
		}
	}

	// Model
	fmt.Println()
	if cfg.Agent.Endpoint == "" {
		fmt.Println("  Model:    not configured (set agent.endpoint)")
	} else {
		fmt.Printf("  Model:    %s via %s\n", cfg.Agent.Model, cfg.Agent.Endpoint)
	}
	if cfg.Artifacts.Bucket != "" {
		fmt.Printf("  Artifacts: s3://%s/%s\n", cfg.Artifacts.Bucket, cfg.Artifacts.Prefix)
	}
}
