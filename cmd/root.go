// Package cmd implements the cloudeng CLI.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nextlevelbuilder/cloudeng/internal/config"
)

// Version is stamped at build time via -ldflags.
var Version = "1.0.0"

var configPath string

// Execute runs the root command.
func Execute() {
	root := &cobra.Command{
		Use:   "cloudeng",
		Short: "AWS cloud engineer agent shell",
		Long: "cloudeng validates AWS credentials, serves health check endpoints,\n" +
			"and runs cloud-engineering tasks through the configured model.",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: ~/.cloudeng/config.yaml)")

	root.AddCommand(serveCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(runCmd())
	root.AddCommand(tasksCmd())
	root.AddCommand(doctorCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func resolveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultPath()
}
