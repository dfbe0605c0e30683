package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nextlevelbuilder/cloudeng/internal/envcheck"
)

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate required AWS environment variables",
		Run: func(cmd *cobra.Command, args []string) {
			runValidate()
		},
	}
}

// runValidate checks the environment and exits non-zero if any required
// variable is missing. The full report prints before exit so the operator
// sees every problem at once.
func runValidate() {
	snap := envcheck.FromEnviron(os.Environ())
	res := envcheck.Validate(snap)

	if !res.OK() {
		fmt.Fprintln(os.Stderr, envcheck.FormatError(res))
		fmt.Fprintln(os.Stderr, "FATAL: Cannot start application without required AWS credentials.")
		os.Exit(1)
	}

	fmt.Print(envcheck.Summary(res, snap))
}
