// Package health serves the liveness, readiness, and full health endpoints
// used by the orchestrator to probe the agent shell.
//
// Every request recomputes state from the environment and filesystem; no
// result is cached between requests. Checks never make outbound network
// calls, so each one completes well inside any probe timeout.
package health

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/nextlevelbuilder/cloudeng/internal/envcheck"
)

// Status classifies a single check outcome.
type Status string

const (
	StatusOK      Status = "ok"
	StatusWarning Status = "warning"
	StatusError   Status = "error"
)

// CheckResult is one named check's outcome inside a health report.
type CheckResult struct {
	Status  Status `json:"status"`
	Message string `json:"message"`
}

// checkEnvironment classifies the credential environment using the shared
// envcheck table. Missing required variables are errors; a missing optional
// variable is only a warning.
func checkEnvironment(snap envcheck.Snapshot) CheckResult {
	res := envcheck.Validate(snap)

	if !res.OK() {
		var names []string
		for _, v := range res.MissingRequired {
			names = append(names, v.Name)
		}
		return CheckResult{
			Status:  StatusError,
			Message: fmt.Sprintf("Missing environment variables: %s", strings.Join(names, ", ")),
		}
	}

	if len(res.MissingOptional) > 0 {
		var names []string
		for _, v := range res.MissingOptional {
			names = append(names, v.Name)
		}
		return CheckResult{
			Status:  StatusWarning,
			Message: fmt.Sprintf("Optional environment variables not set: %s", strings.Join(names, ", ")),
		}
	}

	return CheckResult{Status: StatusOK, Message: "All required environment variables are set"}
}

// checkDependencies verifies each launcher command resolves on PATH.
// A missing command means the deployed artifact cannot start its MCP tool
// servers, so it is error-level.
func checkDependencies(commands []string) CheckResult {
	var missing []string
	for _, cmd := range commands {
		if _, err := exec.LookPath(cmd); err != nil {
			missing = append(missing, cmd)
		}
	}
	if len(missing) > 0 {
		return CheckResult{
			Status:  StatusError,
			Message: fmt.Sprintf("Missing commands: %s", strings.Join(missing, ", ")),
		}
	}
	return CheckResult{Status: StatusOK, Message: "All required commands are available"}
}

// checkFiles verifies each application entry-point file exists on disk.
func checkFiles(files []string) CheckResult {
	var missing []string
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return CheckResult{
			Status:  StatusError,
			Message: fmt.Sprintf("Missing application files: %s", strings.Join(missing, ", ")),
		}
	}
	return CheckResult{Status: StatusOK, Message: "All application files present"}
}
