package health

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/nextlevelbuilder/cloudeng/internal/envcheck"
)

// Options configures a health Server.
type Options struct {
	Port        int
	Application string
	// Commands that must resolve on PATH (MCP server launchers).
	Commands []string
	// Files that must exist on disk (application entry points).
	Files []string
	// SnapshotFn supplies the environment snapshot per request.
	// Defaults to reading the live process environment.
	SnapshotFn func() envcheck.Snapshot
}

// Server is the HTTP health check server. Reports hold no state between
// requests: every request recomputes from current environment and disk.
// Only the check lists are mutable, so config hot-reload can retarget them.
type Server struct {
	opts    Options
	httpSrv *http.Server

	mu       sync.RWMutex
	commands []string
	files    []string
}

// NewServer creates a health server from opts.
func NewServer(opts Options) *Server {
	if opts.SnapshotFn == nil {
		opts.SnapshotFn = func() envcheck.Snapshot {
			return envcheck.FromEnviron(os.Environ())
		}
	}
	s := &Server{opts: opts, commands: opts.Commands, files: opts.Files}
	s.httpSrv = &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: s.Handler(),
	}
	return s
}

// UpdateChecks swaps the command and file lists, for config hot-reload.
func (s *Server) UpdateChecks(commands, files []string) {
	s.mu.Lock()
	s.commands = commands
	s.files = files
	s.mu.Unlock()
	slog.Info("health check targets updated", "commands", len(commands), "files", len(files))
}

func (s *Server) checkTargets() (commands, files []string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.commands, s.files
}

// Handler returns the route mux. Exposed separately so tests can drive it
// through httptest without binding a port.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /health/live", s.handleLive)
	mux.HandleFunc("GET /health/ready", s.handleReady)
	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully (5s budget).
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("health server listening", "addr", s.httpSrv.Addr)
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		slog.Info("health server stopped")
		return <-errCh
	}
}

// handleHealth runs all three checks and reports the full picture.
// Any error-level failure means unhealthy/503; warnings alone degrade the
// status but keep the 200, since the application still serves traffic.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	commands, files := s.checkTargets()
	checks := map[string]CheckResult{
		"environment":  checkEnvironment(s.opts.SnapshotFn()),
		"dependencies": checkDependencies(commands),
		"files":        checkFiles(files),
	}

	status := aggregate(checks)
	code := http.StatusOK
	if status == StatusUnhealthy {
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, Report{
		Status:      status,
		Timestamp:   timestamp(),
		Application: s.opts.Application,
		Checks:      checks,
	})
}

// handleLive only proves the process is scheduling requests. It depends on
// nothing external and can never fail.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Report{
		Status:    StatusAlive,
		Timestamp: timestamp(),
	})
}

// handleReady runs the environment and dependency checks. Error-level
// failures mean the shell cannot serve real traffic; warnings (a missing
// optional variable) do not block readiness.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	commands, _ := s.checkTargets()
	checks := map[string]CheckResult{
		"environment":  checkEnvironment(s.opts.SnapshotFn()),
		"dependencies": checkDependencies(commands),
	}

	status := StatusReady
	code := http.StatusOK
	if hasError(checks) {
		status = StatusNotReady
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, Report{
		Status:    status,
		Timestamp: timestamp(),
		Checks:    checks,
	})
}

func writeJSON(w http.ResponseWriter, code int, report Report) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(report); err != nil {
		slog.Error("health response encode failed", "error", err)
	}
}
