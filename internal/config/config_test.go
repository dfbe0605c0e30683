package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Health.Port != DefaultHealthPort {
		t.Errorf("expected default port %d, got %d", DefaultHealthPort, cfg.Health.Port)
	}
	if len(cfg.MCP.Servers) != 2 {
		t.Errorf("expected 2 default MCP servers, got %d", len(cfg.MCP.Servers))
	}
	if len(cfg.Health.Files) == 0 {
		t.Error("expected default application files")
	}
}

func TestLoad_ParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
health:
  port: 9090
  commands: [python3]
  files: [/srv/app.py]
agent:
  model: my-model
  endpoint: http://localhost:11434/v1
artifacts:
  bucket: my-diagrams
  prefix: runs/
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Health.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Health.Port)
	}
	if cfg.Agent.Model != "my-model" {
		t.Errorf("expected model my-model, got %q", cfg.Agent.Model)
	}
	if cfg.Artifacts.Bucket != "my-diagrams" {
		t.Errorf("expected bucket my-diagrams, got %q", cfg.Artifacts.Bucket)
	}
	if got := cfg.HealthCommands(); len(got) != 1 || got[0] != "python3" {
		t.Errorf("explicit health commands must win, got %v", got)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("health: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestHealthCommands_DerivedFromMCPServers(t *testing.T) {
	cfg := Default()
	got := cfg.HealthCommands()
	// Both default servers launch via uvx; the list must be deduplicated.
	if len(got) != 1 || got[0] != "uvx" {
		t.Errorf("expected [uvx], got %v", got)
	}
}

func TestPortEnvOverride(t *testing.T) {
	t.Setenv("HEALTH_CHECK_PORT", "18080")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Health.Port != 18080 {
		t.Errorf("expected HEALTH_CHECK_PORT override 18080, got %d", cfg.Health.Port)
	}
}

func TestPortEnvOverride_Invalid(t *testing.T) {
	t.Setenv("HEALTH_CHECK_PORT", "not-a-port")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Health.Port != DefaultHealthPort {
		t.Errorf("invalid override must keep default, got %d", cfg.Health.Port)
	}
}
