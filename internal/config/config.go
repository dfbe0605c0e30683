// Package config loads the cloudeng YAML configuration and applies defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Application is the fixed identifier reported by the health endpoint.
const Application = "cloudeng-agent"

// DefaultHealthPort is where orchestrators probe the health server.
const DefaultHealthPort = 8080

// Config is the top-level cloudeng configuration.
type Config struct {
	Health    HealthConfig    `yaml:"health"`
	Agent     AgentConfig     `yaml:"agent"`
	MCP       MCPConfig       `yaml:"mcp"`
	Artifacts ArtifactsConfig `yaml:"artifacts"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// HealthConfig configures the health check server.
type HealthConfig struct {
	Port int `yaml:"port"`
	// Commands that must be resolvable on PATH for the agent's tool
	// servers to launch. Empty means "derive from mcp.servers".
	Commands []string `yaml:"commands"`
	// Files that must exist on disk (application entry points).
	Files []string `yaml:"files"`
}

// AgentConfig configures the agent runner.
type AgentConfig struct {
	Model    string `yaml:"model"`
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"apiKey"`
	// Rate limit for task runs, requests per minute per caller key.
	// Zero disables the limiter.
	RatePerMinute int `yaml:"ratePerMinute"`
	Burst         int `yaml:"burst"`
}

// MCPConfig lists the MCP tool servers the agent launches over stdio.
type MCPConfig struct {
	Servers []MCPServerConfig `yaml:"servers"`
}

// MCPServerConfig describes one stdio MCP server.
type MCPServerConfig struct {
	Name       string            `yaml:"name"`
	Command    string            `yaml:"command"`
	Args       []string          `yaml:"args"`
	Env        map[string]string `yaml:"env"`
	TimeoutSec int               `yaml:"timeoutSec"`
}

// ArtifactsConfig configures S3 upload of generated artifacts (diagrams).
// An empty bucket disables uploads.
type ArtifactsConfig struct {
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`
	// Dir is the local directory the diagram tool writes into.
	Dir string `yaml:"dir"`
}

// TelemetryConfig configures the optional OTLP span export.
type TelemetryConfig struct {
	Enabled     bool              `yaml:"enabled"`
	Endpoint    string            `yaml:"endpoint"`
	Protocol    string            `yaml:"protocol"` // "grpc" (default) or "http"
	ServiceName string            `yaml:"serviceName"`
	Insecure    bool              `yaml:"insecure"`
	Headers     map[string]string `yaml:"headers"`
}

// Default returns the configuration used when no config file exists.
// The defaults mirror the deployed container layout: the Streamlit UI and
// agent entry points live under /app, and the MCP servers launch via uvx.
func Default() *Config {
	return &Config{
		Health: HealthConfig{
			Port: DefaultHealthPort,
			Files: []string{
				"/app/app.py",
				"/app/cloud_engineer_agent.py",
				"/app/env_validator.py",
			},
		},
		Agent: AgentConfig{
			RatePerMinute: 30,
			Burst:         5,
		},
		MCP: MCPConfig{
			Servers: []MCPServerConfig{
				{
					Name:    "aws-docs",
					Command: "uvx",
					Args:    []string{"awslabs.aws-documentation-mcp-server@latest"},
					Env:     map[string]string{"FASTMCP_LOG_LEVEL": "ERROR"},
				},
				{
					Name:    "aws-diagram",
					Command: "uvx",
					Args:    []string{"awslabs.aws-diagram-mcp-server@latest"},
					Env:     map[string]string{"FASTMCP_LOG_LEVEL": "ERROR"},
				},
			},
		},
		Artifacts: ArtifactsConfig{
			Dir: "/tmp/generated-diagrams",
		},
	}
}

// Load reads the config file at path. A missing file is not an error:
// the defaults are returned so the shell runs unconfigured out of the box.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.Health.Port <= 0 {
		cfg.Health.Port = DefaultHealthPort
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides honors the container-level overrides the deployment
// tooling sets. HEALTH_CHECK_PORT matches the original deployment contract.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("HEALTH_CHECK_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			c.Health.Port = port
		}
	}
}

// HealthCommands returns the launcher commands the health server must find
// on PATH. Explicit config wins; otherwise the MCP server commands are the
// source of truth, deduplicated in declaration order.
func (c *Config) HealthCommands() []string {
	if len(c.Health.Commands) > 0 {
		return c.Health.Commands
	}
	seen := make(map[string]bool)
	var cmds []string
	for _, s := range c.MCP.Servers {
		if s.Command == "" || seen[s.Command] {
			continue
		}
		seen[s.Command] = true
		cmds = append(cmds, s.Command)
	}
	return cmds
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	if v := os.Getenv("CLOUDENG_CONFIG"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "cloudeng.yaml"
	}
	return filepath.Join(home, ".cloudeng", "config.yaml")
}
