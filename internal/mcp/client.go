// Package mcp launches and talks to the agent's stdio MCP tool servers
// (AWS documentation and AWS diagram servers).
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	mcpclient "github.com/mark3labs/mcp-go/client"
	mcpgo "github.com/mark3labs/mcp-go/mcp"

	"github.com/nextlevelbuilder/cloudeng/internal/config"
)

const defaultToolTimeout = 60 * time.Second

// Server is one connected stdio MCP server and its discovered tools.
type Server struct {
	name      string
	client    *mcpclient.Client
	tools     []mcpgo.Tool
	timeout   time.Duration
	connected atomic.Bool
}

// Connect launches the MCP server process, initializes the session, and
// lists its tools. The returned Server must be Closed by the caller.
func Connect(ctx context.Context, spec config.MCPServerConfig) (*Server, error) {
	env := make([]string, 0, len(spec.Env))
	for k, v := range spec.Env {
		env = append(env, k+"="+v)
	}

	cli, err := mcpclient.NewStdioMCPClient(spec.Command, env, spec.Args...)
	if err != nil {
		return nil, fmt.Errorf("launch MCP server %s: %w", spec.Name, err)
	}

	initReq := mcpgo.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcpgo.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcpgo.Implementation{
		Name:    "cloudeng",
		Version: "1.0.0",
	}
	if _, err := cli.Initialize(ctx, initReq); err != nil {
		cli.Close()
		return nil, fmt.Errorf("initialize MCP server %s: %w", spec.Name, err)
	}

	listed, err := cli.ListTools(ctx, mcpgo.ListToolsRequest{})
	if err != nil {
		cli.Close()
		return nil, fmt.Errorf("list tools on MCP server %s: %w", spec.Name, err)
	}

	timeout := defaultToolTimeout
	if spec.TimeoutSec > 0 {
		timeout = time.Duration(spec.TimeoutSec) * time.Second
	}

	s := &Server{
		name:    spec.Name,
		client:  cli,
		tools:   listed.Tools,
		timeout: timeout,
	}
	s.connected.Store(true)

	slog.Info("MCP server connected", "server", spec.Name, "tools", len(listed.Tools))
	return s, nil
}

// Name returns the configured server name.
func (s *Server) Name() string { return s.name }

// Tools returns the discovered tool definitions.
func (s *Server) Tools() []mcpgo.Tool { return s.tools }

// CallTool invokes one tool on the server and returns its text output.
func (s *Server) CallTool(ctx context.Context, tool string, args map[string]any) (string, error) {
	if !s.connected.Load() {
		return "", fmt.Errorf("MCP server %q is disconnected", s.name)
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req := mcpgo.CallToolRequest{}
	req.Params.Name = tool
	req.Params.Arguments = args

	result, err := s.client.CallTool(callCtx, req)
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("MCP tool %q timeout after %s", tool, s.timeout)
		}
		return "", fmt.Errorf("MCP tool %q: %w", tool, err)
	}

	text := extractTextContent(result)
	if result.IsError {
		return "", fmt.Errorf("MCP tool %q: %s", tool, text)
	}
	return text, nil
}

// Close stops the server process.
func (s *Server) Close() {
	if s.connected.CompareAndSwap(true, false) {
		s.client.Close()
		slog.Info("MCP server stopped", "server", s.name)
	}
}

// extractTextContent concatenates all text content from a CallToolResult.
func extractTextContent(result *mcpgo.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}

	var parts []string
	for _, c := range result.Content {
		switch v := c.(type) {
		case mcpgo.TextContent:
			parts = append(parts, v.Text)
		case *mcpgo.TextContent:
			parts = append(parts, v.Text)
		default:
			// Non-text content (image, audio): note its presence
			parts = append(parts, fmt.Sprintf("[non-text content: %T]", c))
		}
	}
	return strings.Join(parts, "\n")
}
