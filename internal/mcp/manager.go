package mcp

import (
	"context"
	"log/slog"

	"github.com/nextlevelbuilder/cloudeng/internal/config"
)

// ConnectAll connects every configured server. A server that fails to start
// is logged and skipped: tool servers enhance the agent but must not keep
// the shell from running.
func ConnectAll(ctx context.Context, specs []config.MCPServerConfig) []*Server {
	var servers []*Server
	for _, spec := range specs {
		srv, err := Connect(ctx, spec)
		if err != nil {
			slog.Warn("MCP server unavailable, continuing with limited functionality",
				"server", spec.Name, "error", err)
			continue
		}
		servers = append(servers, srv)
	}
	return servers
}

// CloseAll stops every connected server.
func CloseAll(servers []*Server) {
	for _, s := range servers {
		s.Close()
	}
}
