//go:build !otel

package cmd

import (
	"context"
	"log/slog"

	"github.com/nextlevelbuilder/cloudeng/internal/config"
	"github.com/nextlevelbuilder/cloudeng/internal/tracing"
)

// initTelemetry is a no-op without -tags otel.
func initTelemetry(ctx context.Context, cfg *config.Config, collector *tracing.Collector) {
	if cfg.Telemetry.Enabled {
		slog.Warn("telemetry enabled in config but this build lacks OTel support (rebuild with -tags otel)")
	}
}
