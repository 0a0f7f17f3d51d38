package main

import (
	"log/slog"
	"strings"
	"time"

	"github.com/example/crystalstore/internal/infra/pgutils"
)

type apiConfig struct {
	Port            uint16        `env:"APP_PORT" default:"8080"`
	LogLevel        slog.Level    `env:"APP_LOG_LEVEL" default:"INFO"`
	ShutdownTimeout time.Duration `env:"APP_SHUTDOWN_TIMEOUT" default:"10s"`

	// Comma-separated; defaults to the Vite dev-server origins the
	// storefront runs on locally.
	CORSOrigins string `env:"APP_CORS_ORIGINS" default:"http://localhost:5173,http://localhost:5174"`

	Postgres pgutils.PoolConfig
}

func (c *apiConfig) corsOrigins() []string {
	parts := strings.Split(c.CORSOrigins, ",")

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}
