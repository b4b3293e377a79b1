// Package logging constructs the structured logger every other package
// takes as a dependency, thinly wrapping
// github.com/prometheus/common/promslog the way the teacher's own main
// packages do.
package logging

import (
	"log/slog"
	"os"

	"github.com/prometheus/common/promslog"
)

// New builds a *slog.Logger at the given level ("debug", "info", "warn",
// "error"; empty defaults to "info"). Output always goes to os.Stderr,
// matching the convention of every Prometheus component main.
func New(level string) *slog.Logger {
	cfg := &promslog.Config{Level: promslog.NewLevel(), Writer: os.Stderr}
	if level != "" {
		if err := cfg.Level.Set(level); err != nil {
			cfg.Level.Set("info")
		}
	}
	return promslog.New(cfg)
}
