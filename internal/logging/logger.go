package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"

	"github.com/i474232898/air-quality-aggregation/internal/config"
)

// New builds the process logger: colourised text in dev, JSON otherwise.
func New(cfg *config.AppConfig, appName string) *slog.Logger {
	return newLogger(os.Stdout, cfg.AppEnv, cfg.LogLevel, appName)
}

func newLogger(w io.Writer, env string, level slog.Level, appName string) *slog.Logger {
	if env == "dev" {
		h := tint.NewHandler(w, &tint.Options{
			Level:      level,
			AddSource:  true,
			TimeFormat: time.Kitchen,
		})
		return slog.New(h).With("app", appName)
	}

	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(h).With(
		"app", appName,
		"env", env,
	)
}
