package config

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type LogConfig struct {
	Level   string `json:"level"`
	Console bool   `json:"console"`
}

func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:   "info",
		Console: true,
	}
}

// SetupLogger configures the global logger. Unknown levels fall back to info.
func SetupLogger(cfg LogConfig) {
	setupLogger(cfg, os.Stderr)
}

func setupLogger(cfg LogConfig, out io.Writer) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.Console {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: "15:04:05",
		}
	}

	log.Logger = zerolog.New(out).
		With().
		Timestamp().
		Str("app", "picocraft").
		Logger()
}

// ComponentLogger creates a logger with a component name field.
func ComponentLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}
