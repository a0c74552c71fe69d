// Package logging builds the zap logger used for diagnostics. Diagnostics
// always go to stderr so that rendered documents on stdout stay clean.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Format selects the log encoding.
type Format string

const (
	// FormatConsole is human-readable, colored output.
	FormatConsole Format = "console"

	// FormatJSON is one JSON object per line.
	FormatJSON Format = "json"
)

// Config holds the configuration for the logger.
type Config struct {
	// Level is the minimum enabled logging level (debug, info, warn, error).
	Level string

	// Format determines the encoding.
	Format Format

	// OutputPaths is a list of URLs or file paths to write logging output to.
	OutputPaths []string
}

// DefaultConfig logs warnings and errors to stderr in console format.
func DefaultConfig() Config {
	return Config{
		Level:       "warn",
		Format:      FormatConsole,
		OutputPaths: []string{"stderr"},
	}
}

// NewLogger creates a zap logger from cfg. Empty fields take their
// DefaultConfig values.
func NewLogger(cfg Config) (*zap.Logger, error) {
	def := DefaultConfig()
	if cfg.Level == "" {
		cfg.Level = def.Level
	}
	if cfg.Format == "" {
		cfg.Format = def.Format
	}
	if len(cfg.OutputPaths) == 0 {
		cfg.OutputPaths = def.OutputPaths
	}

	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var encoderConfig zapcore.EncoderConfig
	switch cfg.Format {
	case FormatJSON:
		encoderConfig = zap.NewProductionEncoderConfig()
	case FormatConsole:
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoderConfig.TimeKey = ""
	default:
		return nil, fmt.Errorf("logging: unknown format %q (expected console or json)", cfg.Format)
	}

	zapConfig := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		DisableCaller:     true,
		DisableStacktrace: true,
		Encoding:          string(cfg.Format),
		EncoderConfig:     encoderConfig,
		OutputPaths:       cfg.OutputPaths,
		ErrorOutputPaths:  []string{"stderr"},
	}

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: failed to build logger: %w", err)
	}
	return logger, nil
}

// ParseLevel converts a string level to zapcore.Level.
func ParseLevel(level string) (zapcore.Level, error) {
	l, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return l, fmt.Errorf("logging: invalid log level %q: %w", level, err)
	}
	return l, nil
}
