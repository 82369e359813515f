// Package logging builds the application's zap logger. The terminal belongs
// to the TUI, so logs only ever go to a file.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects where and how much to log.
type Config struct {
	// Path is the log file. Empty disables logging.
	Path string

	// Level is a zap level name ("debug", "info", "warn", "error").
	// Empty means info.
	Level string

	// Mode "dev" writes human-readable lines; anything else writes JSON.
	Mode string
}

// New builds a logger from cfg. Fields whose keys look like credentials are
// redacted before they reach the file.
func New(cfg Config) (*zap.Logger, error) {
	if cfg.Path == "" {
		return zap.NewNop(), nil
	}

	level := zapcore.InfoLevel
	if cfg.Level != "" {
		l, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		level = l
	}

	var zc zap.Config
	switch strings.ToLower(cfg.Mode) {
	case "dev", "development":
		zc = zap.NewDevelopmentConfig()
	default:
		zc = zap.NewProductionConfig()
		zc.Sampling = nil
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{cfg.Path}
	zc.ErrorOutputPaths = []string{cfg.Path}
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zc.Build(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return &redactCore{Core: c}
	}))
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// Redacted replaces the value of any field whose key names a credential.
const Redacted = "[REDACTED]"

// redactCore scrubs credential fields on their way to the wrapped core.
type redactCore struct {
	zapcore.Core
}

func (c *redactCore) With(fields []zapcore.Field) zapcore.Core {
	return &redactCore{Core: c.Core.With(sanitize(fields))}
}

func (c *redactCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *redactCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	return c.Core.Write(ent, sanitize(fields))
}

func sanitize(fields []zapcore.Field) []zapcore.Field {
	var out []zapcore.Field
	for i, f := range fields {
		if !isRedactKey(f.Key) {
			continue
		}
		if out == nil {
			out = make([]zapcore.Field, len(fields))
			copy(out, fields)
		}
		out[i] = zap.String(f.Key, Redacted)
	}
	if out == nil {
		return fields
	}
	return out
}

// isRedactKey matches credential-looking keys. Counters such as
// input_tokens are not credentials and pass through.
func isRedactKey(key string) bool {
	key = strings.ToLower(key)
	switch key {
	case "token", "authorization", "password", "secret", "api_key", "apikey":
		return true
	}
	for _, suffix := range []string{"_token", "-token", "_secret", "_password", "_api_key", "_apikey"} {
		if strings.HasSuffix(key, suffix) {
			return true
		}
	}
	return strings.Contains(key, "authorization")
}
