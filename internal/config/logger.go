package config

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggingConfig configures the file logger. The terminal belongs to the UI,
// so log output never goes to stdout or stderr.
type LoggingConfig struct {
	Level string `toml:"level"` // none, normal or debug
	File  string `toml:"file"`
	Mode  string `toml:"mode"` // append or overwrite
}

// Prepare returns the configured logger. Level "none" or an empty file name
// yields a no-op logger.
func (conf *LoggingConfig) Prepare() (*zap.Logger, error) {
	var level zapcore.Level
	switch conf.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "normal":
		level = zapcore.InfoLevel
	default:
		return zap.NewNop(), nil
	}
	if conf.File == "" {
		return zap.NewNop(), nil
	}

	flags := os.O_CREATE | os.O_WRONLY
	if conf.Mode == "overwrite" {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_APPEND
	}

	if dir := filepath.Dir(conf.File); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("unable to create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(conf.File, flags, 0644)
	if err != nil {
		return nil, fmt.Errorf("unable to open log file: %w", err)
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(f), level)

	return zap.New(core, zap.AddCaller()), nil
}
