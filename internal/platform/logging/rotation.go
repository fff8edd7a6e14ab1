package logging

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the console stream and the optional file sink.
type Options struct {
	// Stderr sends console output to stderr instead of stdout.
	Stderr     bool
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

func (o Options) console() zapcore.WriteSyncer {
	if o.Stderr {
		return zapcore.Lock(os.Stderr)
	}
	return zapcore.Lock(os.Stdout)
}

func (o Options) writer() io.Writer {
	path := strings.TrimSpace(o.File)
	if path == "" {
		return nil
	}
	maxSize := o.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 100
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSize,
		MaxBackups: o.MaxBackups,
		MaxAge:     o.MaxAgeDays,
		Compress:   o.Compress,
		LocalTime:  true,
	}
}

// ParseLevel maps LOG_LEVEL values onto zap levels, defaulting to info.
func ParseLevel(v string) Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}
