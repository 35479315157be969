package logx

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logFileMaxSizeMB  = 100
	logFileMaxAgeDays = 14
)

type HandlerOptions struct {
	Level   string
	File    string
	NoColor bool
}

// NewHandler returns a tint console handler. When File is set, records are
// duplicated into a rotated log file.
func NewHandler(opts HandlerOptions) slog.Handler {
	var out io.Writer = os.Stdout

	noColor := opts.NoColor

	if opts.File != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename: opts.File,
			MaxSize:  logFileMaxSizeMB,
			MaxAge:   logFileMaxAgeDays,
			Compress: true,
		})
		noColor = true
	}

	return tint.NewHandler(out, &tint.Options{
		Level:      ParseLevel(opts.Level),
		TimeFormat: time.DateTime,
		NoColor:    noColor,
	})
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
