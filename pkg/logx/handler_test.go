package logx_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"tg_giftbuyer/pkg/logx"
)

func TestParseLevel(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		input string
		level slog.Level
	}{
		{input: "debug", level: slog.LevelDebug},
		{input: "DEBUG", level: slog.LevelDebug},
		{input: "warn", level: slog.LevelWarn},
		{input: "warning", level: slog.LevelWarn},
		{input: "error", level: slog.LevelError},
		{input: "", level: slog.LevelInfo},
		{input: "verbose", level: slog.LevelInfo},
	}

	for _, tc := range testCases {
		rq.Equal(tc.level, logx.ParseLevel(tc.input), tc.input)
	}
}
