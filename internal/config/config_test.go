package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tg_giftbuyer/internal/config"
)

func setRequired(t *testing.T) {
	t.Helper()

	t.Setenv("TG_API_ID", "12345")
	t.Setenv("TG_API_HASH", "hash")
	t.Setenv("TG_PHONE", "+10000000000")
	t.Setenv("BOT_TOKEN", "1:token")
	t.Setenv("BOT_CHAT_ID", "777")
}

func TestParseDefaults(t *testing.T) {
	rq := require.New(t)
	setRequired(t)

	cfg, err := config.Parse()
	rq.NoError(err)

	rq.Equal(12345, cfg.Telegram.ApiID)
	rq.Equal(int64(777), cfg.Bot.ChatID)
	rq.Equal(100*time.Millisecond, cfg.Engine.IdleBackoff)
	rq.Equal(3*time.Second, cfg.Engine.ErrorBackoff)
	rq.Equal(100, cfg.Engine.HeartbeatEvery)
	rq.False(cfg.Engine.RequeueRemainder)
	rq.Equal(config.StateBackendFile, cfg.State.Backend)

	tiers, err := cfg.Engine.Tiers()
	rq.NoError(err)
	rq.Len(tiers, 2)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "Unknown state backend",
			env:  map[string]string{"STATE_BACKEND": "etcd"},
		},
		{
			name: "Postgres backend without DSN",
			env:  map[string]string{"STATE_BACKEND": "postgres"},
		},
		{
			name: "Redis backend without address",
			env:  map[string]string{"STATE_BACKEND": "redis"},
		},
		{
			name: "Async notify without redis",
			env:  map[string]string{"NOTIFY_ASYNC": "true"},
		},
		{
			name: "Broken tiers",
			env:  map[string]string{"ENGINE_UNIT_TIERS": "abc"},
		},
		{
			name: "Bad duration",
			env:  map[string]string{"ENGINE_IDLE_BACKOFF": "soon"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := config.Parse()
			require.Error(t, err)
		})
	}
}

func TestParseMissingRequired(t *testing.T) {
	setRequired(t)
	require.NoError(t, os.Unsetenv("TG_API_ID"))

	_, err := config.Parse()
	require.Error(t, err)
}
