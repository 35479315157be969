package config

import (
	"fmt"
	"time"

	"tg_giftbuyer/internal/domain/service/purchase"
)

type Engine struct {
	IdleBackoff      time.Duration `env:"ENGINE_IDLE_BACKOFF" envDefault:"100ms"`
	ErrorBackoff     time.Duration `env:"ENGINE_ERROR_BACKOFF" envDefault:"3s"`
	PausePoll        time.Duration `env:"ENGINE_PAUSE_POLL" envDefault:"1s"`
	HeartbeatEvery   int           `env:"ENGINE_HEARTBEAT_EVERY" envDefault:"100"`
	UnitTiers        string        `env:"ENGINE_UNIT_TIERS" envDefault:"100000:10,*:50"`
	RequeueRemainder bool          `env:"ENGINE_REQUEUE_REMAINDER" envDefault:"false"`
	StartPaused      bool          `env:"ENGINE_START_PAUSED" envDefault:"false"`
}

func (e Engine) Tiers() (purchase.Tiers, error) {
	return purchase.ParseTiers(e.UnitTiers)
}

const (
	StateBackendFile     = "file"
	StateBackendPostgres = "postgres"
	StateBackendRedis    = "redis"
)

type State struct {
	Backend string `env:"STATE_BACKEND" envDefault:"file"`
	File    string `env:"STATE_FILE" envDefault:"./config.json"`
	Key     string `env:"STATE_KEY" envDefault:"giftbuyer:state"`
}

func (s State) validate() error {
	switch s.Backend {
	case StateBackendFile, StateBackendPostgres, StateBackendRedis:
		return nil
	default:
		return fmt.Errorf("unknown STATE_BACKEND %q", s.Backend)
	}
}
