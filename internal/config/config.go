package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Telegram Telegram
	Bot      Bot
	Engine   Engine
	State    State
	Postgres Postgres
	Redis    Redis
	HTTP     HTTP
	Log      Log
	Notify   Notify
}

type Bot struct {
	Token   string `env:"BOT_TOKEN,required" json:"-"`
	ChatID  int64  `env:"BOT_CHAT_ID,required"`
	AdminID int64  `env:"BOT_ADMIN_ID"`
}

type HTTP struct {
	Listen        string `env:"HTTP_LISTEN" envDefault:":8080"`
	ProbeListen   string `env:"PROBE_LISTEN" envDefault:":8081"`
	MetricsListen string `env:"METRICS_LISTEN" envDefault:":9090"`
}

type Log struct {
	Level   string `env:"LOG_LEVEL" envDefault:"info"`
	File    string `env:"LOG_FILE"`
	NoColor bool   `env:"LOG_NO_COLOR"`
}

// Notify: доставка уведомлений. Async включает очередь asynq поверх Redis.
type Notify struct {
	Async bool `env:"NOTIFY_ASYNC"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	return Parse()
}

// Parse читает конфигурацию только из окружения, без .env.
func Parse() (Config, error) {
	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	if err := config.validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

func (c Config) validate() error {
	if err := c.State.validate(); err != nil {
		return err
	}

	if c.State.Backend == StateBackendPostgres && c.Postgres.DSN == "" {
		return fmt.Errorf("PG_DSN is required for state backend %q", c.State.Backend)
	}

	if (c.State.Backend == StateBackendRedis || c.Notify.Async) && c.Redis.Address == "" {
		return fmt.Errorf("REDIS_ADDRESS is required for state backend %q or async notify", c.State.Backend)
	}

	if _, err := c.Engine.Tiers(); err != nil {
		return fmt.Errorf("ENGINE_UNIT_TIERS: %w", err)
	}

	return nil
}
