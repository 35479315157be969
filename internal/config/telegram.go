package config

import "time"

type Telegram struct {
	ApiID          int           `env:"TG_API_ID,required"`
	ApiHash        string        `env:"TG_API_HASH,required" json:"-"`
	Phone          string        `env:"TG_PHONE,required"`
	Password       string        `env:"TG_PASSWORD" json:"-"`
	SessionPath    string        `env:"TG_SESSION_PATH" envDefault:"./session/session.json"`
	RPS            float64       `env:"TG_RPS" envDefault:"5"`
	RequestTimeout time.Duration `env:"TG_REQUEST_TIMEOUT" envDefault:"15s"`
}
