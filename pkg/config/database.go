package config

import (
	"time"
)

type Database struct {
	Driver          string        `default:"mysql"`
	DSN             string        `envconfig:"DSN" required:"true"`
	MaxOpenConns    int           `split_words:"true" default:"10"`
	MaxIdleConns    int           `split_words:"true" default:"5"`
	ConnMaxLifetime time.Duration `split_words:"true" default:"5m"`
	PingTimeout     time.Duration `split_words:"true" default:"5s"`
}
