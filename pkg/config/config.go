package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	LogLevel             string       `split_words:"true" default:"info"`
	SchemaPath           string       `required:"true" split_words:"true"`
	Database             *Database    `required:"true"`
	Loader               *Loader      `split_words:"true"`
	Query                *Query       `split_words:"true"`
	HttpServer           *HttpServer  `split_words:"true"`
	DebugServer          *DebugServer `split_words:"true"`
	CorsAllowedOrigins   []string     `split_words:"true" default:"*"`
	CorsAllowCredentials bool         `split_words:"true" default:"true"`
}

func Load(prefix string) (*Config, error) {
	prefix = strings.ToUpper(prefix)
	prefix = strings.ReplaceAll(prefix, "-", "_")
	prefix = strings.ReplaceAll(prefix, " ", "_")
	var config Config
	if err := envconfig.Process(prefix, &config); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}
	return &config, nil
}
