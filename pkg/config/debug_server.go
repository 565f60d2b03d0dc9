package config

import (
	"fmt"
)

// DebugServer serves pprof and the prometheus metrics on a separate listener.
type DebugServer struct {
	Enabled         bool   `default:"false"`
	Host            string `default:"127.0.0.1"`
	Port            uint16 `default:"6060"`
	MetricsEndpoint string `default:"/metrics" split_words:"true"`
}

func (s *DebugServer) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
