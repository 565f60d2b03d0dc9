package config

import (
	"fmt"
)

type HttpServer struct {
	Host                    string `default:""`
	Port                    uint16 `default:"3000"`
	GraphiQLEnabled         bool   `default:"true" split_words:"true"`
	GraphiQLEndpoint        string `default:"/graphiql" split_words:"true"`
	SandboxExplorerEnabled  bool   `default:"false" split_words:"true"`
	SandboxExplorerEndpoint string `default:"/sandbox" split_words:"true"`
	AltairEnabled           bool   `default:"false" split_words:"true"`
	AltairEndpoint          string `default:"/altair" split_words:"true"`
}

func (s *HttpServer) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
