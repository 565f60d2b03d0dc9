package config

import (
	"time"
)

type Loader struct {
	Wait     time.Duration `default:"1ms"`
	MaxBatch int           `split_words:"true" default:"1000"`
}

type Query struct {
	DefaultPageSize int `split_words:"true" default:"10"`
	MaxPageSize     int `split_words:"true" default:"1000"`
	SampleMaxDepth  int `split_words:"true" default:"4"`
}
