package loader

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/checkpoint-indexer/checkpoint/pkg/store"
)

// Config captures what every loader of a factory shares.
type Config struct {
	// Store executes the batched queries
	Store store.Store

	// Dialect builds the batched queries for Store
	Dialect store.Dialect

	// Logger receives one debug entry per dispatched batch, defaults to the standard logger
	Logger logrus.FieldLogger

	// Metrics is optional
	Metrics *Metrics

	// Wait is how long a loader collects keys before dispatching a batch
	Wait time.Duration

	// MaxBatch limits the number of keys dispatched in one batch, 0 = no limit
	MaxBatch int
}

// Factory hands out one Loader per entity name. A factory and its loaders belong to a single
// request and must not be reused by another one.
type Factory struct {
	config Config

	mu      sync.Mutex
	loaders map[string]*Loader
}

func NewFactory(config Config) *Factory {
	if config.Logger == nil {
		config.Logger = logrus.StandardLogger()
	}
	return &Factory{
		config:  config,
		loaders: make(map[string]*Loader),
	}
}

// Loader returns the loader of entityName, creating it on first use.
func (f *Factory) Loader(entityName string) *Loader {
	f.mu.Lock()
	defer f.mu.Unlock()

	l, ok := f.loaders[entityName]
	if !ok {
		l = newLoader(entityName, f.config)
		f.loaders[entityName] = l
	}
	return l
}
