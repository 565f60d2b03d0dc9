package loader

import (
	"context"
	"time"

	"github.com/graph-gophers/dataloader/v7"
	"github.com/sirupsen/logrus"

	"github.com/checkpoint-indexer/checkpoint/pkg/naming"
	"github.com/checkpoint-indexer/checkpoint/pkg/store"
)

// Loader batches and caches lookups by id of one entity.
//
// Every Load issued within the wait window lands in the same batch, which is dispatched as a single
// select on the entity's table. Each id is fetched at most once: records and not-found results stay
// cached for the lifetime of the loader, while the keys of a batch whose query failed are evicted so
// a later Load retries them.
type Loader struct {
	entity  string
	table   string
	store   store.Store
	dialect store.Dialect
	logger  logrus.FieldLogger
	metrics *Metrics

	loader *dataloader.Loader[string, store.Record]
}

func newLoader(entityName string, config Config) *Loader {
	l := &Loader{
		entity:  entityName,
		table:   naming.TableName(entityName),
		store:   config.Store,
		dialect: config.Dialect,
		logger:  config.Logger,
		metrics: config.Metrics,
	}

	options := []dataloader.Option[string, store.Record]{
		dataloader.WithWait[string, store.Record](config.Wait),
	}
	if config.MaxBatch > 0 {
		options = append(options, dataloader.WithBatchCapacity[string, store.Record](config.MaxBatch))
	}
	l.loader = dataloader.NewBatchedLoader(l.fetch, options...)

	return l
}

func (l *Loader) Entity() string {
	return l.entity
}

// Load blocks until the record of id is available. A missing row yields a *NotFoundError and a
// failed batch a *BatchError.
func (l *Loader) Load(ctx context.Context, id string) (store.Record, error) {
	return l.LoadThunk(ctx, id)()
}

// LoadThunk enqueues id and returns a function waiting for its result. Callers resolving several
// fields should enqueue all of them before calling any thunk so they share one batch.
func (l *Loader) LoadThunk(ctx context.Context, id string) func() (store.Record, error) {
	return l.loader.Load(ctx, id)
}

// LoadMany returns records and errors aligned with ids.
func (l *Loader) LoadMany(ctx context.Context, ids []string) ([]store.Record, []error) {
	thunks := make([]func() (store.Record, error), len(ids))
	for i, id := range ids {
		thunks[i] = l.LoadThunk(ctx, id)
	}

	records := make([]store.Record, len(ids))
	errs := make([]error, len(ids))
	for i, thunk := range thunks {
		records[i], errs[i] = thunk()
	}
	return records, errs
}

// Prime caches a record fetched by other means. An id already cached is left untouched.
func (l *Loader) Prime(ctx context.Context, record store.Record) {
	id := record.ID()
	if id == "" {
		return
	}
	l.loader.Prime(ctx, id, record)
}

func (l *Loader) fetch(ctx context.Context, ids []string) []*dataloader.Result[store.Record] {
	start := time.Now()

	records, err := l.query(ctx, ids)
	l.metrics.observeBatch(l.entity, len(ids), time.Since(start), err)
	if err != nil {
		for _, id := range ids {
			l.loader.Clear(ctx, id)
		}
		return repeatError[store.Record](&BatchError{
			Entity: l.entity,
			IDs:    ids,
			Err:    err,
		}, len(ids))
	}

	return resultsByKey(ids, records, store.Record.ID, func(id string) error {
		return &NotFoundError{
			Entity: l.entity,
			ID:     id,
		}
	})
}

func (l *Loader) query(ctx context.Context, ids []string) ([]store.Record, error) {
	query, args, err := l.dialect.SelectByIds(l.table, ids)
	if err != nil {
		return nil, err
	}

	l.logger.
		WithFields(logrus.Fields{
			"entity": l.entity,
			"ids":    ids,
			"sql":    query,
		}).
		Debug("executing batched query")

	return l.store.Query(ctx, query, args...)
}
