package loader

import (
	"github.com/graph-gophers/dataloader/v7"
)

func repeatError[V any](err error, count int) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], count)
	for i := 0; i < count; i++ {
		results[i] = &dataloader.Result[V]{
			Error: err,
		}
	}
	return results
}

// resultsByKey lines values up with the keys they were requested for. The order of values is not
// significant; keys without a value get the error produced by missingFn.
func resultsByKey[K comparable, V any](
	keys []K,
	values []V,
	keyFn func(V) K,
	missingFn func(K) error,
) []*dataloader.Result[V] {
	valuesByKey := make(map[K]V, len(values))
	for _, value := range values {
		valuesByKey[keyFn(value)] = value
	}

	results := make([]*dataloader.Result[V], len(keys))
	for i, key := range keys {
		value, ok := valuesByKey[key]
		if ok {
			results[i] = &dataloader.Result[V]{Data: value}
			continue
		}
		results[i] = &dataloader.Result[V]{Error: missingFn(key)}
	}
	return results
}
