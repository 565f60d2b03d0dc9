package resolver

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/graphql-go/graphql"
	"github.com/lib/pq"

	"github.com/checkpoint-indexer/checkpoint/pkg/api/internal/handler"
	"github.com/checkpoint-indexer/checkpoint/pkg/internal/adapt"
	"github.com/checkpoint-indexer/checkpoint/pkg/naming"
	"github.com/checkpoint-indexer/checkpoint/pkg/store"
)

// resolveEntity loads one record by its id argument through the request's loader.
func resolveEntity(entityName string) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		id, ok := p.Args["id"].(string)
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidId, p.Args["id"])
		}

		factory, err := handler.LoaderFactoryFromContext(p.Context)
		if err != nil {
			return nil, err
		}

		return recordThunk(factory.Loader(entityName).LoadThunk(p.Context, id)), nil
	}
}

// resolveEntities reads one page of records ordered by id. The rows are handed to the request's
// loader so nested lookups of the same records do not query again.
func (b *schemaBuilder) resolveEntities(entityName string) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		first, ok := p.Args["first"].(int)
		if !ok {
			first = b.config.DefaultPageSize
		}
		skip, _ := p.Args["skip"].(int)
		if first < 0 || skip < 0 {
			return nil, ErrInvalidPagination
		}
		if b.config.MaxPageSize > 0 && first > b.config.MaxPageSize {
			first = b.config.MaxPageSize
		}

		factory, err := handler.LoaderFactoryFromContext(p.Context)
		if err != nil {
			return nil, err
		}

		query, args, err := b.config.Dialect.SelectPage(naming.TableName(entityName), uint64(first), uint64(skip))
		if err != nil {
			return nil, err
		}

		handler.LoggerFromContext(p.Context).
			WithField("entity", entityName).
			WithField("sql", query).
			Debug("executing page query")

		records, err := b.config.Store.Query(p.Context, query, args...)
		if err != nil {
			return nil, err
		}

		entityLoader := factory.Loader(entityName)
		for _, record := range records {
			entityLoader.Prime(p.Context, record)
		}

		return adapt.Array(records, func(record store.Record) interface{} {
			return record
		}), nil
	}
}

func resolveColumn(column string) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		record, ok := p.Source.(store.Record)
		if !ok {
			return nil, nil
		}
		return record[column], nil
	}
}

// resolveReference loads the entity whose id is stored in the column named after the field.
// The lookup is only enqueued here, so sibling records resolving the same field share one batch.
func resolveReference(column string, entityName string) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		record, ok := p.Source.(store.Record)
		if !ok || record[column] == nil {
			return nil, nil
		}

		factory, err := handler.LoaderFactoryFromContext(p.Context)
		if err != nil {
			return nil, err
		}

		id := store.FormatID(record[column])
		return recordThunk(factory.Loader(entityName).LoadThunk(p.Context, id)), nil
	}
}

// resolveReferences loads every entity listed in the column named after the field. The column holds
// an array of ids, its JSON encoding or a postgres array literal.
func resolveReferences(column string, entityName string) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		record, ok := p.Source.(store.Record)
		if !ok || record[column] == nil {
			return nil, nil
		}

		ids, err := referenceIds(record[column])
		if err != nil {
			return nil, err
		}

		factory, err := handler.LoaderFactoryFromContext(p.Context)
		if err != nil {
			return nil, err
		}

		entityLoader := factory.Loader(entityName)
		thunks := adapt.Array(ids, func(id string) func() (store.Record, error) {
			return entityLoader.LoadThunk(p.Context, id)
		})

		return func() (interface{}, error) {
			records, err := adapt.ArrayErr(thunks, func(thunk func() (store.Record, error)) (interface{}, error) {
				return thunk()
			})
			if err != nil {
				return nil, err
			}
			return records, nil
		}, nil
	}
}

func recordThunk(thunk func() (store.Record, error)) func() (interface{}, error) {
	return func() (interface{}, error) {
		record, err := thunk()
		if err != nil {
			return nil, err
		}
		return record, nil
	}
}

func referenceIds(value interface{}) ([]string, error) {
	switch v := value.(type) {
	case []string:
		return v, nil
	case []interface{}:
		return adapt.Array(v, store.FormatID), nil
	case string:
		if strings.HasPrefix(v, "{") {
			var items pq.StringArray
			if err := items.Scan(v); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidId, err)
			}
			return items, nil
		}

		var items []interface{}
		if err := json.Unmarshal([]byte(v), &items); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidId, err)
		}
		return referenceIds(items)
	default:
		return nil, fmt.Errorf("%w: unsupported id list %T", ErrInvalidId, value)
	}
}
