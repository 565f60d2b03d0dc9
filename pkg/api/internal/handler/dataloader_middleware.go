package handler

import (
	"context"
	"net/http"

	"github.com/checkpoint-indexer/checkpoint/pkg/loader"
)

var loaderFactoryCtxKey = &contextKey{"loaderFactory"}

// NewDataLoaderMiddleware gives every request its own loader factory, so records are fetched at most
// once per request and never shared between requests.
func NewDataLoaderMiddleware(config loader.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			requestConfig := config
			requestConfig.Logger = LoggerFromContext(ctx)
			ctx = WithLoaderFactory(ctx, loader.NewFactory(requestConfig))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func WithLoaderFactory(ctx context.Context, factory *loader.Factory) context.Context {
	return context.WithValue(ctx, loaderFactoryCtxKey, factory)
}

func LoaderFactoryFromContext(ctx context.Context) (*loader.Factory, error) {
	factory, ok := ctx.Value(loaderFactoryCtxKey).(*loader.Factory)
	if !ok {
		return nil, ErrLoaderFactoryNotFound
	}
	return factory, nil
}
