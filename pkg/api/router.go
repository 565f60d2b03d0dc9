package api

import (
	"fmt"
	"net/http"

	gqlplayground "github.com/99designs/gqlgen/graphql/playground"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	gqlhttp "github.com/graphql-go/handler"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/checkpoint-indexer/checkpoint/pkg/api/internal/handler"
	"github.com/checkpoint-indexer/checkpoint/pkg/api/internal/resolver"
	"github.com/checkpoint-indexer/checkpoint/pkg/api/internal/tools/graphiql"
	"github.com/checkpoint-indexer/checkpoint/pkg/config"
	"github.com/checkpoint-indexer/checkpoint/pkg/loader"
	"github.com/checkpoint-indexer/checkpoint/pkg/samplequery"
	"github.com/checkpoint-indexer/checkpoint/pkg/schema"
	"github.com/checkpoint-indexer/checkpoint/pkg/store"
)

const (
	graphqlEndpoint    = "/graphql"
	maxRequestBodySize = 1 << 20
)

type Dependencies struct {
	Schema  *schema.Schema
	Store   store.Store
	Dialect store.Dialect
	Metrics *loader.Metrics
	Logger  logrus.FieldLogger
}

func NewRouter(conf *config.Config, deps Dependencies) (http.Handler, error) {
	logger := deps.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	executableSchema, err := resolver.NewExecutableSchema(resolver.Config{
		Schema:          deps.Schema,
		Store:           deps.Store,
		Dialect:         deps.Dialect,
		DefaultPageSize: conf.Query.DefaultPageSize,
		MaxPageSize:     conf.Query.MaxPageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build executable schema: %w", err)
	}

	gqlHandler := gqlhttp.New(&gqlhttp.Config{
		Schema: &executableSchema,
		Pretty: true,
	})

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   conf.CorsAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: conf.CorsAllowCredentials,
	})

	router := chi.NewRouter()
	router.Use(corsMiddleware.Handler)
	router.Use(middleware.Recoverer)
	router.Use(handler.NewRequestLoggerMiddleware(logger))

	router.Group(func(r chi.Router) {
		if conf.HttpServer.GraphiQLEnabled {
			sampleQuery := samplequery.
				NewGenerator(deps.Schema, conf.Query.DefaultPageSize, conf.Query.SampleMaxDepth).
				Generate(deps.Schema.DefaultEntity())
			r.Handle(conf.HttpServer.GraphiQLEndpoint, graphiql.Handler("GraphiQL Playground", graphqlEndpoint, sampleQuery))
		}

		if conf.HttpServer.SandboxExplorerEnabled {
			r.Handle(conf.HttpServer.SandboxExplorerEndpoint, gqlplayground.ApolloSandboxHandler("Apollo Sandbox Explorer", graphqlEndpoint))
		}

		if conf.HttpServer.AltairEnabled {
			r.Handle(conf.HttpServer.AltairEndpoint, gqlplayground.AltairHandler("Altair Playground", graphqlEndpoint, nil))
		}

		r.HandleFunc("/health", func(writer http.ResponseWriter, request *http.Request) {})
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequestSize(maxRequestBodySize))
		r.Use(handler.NewDataLoaderMiddleware(loader.Config{
			Store:    deps.Store,
			Dialect:  deps.Dialect,
			Metrics:  deps.Metrics,
			Wait:     conf.Loader.Wait,
			MaxBatch: conf.Loader.MaxBatch,
		}))

		r.Handle(graphqlEndpoint, gqlHandler)
	})

	return router, nil
}
