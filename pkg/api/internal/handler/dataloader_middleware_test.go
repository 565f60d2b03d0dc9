package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"

	"github.com/checkpoint-indexer/checkpoint/pkg/loader"
	"github.com/checkpoint-indexer/checkpoint/pkg/store"
)

type nopStore struct{}

func (nopStore) Query(context.Context, string, ...any) ([]store.Record, error) {
	return nil, nil
}

func TestDataLoaderMiddlewareCreatesFactoryPerRequest(t *testing.T) {
	var factories []*loader.Factory
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		factory, err := LoaderFactoryFromContext(r.Context())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		again, _ := LoaderFactoryFromContext(r.Context())
		if again != factory {
			t.Fatalf("expected the same factory within a request")
		}
		factories = append(factories, factory)
	})

	handler := NewDataLoaderMiddleware(loader.Config{
		Store:   nopStore{},
		Dialect: store.DialectMySQL,
	})(next)

	for i := 0; i < 2; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/graphql", nil))
	}

	if len(factories) != 2 {
		t.Fatalf("expected 2 requests to be served, got %d", len(factories))
	}
	if factories[0] == factories[1] {
		t.Fatalf("expected a fresh factory for every request")
	}
}

func TestLoaderFactoryFromContextWithoutMiddleware(t *testing.T) {
	if _, err := LoaderFactoryFromContext(context.Background()); !errors.Is(err, ErrLoaderFactoryNotFound) {
		t.Fatalf("expected %v, got %v", ErrLoaderFactoryNotFound, err)
	}
}

func TestRequestLoggerMiddlewareTagsRequests(t *testing.T) {
	logger, hook := logrustest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		LoggerFromContext(r.Context()).Info("resolving")
	})
	handler := NewRequestLoggerMiddleware(logger)(next)

	request := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	request.Header.Set(requestIdHeader, "req-1")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	if recorder.Header().Get(requestIdHeader) != "req-1" {
		t.Fatalf("expected request id to be echoed, got %q", recorder.Header().Get(requestIdHeader))
	}

	entries := hook.AllEntries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(entries))
	}
	for _, entry := range entries {
		if entry.Data["request_id"] != "req-1" || entry.Data["path"] != "/graphql" {
			t.Fatalf("unexpected log fields: %#v", entry.Data)
		}
	}
}

func TestRequestLoggerMiddlewareGeneratesRequestId(t *testing.T) {
	logger, _ := logrustest.NewNullLogger()
	handler := NewRequestLoggerMiddleware(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	if recorder.Header().Get(requestIdHeader) == "" {
		t.Fatalf("expected a generated request id")
	}
}
