package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/checkpoint-indexer/checkpoint/pkg/api"
	"github.com/checkpoint-indexer/checkpoint/pkg/config"
	"github.com/checkpoint-indexer/checkpoint/pkg/datastore"
	"github.com/checkpoint-indexer/checkpoint/pkg/loader"
	"github.com/checkpoint-indexer/checkpoint/pkg/schema"
	"github.com/checkpoint-indexer/checkpoint/pkg/store"
)

const (
	appName = "checkpoint"
)

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "severity",
			logrus.FieldKeyMsg:   "message",
		},
		TimestampFormat: time.RFC3339,
	})

	conf, err := config.Load(appName)
	if err != nil {
		logrus.
			WithError(err).
			Fatal("failed to initialize config")
		return
	}

	logLevel, err := logrus.ParseLevel(conf.LogLevel)
	if err != nil {
		logrus.
			WithError(err).
			Fatal("failed to parse log level")
		return
	}
	logrus.SetLevel(logLevel)

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGTERM, syscall.SIGINT)

	if _, err := maxprocs.Set(maxprocs.Logger(logrus.Printf)); err != nil {
		logrus.
			WithError(err).
			Error("failed to set maxprocs")
		return
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	loaderMetrics, err := loader.NewMetrics(registry)
	if err != nil {
		logrus.
			WithError(err).
			Fatal("failed to register loader metrics")
		return
	}

	debugServer := &http.Server{
		Addr:    conf.DebugServer.Address(),
		Handler: newDebugHandler(conf.DebugServer.MetricsEndpoint, registry),
	}

	if conf.DebugServer.Enabled {
		go func() {
			logrus.WithField("address", conf.DebugServer.Address()).Info("Starting serving debug server")
			if err := debugServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logrus.
					WithError(err).
					Fatal("Failed to serve debug")
				return
			}
		}()
	}

	logrus.Info("loading schema..")
	entitySchema, err := schema.Load(conf.SchemaPath)
	if err != nil {
		logrus.
			WithError(err).
			WithField("path", conf.SchemaPath).
			Fatal("failed to load schema")
		return
	}

	dialect, err := store.ParseDialect(conf.Database.Driver)
	if err != nil {
		logrus.
			WithError(err).
			Fatal("failed to resolve database dialect")
		return
	}

	logrus.WithField("dialect", dialect.String()).Info("initializing database..")
	db, err := datastore.NewSQLDB(dialect, conf.Database.DSN, datastore.Options{
		MaxOpenConns:    conf.Database.MaxOpenConns,
		MaxIdleConns:    conf.Database.MaxIdleConns,
		ConnMaxLifetime: conf.Database.ConnMaxLifetime,
		PingTimeout:     conf.Database.PingTimeout,
	})
	if err != nil {
		logrus.
			WithError(err).
			Fatal("failed initialize datastore")
		return
	}
	defer func() {
		if err := db.Close(); err != nil {
			logrus.
				WithError(err).
				Error("failed to close database")
		}
	}()

	router, err := api.NewRouter(conf, api.Dependencies{
		Schema:  entitySchema,
		Store:   store.NewSQLStore(db),
		Dialect: dialect,
		Metrics: loaderMetrics,
		Logger:  logrus.StandardLogger(),
	})
	if err != nil {
		logrus.
			WithError(err).
			Fatal("failed to initialize router")
		return
	}

	httpServer := http.Server{
		Addr:    conf.HttpServer.Address(),
		Handler: router,
	}

	go func() {
		logrus.
			WithField("address", conf.HttpServer.Address()).
			WithField("entities", len(entitySchema.Entities())).
			Info("Starting serving http server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.
				WithError(err).
				Fatal("failed to listen and serve http server")
		}
	}()

	<-shutdownChan
	logrus.Info("Shutting down")

	logrus.Info("Shutting down http server")
	httpServerShutdownTimeoutCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(httpServerShutdownTimeoutCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logrus.
			WithError(err).
			Error("failed to shutdown http server")
		return
	}

	if conf.DebugServer.Enabled {
		logrus.Info("Shutting down debug http server")
		debugHttpServerShutdownTimeoutCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := debugServer.Shutdown(debugHttpServerShutdownTimeoutCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.
				WithError(err).
				Error("failed to shutdown debug server")
			return
		}
	}
}

func newDebugHandler(metricsEndpoint string, gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.Handle(metricsEndpoint, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return mux
}
