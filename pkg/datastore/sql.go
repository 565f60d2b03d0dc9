package datastore

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"

	"github.com/checkpoint-indexer/checkpoint/pkg/store"
)

type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	PingTimeout     time.Duration
}

func NewSQLDB(dialect store.Dialect, dsn string, options Options) (*sql.DB, error) {
	connector, err := newConnector(dialect, dsn)
	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(options.MaxOpenConns)
	db.SetMaxIdleConns(options.MaxIdleConns)
	db.SetConnMaxLifetime(options.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), options.PingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database - %w", dialect, err)
	}

	return db, nil
}

func newConnector(dialect store.Dialect, dsn string) (driver.Connector, error) {
	switch dialect {
	case store.DialectMySQL:
		config, err := mysql.ParseDSN(dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to parse mysql dsn - %w", err)
		}
		// DATETIME and TIMESTAMP columns are served as time.Time instead of raw bytes
		config.ParseTime = true
		return mysql.NewConnector(config)
	case store.DialectPostgres:
		connector, err := pq.NewConnector(dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to parse postgres dsn - %w", err)
		}
		return connector, nil
	default:
		return nil, fmt.Errorf("%w: %q", store.ErrUnsupportedDialect, string(dialect))
	}
}
