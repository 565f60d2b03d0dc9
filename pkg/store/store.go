package store

import (
	"context"
	"fmt"
)

// Store executes a parameterized statement and returns every row it produced.
type Store interface {
	Query(ctx context.Context, query string, args ...any) ([]Record, error)
}

// Record is one row keyed by column name.
type Record map[string]any

// ID returns the textual form of the row's id column, or "" when it has none.
func (r Record) ID() string {
	return FormatID(r["id"])
}

// FormatID returns the textual form of an id column value.
func FormatID(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}
