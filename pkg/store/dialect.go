package store

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

type Dialect string

const (
	DialectMySQL    Dialect = "mysql"
	DialectPostgres Dialect = "postgres"
)

func ParseDialect(name string) (Dialect, error) {
	switch Dialect(strings.ToLower(strings.TrimSpace(name))) {
	case DialectMySQL:
		return DialectMySQL, nil
	case DialectPostgres, "postgresql", "pgx":
		return DialectPostgres, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedDialect, name)
	}
}

func (d Dialect) String() string {
	return string(d)
}

func (d Dialect) QuoteIdentifier(name string) string {
	switch d {
	case DialectPostgres:
		return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
	default:
		return "`" + strings.ReplaceAll(name, "`", "``") + "`"
	}
}

func (d Dialect) statementBuilder() sq.StatementBuilderType {
	if d == DialectPostgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

// SelectByIds builds the batch statement selecting every column of table for the given ids.
// MySQL expands the ids into an IN list, PostgreSQL binds them as a single array parameter.
func (d Dialect) SelectByIds(table string, ids []string) (string, []any, error) {
	if len(ids) == 0 {
		return "", nil, ErrEmptyIds
	}

	query := d.statementBuilder().
		Select("*").
		From(d.QuoteIdentifier(table))

	switch d {
	case DialectPostgres:
		query = query.Where(sq.Expr("id = ANY(?)", pq.Array(ids)))
	case DialectMySQL:
		query = query.Where(sq.Eq{"id": ids})
	default:
		return "", nil, fmt.Errorf("%w: %q", ErrUnsupportedDialect, string(d))
	}

	return query.ToSql()
}

// SelectPage builds a statement returning at most first rows of table ordered by id, skipping skip rows.
func (d Dialect) SelectPage(table string, first uint64, skip uint64) (string, []any, error) {
	if d != DialectMySQL && d != DialectPostgres {
		return "", nil, fmt.Errorf("%w: %q", ErrUnsupportedDialect, string(d))
	}

	return d.statementBuilder().
		Select("*").
		From(d.QuoteIdentifier(table)).
		OrderBy("id").
		Limit(first).
		Offset(skip).
		ToSql()
}
