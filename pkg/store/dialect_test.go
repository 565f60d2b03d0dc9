package store

import (
	"errors"
	"reflect"
	"testing"

	"github.com/lib/pq"
)

func TestParseDialect(t *testing.T) {
	tests := []struct {
		name     string
		expected Dialect
		err      error
	}{
		{name: "mysql", expected: DialectMySQL},
		{name: " MySQL ", expected: DialectMySQL},
		{name: "postgres", expected: DialectPostgres},
		{name: "postgresql", expected: DialectPostgres},
		{name: "sqlite", err: ErrUnsupportedDialect},
	}

	for _, test := range tests {
		dialect, err := ParseDialect(test.name)
		if test.err != nil {
			if !errors.Is(err, test.err) {
				t.Fatalf("%q: expected error %v, got %v", test.name, test.err, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", test.name, err)
		}
		if dialect != test.expected {
			t.Fatalf("%q: expected %s, got %s", test.name, test.expected, dialect)
		}
	}
}

func TestSelectByIdsMySQL(t *testing.T) {
	query, args, err := DialectMySQL.SelectByIds("checkpoints", []string{"1", "2", "3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "SELECT * FROM `checkpoints` WHERE id IN (?,?,?)"
	if query != expected {
		t.Fatalf("expected query %q, got %q", expected, query)
	}

	if !reflect.DeepEqual(args, []any{"1", "2", "3"}) {
		t.Fatalf("unexpected args: %#v", args)
	}
}

func TestSelectByIdsPostgres(t *testing.T) {
	query, args, err := DialectPostgres.SelectByIds("checkpoints", []string{"1", "2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := `SELECT * FROM "checkpoints" WHERE id = ANY($1)`
	if query != expected {
		t.Fatalf("expected query %q, got %q", expected, query)
	}

	if len(args) != 1 {
		t.Fatalf("expected a single array argument, got %#v", args)
	}

	array, ok := args[0].(*pq.StringArray)
	if !ok {
		t.Fatalf("expected *pq.StringArray argument, got %T", args[0])
	}
	if !reflect.DeepEqual([]string(*array), []string{"1", "2"}) {
		t.Fatalf("unexpected array argument: %#v", *array)
	}
}

func TestSelectByIdsRequiresIds(t *testing.T) {
	if _, _, err := DialectMySQL.SelectByIds("checkpoints", nil); !errors.Is(err, ErrEmptyIds) {
		t.Fatalf("expected %v, got %v", ErrEmptyIds, err)
	}
}

func TestSelectPage(t *testing.T) {
	query, _, err := DialectPostgres.SelectPage("votes", 10, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := `SELECT * FROM "votes" ORDER BY id LIMIT 10 OFFSET 20`
	if query != expected {
		t.Fatalf("expected query %q, got %q", expected, query)
	}
}

func TestQuoteIdentifierEscapes(t *testing.T) {
	if got := DialectMySQL.QuoteIdentifier("a`b"); got != "`a``b`" {
		t.Fatalf("unexpected mysql quoting: %s", got)
	}
	if got := DialectPostgres.QuoteIdentifier(`a"b`); got != `"a""b"` {
		t.Fatalf("unexpected postgres quoting: %s", got)
	}
}
