package store

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestSQLStoreQueryConvertsRows(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("failed to create sql mock: %v", err)
	}
	defer db.Close()

	query := "SELECT * FROM `checkpoints` WHERE id IN (?,?)"
	mock.ExpectQuery(query).
		WithArgs("1", "2").
		WillReturnRows(sqlmock.NewRows([]string{"id", "block_number", "contract_address"}).
			AddRow([]byte("1"), int64(100), []byte("0x01")).
			AddRow([]byte("2"), int64(101), []byte("0x02")))

	records, err := NewSQLStore(db).Query(context.Background(), query, "1", "2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	if records[0].ID() != "1" || records[1].ID() != "2" {
		t.Fatalf("unexpected record ids: %q, %q", records[0].ID(), records[1].ID())
	}

	if records[0]["contract_address"] != "0x01" {
		t.Fatalf("expected text column to be converted to string, got %#v", records[0]["contract_address"])
	}

	if records[1]["block_number"] != int64(101) {
		t.Fatalf("expected numeric column to be kept, got %#v", records[1]["block_number"])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSQLStoreQueryWrapsErrors(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("failed to create sql mock: %v", err)
	}
	defer db.Close()

	expectedErr := errors.New("connection reset")
	mock.ExpectQuery("SELECT 1").WillReturnError(expectedErr)

	_, err = NewSQLStore(db).Query(context.Background(), "SELECT 1")
	if !errors.Is(err, expectedErr) {
		t.Fatalf("expected error %v, got %v", expectedErr, err)
	}
}

func TestRecordID(t *testing.T) {
	tests := []struct {
		record   Record
		expected string
	}{
		{record: Record{"id": "abc"}, expected: "abc"},
		{record: Record{"id": []byte("abc")}, expected: "abc"},
		{record: Record{"id": int64(42)}, expected: "42"},
		{record: Record{"value": "x"}, expected: ""},
	}

	for _, test := range tests {
		if got := test.record.ID(); got != test.expected {
			t.Fatalf("expected %q, got %q", test.expected, got)
		}
	}
}
