package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func sampleTxFunc(tx *sql.Tx) (int, error) {
	// Simply return a fixed value.
	return 42, nil
}

func sampleTxFuncErr(tx *sql.Tx) (int, error) {
	// Simulate a failure within the transaction.
	return 0, errors.New("simulated error")
}

func TestTxRunner_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error creating sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	result, err := TxRunner(context.Background(), db, sampleTxFunc)
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if result != 42 {
		t.Errorf("expected result 42, got %d", result)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %v", err)
	}
}

func TestTxRunner_FuncError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error creating sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	// Since the function returns an error, we expect a rollback.
	mock.ExpectRollback()

	_, err = TxRunner(context.Background(), db, sampleTxFuncErr)
	if err == nil {
		t.Fatal("expected an error from sampleTxFuncErr, got nil")
	}
	if err.Error() != "failed to execute transaction: simulated error" {
		t.Errorf("unexpected error message: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestTxRunner_CommitError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error creating sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(fmt.Errorf("commit failed"))

	_, err = TxRunner(context.Background(), db, sampleTxFunc)
	if err == nil {
		t.Fatal("expected commit error, got nil")
	}
	if err.Error() != "failed to commit transaction: commit failed" {
		t.Errorf("unexpected error message: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestTxRunner_BeginTxError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error creating sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin().WillReturnError(fmt.Errorf("begin error"))

	_, err = TxRunner(context.Background(), db, sampleTxFunc)
	if err == nil {
		t.Fatal("expected error on BeginTx, got nil")
	}
	if err.Error() != "failed to begin transaction: begin error" {
		t.Errorf("unexpected error message: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestRebind(t *testing.T) {
	q := "SELECT * FROM swaps WHERE block_number >= ? AND block_number <= ?"

	assert.Equal(t, q, Rebind(DialectSqlite, q))
	assert.Equal(t,
		"SELECT * FROM swaps WHERE block_number >= $1 AND block_number <= $2",
		Rebind(DialectPostgres, q))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "", Placeholders(0))
	assert.Equal(t, "?", Placeholders(1))
	assert.Equal(t, "?, ?, ?", Placeholders(3))
}
