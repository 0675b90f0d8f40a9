package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresStoreInsert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	rec := sampleRecord()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "demo-requests"`)).
		WithArgs(rec.Name, rec.Phone, rec.Address, rec.Email, rec.Message, "team", pgxmock.AnyArg(), "pending").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	s := NewPostgresStore(mock, "demo-requests")
	require.NoError(t, s.Insert(context.Background(), rec))

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresStoreInsert_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	connErr := errors.New("connection reset")
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "demo_requests"`)).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(connErr)

	s := NewPostgresStore(mock, "demo_requests")
	err = s.Insert(context.Background(), sampleRecord())

	require.Error(t, err)
	assert.ErrorIs(t, err, connErr)
	assert.Contains(t, err.Error(), "store: insert failed: connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewPostgresStore_RequiresConnection(t *testing.T) {
	assert.Panics(t, func() { NewPostgresStore(nil, "demo_requests") })
}
