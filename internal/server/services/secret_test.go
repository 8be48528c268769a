package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/papper-tech/auth-service/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSecretService(t *testing.T) (*SecretService, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewSecretService(db, repomanager.NewPostgresRepositoryManager()), mock
}

func TestSecretService_List(t *testing.T) {
	svc, mock := newSecretService(t)

	rows := sqlmock.NewRows(secretColumns).
		AddRow("s-1", "ops", sql.NullString{}, false, time.Now()).
		AddRow("s-2", "ops", sql.NullString{String: "u-1", Valid: true}, true, time.Now())
	mock.ExpectQuery(`SELECT\s+.*\s+FROM\s+secrets\s+ORDER\s+BY\s+created_at`).
		WillReturnRows(rows)

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSecretService_Add_ExplicitValue(t *testing.T) {
	svc, mock := newSecretService(t)

	mock.ExpectExec(`INSERT\s+INTO\s+secrets`).
		WithArgs("s-new", "ops", sql.NullString{}, false).
		WillReturnResult(sqlmock.NewResult(0, 1))

	secret, err := svc.Add(context.Background(), "s-new", "ops")
	require.NoError(t, err)
	assert.Equal(t, "s-new", secret.Secret)
	assert.Equal(t, "ops", secret.CreatedBy)
}

func TestSecretService_Add_GeneratesValue(t *testing.T) {
	svc, mock := newSecretService(t)

	mock.ExpectExec(`INSERT\s+INTO\s+secrets`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	secret, err := svc.Add(context.Background(), "", "ops")
	require.NoError(t, err)

	_, err = uuid.Parse(secret.Secret)
	assert.NoError(t, err, "generated secret must be a UUID")
}
