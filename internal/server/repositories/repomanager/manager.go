// Package repomanager wires repository implementations to database handles.
// Repositories are constructed per call against a DBTX, so the same manager
// serves both pooled connections and open transactions.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/papper-tech/auth-service/internal/dbx"
	"github.com/papper-tech/auth-service/internal/server/repositories/secrets"
	"github.com/papper-tech/auth-service/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Secrets(db dbx.DBTX) secrets.Repository
}
