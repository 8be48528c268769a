package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/papper-tech/auth-service/internal/server/models"
	"github.com/papper-tech/auth-service/internal/server/repositories/repomanager"
)

// SecretService manages the invitation-secret ledger on behalf of
// authenticated operators.
type SecretService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewSecretService(db *sql.DB, m repomanager.RepositoryManager) *SecretService {
	return &SecretService{db: db, repomanager: m}
}

// List returns every secret in the ledger, used and unused.
func (s *SecretService) List(ctx context.Context) ([]*models.Secret, error) {
	return s.repomanager.Secrets(s.db).ListAll(ctx)
}

// Add records a new invitation secret. When secretValue is empty a fresh
// UUID is minted.
func (s *SecretService) Add(ctx context.Context, secretValue, createdBy string) (*models.Secret, error) {
	if secretValue == "" {
		secretValue = uuid.NewString()
	}

	secret := &models.Secret{Secret: secretValue, CreatedBy: createdBy}
	if err := s.repomanager.Secrets(s.db).Add(ctx, secret); err != nil {
		return nil, fmt.Errorf("error adding secret: %w", err)
	}

	return secret, nil
}
