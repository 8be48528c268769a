package secrets

import (
	"context"

	"github.com/papper-tech/auth-service/internal/server/models"
)

// Repository is the invitation-secret ledger. Each secret is consumable
// exactly once; Redeem rejects unknown and already-used secrets with
// common.ErrInvalidSecret.
type Repository interface {
	Add(ctx context.Context, secret *models.Secret) error
	Get(ctx context.Context, secretID string) (*models.Secret, error)
	ListAll(ctx context.Context) ([]*models.Secret, error)
	Redeem(ctx context.Context, secretID, consumerID string) (*models.Secret, error)
}
