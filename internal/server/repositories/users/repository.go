package users

import (
	"context"

	"github.com/papper-tech/auth-service/internal/server/models"
)

// Repository persists user accounts. Login uniqueness is enforced by the
// storage layer and surfaced from Add as common.ErrorConflict.
type Repository interface {
	Add(ctx context.Context, user *models.User) (*models.User, error)
	Get(ctx context.Context, userID string) (*models.User, error)
	GetByLogin(ctx context.Context, login string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}
