package secrets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/papper-tech/auth-service/internal/common"
	"github.com/papper-tech/auth-service/internal/dbx"
	"github.com/papper-tech/auth-service/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Add upserts a secret row keyed by the token value.
func (r *PostgresRepository) Add(ctx context.Context, secret *models.Secret) error {

	query :=
		`INSERT INTO secrets (secret, created_by, used_by, is_used)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (secret)
		 DO UPDATE SET created_by = $2, used_by = $3, is_used = $4
		 `

	_, err := r.db.ExecContext(ctx, query,
		secret.Secret, secret.CreatedBy, secret.UsedBy, secret.IsUsed)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, secretID string) (*models.Secret, error) {
	query :=
		`SELECT secret, created_by, used_by, is_used, created_at
		 FROM secrets
		 WHERE secret = $1
		 `

	secret := &models.Secret{}
	err := r.db.QueryRowContext(ctx, query, secretID).
		Scan(&secret.Secret, &secret.CreatedBy, &secret.UsedBy, &secret.IsUsed, &secret.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return secret, nil
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]*models.Secret, error) {
	query :=
		`SELECT secret, created_by, used_by, is_used, created_at
		 FROM secrets
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Secret
	for rows.Next() {
		secret := &models.Secret{}
		if err := rows.Scan(&secret.Secret, &secret.CreatedBy, &secret.UsedBy,
			&secret.IsUsed, &secret.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, secret)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// Redeem marks an unused secret as consumed by consumerID. The guard on
// is_used makes the transition single-shot even under concurrent redeems.
func (r *PostgresRepository) Redeem(ctx context.Context, secretID, consumerID string) (*models.Secret, error) {
	query :=
		`UPDATE secrets
		 SET is_used = true, used_by = $2
		 WHERE secret = $1 AND is_used = false
		 RETURNING secret, created_by, used_by, is_used, created_at
		 `

	secret := &models.Secret{}
	err := r.db.QueryRowContext(ctx, query, secretID, consumerID).
		Scan(&secret.Secret, &secret.CreatedBy, &secret.UsedBy, &secret.IsUsed, &secret.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrInvalidSecret
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return secret, nil
}
