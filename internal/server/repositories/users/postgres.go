package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/papper-tech/auth-service/internal/common"
	"github.com/papper-tech/auth-service/internal/dbx"
	"github.com/papper-tech/auth-service/internal/server/models"
)

// uniqueViolation is the Postgres error code for unique constraint failures.
const uniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Add(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (user_id, login, password, name, surname, used_secret)
         VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING has_face_id, is_active, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Login, user.Password, user.Name, user.Surname, user.UsedSecret).
		Scan(&user.HasFaceID, &user.IsActive, &user.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID string) (*models.User, error) {
	query :=
		`SELECT user_id, login, password, name, surname, has_face_id, is_active, used_secret, created_at
		 FROM users
		 WHERE user_id = $1
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, userID))
}

func (r *PostgresRepository) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	query :=
		`SELECT user_id, login, password, name, surname, has_face_id, is_active, used_secret, created_at
		 FROM users
		 WHERE login = $1
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, login))
}

func (r *PostgresRepository) Update(ctx context.Context, user *models.User) error {
	query :=
		`UPDATE users
		 SET login = $2, password = $3, name = $4, surname = $5, has_face_id = $6, is_active = $7
		 WHERE user_id = $1
		 `

	result, err := r.db.ExecContext(ctx, query,
		user.ID, user.Login, user.Password, user.Name, user.Surname, user.HasFaceID, user.IsActive)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Login, &user.Password, &user.Name, &user.Surname,
		&user.HasFaceID, &user.IsActive, &user.UsedSecret, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}
