// Package services contains server-side business logic. This file implements
// UserService, which handles invitation-gated registration, login, and
// issuing/refreshing the JWT token pair.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/papper-tech/auth-service/internal/common"
	"github.com/papper-tech/auth-service/internal/cryptox"
	"github.com/papper-tech/auth-service/internal/dbx"
	"github.com/papper-tech/auth-service/internal/logging"
	"github.com/papper-tech/auth-service/internal/server/auth"
	"github.com/papper-tech/auth-service/internal/server/config"
	"github.com/papper-tech/auth-service/internal/server/email"
	"github.com/papper-tech/auth-service/internal/server/models"
	"github.com/papper-tech/auth-service/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// UserService provides authentication-related operations:
//   - Register: redeem an invitation secret and create the user
//   - Login: verify credentials and mint tokens
//   - Refresh: verify a refresh token and mint a new pair
//   - Authenticate: resolve an access token to a user ID
type UserService struct {
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	codec           *auth.Codec
	mailer          email.Sender
	logger          logging.Logger
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, codec *auth.Codec,
	mailer email.Sender, logger logging.Logger, cfg *config.Config) *UserService {
	return &UserService{
		db:              db,
		repomanager:     m,
		codec:           codec,
		mailer:          mailer,
		logger:          logger,
		accessTokenTTL:  cfg.AccessTokenTTL,
		refreshTokenTTL: cfg.RefreshTokenTTL,
	}
}

// Register redeems an invitation secret and creates a user in one
// transaction, so the ledger is never left with a used secret that has no
// matching user. Duplicate logins yield common.ErrorConflict; unknown or
// already-used secrets yield common.ErrInvalidSecret.
func (s *UserService) Register(ctx context.Context, secretID, name, surname, login, password string) error {

	userRepo := s.repomanager.Users(s.db)
	if _, err := userRepo.GetByLogin(ctx, login); err == nil {
		return common.ErrorConflict
	} else if !errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("error searching user: %w", err)
	}

	secretRepo := s.repomanager.Secrets(s.db)
	if _, err := secretRepo.Get(ctx, secretID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrInvalidSecret
		}
		return fmt.Errorf("error searching secret: %w", err)
	}

	userID := uuid.NewString()

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Secrets(tx).Redeem(ctx, secretID, userID); err != nil {
			return err
		}

		user := &models.User{
			ID:         userID,
			Login:      login,
			Password:   cryptox.HashPassword(password),
			Name:       name,
			Surname:    surname,
			UsedSecret: sql.NullString{String: secretID, Valid: true},
		}
		_, err := s.repomanager.Users(tx).Add(ctx, user)
		return err
	})
}

// RegisterByEmail creates a user identified by email, generating a 5-digit
// code that is delivered by email and stored (hashed) as the password.
// Delivery failures are logged, never returned.
func (s *UserService) RegisterByEmail(ctx context.Context, emailAddr string) error {

	userRepo := s.repomanager.Users(s.db)
	if _, err := userRepo.GetByLogin(ctx, emailAddr); err == nil {
		return common.ErrorConflict
	} else if !errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("error searching user: %w", err)
	}

	code, digest, err := cryptox.GenerateTemporaryPassword()
	if err != nil {
		return common.ErrorInternal
	}

	if err := s.mailer.Send(ctx, emailAddr, code); err != nil {
		s.logger.Error(ctx, "email delivery failed", "recipient", emailAddr, "error", err.Error())
	}

	user := &models.User{
		ID:       uuid.NewString(),
		Login:    emailAddr,
		Password: digest,
	}
	if _, err := userRepo.Add(ctx, user); err != nil {
		return err
	}
	return nil
}

// Login verifies the provided credentials and, on success, returns a new
// TokenPair. Unknown logins and wrong passwords are indistinguishable to the
// caller.
func (s *UserService) Login(ctx context.Context, login, password string) (*TokenPair, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}
	if !cryptox.VerifyPassword(password, user.Password) {
		return nil, common.ErrorUnauthorized
	}
	return s.generateTokenPair(user)
}

// Refresh validates a refresh token and mints a fresh pair. Claims are
// re-derived from the stored user row rather than copied from the old token,
// so profile-flag changes are picked up. Expired tokens yield
// common.ErrTokenExpired, anything else invalid common.ErrInvalidToken.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.codec.VerifyAndDecode(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users(s.db).Get(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, common.ErrorInternal
	}

	return s.generateTokenPair(user)
}

// Authenticate resolves an access token to the user ID it was issued for.
func (s *UserService) Authenticate(accessToken string) (string, error) {
	claims, err := s.codec.VerifyAndDecode(accessToken)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

// GetUser returns the stored user record.
func (s *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.repomanager.Users(s.db).Get(ctx, userID)
}

// UpdateProfileFlag flips the secondary-factor flag on a stored user.
func (s *UserService) UpdateProfileFlag(ctx context.Context, userID string, hasFaceID bool) error {
	repo := s.repomanager.Users(s.db)

	user, err := repo.Get(ctx, userID)
	if err != nil {
		return err
	}

	user.HasFaceID = hasFaceID
	return repo.Update(ctx, user)
}

// --- helpers below ---

func (s *UserService) generateTokenPair(user *models.User) (*TokenPair, error) {
	access, err := s.codec.Issue(auth.Claims{
		UserID:    user.ID,
		Login:     user.Login,
		HasFaceID: user.HasFaceID,
	}, s.accessTokenTTL)
	if err != nil {
		return nil, common.ErrorInternal
	}

	refresh, err := s.codec.Issue(auth.Claims{
		UserID:    user.ID,
		HasFaceID: user.HasFaceID,
	}, s.refreshTokenTTL)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
