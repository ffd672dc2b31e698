// Package services contains server-side business logic. This file implements
// UserService, which handles signup, signin, and issuing session JWTs.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"todokeeper/internal/common"
	"todokeeper/internal/server/auth"
	"todokeeper/internal/server/config"
	"todokeeper/internal/server/models"
	"todokeeper/internal/server/repositories/repomanager"
)

// Session bundles a signed token with its expiry.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// UserService provides authentication-related operations:
// - SignUp: create users and mint a session
// - SignIn: verify credentials and mint a session
// - GetByID: load the user behind a verified token
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// SignUp creates a new user with a bcrypt-hashed password and signs them in.
// A duplicate email yields common.ErrorAlreadyExists.
func (s *UserService) SignUp(ctx context.Context, email, password string) (*models.User, *Session, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
	}

	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, nil, common.ErrorAlreadyExists
		}
		return nil, nil, fmt.Errorf("error creating user: %w", err)
	}

	session, err := s.newSession(u.ID)
	if err != nil {
		return nil, nil, err
	}
	return u, session, nil
}

// SignIn verifies the password against the stored hash and, on success,
// returns the user with a fresh session. Unknown emails and wrong passwords
// are indistinguishable: both yield common.ErrorUnauthorized.
func (s *UserService) SignIn(ctx context.Context, email, password string) (*models.User, *Session, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrorUnauthorized
		}
		return nil, nil, common.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, common.ErrorUnauthorized
	}

	session, err := s.newSession(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// GetByID loads a user by id.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}

func (s *UserService) newSession(userID string) (*Session, error) {
	token, expiresAt, err := auth.GenerateToken(userID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}
	return &Session{Token: token, ExpiresAt: expiresAt}, nil
}
