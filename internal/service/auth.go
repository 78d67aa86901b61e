// Package service holds the business logic between the HTTP handlers and the
// repositories: the registration/login/refresh flow and the task engine.
// Services depend on small store interfaces so tests can substitute
// in-memory fakes for the MySQL-backed repositories.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/task-tracker/internal/config"
	"github.com/iliyamo/task-tracker/internal/model"
	"github.com/iliyamo/task-tracker/internal/repository"
	"github.com/iliyamo/task-tracker/internal/utils"
)

// ErrInvalidCredentials is returned by Login when the password does not
// match an existing user's hash. It is deliberately distinct from
// repository.ErrUserNotFound so the flow can tell a bad password apart from
// an unknown email, whatever the HTTP layer chooses to expose.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrValidation wraps all rejected-input failures so handlers can map them
// to a single status code while keeping the message specific.
var ErrValidation = errors.New("validation failed")

// UserStore is the slice of the user repository the auth flow needs.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uint64) (*model.User, error)
}

// Sequencer allocates the next value of a named counter.
type Sequencer interface {
	Next(ctx context.Context, name string) (uint64, error)
}

// TokenPair bundles the two tokens issued on login.
type TokenPair struct {
	Access  utils.SignedToken
	Refresh utils.SignedToken
}

// AuthService orchestrates registration, login and refresh on top of the
// user store, the sequence generator, the password hasher and the token
// helpers.
type AuthService struct {
	cfg   config.Config
	users UserStore
	seq   Sequencer
}

// NewAuthService constructs an AuthService.
func NewAuthService(cfg config.Config, users UserStore, seq Sequencer) *AuthService {
	return &AuthService{cfg: cfg, users: users, seq: seq}
}

// Register creates a new user. The email must not be taken, the password is
// bcrypt-hashed and the id comes from the "user_id" sequence. Registration
// never returns tokens; a separate login step is required.
func (s *AuthService) Register(ctx context.Context, fullName, email, password string) (*model.User, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.ToLower(strings.TrimSpace(email))
	if fullName == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: full_name, email and password are required", ErrValidation)
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: invalid email address", ErrValidation)
	}

	// Fast duplicate check first; the unique index on users.email is the
	// backstop against a concurrent registration of the same address.
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, repository.ErrEmailExists
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(password, s.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}
	id, err := s.seq.Next(ctx, repository.SeqUserID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	u := &model.User{
		ID:           id,
		FullName:     fullName,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login verifies the credentials and issues one access token and one refresh
// token bound to the user's email. An unknown email yields
// repository.ErrUserNotFound; a wrong password yields ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (TokenPair, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return TokenPair{}, err
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return TokenPair{}, ErrInvalidCredentials
	}
	access, err := utils.NewAccessToken(s.cfg.JWTSecret, u.Email, s.cfg.AccessTTLMin)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := utils.NewRefreshToken(s.cfg.JWTSecret, u.Email, s.cfg.RefreshTTLDays)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

// Refresh exchanges a valid refresh token for a fresh access token. The
// refresh token itself is not rotated and stays valid until its natural
// expiry. The subject must still exist in the user store.
func (s *AuthService) Refresh(ctx context.Context, rawRefresh string) (utils.SignedToken, error) {
	subject, err := utils.VerifyRefreshToken(s.cfg.JWTSecret, rawRefresh)
	if err != nil {
		return utils.SignedToken{}, err
	}
	if _, err := s.users.GetByEmail(ctx, subject); err != nil {
		return utils.SignedToken{}, err
	}
	return utils.NewAccessToken(s.cfg.JWTSecret, subject, s.cfg.AccessTTLMin)
}

// CurrentUser resolves a verified token subject to its user record. It is
// the second half of the authentication gate: a token may verify while its
// subject has since disappeared, which surfaces as
// repository.ErrUserNotFound.
func (s *AuthService) CurrentUser(ctx context.Context, email string) (*model.User, error) {
	return s.users.GetByEmail(ctx, email)
}
