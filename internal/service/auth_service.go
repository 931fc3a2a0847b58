package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/onestep-labs/urban-solve/internal/auth"
	"github.com/onestep-labs/urban-solve/internal/config"
	"github.com/onestep-labs/urban-solve/internal/domain"
	"github.com/onestep-labs/urban-solve/internal/repository"
	apperrors "github.com/onestep-labs/urban-solve/pkg/util/errorutil"
)

// AuthService coordinates registration and login flows.
type AuthService struct {
	users          repository.UserRepository
	tokenMgr       *auth.TokenManager
	bcryptCost     int
	minPasswordLen int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:          users,
		tokenMgr:       auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		bcryptCost:     cfg.BcryptCost,
		minPasswordLen: cfg.MinPasswordLength,
	}
}

// SignupInput describes the registration payload.
type SignupInput struct {
	NID      string
	Name     string
	Email    string
	Password string
	Role     domain.Role
	Contact  string
}

// Signup registers a new account. No sensitive data is returned.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) error {
	input.NID = strings.TrimSpace(input.NID)
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	input.Contact = strings.TrimSpace(input.Contact)

	if input.NID == "" || input.Name == "" || input.Email == "" || input.Password == "" {
		return apperrors.NewValidationError("nid, name, email and password are required", nil)
	}
	if len(input.Password) < s.minPasswordLen {
		return apperrors.NewValidationError("password must be at least 6 characters", nil)
	}
	if !input.Role.IsValid() {
		return apperrors.NewValidationError("role must be citizen, staff or admin", nil)
	}

	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return apperrors.NewConflict("an account with this email already exists", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewPersistenceError(err)
	}
	if _, err := s.users.GetByNID(ctx, input.NID); err == nil {
		return apperrors.NewConflict("an account with this national ID already exists", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewPersistenceError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return apperrors.MapError(err)
	}

	user := &domain.User{
		NID:          input.NID,
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         input.Role,
		Contact:      input.Contact,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return apperrors.NewPersistenceError(err)
	}
	return nil
}

// Signin authenticates a user by email, password and role. The failure is
// deliberately undifferentiated so callers cannot probe which factor was
// wrong.
func (s *AuthService) Signin(ctx context.Context, email, password string, role domain.Role) (*domain.User, string, time.Time, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" || role == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("email, password and role are required", nil)
	}

	user, err := s.users.GetByEmailAndRole(ctx, email, role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewAuthError()
		}
		return nil, "", time.Time{}, apperrors.NewPersistenceError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewAuthError()
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return user, token, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
