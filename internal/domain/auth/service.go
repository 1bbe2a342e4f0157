package auth

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/apperror"
	appctx "github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/context"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/id"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/tx"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/pkg/logger"
)

// ServiceConfig holds auth service configuration.
type ServiceConfig struct {
	MaxLoginAttempts  int
	LockDuration      time.Duration
	MinPasswordLength int
	BcryptCost        int
}

// DefaultServiceConfig returns production-safe defaults.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		MaxLoginAttempts:  5,
		LockDuration:      15 * time.Minute,
		MinPasswordLength: 8,
		BcryptCost:        bcrypt.DefaultCost,
	}
}

// Service provides authentication operations.
type Service struct {
	repo      Repository
	txManager tx.Manager
	jwt       *JWTService
	config    ServiceConfig
}

// NewService creates a new auth service.
func NewService(repo Repository, txManager tx.Manager, jwt *JWTService, config ServiceConfig) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		jwt:       jwt,
		config:    config,
	}
}

// Login verifies credentials and issues an access token.
// Failed attempts are counted; too many lock the account.
func (s *Service) Login(ctx context.Context, creds Credentials) (*TokenResult, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	if email == "" || creds.Password == "" {
		return nil, apperror.NewValidation("email and password are required")
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if apperror.IsNotFound(err) {
			// Same message as a wrong password so emails cannot be probed.
			return nil, apperror.NewUnauthorized("invalid credentials")
		}
		return nil, err
	}

	if err := user.CanLogin(); err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		user.RecordFailedLogin(s.config.MaxLoginAttempts, s.config.LockDuration)
		if updErr := s.repo.Update(ctx, user); updErr != nil {
			logger.Warn(ctx, "failed to record login failure", "error", updErr)
		}
		return nil, apperror.NewUnauthorized("invalid credentials")
	}

	user.RecordSuccessfulLogin()
	if err := s.repo.Update(ctx, user); err != nil {
		logger.Warn(ctx, "failed to record login success", "error", err)
	}

	token, expiresAt, err := s.jwt.GenerateAccessToken(user)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	logger.Info(ctx, "user logged in", "user_id", user.ID, "email", user.Email)

	return &TokenResult{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		TokenType:   "Bearer",
		User:        user,
	}, nil
}

// Register creates a new account. Only administrators may call it;
// the gate is enforced here, not just in the HTTP layer.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	if !appctx.IsAdmin(ctx) {
		return nil, apperror.NewForbidden("only administrators can create accounts")
	}

	if len(req.Password) < s.config.MinPasswordLength {
		return nil, apperror.NewValidation("password is too short").
			WithDetail("field", "password").
			WithDetail("minLength", s.config.MinPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.config.BcryptCost)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	user := NewUser(req.Email, req.Name, string(hash))
	user.IsAdmin = req.IsAdmin
	if err := user.Validate(ctx); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.repo.ExistsByEmail(ctx, user.Email)
		if err != nil {
			return err
		}
		if exists {
			return apperror.NewDuplicate("user", "email", user.Email)
		}
		return s.repo.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "user registered", "user_id", user.ID, "email", user.Email, "by", appctx.GetUserID(ctx))
	return user, nil
}

// GetByID retrieves a user by ID.
func (s *Service) GetByID(ctx context.Context, userID id.ID) (*User, error) {
	return s.repo.GetByID(ctx, userID)
}

// List retrieves all users. Admin only.
func (s *Service) List(ctx context.Context) ([]*User, error) {
	if !appctx.IsAdmin(ctx) {
		return nil, apperror.NewForbidden("only administrators can list accounts")
	}
	return s.repo.List(ctx)
}

// ChangePassword updates the caller's own password after verifying the
// current one.
func (s *Service) ChangePassword(ctx context.Context, userID id.ID, current, next string) error {
	if appctx.GetUserID(ctx) != userID.String() && !appctx.IsAdmin(ctx) {
		return apperror.NewForbidden("cannot change another user's password")
	}

	if len(next) < s.config.MinPasswordLength {
		return apperror.NewValidation("password is too short").
			WithDetail("field", "password").
			WithDetail("minLength", s.config.MinPasswordLength)
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return apperror.NewUnauthorized("current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), s.config.BcryptCost)
	if err != nil {
		return apperror.NewInternal(err)
	}

	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, user)
}

// SetActive enables or disables an account. Admin only. Accounts are
// never hard-deleted; deactivation preserves referential integrity.
func (s *Service) SetActive(ctx context.Context, userID id.ID, active bool) error {
	if !appctx.IsAdmin(ctx) {
		return apperror.NewForbidden("only administrators can change account status")
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	user.IsActive = active
	user.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, user)
}
