package auth

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"oilbook/internal/core/apperror"
	"oilbook/internal/core/id"
	"oilbook/internal/core/tx"
	"oilbook/pkg/logger"
)

// ServiceConfig holds auth service configuration.
type ServiceConfig struct {
	PasswordMinLength int
	BcryptCost        int
}

// DefaultServiceConfig returns default configuration.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		PasswordMinLength: 8,
		BcryptCost:        bcrypt.DefaultCost,
	}
}

// Service provides authentication and user management.
type Service struct {
	users      UserRepository
	txManager  tx.Manager
	jwtService *JWTService
	config     ServiceConfig
}

// NewService creates an auth service.
func NewService(users UserRepository, txManager tx.Manager, jwtService *JWTService, config ServiceConfig) *Service {
	return &Service{
		users:      users,
		txManager:  txManager,
		jwtService: jwtService,
		config:     config,
	}
}

// LoginResult is what a successful login returns.
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      *User     `json:"user"`
}

// Login authenticates by email and password and issues a token.
// Wrong email and wrong password return the same error.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewUnauthorized("invalid email or password")
		}
		return nil, err
	}

	if err := user.CanLogin(); err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Warn(ctx, "failed login attempt", "email", email)
		return nil, apperror.NewUnauthorized("invalid email or password")
	}

	user.RecordLogin()
	if err := s.users.Update(ctx, user); err != nil {
		// Login succeeded; a failed timestamp write must not block it.
		logger.Warn(ctx, "record login failed", "error", err)
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	logger.Info(ctx, "user logged in", "email", user.Email, "role", string(user.Role))
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// CreateUser registers a user in an office.
func (s *Service) CreateUser(ctx context.Context, officeID id.ID, email, name, password string, role Role) (*User, error) {
	if len(password) < s.config.PasswordMinLength {
		return nil, apperror.NewValidation(fmt.Sprintf("password must be at least %d characters", s.config.PasswordMinLength)).
			WithDetail("field", "password")
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.NewDuplicate("user", "email", email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.config.BcryptCost)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	user := NewUser(officeID, email, name, string(hash), role)
	if err := user.Validate(ctx); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.users.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "user created", "email", email, "role", string(role))
	return user, nil
}

// GetByID returns a user.
func (s *Service) GetByID(ctx context.Context, userID id.ID) (*User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("user", userID.String())
		}
		return nil, err
	}
	return user, nil
}

// ListByOffice returns the office's users.
func (s *Service) ListByOffice(ctx context.Context, officeID id.ID) ([]*User, error) {
	if id.IsNil(officeID) {
		return nil, apperror.NewValidation("office is required").WithDetail("field", "officeId")
	}
	return s.users.ListByOffice(ctx, officeID)
}

// SetActive enables or disables an account.
func (s *Service) SetActive(ctx context.Context, userID id.ID, active bool) error {
	return s.users.SetActive(ctx, userID, active)
}

// ChangePassword sets a new password after verifying the current one.
func (s *Service) ChangePassword(ctx context.Context, userID id.ID, current, newPassword string) error {
	if len(newPassword) < s.config.PasswordMinLength {
		return apperror.NewValidation(fmt.Sprintf("password must be at least %d characters", s.config.PasswordMinLength)).
			WithDetail("field", "newPassword")
	}

	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return apperror.NewUnauthorized("current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.config.BcryptCost)
	if err != nil {
		return apperror.NewInternal(err)
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now().UTC()

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.users.Update(ctx, user)
	})
}
