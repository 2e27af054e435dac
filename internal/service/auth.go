package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/thcfit/shipping-gateway/internal/domain/dto"
	"github.com/thcfit/shipping-gateway/internal/domain/model"
	"github.com/thcfit/shipping-gateway/internal/repository"
)

var (
	// ErrInvalidCredentials is returned when the username or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrInvalidToken is returned when a token is invalid or expired.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrAdminStoreUnavailable is returned when no admin store is configured.
	ErrAdminStoreUnavailable = errors.New("admin store is not enabled")
	// ErrAuditStoreUnavailable is returned when no audit store is configured.
	ErrAuditStoreUnavailable = errors.New("audit store is not enabled")
)

// AdminService signs admins in and bootstraps the first account.
type AdminService interface {
	Login(ctx context.Context, username, password string) (*dto.LoginResponse, error)
	ValidateToken(tokenString string) (*dto.AdminClaims, error)
	EnsureAdmin(ctx context.Context, username, password, fullName string) (bool, error)
}

// AdminServiceImpl implements AdminService.
type AdminServiceImpl struct {
	repo   repository.AdminRepositoryInterface
	tokens TokenService
	cost   int
}

// NewAdminService creates a new admin service. repo may be nil when
// PostgreSQL is disabled; logins then fail with ErrAdminStoreUnavailable.
func NewAdminService(repo repository.AdminRepositoryInterface, tokens TokenService) *AdminServiceImpl {
	return &AdminServiceImpl{
		repo:   repo,
		tokens: tokens,
		cost:   bcrypt.DefaultCost,
	}
}

// Login checks the credentials and returns a signed access token.
func (s *AdminServiceImpl) Login(ctx context.Context, username, password string) (*dto.LoginResponse, error) {
	if s.repo == nil {
		return nil, ErrAdminStoreUnavailable
	}

	user, err := s.repo.FindByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, repository.ErrAdminNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresIn, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: expiresIn,
		User: dto.AdminResponse{
			Username: user.Username,
			FullName: user.FullName,
		},
	}, nil
}

// ValidateToken returns the claims of a valid admin token.
func (s *AdminServiceImpl) ValidateToken(tokenString string) (*dto.AdminClaims, error) {
	return s.tokens.Validate(tokenString)
}

// EnsureAdmin creates the admin account unless one with the same username exists.
func (s *AdminServiceImpl) EnsureAdmin(ctx context.Context, username, password, fullName string) (bool, error) {
	if s.repo == nil {
		return false, ErrAdminStoreUnavailable
	}
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return false, &dto.ValidationError{Field: "username", Message: "admin username and password are required"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.repo.CreateIfAbsent(ctx, &model.AdminUser{
		Username:     username,
		PasswordHash: string(hash),
		FullName:     fullName,
	})
	if err != nil {
		return false, fmt.Errorf("failed to create admin: %w", err)
	}

	if created {
		log.Info().Str("username", username).Msg("Admin user created")
	} else {
		log.Debug().Str("username", username).Msg("Admin user already exists")
	}
	return created, nil
}
