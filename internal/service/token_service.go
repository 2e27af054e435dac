package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/thcfit/shipping-gateway/internal/domain/dto"
	"github.com/thcfit/shipping-gateway/internal/domain/model"
)

// ErrSigningKeyMissing is returned when JWT_SECRET_KEY is not configured.
var ErrSigningKeyMissing = errors.New("jwt signing key is not configured")

// TokenService issues and validates admin access tokens.
type TokenService interface {
	// Issue signs an access token for user and returns it with its lifetime in seconds.
	Issue(user *model.AdminUser) (string, int64, error)
	// Validate parses tokenString and returns its claims.
	Validate(tokenString string) (*dto.AdminClaims, error)
}

// AdminTokenClaims are the signed claims of an admin token.
type AdminTokenClaims struct {
	dto.AdminClaims
	jwt.RegisteredClaims
}

// TokenServiceImpl implements TokenService with HS256.
type TokenServiceImpl struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

// NewTokenService creates a new token service.
func NewTokenService(secretKey string, ttl time.Duration) *TokenServiceImpl {
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	return &TokenServiceImpl{
		secretKey: []byte(secretKey),
		ttl:       ttl,
		now:       time.Now,
	}
}

// Issue signs an access token for user.
func (s *TokenServiceImpl) Issue(user *model.AdminUser) (string, int64, error) {
	if len(s.secretKey) == 0 {
		return "", 0, ErrSigningKeyMissing
	}

	now := s.now()
	claims := &AdminTokenClaims{
		AdminClaims: dto.AdminClaims{
			UserID:   user.ID,
			Username: user.Username,
		},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, int64(s.ttl.Seconds()), nil
}

// Validate parses tokenString and returns its claims.
func (s *TokenServiceImpl) Validate(tokenString string) (*dto.AdminClaims, error) {
	if len(s.secretKey) == 0 {
		return nil, ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &AdminTokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.secretKey, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*AdminTokenClaims); ok && token.Valid {
		return &claims.AdminClaims, nil
	}
	return nil, ErrInvalidToken
}
