package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrAuthDisabled         = errors.New("passcode lock is not enabled")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid passcode")
	ErrHashingFailed        = errors.New("failed to hash passcode")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
)

const (
	tokenIssuer  = "fitgpt"
	tokenSubject = "owner"
)

// AuthService guards the API with an optional passcode.
type AuthService interface {
	// Enabled reports whether a passcode is configured.
	Enabled() bool
	// Login exchanges the passcode for a signed session token.
	Login(ctx context.Context, passcode string) (token string, expiresAt time.Time, err error)
	GetJWTSecret() string
}

// SessionClaims is the JWT payload of a session token.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// --- Service Implementation ---

type authService struct {
	passcodeHash  []byte // nil when the lock is disabled
	jwtSecret     string
	jwtExpiration time.Duration
	now           func() time.Time
}

// NewAuthService hashes the passcode once at startup. An empty passcode
// disables the lock; otherwise a JWT secret is required.
func NewAuthService(passcode, jwtSecret string, jwtExpiration time.Duration) (AuthService, error) {
	if jwtExpiration <= 0 {
		jwtExpiration = 24 * time.Hour
	}
	s := &authService{
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
		now:           time.Now,
	}
	if passcode == "" {
		return s, nil
	}
	if jwtSecret == "" {
		return nil, errors.New("JWT secret cannot be empty when a passcode is set")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHashingFailed, err)
	}
	s.passcodeHash = hash
	return s, nil
}

func (s *authService) Enabled() bool {
	return s.passcodeHash != nil
}

func (s *authService) Login(ctx context.Context, passcode string) (string, time.Time, error) {
	if !s.Enabled() {
		return "", time.Time{}, ErrAuthDisabled
	}
	if err := bcrypt.CompareHashAndPassword(s.passcodeHash, []byte(passcode)); err != nil {
		return "", time.Time{}, ErrAuthenticationFailed
	}

	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.jwtExpiration)
	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   tokenSubject,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", time.Time{}, ErrTokenGeneration
	}
	return token, expiresAt, nil
}

// GetJWTSecret returns the JWT secret for middleware authentication
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}
