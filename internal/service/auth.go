package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/guttosm/pricing-service/config"
	"github.com/guttosm/pricing-service/internal/domain/dto"
)

var (
	// ErrInvalidCredentials is returned when the client id or secret is incorrect.
	ErrInvalidCredentials = errors.New("invalid client credentials")
	// ErrInvalidToken is returned when token is invalid or expired.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// AuthService exchanges client credentials for access tokens and verifies them.
type AuthService interface {
	IssueToken(ctx context.Context, clientID, clientSecret string) (*dto.TokenResponse, error)
	ValidateToken(ctx context.Context, tokenString string) (*dto.Claims, error)
}

// AuthServiceImpl implements AuthService against a static set of clients
// whose secrets are stored as bcrypt hashes.
type AuthServiceImpl struct {
	clients      map[string]string
	tokenService TokenService
}

// NewAuthService creates a new authentication service.
func NewAuthService(authConfig config.AuthConfig) *AuthServiceImpl {
	return NewAuthServiceWithTokenService(authConfig.Clients, NewTokenService(NewTokenConfigFromAuthConfig(authConfig)))
}

// NewAuthServiceWithTokenService creates an authentication service with an existing TokenService.
func NewAuthServiceWithTokenService(clients map[string]string, tokenService TokenService) *AuthServiceImpl {
	if clients == nil {
		clients = map[string]string{}
	}
	return &AuthServiceImpl{
		clients:      clients,
		tokenService: tokenService,
	}
}

// IssueToken verifies the client secret and returns a new access token.
func (s *AuthServiceImpl) IssueToken(_ context.Context, clientID, clientSecret string) (*dto.TokenResponse, error) {
	hash, ok := s.clients[clientID]
	if !ok || clientSecret == "" {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(clientSecret)); err != nil {
		log.Debug().Str("client_id", clientID).Msg("client secret mismatch")
		return nil, ErrInvalidCredentials
	}

	return s.tokenService.GenerateAccessToken(clientID)
}

// ValidateToken verifies a token issued by IssueToken.
func (s *AuthServiceImpl) ValidateToken(_ context.Context, tokenString string) (*dto.Claims, error) {
	return s.tokenService.ValidateAccessToken(tokenString)
}

// HashClientSecret returns the bcrypt hash stored in AUTH_CLIENTS for a secret.
func HashClientSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
