package mocks

import (
	"time"

	"github.com/you/tuitionsvc/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	GenerateAccessTokenFunc  func(userID, role, sessionID string) (string, error)
	GenerateRefreshTokenFunc func(userID, role, sessionID string) (string, error)
	ValidateAccessTokenFunc  func(token string) (*domain.TokenClaims, error)
	ValidateRefreshTokenFunc func(token string) (*domain.TokenClaims, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// GenerateAccessToken mints an access token
func (m *MockTokenService) GenerateAccessToken(userID, role, sessionID string) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(userID, role, sessionID)
	}
	return "access_token_" + userID, nil
}

// GenerateRefreshToken mints a refresh token
func (m *MockTokenService) GenerateRefreshToken(userID, role, sessionID string) (string, error) {
	if m.GenerateRefreshTokenFunc != nil {
		return m.GenerateRefreshTokenFunc(userID, role, sessionID)
	}
	return "refresh_token_" + userID, nil
}

// ValidateAccessToken parses and checks an access token
func (m *MockTokenService) ValidateAccessToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateAccessTokenFunc != nil {
		return m.ValidateAccessTokenFunc(token)
	}
	// Default behavior: a valid user claim
	now := time.Now().Unix()
	return &domain.TokenClaims{
		UserID:    "user1",
		Role:      "user",
		SessionID: "sess_mock",
		IssuedAt:  now,
		ExpiresAt: now + 900,
	}, nil
}

// ValidateRefreshToken parses and checks a refresh token
func (m *MockTokenService) ValidateRefreshToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateRefreshTokenFunc != nil {
		return m.ValidateRefreshTokenFunc(token)
	}
	return m.ValidateAccessToken(token)
}

// Verify interface compliance at compile time
var _ domain.TokenService = (*MockTokenService)(nil)
