package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/you/tuitionsvc/domain"
	"github.com/you/tuitionsvc/internal/mocks"
)

func newAuthServiceForTest(t *testing.T, userRepo *mocks.MockUserRepository, sessionRepo *mocks.MockSessionRepository, tokenSvc *mocks.MockTokenService) domain.AuthService {
	t.Helper()

	if userRepo == nil {
		userRepo = mocks.NewMockUserRepository()
	}
	if sessionRepo == nil {
		sessionRepo = mocks.NewMockSessionRepository()
	}
	if tokenSvc == nil {
		tokenSvc = mocks.NewMockTokenService()
	}
	return NewAuthService(userRepo, sessionRepo, mocks.NewMockPasswordService(), tokenSvc, mocks.NewMockAuditLogger(), 15*time.Minute, 7*24*time.Hour)
}

func TestAuthServiceImpl_Login(t *testing.T) {
	testUser := createTestUser(t)

	tests := []struct {
		name          string
		username      string
		password      string
		setupMocks    func(userRepo *mocks.MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			username: "jane_smith",
			password: "password123",
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				userRepo.FindByUsernameFunc = func(ctx context.Context, username string) (*domain.User, error) {
					if username == testUser.Username {
						return testUser, nil
					}
					return nil, domain.ErrUserNotFound
				}
			},
			expectedError: nil,
		},
		{
			name:          "unknown username",
			username:      "nobody",
			password:      "password123",
			setupMocks:    func(userRepo *mocks.MockUserRepository) {},
			expectedError: domain.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			username: "jane_smith",
			password: "not_the_password",
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				userRepo.FindByUsernameFunc = func(ctx context.Context, username string) (*domain.User, error) {
					return testUser, nil
				}
			},
			expectedError: domain.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := mocks.NewMockUserRepository()
			tt.setupMocks(userRepo)
			svc := newAuthServiceForTest(t, userRepo, nil, nil)

			result, err := svc.Login(createTestContext(t), tt.username, tt.password)

			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Fatalf("Login() error = %v, want %v", err, tt.expectedError)
				}
				return
			}
			if err != nil {
				t.Fatalf("Login() unexpected error = %v", err)
			}
			if result.User.ID != testUser.ID {
				t.Errorf("user ID = %s, want %s", result.User.ID, testUser.ID)
			}
			if result.AccessToken == "" || result.RefreshToken == "" || result.SessionID == "" {
				t.Error("expected tokens and a session")
			}
			if result.ExpiresIn != 900 {
				t.Errorf("ExpiresIn = %d, want 900", result.ExpiresIn)
			}
		})
	}
}

func TestAuthServiceImpl_RefreshToken(t *testing.T) {
	testUser := createTestUser(t)
	session := &domain.Session{
		ID:        "sess_user2_1",
		UserID:    testUser.ID,
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}

	t.Run("valid refresh", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		userRepo.FindByIDFunc = func(ctx context.Context, id string) (*domain.User, error) {
			return testUser, nil
		}
		sessionRepo := mocks.NewMockSessionRepository()
		sessionRepo.FindByIDFunc = func(ctx context.Context, sessionID string) (*domain.Session, error) {
			return session, nil
		}
		tokenSvc := mocks.NewMockTokenService()
		tokenSvc.ValidateRefreshTokenFunc = func(token string) (*domain.TokenClaims, error) {
			return &domain.TokenClaims{UserID: testUser.ID, Role: testUser.Role, SessionID: session.ID}, nil
		}

		result, err := newAuthServiceForTest(t, userRepo, sessionRepo, tokenSvc).RefreshToken(createTestContext(t), "refresh_token_user2")
		if err != nil {
			t.Fatalf("RefreshToken() error = %v", err)
		}
		if result.RefreshToken != "refresh_token_user2" {
			t.Error("expected the same refresh token back")
		}
	})

	t.Run("invalid token", func(t *testing.T) {
		tokenSvc := mocks.NewMockTokenService()
		tokenSvc.ValidateRefreshTokenFunc = func(token string) (*domain.TokenClaims, error) {
			return nil, domain.ErrTokenInvalid
		}

		_, err := newAuthServiceForTest(t, nil, nil, tokenSvc).RefreshToken(createTestContext(t), "garbage")
		if !errors.Is(err, domain.ErrTokenInvalid) {
			t.Errorf("RefreshToken() error = %v, want %v", err, domain.ErrTokenInvalid)
		}
	})

	t.Run("expired session", func(t *testing.T) {
		sessionRepo := mocks.NewMockSessionRepository()
		sessionRepo.FindByIDFunc = func(ctx context.Context, sessionID string) (*domain.Session, error) {
			expired := *session
			expired.ExpiresAt = time.Now().Add(-time.Minute)
			return &expired, nil
		}
		tokenSvc := mocks.NewMockTokenService()
		tokenSvc.ValidateRefreshTokenFunc = func(token string) (*domain.TokenClaims, error) {
			return &domain.TokenClaims{UserID: testUser.ID, SessionID: session.ID}, nil
		}

		_, err := newAuthServiceForTest(t, nil, sessionRepo, tokenSvc).RefreshToken(createTestContext(t), "refresh_token_user2")
		if !errors.Is(err, domain.ErrSessionExpired) {
			t.Errorf("RefreshToken() error = %v, want %v", err, domain.ErrSessionExpired)
		}
	})
}

func TestAuthServiceImpl_Logout(t *testing.T) {
	deleted := ""
	sessionRepo := mocks.NewMockSessionRepository()
	sessionRepo.DeleteFunc = func(ctx context.Context, sessionID string) error {
		deleted = sessionID
		return nil
	}

	if err := newAuthServiceForTest(t, nil, sessionRepo, nil).Logout(createTestContext(t), "sess_user2_1"); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if deleted != "sess_user2_1" {
		t.Errorf("deleted session = %s, want sess_user2_1", deleted)
	}
}
