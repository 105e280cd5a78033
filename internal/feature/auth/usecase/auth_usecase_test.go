package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"market_backend/internal/feature/auth/domain"
	"market_backend/internal/feature/auth/domain/entity"
)

// mockUserRepository is a mock implementation of the UserRepository interface.
// It simulates database operations during testing.
type mockUserRepository struct {
	CreateFunc      func(ctx context.Context, user *entity.User) error
	FindByEmailFunc func(ctx context.Context, email string) (*entity.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	user.ID = 1
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, nil // Default: no such user
}

// mockTokenIssuer is a mock implementation of the TokenIssuer interface.
type mockTokenIssuer struct {
	IssueTokenFunc func(userID uint, email string) (string, error)
}

func (m *mockTokenIssuer) IssueToken(userID uint, email string) (string, error) {
	if m.IssueTokenFunc != nil {
		return m.IssueTokenFunc(userID, email)
	}
	return "mock-token", nil
}

// mockTokenRevoker records revocations for assertions.
type mockTokenRevoker struct {
	revoked map[string]time.Duration
}

func (m *mockTokenRevoker) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if m.revoked == nil {
		m.revoked = map[string]time.Duration{}
	}
	m.revoked[jti] = ttl
	return nil
}

func TestAuthUsecase_Register(t *testing.T) {
	t.Run("successful registration", func(t *testing.T) {
		var created *entity.User
		mockRepo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				created = user
				user.ID = 7
				return nil
			},
		}

		uc := NewAuthUsecase(mockRepo, &mockTokenIssuer{}, &mockTokenRevoker{})
		user, token, err := uc.Register(context.Background(), "A", "a@b.com", "123456")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token != "mock-token" {
			t.Errorf("expected issued token, got %q", token)
		}
		if user.RoleID != entity.RoleCitizen {
			t.Errorf("expected citizen role %q, got %q", entity.RoleCitizen, user.RoleID)
		}
		if !user.IsCitizen || !user.Active {
			t.Errorf("expected active citizen account, got citizen=%v active=%v", user.IsCitizen, user.Active)
		}
		if created.CitizenProfile == nil || created.CitizenProfile.Name != "A" {
			t.Errorf("expected citizen profile to be created alongside the user")
		}
		// Verify that the password is hashed
		if err := bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("123456")); err != nil {
			t.Errorf("invalid bcrypt hash: %v", err)
		}
	})

	t.Run("repository create failure is propagated", func(t *testing.T) {
		expectedErr := errors.New("database error")
		mockRepo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				return expectedErr
			},
		}

		uc := NewAuthUsecase(mockRepo, &mockTokenIssuer{}, &mockTokenRevoker{})
		_, _, err := uc.Register(context.Background(), "A", "a@b.com", "123456")

		if !errors.Is(err, expectedErr) {
			t.Errorf("expected error '%v', got: %v", expectedErr, err)
		}
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	password := "password123"
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	testUser := &entity.User{
		ID:       1,
		Email:    "test@example.com",
		Password: string(hashedPassword),
	}

	t.Run("successful login", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				if email == testUser.Email {
					return testUser, nil
				}
				return nil, nil
			},
		}

		uc := NewAuthUsecase(mockRepo, &mockTokenIssuer{}, &mockTokenRevoker{})
		user, token, err := uc.Login(context.Background(), testUser.Email, password)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.ID != testUser.ID {
			t.Errorf("expected user %d, got %d", testUser.ID, user.ID)
		}
		if token == "" {
			t.Errorf("expected a token on successful login")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return testUser, nil
			},
		}

		uc := NewAuthUsecase(mockRepo, &mockTokenIssuer{}, &mockTokenRevoker{})
		_, _, err := uc.Login(context.Background(), testUser.Email, "wrong")

		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got: %v", err)
		}
	})

	t.Run("unknown user returns the same generic error", func(t *testing.T) {
		mockRepo := &mockUserRepository{}

		uc := NewAuthUsecase(mockRepo, &mockTokenIssuer{}, &mockTokenRevoker{})
		_, _, err := uc.Login(context.Background(), "nobody@example.com", password)

		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got: %v", err)
		}
	})
}

func TestAuthUsecase_Logout(t *testing.T) {
	t.Run("future expiry registers the jti", func(t *testing.T) {
		revoker := &mockTokenRevoker{}
		uc := NewAuthUsecase(&mockUserRepository{}, &mockTokenIssuer{}, revoker)

		err := uc.Logout(context.Background(), "some-jti", time.Now().Add(time.Hour))

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ttl, ok := revoker.revoked["some-jti"]
		if !ok {
			t.Fatalf("expected jti to be revoked")
		}
		if ttl <= 0 || ttl > time.Hour {
			t.Errorf("expected ttl within the token lifetime, got %v", ttl)
		}
	})

	t.Run("already expired token is a no-op", func(t *testing.T) {
		revoker := &mockTokenRevoker{}
		uc := NewAuthUsecase(&mockUserRepository{}, &mockTokenIssuer{}, revoker)

		err := uc.Logout(context.Background(), "old-jti", time.Now().Add(-time.Minute))

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(revoker.revoked) != 0 {
			t.Errorf("expected no revocation for an expired token")
		}
	})
}
