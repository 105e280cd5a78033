package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	authentity "market_backend/internal/feature/auth/domain/entity"
	"market_backend/internal/feature/passwordreset/domain"
	"market_backend/internal/feature/passwordreset/domain/entity"
)

// mockTicketRepository はTicketRepositoryインターフェースのモック実装
type mockTicketRepository struct {
	UpsertFunc            func(ctx context.Context, email, token string, code int) (*entity.PasswordReset, error)
	FindByTokenFunc       func(ctx context.Context, token string) (*entity.PasswordReset, error)
	FindByCredentialsFunc func(ctx context.Context, email, token string, code int) (*entity.PasswordReset, error)
	DeleteFunc            func(ctx context.Context, id uint) (*entity.PasswordReset, error)
}

func (m *mockTicketRepository) Upsert(ctx context.Context, email, token string, code int) (*entity.PasswordReset, error) {
	return m.UpsertFunc(ctx, email, token, code)
}

func (m *mockTicketRepository) FindByToken(ctx context.Context, token string) (*entity.PasswordReset, error) {
	return m.FindByTokenFunc(ctx, token)
}

func (m *mockTicketRepository) FindByCredentials(ctx context.Context, email, token string, code int) (*entity.PasswordReset, error) {
	return m.FindByCredentialsFunc(ctx, email, token, code)
}

func (m *mockTicketRepository) Delete(ctx context.Context, id uint) (*entity.PasswordReset, error) {
	return m.DeleteFunc(ctx, id)
}

// mockUserRepository はUserRepositoryインターフェースのモック実装
type mockUserRepository struct {
	FindByEmailFunc    func(ctx context.Context, email string) (*authentity.User, error)
	UpdatePasswordFunc func(ctx context.Context, id uint, hashed string) error
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*authentity.User, error) {
	return m.FindByEmailFunc(ctx, email)
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, id uint, hashed string) error {
	return m.UpdatePasswordFunc(ctx, id, hashed)
}

// mockNotifier はNotifierインターフェースのモック実装
type mockNotifier struct {
	requestCalls []struct {
		email string
		token string
		code  int
	}
	successCalls []string
}

func (m *mockNotifier) SendPasswordResetRequest(email, token string, code int) {
	m.requestCalls = append(m.requestCalls, struct {
		email string
		token string
		code  int
	}{email, token, code})
}

func (m *mockNotifier) SendPasswordResetSuccess(email string) {
	m.successCalls = append(m.successCalls, email)
}

func citizenUser() *authentity.User {
	return &authentity.User{
		ID:        1,
		Email:     "citizen@example.com",
		IsCitizen: true,
		Active:    true,
	}
}

func TestRequestReset(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown account returns ErrAccountNotFound", func(t *testing.T) {
		users := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*authentity.User, error) {
				return nil, nil
			},
		}
		uc := NewResetUsecase(&mockTicketRepository{}, users, &mockNotifier{})

		err := uc.RequestReset(ctx, "nobody@example.com")
		if !errors.Is(err, domain.ErrAccountNotFound) {
			t.Errorf("expected ErrAccountNotFound, got %v", err)
		}
	})

	t.Run("non-citizen account is treated as not found", func(t *testing.T) {
		users := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*authentity.User, error) {
				u := citizenUser()
				u.IsCitizen = false
				return u, nil
			},
		}
		uc := NewResetUsecase(&mockTicketRepository{}, users, &mockNotifier{})

		err := uc.RequestReset(ctx, "admin@example.com")
		if !errors.Is(err, domain.ErrAccountNotFound) {
			t.Errorf("expected ErrAccountNotFound for non-citizen, got %v", err)
		}
	})

	t.Run("issues ticket and queues notification", func(t *testing.T) {
		users := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*authentity.User, error) {
				return citizenUser(), nil
			},
		}
		var gotToken string
		var gotCode int
		tickets := &mockTicketRepository{
			UpsertFunc: func(ctx context.Context, email, token string, code int) (*entity.PasswordReset, error) {
				gotToken = token
				gotCode = code
				return &entity.PasswordReset{ID: 1, Email: email, Token: token, ResetCode: code}, nil
			},
		}
		notifier := &mockNotifier{}
		uc := NewResetUsecase(tickets, users, notifier)

		if err := uc.RequestReset(ctx, "citizen@example.com"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(gotToken) != tokenLength {
			t.Errorf("expected %d-char token, got %d chars", tokenLength, len(gotToken))
		}
		if gotCode < 100000 || gotCode > 999999 {
			t.Errorf("expected 6-digit code, got %d", gotCode)
		}
		if len(notifier.requestCalls) != 1 {
			t.Fatalf("expected 1 notification, got %d", len(notifier.requestCalls))
		}
		if notifier.requestCalls[0].token != gotToken || notifier.requestCalls[0].code != gotCode {
			t.Errorf("notification should carry the issued token and code")
		}
	})

	t.Run("two issuances generate distinct tokens", func(t *testing.T) {
		users := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*authentity.User, error) {
				return citizenUser(), nil
			},
		}
		var tokens []string
		tickets := &mockTicketRepository{
			UpsertFunc: func(ctx context.Context, email, token string, code int) (*entity.PasswordReset, error) {
				tokens = append(tokens, token)
				return &entity.PasswordReset{ID: 1, Email: email, Token: token, ResetCode: code}, nil
			},
		}
		uc := NewResetUsecase(tickets, users, &mockNotifier{})

		if err := uc.RequestReset(ctx, "citizen@example.com"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := uc.RequestReset(ctx, "citizen@example.com"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tokens[0] == tokens[1] {
			t.Errorf("reissued token should differ from the previous one")
		}
	})
}

func TestValidateToken(t *testing.T) {
	ctx := context.Background()

	t.Run("absent ticket returns ErrTicketNotFound", func(t *testing.T) {
		tickets := &mockTicketRepository{
			FindByTokenFunc: func(ctx context.Context, token string) (*entity.PasswordReset, error) {
				return nil, nil
			},
		}
		uc := NewResetUsecase(tickets, &mockUserRepository{}, &mockNotifier{})

		_, err := uc.ValidateToken(ctx, "unknown")
		if !errors.Is(err, domain.ErrTicketNotFound) {
			t.Errorf("expected ErrTicketNotFound, got %v", err)
		}
	})

	t.Run("ticket within TTL is valid", func(t *testing.T) {
		issuedAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
		tickets := &mockTicketRepository{
			FindByTokenFunc: func(ctx context.Context, token string) (*entity.PasswordReset, error) {
				return &entity.PasswordReset{ID: 1, Email: "a@b.com", Token: token, UpdatedAt: issuedAt}, nil
			},
		}
		uc := NewResetUsecase(tickets, &mockUserRepository{}, &mockNotifier{})
		// 失効1分前
		uc.now = func() time.Time { return issuedAt.Add(719 * time.Minute) }

		ticket, err := uc.ValidateToken(ctx, "token-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ticket == nil || ticket.Email != "a@b.com" {
			t.Errorf("expected the stored ticket back, got %+v", ticket)
		}
	})

	t.Run("expired ticket is deleted and reported as not found", func(t *testing.T) {
		issuedAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
		var deletedID uint
		tickets := &mockTicketRepository{
			FindByTokenFunc: func(ctx context.Context, token string) (*entity.PasswordReset, error) {
				return &entity.PasswordReset{ID: 7, Email: "a@b.com", Token: token, UpdatedAt: issuedAt}, nil
			},
			DeleteFunc: func(ctx context.Context, id uint) (*entity.PasswordReset, error) {
				deletedID = id
				return &entity.PasswordReset{ID: id}, nil
			},
		}
		uc := NewResetUsecase(tickets, &mockUserRepository{}, &mockNotifier{})
		// 失効1分後
		uc.now = func() time.Time { return issuedAt.Add(721 * time.Minute) }

		_, err := uc.ValidateToken(ctx, "token-1")
		if !errors.Is(err, domain.ErrTicketNotFound) {
			t.Errorf("expected ErrTicketNotFound, got %v", err)
		}
		if deletedID != 7 {
			t.Errorf("expected lazy deletion of ticket 7, deleted %d", deletedID)
		}
	})
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("partial credential match returns ErrTicketNotFound", func(t *testing.T) {
		tickets := &mockTicketRepository{
			FindByCredentialsFunc: func(ctx context.Context, email, token string, code int) (*entity.PasswordReset, error) {
				return nil, nil
			},
		}
		uc := NewResetUsecase(tickets, &mockUserRepository{}, &mockNotifier{})

		err := uc.ResetPassword(ctx, "a@b.com", "token-1", 111111, "newpassword")
		if !errors.Is(err, domain.ErrTicketNotFound) {
			t.Errorf("expected ErrTicketNotFound, got %v", err)
		}
	})

	t.Run("consumes the ticket and updates the password", func(t *testing.T) {
		tickets := &mockTicketRepository{
			FindByCredentialsFunc: func(ctx context.Context, email, token string, code int) (*entity.PasswordReset, error) {
				return &entity.PasswordReset{ID: 3, Email: email, Token: token, ResetCode: code}, nil
			},
		}
		var deletedID uint
		tickets.DeleteFunc = func(ctx context.Context, id uint) (*entity.PasswordReset, error) {
			deletedID = id
			return &entity.PasswordReset{ID: id}, nil
		}

		var storedHash string
		users := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*authentity.User, error) {
				return citizenUser(), nil
			},
			UpdatePasswordFunc: func(ctx context.Context, id uint, hashed string) error {
				storedHash = hashed
				return nil
			},
		}
		notifier := &mockNotifier{}
		uc := NewResetUsecase(tickets, users, notifier)

		err := uc.ResetPassword(ctx, "citizen@example.com", "token-1", 123456, "newpassword")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("newpassword")); err != nil {
			t.Errorf("stored hash should verify against the new password: %v", err)
		}
		if deletedID != 3 {
			t.Errorf("expected ticket 3 to be consumed, deleted %d", deletedID)
		}
		if len(notifier.successCalls) != 1 || notifier.successCalls[0] != "citizen@example.com" {
			t.Errorf("expected one success notification to the account, got %v", notifier.successCalls)
		}
	})

	t.Run("update failure is propagated and keeps the ticket", func(t *testing.T) {
		wantErr := errors.New("db down")
		var deleted bool
		tickets := &mockTicketRepository{
			FindByCredentialsFunc: func(ctx context.Context, email, token string, code int) (*entity.PasswordReset, error) {
				return &entity.PasswordReset{ID: 3, Email: email}, nil
			},
			DeleteFunc: func(ctx context.Context, id uint) (*entity.PasswordReset, error) {
				deleted = true
				return nil, nil
			},
		}
		users := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*authentity.User, error) {
				return citizenUser(), nil
			},
			UpdatePasswordFunc: func(ctx context.Context, id uint, hashed string) error {
				return wantErr
			},
		}
		uc := NewResetUsecase(tickets, users, &mockNotifier{})

		err := uc.ResetPassword(ctx, "citizen@example.com", "token-1", 123456, "newpassword")
		if !errors.Is(err, wantErr) {
			t.Errorf("expected the storage error to propagate, got %v", err)
		}
		if deleted {
			t.Errorf("ticket must survive a failed password update")
		}
	})
}
