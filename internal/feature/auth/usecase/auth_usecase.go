// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"market_backend/internal/feature/auth/domain"
	"market_backend/internal/feature/auth/domain/entity"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーを従属プロフィールごと単一トランザクションで永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、エラーを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// ユーザーが存在しない場合は(nil, nil)を返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

// TokenIssuer はベアラートークン発行のインターフェースを定義します。
// コアはトークンの構築・解析を自ら行わず、外部のissuerに委譲します。
type TokenIssuer interface {
	// IssueToken は指定されたユーザーの署名済みトークンを生成します。
	IssueToken(userID uint, email string) (string, error)
}

// TokenRevoker は発行済みトークンの失効を抽象化します。
type TokenRevoker interface {
	// Revoke はトークンIDを自然満了時刻まで失効リストに登録します。
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
}

// AuthUsecase は認証ビジネスロジックを実装します。
type AuthUsecase struct {
	users   UserRepository
	issuer  TokenIssuer
	revoker TokenRevoker
}

// NewAuthUsecase はAuthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, issuer TokenIssuer, revoker TokenRevoker) *AuthUsecase {
	return &AuthUsecase{
		users:   users,
		issuer:  issuer,
		revoker: revoker,
	}
}

// Register は新規アカウントを登録し、ログイン済みトークンを返します。
// パスワードをハッシュ化し、市民ロール・有効フラグ付きのユーザーと
// 従属プロフィールを同一トランザクションで作成します。
func (u *AuthUsecase) Register(ctx context.Context, name, email, password string) (*entity.User, string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Name:      name,
		Email:     email,
		Password:  string(hashed),
		RoleID:    entity.RoleCitizen,
		IsCitizen: true,
		Active:    true,
		CitizenProfile: &entity.CitizenProfile{
			Name:  name,
			Email: email,
		},
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := u.issuer.IssueToken(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	return user, token, nil
}

// Login はユーザーを認証し、成功時にベアラートークンを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *AuthUsecase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}

	// ユーザー未検出時のタイミング攻撃緩和用ダミーハッシュ
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	if user != nil {
		passwordHash = user.Password
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if user == nil || compareErr != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := u.issuer.IssueToken(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	return user, token, nil
}

// Logout は提示されたトークンをその自然満了時刻まで失効させます。
func (u *AuthUsecase) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		// 既に失効済みのトークンは登録不要
		return nil
	}
	return u.revoker.Revoke(ctx, jti, ttl)
}
