// Package usecase はpasswordresetフィーチャーのビジネスロジックを実装します。
// チケットの状態遷移は NoTicket -> Issued -> {Consumed, Expired} で、
// ExpiredとNoTicketは機能的に等価です（チケットはストアから削除される）。
package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"

	authentity "market_backend/internal/feature/auth/domain/entity"
	"market_backend/internal/feature/passwordreset/domain"
	"market_backend/internal/feature/passwordreset/domain/entity"
)

const (
	// ticketTTL はチケットの有効期間です。UpdatedAtからこの時間を過ぎると失効します。
	ticketTTL = 720 * time.Minute

	// tokenLength は不透明リセットトークンの文字数です。
	tokenLength = 60

	tokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// TicketRepository はリセットチケットの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type TicketRepository interface {
	// Upsert はメールアドレスをキーにチケットを作成または上書きします。
	Upsert(ctx context.Context, email, token string, code int) (*entity.PasswordReset, error)
	// FindByToken はトークンでチケットを取得します。存在しない場合は(nil, nil)。
	FindByToken(ctx context.Context, token string) (*entity.PasswordReset, error)
	// FindByCredentials はトークン・メール・コードの三点完全一致で取得します。
	FindByCredentials(ctx context.Context, email, token string, code int) (*entity.PasswordReset, error)
	// Delete はIDでチケットを削除します。
	Delete(ctx context.Context, id uint) (*entity.PasswordReset, error)
}

// UserRepository はリセット対象アカウントの検索と更新を抽象化します。
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*authentity.User, error)
	UpdatePassword(ctx context.Context, id uint, hashed string) error
}

// Notifier はアカウント宛の非同期通知を抽象化します。
// 配送はfire-and-forgetであり、失敗してもリクエストを失敗させません。
type Notifier interface {
	SendPasswordResetRequest(email, token string, code int)
	SendPasswordResetSuccess(email string)
}

// ResetUsecase はパスワードリセットの状態機械を実装します。
type ResetUsecase struct {
	tickets  TicketRepository
	users    UserRepository
	notifier Notifier

	// now はテストから時計を注入するためのフックです。
	now func() time.Time
}

// NewResetUsecase はResetUsecaseの新しいインスタンスを生成します。
func NewResetUsecase(tickets TicketRepository, users UserRepository, notifier Notifier) *ResetUsecase {
	return &ResetUsecase{
		tickets:  tickets,
		users:    users,
		notifier: notifier,
		now:      time.Now,
	}
}

// RequestReset はアカウントに新しいリセットチケットを発行します。
// アカウントが存在しない場合も市民アカウントでない場合も、列挙攻撃を防ぐため
// 同一のErrAccountNotFoundを返します。既存チケットは上書きされ、
// 有効期限のクロックがリセットされます（Issued -> Issued）。
func (u *ResetUsecase) RequestReset(ctx context.Context, email string) error {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil || !user.IsCitizen {
		return domain.ErrAccountNotFound
	}

	token, err := randomToken(tokenLength)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	code, err := randomCode()
	if err != nil {
		return fmt.Errorf("failed to generate reset code: %w", err)
	}

	ticket, err := u.tickets.Upsert(ctx, user.Email, token, code)
	if err != nil {
		return err
	}

	// 通知はキュー投入のみ。配送の成否はこの層の応答に影響しない。
	u.notifier.SendPasswordResetRequest(user.Email, ticket.Token, ticket.ResetCode)
	return nil
}

// ValidateToken はトークンでチケットを検索し、有効であれば返します。
// 失効したチケットは初回アクセス時に遅延削除され（Issued -> Expired）、
// 不在時と同じErrTicketNotFoundを返します。呼び出し側からは区別できません。
func (u *ResetUsecase) ValidateToken(ctx context.Context, token string) (*entity.PasswordReset, error) {
	ticket, err := u.tickets.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, domain.ErrTicketNotFound
	}

	if u.now().After(ticket.UpdatedAt.Add(ticketTTL)) {
		if _, err := u.tickets.Delete(ctx, ticket.ID); err != nil {
			return nil, err
		}
		return nil, domain.ErrTicketNotFound
	}

	return ticket, nil
}

// ResetPassword はチケットを消費してアカウントのパスワードを更新します。
// トークン・メール・コードのいずれか一つでも一致しなければ、完全不一致と同じ
// ErrTicketNotFoundを返します（コード総当たりのオラクルを作らない）。
// 成功時はチケットを削除し（Issued -> Consumed）、変更完了通知を送ります。
func (u *ResetUsecase) ResetPassword(ctx context.Context, email, token string, code int, newPassword string) error {
	ticket, err := u.tickets.FindByCredentials(ctx, email, token, code)
	if err != nil {
		return err
	}
	if ticket == nil {
		return domain.ErrTicketNotFound
	}

	user, err := u.users.FindByEmail(ctx, ticket.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrAccountNotFound
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := u.users.UpdatePassword(ctx, user.ID, string(hashed)); err != nil {
		return err
	}

	if _, err := u.tickets.Delete(ctx, ticket.ID); err != nil {
		return err
	}

	u.notifier.SendPasswordResetSuccess(user.Email)
	return nil
}

// randomToken はcrypto/randで高エントロピーの英数字トークンを生成します。
func randomToken(length int) (string, error) {
	out := make([]byte, length)
	max := big.NewInt(int64(len(tokenAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = tokenAlphabet[n.Int64()]
	}
	return string(out), nil
}

// randomCode は100000〜999999の6桁確認コードを生成します。
func randomCode() (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return 0, err
	}
	return int(n.Int64()) + 100000, nil
}
