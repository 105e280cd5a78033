// Package adapters はpasswordresetフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"market_backend/internal/feature/passwordreset/domain/entity"
	"market_backend/internal/feature/passwordreset/usecase"
	"market_backend/internal/repository"
)

var resetSearchable = []string{"email"}

// resetGorm はTicketRepositoryインターフェースのGORM実装です。
type resetGorm struct {
	*repository.Repository[entity.PasswordReset]
}

var _ usecase.TicketRepository = (*resetGorm)(nil)

// NewResetGorm は指定されたgorm.DB接続でresetGormの新しいインスタンスを生成します。
func NewResetGorm(db *gorm.DB) *resetGorm {
	return &resetGorm{Repository: repository.New[entity.PasswordReset](db, resetSearchable)}
}

// Upsert はメールアドレスをキーにチケットを作成または上書きします。
// 既存チケットのトークン・コード・更新時刻が新しい値で置き換えられ、
// 有効期限のクロックがリセットされます（last-write-wins、ロックなし）。
func (r *resetGorm) Upsert(ctx context.Context, email, token string, code int) (*entity.PasswordReset, error) {
	ticket := &entity.PasswordReset{
		Email:     email,
		Token:     token,
		ResetCode: code,
	}
	err := r.DB().WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"token", "reset_code", "updated_at"}),
	}).Create(ticket).Error
	if err != nil {
		return nil, err
	}

	// Upsert時のIDはドライバー依存なので、確定した行を読み直す
	return r.FindBy(ctx, "email", email)
}

// FindByToken はトークンでチケットを取得します。存在しない場合は(nil, nil)を返します。
func (r *resetGorm) FindByToken(ctx context.Context, token string) (*entity.PasswordReset, error) {
	return r.FindBy(ctx, "token", token)
}

// FindByCredentials はトークン・メール・コードの三点完全一致でチケットを取得します。
// 一つでも一致しない場合は(nil, nil)を返します。
func (r *resetGorm) FindByCredentials(ctx context.Context, email, token string, code int) (*entity.PasswordReset, error) {
	var ticket entity.PasswordReset
	err := r.DB().WithContext(ctx).
		Where("token = ? AND email = ? AND reset_code = ?", token, email, code).
		First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ticket, nil
}
