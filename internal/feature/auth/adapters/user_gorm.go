// Package adapters はauthフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"market_backend/internal/feature/auth/domain"
	"market_backend/internal/feature/auth/domain/entity"
	"market_backend/internal/feature/auth/usecase"
	"market_backend/internal/repository"
)

// userSearchable はUserレコード種別でフィルターに使えるフィールドです。
var userSearchable = []string{"email"}

// userGorm はUserRepositoryインターフェースのGORM実装です。
// 汎用リポジトリを埋め込み、auth固有の操作を追加します。
type userGorm struct {
	*repository.Repository[entity.User]
}

// userGormがUserRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserGorm は指定されたgorm.DB接続でuserGormの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{Repository: repository.New[entity.User](db, userSearchable)}
}

// Create はユーザーと従属するCitizenProfileを単一トランザクションで永続化します。
// 同じメールアドレスのユーザーが既に存在する場合、domain.ErrEmailAlreadyExistsを返します。
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	if _, err := r.Repository.Create(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

// FindByEmail はメールアドレスでユーザーを取得します。
// ユーザーが存在しない場合は(nil, nil)を返します。
func (r *userGorm) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.FindBy(ctx, "email", email)
}

// UpdatePassword はユーザーのパスワードハッシュをトランザクション内で更新します。
func (r *userGorm) UpdatePassword(ctx context.Context, id uint, hashed string) error {
	_, err := r.Update(ctx, map[string]any{"password": hashed}, id)
	return err
}
