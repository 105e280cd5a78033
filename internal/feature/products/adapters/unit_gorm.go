package adapters

import (
	"context"

	"gorm.io/gorm"

	"market_backend/internal/feature/products/domain/entity"
	"market_backend/internal/feature/products/usecase"
	"market_backend/internal/repository"
)

var unitSearchable = []string{"name", "value"}

// unitGorm はUnitRepositoryインターフェースのGORM実装です。
type unitGorm struct {
	*repository.Repository[entity.Unit]
}

var _ usecase.UnitRepository = (*unitGorm)(nil)

// NewUnitGorm は指定されたgorm.DB接続でunitGormの新しいインスタンスを生成します。
func NewUnitGorm(db *gorm.DB) *unitGorm {
	return &unitGorm{Repository: repository.New[entity.Unit](db, unitSearchable)}
}

// List はすべての単位を返します。
func (r *unitGorm) List(ctx context.Context) ([]entity.Unit, error) {
	return r.All(ctx, nil, 0, 0)
}
