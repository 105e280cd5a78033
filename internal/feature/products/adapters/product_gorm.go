// Package adapters はproductsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"market_backend/internal/feature/products/domain/entity"
	"market_backend/internal/feature/products/usecase"
	"market_backend/internal/repository"
)

// productSearchable はProductレコード種別でフィルターに使えるフィールドです。
var productSearchable = []string{"name", "price", "unit_id"}

// productGorm はProductRepositoryインターフェースのGORM実装です。
type productGorm struct {
	*repository.Repository[entity.Product]
}

var _ usecase.ProductRepository = (*productGorm)(nil)

// NewProductGorm は指定されたgorm.DB接続でproductGormの新しいインスタンスを生成します。
func NewProductGorm(db *gorm.DB) *productGorm {
	return &productGorm{Repository: repository.New[entity.Product](db, productSearchable)}
}

// Search は部分一致フィルターで商品を単位（Unit）付きで取得します。
func (r *productGorm) Search(ctx context.Context, filters map[string]any, skip, limit int) ([]entity.Product, error) {
	var products []entity.Product
	err := r.Repository.Search(ctx, filters, skip, limit).
		Preload("Unit").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// FindWithUnit はIDで商品を単位付きで取得します。存在しない場合は(nil, nil)。
func (r *productGorm) FindWithUnit(ctx context.Context, id uint) (*entity.Product, error) {
	var product entity.Product
	err := r.With(ctx, "Unit").First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}
