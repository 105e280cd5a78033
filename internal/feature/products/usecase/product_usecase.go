// Package usecase はproductsフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"

	"market_backend/internal/feature/products/domain"
	"market_backend/internal/feature/products/domain/entity"
	"market_backend/internal/repository"
)

// ProductRepository は商品エンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type ProductRepository interface {
	// Search は部分一致フィルターで商品を取得します。
	Search(ctx context.Context, filters map[string]any, skip, limit int) ([]entity.Product, error)
	// PaginateByQuery は完全一致フィルターでページングします。
	PaginateByQuery(ctx context.Context, filters map[string]any, page, perPage int, columns ...string) (*repository.Page[entity.Product], error)
	// Create は商品を単一トランザクションで永続化します。
	Create(ctx context.Context, product *entity.Product) (*entity.Product, error)
	// Update はIDで商品を取得しinputをマージして保存します。不在時はrepository.ErrNotFound。
	Update(ctx context.Context, input map[string]any, id uint) (*entity.Product, error)
	// Delete はIDで商品を削除します。不在時はrepository.ErrNotFound。
	Delete(ctx context.Context, id uint) (*entity.Product, error)
	// FindWithUnit はIDで商品を単位付きで取得します。不在時は(nil, nil)。
	FindWithUnit(ctx context.Context, id uint) (*entity.Product, error)
}

// UnitRepository は単位マスタの読み取りを抽象化します。
type UnitRepository interface {
	List(ctx context.Context) ([]entity.Unit, error)
}

// ProductUsecase は商品カタログのビジネスロジックを実装します。
type ProductUsecase struct {
	products ProductRepository
	units    UnitRepository
}

// NewProductUsecase はProductUsecaseの新しいインスタンスを生成します。
func NewProductUsecase(products ProductRepository, units UnitRepository) *ProductUsecase {
	return &ProductUsecase{products: products, units: units}
}

// ListProducts は部分一致フィルターで商品一覧を返します。
func (u *ProductUsecase) ListProducts(ctx context.Context, filters map[string]any, skip, limit int) ([]entity.Product, error) {
	return u.products.Search(ctx, filters, skip, limit)
}

// PaginateProducts は完全一致フィルターでページングした商品一覧を返します。
func (u *ProductUsecase) PaginateProducts(ctx context.Context, filters map[string]any, page, perPage int) (*repository.Page[entity.Product], error) {
	return u.products.PaginateByQuery(ctx, filters, page, perPage)
}

// GetProduct はIDで商品を取得します。不在時はErrProductNotFoundを返します。
func (u *ProductUsecase) GetProduct(ctx context.Context, id uint) (*entity.Product, error) {
	product, err := u.products.FindWithUnit(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

// CreateProduct は新しい商品を永続化します。
func (u *ProductUsecase) CreateProduct(ctx context.Context, name string, price int, unitID uint) (*entity.Product, error) {
	return u.products.Create(ctx, &entity.Product{
		Name:   name,
		Price:  price,
		UnitID: unitID,
	})
}

// UpdateProduct はIDで商品を更新します。不在時はErrProductNotFoundを返します。
func (u *ProductUsecase) UpdateProduct(ctx context.Context, id uint, name string, price int, unitID uint) (*entity.Product, error) {
	input := map[string]any{
		"name":    name,
		"price":   price,
		"unit_id": unitID,
	}
	product, err := u.products.Update(ctx, input, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// DeleteProduct はIDで商品を削除します。不在時はErrProductNotFoundを返します。
func (u *ProductUsecase) DeleteProduct(ctx context.Context, id uint) error {
	if _, err := u.products.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrProductNotFound
		}
		return err
	}
	return nil
}

// ListUnits は単位の一覧を返します。
func (u *ProductUsecase) ListUnits(ctx context.Context) ([]entity.Unit, error) {
	return u.units.List(ctx)
}
