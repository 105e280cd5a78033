package repository

import "context"

// defaultPerPage は1ページあたりの件数のデフォルト値です。
const defaultPerPage = 10

// Page はページネーション結果を表します。
type Page[T any] struct {
	Items   []T   `json:"items"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
}

// Paginate はフィルターなしでAllQueryの結果をページングします。
func (r *Repository[T]) Paginate(ctx context.Context, page, perPage int, columns ...string) (*Page[T], error) {
	return r.PaginateByQuery(ctx, nil, page, perPage, columns...)
}

// PaginateByQuery は完全一致フィルターを適用した上でページングします。
// 件数カウントと一覧取得は別クエリで実行します。
func (r *Repository[T]) PaginateByQuery(ctx context.Context, filters map[string]any, page, perPage int, columns ...string) (*Page[T], error) {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = defaultPerPage
	}

	var total int64
	if err := r.AllQuery(ctx, filters, 0, 0).Count(&total).Error; err != nil {
		return nil, err
	}

	query := r.AllQuery(ctx, filters, (page-1)*perPage, perPage)
	if len(columns) > 0 {
		query = query.Select(columns)
	}

	items := make([]T, 0, perPage)
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}

	return &Page[T]{
		Items:   items,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}, nil
}
