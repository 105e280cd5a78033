// Package repository はGORMクエリビルダーの上に汎用的なデータアクセス層を提供します。
// 各レコード種別のアダプターはRepositoryを埋め込み、検索可能フィールドの
// 許可リストを宣言するだけで検索・ページネーション・トランザクション付きの
// 作成/更新/削除を利用できます。
package repository

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"

	"gorm.io/gorm"
)

// ErrNotFound は指定されたIDのレコードが存在しない場合に返されます。
var ErrNotFound = errors.New("record not found")

// Repository はレコード種別Tの汎用リポジトリです。
// フィルターキーはsearchableに含まれるものだけが適用され、
// それ以外のキーは（エラーにせず）黙って無視されます。これは仕様上のポリシーです。
type Repository[T any] struct {
	db         *gorm.DB
	searchable []string
}

// New は指定されたDB接続と検索可能フィールドでRepositoryを生成します。
func New[T any](db *gorm.DB, searchable []string) *Repository[T] {
	return &Repository[T]{db: db, searchable: searchable}
}

// DB は内部のgorm.DB接続を返します。アダプター側の固有クエリ用です。
func (r *Repository[T]) DB() *gorm.DB {
	return r.db
}

// Searchable はこのレコード種別でフィルターに使えるフィールド名を返します。
func (r *Repository[T]) Searchable() []string {
	return slices.Clone(r.searchable)
}

func (r *Repository[T]) isSearchable(key string) bool {
	return slices.Contains(r.searchable, key)
}

// Search は部分一致フィルターを適用したクエリを構築します。
// 値がスライスの場合は「field IN (...)」、それ以外は「field LIKE %value%」。
// searchableに含まれないキーは無視されます。skip/limitは正の値のときのみ適用されます。
func (r *Repository[T]) Search(ctx context.Context, filters map[string]any, skip, limit int) *gorm.DB {
	var model T
	query := r.db.WithContext(ctx).Model(&model)

	for key, value := range filters {
		if !r.isSearchable(key) {
			continue
		}
		// カラム名はsearchable許可リストで検証済みなので埋め込み可能
		rv := reflect.ValueOf(value)
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			query = query.Where(fmt.Sprintf("%s IN ?", key), value)
		} else {
			query = query.Where(fmt.Sprintf("%s LIKE ?", key), fmt.Sprintf("%%%v%%", value))
		}
	}

	return applyWindow(query, skip, limit)
}

// AllQuery は完全一致フィルターを適用したクエリを構築します。
// Searchとは意図的に異なるマッチングポリシー（部分一致ではなく等価比較）であり、
// 両者を統合してはいけません。
func (r *Repository[T]) AllQuery(ctx context.Context, filters map[string]any, skip, limit int) *gorm.DB {
	var model T
	query := r.db.WithContext(ctx).Model(&model)

	for key, value := range filters {
		if !r.isSearchable(key) {
			continue
		}
		rv := reflect.ValueOf(value)
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			query = query.Where(fmt.Sprintf("%s IN ?", key), value)
		} else {
			query = query.Where(fmt.Sprintf("%s = ?", key), value)
		}
	}

	return applyWindow(query, skip, limit)
}

// All は完全一致フィルターでレコードを取得します。
func (r *Repository[T]) All(ctx context.Context, filters map[string]any, skip, limit int, columns ...string) ([]T, error) {
	query := r.AllQuery(ctx, filters, skip, limit)
	if len(columns) > 0 {
		query = query.Select(columns)
	}

	var records []T
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Create はレコードを単一トランザクション内で永続化します。
// アソシエーション（従属レコード）も同一トランザクションで保存されるため、
// 部分的な書き込みが観測されることはありません。失敗時は元のエラーを返します。
func (r *Repository[T]) Create(ctx context.Context, record *T) (*T, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(record).Error
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Update はIDでレコードを取得し、inputのフィールドをマージして
// トランザクション内で保存します。レコードが存在しない場合はErrNotFoundを返します。
// 失敗時はロールバックし、エラーを呼び出し元に伝播します。
func (r *Repository[T]) Update(ctx context.Context, input map[string]any, id uint) (*T, error) {
	var record T
	if err := r.db.WithContext(ctx).First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Model(&record).Updates(input).Error
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Delete はIDでレコードを取得し、トランザクション内で削除します。
// レコードが存在しない場合はErrNotFoundを返します。
func (r *Repository[T]) Delete(ctx context.Context, id uint) (*T, error) {
	var record T
	if err := r.db.WithContext(ctx).First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Delete(&record).Error
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Find はIDで単一レコードを取得します。存在しない場合は(nil, nil)を返します。
func (r *Repository[T]) Find(ctx context.Context, id uint, columns ...string) (*T, error) {
	query := r.db.WithContext(ctx)
	if len(columns) > 0 {
		query = query.Select(columns)
	}

	var record T
	if err := query.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// FindBy は指定カラムの完全一致で単一レコードを取得します。
// 存在しない場合は(nil, nil)を返します。カラム名は呼び出し側が管理する
// 定数であることを前提とします。
func (r *Repository[T]) FindBy(ctx context.Context, column string, value any, columns ...string) (*T, error) {
	query := r.db.WithContext(ctx)
	if len(columns) > 0 {
		query = query.Select(columns)
	}

	var record T
	err := query.Where(fmt.Sprintf("%s = ?", column), value).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// Count はレコード種別の総数を返します。
func (r *Repository[T]) Count(ctx context.Context) (int64, error) {
	var model T
	var count int64
	if err := r.db.WithContext(ctx).Model(&model).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// With は指定された関連レコードをEager Loadするクエリを返します。
func (r *Repository[T]) With(ctx context.Context, relations ...string) *gorm.DB {
	var model T
	query := r.db.WithContext(ctx).Model(&model)
	for _, relation := range relations {
		query = query.Preload(relation)
	}
	return query
}

func applyWindow(query *gorm.DB, skip, limit int) *gorm.DB {
	if skip > 0 {
		query = query.Offset(skip)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	return query
}
