package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"market_backend/internal/feature/products/domain/entity"
)

// setupTestDB prepares an in-memory SQLite database seeded with units and products.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.Unit{}, &entity.Product{})
	require.NoError(t, err, "failed to migrate tables")

	units := []entity.Unit{
		{Name: "Unidad", Value: "und"},
		{Name: "Libra", Value: "lb"},
	}
	require.NoError(t, db.Create(&units).Error)

	products := []entity.Product{
		{Name: "Tomate", Price: 25, UnitID: units[1].ID},
		{Name: "Sandia", Price: 50, UnitID: units[0].ID},
		{Name: "Manzana", Price: 70, UnitID: units[1].ID},
	}
	require.NoError(t, db.Create(&products).Error)

	return db
}

func TestProductGorm_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("substring match on name", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewProductGorm(db)

		products, err := repo.Search(ctx, map[string]any{"name": "an"}, 0, 0)

		require.NoError(t, err)
		assert.Len(t, products, 2) // Sandia, Manzana
	})

	t.Run("results carry the unit relation", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewProductGorm(db)

		products, err := repo.Search(ctx, map[string]any{"name": "Tomate"}, 0, 0)

		require.NoError(t, err)
		require.Len(t, products, 1)
		require.NotNil(t, products[0].Unit)
		assert.Equal(t, "Libra", products[0].Unit.Name)
	})

	t.Run("empty filters return everything", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewProductGorm(db)

		products, err := repo.Search(ctx, nil, 0, 0)

		require.NoError(t, err)
		assert.Len(t, products, 3)
	})

	t.Run("unsearchable keys are ignored", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewProductGorm(db)

		products, err := repo.Search(ctx, map[string]any{"id": 1}, 0, 0)

		require.NoError(t, err)
		assert.Len(t, products, 3, "unknown filter keys must not narrow the result")
	})
}

func TestProductGorm_FindWithUnit(t *testing.T) {
	ctx := context.Background()

	db := setupTestDB(t)
	repo := NewProductGorm(db)

	var seeded entity.Product
	require.NoError(t, db.Where("name = ?", "Sandia").First(&seeded).Error)

	found, err := repo.FindWithUnit(ctx, seeded.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	require.NotNil(t, found.Unit)
	assert.Equal(t, "Unidad", found.Unit.Name)

	absent, err := repo.FindWithUnit(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, absent)
}

func TestUnitGorm_List(t *testing.T) {
	ctx := context.Background()

	db := setupTestDB(t)
	repo := NewUnitGorm(db)

	units, err := repo.List(ctx)

	require.NoError(t, err)
	assert.Len(t, units, 2)
}
