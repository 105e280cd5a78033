// Command seed はカタログの初期データ（単位・商品）を投入します。
// 既存の行はそのまま残し、不足分だけを作成します（再実行可能）。
package main

import (
	"context"

	"gorm.io/gorm"

	"market_backend/internal/feature/products/domain/entity"
	"market_backend/internal/platform/config"
	"market_backend/internal/platform/db"
	"market_backend/internal/platform/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Get().Fatal().Err(err).Msg("failed to load configuration")
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	conn, err := db.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	if err := db.Migrate(conn); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate")
	}

	if err := seed(conn); err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}
	log.Info().Msg("seeding completed")
}

func seed(conn *gorm.DB) error {
	units := []entity.Unit{
		{Name: "Unidad", Value: "und"},
		{Name: "Libra", Value: "lb"},
		{Name: "litro", Value: "lt"},
	}
	for i := range units {
		if err := conn.Where(entity.Unit{Name: units[i].Name}).
			FirstOrCreate(&units[i]).Error; err != nil {
			return err
		}
	}

	products := []entity.Product{
		{Name: "Tomate", Price: 25, UnitID: units[1].ID},
		{Name: "Sandia", Price: 50, UnitID: units[0].ID},
		{Name: "Manzana", Price: 70, UnitID: units[1].ID},
	}
	for i := range products {
		if err := conn.Where(entity.Product{Name: products[i].Name}).
			FirstOrCreate(&products[i]).Error; err != nil {
			return err
		}
	}

	return nil
}
