// Package db はGORMによるデータベース接続とマイグレーションを提供します。
package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	authentity "market_backend/internal/feature/auth/domain/entity"
	resetentity "market_backend/internal/feature/passwordreset/domain/entity"
	productentity "market_backend/internal/feature/products/domain/entity"
	"market_backend/internal/platform/config"
	"market_backend/internal/platform/logger"
)

const (
	connectDeadline = 60 * time.Second
	retryInterval   = 3 * time.Second
)

// Open はPostgreSQLへの接続を確立します。コンテナ起動直後を考慮して
// 一定時間リトライします。RUN_MIGRATIONSが有効な場合はAutoMigrateを実行します。
func Open(cfg *config.Config) (*gorm.DB, error) {
	log := logger.Get()

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DB.Host, cfg.DB.Port, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, cfg.DB.SSLMode)

	var (
		conn *gorm.DB
		err  error
	)

	deadline := time.Now().Add(connectDeadline)
	for {
		conn, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("DB connect failed after %s: %w", connectDeadline, err)
		}
		log.Warn().Err(err).Msg("DB connect failed, retrying...")
		time.Sleep(retryInterval)
	}

	if cfg.DB.RunMigrations {
		if err := Migrate(conn); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
	}

	return conn, nil
}

// Migrate は全エンティティのスキーマを適用します。
func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&authentity.User{},
		&authentity.CitizenProfile{},
		&resetentity.PasswordReset{},
		&productentity.Unit{},
		&productentity.Product{},
	)
}
