package main

import (
	"context"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"market_backend/internal/app/router"
	authadapters "market_backend/internal/feature/auth/adapters"
	authhandler "market_backend/internal/feature/auth/transport/handler"
	authusecase "market_backend/internal/feature/auth/usecase"
	resetadapters "market_backend/internal/feature/passwordreset/adapters"
	resethandler "market_backend/internal/feature/passwordreset/transport/handler"
	resetusecase "market_backend/internal/feature/passwordreset/usecase"
	productadapters "market_backend/internal/feature/products/adapters"
	producthandler "market_backend/internal/feature/products/transport/handler"
	productusecase "market_backend/internal/feature/products/usecase"
	"market_backend/internal/platform/cache"
	"market_backend/internal/platform/config"
	"market_backend/internal/platform/db"
	jwtmw "market_backend/internal/platform/jwt"
	"market_backend/internal/platform/logger"
	"market_backend/internal/platform/mail"
	infraredis "market_backend/internal/platform/redis"
	"market_backend/internal/platform/session"
	"market_backend/internal/shared/ratelimiter"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Get().Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// JWT_SECRETチェック（開発中の注意喚起）
	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET is not set. Set a strong secret in production.")
	}

	// db
	conn, err := db.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}

	// Redis（利用不可でも起動は継続する）
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewClient(cfg.Redis); err != nil {
		log.Warn().Msg("Redis unavailable. Running without cache and token revocation.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close Redis client")
			}
		}()
	}

	// 通知ディスパッチャ
	sender, err := mail.NewSMTPSender(cfg.SMTP)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize mail sender")
	}
	limiter := ratelimiter.NewRateLimiter(30, time.Minute)
	dispatcher := mail.NewDispatcher(sender, limiter, cfg.BaseURL, log)
	dispatcher.Start(ctx)

	// Repository
	userRepo := authadapters.NewUserGorm(conn)
	resetRepo := resetadapters.NewResetGorm(conn)
	productRepo := productadapters.NewProductGorm(conn)
	unitRepo := productadapters.NewUnitGorm(conn)

	// 単位マスタはRedisキャッシュでラップ
	cachedUnitRepo := cache.NewCachingUnitRepository(rdb, time.Hour, unitRepo, "units")

	// トークン失効リスト（Redisなしでは無効）
	var denylist jwtmw.Denylist
	var revoker authusecase.TokenRevoker
	if rdb != nil {
		dl := session.NewTokenDenylist(rdb, "revoked")
		denylist = dl
		revoker = dl
	} else {
		revoker = noopRevoker{}
	}

	issuer := jwtmw.NewGenerator(cfg.JWT.Secret, cfg.JWT.Expiry)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, issuer, revoker)
	resetUC := resetusecase.NewResetUsecase(resetRepo, userRepo, dispatcher)
	productUC := productusecase.NewProductUsecase(productRepo, cachedUnitRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	resetH := resethandler.NewResetHandler(resetUC)
	productH := producthandler.NewProductHandler(productUC)

	// ルータ生成
	r := router.NewRouter(authH, resetH, productH, jwtmw.AuthRequired(cfg.JWT.Secret, denylist))

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// noopRevoker はRedisが利用できない環境向けのフォールバックです。
// ログアウトは成功応答を返すが、トークンは自然満了まで有効のままです。
type noopRevoker struct{}

func (noopRevoker) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	return nil
}
