package main

import (
	"context"
	"log/slog"
	"os"

	redisv9 "github.com/redis/go-redis/v9"

	"company_backend/internal/app/di"
	"company_backend/internal/app/router"
	companyadapters "company_backend/internal/feature/company/adapters"
	companyhandler "company_backend/internal/feature/company/transport/handler"
	companyusecase "company_backend/internal/feature/company/usecase"
	identityadapters "company_backend/internal/feature/identity/adapters"
	identityhandler "company_backend/internal/feature/identity/transport/handler"
	identityusecase "company_backend/internal/feature/identity/usecase"
	"company_backend/internal/platform/config"
	infradb "company_backend/internal/platform/db"
	jwtmw "company_backend/internal/platform/jwt"
	infraredis "company_backend/internal/platform/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if cfg.Relaxed {
		slog.Warn("relaxed mode is on: verification gates are bypassed, do not use in production")
	}

	db := infradb.OpenDB(cfg)

	// Redis is optional; without it verification tokens live in Postgres.
	var rdb *redisv9.Client
	if cfg.RedisAddr != "" {
		if tmp, err := infraredis.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword); err != nil {
			slog.Warn("redis unavailable, falling back to postgres token store", "error", err)
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close redis client", "error", err)
				}
			}()
		}
	}

	images, err := di.NewImageStore(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to initialize image store", "error", err)
		os.Exit(1)
	}

	// Repository
	userRepo := identityadapters.NewUserPostgres(db)
	companyRepo := companyadapters.NewCompanyPostgres(db)
	tokenStore := di.NewTokenStore(rdb, db)

	// External collaborators
	provider := di.NewIdentityProvider(cfg)
	mailer := di.NewMailSender(cfg)
	issuer := jwtmw.NewGenerator(cfg.JWTSecret, cfg.JWTTTL)

	// Usecase
	identityUC := identityusecase.NewIdentityUsecase(userRepo, companyRepo, tokenStore,
		provider, issuer, mailer, identityusecase.Config{
			Relaxed: cfg.Relaxed,
			BaseURL: cfg.BaseURL,
		})
	companyUC := companyusecase.NewCompanyUsecase(companyRepo, images)

	// Handler
	identityH := identityhandler.NewIdentityHandler(identityUC)
	companyH := companyhandler.NewCompanyHandler(companyUC)

	auth := jwtmw.NewMiddleware(cfg.JWTSecret, userRepo, cfg.Relaxed)

	r := router.NewRouter(cfg, identityH, companyH, auth)

	slog.Info("server starting", "port", cfg.Port, "relaxed", cfg.Relaxed)
	if err := r.Run(":" + cfg.Port); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
