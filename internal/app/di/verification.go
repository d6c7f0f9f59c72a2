package di

import (
	identityadapters "company_backend/internal/feature/identity/adapters"
	"company_backend/internal/feature/identity/usecase"
	"company_backend/internal/platform/verification"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// NewTokenStore creates the email-verification TokenStore implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to Postgres.
func NewTokenStore(rdb *redis.Client, db *gorm.DB) usecase.TokenStore {
	if rdb != nil {
		return verification.NewTokenRedis(rdb, "verify")
	}
	return identityadapters.NewVerificationPostgres(db)
}
