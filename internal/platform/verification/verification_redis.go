// Package verification provides the Redis-backed email verification token store.
package verification

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"company_backend/internal/feature/identity/domain"
	"company_backend/internal/feature/identity/usecase"
)

// TokenRedis implements usecase.TokenStore using Redis. Expiry is handled by
// Redis TTL; a consumed token is simply deleted.
type TokenRedis struct {
	client *redis.Client
	prefix string
}

// Compile-time check to ensure TokenRedis implements TokenStore.
var _ usecase.TokenStore = (*TokenRedis)(nil)

// NewTokenRedis creates a new TokenRedis instance.
func NewTokenRedis(client *redis.Client, prefix string) *TokenRedis {
	return &TokenRedis{client: client, prefix: prefix}
}

// tokenKey returns the Redis key for a verification token.
func (r *TokenRedis) tokenKey(token string) string {
	return fmt.Sprintf("%s:%s", r.prefix, token)
}

// Store maps token to userID for the given TTL.
func (r *TokenRedis) Store(ctx context.Context, token string, userID uint, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("token ttl must be positive")
	}
	return r.client.Set(ctx, r.tokenKey(token), userID, ttl).Err()
}

// Resolve returns the user the token was issued for, or
// domain.ErrInvalidToken when the token is unknown or expired.
func (r *TokenRedis) Resolve(ctx context.Context, token string) (uint, error) {
	val, err := r.client.Get(ctx, r.tokenKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, domain.ErrInvalidToken
		}
		return 0, err
	}
	userID, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt token value %q: %w", val, err)
	}
	return uint(userID), nil
}

// Delete consumes the token.
func (r *TokenRedis) Delete(ctx context.Context, token string) error {
	return r.client.Del(ctx, r.tokenKey(token)).Err()
}
