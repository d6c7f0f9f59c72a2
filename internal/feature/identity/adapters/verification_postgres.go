package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"company_backend/internal/feature/identity/domain"
	"company_backend/internal/feature/identity/usecase"
)

// verificationPostgres is a SQL implementation of the TokenStore interface.
// It backs email verification when Redis is not configured.
type verificationPostgres struct {
	db *gorm.DB
}

// Compile-time check to ensure verificationPostgres implements TokenStore.
var _ usecase.TokenStore = (*verificationPostgres)(nil)

// NewVerificationPostgres creates a new instance of verificationPostgres.
func NewVerificationPostgres(db *gorm.DB) *verificationPostgres {
	return &verificationPostgres{db: db}
}

// Store maps token to userID for the given TTL.
func (r *verificationPostgres) Store(ctx context.Context, token string, userID uint, ttl time.Duration) error {
	model := VerificationTokenModel{
		Token:     token,
		UserID:    userID,
		ExpiresAt: time.Now().Add(ttl),
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

// Resolve returns the user the token was issued for. Expired rows resolve to
// domain.ErrInvalidToken; cleanup of expired rows is lazy.
func (r *verificationPostgres) Resolve(ctx context.Context, token string) (uint, error) {
	var model VerificationTokenModel
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, domain.ErrInvalidToken
		}
		return 0, err
	}
	if time.Now().After(model.ExpiresAt) {
		r.db.WithContext(ctx).Delete(&VerificationTokenModel{}, "token = ?", token)
		return 0, domain.ErrInvalidToken
	}
	return model.UserID, nil
}

// Delete consumes the token.
func (r *verificationPostgres) Delete(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Delete(&VerificationTokenModel{}, "token = ?", token).Error
}
