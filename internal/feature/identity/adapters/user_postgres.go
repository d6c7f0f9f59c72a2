// Package adapters provides repository implementations for the identity feature.
package adapters

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"company_backend/internal/feature/identity/domain"
	"company_backend/internal/feature/identity/domain/entity"
	"company_backend/internal/feature/identity/usecase"
)

// userPostgres is a GORM implementation of the UserRepository interface.
type userPostgres struct {
	db *gorm.DB
}

// Compile-time check to ensure userPostgres implements UserRepository.
var _ usecase.UserRepository = (*userPostgres)(nil)

// NewUserPostgres creates a new instance of userPostgres with the given
// gorm.DB connection. Constructor for dependency injection.
func NewUserPostgres(db *gorm.DB) *userPostgres {
	return &userPostgres{db: db}
}

// Create adds a user to the database. Unique index violations are translated
// into domain.ErrEmailTaken or domain.ErrMobileTaken, naming the conflicting
// field where the driver message allows.
func (r *userPostgres) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if strings.Contains(err.Error(), "mobile") {
				return domain.ErrMobileTaken
			}
			return domain.ErrEmailTaken
		}
		return err
	}
	return nil
}

// FindByEmail retrieves a user by email address.
func (r *userPostgres) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByID retrieves a user by ID.
func (r *userPostgres) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// EmailExists reports whether any user holds the email.
func (r *userPostgres) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.User{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

// MobileExists reports whether any user other than exceptID holds the mobile
// number.
func (r *userPostgres) MobileExists(ctx context.Context, mobileNo string, exceptID uint) (bool, error) {
	q := r.db.WithContext(ctx).Model(&entity.User{}).Where("mobile_no = ?", mobileNo)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	var count int64
	err := q.Count(&count).Error
	return count > 0, err
}

// Save persists changes to an existing user row.
func (r *userPostgres) Save(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Save(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if strings.Contains(err.Error(), "mobile") {
				return domain.ErrMobileTaken
			}
			return domain.ErrEmailTaken
		}
		return err
	}
	return nil
}
