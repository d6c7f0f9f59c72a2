// Package adapters provides repository implementations for the company feature.
package adapters

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"company_backend/internal/feature/company/domain"
	"company_backend/internal/feature/company/domain/entity"
	"company_backend/internal/feature/company/usecase"
)

// companyPostgres is a GORM implementation of the CompanyRepository interface.
type companyPostgres struct {
	db *gorm.DB
}

// Compile-time check to ensure companyPostgres implements CompanyRepository.
var _ usecase.CompanyRepository = (*companyPostgres)(nil)

// NewCompanyPostgres creates a new instance of companyPostgres with the given
// gorm.DB connection. Constructor for dependency injection.
func NewCompanyPostgres(db *gorm.DB) *companyPostgres {
	return &companyPostgres{db: db}
}

// Create adds a company profile to the database. Unique index violations are
// translated into domain.ErrProfileExists (owner_id) or domain.ErrNameTaken
// (company_name).
func (r *companyPostgres) Create(ctx context.Context, profile *entity.CompanyProfile) error {
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if strings.Contains(err.Error(), "owner") {
				return domain.ErrProfileExists
			}
			return domain.ErrNameTaken
		}
		return err
	}
	return nil
}

// FindByOwnerID retrieves the profile owned by the user.
func (r *companyPostgres) FindByOwnerID(ctx context.Context, ownerID uint) (*entity.CompanyProfile, error) {
	var profile entity.CompanyProfile
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// UpdateScoped applies fields to the row matching both id and ownerID. Zero
// affected rows (missing row or mismatched owner) yield
// domain.ErrCompanyNotFound.
func (r *companyPostgres) UpdateScoped(ctx context.Context, id, ownerID uint, fields map[string]any) error {
	result := r.db.WithContext(ctx).
		Model(&entity.CompanyProfile{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(fields)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domain.ErrNameTaken
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrCompanyNotFound
	}
	return nil
}

// NameExists reports whether any profile other than exceptID holds the
// company name. The comparison is byte-for-byte (case-sensitive).
func (r *companyPostgres) NameExists(ctx context.Context, name string, exceptID uint) (bool, error) {
	q := r.db.WithContext(ctx).Model(&entity.CompanyProfile{}).Where("company_name = ?", name)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	var count int64
	err := q.Count(&count).Error
	return count > 0, err
}

// Delete removes the row matching both id and ownerID.
func (r *companyPostgres) Delete(ctx context.Context, id, ownerID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&entity.CompanyProfile{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrCompanyNotFound
	}
	return nil
}
