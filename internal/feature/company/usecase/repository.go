package usecase

import (
	"context"

	"company_backend/internal/feature/company/domain/entity"
)

// CompanyRepository abstracts the persistence layer for company profiles.
// Following Go convention, the interface is defined by the consumer (usecase),
// not the provider (adapters).
type CompanyRepository interface {
	// Create persists a new profile. It returns domain.ErrProfileExists or
	// domain.ErrNameTaken when a unique index rejects the row.
	Create(ctx context.Context, profile *entity.CompanyProfile) error

	// FindByOwnerID retrieves the profile owned by the user, or
	// domain.ErrCompanyNotFound when none exists.
	FindByOwnerID(ctx context.Context, ownerID uint) (*entity.CompanyProfile, error)

	// UpdateScoped applies fields to the row matching both id and ownerID.
	// A mismatched owner affects zero rows and yields
	// domain.ErrCompanyNotFound, so a non-owner can never mutate another's
	// profile even with a stale profile id.
	UpdateScoped(ctx context.Context, id, ownerID uint, fields map[string]any) error

	// NameExists reports whether any profile other than exceptID holds the
	// company name. Pass exceptID 0 to check against all profiles.
	NameExists(ctx context.Context, name string, exceptID uint) (bool, error)

	// Delete removes the row matching both id and ownerID, returning
	// domain.ErrCompanyNotFound when nothing matched.
	Delete(ctx context.Context, id, ownerID uint) error
}

// ImageStore abstracts the external object store for logo and banner images.
type ImageStore interface {
	// Upload stores the image under the given folder and returns its public
	// URL. The final URL path segment is the store-side deletable identifier.
	Upload(ctx context.Context, folder, contentType string, data []byte) (string, error)

	// Delete removes the object identified by folder and public id.
	Delete(ctx context.Context, folder, publicID string) error
}
