package usecase

import (
	"context"
	"time"

	companyentity "company_backend/internal/feature/company/domain/entity"
	"company_backend/internal/feature/identity/domain/entity"
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention, the interface is defined by the consumer (usecase),
// not the provider (adapters).
type UserRepository interface {
	// Create persists a new user. It returns domain.ErrEmailTaken or
	// domain.ErrMobileTaken when a unique index rejects the row.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail retrieves a user by lower-cased email address.
	// It returns domain.ErrUserNotFound when no row matches.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID retrieves a user by ID.
	// It returns domain.ErrUserNotFound when no row matches.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// EmailExists reports whether any user holds the email.
	EmailExists(ctx context.Context, email string) (bool, error)

	// MobileExists reports whether any user other than exceptID holds the
	// mobile number. Pass exceptID 0 to check against all users.
	MobileExists(ctx context.Context, mobileNo string, exceptID uint) (bool, error)

	// Save persists changes to an existing user row.
	Save(ctx context.Context, user *entity.User) error
}

// CompanyReader is the read-only view of the company store the identity
// feature needs to join a user with its profile.
type CompanyReader interface {
	// FindByOwnerID retrieves the company profile owned by the user, or
	// company domain.ErrCompanyNotFound when none exists.
	FindByOwnerID(ctx context.Context, ownerID uint) (*companyentity.CompanyProfile, error)
}

// TokenStore persists short-lived, single-use email-verification tokens.
type TokenStore interface {
	// Store maps token to userID for the given TTL.
	Store(ctx context.Context, token string, userID uint, ttl time.Duration) error

	// Resolve returns the user the token was issued for, or
	// domain.ErrInvalidToken when the token is unknown or expired.
	Resolve(ctx context.Context, token string) (uint, error)

	// Delete consumes the token.
	Delete(ctx context.Context, token string) error
}

// TokenIssuer produces signed session tokens.
type TokenIssuer interface {
	// GenerateToken creates a signed session token for the given user.
	GenerateToken(userID uint, email string) (string, error)
}

// MailSender delivers transactional mail (verification links).
type MailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}
