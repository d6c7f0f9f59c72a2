// Package domain defines domain-level errors for the company feature.
package domain

import "errors"

// Domain errors for company-profile operations.
var (
	// ErrCompanyNotFound indicates no profile exists for the owner, or the
	// scoped mutation matched zero rows.
	ErrCompanyNotFound = errors.New("company profile not found")

	// ErrProfileExists indicates the owner already has a profile.
	ErrProfileExists = errors.New("company profile already exists for this user")

	// ErrNameTaken indicates the company name is used by another profile.
	ErrNameTaken = errors.New("company name already taken")

	// ErrImageNotSet indicates a delete was requested for an image field
	// that is already null.
	ErrImageNotSet = errors.New("image not set")

	// ErrInvalidField indicates a field value that cannot be parsed.
	ErrInvalidField = errors.New("invalid field value")

	// ErrInvalidImage indicates a file that is not an accepted image type or
	// exceeds the size limit.
	ErrInvalidImage = errors.New("invalid image file")

	// ErrStoreUnavailable indicates the image store failed on a fatal path
	// (primary upload for a create or update).
	ErrStoreUnavailable = errors.New("image store unavailable")
)
