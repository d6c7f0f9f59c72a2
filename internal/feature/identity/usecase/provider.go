package usecase

import (
	"context"
	"errors"
)

// Provider-level errors. Implementations translate their wire-level failure
// codes into these sentinels so the usecase can map them to domain errors
// without knowing which provider is configured.
var (
	// ErrProviderEmailExists indicates the provider already holds an account
	// for the email.
	ErrProviderEmailExists = errors.New("provider: email already exists")

	// ErrProviderInvalidEmail indicates the provider rejected the email as
	// malformed.
	ErrProviderInvalidEmail = errors.New("provider: invalid email")

	// ErrProviderWeakPassword indicates the provider rejected the password.
	ErrProviderWeakPassword = errors.New("provider: weak password")

	// ErrProviderInvalidCode indicates an OTP that is wrong or expired.
	ErrProviderInvalidCode = errors.New("provider: invalid verification code")

	// ErrProviderUserNotFound indicates the provider has no matching account.
	ErrProviderUserNotFound = errors.New("provider: user not found")
)

// IdentityProvider abstracts the external identity service used for account
// creation, SMS OTP dispatch/verification and password-reset email dispatch.
// Following Go convention, the interface is defined by the consumer (usecase),
// not the providers (platform/externalapi).
type IdentityProvider interface {
	// CreateAccount registers the credentials with the provider and returns
	// the provider-assigned account handle.
	CreateAccount(ctx context.Context, email, password string) (string, error)

	// VerifyPassword re-validates credentials against the provider.
	VerifyPassword(ctx context.Context, email, password string) error

	// SendOTP dispatches a verification code to the mobile number.
	SendOTP(ctx context.Context, mobileNo string) error

	// CheckOTP verifies a code previously dispatched to the mobile number.
	CheckOTP(ctx context.Context, mobileNo, code string) error

	// SendResetEmail dispatches a password-reset email. The returned link is
	// empty when the provider delivered the mail itself; a non-empty link
	// means the caller is expected to hand it to the client directly.
	SendResetEmail(ctx context.Context, email string) (string, error)

	// SyncPassword propagates a locally reset password to the provider.
	SyncPassword(ctx context.Context, email, newPassword string) error
}
