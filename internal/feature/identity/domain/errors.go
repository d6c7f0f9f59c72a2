// Package domain defines domain-level errors for the identity feature.
package domain

import "errors"

// Domain errors for identity operations. Handlers map these to HTTP status
// codes with errors.Is.
var (
	// ErrEmailTaken indicates the email is already registered.
	ErrEmailTaken = errors.New("email already registered")

	// ErrMobileTaken indicates the mobile number is already registered.
	ErrMobileTaken = errors.New("mobile number already registered")

	// ErrUserNotFound indicates no user matched the given criteria.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials is the generic login failure. The same value is
	// returned for unknown email and wrong password so responses cannot be
	// used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailNotVerified rejects logins before the email has been confirmed.
	ErrEmailNotVerified = errors.New("please verify your email")

	// ErrInvalidOTP covers wrong, expired and malformed OTP codes alike.
	ErrInvalidOTP = errors.New("invalid or expired OTP")

	// ErrAlreadyVerified indicates the mobile number was verified earlier.
	ErrAlreadyVerified = errors.New("mobile number already verified")

	// ErrInvalidToken indicates an email-verification token that does not
	// resolve to a user (unknown, expired or already consumed).
	ErrInvalidToken = errors.New("invalid or expired verification token")

	// ErrInvalidInput indicates a request that carried no usable data.
	ErrInvalidInput = errors.New("no valid fields supplied")

	// ErrProviderUnavailable indicates the external identity provider failed
	// in a way that must abort the operation.
	ErrProviderUnavailable = errors.New("identity provider unavailable")

	// ErrProviderAuth is surfaced when provider-side credential re-validation
	// fails during login outside relaxed mode.
	ErrProviderAuth = errors.New("authentication service error")
)
