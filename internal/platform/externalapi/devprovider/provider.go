// Package devprovider provides the relaxed-mode identity provider: no real
// email or SMS leaves the process, every "send" is a log line.
package devprovider

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/google/uuid"

	identityusecase "company_backend/internal/feature/identity/usecase"
)

// AcceptedOTP is the only code the dev provider verifies successfully.
const AcceptedOTP = "000000"

// Provider is a fake IdentityProvider for development and tests.
type Provider struct {
	// baseURL builds the reset links returned instead of mailed.
	baseURL string
}

// Compile-time check to ensure Provider implements IdentityProvider.
var _ identityusecase.IdentityProvider = (*Provider)(nil)

// NewProvider creates a new dev Provider.
func NewProvider(baseURL string) *Provider {
	return &Provider{baseURL: baseURL}
}

// CreateAccount assigns a deterministic-looking local handle.
func (p *Provider) CreateAccount(ctx context.Context, email, password string) (string, error) {
	uid := "dev-" + uuid.NewString()
	slog.Info("dev provider account created", "email", email, "uid", uid)
	return uid, nil
}

// VerifyPassword always succeeds; the local bcrypt check is the gate in
// relaxed mode.
func (p *Provider) VerifyPassword(ctx context.Context, email, password string) error {
	return nil
}

// SendOTP logs instead of sending.
func (p *Provider) SendOTP(ctx context.Context, mobileNo string) error {
	slog.Info("dev provider OTP dispatched", "mobile_no", mobileNo, "code", AcceptedOTP)
	return nil
}

// CheckOTP accepts only AcceptedOTP.
func (p *Provider) CheckOTP(ctx context.Context, mobileNo, code string) error {
	if code != AcceptedOTP {
		return identityusecase.ErrProviderInvalidCode
	}
	return nil
}

// SendResetEmail returns the reset link instead of mailing it.
func (p *Provider) SendResetEmail(ctx context.Context, email string) (string, error) {
	link := fmt.Sprintf("%s/reset-password?email=%s", p.baseURL, url.QueryEscape(email))
	slog.Info("dev provider reset link issued", "email", email, "link", link)
	return link, nil
}

// SyncPassword is a no-op.
func (p *Provider) SyncPassword(ctx context.Context, email, newPassword string) error {
	return nil
}
