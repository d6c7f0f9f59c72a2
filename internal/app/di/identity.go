// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"company_backend/internal/feature/identity/usecase"
	"company_backend/internal/platform/config"
	"company_backend/internal/platform/externalapi/devprovider"
	"company_backend/internal/platform/externalapi/identitykit"
	infrahttp "company_backend/internal/platform/http"
	"company_backend/internal/platform/mail"
)

// NewIdentityProvider selects the external identity provider once at startup.
// Relaxed mode wires the local dev provider (fixed OTP, logged sends); every
// other mode talks to the Identity Toolkit REST API.
func NewIdentityProvider(cfg config.Config) usecase.IdentityProvider {
	if cfg.Relaxed {
		return devprovider.NewProvider(cfg.BaseURL)
	}
	timeout := 10 * time.Second
	return identitykit.NewClient(identitykit.Config{
		APIKey:  cfg.IdentityKitAPIKey,
		BaseURL: cfg.IdentityKitBaseURL,
		Timeout: timeout,
	}, infrahttp.NewHTTPClient(timeout))
}

// NewMailSender returns the SMTP sender, or nil when SMTP is not configured.
// The identity usecase treats a nil sender as "mail disabled" and logs
// verification links instead.
func NewMailSender(cfg config.Config) usecase.MailSender {
	if cfg.SMTPHost == "" {
		return nil
	}
	return mail.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)
}
