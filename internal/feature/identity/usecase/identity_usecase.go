// Package usecase implements the business logic of the identity feature.
package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	companydomain "company_backend/internal/feature/company/domain"
	companyentity "company_backend/internal/feature/company/domain/entity"
	"company_backend/internal/feature/identity/domain"
	"company_backend/internal/feature/identity/domain/entity"
)

const (
	// minPasswordLength is the minimum accepted password length.
	minPasswordLength = 8

	// verificationTokenBytes is the entropy of an email-verification token.
	verificationTokenBytes = 32

	// DefaultTokenTTL is how long an email-verification token stays valid.
	DefaultTokenTTL = 24 * time.Hour
)

// Config carries the static settings of the identity usecase.
type Config struct {
	// Relaxed bypasses the email-verified login gate and the provider-side
	// credential re-validation. Meant for environments without real email
	// or SMS delivery.
	Relaxed bool

	// BaseURL is the externally reachable origin used to build
	// verification links, e.g. "https://api.example.com".
	BaseURL string

	// TokenTTL overrides DefaultTokenTTL when positive.
	TokenTTL time.Duration
}

// identityUsecase orchestrates registration, login, verification and
// password-reset flows.
type identityUsecase struct {
	users     UserRepository
	companies CompanyReader
	tokens    TokenStore
	provider  IdentityProvider
	issuer    TokenIssuer
	mailer    MailSender
	cfg       Config
}

// NewIdentityUsecase creates a new instance of identityUsecase.
func NewIdentityUsecase(users UserRepository, companies CompanyReader, tokens TokenStore,
	provider IdentityProvider, issuer TokenIssuer, mailer MailSender, cfg Config) *identityUsecase {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = DefaultTokenTTL
	}
	return &identityUsecase{
		users:     users,
		companies: companies,
		tokens:    tokens,
		provider:  provider,
		issuer:    issuer,
		mailer:    mailer,
		cfg:       cfg,
	}
}

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Email      string
	Password   string
	FullName   string
	Gender     string
	MobileNo   string
	SignupType string
}

// Register creates a new account. The email and mobile number must both be
// unused, the account is mirrored in the external identity provider, and an
// OTP plus an email-verification link are dispatched best-effort.
func (u *identityUsecase) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if len(in.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLength)
	}

	// Pre-checks are early exits; the unique indexes are the enforcement point.
	if taken, err := u.users.EmailExists(ctx, email); err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	} else if taken {
		return nil, domain.ErrEmailTaken
	}
	if taken, err := u.users.MobileExists(ctx, in.MobileNo, 0); err != nil {
		return nil, fmt.Errorf("check mobile: %w", err)
	} else if taken {
		return nil, domain.ErrMobileTaken
	}

	uid, err := u.provider.CreateAccount(ctx, email, in.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrProviderEmailExists):
			return nil, domain.ErrEmailTaken
		case errors.Is(err, ErrProviderInvalidEmail):
			return nil, fmt.Errorf("%w: invalid email address", domain.ErrInvalidInput)
		case errors.Is(err, ErrProviderWeakPassword):
			return nil, fmt.Errorf("%w: password too weak", domain.ErrInvalidInput)
		default:
			return nil, fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	signupType := in.SignupType
	if signupType == "" {
		signupType = entity.SignupTypeEmail
	}
	user := &entity.User{
		Email:       email,
		Password:    string(hashed),
		FullName:    in.FullName,
		Gender:      in.Gender,
		MobileNo:    in.MobileNo,
		SignupType:  signupType,
		ExternalUID: uid,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}

	// Best-effort side effects. Registration already succeeded; failures are
	// logged and swallowed.
	if err := u.provider.SendOTP(ctx, user.MobileNo); err != nil {
		slog.Warn("otp dispatch failed", "user_id", user.ID, "error", err)
	}
	u.sendVerificationEmail(ctx, user)

	return user, nil
}

// sendVerificationEmail issues a single-use token and mails the verification
// link. Best-effort: failures are logged, never surfaced.
func (u *identityUsecase) sendVerificationEmail(ctx context.Context, user *entity.User) {
	token, err := newVerificationToken()
	if err != nil {
		slog.Warn("verification token generation failed", "user_id", user.ID, "error", err)
		return
	}
	if err := u.tokens.Store(ctx, token, user.ID, u.cfg.TokenTTL); err != nil {
		slog.Warn("verification token store failed", "user_id", user.ID, "error", err)
		return
	}
	link := fmt.Sprintf("%s/api/auth/verify-email?token=%s", u.cfg.BaseURL, token)
	if u.cfg.Relaxed || u.mailer == nil {
		slog.Info("verification link issued", "user_id", user.ID, "link", link)
		return
	}
	body := fmt.Sprintf("Welcome! Confirm your email by visiting: %s", link)
	if err := u.mailer.Send(ctx, user.Email, "Verify your email", body); err != nil {
		slog.Warn("verification email failed", "user_id", user.ID, "error", err)
	}
}

// newVerificationToken returns a random hex token.
func newVerificationToken() (string, error) {
	b := make([]byte, verificationTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Login authenticates the user and returns a signed session token. Unknown
// email and wrong password yield the identical error so responses cannot be
// used to enumerate accounts; a bcrypt compare runs in both cases to keep
// timing uniform.
func (u *identityUsecase) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	user, findErr := u.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))

	// Dummy hash keeps bcrypt.CompareHashAndPassword on the path even when
	// the user does not exist.
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	if findErr == nil {
		passwordHash = user.Password
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if findErr != nil || compareErr != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	if !user.IsEmailVerified && !u.cfg.Relaxed {
		return "", nil, domain.ErrEmailNotVerified
	}

	if !u.cfg.Relaxed {
		if err := u.provider.VerifyPassword(ctx, user.Email, password); err != nil {
			slog.Warn("provider credential re-validation failed", "user_id", user.ID, "error", err)
			return "", nil, domain.ErrProviderAuth
		}
	}

	token, err := u.issuer.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, user, nil
}

// VerifyMobile confirms the OTP for the user and flips is_mobile_verified.
// Idempotent: an already verified user succeeds without the OTP being checked
// again.
func (u *identityUsecase) VerifyMobile(ctx context.Context, userID uint, otp string) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsMobileVerified {
		return user, nil
	}
	if err := u.provider.CheckOTP(ctx, user.MobileNo, otp); err != nil {
		return nil, domain.ErrInvalidOTP
	}
	user.IsMobileVerified = true
	if err := u.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// VerifyEmailByToken resolves a verification token to its user and flips
// is_email_verified. Tokens are single-use; re-verifying an already verified
// user is a no-op success.
func (u *identityUsecase) VerifyEmailByToken(ctx context.Context, token string) (*entity.User, error) {
	userID, err := u.tokens.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsEmailVerified {
		user.IsEmailVerified = true
		if err := u.users.Save(ctx, user); err != nil {
			return nil, err
		}
	}
	if err := u.tokens.Delete(ctx, token); err != nil {
		slog.Warn("verification token delete failed", "user_id", userID, "error", err)
	}
	return user, nil
}

// VerifyEmailDirect flips is_email_verified by raw user id. Only available in
// relaxed mode, for environments without real email delivery.
func (u *identityUsecase) VerifyEmailDirect(ctx context.Context, userID uint) (*entity.User, error) {
	if !u.cfg.Relaxed {
		return nil, fmt.Errorf("%w: direct verification requires a token", domain.ErrInvalidInput)
	}
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsEmailVerified {
		user.IsEmailVerified = true
		if err := u.users.Save(ctx, user); err != nil {
			return nil, err
		}
	}
	return user, nil
}

// ResendOTP re-dispatches the mobile verification code.
func (u *identityUsecase) ResendOTP(ctx context.Context, userID uint) error {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsMobileVerified {
		return domain.ErrAlreadyVerified
	}
	if err := u.provider.SendOTP(ctx, user.MobileNo); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
	}
	return nil
}

// RequestPasswordReset dispatches a reset email. The ack is identical whether
// or not the email is registered; the returned link is non-empty only in
// relaxed mode, where it is handed to the client instead of being mailed.
func (u *identityUsecase) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	user, err := u.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		// Unknown email gets the same generic ack.
		return "", nil
	}
	link, err := u.provider.SendResetEmail(ctx, user.Email)
	if err != nil {
		slog.Warn("reset email dispatch failed", "user_id", user.ID, "error", err)
		return "", nil
	}
	if u.cfg.Relaxed {
		return link, nil
	}
	return "", nil
}

// ResetPassword hashes and persists the new password, then best-effort syncs
// it to the provider.
func (u *identityUsecase) ResetPassword(ctx context.Context, email, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLength)
	}
	user, err := u.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashed)
	if err := u.users.Save(ctx, user); err != nil {
		return err
	}
	if err := u.provider.SyncPassword(ctx, user.Email, newPassword); err != nil {
		slog.Warn("provider password sync failed", "user_id", user.ID, "error", err)
	}
	return nil
}

// GetProfile joins the user with its company profile, if any.
func (u *identityUsecase) GetProfile(ctx context.Context, userID uint) (*entity.User, *companyentity.CompanyProfile, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	company, err := u.companies.FindByOwnerID(ctx, userID)
	if err != nil {
		if errors.Is(err, companydomain.ErrCompanyNotFound) {
			return user, nil, nil
		}
		return nil, nil, err
	}
	return user, company, nil
}

// ProfilePatch carries the optional fields of an identity profile update.
type ProfilePatch struct {
	FullName *string
	Gender   *string
	MobileNo *string
}

// UpdateProfile applies the patch to the user. A changing mobile number is
// re-checked for uniqueness excluding the user's own row.
func (u *identityUsecase) UpdateProfile(ctx context.Context, userID uint, patch ProfilePatch) (*entity.User, error) {
	if patch.FullName == nil && patch.Gender == nil && patch.MobileNo == nil {
		return nil, domain.ErrInvalidInput
	}
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if patch.MobileNo != nil && *patch.MobileNo != user.MobileNo {
		taken, err := u.users.MobileExists(ctx, *patch.MobileNo, user.ID)
		if err != nil {
			return nil, fmt.Errorf("check mobile: %w", err)
		}
		if taken {
			return nil, domain.ErrMobileTaken
		}
		user.MobileNo = *patch.MobileNo
	}
	if patch.FullName != nil {
		user.FullName = *patch.FullName
	}
	if patch.Gender != nil {
		user.Gender = *patch.Gender
	}
	if err := u.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
