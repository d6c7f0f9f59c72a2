package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	companydomain "company_backend/internal/feature/company/domain"
	companyentity "company_backend/internal/feature/company/domain/entity"
	"company_backend/internal/feature/identity/domain"
	"company_backend/internal/feature/identity/domain/entity"
)

// mockUserRepository is a mock implementation of the UserRepository interface.
// It simulates database operations during testing.
type mockUserRepository struct {
	CreateFunc       func(ctx context.Context, user *entity.User) error
	FindByEmailFunc  func(ctx context.Context, email string) (*entity.User, error)
	FindByIDFunc     func(ctx context.Context, id uint) (*entity.User, error)
	EmailExistsFunc  func(ctx context.Context, email string) (bool, error)
	MobileExistsFunc func(ctx context.Context, mobileNo string, exceptID uint) (bool, error)
	SaveFunc         func(ctx context.Context, user *entity.User) error
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	user.ID = 1
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	if m.EmailExistsFunc != nil {
		return m.EmailExistsFunc(ctx, email)
	}
	return false, nil
}

func (m *mockUserRepository) MobileExists(ctx context.Context, mobileNo string, exceptID uint) (bool, error) {
	if m.MobileExistsFunc != nil {
		return m.MobileExistsFunc(ctx, mobileNo, exceptID)
	}
	return false, nil
}

func (m *mockUserRepository) Save(ctx context.Context, user *entity.User) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, user)
	}
	return nil
}

// mockProvider is a mock implementation of the IdentityProvider interface.
type mockProvider struct {
	CreateAccountFunc  func(ctx context.Context, email, password string) (string, error)
	VerifyPasswordFunc func(ctx context.Context, email, password string) error
	SendOTPFunc        func(ctx context.Context, mobileNo string) error
	CheckOTPFunc       func(ctx context.Context, mobileNo, code string) error
	SendResetEmailFunc func(ctx context.Context, email string) (string, error)
	SyncPasswordFunc   func(ctx context.Context, email, newPassword string) error
}

func (m *mockProvider) CreateAccount(ctx context.Context, email, password string) (string, error) {
	if m.CreateAccountFunc != nil {
		return m.CreateAccountFunc(ctx, email, password)
	}
	return "ext-uid-1", nil
}

func (m *mockProvider) VerifyPassword(ctx context.Context, email, password string) error {
	if m.VerifyPasswordFunc != nil {
		return m.VerifyPasswordFunc(ctx, email, password)
	}
	return nil
}

func (m *mockProvider) SendOTP(ctx context.Context, mobileNo string) error {
	if m.SendOTPFunc != nil {
		return m.SendOTPFunc(ctx, mobileNo)
	}
	return nil
}

func (m *mockProvider) CheckOTP(ctx context.Context, mobileNo, code string) error {
	if m.CheckOTPFunc != nil {
		return m.CheckOTPFunc(ctx, mobileNo, code)
	}
	return nil
}

func (m *mockProvider) SendResetEmail(ctx context.Context, email string) (string, error) {
	if m.SendResetEmailFunc != nil {
		return m.SendResetEmailFunc(ctx, email)
	}
	return "", nil
}

func (m *mockProvider) SyncPassword(ctx context.Context, email, newPassword string) error {
	if m.SyncPasswordFunc != nil {
		return m.SyncPasswordFunc(ctx, email, newPassword)
	}
	return nil
}

// mockTokenStore is an in-memory TokenStore.
type mockTokenStore struct {
	tokens map[string]uint
}

func newMockTokenStore() *mockTokenStore {
	return &mockTokenStore{tokens: make(map[string]uint)}
}

func (m *mockTokenStore) Store(ctx context.Context, token string, userID uint, ttl time.Duration) error {
	m.tokens[token] = userID
	return nil
}

func (m *mockTokenStore) Resolve(ctx context.Context, token string) (uint, error) {
	id, ok := m.tokens[token]
	if !ok {
		return 0, domain.ErrInvalidToken
	}
	return id, nil
}

func (m *mockTokenStore) Delete(ctx context.Context, token string) error {
	delete(m.tokens, token)
	return nil
}

// mockCompanyReader is a mock implementation of the CompanyReader interface.
type mockCompanyReader struct {
	FindByOwnerIDFunc func(ctx context.Context, ownerID uint) (*companyentity.CompanyProfile, error)
}

func (m *mockCompanyReader) FindByOwnerID(ctx context.Context, ownerID uint) (*companyentity.CompanyProfile, error) {
	if m.FindByOwnerIDFunc != nil {
		return m.FindByOwnerIDFunc(ctx, ownerID)
	}
	return nil, companydomain.ErrCompanyNotFound
}

// mockIssuer is a mock implementation of the TokenIssuer interface.
type mockIssuer struct {
	GenerateTokenFunc func(userID uint, email string) (string, error)
}

func (m *mockIssuer) GenerateToken(userID uint, email string) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(userID, email)
	}
	return "mock-jwt-token", nil
}

func newTestUsecase(users *mockUserRepository, provider *mockProvider, cfg Config) *identityUsecase {
	return NewIdentityUsecase(users, &mockCompanyReader{}, newMockTokenStore(), provider, &mockIssuer{}, nil, cfg)
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return string(h)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	input := RegisterInput{
		Email:    "New@Example.com",
		Password: "password123",
		FullName: "Jordan Doe",
		Gender:   entity.GenderOther,
		MobileNo: "+15550001111",
	}

	t.Run("successful registration", func(t *testing.T) {
		var created *entity.User
		users := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				user.ID = 7
				created = user
				return nil
			},
		}
		otpSent := false
		provider := &mockProvider{
			SendOTPFunc: func(ctx context.Context, mobileNo string) error {
				otpSent = true
				return nil
			},
		}

		uc := newTestUsecase(users, provider, Config{})
		user, err := uc.Register(ctx, input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.Email != "new@example.com" {
			t.Errorf("expected lower-cased email, got %q", user.Email)
		}
		if created.Password == input.Password {
			t.Error("password stored unhashed")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(created.Password), []byte(input.Password)); err != nil {
			t.Errorf("invalid bcrypt hash: %v", err)
		}
		if created.ExternalUID != "ext-uid-1" {
			t.Errorf("expected provider uid recorded, got %q", created.ExternalUID)
		}
		if created.SignupType != entity.SignupTypeEmail {
			t.Errorf("expected default signup type, got %q", created.SignupType)
		}
		if !otpSent {
			t.Error("expected OTP dispatch after registration")
		}
	})

	t.Run("short password", func(t *testing.T) {
		uc := newTestUsecase(&mockUserRepository{}, &mockProvider{}, Config{})
		_, err := uc.Register(ctx, RegisterInput{Email: "a@b.com", Password: "short", MobileNo: "+15550001111"})
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("email taken", func(t *testing.T) {
		users := &mockUserRepository{
			EmailExistsFunc: func(ctx context.Context, email string) (bool, error) { return true, nil },
		}
		uc := newTestUsecase(users, &mockProvider{}, Config{})
		_, err := uc.Register(ctx, input)
		if !errors.Is(err, domain.ErrEmailTaken) {
			t.Errorf("expected ErrEmailTaken, got %v", err)
		}
	})

	t.Run("mobile taken", func(t *testing.T) {
		users := &mockUserRepository{
			MobileExistsFunc: func(ctx context.Context, mobileNo string, exceptID uint) (bool, error) {
				return true, nil
			},
		}
		uc := newTestUsecase(users, &mockProvider{}, Config{})
		_, err := uc.Register(ctx, input)
		if !errors.Is(err, domain.ErrMobileTaken) {
			t.Errorf("expected ErrMobileTaken, got %v", err)
		}
	})

	t.Run("provider rejects email as existing", func(t *testing.T) {
		provider := &mockProvider{
			CreateAccountFunc: func(ctx context.Context, email, password string) (string, error) {
				return "", ErrProviderEmailExists
			},
		}
		uc := newTestUsecase(&mockUserRepository{}, provider, Config{})
		_, err := uc.Register(ctx, input)
		if !errors.Is(err, domain.ErrEmailTaken) {
			t.Errorf("expected ErrEmailTaken, got %v", err)
		}
	})

	t.Run("provider outage", func(t *testing.T) {
		provider := &mockProvider{
			CreateAccountFunc: func(ctx context.Context, email, password string) (string, error) {
				return "", errors.New("connection refused")
			},
		}
		uc := newTestUsecase(&mockUserRepository{}, provider, Config{})
		_, err := uc.Register(ctx, input)
		if !errors.Is(err, domain.ErrProviderUnavailable) {
			t.Errorf("expected ErrProviderUnavailable, got %v", err)
		}
	})

	t.Run("otp dispatch failure does not fail registration", func(t *testing.T) {
		provider := &mockProvider{
			SendOTPFunc: func(ctx context.Context, mobileNo string) error {
				return errors.New("sms gateway down")
			},
		}
		uc := newTestUsecase(&mockUserRepository{}, provider, Config{})
		if _, err := uc.Register(ctx, input); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	password := "password123"

	verifiedUser := func(t *testing.T) *entity.User {
		return &entity.User{
			ID:              3,
			Email:           "user@example.com",
			Password:        hashOf(t, password),
			IsEmailVerified: true,
		}
	}

	t.Run("successful login", func(t *testing.T) {
		user := verifiedUser(t)
		users := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return user, nil
			},
		}
		uc := newTestUsecase(users, &mockProvider{}, Config{})

		token, got, err := uc.Login(ctx, "User@Example.com", password)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token != "mock-jwt-token" {
			t.Errorf("expected issued token, got %q", token)
		}
		if got.ID != user.ID {
			t.Errorf("expected user %d, got %d", user.ID, got.ID)
		}
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		user := verifiedUser(t)
		users := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				if email == user.Email {
					return user, nil
				}
				return nil, domain.ErrUserNotFound
			},
		}
		uc := newTestUsecase(users, &mockProvider{}, Config{})

		_, _, unknownErr := uc.Login(ctx, "nobody@example.com", password)
		_, _, wrongErr := uc.Login(ctx, user.Email, "wrong-password")

		if !errors.Is(unknownErr, domain.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", unknownErr)
		}
		if !errors.Is(wrongErr, domain.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials for wrong password, got %v", wrongErr)
		}
		if unknownErr.Error() != wrongErr.Error() {
			t.Error("credential errors must carry the identical message")
		}
	})

	t.Run("unverified email blocked in strict mode", func(t *testing.T) {
		user := verifiedUser(t)
		user.IsEmailVerified = false
		users := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return user, nil
			},
		}
		uc := newTestUsecase(users, &mockProvider{}, Config{})

		_, _, err := uc.Login(ctx, user.Email, password)
		if !errors.Is(err, domain.ErrEmailNotVerified) {
			t.Errorf("expected ErrEmailNotVerified, got %v", err)
		}
	})

	t.Run("unverified email allowed in relaxed mode", func(t *testing.T) {
		user := verifiedUser(t)
		user.IsEmailVerified = false
		users := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return user, nil
			},
		}
		providerCalled := false
		provider := &mockProvider{
			VerifyPasswordFunc: func(ctx context.Context, email, password string) error {
				providerCalled = true
				return nil
			},
		}
		uc := newTestUsecase(users, provider, Config{Relaxed: true})

		if _, _, err := uc.Login(ctx, user.Email, password); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if providerCalled {
			t.Error("relaxed mode must skip provider re-validation")
		}
	})

	t.Run("provider re-validation failure", func(t *testing.T) {
		user := verifiedUser(t)
		users := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return user, nil
			},
		}
		provider := &mockProvider{
			VerifyPasswordFunc: func(ctx context.Context, email, password string) error {
				return errors.New("provider 500")
			},
		}
		uc := newTestUsecase(users, provider, Config{})

		_, _, err := uc.Login(ctx, user.Email, password)
		if !errors.Is(err, domain.ErrProviderAuth) {
			t.Errorf("expected ErrProviderAuth, got %v", err)
		}
	})
}

func TestVerifyMobile(t *testing.T) {
	ctx := context.Background()

	t.Run("valid OTP flips the flag", func(t *testing.T) {
		user := &entity.User{ID: 5, MobileNo: "+15550001111"}
		saved := false
		users := &mockUserRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) { return user, nil },
			SaveFunc: func(ctx context.Context, u *entity.User) error {
				saved = true
				return nil
			},
		}
		uc := newTestUsecase(users, &mockProvider{}, Config{})

		got, err := uc.VerifyMobile(ctx, 5, "123456")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.IsMobileVerified {
			t.Error("expected is_mobile_verified set")
		}
		if !saved {
			t.Error("expected user row saved")
		}
	})

	t.Run("already verified is idempotent and skips the provider", func(t *testing.T) {
		user := &entity.User{ID: 5, MobileNo: "+15550001111", IsMobileVerified: true}
		users := &mockUserRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) { return user, nil },
		}
		provider := &mockProvider{
			CheckOTPFunc: func(ctx context.Context, mobileNo, code string) error {
				t.Error("provider must not be consulted for an already verified user")
				return nil
			},
		}
		uc := newTestUsecase(users, provider, Config{})

		if _, err := uc.VerifyMobile(ctx, 5, "whatever"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("wrong OTP", func(t *testing.T) {
		user := &entity.User{ID: 5, MobileNo: "+15550001111"}
		users := &mockUserRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) { return user, nil },
		}
		provider := &mockProvider{
			CheckOTPFunc: func(ctx context.Context, mobileNo, code string) error {
				return ErrProviderInvalidCode
			},
		}
		uc := newTestUsecase(users, provider, Config{})

		_, err := uc.VerifyMobile(ctx, 5, "000001")
		if !errors.Is(err, domain.ErrInvalidOTP) {
			t.Errorf("expected ErrInvalidOTP, got %v", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		uc := newTestUsecase(&mockUserRepository{}, &mockProvider{}, Config{})
		_, err := uc.VerifyMobile(ctx, 99, "123456")
		if !errors.Is(err, domain.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestVerifyEmailByToken(t *testing.T) {
	ctx := context.Background()

	t.Run("token is single-use", func(t *testing.T) {
		user := &entity.User{ID: 8, Email: "user@example.com"}
		users := &mockUserRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) { return user, nil },
		}
		tokens := newMockTokenStore()
		tokens.tokens["tok-1"] = 8
		uc := NewIdentityUsecase(users, &mockCompanyReader{}, tokens, &mockProvider{}, &mockIssuer{}, nil, Config{})

		got, err := uc.VerifyEmailByToken(ctx, "tok-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.IsEmailVerified {
			t.Error("expected is_email_verified set")
		}

		if _, err := uc.VerifyEmailByToken(ctx, "tok-1"); !errors.Is(err, domain.ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken on reuse, got %v", err)
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		uc := newTestUsecase(&mockUserRepository{}, &mockProvider{}, Config{})
		if _, err := uc.VerifyEmailByToken(ctx, "nope"); !errors.Is(err, domain.ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})
}

func TestVerifyEmailDirect(t *testing.T) {
	ctx := context.Background()
	user := &entity.User{ID: 8, Email: "user@example.com"}
	users := &mockUserRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) { return user, nil },
	}

	t.Run("rejected in strict mode", func(t *testing.T) {
		uc := newTestUsecase(users, &mockProvider{}, Config{})
		if _, err := uc.VerifyEmailDirect(ctx, 8); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("allowed in relaxed mode", func(t *testing.T) {
		uc := newTestUsecase(users, &mockProvider{}, Config{Relaxed: true})
		got, err := uc.VerifyEmailDirect(ctx, 8)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.IsEmailVerified {
			t.Error("expected is_email_verified set")
		}
	})
}

func TestResendOTP(t *testing.T) {
	ctx := context.Background()

	t.Run("dispatches for an unverified mobile", func(t *testing.T) {
		user := &entity.User{ID: 2, MobileNo: "+15550001111"}
		users := &mockUserRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) { return user, nil },
		}
		sent := false
		provider := &mockProvider{
			SendOTPFunc: func(ctx context.Context, mobileNo string) error {
				sent = true
				return nil
			},
		}
		uc := newTestUsecase(users, provider, Config{})

		if err := uc.ResendOTP(ctx, 2); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !sent {
			t.Error("expected OTP dispatched")
		}
	})

	t.Run("already verified skips the provider", func(t *testing.T) {
		user := &entity.User{ID: 2, MobileNo: "+15550001111", IsMobileVerified: true}
		users := &mockUserRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) { return user, nil },
		}
		provider := &mockProvider{
			SendOTPFunc: func(ctx context.Context, mobileNo string) error {
				t.Error("provider must not be consulted for an already verified user")
				return nil
			},
		}
		uc := newTestUsecase(users, provider, Config{})

		if err := uc.ResendOTP(ctx, 2); !errors.Is(err, domain.ErrAlreadyVerified) {
			t.Errorf("expected ErrAlreadyVerified, got %v", err)
		}
	})

	t.Run("provider outage surfaces", func(t *testing.T) {
		user := &entity.User{ID: 2, MobileNo: "+15550001111"}
		users := &mockUserRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) { return user, nil },
		}
		provider := &mockProvider{
			SendOTPFunc: func(ctx context.Context, mobileNo string) error {
				return errors.New("sms gateway down")
			},
		}
		uc := newTestUsecase(users, provider, Config{})

		if err := uc.ResendOTP(ctx, 2); !errors.Is(err, domain.ErrProviderUnavailable) {
			t.Errorf("expected ErrProviderUnavailable, got %v", err)
		}
	})
}

func TestRequestPasswordReset(t *testing.T) {
	ctx := context.Background()
	user := &entity.User{ID: 4, Email: "user@example.com"}

	t.Run("unknown email acks without provider call", func(t *testing.T) {
		provider := &mockProvider{
			SendResetEmailFunc: func(ctx context.Context, email string) (string, error) {
				t.Error("provider must not be consulted for an unknown email")
				return "", nil
			},
		}
		uc := newTestUsecase(&mockUserRepository{}, provider, Config{})

		link, err := uc.RequestPasswordReset(ctx, "nobody@example.com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if link != "" {
			t.Errorf("expected empty link, got %q", link)
		}
	})

	t.Run("known email dispatches, link withheld in strict mode", func(t *testing.T) {
		users := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) { return user, nil },
		}
		provider := &mockProvider{
			SendResetEmailFunc: func(ctx context.Context, email string) (string, error) {
				return "https://example.com/reset?x=1", nil
			},
		}
		uc := newTestUsecase(users, provider, Config{})

		link, err := uc.RequestPasswordReset(ctx, user.Email)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if link != "" {
			t.Errorf("strict mode must not hand out the link, got %q", link)
		}
	})

	t.Run("relaxed mode returns the link", func(t *testing.T) {
		users := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) { return user, nil },
		}
		provider := &mockProvider{
			SendResetEmailFunc: func(ctx context.Context, email string) (string, error) {
				return "https://example.com/reset?x=1", nil
			},
		}
		uc := newTestUsecase(users, provider, Config{Relaxed: true})

		link, err := uc.RequestPasswordReset(ctx, user.Email)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if link != "https://example.com/reset?x=1" {
			t.Errorf("expected reset link, got %q", link)
		}
	})

	t.Run("dispatch failure still acks", func(t *testing.T) {
		users := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) { return user, nil },
		}
		provider := &mockProvider{
			SendResetEmailFunc: func(ctx context.Context, email string) (string, error) {
				return "", errors.New("mail gateway down")
			},
		}
		uc := newTestUsecase(users, provider, Config{})

		if _, err := uc.RequestPasswordReset(ctx, user.Email); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("persists the new hash and syncs best-effort", func(t *testing.T) {
		user := &entity.User{ID: 4, Email: "user@example.com", Password: hashOf(t, "old-password")}
		var saved *entity.User
		users := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) { return user, nil },
			SaveFunc: func(ctx context.Context, u *entity.User) error {
				saved = u
				return nil
			},
		}
		provider := &mockProvider{
			SyncPasswordFunc: func(ctx context.Context, email, newPassword string) error {
				return errors.New("provider 500") // must not surface
			},
		}
		uc := newTestUsecase(users, provider, Config{})

		if err := uc.ResetPassword(ctx, user.Email, "brand-new-pass"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if saved == nil {
			t.Fatal("expected user row saved")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte("brand-new-pass")); err != nil {
			t.Errorf("new password not persisted: %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		uc := newTestUsecase(&mockUserRepository{}, &mockProvider{}, Config{})
		if err := uc.ResetPassword(ctx, "nobody@example.com", "brand-new-pass"); !errors.Is(err, domain.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("short password", func(t *testing.T) {
		uc := newTestUsecase(&mockUserRepository{}, &mockProvider{}, Config{})
		if err := uc.ResetPassword(ctx, "user@example.com", "short"); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestGetProfile(t *testing.T) {
	ctx := context.Background()
	user := &entity.User{ID: 6, Email: "user@example.com"}
	users := &mockUserRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) { return user, nil },
	}

	t.Run("with company", func(t *testing.T) {
		companies := &mockCompanyReader{
			FindByOwnerIDFunc: func(ctx context.Context, ownerID uint) (*companyentity.CompanyProfile, error) {
				return &companyentity.CompanyProfile{ID: 11, OwnerID: ownerID}, nil
			},
		}
		uc := NewIdentityUsecase(users, companies, newMockTokenStore(), &mockProvider{}, &mockIssuer{}, nil, Config{})

		_, company, err := uc.GetProfile(ctx, 6)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if company == nil || company.ID != 11 {
			t.Errorf("expected company 11, got %+v", company)
		}
	})

	t.Run("without company", func(t *testing.T) {
		uc := NewIdentityUsecase(users, &mockCompanyReader{}, newMockTokenStore(), &mockProvider{}, &mockIssuer{}, nil, Config{})

		got, company, err := uc.GetProfile(ctx, 6)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.ID != 6 {
			t.Errorf("expected user 6, got %d", got.ID)
		}
		if company != nil {
			t.Errorf("expected nil company, got %+v", company)
		}
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	str := func(s string) *string { return &s }

	t.Run("patches submitted fields only", func(t *testing.T) {
		user := &entity.User{ID: 6, FullName: "Old Name", Gender: entity.GenderFemale, MobileNo: "+15550001111"}
		users := &mockUserRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) { return user, nil },
		}
		uc := newTestUsecase(users, &mockProvider{}, Config{})

		got, err := uc.UpdateProfile(ctx, 6, ProfilePatch{FullName: str("New Name")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.FullName != "New Name" {
			t.Errorf("expected full name updated, got %q", got.FullName)
		}
		if got.Gender != entity.GenderFemale {
			t.Errorf("gender must be untouched, got %q", got.Gender)
		}
	})

	t.Run("empty patch", func(t *testing.T) {
		uc := newTestUsecase(&mockUserRepository{}, &mockProvider{}, Config{})
		if _, err := uc.UpdateProfile(ctx, 6, ProfilePatch{}); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("mobile conflict", func(t *testing.T) {
		user := &entity.User{ID: 6, MobileNo: "+15550001111"}
		users := &mockUserRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) { return user, nil },
			MobileExistsFunc: func(ctx context.Context, mobileNo string, exceptID uint) (bool, error) {
				if exceptID != 6 {
					t.Errorf("uniqueness check must exclude the user's own row, got exceptID %d", exceptID)
				}
				return true, nil
			},
		}
		uc := newTestUsecase(users, &mockProvider{}, Config{})

		if _, err := uc.UpdateProfile(ctx, 6, ProfilePatch{MobileNo: str("+15550002222")}); !errors.Is(err, domain.ErrMobileTaken) {
			t.Errorf("expected ErrMobileTaken, got %v", err)
		}
	})

	t.Run("unchanged mobile skips the uniqueness check", func(t *testing.T) {
		user := &entity.User{ID: 6, MobileNo: "+15550001111"}
		users := &mockUserRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) { return user, nil },
			MobileExistsFunc: func(ctx context.Context, mobileNo string, exceptID uint) (bool, error) {
				t.Error("uniqueness check must be skipped for an unchanged mobile")
				return false, nil
			},
		}
		uc := newTestUsecase(users, &mockProvider{}, Config{})

		if _, err := uc.UpdateProfile(ctx, 6, ProfilePatch{MobileNo: str("+15550001111")}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
