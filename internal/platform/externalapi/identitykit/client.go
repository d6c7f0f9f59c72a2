package identitykit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	identityusecase "company_backend/internal/feature/identity/usecase"
)

// Client is an IdentityProvider implementation backed by the Identity
// Toolkit REST API.
type Client struct {
	cfg    Config
	client *http.Client

	// sessions maps mobile number to the provider session handle returned by
	// sendVerificationCode, needed to verify the matching code.
	mu       sync.Mutex
	sessions map[string]string
}

// Compile-time check to ensure Client implements IdentityProvider.
var _ identityusecase.IdentityProvider = (*Client)(nil)

// NewClient creates a new Client with the given config and HTTP client.
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client, sessions: make(map[string]string)}
}

// apiError is the error envelope of the Identity Toolkit API.
type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// post sends a JSON body to the named endpoint and decodes the response into
// out. Provider failure codes are translated into the usecase sentinels.
func (c *Client) post(ctx context.Context, endpoint string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	u := fmt.Sprintf("%s/%s?key=%s", c.cfg.BaseURL, endpoint, c.cfg.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("identitykit %s: %w", endpoint, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		var apiErr apiError
		if err := json.NewDecoder(res.Body).Decode(&apiErr); err != nil {
			return fmt.Errorf("identitykit %s: http %d", endpoint, res.StatusCode)
		}
		return translateCode(endpoint, apiErr.Error.Message)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

// translateCode maps provider failure codes to the usecase sentinels.
func translateCode(endpoint, code string) error {
	switch {
	case strings.HasPrefix(code, "EMAIL_EXISTS"):
		return identityusecase.ErrProviderEmailExists
	case strings.HasPrefix(code, "INVALID_EMAIL"):
		return identityusecase.ErrProviderInvalidEmail
	case strings.HasPrefix(code, "WEAK_PASSWORD"):
		return identityusecase.ErrProviderWeakPassword
	case strings.HasPrefix(code, "INVALID_CODE"), strings.HasPrefix(code, "SESSION_EXPIRED"):
		return identityusecase.ErrProviderInvalidCode
	case strings.HasPrefix(code, "EMAIL_NOT_FOUND"), strings.HasPrefix(code, "USER_NOT_FOUND"):
		return identityusecase.ErrProviderUserNotFound
	case strings.HasPrefix(code, "INVALID_PASSWORD"), strings.HasPrefix(code, "INVALID_LOGIN_CREDENTIALS"):
		return identityusecase.ErrProviderUserNotFound
	default:
		return fmt.Errorf("identitykit %s: %s", endpoint, code)
	}
}

// CreateAccount registers the credentials and returns the provider-assigned
// account handle.
func (c *Client) CreateAccount(ctx context.Context, email, password string) (string, error) {
	var out struct {
		LocalID string `json:"localId"`
	}
	err := c.post(ctx, "accounts:signUp", map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": false,
	}, &out)
	if err != nil {
		return "", err
	}
	return out.LocalID, nil
}

// VerifyPassword re-validates credentials against the provider.
func (c *Client) VerifyPassword(ctx context.Context, email, password string) error {
	return c.post(ctx, "accounts:signInWithPassword", map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": false,
	}, nil)
}

// SendOTP dispatches a verification code to the mobile number and retains
// the session handle needed to verify it.
func (c *Client) SendOTP(ctx context.Context, mobileNo string) error {
	var out struct {
		SessionInfo string `json:"sessionInfo"`
	}
	err := c.post(ctx, "accounts:sendVerificationCode", map[string]any{
		"phoneNumber": mobileNo,
	}, &out)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.sessions[mobileNo] = out.SessionInfo
	c.mu.Unlock()
	return nil
}

// CheckOTP verifies a code previously dispatched to the mobile number.
func (c *Client) CheckOTP(ctx context.Context, mobileNo, code string) error {
	c.mu.Lock()
	session, ok := c.sessions[mobileNo]
	c.mu.Unlock()
	if !ok {
		return identityusecase.ErrProviderInvalidCode
	}
	err := c.post(ctx, "accounts:signInWithPhoneNumber", map[string]any{
		"sessionInfo": session,
		"code":        code,
	}, nil)
	if err != nil {
		return err
	}
	c.mu.Lock()
	delete(c.sessions, mobileNo)
	c.mu.Unlock()
	return nil
}

// SendResetEmail dispatches a password-reset email through the provider.
// The provider delivers the mail itself, so the returned link is empty.
func (c *Client) SendResetEmail(ctx context.Context, email string) (string, error) {
	err := c.post(ctx, "accounts:sendOobCode", map[string]any{
		"requestType": "PASSWORD_RESET",
		"email":       email,
	}, nil)
	return "", err
}

// SyncPassword propagates a locally reset password to the provider.
func (c *Client) SyncPassword(ctx context.Context, email, newPassword string) error {
	return c.post(ctx, "accounts:update", map[string]any{
		"email":    email,
		"password": newPassword,
	}, nil)
}
