package jwtmw

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"company_backend/internal/api"
	companyentity "company_backend/internal/feature/company/domain/entity"
	identityentity "company_backend/internal/feature/identity/domain/entity"
)

// Gin context keys set by the middleware.
const (
	ContextPrincipal = "principal"
	ContextCompanyID = "companyID"
)

// Principal is the authenticated identity attached to a request after token
// verification. The user row is re-resolved on every request, so deleting or
// disabling a user invalidates authorization even while the token itself is
// still cryptographically valid.
type Principal struct {
	ID               uint
	Email            string
	IsEmailVerified  bool
	IsMobileVerified bool
}

// UserResolver loads the user a verified token refers to.
type UserResolver interface {
	FindByID(ctx context.Context, id uint) (*identityentity.User, error)
}

// CompanyResolver loads the company a principal owns.
type CompanyResolver interface {
	FindByOwnerID(ctx context.Context, ownerID uint) (*companyentity.CompanyProfile, error)
}

// Middleware builds the request gating handlers.
type Middleware struct {
	secret  string
	users   UserResolver
	relaxed bool
}

// NewMiddleware creates the gating middleware. relaxed bypasses the
// verified-email gates.
func NewMiddleware(secret string, users UserResolver, relaxed bool) *Middleware {
	return &Middleware{secret: secret, users: users, relaxed: relaxed}
}

// authenticate runs the bearer-token state machine: parse header, verify
// signature/expiry, re-resolve the user. Any failure yields a client-visible
// 401; expired vs malformed tokens are distinguished only in logs.
func (m *Middleware) authenticate(c *gin.Context) (*Principal, bool) {
	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return nil, false
	}
	tokenStr := strings.TrimPrefix(auth, "Bearer ")

	claims, err := ParseToken(m.secret, tokenStr)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			slog.Info("expired token rejected", "remote_addr", c.ClientIP())
		} else {
			slog.Warn("malformed token rejected", "remote_addr", c.ClientIP(), "error", err)
		}
		return nil, false
	}

	user, err := m.users.FindByID(c.Request.Context(), claims.UserID)
	if err != nil {
		slog.Warn("token references missing user", "user_id", claims.UserID, "remote_addr", c.ClientIP())
		return nil, false
	}

	return &Principal{
		ID:               user.ID,
		Email:            user.Email,
		IsEmailVerified:  user.IsEmailVerified,
		IsMobileVerified: user.IsMobileVerified,
	}, true
}

// AuthOnly requires a valid bearer token and an existing user, without the
// verified-email gate. Used by the identity self-service endpoints.
func (m *Middleware) AuthOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := m.authenticate(c)
		if !ok {
			api.AbortFail(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		c.Set(ContextPrincipal, principal)
		c.Next()
	}
}

// AuthRequired additionally requires a verified email, unless relaxed mode
// is on.
func (m *Middleware) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := m.authenticate(c)
		if !ok {
			api.AbortFail(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		if !m.relaxed && !principal.IsEmailVerified {
			api.AbortFail(c, http.StatusForbidden, "please verify your email")
			return
		}
		c.Set(ContextPrincipal, principal)
		c.Next()
	}
}

// OptionalAuth attaches a principal when a valid token is present but never
// rejects. Used by routes that personalize output without requiring login.
func (m *Middleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if principal, ok := m.authenticate(c); ok {
			c.Set(ContextPrincipal, principal)
		}
		c.Next()
	}
}

// RequireCompany resolves the caller's own company id and attaches it,
// rejecting with 404 when the caller has no company. Must run after AuthOnly
// or AuthRequired.
func (m *Middleware) RequireCompany(companies CompanyResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := PrincipalFrom(c)
		if !ok {
			api.AbortFail(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		company, err := companies.FindByOwnerID(c.Request.Context(), principal.ID)
		if err != nil {
			api.AbortFail(c, http.StatusNotFound, "company profile not found")
			return
		}
		c.Set(ContextCompanyID, company.ID)
		c.Next()
	}
}

// PrincipalFrom extracts the principal set by the auth middleware.
func PrincipalFrom(c *gin.Context) (*Principal, bool) {
	v, ok := c.Get(ContextPrincipal)
	if !ok {
		return nil, false
	}
	principal, ok := v.(*Principal)
	return principal, ok
}
