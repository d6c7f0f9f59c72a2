// Package handler provides the HTTP handlers of the identity feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"company_backend/internal/api"
	companyentity "company_backend/internal/feature/company/domain/entity"
	"company_backend/internal/feature/identity/domain"
	"company_backend/internal/feature/identity/domain/entity"
	"company_backend/internal/feature/identity/usecase"
	jwtmw "company_backend/internal/platform/jwt"
)

// IdentityUsecase defines the identity operations the handler dispatches to.
// Following Go convention, the interface is defined by the consumer (handler),
// not the provider (usecase).
type IdentityUsecase interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*entity.User, error)
	Login(ctx context.Context, email, password string) (string, *entity.User, error)
	VerifyMobile(ctx context.Context, userID uint, otp string) (*entity.User, error)
	VerifyEmailByToken(ctx context.Context, token string) (*entity.User, error)
	VerifyEmailDirect(ctx context.Context, userID uint) (*entity.User, error)
	ResendOTP(ctx context.Context, userID uint) error
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, email, newPassword string) error
	GetProfile(ctx context.Context, userID uint) (*entity.User, *companyentity.CompanyProfile, error)
	UpdateProfile(ctx context.Context, userID uint, patch usecase.ProfilePatch) (*entity.User, error)
}

// IdentityHandler handles the HTTP requests of the identity feature.
type IdentityHandler struct {
	identity IdentityUsecase
}

// NewIdentityHandler creates a new instance of IdentityHandler.
func NewIdentityHandler(identity IdentityUsecase) *IdentityHandler {
	return &IdentityHandler{identity: identity}
}

// statusFor maps identity domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrMobileTaken):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidOTP),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrAlreadyVerified):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrProviderAuth):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrEmailNotVerified):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// fail logs the real error and answers with the mapped status. Internal
// errors answer with a generic message so no detail leaks.
func fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("identity request failed", "error", err, "path", c.FullPath())
		api.Fail(c, status, "something went wrong")
		return
	}
	api.Fail(c, status, err.Error())
}

// Register handles POST /api/auth/register.
func (h *IdentityHandler) Register(c *gin.Context) {
	var req api.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		api.Fail(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}
	user, err := h.identity.Register(c.Request.Context(), usecase.RegisterInput{
		Email:      req.Email,
		Password:   req.Password,
		FullName:   req.FullName,
		Gender:     req.Gender,
		MobileNo:   req.MobileNo,
		SignupType: req.SignupType,
	})
	if err != nil {
		slog.Warn("register failed", "error", err, "remote_addr", c.ClientIP())
		fail(c, err)
		return
	}
	slog.Info("user registered", "user_id", user.ID, "remote_addr", c.ClientIP())
	api.OK(c, http.StatusCreated, "registered, OTP sent to mobile", api.RegisterResponse{
		UserID:      user.ID,
		Email:       user.Email,
		FullName:    user.FullName,
		MobileNo:    user.MobileNo,
		ExternalUID: user.ExternalUID,
	})
}

// Login handles POST /api/auth/login.
func (h *IdentityHandler) Login(c *gin.Context) {
	var req api.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		api.Fail(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}
	token, user, err := h.identity.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		slog.Warn("login failed", "email", req.Email, "error", err, "remote_addr", c.ClientIP())
		fail(c, err)
		return
	}
	slog.Info("user login successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	api.OK(c, http.StatusOK, "login successful", api.LoginResponse{
		Token: token,
		User:  api.NewUserResponse(user),
	})
}

// Logout handles POST /api/auth/logout. Tokens are stateless; the ack lets
// clients drop theirs.
func (h *IdentityHandler) Logout(c *gin.Context) {
	if principal, ok := jwtmw.PrincipalFrom(c); ok {
		slog.Info("user logout", "user_id", principal.ID)
	}
	api.OK(c, http.StatusOK, "logged out", nil)
}

// VerifyEmail handles GET /api/auth/verify-email. Standard mode resolves
// ?token=; relaxed mode additionally accepts ?user_id=. Browser clients get
// a redirect, API clients get JSON.
func (h *IdentityHandler) VerifyEmail(c *gin.Context) {
	var (
		user *entity.User
		err  error
	)
	switch {
	case c.Query("token") != "":
		user, err = h.identity.VerifyEmailByToken(c.Request.Context(), c.Query("token"))
	case c.Query("user_id") != "":
		id, parseErr := strconv.ParseUint(c.Query("user_id"), 10, 64)
		if parseErr != nil {
			api.Fail(c, http.StatusBadRequest, "invalid user_id")
			return
		}
		user, err = h.identity.VerifyEmailDirect(c.Request.Context(), uint(id))
	default:
		api.Fail(c, http.StatusBadRequest, "token or user_id required")
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	slog.Info("email verified", "user_id", user.ID)

	if strings.Contains(c.GetHeader("Accept"), "text/html") {
		c.Redirect(http.StatusFound, "/login?verified=true")
		return
	}
	api.OK(c, http.StatusOK, "email verified", api.NewUserResponse(user))
}

// VerifyMobile handles POST /api/auth/verify-mobile.
func (h *IdentityHandler) VerifyMobile(c *gin.Context) {
	var req api.VerifyMobileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}
	user, err := h.identity.VerifyMobile(c.Request.Context(), req.UserID, req.OTP)
	if err != nil {
		slog.Warn("mobile verification failed", "user_id", req.UserID, "error", err)
		fail(c, err)
		return
	}
	api.OK(c, http.StatusOK, "mobile verified", api.VerifyMobileResponse{
		UserID:           user.ID,
		MobileNo:         user.MobileNo,
		IsMobileVerified: user.IsMobileVerified,
	})
}

// ResendOTP handles POST /api/auth/resend-otp.
func (h *IdentityHandler) ResendOTP(c *gin.Context) {
	var req api.ResendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}
	if err := h.identity.ResendOTP(c.Request.Context(), req.UserID); err != nil {
		slog.Warn("resend OTP failed", "user_id", req.UserID, "error", err)
		fail(c, err)
		return
	}
	api.OK(c, http.StatusOK, "OTP sent", nil)
}

// ForgotPassword handles POST /api/auth/forgot-password. The ack is the same
// whether or not the email is registered.
func (h *IdentityHandler) ForgotPassword(c *gin.Context) {
	var req api.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}
	link, err := h.identity.RequestPasswordReset(c.Request.Context(), req.Email)
	if err != nil {
		fail(c, err)
		return
	}
	var data any
	if link != "" {
		data = gin.H{"reset_link": link}
	}
	api.OK(c, http.StatusOK, "if this email exists, a reset link has been sent", data)
}

// ResetPassword handles POST /api/auth/reset-password.
func (h *IdentityHandler) ResetPassword(c *gin.Context) {
	var req api.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}
	if err := h.identity.ResetPassword(c.Request.Context(), req.Email, req.NewPassword); err != nil {
		slog.Warn("password reset failed", "email", req.Email, "error", err)
		fail(c, err)
		return
	}
	api.OK(c, http.StatusOK, "password reset successful", nil)
}

// GetProfile handles GET /api/auth/profile.
func (h *IdentityHandler) GetProfile(c *gin.Context) {
	principal, ok := jwtmw.PrincipalFrom(c)
	if !ok {
		api.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	user, company, err := h.identity.GetProfile(c.Request.Context(), principal.ID)
	if err != nil {
		fail(c, err)
		return
	}
	resp := api.ProfileResponse{User: api.NewUserResponse(user)}
	if company != nil {
		companyResp := api.NewCompanyResponse(company)
		resp.Company = &companyResp
	}
	api.OK(c, http.StatusOK, "profile", resp)
}

// UpdateProfile handles PUT /api/auth/profile.
func (h *IdentityHandler) UpdateProfile(c *gin.Context) {
	principal, ok := jwtmw.PrincipalFrom(c)
	if !ok {
		api.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req api.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}
	user, err := h.identity.UpdateProfile(c.Request.Context(), principal.ID, usecase.ProfilePatch{
		FullName: req.FullName,
		Gender:   req.Gender,
		MobileNo: req.MobileNo,
	})
	if err != nil {
		slog.Warn("profile update failed", "user_id", principal.ID, "error", err)
		fail(c, err)
		return
	}
	api.OK(c, http.StatusOK, "profile updated", api.NewUserResponse(user))
}
