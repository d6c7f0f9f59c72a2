package api

// RegisterRequest is the body for POST /api/auth/register.
type RegisterRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	FullName   string `json:"full_name" binding:"required"`
	Gender     string `json:"gender" binding:"required,oneof=m f o"`
	MobileNo   string `json:"mobile_no" binding:"required"`
	SignupType string `json:"signup_type"`
}

// RegisterResponse carries the identifiers a client needs to proceed to
// OTP entry after registration.
type RegisterResponse struct {
	UserID      uint   `json:"user_id"`
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	MobileNo    string `json:"mobile_no"`
	ExternalUID string `json:"external_uid"`
}

// LoginRequest is the body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the session token and a sanitized user projection.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse is the sanitized user projection. It never carries the
// password hash.
type UserResponse struct {
	ID               uint   `json:"id"`
	Email            string `json:"email"`
	FullName         string `json:"full_name"`
	Gender           string `json:"gender"`
	MobileNo         string `json:"mobile_no"`
	SignupType       string `json:"signup_type"`
	IsEmailVerified  bool   `json:"is_email_verified"`
	IsMobileVerified bool   `json:"is_mobile_verified"`
}

// VerifyMobileRequest is the body for POST /api/auth/verify-mobile.
type VerifyMobileRequest struct {
	UserID uint   `json:"user_id" binding:"required"`
	OTP    string `json:"otp" binding:"required"`
}

// VerifyMobileResponse reports the outcome of a mobile verification.
type VerifyMobileResponse struct {
	UserID           uint   `json:"user_id"`
	MobileNo         string `json:"mobile_no"`
	IsMobileVerified bool   `json:"is_mobile_verified"`
}

// ResendOTPRequest is the body for POST /api/auth/resend-otp.
type ResendOTPRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

// ForgotPasswordRequest is the body for POST /api/auth/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest is the body for POST /api/auth/reset-password.
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// UpdateProfileRequest is the body for PUT /api/auth/profile. All fields are
// optional; at least one recognized field must be present.
type UpdateProfileRequest struct {
	FullName *string `json:"full_name"`
	Gender   *string `json:"gender" binding:"omitempty,oneof=m f o"`
	MobileNo *string `json:"mobile_no"`
}

// ProfileResponse joins the user with its company profile, if any.
type ProfileResponse struct {
	User    UserResponse     `json:"user"`
	Company *CompanyResponse `json:"company"`
}
