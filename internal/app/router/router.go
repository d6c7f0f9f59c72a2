package router

import (
	"time"

	companyhandler "company_backend/internal/feature/company/transport/handler"
	identityhandler "company_backend/internal/feature/identity/transport/handler"
	"company_backend/internal/platform/config"
	platformhandler "company_backend/internal/platform/http/handler"
	jwtmw "company_backend/internal/platform/jwt"
	"company_backend/internal/shared/ratelimiter"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter wires all HTTP routes. The /api/auth group carries a per-IP rate
// limiter; company routes additionally require a verified email unless the
// relaxed mode is on.
func NewRouter(cfg config.Config, identity *identityhandler.IdentityHandler,
	company *companyhandler.CompanyHandler, auth *jwtmw.Middleware) *gin.Engine {
	r := gin.Default()

	if cfg.CORSOrigin != "" {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     []string{cfg.CORSOrigin},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Liveness probe, outside /api.
	r.GET("/healthz", platformhandler.Health)
	r.HEAD("/healthz", platformhandler.Health)

	api := r.Group("/api")

	limiter := ratelimiter.NewIPRateLimiter(5, 10)
	authGroup := api.Group("/auth")
	authGroup.Use(limiter.Middleware())
	{
		// No authentication required.
		authGroup.POST("/register", identity.Register)
		authGroup.POST("/login", identity.Login)
		authGroup.GET("/verify-email", identity.VerifyEmail)
		authGroup.POST("/verify-mobile", identity.VerifyMobile)
		authGroup.POST("/resend-otp", identity.ResendOTP)
		authGroup.POST("/forgot-password", identity.ForgotPassword)
		authGroup.POST("/reset-password", identity.ResetPassword)

		// Bearer token required, verified email not.
		session := authGroup.Group("")
		session.Use(auth.AuthOnly())
		{
			session.GET("/profile", identity.GetProfile)
			session.PUT("/profile", identity.UpdateProfile)
			session.POST("/logout", identity.Logout)
		}
	}

	// Company routes require a bearer token and a verified email.
	companyGroup := api.Group("/company")
	companyGroup.Use(auth.AuthRequired())
	{
		companyGroup.POST("/register", company.Register)
		companyGroup.GET("/profile", company.Get)
		companyGroup.PUT("/profile", company.Update)
		companyGroup.DELETE("/profile", company.Delete)
		companyGroup.POST("/upload-logo", company.UploadLogo)
		companyGroup.POST("/upload-banner", company.UploadBanner)
		companyGroup.DELETE("/logo", company.DeleteLogo)
		companyGroup.DELETE("/banner", company.DeleteBanner)
	}

	return r
}
