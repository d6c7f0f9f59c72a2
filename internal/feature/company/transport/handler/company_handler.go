// Package handler provides the HTTP handlers of the company feature.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"company_backend/internal/api"
	"company_backend/internal/feature/company/domain"
	"company_backend/internal/feature/company/domain/entity"
	"company_backend/internal/feature/company/usecase"
	jwtmw "company_backend/internal/platform/jwt"
)

// CompanyUsecase defines the company-profile operations the handler
// dispatches to. Following Go convention, the interface is defined by the
// consumer (handler), not the provider (usecase).
type CompanyUsecase interface {
	Register(ctx context.Context, ownerID uint, in usecase.RegisterInput) (*entity.CompanyProfile, error)
	Get(ctx context.Context, ownerID uint) (*entity.CompanyProfile, error)
	Update(ctx context.Context, ownerID uint, in usecase.UpdateInput) (*entity.CompanyProfile, error)
	UploadLogo(ctx context.Context, ownerID uint, img *usecase.ImageUpload) (string, error)
	UploadBanner(ctx context.Context, ownerID uint, img *usecase.ImageUpload) (string, error)
	DeleteLogo(ctx context.Context, ownerID uint) error
	DeleteBanner(ctx context.Context, ownerID uint) error
	Delete(ctx context.Context, ownerID uint) error
}

// CompanyHandler handles the HTTP requests of the company feature.
type CompanyHandler struct {
	company CompanyUsecase
}

// NewCompanyHandler creates a new instance of CompanyHandler.
func NewCompanyHandler(company CompanyUsecase) *CompanyHandler {
	return &CompanyHandler{company: company}
}

// statusFor maps company domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrProfileExists),
		errors.Is(err, domain.ErrNameTaken):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidImage),
		errors.Is(err, domain.ErrInvalidField):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrCompanyNotFound),
		errors.Is(err, domain.ErrImageNotSet):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// fail logs the real error and answers with the mapped status. Internal
// errors (including image store failures) answer with a generic message.
func fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("company request failed", "error", err, "path", c.FullPath())
		if errors.Is(err, domain.ErrStoreUnavailable) {
			api.Fail(c, status, "image upload failed, try again later")
			return
		}
		api.Fail(c, status, "something went wrong")
		return
	}
	api.Fail(c, status, err.Error())
}

// principal extracts the authenticated principal or answers 401.
func principal(c *gin.Context) (*jwtmw.Principal, bool) {
	p, ok := jwtmw.PrincipalFrom(c)
	if !ok {
		api.Fail(c, http.StatusUnauthorized, "unauthorized")
	}
	return p, ok
}

// readImage loads a multipart file header into memory. The usecase re-checks
// size and content type; the handler only guards against oversized reads.
func readImage(fh *multipart.FileHeader) (*usecase.ImageUpload, error) {
	if fh.Size > usecase.MaxImageSize {
		return nil, domain.ErrInvalidImage
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close uploaded file", "error", err)
		}
	}()
	data, err := io.ReadAll(io.LimitReader(f, usecase.MaxImageSize+1))
	if err != nil {
		return nil, err
	}
	return &usecase.ImageUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// formFile returns the named file part, nil when absent, and an error when
// more than one file was sent for the field.
func formFile(c *gin.Context, field string) (*multipart.FileHeader, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	files := form.File[field]
	switch len(files) {
	case 0:
		return nil, nil
	case 1:
		return files[0], nil
	default:
		return nil, domain.ErrInvalidImage
	}
}

// parseSocialLinks decodes the social_links form field, an optional JSON
// object mapping platform name to URL.
func parseSocialLinks(raw string) (map[string]string, error) {
	if raw == "" {
		return nil, nil
	}
	var m map[string]string
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, domain.ErrInvalidField
	}
	return m, nil
}

// optionalImage reads the named file part into an ImageUpload when present.
func optionalImage(c *gin.Context, field string) (*usecase.ImageUpload, error) {
	fh, err := formFile(c, field)
	if err != nil || fh == nil {
		return nil, err
	}
	return readImage(fh)
}

// Register handles POST /api/company/register (multipart).
func (h *CompanyHandler) Register(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var form api.CompanyForm
	if err := c.ShouldBind(&form); err != nil {
		api.Fail(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}
	if form.CompanyName == "" {
		api.Fail(c, http.StatusBadRequest, "company_name is required")
		return
	}
	social, err := parseSocialLinks(form.SocialLinks)
	if err != nil {
		api.Fail(c, http.StatusBadRequest, "social_links must be a JSON object")
		return
	}
	logo, err := optionalImage(c, "logo")
	if err != nil {
		fail(c, err)
		return
	}
	banner, err := optionalImage(c, "banner")
	if err != nil {
		fail(c, err)
		return
	}

	profile, err := h.company.Register(c.Request.Context(), p.ID, usecase.RegisterInput{
		CompanyName: form.CompanyName,
		Address:     form.Address,
		City:        form.City,
		State:       form.State,
		Country:     form.Country,
		PostalCode:  form.PostalCode,
		Website:     form.Website,
		Industry:    form.Industry,
		FoundedDate: form.FoundedDate,
		Description: form.Description,
		SocialLinks: social,
		Logo:        logo,
		Banner:      banner,
	})
	if err != nil {
		slog.Warn("company registration failed", "owner_id", p.ID, "error", err)
		fail(c, err)
		return
	}
	slog.Info("company registered", "owner_id", p.ID, "company_id", profile.ID)
	api.OK(c, http.StatusCreated, "company registered", api.NewCompanyResponse(profile))
}

// Get handles GET /api/company/profile.
func (h *CompanyHandler) Get(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	profile, err := h.company.Get(c.Request.Context(), p.ID)
	if err != nil {
		fail(c, err)
		return
	}
	api.OK(c, http.StatusOK, "company profile", api.NewCompanyResponse(profile))
}

// Update handles PUT /api/company/profile (multipart). Unknown form keys are
// dropped, not errors; only the allow-listed fields reach the store.
func (h *CompanyHandler) Update(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var form api.CompanyForm
	if err := c.ShouldBind(&form); err != nil {
		api.Fail(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}
	social, err := parseSocialLinks(form.SocialLinks)
	if err != nil {
		api.Fail(c, http.StatusBadRequest, "social_links must be a JSON object")
		return
	}
	logo, err := optionalImage(c, "logo")
	if err != nil {
		fail(c, err)
		return
	}
	banner, err := optionalImage(c, "banner")
	if err != nil {
		fail(c, err)
		return
	}

	in := usecase.UpdateInput{
		SocialLinks: social,
		Logo:        logo,
		Banner:      banner,
	}
	// Only submitted form fields become part of the patch.
	setIfPosted(c, "company_name", &in.CompanyName, form.CompanyName)
	setIfPosted(c, "address", &in.Address, form.Address)
	setIfPosted(c, "city", &in.City, form.City)
	setIfPosted(c, "state", &in.State, form.State)
	setIfPosted(c, "country", &in.Country, form.Country)
	setIfPosted(c, "postal_code", &in.PostalCode, form.PostalCode)
	setIfPosted(c, "website", &in.Website, form.Website)
	setIfPosted(c, "industry", &in.Industry, form.Industry)
	setIfPosted(c, "founded_date", &in.FoundedDate, form.FoundedDate)
	setIfPosted(c, "description", &in.Description, form.Description)

	profile, err := h.company.Update(c.Request.Context(), p.ID, in)
	if err != nil {
		slog.Warn("company update failed", "owner_id", p.ID, "error", err)
		fail(c, err)
		return
	}
	api.OK(c, http.StatusOK, "company updated", api.NewCompanyResponse(profile))
}

// setIfPosted points dst at value only when the form actually carried the
// field, so absent fields stay untouched rather than being blanked.
func setIfPosted(c *gin.Context, field string, dst **string, value string) {
	if _, posted := c.GetPostForm(field); posted {
		v := value
		*dst = &v
	}
}

// UploadLogo handles POST /api/company/upload-logo (multipart, single file).
func (h *CompanyHandler) UploadLogo(c *gin.Context) {
	h.uploadImage(c, "logo", h.company.UploadLogo)
}

// UploadBanner handles POST /api/company/upload-banner (multipart, single file).
func (h *CompanyHandler) UploadBanner(c *gin.Context) {
	h.uploadImage(c, "banner", h.company.UploadBanner)
}

func (h *CompanyHandler) uploadImage(c *gin.Context, field string,
	upload func(context.Context, uint, *usecase.ImageUpload) (string, error)) {
	p, ok := principal(c)
	if !ok {
		return
	}
	fh, err := formFile(c, field)
	if err != nil {
		fail(c, err)
		return
	}
	if fh == nil {
		api.Fail(c, http.StatusBadRequest, field+" file is required")
		return
	}
	img, err := readImage(fh)
	if err != nil {
		fail(c, err)
		return
	}
	url, err := upload(c.Request.Context(), p.ID, img)
	if err != nil {
		slog.Warn("image upload failed", "owner_id", p.ID, "field", field, "error", err)
		fail(c, err)
		return
	}
	api.OK(c, http.StatusOK, field+" uploaded", api.UploadResponse{URL: url})
}

// DeleteLogo handles DELETE /api/company/logo.
func (h *CompanyHandler) DeleteLogo(c *gin.Context) {
	h.deleteImage(c, "logo", h.company.DeleteLogo)
}

// DeleteBanner handles DELETE /api/company/banner.
func (h *CompanyHandler) DeleteBanner(c *gin.Context) {
	h.deleteImage(c, "banner", h.company.DeleteBanner)
}

func (h *CompanyHandler) deleteImage(c *gin.Context, field string, del func(context.Context, uint) error) {
	p, ok := principal(c)
	if !ok {
		return
	}
	if err := del(c.Request.Context(), p.ID); err != nil {
		fail(c, err)
		return
	}
	api.OK(c, http.StatusOK, field+" removed", nil)
}

// Delete handles DELETE /api/company/profile.
func (h *CompanyHandler) Delete(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	if err := h.company.Delete(c.Request.Context(), p.ID); err != nil {
		fail(c, err)
		return
	}
	slog.Info("company deleted", "owner_id", p.ID)
	api.OK(c, http.StatusOK, "company deleted", nil)
}
