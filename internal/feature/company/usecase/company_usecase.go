// Package usecase implements the business logic of the company feature.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"strings"
	"time"

	"company_backend/internal/feature/company/domain"
	"company_backend/internal/feature/company/domain/entity"
)

const (
	// MaxImageSize is the maximum accepted image upload size (5MB).
	MaxImageSize = 5 * 1024 * 1024

	// FolderLogos and FolderBanners scope uploaded objects in the store.
	FolderLogos   = "logos"
	FolderBanners = "banners"

	foundedDateLayout = "2006-01-02"
)

// allowedUploadTypes are the content types accepted for logo and banner
// uploads. gif is tolerated only on the delete-side extension filter.
var allowedUploadTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// imageExtensions are stripped when recovering a public id from a URL.
var imageExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// ImageUpload is an in-memory image file received from a client.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// companyUsecase orchestrates company-profile CRUD and image attach/detach.
type companyUsecase struct {
	companies CompanyRepository
	images    ImageStore
}

// NewCompanyUsecase creates a new instance of companyUsecase.
func NewCompanyUsecase(companies CompanyRepository, images ImageStore) *companyUsecase {
	return &companyUsecase{companies: companies, images: images}
}

// validateImage checks size and content type limits for an upload.
func validateImage(img *ImageUpload) error {
	if img == nil || len(img.Data) == 0 {
		return fmt.Errorf("%w: empty file", domain.ErrInvalidImage)
	}
	if len(img.Data) > MaxImageSize {
		return fmt.Errorf("%w: file exceeds %d bytes", domain.ErrInvalidImage, MaxImageSize)
	}
	if !allowedUploadTypes[strings.ToLower(img.ContentType)] {
		return fmt.Errorf("%w: unsupported content type %q", domain.ErrInvalidImage, img.ContentType)
	}
	return nil
}

// ExtractPublicID recovers the store-side deletable identifier from an image
// store URL: the final path segment with its extension stripped. Pure and
// stateless; called before every delete.
func ExtractPublicID(rawURL string) string {
	u, err := url.Parse(rawURL)
	segment := rawURL
	if err == nil {
		segment = u.Path
	}
	segment = path.Base(segment)
	if ext := strings.ToLower(path.Ext(segment)); imageExtensions[ext] {
		segment = strings.TrimSuffix(segment, path.Ext(segment))
	}
	return segment
}

// RegisterInput carries the fields of a company registration request.
type RegisterInput struct {
	CompanyName string
	Address     string
	City        string
	State       string
	Country     string
	PostalCode  string
	Website     string
	Industry    string
	FoundedDate string
	Description string
	SocialLinks map[string]string
	Logo        *ImageUpload
	Banner      *ImageUpload
}

// Register creates the owner's company profile. Images, when supplied, are
// uploaded first; an upload failure aborts the create so no partial row is
// written.
func (u *companyUsecase) Register(ctx context.Context, ownerID uint, in RegisterInput) (*entity.CompanyProfile, error) {
	if _, err := u.companies.FindByOwnerID(ctx, ownerID); err == nil {
		return nil, domain.ErrProfileExists
	}
	if taken, err := u.companies.NameExists(ctx, in.CompanyName, 0); err != nil {
		return nil, fmt.Errorf("check company name: %w", err)
	} else if taken {
		return nil, domain.ErrNameTaken
	}

	profile := &entity.CompanyProfile{
		OwnerID:     ownerID,
		CompanyName: in.CompanyName,
		Address:     in.Address,
		City:        in.City,
		State:       in.State,
		Country:     in.Country,
		PostalCode:  in.PostalCode,
		Website:     in.Website,
		Industry:    in.Industry,
		Description: in.Description,
	}
	if in.FoundedDate != "" {
		founded, err := time.Parse(foundedDateLayout, in.FoundedDate)
		if err != nil {
			return nil, fmt.Errorf("%w: founded_date must be YYYY-MM-DD", domain.ErrInvalidField)
		}
		profile.FoundedDate = &founded
	}
	if err := profile.SetSocialLinks(in.SocialLinks); err != nil {
		return nil, fmt.Errorf("encode social links: %w", err)
	}

	if in.Logo != nil {
		logoURL, err := u.uploadImage(ctx, FolderLogos, in.Logo)
		if err != nil {
			return nil, err
		}
		profile.LogoURL = logoURL
	}
	if in.Banner != nil {
		bannerURL, err := u.uploadImage(ctx, FolderBanners, in.Banner)
		if err != nil {
			return nil, err
		}
		profile.BannerURL = bannerURL
	}

	if err := u.companies.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// uploadImage validates and stores an image, translating store failures into
// the fatal ErrStoreUnavailable.
func (u *companyUsecase) uploadImage(ctx context.Context, folder string, img *ImageUpload) (string, error) {
	if err := validateImage(img); err != nil {
		return "", err
	}
	publicURL, err := u.images.Upload(ctx, folder, img.ContentType, img.Data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return publicURL, nil
}

// deleteImageByURL removes the stored object behind an image URL.
// Best-effort: failure is logged and swallowed, an orphaned old asset is an
// accepted cost.
func (u *companyUsecase) deleteImageByURL(ctx context.Context, folder, imageURL string) {
	if imageURL == "" {
		return
	}
	publicID := ExtractPublicID(imageURL)
	if err := u.images.Delete(ctx, folder, publicID); err != nil {
		slog.Warn("old image delete failed", "folder", folder, "public_id", publicID, "error", err)
	}
}

// Get retrieves the owner's company profile.
func (u *companyUsecase) Get(ctx context.Context, ownerID uint) (*entity.CompanyProfile, error) {
	return u.companies.FindByOwnerID(ctx, ownerID)
}

// UpdateInput carries the patchable fields of a company profile. Nil pointers
// leave the current value untouched; only this allow-list of fields can be
// patched.
type UpdateInput struct {
	CompanyName *string
	Address     *string
	City        *string
	State       *string
	Country     *string
	PostalCode  *string
	Website     *string
	Industry    *string
	FoundedDate *string
	Description *string
	SocialLinks map[string]string
	Logo        *ImageUpload
	Banner      *ImageUpload
}

// Update patches the owner's profile. A changed company name is re-checked
// for global uniqueness excluding this profile; new images are uploaded
// before the row is touched and the old objects are deleted best-effort
// afterwards.
func (u *companyUsecase) Update(ctx context.Context, ownerID uint, in UpdateInput) (*entity.CompanyProfile, error) {
	current, err := u.companies.FindByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if in.CompanyName != nil && *in.CompanyName != current.CompanyName {
		taken, err := u.companies.NameExists(ctx, *in.CompanyName, current.ID)
		if err != nil {
			return nil, fmt.Errorf("check company name: %w", err)
		}
		if taken {
			return nil, domain.ErrNameTaken
		}
		fields["company_name"] = *in.CompanyName
	}
	setIf(fields, "address", in.Address)
	setIf(fields, "city", in.City)
	setIf(fields, "state", in.State)
	setIf(fields, "country", in.Country)
	setIf(fields, "postal_code", in.PostalCode)
	setIf(fields, "website", in.Website)
	setIf(fields, "industry", in.Industry)
	setIf(fields, "description", in.Description)
	if in.FoundedDate != nil && *in.FoundedDate != "" {
		founded, err := time.Parse(foundedDateLayout, *in.FoundedDate)
		if err != nil {
			return nil, fmt.Errorf("%w: founded_date must be YYYY-MM-DD", domain.ErrInvalidField)
		}
		fields["founded_date"] = founded
	}
	if in.SocialLinks != nil {
		scratch := entity.CompanyProfile{}
		if err := scratch.SetSocialLinks(in.SocialLinks); err != nil {
			return nil, fmt.Errorf("encode social links: %w", err)
		}
		fields["social_links"] = scratch.SocialLinks
	}

	oldLogo, oldBanner := "", ""
	if in.Logo != nil {
		logoURL, err := u.uploadImage(ctx, FolderLogos, in.Logo)
		if err != nil {
			return nil, err
		}
		fields["logo_url"] = logoURL
		oldLogo = current.LogoURL
	}
	if in.Banner != nil {
		bannerURL, err := u.uploadImage(ctx, FolderBanners, in.Banner)
		if err != nil {
			return nil, err
		}
		fields["banner_url"] = bannerURL
		oldBanner = current.BannerURL
	}

	if len(fields) == 0 {
		return current, nil
	}
	if err := u.companies.UpdateScoped(ctx, current.ID, ownerID, fields); err != nil {
		return nil, err
	}

	if oldLogo != "" {
		u.deleteImageByURL(ctx, FolderLogos, oldLogo)
	}
	if oldBanner != "" {
		u.deleteImageByURL(ctx, FolderBanners, oldBanner)
	}

	return u.companies.FindByOwnerID(ctx, ownerID)
}

func setIf(fields map[string]any, column string, value *string) {
	if value != nil {
		fields[column] = *value
	}
}

// UploadLogo stores a new logo and attaches it to the owner's profile,
// creating a placeholder profile first when none exists yet.
func (u *companyUsecase) UploadLogo(ctx context.Context, ownerID uint, img *ImageUpload) (string, error) {
	return u.attachImage(ctx, ownerID, FolderLogos, "logo_url", img)
}

// UploadBanner stores a new banner and attaches it to the owner's profile,
// creating a placeholder profile first when none exists yet.
func (u *companyUsecase) UploadBanner(ctx context.Context, ownerID uint, img *ImageUpload) (string, error) {
	return u.attachImage(ctx, ownerID, FolderBanners, "banner_url", img)
}

func (u *companyUsecase) attachImage(ctx context.Context, ownerID uint, folder, column string, img *ImageUpload) (string, error) {
	profile, err := u.companies.FindByOwnerID(ctx, ownerID)
	if err != nil {
		profile, err = u.createPlaceholder(ctx, ownerID)
		if err != nil {
			return "", err
		}
	}

	publicURL, err := u.uploadImage(ctx, folder, img)
	if err != nil {
		return "", err
	}
	if err := u.companies.UpdateScoped(ctx, profile.ID, ownerID, map[string]any{column: publicURL}); err != nil {
		return "", err
	}

	old := profile.LogoURL
	if column == "banner_url" {
		old = profile.BannerURL
	}
	if old != "" {
		u.deleteImageByURL(ctx, folder, old)
	}
	return publicURL, nil
}

// createPlaceholder writes a minimal profile so an image has somewhere to
// attach before full registration. The name carries the owner id to keep the
// company_name unique index satisfied.
func (u *companyUsecase) createPlaceholder(ctx context.Context, ownerID uint) (*entity.CompanyProfile, error) {
	profile := &entity.CompanyProfile{
		OwnerID:     ownerID,
		CompanyName: fmt.Sprintf("%s #%d", entity.PlaceholderName, ownerID),
		Address:     entity.PlaceholderField,
		City:        entity.PlaceholderField,
		State:       entity.PlaceholderField,
		Country:     entity.PlaceholderCountry,
		PostalCode:  "00000",
		Industry:    entity.PlaceholderField,
	}
	if err := u.companies.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// DeleteLogo detaches and best-effort removes the owner's logo.
func (u *companyUsecase) DeleteLogo(ctx context.Context, ownerID uint) error {
	return u.detachImage(ctx, ownerID, FolderLogos, "logo_url")
}

// DeleteBanner detaches and best-effort removes the owner's banner.
func (u *companyUsecase) DeleteBanner(ctx context.Context, ownerID uint) error {
	return u.detachImage(ctx, ownerID, FolderBanners, "banner_url")
}

// detachImage nulls the image column regardless of whether the store-side
// delete succeeds.
func (u *companyUsecase) detachImage(ctx context.Context, ownerID uint, folder, column string) error {
	profile, err := u.companies.FindByOwnerID(ctx, ownerID)
	if err != nil {
		return err
	}
	current := profile.LogoURL
	if column == "banner_url" {
		current = profile.BannerURL
	}
	if current == "" {
		return domain.ErrImageNotSet
	}
	u.deleteImageByURL(ctx, folder, current)
	return u.companies.UpdateScoped(ctx, profile.ID, ownerID, map[string]any{column: ""})
}

// Delete removes the owner's profile and best-effort deletes both images.
// The endpoint exists for completeness; the frontend does not use it.
func (u *companyUsecase) Delete(ctx context.Context, ownerID uint) error {
	profile, err := u.companies.FindByOwnerID(ctx, ownerID)
	if err != nil {
		return err
	}
	if err := u.companies.Delete(ctx, profile.ID, ownerID); err != nil {
		return err
	}
	u.deleteImageByURL(ctx, FolderLogos, profile.LogoURL)
	u.deleteImageByURL(ctx, FolderBanners, profile.BannerURL)
	return nil
}
