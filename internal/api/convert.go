package api

import (
	"time"

	companyentity "company_backend/internal/feature/company/domain/entity"
	identityentity "company_backend/internal/feature/identity/domain/entity"
)

// NewUserResponse projects a user entity into its sanitized response form.
func NewUserResponse(u *identityentity.User) UserResponse {
	return UserResponse{
		ID:               u.ID,
		Email:            u.Email,
		FullName:         u.FullName,
		Gender:           u.Gender,
		MobileNo:         u.MobileNo,
		SignupType:       u.SignupType,
		IsEmailVerified:  u.IsEmailVerified,
		IsMobileVerified: u.IsMobileVerified,
	}
}

// NewCompanyResponse projects a company profile entity into its response form.
func NewCompanyResponse(c *companyentity.CompanyProfile) CompanyResponse {
	out := CompanyResponse{
		ID:          c.ID,
		OwnerID:     c.OwnerID,
		CompanyName: c.CompanyName,
		Address:     c.Address,
		City:        c.City,
		State:       c.State,
		Country:     c.Country,
		PostalCode:  c.PostalCode,
		Website:     c.Website,
		LogoURL:     c.LogoURL,
		BannerURL:   c.BannerURL,
		Industry:    c.Industry,
		Description: c.Description,
		SocialLinks: c.SocialLinksMap(),
		CreatedAt:   c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   c.UpdatedAt.Format(time.RFC3339),
	}
	if c.FoundedDate != nil {
		out.FoundedDate = c.FoundedDate.Format("2006-01-02")
	}
	return out
}
