// Package entity defines the domain entities for the company feature.
package entity

import (
	"encoding/json"
	"time"
)

// Placeholder values used when a profile is created on the fly so an image
// upload has a row to attach to.
const (
	PlaceholderName    = "Unnamed Company"
	PlaceholderField   = "To be updated"
	PlaceholderCountry = "Unknown"
)

// CompanyProfile is the single company profile a user may own.
// OwnerID and CompanyName carry unique indexes; they, not the service-level
// pre-checks, enforce the one-profile-per-owner and name-uniqueness
// invariants. CompanyName comparison is case-sensitive (byte-for-byte, plain
// unique index).
type CompanyProfile struct {
	ID      uint `gorm:"primaryKey"`
	OwnerID uint `gorm:"uniqueIndex;not null"`

	CompanyName string `gorm:"uniqueIndex;size:255;not null"`
	Address     string `gorm:"size:255;not null"`
	City        string `gorm:"size:128;not null"`
	State       string `gorm:"size:128;not null"`
	Country     string `gorm:"size:128;not null"`
	PostalCode  string `gorm:"size:20;not null"`
	Website     string `gorm:"size:255"`

	// LogoURL and BannerURL, when set, are fully-qualified URLs returned by
	// the image store.
	LogoURL   string `gorm:"size:512"`
	BannerURL string `gorm:"size:512"`

	Industry    string     `gorm:"size:128;not null"`
	FoundedDate *time.Time `gorm:""`
	Description string     `gorm:"type:text"`

	// SocialLinks holds a JSON object mapping platform name to URL. Stored
	// as an opaque blob; use SocialLinksMap / SetSocialLinks.
	SocialLinks string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM.
func (CompanyProfile) TableName() string {
	return "company_profiles"
}

// SocialLinksMap decodes the stored social links blob. A missing or
// malformed blob yields nil.
func (c *CompanyProfile) SocialLinksMap() map[string]string {
	if c.SocialLinks == "" {
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal([]byte(c.SocialLinks), &m); err != nil {
		return nil
	}
	return m
}

// SetSocialLinks serializes the mapping into the stored blob.
func (c *CompanyProfile) SetSocialLinks(m map[string]string) error {
	if len(m) == 0 {
		c.SocialLinks = ""
		return nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return err
	}
	c.SocialLinks = string(raw)
	return nil
}
