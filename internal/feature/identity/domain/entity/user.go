// Package entity defines the domain entities for the identity feature.
package entity

import "time"

// Gender enumerates the accepted gender values.
const (
	GenderMale   = "m"
	GenderFemale = "f"
	GenderOther  = "o"
)

// SignupTypeEmail is the default signup channel.
const SignupTypeEmail = "email-based"

// User represents a registered account.
// Email and MobileNo must each be unique across all users; the unique indexes
// below are the actual enforcement point, service-level pre-checks are
// early exits only.
type User struct {
	ID uint `gorm:"primaryKey"`

	// Email is stored lower-cased so lookups are case-insensitive.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password holds the bcrypt hash, never the clear text.
	Password string `gorm:"size:255;not null"`

	FullName   string `gorm:"size:255;not null"`
	Gender     string `gorm:"size:1;not null"`
	MobileNo   string `gorm:"uniqueIndex;size:20;not null"`
	SignupType string `gorm:"size:32;not null"`

	// ExternalUID is the account handle assigned by the identity provider.
	ExternalUID string `gorm:"size:128"`

	IsEmailVerified  bool `gorm:"not null;default:false"`
	IsMobileVerified bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM.
func (User) TableName() string {
	return "users"
}
