package adapters

import "time"

// VerificationTokenModel is the GORM model for the email verification token
// fallback table, used when Redis is unavailable.
type VerificationTokenModel struct {
	Token     string    `gorm:"primaryKey;size:64"`
	UserID    uint      `gorm:"index;not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM.
func (VerificationTokenModel) TableName() string {
	return "email_verification_tokens"
}
