// Package entity defines the domain entities for the passwordreset feature.
package entity

import "time"

// PasswordReset is one outstanding password-reset ticket.
// At most one ticket exists per email; issuing a new one overwrites the
// previous ticket (upsert keyed by email). A ticket is valid while
// now <= UpdatedAt + TTL and is deleted on consumption or on first
// access after expiry.
type PasswordReset struct {
	ID uint `gorm:"primaryKey" json:"-"`

	// Email identifies the owning account. Unique: one outstanding ticket per email.
	Email string `gorm:"uniqueIndex;size:255;not null" json:"email"`

	// Token is the high-entropy opaque reset token sent to the account.
	Token string `gorm:"index;size:100;not null" json:"token"`

	// ResetCode is the 6-digit numeric confirmation code (100000-999999).
	ResetCode int `gorm:"not null" json:"-"`

	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt marks the start of the validity window.
	UpdatedAt time.Time `json:"updated_at"`
}
