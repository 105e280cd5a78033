// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// RoleCitizen is the role classification assigned to self-registered accounts.
const RoleCitizen = "2"

// User represents a registered account in the system.
// It contains authentication credentials and metadata for account management.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey" json:"id"`

	// Name is the display name provided at registration.
	Name string `gorm:"size:255;not null" json:"name"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null" json:"email"`

	// Password is the bcrypt hash of the user's password.
	// This should never store plaintext passwords.
	Password string `gorm:"size:255;not null" json:"-"`

	// RoleID is the role classification for the account.
	RoleID string `gorm:"size:16;not null;default:2" json:"role_id"`

	// IsCitizen marks accounts allowed to use the self-service password reset flow.
	IsCitizen bool `gorm:"not null;default:false" json:"is_citizen"`

	// Active indicates whether the account may authenticate.
	Active bool `gorm:"not null;default:true" json:"active"`

	// CitizenProfile is the sub-profile owned by the account, created
	// atomically alongside registration.
	CitizenProfile *CitizenProfile `json:"citizen_profile,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
