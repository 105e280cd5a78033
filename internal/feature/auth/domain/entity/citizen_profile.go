package entity

import "time"

// CitizenProfile is the one-to-one sub-profile owned by a User.
// It is created in the same transaction as the user record.
type CitizenProfile struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`

	// Name mirrors the registration name; profile-only fields grow here.
	Name  string `gorm:"size:255;not null" json:"name"`
	Email string `gorm:"size:255;not null" json:"email"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
