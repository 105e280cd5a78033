package entity

import "time"

// Unit is a measurement unit products are sold in (e.g. "Libra"/"lb").
type Unit struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Value     string    `gorm:"size:16;not null" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
