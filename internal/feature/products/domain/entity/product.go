// Package entity defines the domain entities for the products feature.
package entity

import "time"

// Product represents an item in the market catalog.
type Product struct {
	// ID is the unique identifier for the product.
	ID uint `gorm:"primaryKey" json:"id"`

	// Name is the product display name.
	Name string `gorm:"size:255;not null" json:"name"`

	// Price is the product price in the smallest currency unit.
	Price int `gorm:"not null" json:"price"`

	// UnitID references the measurement unit the product is sold in.
	UnitID uint `gorm:"not null" json:"unit_id"`

	// Unit is the eagerly-loadable measurement unit relation.
	Unit *Unit `json:"unit,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
