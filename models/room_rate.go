package models

import "time"

// RoomRate tracks the externally sourced nightly price for one listing
// and the discounted direct-booking rate derived from it.
type RoomRate struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// RoomCode matches Room.Code (KNP, KNP1, KNP3, KNP6).
	RoomCode  string `gorm:"uniqueIndex;size:20" json:"roomCode"`
	Name      string `gorm:"size:255" json:"name"`
	AirbnbURL string `gorm:"size:500" json:"airbnbUrl"`

	ReferenceRate float64 `json:"referenceRate"`
	DirectRate    float64 `json:"directRate"`
	// DiscountPct is the fraction applied on the last update (0.10 or 0.15).
	DiscountPct float64 `json:"discountPct"`

	LastUpdated time.Time `json:"lastUpdated"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
