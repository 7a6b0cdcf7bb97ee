package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Room is an accommodation card shown on the public site. Price carries
// the current direct-booking rate and is refreshed by the pricing service
// whenever the reference rate for the matching room code changes.
type Room struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Code        string `gorm:"column:room_code;uniqueIndex;size:20" json:"code"`
	Name        string `gorm:"size:255" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	Price    float64        `json:"price"`
	Capacity int            `json:"capacity"`
	Size     int            `json:"size"`
	ImageURL string         `gorm:"size:500" json:"imageUrl"`
	Features datatypes.JSON `json:"features,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
