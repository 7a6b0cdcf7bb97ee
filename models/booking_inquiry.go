package models

import "time"

// BookingInquiry is a request from the public booking form. It is an
// inbox item, not a confirmed reservation.
type BookingInquiry struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CheckInDate     string `gorm:"size:20" json:"checkInDate"`
	CheckOutDate    string `gorm:"size:20" json:"checkOutDate"`
	Guests          int    `json:"guests"`
	RoomType        string `gorm:"size:100" json:"roomType"`
	Name            string `gorm:"size:255" json:"name"`
	Email           string `gorm:"size:255" json:"email"`
	Phone           string `gorm:"size:50" json:"phone,omitempty"`
	SpecialRequests string `gorm:"type:text" json:"specialRequests,omitempty"`

	Processed bool      `gorm:"default:false" json:"processed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
