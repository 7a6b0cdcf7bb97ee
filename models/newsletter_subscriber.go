package models

import "time"

type NewsletterSubscriber struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Email  string `gorm:"uniqueIndex;size:255" json:"email"`
	Active bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
