package models

type Testimonial struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Rating         int    `json:"rating"`
	Comment        string `gorm:"type:text" json:"comment"`
	GuestName      string `gorm:"size:255" json:"guestName"`
	GuestCountry   string `gorm:"size:100" json:"guestCountry"`
	AvatarInitials string `gorm:"size:10" json:"avatarInitials"`
}
