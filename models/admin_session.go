package models

import "time"

// AdminSession is a server-issued login session. The client holds only
// the opaque token; authority lives in this table and is checked on
// every admin request.
type AdminSession struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	AdminID uint   `gorm:"index" json:"admin_id"`
	Token   string `gorm:"uniqueIndex;size:128" json:"-"`

	ExpiresAt time.Time `gorm:"index" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`

	Admin Admin `gorm:"foreignKey:AdminID" json:"-"`
}
