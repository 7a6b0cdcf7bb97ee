package models

import (
	"time"

	"gorm.io/datatypes"
)

// Publish states for gallery assets. Permanent deletion is not a state:
// deleted assets are removed from the table entirely.
const (
	PublishStateDraft     = "draft"
	PublishStatePublished = "published"
	PublishStateArchived  = "archived"
)

const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// GalleryCategories is the fixed set of gallery areas shown on the site.
var GalleryCategories = []string{
	"entire-villa",
	"family-suite",
	"group-room",
	"triple-room",
	"dining-area",
	"pool-deck",
	"lake-garden",
	"roof-garden",
	"front-garden",
	"koggala-lake",
	"excursions",
	"default",
}

// ValidGalleryCategory reports whether category is in the enumerated set.
func ValidGalleryCategory(category string) bool {
	for _, c := range GalleryCategories {
		if c == category {
			return true
		}
	}
	return false
}

// GalleryAsset is a single gallery image or video together with its
// lifecycle state. This table is the single source of truth: publish and
// archive fields are native columns, not a separate status overlay.
type GalleryAsset struct {
	ID uint `gorm:"primaryKey" json:"id"`

	MediaType string `gorm:"size:10;default:image" json:"mediaType"`
	Category  string `gorm:"size:50;index" json:"category"`

	Title       string         `gorm:"size:255" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	AltText     string         `gorm:"size:255" json:"altText"`
	Tags        datatypes.JSON `json:"tags,omitempty"`
	Featured    bool           `json:"featured"`
	SortOrder   int            `gorm:"index;default:0" json:"sortOrder"`

	PublishState  string     `gorm:"size:20;index;default:draft" json:"publishState"`
	PublishedAt   *time.Time `json:"publishedAt"`
	UnpublishedAt *time.Time `json:"unpublishedAt"`
	ArchivedAt    *time.Time `json:"archivedAt"`
	ArchiveReason string     `gorm:"size:255" json:"archiveReason,omitempty"`

	ImageURL string `gorm:"size:500" json:"imageUrl"`
	// FilePath is the on-disk path relative to the upload root; empty for
	// assets created from an external URL.
	FilePath string `gorm:"size:500" json:"-"`
	FileSize int64  `json:"fileSize,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
