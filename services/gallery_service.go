package services

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"villa-backend/models"
)

// GalleryService owns the publish/archive lifecycle of gallery assets.
type GalleryService struct {
	DB    *gorm.DB
	Media *MediaStorage
}

func NewGalleryService(db *gorm.DB, media *MediaStorage) *GalleryService {
	return &GalleryService{DB: db, Media: media}
}

// ListFilter narrows a gallery listing. Zero values mean "all".
type ListFilter struct {
	Category     string
	PublishState string
	FeaturedOnly bool
}

// BulkFailure is one item that could not be transitioned.
type BulkFailure struct {
	ID     uint   `json:"id"`
	Reason string `json:"reason"`
}

// BulkResult is the per-item tally of a bulk operation. Partial success
// is the expected outcome; the batch is never rolled back.
type BulkResult struct {
	Succeeded []uint        `json:"succeeded"`
	Failed    []BulkFailure `json:"failed"`
}

func (r BulkResult) SuccessCount() int { return len(r.Succeeded) }

func (r *BulkResult) ok(id uint) { r.Succeeded = append(r.Succeeded, id) }

func (r *BulkResult) fail(id uint, reason string) {
	r.Failed = append(r.Failed, BulkFailure{ID: id, Reason: reason})
}

// NewAsset carries the metadata for a freshly created asset.
type NewAsset struct {
	MediaType   string
	Category    string
	Title       string
	Description string
	AltText     string
	Tags        []string
	Featured    bool
	SortOrder   int
	ImageURL    string
	FilePath    string
	FileSize    int64
	Publish     bool // create as published instead of draft
}

// AssetEdit is a partial metadata update. Nil fields are left untouched.
type AssetEdit struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	AltText     *string   `json:"altText"`
	Category    *string   `json:"category"`
	Tags        *[]string `json:"tags"`
	Featured    *bool     `json:"featured"`
	SortOrder   *int      `json:"sortOrder"`
}

// List returns assets matching the filter, ordered by sort order then
// newest upload first. The full result set is returned; the gallery is
// small enough that pagination buys nothing.
func (s *GalleryService) List(filter ListFilter) ([]models.GalleryAsset, error) {
	q := s.DB.Model(&models.GalleryAsset{})
	if filter.Category != "" && filter.Category != "all" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.PublishState != "" {
		q = q.Where("publish_state = ?", filter.PublishState)
	}
	if filter.FeaturedOnly {
		q = q.Where("featured = ?", true)
	}

	var assets []models.GalleryAsset
	if err := q.Order("sort_order ASC, created_at DESC").Find(&assets).Error; err != nil {
		return nil, &StorageError{Op: "list gallery assets", Err: err}
	}
	return assets, nil
}

// Create validates the metadata and inserts the asset in the caller's
// requested initial state (draft or published, never archived).
func (s *GalleryService) Create(in NewAsset) (models.GalleryAsset, error) {
	if strings.TrimSpace(in.Title) == "" && strings.TrimSpace(in.AltText) == "" {
		return models.GalleryAsset{}, validationf("title or alt text is required")
	}
	if in.Category == "" {
		in.Category = "default"
	}
	if !models.ValidGalleryCategory(in.Category) {
		return models.GalleryAsset{}, validationf("unknown category %q", in.Category)
	}
	if in.MediaType == "" {
		in.MediaType = models.MediaTypeImage
	}
	if in.MediaType != models.MediaTypeImage && in.MediaType != models.MediaTypeVideo {
		return models.GalleryAsset{}, validationf("mediaType must be image or video")
	}
	if in.ImageURL == "" && in.FilePath == "" {
		return models.GalleryAsset{}, validationf("either a file or an external URL is required")
	}

	asset := models.GalleryAsset{
		MediaType:    in.MediaType,
		Category:     in.Category,
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		AltText:      strings.TrimSpace(in.AltText),
		Tags:         tagsJSON(in.Tags),
		Featured:     in.Featured,
		SortOrder:    in.SortOrder,
		PublishState: models.PublishStateDraft,
		ImageURL:     in.ImageURL,
		FilePath:     in.FilePath,
		FileSize:     in.FileSize,
	}
	if in.Publish {
		now := time.Now()
		asset.PublishState = models.PublishStatePublished
		asset.PublishedAt = &now
	}

	if err := s.DB.Create(&asset).Error; err != nil {
		return models.GalleryAsset{}, &StorageError{Op: "create gallery asset", Err: err}
	}
	log.Info().Uint("id", asset.ID).Str("category", asset.Category).
		Str("state", asset.PublishState).Msg("gallery asset created")
	return asset, nil
}

// Edit mutates the asset's descriptive metadata in place. A failed
// validation leaves the stored row untouched.
func (s *GalleryService) Edit(id uint, edit AssetEdit) (models.GalleryAsset, error) {
	var asset models.GalleryAsset
	if err := s.DB.First(&asset, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.GalleryAsset{}, ErrNotFound
		}
		return models.GalleryAsset{}, &StorageError{Op: "load gallery asset", Err: err}
	}

	if edit.Category != nil && !models.ValidGalleryCategory(*edit.Category) {
		return models.GalleryAsset{}, validationf("unknown category %q", *edit.Category)
	}
	if edit.Title != nil && strings.TrimSpace(*edit.Title) == "" {
		return models.GalleryAsset{}, validationf("title cannot be empty")
	}

	if edit.Title != nil {
		asset.Title = strings.TrimSpace(*edit.Title)
	}
	if edit.Description != nil {
		asset.Description = *edit.Description
	}
	if edit.AltText != nil {
		asset.AltText = strings.TrimSpace(*edit.AltText)
	}
	if edit.Category != nil {
		asset.Category = *edit.Category
	}
	if edit.Tags != nil {
		asset.Tags = tagsJSON(*edit.Tags)
	}
	if edit.Featured != nil {
		asset.Featured = *edit.Featured
	}
	if edit.SortOrder != nil {
		asset.SortOrder = *edit.SortOrder
	}

	if err := s.DB.Save(&asset).Error; err != nil {
		return models.GalleryAsset{}, &StorageError{Op: "update gallery asset", Err: err}
	}
	return asset, nil
}

// Archive bulk-transitions assets to archived, unpublishing them from
// the public site. Archiving an already-archived asset is a no-op
// counted as success.
func (s *GalleryService) Archive(ids []uint, reason string) BulkResult {
	if reason == "" {
		reason = "Archived by admin"
	}
	var result BulkResult
	now := time.Now()

	for _, id := range ids {
		var asset models.GalleryAsset
		if err := s.DB.First(&asset, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				result.fail(id, "asset not found")
			} else {
				result.fail(id, err.Error())
			}
			continue
		}
		if asset.PublishState == models.PublishStateArchived {
			result.ok(id)
			continue
		}

		updates := map[string]any{
			"publish_state":  models.PublishStateArchived,
			"archived_at":    now,
			"archive_reason": reason,
		}
		if asset.PublishState == models.PublishStatePublished {
			updates["unpublished_at"] = now
		}
		if err := s.DB.Model(&asset).Updates(updates).Error; err != nil {
			result.fail(id, err.Error())
			continue
		}
		result.ok(id)
	}

	log.Info().Int("succeeded", result.SuccessCount()).Int("failed", len(result.Failed)).
		Msg("gallery archive")
	return result
}

// Restore transitions archived assets back to published, clearing the
// archive stamp. Restoring a non-archived asset is a no-op success,
// mirroring the archive idempotency rule.
func (s *GalleryService) Restore(ids []uint) BulkResult {
	var result BulkResult
	now := time.Now()

	for _, id := range ids {
		var asset models.GalleryAsset
		if err := s.DB.First(&asset, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				result.fail(id, "asset not found")
			} else {
				result.fail(id, err.Error())
			}
			continue
		}
		if asset.PublishState != models.PublishStateArchived {
			result.ok(id)
			continue
		}

		updates := map[string]any{
			"publish_state":  models.PublishStatePublished,
			"published_at":   now,
			"archived_at":    nil,
			"unpublished_at": nil,
			"archive_reason": "",
		}
		if err := s.DB.Model(&asset).Updates(updates).Error; err != nil {
			result.fail(id, err.Error())
			continue
		}
		result.ok(id)
	}
	return result
}

// ClearGallery archives every currently published asset; this is the
// emergency "take everything down" operation.
func (s *GalleryService) ClearGallery(reason string) (BulkResult, error) {
	if reason == "" {
		reason = "Bulk clear gallery operation"
	}
	var ids []uint
	err := s.DB.Model(&models.GalleryAsset{}).
		Where("publish_state = ?", models.PublishStatePublished).
		Pluck("id", &ids).Error
	if err != nil {
		return BulkResult{}, &StorageError{Op: "list published assets", Err: err}
	}
	return s.Archive(ids, reason), nil
}

// PermanentDelete removes assets from the table and deletes the backing
// file when one exists. Irreversible. Unknown ids are reported as
// per-item failures and never abort the rest of the batch.
func (s *GalleryService) PermanentDelete(ids []uint) BulkResult {
	var result BulkResult

	for _, id := range ids {
		var asset models.GalleryAsset
		if err := s.DB.First(&asset, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				result.fail(id, "asset not found")
			} else {
				result.fail(id, err.Error())
			}
			continue
		}

		if err := s.DB.Delete(&models.GalleryAsset{}, id).Error; err != nil {
			result.fail(id, err.Error())
			continue
		}

		if s.Media != nil && asset.FilePath != "" {
			if err := s.Media.Remove(asset.FilePath); err != nil {
				// Row is gone; losing the file cleanup is not a caller-visible failure.
				log.Warn().Err(err).Uint("id", id).Msg("failed to remove gallery file")
			}
		}
		result.ok(id)
	}

	log.Info().Int("succeeded", result.SuccessCount()).Int("failed", len(result.Failed)).
		Msg("gallery permanent delete")
	return result
}

// ClearArchive permanently deletes every archived asset. Irreversible.
func (s *GalleryService) ClearArchive() (BulkResult, error) {
	var ids []uint
	err := s.DB.Model(&models.GalleryAsset{}).
		Where("publish_state = ?", models.PublishStateArchived).
		Pluck("id", &ids).Error
	if err != nil {
		return BulkResult{}, &StorageError{Op: "list archived assets", Err: err}
	}
	return s.PermanentDelete(ids), nil
}

// CategoryCount is one entry of the public category listing.
type CategoryCount struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// Categories returns the fixed category set with per-category published
// asset counts.
func (s *GalleryService) Categories() ([]CategoryCount, error) {
	type row struct {
		Category string
		N        int64
	}
	var rows []row
	err := s.DB.Model(&models.GalleryAsset{}).
		Select("category, COUNT(*) AS n").
		Where("publish_state = ?", models.PublishStatePublished).
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, &StorageError{Op: "count categories", Err: err}
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Category] = r.N
	}

	out := make([]CategoryCount, 0, len(models.GalleryCategories))
	for _, c := range models.GalleryCategories {
		out = append(out, CategoryCount{ID: c, Name: categoryDisplayName(c), Count: counts[c]})
	}
	return out, nil
}

func categoryDisplayName(id string) string {
	parts := strings.Split(id, "-")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}

func tagsJSON(tags []string) datatypes.JSON {
	if len(tags) == 0 {
		return nil
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}
