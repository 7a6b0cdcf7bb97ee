package services

import (
	"fmt"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"villa-backend/models"
)

// ---------- test helpers ----------

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:villa_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "open sqlite")

	require.NoError(t, db.AutoMigrate(
		&models.Admin{},
		&models.AdminSession{},
		&models.Room{},
		&models.RoomRate{},
		&models.GalleryAsset{},
	), "automigrate")
	return db
}

func newGallerySvc(t *testing.T) *GalleryService {
	t.Helper()
	return NewGalleryService(newTestDB(t), NewMediaStorage(t.TempDir()))
}

func mustCreate(t *testing.T, s *GalleryService, in NewAsset) models.GalleryAsset {
	t.Helper()
	if in.ImageURL == "" {
		in.ImageURL = "https://cdn.example.com/" + uuid.NewString() + ".jpg"
	}
	asset, err := s.Create(in)
	require.NoError(t, err)
	return asset
}

func listIDs(t *testing.T, s *GalleryService, f ListFilter) []uint {
	t.Helper()
	assets, err := s.List(f)
	require.NoError(t, err)
	ids := make([]uint, 0, len(assets))
	for _, a := range assets {
		ids = append(ids, a.ID)
	}
	return ids
}

// ---------- Create ----------

func TestGalleryCreate_InitialState(t *testing.T) {
	s := newGallerySvc(t)

	draft := mustCreate(t, s, NewAsset{Title: "Pool at dusk", Category: "pool-deck"})
	assert.Equal(t, models.PublishStateDraft, draft.PublishState)
	assert.Nil(t, draft.PublishedAt)

	published := mustCreate(t, s, NewAsset{Title: "Lake view", Category: "koggala-lake", Publish: true})
	assert.Equal(t, models.PublishStatePublished, published.PublishState)
	require.NotNil(t, published.PublishedAt)
}

func TestGalleryCreate_Validation(t *testing.T) {
	s := newGallerySvc(t)

	_, err := s.Create(NewAsset{Title: "x", Category: "swimming-pool", ImageURL: "https://x/y.jpg"})
	assert.True(t, IsValidation(err), "unknown category should fail validation, got %v", err)

	_, err = s.Create(NewAsset{Category: "pool-deck", ImageURL: "https://x/y.jpg"})
	assert.True(t, IsValidation(err), "empty title and alt should fail validation, got %v", err)

	_, err = s.Create(NewAsset{Title: "x", Category: "pool-deck"})
	assert.True(t, IsValidation(err), "missing file and url should fail validation, got %v", err)

	assets, err := s.List(ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, assets, "failed creates must not persist rows")
}

func TestGalleryCreate_DefaultsCategory(t *testing.T) {
	s := newGallerySvc(t)
	asset := mustCreate(t, s, NewAsset{Title: "untagged"})
	assert.Equal(t, "default", asset.Category)
	assert.Equal(t, models.MediaTypeImage, asset.MediaType)
}

// ---------- Edit ----------

func TestGalleryEdit_InvalidCategoryLeavesRowUnchanged(t *testing.T) {
	s := newGallerySvc(t)
	asset := mustCreate(t, s, NewAsset{Title: "Dining", Category: "dining-area", Publish: true})

	bad := "banquet-hall"
	_, err := s.Edit(asset.ID, AssetEdit{Category: &bad})
	assert.True(t, IsValidation(err))

	var stored models.GalleryAsset
	require.NoError(t, s.DB.First(&stored, asset.ID).Error)
	assert.Equal(t, "dining-area", stored.Category)
}

func TestGalleryEdit_NotFound(t *testing.T) {
	s := newGallerySvc(t)
	title := "x"
	_, err := s.Edit(9999, AssetEdit{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGalleryEdit_PartialUpdate(t *testing.T) {
	s := newGallerySvc(t)
	asset := mustCreate(t, s, NewAsset{
		Title: "Roof garden", Category: "roof-garden",
		Tags: []string{"sunset", "garden"}, Publish: true,
	})

	featured := true
	newTitle := "Roof garden at sunset"
	updated, err := s.Edit(asset.ID, AssetEdit{Title: &newTitle, Featured: &featured})
	require.NoError(t, err)

	assert.Equal(t, "Roof garden at sunset", updated.Title)
	assert.True(t, updated.Featured)
	assert.Equal(t, "roof-garden", updated.Category, "untouched fields stay put")
	assert.JSONEq(t, `["sunset","garden"]`, string(updated.Tags))
}

// ---------- Archive / Restore ----------

func TestArchiveRestore_RoundTripKeepsMetadata(t *testing.T) {
	s := newGallerySvc(t)
	asset := mustCreate(t, s, NewAsset{
		Title: "Family suite", Category: "family-suite",
		Tags: []string{"suite", "family"}, Publish: true,
	})

	res := s.Archive([]uint{asset.ID}, "seasonal refresh")
	assert.Equal(t, 1, res.SuccessCount())
	assert.Empty(t, res.Failed)

	var archived models.GalleryAsset
	require.NoError(t, s.DB.First(&archived, asset.ID).Error)
	assert.Equal(t, models.PublishStateArchived, archived.PublishState)
	require.NotNil(t, archived.ArchivedAt)
	require.NotNil(t, archived.UnpublishedAt)

	// archiving again is a counted no-op
	res = s.Archive([]uint{asset.ID}, "")
	assert.Equal(t, 1, res.SuccessCount())

	res = s.Restore([]uint{asset.ID})
	assert.Equal(t, 1, res.SuccessCount())

	var restored models.GalleryAsset
	require.NoError(t, s.DB.First(&restored, asset.ID).Error)
	assert.Equal(t, models.PublishStatePublished, restored.PublishState)
	assert.Nil(t, restored.ArchivedAt)
	assert.Equal(t, "Family suite", restored.Title)
	assert.Equal(t, "family-suite", restored.Category)
	assert.JSONEq(t, `["suite","family"]`, string(restored.Tags))
}

func TestArchive_UnknownIDIsPerItemFailure(t *testing.T) {
	s := newGallerySvc(t)
	a := mustCreate(t, s, NewAsset{Title: "a", Category: "pool-deck", Publish: true})

	res := s.Archive([]uint{a.ID, 4242}, "")
	assert.Equal(t, 1, res.SuccessCount())
	require.Len(t, res.Failed, 1)
	assert.Equal(t, uint(4242), res.Failed[0].ID)
}

// ---------- Bulk delete / clear ----------

func TestPermanentDelete_UnknownIDDoesNotAbortBatch(t *testing.T) {
	s := newGallerySvc(t)
	a := mustCreate(t, s, NewAsset{Title: "a", Category: "pool-deck", Publish: true})
	b := mustCreate(t, s, NewAsset{Title: "b", Category: "pool-deck", Publish: true})

	res := s.PermanentDelete([]uint{a.ID, 999999, b.ID})
	assert.ElementsMatch(t, []uint{a.ID, b.ID}, res.Succeeded)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, uint(999999), res.Failed[0].ID)

	assert.Empty(t, listIDs(t, s, ListFilter{}))
}

func TestClearGallery_UnpublishesEverything(t *testing.T) {
	s := newGallerySvc(t)
	mustCreate(t, s, NewAsset{Title: "a", Category: "pool-deck", Publish: true})
	mustCreate(t, s, NewAsset{Title: "b", Category: "lake-garden", Publish: true})
	draft := mustCreate(t, s, NewAsset{Title: "c", Category: "excursions"})

	res, err := s.ClearGallery("")
	require.NoError(t, err)
	assert.Equal(t, 2, res.SuccessCount())

	assert.Empty(t, listIDs(t, s, ListFilter{PublishState: models.PublishStatePublished}))
	assert.Len(t, listIDs(t, s, ListFilter{PublishState: models.PublishStateArchived}), 2)
	assert.Contains(t, listIDs(t, s, ListFilter{PublishState: models.PublishStateDraft}), draft.ID,
		"drafts are untouched by clear-gallery")
}

func TestClearArchive_RemovesRowsEntirely(t *testing.T) {
	s := newGallerySvc(t)
	a := mustCreate(t, s, NewAsset{Title: "a", Category: "pool-deck", Publish: true})
	keep := mustCreate(t, s, NewAsset{Title: "keep", Category: "pool-deck", Publish: true})

	s.Archive([]uint{a.ID}, "")
	res, err := s.ClearArchive()
	require.NoError(t, err)
	assert.Equal(t, 1, res.SuccessCount())

	assert.Empty(t, listIDs(t, s, ListFilter{PublishState: models.PublishStateArchived}))
	all := listIDs(t, s, ListFilter{})
	assert.NotContains(t, all, a.ID, "cleared assets are gone from the table entirely")
	assert.Contains(t, all, keep.ID)
}

// ---------- Listing ----------

func TestList_ScenarioPoolDeck(t *testing.T) {
	s := newGallerySvc(t)
	a := mustCreate(t, s, NewAsset{Title: "A", Category: "pool-deck", Publish: true})

	published := listIDs(t, s, ListFilter{Category: "pool-deck", PublishState: models.PublishStatePublished})
	assert.Contains(t, published, a.ID)

	s.Archive([]uint{a.ID}, "")

	published = listIDs(t, s, ListFilter{Category: "pool-deck", PublishState: models.PublishStatePublished})
	assert.NotContains(t, published, a.ID)
	archived := listIDs(t, s, ListFilter{PublishState: models.PublishStateArchived})
	assert.Contains(t, archived, a.ID)
}

func TestList_SortOrderWins(t *testing.T) {
	s := newGallerySvc(t)
	second := mustCreate(t, s, NewAsset{Title: "second", Category: "pool-deck", SortOrder: 2, Publish: true})
	first := mustCreate(t, s, NewAsset{Title: "first", Category: "pool-deck", SortOrder: 1, Publish: true})

	ids := listIDs(t, s, ListFilter{Category: "pool-deck"})
	require.Len(t, ids, 2)
	assert.Equal(t, []uint{first.ID, second.ID}, ids)
}

func TestCategories_CountsPublishedOnly(t *testing.T) {
	s := newGallerySvc(t)
	mustCreate(t, s, NewAsset{Title: "a", Category: "pool-deck", Publish: true})
	mustCreate(t, s, NewAsset{Title: "b", Category: "pool-deck", Publish: true})
	mustCreate(t, s, NewAsset{Title: "draft", Category: "pool-deck"})

	cats, err := s.Categories()
	require.NoError(t, err)
	require.Len(t, cats, len(models.GalleryCategories))

	byID := map[string]int64{}
	for _, c := range cats {
		byID[c.ID] = c.Count
	}
	assert.Equal(t, int64(2), byID["pool-deck"])
	assert.Equal(t, int64(0), byID["excursions"])
}
