package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"villa-backend/models"
	"villa-backend/services"
	"villa-backend/utils"
)

type GalleryController struct {
	GallerySvc *services.GalleryService
	Media      *services.MediaStorage
}

func NewGalleryController(svc *services.GalleryService, media *services.MediaStorage) *GalleryController {
	return &GalleryController{GallerySvc: svc, Media: media}
}

// ----------------------------------------------------
// Public listing (GET /api/gallery)
// ----------------------------------------------------

func (gc *GalleryController) ListPublished(c *gin.Context) {
	assets, err := gc.GallerySvc.List(services.ListFilter{
		Category:     c.Query("category"),
		PublishState: models.PublishStatePublished,
		FeaturedOnly: c.Query("featured") == "true",
	})
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, assets)
}

// ----------------------------------------------------
// Category listing (GET /api/gallery/categories)
// ----------------------------------------------------

func (gc *GalleryController) Categories(c *gin.Context) {
	categories, err := gc.GallerySvc.Categories()
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// ----------------------------------------------------
// Admin listing including drafts/archived (GET /api/gallery/admin-list)
// ----------------------------------------------------

func (gc *GalleryController) AdminList(c *gin.Context) {
	assets, err := gc.GallerySvc.List(services.ListFilter{
		Category:     c.Query("category"),
		PublishState: c.Query("publishState"),
	})
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "assets": assets, "total": len(assets)})
}

// ----------------------------------------------------
// Multipart upload (POST /api/gallery/upload)
// ----------------------------------------------------

func (gc *GalleryController) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		// older admin console posts the field as "image"
		file, err = c.FormFile("image")
	}
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "no file provided")
		return
	}

	category := c.PostForm("category")
	if category == "" {
		category = "default"
	}
	if !models.ValidGalleryCategory(category) {
		utils.JSONError(c, http.StatusBadRequest, "unknown category "+strconv.Quote(category))
		return
	}

	relPath, mediaType, size, err := gc.Media.Save(file, category)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}

	asset, err := gc.GallerySvc.Create(services.NewAsset{
		MediaType:   mediaType,
		Category:    category,
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		AltText:     c.PostForm("alt"),
		Tags:        splitTags(c.PostForm("tags")),
		Featured:    c.PostForm("featured") == "true",
		SortOrder:   atoiDefault(c.PostForm("sortOrder"), 0),
		ImageURL:    gc.Media.PublicURL(relPath),
		FilePath:    relPath,
		FileSize:    size,
		Publish:     c.PostForm("publish") != "false", // uploads go live unless held as draft
	})
	if err != nil {
		// metadata was rejected, don't leave the file behind
		_ = gc.Media.Remove(relPath)
		utils.JSONServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "asset": asset})
}

// ----------------------------------------------------
// Create from external URL (POST /api/admin/gallery)
// ----------------------------------------------------

type createAssetPayload struct {
	ImageURL    string   `json:"imageUrl"`
	MediaType   string   `json:"mediaType"`
	Category    string   `json:"category"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	AltText     string   `json:"altText"`
	Tags        []string `json:"tags"`
	Featured    bool     `json:"featured"`
	SortOrder   int      `json:"sortOrder"`
	Publish     bool     `json:"publish"`
}

func (gc *GalleryController) CreateFromURL(c *gin.Context) {
	var payload createAssetPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}

	asset, err := gc.GallerySvc.Create(services.NewAsset{
		MediaType:   payload.MediaType,
		Category:    payload.Category,
		Title:       payload.Title,
		Description: payload.Description,
		AltText:     payload.AltText,
		Tags:        payload.Tags,
		Featured:    payload.Featured,
		SortOrder:   payload.SortOrder,
		ImageURL:    payload.ImageURL,
		Publish:     payload.Publish,
	})
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "asset": asset})
}

// ----------------------------------------------------
// Metadata edit (PATCH /api/admin/gallery/:id)
// ----------------------------------------------------

func (gc *GalleryController) Edit(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var edit services.AssetEdit
	if err := c.ShouldBindJSON(&edit); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}

	asset, err := gc.GallerySvc.Edit(id, edit)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "asset": asset})
}

// ----------------------------------------------------
// Single permanent delete (DELETE /api/admin/gallery/:id)
// ----------------------------------------------------

func (gc *GalleryController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result := gc.GallerySvc.PermanentDelete([]uint{id})
	if len(result.Failed) > 0 {
		utils.JSONError(c, http.StatusNotFound, result.Failed[0].Reason)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "asset permanently deleted"})
}

// ---------- helpers shared by the gallery controllers ----------

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

func splitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func atoiDefault(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
