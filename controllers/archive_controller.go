package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"villa-backend/middleware"
	"villa-backend/models"
	"villa-backend/services"
	"villa-backend/utils"
)

// ArchiveController serves the bulk lifecycle operations of the admin
// console: archive, restore, clear-gallery and permanent-delete.
type ArchiveController struct {
	GallerySvc *services.GalleryService
}

func NewArchiveController(svc *services.GalleryService) *ArchiveController {
	return &ArchiveController{GallerySvc: svc}
}

// ----------------------------------------------------
// Archived listing (GET /api/gallery/archive)
// ----------------------------------------------------

func (ac *ArchiveController) ListArchived(c *gin.Context) {
	assets, err := ac.GallerySvc.List(services.ListFilter{
		PublishState: models.PublishStateArchived,
	})
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "archivedItems": assets, "total": len(assets)})
}

// ----------------------------------------------------
// Bulk operations (POST /api/gallery/archive)
// ----------------------------------------------------

type bulkActionPayload struct {
	Action   string `json:"action" binding:"required"`
	ImageIDs []uint `json:"imageIds"`
	Reason   string `json:"reason"`
}

func (ac *ArchiveController) BulkAction(c *gin.Context) {
	var payload bulkActionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "action and imageIds are required")
		return
	}

	if admin, ok := c.Get(middleware.ContextAdminKey); ok {
		if a, ok := admin.(models.Admin); ok {
			log.Info().Str("admin", a.Username).Str("action", payload.Action).
				Int("items", len(payload.ImageIDs)).Msg("bulk gallery operation")
		}
	}

	var (
		result services.BulkResult
		err    error
	)
	switch payload.Action {
	case "archive":
		result = ac.GallerySvc.Archive(payload.ImageIDs, payload.Reason)
	case "restore":
		result = ac.GallerySvc.Restore(payload.ImageIDs)
	case "clear-gallery":
		result, err = ac.GallerySvc.ClearGallery(payload.Reason)
	case "permanent-delete":
		result = ac.GallerySvc.PermanentDelete(payload.ImageIDs)
	default:
		utils.JSONError(c, http.StatusBadRequest, "unknown action: "+payload.Action)
		return
	}
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"action":       payload.Action,
		"successCount": result.SuccessCount(),
		"succeeded":    result.Succeeded,
		"failed":       result.Failed,
	})
}

// ----------------------------------------------------
// Clear archive (DELETE /api/gallery/archive)
// ----------------------------------------------------

func (ac *ArchiveController) ClearArchive(c *gin.Context) {
	result, err := ac.GallerySvc.ClearArchive()
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "archive cleared",
		"deletedCount": result.SuccessCount(),
		"failed":       result.Failed,
	})
}
