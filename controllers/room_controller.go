package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"villa-backend/config"
	"villa-backend/models"
	"villa-backend/utils"
)

// ----------------------------------------------------
// Public room cards (GET /api/rooms)
// ----------------------------------------------------

func GetRooms(c *gin.Context) {
	var rooms []models.Room
	if err := config.DB.Order("price DESC").Find(&rooms).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load rooms")
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// ----------------------------------------------------
// Create room (POST /api/admin/rooms)
// ----------------------------------------------------

func CreateRoom(c *gin.Context) {
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}

	room.Code = strings.TrimSpace(strings.ToUpper(room.Code))
	room.Name = strings.TrimSpace(room.Name)
	if room.Code == "" || room.Name == "" {
		utils.JSONError(c, http.StatusBadRequest, "room code and name are required")
		return
	}

	if err := config.DB.Create(&room).Error; err != nil {
		if isDuplicateKey(err) {
			utils.JSONError(c, http.StatusConflict, "room code '"+room.Code+"' already exists")
			return
		}
		log.Error().Err(err).Msg("failed to create room")
		utils.JSONError(c, http.StatusInternalServerError, "database error")
		return
	}
	c.JSON(http.StatusCreated, room)
}

// ----------------------------------------------------
// Update room (PATCH /api/admin/rooms/:id)
// ----------------------------------------------------

func UpdateRoom(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var updateData map[string]interface{}
	if err := c.ShouldBindJSON(&updateData); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}

	// immutable fields
	delete(updateData, "id")
	delete(updateData, "created_at")
	delete(updateData, "updated_at")
	delete(updateData, "deleted_at")

	result := config.DB.Model(&models.Room{}).Where("id = ?", id).Updates(updateData)
	if result.Error != nil {
		log.Error().Err(result.Error).Uint("id", id).Msg("room update failed")
		utils.JSONError(c, http.StatusInternalServerError, "update failed")
		return
	}
	if result.RowsAffected == 0 {
		utils.JSONError(c, http.StatusNotFound, "room not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "room updated"})
}

// ----------------------------------------------------
// Delete room (DELETE /api/admin/rooms/:id)
// ----------------------------------------------------

func DeleteRoom(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result := config.DB.Where("id = ?", id).Delete(&models.Room{})
	if result.Error != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete room")
		return
	}
	if result.RowsAffected == 0 {
		utils.JSONError(c, http.StatusNotFound, "room not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "room deleted"})
}
