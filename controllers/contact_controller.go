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
// Public contact form (POST /api/contact)
// ----------------------------------------------------

type contactPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func CreateContactMessage(c *gin.Context) {
	var payload contactPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	if strings.TrimSpace(payload.Name) == "" || strings.TrimSpace(payload.Email) == "" ||
		strings.TrimSpace(payload.Message) == "" {
		utils.JSONError(c, http.StatusBadRequest, "name, email and message are required")
		return
	}

	msg := models.ContactMessage{
		Name:    strings.TrimSpace(payload.Name),
		Email:   strings.TrimSpace(payload.Email),
		Subject: strings.TrimSpace(payload.Subject),
		Message: payload.Message,
	}
	if err := config.DB.Create(&msg).Error; err != nil {
		log.Error().Err(err).Msg("failed to save contact message")
		utils.JSONError(c, http.StatusInternalServerError, "failed to send message")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "messageId": msg.ID})
}

// ----------------------------------------------------
// Admin inbox (GET /api/admin/messages)
// ----------------------------------------------------

func GetContactMessages(c *gin.Context) {
	var messages []models.ContactMessage
	q := config.DB.Order("created_at DESC")
	if c.Query("unread") == "true" {
		q = q.Where("`read` = ?", false)
	}
	if err := q.Find(&messages).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load messages")
		return
	}
	c.JSON(http.StatusOK, messages)
}

// ----------------------------------------------------
// Mark read (PATCH /api/admin/messages/:id/read)
// ----------------------------------------------------

func MarkMessageRead(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result := config.DB.Model(&models.ContactMessage{}).
		Where("id = ?", id).
		Update("read", true)
	if result.Error != nil {
		utils.JSONError(c, http.StatusInternalServerError, "update failed")
		return
	}
	if result.RowsAffected == 0 {
		utils.JSONError(c, http.StatusNotFound, "message not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
