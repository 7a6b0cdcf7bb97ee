package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"villa-backend/config"
	"villa-backend/models"
	"villa-backend/utils"
)

type newsletterPayload struct {
	Email string `json:"email"`
}

// isDuplicateKey detects a unique-index violation from MySQL (error
// 1062) or from the SQLite driver used in tests.
func isDuplicateKey(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == 1062 {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// ----------------------------------------------------
// Subscribe (POST /api/newsletter)
// ----------------------------------------------------

func SubscribeNewsletter(c *gin.Context) {
	var payload newsletterPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	if email == "" || !strings.Contains(email, "@") {
		utils.JSONError(c, http.StatusBadRequest, "a valid email is required")
		return
	}

	// Reactivate a previously unsubscribed address instead of conflicting.
	var existing models.NewsletterSubscriber
	err := config.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		if existing.Active {
			utils.JSONError(c, http.StatusConflict, "email is already subscribed")
			return
		}
		if err := config.DB.Model(&existing).Update("active", true).Error; err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "subscription failed")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "subscription reactivated"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.JSONError(c, http.StatusInternalServerError, "subscription failed")
		return
	}

	sub := models.NewsletterSubscriber{Email: email, Active: true}
	if err := config.DB.Create(&sub).Error; err != nil {
		if isDuplicateKey(err) {
			utils.JSONError(c, http.StatusConflict, "email is already subscribed")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "subscription failed")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "subscribed"})
}

// ----------------------------------------------------
// Unsubscribe (DELETE /api/newsletter)
// ----------------------------------------------------

func UnsubscribeNewsletter(c *gin.Context) {
	email := strings.ToLower(strings.TrimSpace(c.Query("email")))
	if email == "" {
		var payload newsletterPayload
		if err := c.ShouldBindJSON(&payload); err == nil {
			email = strings.ToLower(strings.TrimSpace(payload.Email))
		}
	}
	if email == "" {
		utils.JSONError(c, http.StatusBadRequest, "email is required")
		return
	}

	result := config.DB.Model(&models.NewsletterSubscriber{}).
		Where("email = ?", email).
		Update("active", false)
	if result.Error != nil {
		utils.JSONError(c, http.StatusInternalServerError, "unsubscribe failed")
		return
	}
	if result.RowsAffected == 0 {
		utils.JSONError(c, http.StatusNotFound, "email is not subscribed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "unsubscribed"})
}
