package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"villa-backend/config"
	"villa-backend/models"
	"villa-backend/utils"
)

// GetTestimonials serves the seeded guest reviews (GET /api/testimonials).
func GetTestimonials(c *gin.Context) {
	var testimonials []models.Testimonial
	if err := config.DB.Order("rating DESC, id ASC").Find(&testimonials).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load testimonials")
		return
	}
	c.JSON(http.StatusOK, testimonials)
}
