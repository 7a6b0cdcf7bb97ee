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
// Public booking inquiry (POST /api/booking)
// ----------------------------------------------------

type bookingInquiryPayload struct {
	CheckIn         string `json:"checkIn"`
	CheckOut        string `json:"checkOut"`
	Guests          int    `json:"guests"`
	RoomType        string `json:"roomType"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	SpecialRequests string `json:"specialRequests"`
}

func CreateBookingInquiry(c *gin.Context) {
	var payload bookingInquiryPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	if payload.CheckIn == "" || payload.CheckOut == "" || payload.Guests <= 0 ||
		payload.RoomType == "" || strings.TrimSpace(payload.Name) == "" ||
		strings.TrimSpace(payload.Email) == "" {
		utils.JSONError(c, http.StatusBadRequest, "missing required fields")
		return
	}

	inquiry := models.BookingInquiry{
		CheckInDate:     payload.CheckIn,
		CheckOutDate:    payload.CheckOut,
		Guests:          payload.Guests,
		RoomType:        payload.RoomType,
		Name:            strings.TrimSpace(payload.Name),
		Email:           strings.TrimSpace(payload.Email),
		Phone:           payload.Phone,
		SpecialRequests: payload.SpecialRequests,
	}
	if err := config.DB.Create(&inquiry).Error; err != nil {
		log.Error().Err(err).Msg("failed to save booking inquiry")
		utils.JSONError(c, http.StatusInternalServerError, "failed to submit booking inquiry")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"message":   "Booking inquiry submitted successfully",
		"bookingId": inquiry.ID,
	})
}

// ----------------------------------------------------
// Admin inbox (GET /api/admin/bookings)
// ----------------------------------------------------

func GetBookingInquiries(c *gin.Context) {
	var inquiries []models.BookingInquiry
	q := config.DB.Order("created_at DESC")
	if c.Query("processed") == "false" {
		q = q.Where("processed = ?", false)
	}
	if err := q.Find(&inquiries).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load inquiries")
		return
	}
	c.JSON(http.StatusOK, inquiries)
}

// ----------------------------------------------------
// Mark processed (PATCH /api/admin/bookings/:id/processed)
// ----------------------------------------------------

func MarkInquiryProcessed(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result := config.DB.Model(&models.BookingInquiry{}).
		Where("id = ?", id).
		Update("processed", true)
	if result.Error != nil {
		utils.JSONError(c, http.StatusInternalServerError, "update failed")
		return
	}
	if result.RowsAffected == 0 {
		utils.JSONError(c, http.StatusNotFound, "inquiry not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
