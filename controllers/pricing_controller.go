package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"villa-backend/services"
	"villa-backend/utils"
)

type PricingController struct {
	PricingSvc *services.PricingService
	Fetcher    services.RateFetcher
}

func NewPricingController(svc *services.PricingService, fetcher services.RateFetcher) *PricingController {
	return &PricingController{PricingSvc: svc, Fetcher: fetcher}
}

// ----------------------------------------------------
// Read rates (GET /api/admin/pricing)
// ----------------------------------------------------

func (pc *PricingController) GetRates(c *gin.Context) {
	rates, err := pc.PricingSvc.Rates()
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "rates": rates})
}

// ----------------------------------------------------
// Manual reference-rate update (POST /api/admin/pricing)
// ----------------------------------------------------

type updateRatePayload struct {
	RoomCode      string  `json:"roomCode" binding:"required"`
	ReferenceRate float64 `json:"referenceRate"`
}

func (pc *PricingController) UpdateRate(c *gin.Context) {
	var payload updateRatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "roomCode and referenceRate are required")
		return
	}

	entry, err := pc.PricingSvc.UpdateReferenceRate(payload.RoomCode, payload.ReferenceRate)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "rate": entry})
}

// ----------------------------------------------------
// External lookup (POST /api/admin/pricing/lookup)
// ----------------------------------------------------

func (pc *PricingController) Lookup(c *gin.Context) {
	results, err := pc.PricingSvc.Lookup(c.Request.Context(), pc.Fetcher)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}

	succeeded := 0
	for _, r := range results {
		if r.Status == "success" {
			succeeded++
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"results":   results,
		"succeeded": succeeded,
		"failed":    len(results) - succeeded,
	})
}
