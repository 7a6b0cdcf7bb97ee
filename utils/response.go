package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"villa-backend/services"
)

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "error": message})
}

// JSONServiceError maps the service-layer error taxonomy onto HTTP
// status codes. Validation messages pass through; storage and upstream
// causes are logged and replaced with a generic message.
func JSONServiceError(c *gin.Context, err error) {
	var ve *services.ValidationError
	var se *services.StorageError
	var ue *services.UpstreamError

	switch {
	case errors.As(err, &ve):
		JSONError(c, http.StatusBadRequest, ve.Msg)
	case errors.Is(err, services.ErrNotFound):
		JSONError(c, http.StatusNotFound, "not found")
	case errors.Is(err, services.ErrInvalidCredentials):
		JSONError(c, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, services.ErrSessionExpired):
		JSONError(c, http.StatusUnauthorized, "session expired or invalid")
	case errors.As(err, &ue):
		log.Error().Err(err).Msg("upstream failure")
		JSONError(c, http.StatusBadGateway, "external lookup failed")
	case errors.As(err, &se):
		log.Error().Err(err).Msg("storage failure")
		JSONError(c, http.StatusInternalServerError, "storage error")
	default:
		log.Error().Err(err).Msg("unhandled error")
		JSONError(c, http.StatusInternalServerError, "internal error")
	}
}
