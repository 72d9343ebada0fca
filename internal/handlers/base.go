package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/OmPreetham/we-backend/internal/services"
	"github.com/OmPreetham/we-backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// writeError maps the service error taxonomy onto HTTP. NotFound and
// Forbidden are deterministic outcomes; anything else is logged as ours.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
	case errors.Is(err, storage.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Conflict"})
	case errors.Is(err, services.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Temporarily unavailable"})
	default:
		log.Printf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
