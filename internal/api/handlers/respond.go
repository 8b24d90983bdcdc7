package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"catalogo/internal/config"
	"catalogo/internal/services/shopify"
)

// respondError maps the error taxonomy onto status codes: missing or
// malformed configuration is the caller's problem (400), upstream API
// failures are 502, anything else is 500.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	var upstream *shopify.UpstreamError
	switch {
	case errors.Is(err, config.ErrMissingShop),
		errors.Is(err, config.ErrMissingCredentials),
		errors.Is(err, config.ErrMissingCategoryMap),
		errors.Is(err, config.ErrInvalidCategoryMap):
		status = http.StatusBadRequest
	case errors.As(err, &upstream):
		status = http.StatusBadGateway
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
