package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"catalogo/internal/events"
	"catalogo/internal/logger"
)

var defaultFormats = []string{"xlsx", "pdf"}

type ExportHandler struct {
	logger    *logger.Logger
	publisher *events.Publisher
}

func NewExportHandler(logger *logger.Logger, publisher *events.Publisher) *ExportHandler {
	return &ExportHandler{
		logger:    logger,
		publisher: publisher,
	}
}

// Trigger queues an asynchronous regeneration of the export files. The
// worker picks the request up from kafka.
func (h *ExportHandler) Trigger(c *gin.Context) {
	var request struct {
		Formats []string `json:"formats"`
	}
	// An empty body is fine, it means "all formats".
	_ = c.ShouldBindJSON(&request)
	if len(request.Formats) == 0 {
		request.Formats = defaultFormats
	}

	for _, f := range request.Formats {
		if f != "xlsx" && f != "pdf" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown export format: " + f})
			return
		}
	}

	if err := h.publisher.PublishExportRequest(c.Request.Context(), request.Formats); err != nil {
		h.logger.Error("Failed to publish export request: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to queue export"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message": "Export queued",
		"formats": request.Formats,
	})
}
