package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"catalogo/internal/catalog"
	"catalogo/internal/config"
	"catalogo/internal/export/excel"
	"catalogo/internal/export/pdf"
	"catalogo/internal/logger"
	"catalogo/internal/services/shopify"
)

type CatalogHandler struct {
	db     *gorm.DB
	logger *logger.Logger
	config *config.Config
	excel  *excel.Writer
	pdf    *pdf.Renderer
}

func NewCatalogHandler(db *gorm.DB, logger *logger.Logger, config *config.Config) *CatalogHandler {
	return &CatalogHandler{
		db:     db,
		logger: logger,
		config: config,
		excel:  excel.NewWriter(logger),
		pdf:    pdf.NewRenderer(logger),
	}
}

type catalogResponse struct {
	OK      bool               `json:"ok"`
	Count   int                `json:"count"`
	Groups  []catalog.Group    `json:"groups"`
	Skipped catalog.SkipReport `json:"skipped,omitempty"`
}

// JSON serves the grouped catalog as the UI consumes it.
func (h *CatalogHandler) JSON(c *gin.Context) {
	opts, ok := h.parseOptions(c)
	if !ok {
		return
	}

	result, err := h.build(c, opts)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, catalogResponse{
		OK:      true,
		Count:   len(result.Groups),
		Groups:  result.Groups,
		Skipped: result.Skipped,
	})
}

// Excel serves the catalog as a styled workbook download.
func (h *CatalogHandler) Excel(c *gin.Context) {
	opts, ok := h.parseOptions(c)
	if !ok {
		return
	}
	if c.Query("limit") == "" {
		// Exports cover the whole catalog unless the caller caps them.
		opts.Limit = catalog.MaxLimit
	}

	result, err := h.build(c, opts)
	if err != nil {
		respondError(c, err)
		return
	}

	embedImages := c.Query("embedImages") == "1"

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="catalogo_paytton.xlsx"`)
	if err := h.excel.Write(c.Request.Context(), c.Writer, result.Groups, excel.Options{EmbedImages: embedImages}); err != nil {
		h.logger.Error("Failed to write workbook: %v", err)
	}
}

// PDF serves the catalog as a printable document download.
func (h *CatalogHandler) PDF(c *gin.Context) {
	opts, ok := h.parseOptions(c)
	if !ok {
		return
	}
	if c.Query("limit") == "" {
		opts.Limit = catalog.MaxLimit
	}

	result, err := h.build(c, opts)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `attachment; filename="catalogo_paytton.pdf"`)
	if err := h.pdf.Render(c.Request.Context(), c.Writer, result.Groups); err != nil {
		h.logger.Error("Failed to render pdf: %v", err)
	}
}

// parseOptions validates the shared query parameters. A non-numeric limit
// is rejected outright; out-of-range numeric values are clamped.
func (h *CatalogHandler) parseOptions(c *gin.Context) (catalog.BuildOptions, bool) {
	opts := catalog.BuildOptions{
		Debug: c.Query("debug") == "1" || c.Query("debug") == "true",
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid limit %q: must be a number", raw)})
			return opts, false
		}
		opts.Limit = catalog.ClampLimit(limit)
	}

	return opts, true
}

func (h *CatalogHandler) build(c *gin.Context, opts catalog.BuildOptions) (*catalog.Result, error) {
	service, err := shopify.NewCatalogService(h.config, h.db, h.logger)
	if err != nil {
		return nil, err
	}
	return service.Build(c.Request.Context(), opts)
}
