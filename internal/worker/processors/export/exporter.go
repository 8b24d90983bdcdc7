package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/gorm"

	"catalogo/internal/catalog"
	"catalogo/internal/config"
	"catalogo/internal/export/excel"
	"catalogo/internal/export/pdf"
	"catalogo/internal/logger"
	"catalogo/internal/services/shopify"
)

// Exporter rebuilds the catalog and writes the requested export files to
// the configured export directory.
type Exporter struct {
	config *config.Config
	logger *logger.Logger
	db     *gorm.DB
	excel  *excel.Writer
	pdf    *pdf.Renderer
}

func New(cfg *config.Config, logger *logger.Logger, db *gorm.DB) *Exporter {
	return &Exporter{
		config: cfg,
		logger: logger,
		db:     db,
		excel:  excel.NewWriter(logger),
		pdf:    pdf.NewRenderer(logger),
	}
}

func (e *Exporter) Export(ctx context.Context, formats []string) error {
	service, err := shopify.NewCatalogService(e.config, e.db, e.logger)
	if err != nil {
		return err
	}

	result, err := service.Build(ctx, catalog.BuildOptions{Limit: catalog.MaxLimit})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(e.config.ExportDir, 0o755); err != nil {
		return fmt.Errorf("failed to create export dir: %w", err)
	}

	for _, format := range formats {
		path := filepath.Join(e.config.ExportDir, "catalogo_paytton."+format)

		switch format {
		case "xlsx":
			err = e.writeFile(path, func(f *os.File) error {
				return e.excel.Write(ctx, f, result.Groups, excel.Options{EmbedImages: true})
			})
		case "pdf":
			err = e.writeFile(path, func(f *os.File) error {
				return e.pdf.Render(ctx, f, result.Groups)
			})
		default:
			e.logger.Warn("Skipping unknown export format: %s", format)
			continue
		}

		if err != nil {
			return fmt.Errorf("failed to export %s: %w", format, err)
		}
		e.logger.Info("Export written: %s (%d groups)", path, len(result.Groups))
	}

	return nil
}

func (e *Exporter) writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
