// Package excel renders the grouped catalog as a styled CATALOGO
// worksheet, one row per SKU.
package excel

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"catalogo/internal/catalog"
	"catalogo/internal/logger"
)

const sheetName = "CATALOGO"

var headers = []interface{}{
	"CATEGORÍA", "IMAGEN", "NOMBRE DE LA LLANTA", "REF INTERNA",
	"MEDIDA", "PRECIO + IVA", "PRECIO SIN IVA", "APLICACIONES",
}

var columnWidths = []float64{18, 18, 34, 18, 18, 16, 18, 60}

// Options control one workbook render.
type Options struct {
	// EmbedImages downloads each group's image and anchors it in the
	// IMAGEN column. Slow on large catalogs, so off by default.
	EmbedImages bool
}

type Writer struct {
	logger     *logger.Logger
	httpClient *http.Client
}

func NewWriter(logger *logger.Logger) *Writer {
	return &Writer{
		logger: logger,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Write renders the workbook into out.
func (w *Writer) Write(ctx context.Context, out io.Writer, groups []catalog.Group, opts Options) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetName)

	for i, width := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("failed to build column name: %w", err)
		}
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	if err := w.writeHeader(f); err != nil {
		return err
	}

	cellStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
		Border: []excelize.Border{
			{Type: "top", Color: "333333", Style: 1},
			{Type: "left", Color: "333333", Style: 1},
			{Type: "bottom", Color: "333333", Style: 1},
			{Type: "right", Color: "333333", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create cell style: %w", err)
	}

	row := 2
	for _, g := range groups {
		for _, item := range g.Items {
			values := []interface{}{
				g.Categoria, g.Imagen, g.Grabado, item.SKU,
				item.Medida, item.PrecioConIVA, item.PrecioSinIVA, g.Apps,
			}

			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return fmt.Errorf("failed to build cell name: %w", err)
			}
			if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
				return fmt.Errorf("failed to write row %d: %w", row, err)
			}

			last, _ := excelize.CoordinatesToCellName(len(values), row)
			if err := f.SetCellStyle(sheetName, cell, last, cellStyle); err != nil {
				return fmt.Errorf("failed to style row %d: %w", row, err)
			}
			if err := f.SetRowHeight(sheetName, row, 70); err != nil {
				return fmt.Errorf("failed to set row height: %w", err)
			}

			if opts.EmbedImages && strings.HasPrefix(g.Imagen, "http") {
				w.embedImage(ctx, f, g.Imagen, row)
			}

			row++
		}
	}

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func (w *Writer) writeHeader(f *excelize.File) error {
	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	// Black header with yellow text, matching the printed catalog.
	style, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"000000"}, Pattern: 1},
		Font: &excelize.Font{Bold: true, Color: "FFD400"},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
			WrapText:   true,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(sheetName, "A1", last, style); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	return f.SetRowHeight(sheetName, 1, 22)
}

// embedImage anchors the group image over the IMAGEN cell. Failures are
// logged and skipped; a missing picture never fails the export.
func (w *Writer) embedImage(ctx context.Context, f *excelize.File, imageURL string, row int) {
	data, ext, err := w.fetchImage(ctx, imageURL)
	if err != nil {
		w.logger.Warn("Skipping image embed for row %d: %v", row, err)
		return
	}

	cell, _ := excelize.CoordinatesToCellName(2, row)
	err = f.AddPictureFromBytes(sheetName, cell, &excelize.Picture{
		Extension: ext,
		File:      data,
		Format:    &excelize.GraphicOptions{ScaleX: 0.5, ScaleY: 0.5},
	})
	if err != nil {
		w.logger.Warn("Skipping image embed for row %d: %v", row, err)
	}
}

func (w *Writer) fetchImage(ctx context.Context, imageURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", imageURL, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("image request failed: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}

	ext := ".png"
	lower := strings.ToLower(imageURL)
	if strings.Contains(lower, ".jpg") || strings.Contains(lower, ".jpeg") {
		ext = ".jpg"
	}
	return data, ext, nil
}
