// Package pdf renders the grouped catalog as an A4 document: one section
// per category, one card per tread with its image and price table.
package pdf

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"catalogo/internal/catalog"
	"catalogo/internal/logger"
)

const documentTitle = "Catálogo llantas Paytton Tires"

var tableHeaders = []string{"SKU", "Medida", "INV", "Precio", "Precio + IVA", "35% Dcto"}

// column widths in mm; the page body is ~182mm wide inside the margins.
var columnWidths = []float64{36, 30, 16, 33, 34, 33}

// Catalog prices are whole COP amounts; render them grouped the Colombian
// way ($ 119.000).
var money = message.NewPrinter(language.MustParse("es-CO"))

type Renderer struct {
	logger     *logger.Logger
	httpClient *http.Client
}

func NewRenderer(logger *logger.Logger) *Renderer {
	return &Renderer{
		logger: logger,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Render writes the catalog document to out.
func (r *Renderer) Render(ctx context.Context, out io.Writer, groups []catalog.Group) error {
	doc := gofpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.SetTitle(documentTitle, true)
	doc.SetAutoPageBreak(true, 14)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 10, tr(documentTitle), "", 1, "L", false, 0, "")

	currentCategory := ""
	for i, g := range groups {
		if g.Categoria != currentCategory {
			currentCategory = g.Categoria
			doc.Ln(4)
			doc.SetFont("Helvetica", "B", 13)
			doc.CellFormat(0, 8, tr(g.Categoria), "", 1, "L", false, 0, "")
		}

		r.renderGroup(ctx, doc, tr, g, i)
	}

	if err := doc.Output(out); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return nil
}

func (r *Renderer) renderGroup(ctx context.Context, doc *gofpdf.Fpdf, tr func(string) string, g catalog.Group, index int) {
	doc.Ln(2)
	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(0, 7, tr(g.Grabado), "", 1, "L", false, 0, "")

	if g.Imagen != "" {
		r.placeImage(ctx, doc, g.Imagen, index)
	}

	doc.SetFont("Helvetica", "B", 9)
	doc.SetFillColor(245, 245, 245)
	for i, h := range tableHeaders {
		doc.CellFormat(columnWidths[i], 6, tr(h), "1", 0, "L", true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", 9)
	for _, item := range g.Items {
		cells := []string{
			item.SKU,
			orDash(item.Medida),
			fmt.Sprintf("%d", item.Inventario),
			formatMoney(item.PrecioSinIVA),
			formatMoney(item.PrecioConIVA),
			formatMoney(item.Precio35),
		}
		for i, v := range cells {
			align := "R"
			if i < 2 {
				align = "L"
			}
			doc.CellFormat(columnWidths[i], 6, tr(v), "1", 0, align, false, 0, "")
		}
		doc.Ln(-1)
	}

	if g.Apps != "" {
		doc.SetFont("Helvetica", "", 8)
		doc.SetTextColor(68, 68, 68)
		doc.MultiCell(0, 4, tr("Aplicaciones: "+g.Apps), "", "L", false)
		doc.SetTextColor(0, 0, 0)
	}
	doc.Ln(3)
}

// placeImage embeds the group image at a fixed 40mm width. Download or
// decode failures are logged and the card renders without its picture.
func (r *Renderer) placeImage(ctx context.Context, doc *gofpdf.Fpdf, imageURL string, index int) {
	data, imageType, err := r.fetchImage(ctx, imageURL)
	if err != nil {
		r.logger.Warn("Skipping pdf image %s: %v", imageURL, err)
		return
	}

	name := fmt.Sprintf("group-%d", index)
	opts := gofpdf.ImageOptions{ImageType: imageType}
	doc.RegisterImageOptionsReader(name, opts, strings.NewReader(string(data)))
	if doc.Err() {
		r.logger.Warn("Skipping pdf image %s: %v", imageURL, doc.Error())
		doc.ClearError()
		return
	}

	x := doc.GetX()
	doc.ImageOptions(name, x, doc.GetY(), 40, 0, true, opts, 0, "")
}

func (r *Renderer) fetchImage(ctx context.Context, imageURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", imageURL, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := r.httpClient.Do(req)
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

	imageType := "PNG"
	lower := strings.ToLower(imageURL)
	if strings.Contains(lower, ".jpg") || strings.Contains(lower, ".jpeg") {
		imageType = "JPG"
	}
	return data, imageType, nil
}

func formatMoney(v float64) string {
	return money.Sprintf("$ %.0f", v)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
