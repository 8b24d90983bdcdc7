// Package catalog turns raw Shopify product records into the nested
// category -> tread -> SKU structure served by the catalog endpoints.
// Everything in here is request-scoped and free of I/O; fetching lives in
// services/shopify and rendering in api and export.
package catalog

import "context"

// RawProduct is one product as returned by the admin API, reduced to the
// fields the pipeline consumes.
type RawProduct struct {
	Title        string
	ImageURL     string
	Applications string
	Collections  []string
	Variants     []RawVariant
}

// RawVariant is a single sellable variant. Price is the tax-inclusive
// amount exactly as the API sends it (a decimal string, possibly empty).
type RawVariant struct {
	SKU               string
	Title             string
	Price             string
	InventoryQuantity int
}

// Group aggregates every SKU sharing a (categoria, grabado) pair.
type Group struct {
	Categoria string `json:"categoria"`
	Grabado   string `json:"grabado"`
	Imagen    string `json:"imagen"`
	Apps      string `json:"apps"`
	Items     []Item `json:"items"`
}

// Item is one SKU row with derived pricing.
type Item struct {
	SKU          string  `json:"sku"`
	Medida       string  `json:"medida,omitempty"`
	Inventario   int     `json:"inventario"`
	PrecioSinIVA float64 `json:"precioCatalogoSinIva"`
	PrecioConIVA float64 `json:"precioCatalogoConIva"`
	Precio35     float64 `json:"precio35"`
	Precio30     float64 `json:"precio30"`
	Precio25     float64 `json:"precio25"`
	Precio20     float64 `json:"precio20"`
	Apps         string  `json:"apps,omitempty"`
}

// Config is the immutable classification setup for one build.
type Config struct {
	// CategoryOrder is the canonical display order; it is also the
	// priority order for category resolution.
	CategoryOrder []string
	// Aliases maps a canonical category name to the collection titles
	// (case/accent-insensitive) that identify it and its treads.
	Aliases map[string][]string
}

// Page is one page of products from the remote API.
type Page struct {
	Products  []RawProduct
	HasNext   bool
	EndCursor string
}

// ProductSource fetches one page per call. An empty cursor requests the
// first page; the caller passes the previous page's EndCursor to advance.
type ProductSource interface {
	FetchProductsPage(ctx context.Context, cursor string) (*Page, error)
}
