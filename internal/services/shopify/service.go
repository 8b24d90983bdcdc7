package shopify

import (
	"gorm.io/gorm"

	"catalogo/internal/catalog"
	"catalogo/internal/config"
	"catalogo/internal/logger"
)

// NewCatalogService wires a catalog service against the configured shop.
// It fails before any network call when the shop, credential or category
// map is missing.
func NewCatalogService(cfg *config.Config, db *gorm.DB, logger *logger.Logger) (*catalog.Service, error) {
	if err := cfg.ValidateShopify(); err != nil {
		return nil, err
	}

	token, err := ResolveAdminToken(cfg, db)
	if err != nil {
		return nil, err
	}

	aliases, err := cfg.CategoryMap()
	if err != nil {
		return nil, err
	}

	client := NewClient(cfg.ShopifyShop, token, cfg.ShopifyAPIVersion, logger)
	return catalog.NewService(client, catalog.Config{
		CategoryOrder: cfg.CategoryOrder,
		Aliases:       aliases,
	}), nil
}
