package shopify

import (
	"errors"

	"gorm.io/gorm"

	"catalogo/internal/config"
	"catalogo/internal/models"
)

// ResolveAdminToken returns the admin API credential for catalog builds.
// An explicitly configured token wins; otherwise the most recently
// installed active shop from the OAuth flow is used.
func ResolveAdminToken(cfg *config.Config, db *gorm.DB) (string, error) {
	if cfg.ShopifyAdminToken != "" {
		return cfg.ShopifyAdminToken, nil
	}

	if db != nil {
		var shop models.Shop
		err := db.Where("status = ?", models.ShopStatusActive).
			Order("installed_at DESC").
			First(&shop).Error
		if err == nil {
			return shop.AccessToken, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", err
		}
	}

	return "", config.ErrMissingCredentials
}
