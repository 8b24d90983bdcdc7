package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Missing-configuration errors. These surface before any network call is
// made and map to HTTP 400 at the API layer.
var (
	ErrMissingShop        = errors.New("SHOPIFY_SHOP is not set")
	ErrMissingCredentials = errors.New("SHOPIFY_ADMIN_TOKEN is not set and no shop is installed")
	ErrMissingCategoryMap = errors.New("CATEGORY_MAP_JSON is not set")
	ErrInvalidCategoryMap = errors.New("CATEGORY_MAP_JSON is not valid JSON")
)

type Config struct {
	// Shopify
	ShopifyShop       string
	ShopifyAdminToken string
	ShopifyAPIKey     string
	ShopifyAPISecret  string
	ShopifyAPIVersion string
	ShopifyScopes     string

	// Public base URL of this app, used for the OAuth redirect URI
	AppURL string

	// Catalog classification
	CategoryMapJSON string
	CategoryOrder   []string

	// Database
	DatabaseURL string

	// Kafka
	KafkaBrokers string

	// Export worker
	ExportDir string

	// API Configuration
	APIPort string
	APIHost string

	// Environment
	Env      string
	LogLevel string
}

func Load() (*Config, error) {
	// Load .env file
	godotenv.Load()

	return &Config{
		ShopifyShop:       getEnv("SHOPIFY_SHOP", ""),
		ShopifyAdminToken: getEnv("SHOPIFY_ADMIN_TOKEN", ""),
		ShopifyAPIKey:     getEnv("SHOPIFY_API_KEY", ""),
		ShopifyAPISecret:  getEnv("SHOPIFY_API_SECRET", ""),
		ShopifyAPIVersion: getEnv("SHOPIFY_API_VERSION", "2026-01"),
		ShopifyScopes:     getEnv("SHOPIFY_SCOPES", "read_products,read_product_metafields"),
		AppURL:            strings.TrimRight(getEnv("APP_URL", ""), "/"),
		CategoryMapJSON:   getEnv("CATEGORY_MAP_JSON", ""),
		CategoryOrder:     splitList(getEnv("CATEGORY_ORDER", "TOURING,ADVENTURE,TRAIL RALLY,THREE WHEELS,SCOOTER")),
		DatabaseURL:       getEnv("DATABASE_URL", "sqlite://catalogo.db"),
		KafkaBrokers:      getEnv("KAFKA_BROKERS", "localhost:9092"),
		ExportDir:         getEnv("EXPORT_DIR", "exports"),
		APIPort:           getEnv("API_PORT", "8080"),
		APIHost:           getEnv("API_HOST", "0.0.0.0"),
		Env:               getEnv("ENV", "development"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
	}, nil
}

// CategoryMap decodes CATEGORY_MAP_JSON into category -> alias list.
// The JSON shape is {"TOURING": ["mrf", "snake", ...], ...}.
func (c *Config) CategoryMap() (map[string][]string, error) {
	if strings.TrimSpace(c.CategoryMapJSON) == "" {
		return nil, ErrMissingCategoryMap
	}

	var raw map[string][]string
	if err := json.Unmarshal([]byte(c.CategoryMapJSON), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCategoryMap, err)
	}

	return raw, nil
}

// ValidateShopify checks the settings required before talking to the
// Shopify admin API. The admin token is checked separately because it can
// also come from an installed shop record.
func (c *Config) ValidateShopify() error {
	if c.ShopifyShop == "" {
		return ErrMissingShop
	}
	if _, err := c.CategoryMap(); err != nil {
		return err
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
