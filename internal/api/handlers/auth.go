package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"catalogo/internal/config"
	"catalogo/internal/logger"
	"catalogo/internal/models"
	"catalogo/internal/services/shopify"
)

const stateCookie = "shopify_oauth_state"

type AuthHandler struct {
	db           *gorm.DB
	logger       *logger.Logger
	config       *config.Config
	oauthService *shopify.OAuthService
}

func NewAuthHandler(db *gorm.DB, logger *logger.Logger, config *config.Config) *AuthHandler {
	return &AuthHandler{
		db:           db,
		logger:       logger,
		config:       config,
		oauthService: shopify.NewOAuthService(config, logger),
	}
}

// Start redirects the merchant to the Shopify authorization page, pinning
// the OAuth state in a short-lived cookie.
func (h *AuthHandler) Start(c *gin.Context) {
	if h.config.ShopifyShop == "" {
		respondError(c, config.ErrMissingShop)
		return
	}
	if h.config.ShopifyAPIKey == "" || h.config.AppURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "SHOPIFY_API_KEY and APP_URL must be set for the install flow"})
		return
	}

	redirectURI := h.config.AppURL + "/api/v1/auth/callback"
	authURL, state, err := h.oauthService.GenerateAuthURL(h.config.ShopifyShop, redirectURI)
	if err != nil {
		h.logger.Error("Failed to generate auth URL: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate authorization URL"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookie, state, 600, "/", "", true, true)
	c.Redirect(http.StatusFound, authURL)
}

// Callback verifies the state cookie and the HMAC signature, exchanges
// the code for an access token and stores the installed shop.
func (h *AuthHandler) Callback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	shop := c.DefaultQuery("shop", h.config.ShopifyShop)

	cookieState, err := c.Cookie(stateCookie)
	if err != nil || cookieState == "" || cookieState != state {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid OAuth state, restart the install at /api/v1/auth/start"})
		return
	}

	if !h.oauthService.VerifyCallbackHMAC(c.Request.URL.Query()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid HMAC signature, restart the install at /api/v1/auth/start"})
		return
	}

	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing authorization code"})
		return
	}

	tokenResp, err := h.oauthService.ExchangeCodeForToken(shop, code)
	if err != nil {
		h.logger.Error("Failed to exchange code for token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to exchange authorization code"})
		return
	}

	record := models.Shop{
		ShopDomain:  shop,
		AccessToken: tokenResp.AccessToken,
		Scope:       tokenResp.Scope,
		Status:      models.ShopStatusActive,
		InstalledAt: time.Now(),
	}

	var existing models.Shop
	err = h.db.Where("shop_domain = ?", shop).First(&existing).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		err = h.db.Create(&record).Error
	case err == nil:
		record.ID = existing.ID
		err = h.db.Save(&record).Error
	}
	if err != nil {
		h.logger.Error("Failed to save shop: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save shop credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "App installed, catalog endpoints are ready",
		"shop_domain": shop,
	})
}
