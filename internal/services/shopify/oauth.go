package shopify

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"catalogo/internal/config"
	"catalogo/internal/logger"
)

type OAuthService struct {
	config     *config.Config
	logger     *logger.Logger
	httpClient *http.Client
}

func NewOAuthService(cfg *config.Config, logger *logger.Logger) *OAuthService {
	return &OAuthService{
		config: cfg,
		logger: logger,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// GenerateAuthURL creates the Shopify OAuth authorization URL together
// with the state value the callback must echo back.
func (s *OAuthService) GenerateAuthURL(shopDomain, redirectURI string) (string, string, error) {
	state, err := s.generateState()
	if err != nil {
		return "", "", fmt.Errorf("failed to generate state: %w", err)
	}

	if !strings.Contains(shopDomain, ".") {
		shopDomain += ".myshopify.com"
	}

	authURL := fmt.Sprintf(
		"https://%s/admin/oauth/authorize?client_id=%s&scope=%s&redirect_uri=%s&state=%s",
		shopDomain,
		url.QueryEscape(s.config.ShopifyAPIKey),
		url.QueryEscape(s.config.ShopifyScopes),
		url.QueryEscape(redirectURI),
		url.QueryEscape(state),
	)

	return authURL, state, nil
}

// ExchangeCodeForToken exchanges the authorization code for an access token.
func (s *OAuthService) ExchangeCodeForToken(shopDomain, code string) (*TokenResponse, error) {
	if !strings.Contains(shopDomain, ".") {
		shopDomain += ".myshopify.com"
	}
	tokenURL := fmt.Sprintf("https://%s/admin/oauth/access_token", shopDomain)

	data := url.Values{}
	data.Set("client_id", s.config.ShopifyAPIKey)
	data.Set("client_secret", s.config.ShopifyAPISecret)
	data.Set("code", code)

	req, err := http.NewRequest("POST", tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token exchange failed with status: %d", resp.StatusCode)
	}

	var tokenResp TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return nil, fmt.Errorf("failed to parse token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("token exchange returned no access token")
	}

	return &tokenResp, nil
}

// VerifyCallbackHMAC checks the hmac query parameter Shopify signs the
// OAuth callback with: hex HMAC-SHA256 of the remaining query parameters,
// sorted by key, joined as k=v with "&".
func (s *OAuthService) VerifyCallbackHMAC(query url.Values) bool {
	provided := query.Get("hmac")
	if provided == "" {
		return false
	}

	keys := make([]string, 0, len(query))
	for k := range query {
		if k == "hmac" || k == "signature" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+strings.Join(query[k], ","))
	}

	mac := hmac.New(sha256.New, []byte(s.config.ShopifyAPISecret))
	mac.Write([]byte(strings.Join(pairs, "&")))
	digest := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(digest), []byte(provided))
}

// generateState generates a cryptographically secure random state
func (s *OAuthService) generateState() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
