package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"catalogo/internal/catalog"
	"catalogo/internal/logger"
)

// pageSize is how many products one GraphQL call asks for. It only trades
// throughput against request time; the admin API caps it at 250.
const pageSize = 50

// productsQuery selects exactly what the catalog pipeline consumes.
var productsQuery = fmt.Sprintf(`
query Products($cursor: String) {
  products(first: %d, after: $cursor) {`, pageSize) + `
    pageInfo { hasNextPage endCursor }
    nodes {
      title
      featuredImage { url }
      apps: metafield(namespace: "custom", key: "modelos_de_aplicacion") { value }
      collections(first: 50) { nodes { title } }
      variants(first: 100) { nodes { sku title price inventoryQuantity } }
    }
  }
}`

// UpstreamError reports a structured failure from the admin API. It always
// aborts the in-progress catalog build.
type UpstreamError struct {
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("shopify upstream error: %s", e.Message)
}

type Client struct {
	endpoint    string
	accessToken string
	httpClient  *http.Client
	logger      *logger.Logger
}

func NewClient(shopDomain, accessToken, apiVersion string, logger *logger.Logger) *Client {
	// Accept both "my-shop" and "my-shop.myshopify.com"
	if !strings.Contains(shopDomain, ".") {
		shopDomain += ".myshopify.com"
	}

	return &Client{
		endpoint:    fmt.Sprintf("https://%s/admin/api/%s/graphql.json", shopDomain, apiVersion),
		accessToken: accessToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// FetchProductsPage fetches one page of products. It implements
// catalog.ProductSource; an empty cursor requests the first page.
func (c *Client) FetchProductsPage(ctx context.Context, cursor string) (*catalog.Page, error) {
	variables := map[string]interface{}{"cursor": nil}
	if cursor != "" {
		variables["cursor"] = cursor
	}

	var data productsData
	if err := c.query(ctx, productsQuery, variables, &data); err != nil {
		return nil, err
	}

	if data.Products.PageInfo == nil {
		return nil, &UpstreamError{Message: "products response has no pageInfo"}
	}

	page := &catalog.Page{
		HasNext:   data.Products.PageInfo.HasNextPage,
		EndCursor: data.Products.PageInfo.EndCursor,
		Products:  make([]catalog.RawProduct, 0, len(data.Products.Nodes)),
	}

	for _, node := range data.Products.Nodes {
		page.Products = append(page.Products, toRawProduct(node))
	}

	c.logger.Debug("Fetched products page: %d products, hasNext=%v", len(page.Products), page.HasNext)
	return page, nil
}

func (c *Client) query(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-Shopify-Access-Token", c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return &UpstreamError{Message: fmt.Sprintf("API request failed: %d - %s", resp.StatusCode, string(respBody))}
	}

	var envelope graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return &UpstreamError{Message: fmt.Sprintf("unparseable response: %v", err)}
	}

	if len(envelope.Errors) > 0 {
		messages := make([]string, len(envelope.Errors))
		for i, e := range envelope.Errors {
			messages[i] = e.Message
		}
		return &UpstreamError{Message: strings.Join(messages, "; ")}
	}

	if len(envelope.Data) == 0 {
		return &UpstreamError{Message: "response has no data payload"}
	}

	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return &UpstreamError{Message: fmt.Sprintf("unparseable data payload: %v", err)}
	}

	return nil
}

func toRawProduct(node productNode) catalog.RawProduct {
	p := catalog.RawProduct{
		Title: node.Title,
	}
	if node.FeaturedImage != nil {
		p.ImageURL = node.FeaturedImage.URL
	}
	if node.Apps != nil {
		p.Applications = node.Apps.Value
	}
	for _, c := range node.Collections.Nodes {
		p.Collections = append(p.Collections, c.Title)
	}
	for _, v := range node.Variants.Nodes {
		variant := catalog.RawVariant{
			SKU:   v.SKU,
			Title: v.Title,
			Price: v.Price,
		}
		if v.InventoryQuantity != nil {
			variant.InventoryQuantity = *v.InventoryQuantity
		}
		p.Variants = append(p.Variants, variant)
	}
	return p
}
