package shopify

import "encoding/json"

// graphqlRequest is the POST body sent to the admin GraphQL endpoint.
type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

// graphqlResponse is the envelope of every GraphQL reply. A populated
// Errors slice or a missing Data payload means the page is unusable.
type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

type graphqlError struct {
	Message string `json:"message"`
}

// productsData mirrors the shape of the products page query.
type productsData struct {
	Products struct {
		PageInfo *pageInfo     `json:"pageInfo"`
		Nodes    []productNode `json:"nodes"`
	} `json:"products"`
}

type pageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

type productNode struct {
	Title         string `json:"title"`
	FeaturedImage *struct {
		URL string `json:"url"`
	} `json:"featuredImage"`
	Apps *struct {
		Value string `json:"value"`
	} `json:"apps"`
	Collections struct {
		Nodes []struct {
			Title string `json:"title"`
		} `json:"nodes"`
	} `json:"collections"`
	Variants struct {
		Nodes []variantNode `json:"nodes"`
	} `json:"variants"`
}

type variantNode struct {
	SKU               string `json:"sku"`
	Title             string `json:"title"`
	Price             string `json:"price"`
	InventoryQuantity *int   `json:"inventoryQuantity"`
}

// TokenResponse is the payload of the OAuth code exchange.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	Scope       string `json:"scope"`
}
