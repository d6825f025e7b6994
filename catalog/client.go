package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client reads product pricing from the headless CMS query API.
type Client struct {
	queryURL string // e.g. https://<project>.api.cms.io/data/query/production
	token    string
	http     *http.Client
}

func NewClient(queryURL, token string) *Client {
	return &Client{
		queryURL: queryURL,
		token:    token,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

// pricing projection of a product document; null when no document matches
type productDoc struct {
	ID            string   `json:"_id"`
	Price         *float64 `json:"price"`
	OriginalPrice *float64 `json:"originalPrice"`
	InStock       *bool    `json:"inStock"`
}

type queryResponse struct {
	Result *productDoc `json:"result"`
}

const pricingQuery = `*[_type == "product" && _id == $id][0]{_id, price, originalPrice, inStock}`

// FetchPrice returns the authoritative price/stock read for one product.
func (c *Client) FetchPrice(ctx context.Context, productID string) (PriceInfo, error) {
	params := url.Values{}
	params.Set("query", pricingQuery)
	params.Set("$id", fmt.Sprintf("%q", productID))

	req, err := http.NewRequestWithContext(ctx, "GET", c.queryURL+"?"+params.Encode(), nil)
	if err != nil {
		return PriceInfo{}, fmt.Errorf("failed to build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return PriceInfo{}, fmt.Errorf("failed to reach catalog: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return PriceInfo{}, fmt.Errorf("catalog API error (%d): %s", resp.StatusCode, string(body))
	}

	var qr queryResponse
	if err := json.Unmarshal(body, &qr); err != nil {
		return PriceInfo{}, fmt.Errorf("failed to parse catalog response: %w", err)
	}

	if qr.Result == nil {
		return PriceInfo{}, ErrNotFound
	}
	doc := qr.Result

	// Absent inStock means the editor never unpublished it
	if doc.InStock != nil && !*doc.InStock {
		return PriceInfo{}, ErrOutOfStock
	}
	if doc.Price == nil || *doc.Price <= 0 {
		return PriceInfo{}, ErrNoPriceSet
	}

	info := PriceInfo{CurrentPrice: *doc.Price, InStock: true}
	if doc.OriginalPrice != nil {
		info.OriginalPrice = *doc.OriginalPrice
	}
	return info, nil
}
