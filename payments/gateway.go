package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrBadResponse marks a gateway reply we could not make sense of
// (unparseable body, missing session id). Callers surface it as 502.
var ErrBadResponse = errors.New("unusable payment gateway response")

// SessionRequest is the finalized line-item payload submitted to the
// payment-session provider. Unit amounts are validated prices; client
// claims never reach this struct.
type SessionRequest struct {
	SuccessURL   string            `json:"successUrl"`
	CancelURL    string            `json:"cancelUrl"`
	CurrencyCode string            `json:"currencyCode"`
	Customer     Customer          `json:"customer"`
	LineItems    []LineItem        `json:"lineItems"`
	Metadata     map[string]string `json:"metadata"`
}

type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type LineItem struct {
	PriceData PriceData `json:"priceData"`
	Quantity  int       `json:"quantity"`
}

type PriceData struct {
	Currency    string      `json:"currency"`
	ProductData ProductData `json:"productData"`
	UnitAmount  float64     `json:"unitAmount"`
}

type ProductData struct {
	Name     string            `json:"name"`
	Images   []string          `json:"images,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type Session struct {
	CheckoutSessionID string
	CheckoutURL       string
	RawBody           string // kept verbatim for the order's audit trail
}

// Gateway creates hosted checkout sessions with the external payment provider.
type Gateway interface {
	CreateSession(ctx context.Context, req SessionRequest) (Session, error)
}

// Client talks to the provider's session endpoint.
type Client struct {
	apiURL string
	apiKey string
	http   *http.Client
}

func NewClient(apiURL, apiKey string) *Client {
	return &Client{
		apiURL: apiURL,
		apiKey: apiKey,
		http:   &http.Client{Timeout: 15 * time.Second},
	}
}

type sessionResponse struct {
	CheckoutSessionID string `json:"checkoutSessionId"`
	CheckoutURL       string `json:"checkoutUrl"`
	Error             *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// CreateSession submits the finalized line items and returns the hosted
// checkout URL.
func (c *Client) CreateSession(ctx context.Context, sr SessionRequest) (Session, error) {
	jsonData, err := json.Marshal(sr)
	if err != nil {
		return Session{}, fmt.Errorf("failed to encode session request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return Session{}, fmt.Errorf("failed to build gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return Session{}, fmt.Errorf("failed to reach payment gateway: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Session{RawBody: string(body)}, fmt.Errorf("payment gateway error (%d): %s", resp.StatusCode, string(body))
	}

	var sres sessionResponse
	if err := json.Unmarshal(body, &sres); err != nil {
		return Session{RawBody: string(body)}, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if sres.Error != nil {
		return Session{RawBody: string(body)}, fmt.Errorf("payment gateway rejected session: %s", sres.Error.Message)
	}
	if sres.CheckoutSessionID == "" || sres.CheckoutURL == "" {
		return Session{RawBody: string(body)}, fmt.Errorf("%w: missing session id or checkout url", ErrBadResponse)
	}

	return Session{
		CheckoutSessionID: sres.CheckoutSessionID,
		CheckoutURL:       sres.CheckoutURL,
		RawBody:           string(body),
	}, nil
}
