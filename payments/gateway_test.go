package payments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRequest() SessionRequest {
	return SessionRequest{
		SuccessURL:   "https://shop.example/merci",
		CancelURL:    "https://shop.example/panier",
		CurrencyCode: "XOF",
		Customer:     Customer{Name: "Awa Diop", Email: "awa@example.sn"},
		LineItems: []LineItem{{
			PriceData: PriceData{
				Currency:    "XOF",
				ProductData: ProductData{Name: "Tee Classique"},
				UnitAmount:  1000,
			},
			Quantity: 2,
		}},
		Metadata: map[string]string{"internalOrderId": "7"},
	}
}

func TestCreateSession_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))

		var got SessionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "XOF", got.CurrencyCode)
		require.Len(t, got.LineItems, 1)
		assert.Equal(t, 1000.0, got.LineItems[0].PriceData.UnitAmount)

		w.Write([]byte(`{"checkoutSessionId":"cs_1","checkoutUrl":"https://pay.example/cs_1"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sk_test")
	session, err := client.CreateSession(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, "cs_1", session.CheckoutSessionID)
	assert.Equal(t, "https://pay.example/cs_1", session.CheckoutURL)
	assert.NotEmpty(t, session.RawBody)
}

func TestCreateSession_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`down`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sk_test")
	_, err := client.CreateSession(context.Background(), sampleRequest())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrBadResponse, "a transport-level failure is not a parse failure")
	assert.Contains(t, err.Error(), "payment gateway error (503)")
}

func TestCreateSession_UnparseableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sk_test")
	_, err := client.CreateSession(context.Background(), sampleRequest())
	assert.ErrorIs(t, err, ErrBadResponse)
}

func TestCreateSession_MissingSessionID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"checkoutUrl":"https://pay.example/cs_1"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sk_test")
	_, err := client.CreateSession(context.Background(), sampleRequest())
	assert.ErrorIs(t, err, ErrBadResponse)
}

func TestCreateSession_GatewayRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":{"code":"invalid_amount","message":"amount must be positive"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sk_test")
	_, err := client.CreateSession(context.Background(), sampleRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount must be positive")
}
