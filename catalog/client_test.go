package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCMS(t *testing.T, status int, body string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.URL.Query().Get("query"))
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-token")
}

func TestFetchPrice_Success(t *testing.T) {
	client := newCMS(t, http.StatusOK,
		`{"result":{"_id":"p1","price":7500,"originalPrice":9000,"inStock":true}}`)

	info, err := client.FetchPrice(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 7500.0, info.CurrentPrice)
	assert.Equal(t, 9000.0, info.OriginalPrice)
	assert.True(t, info.InStock)
}

func TestFetchPrice_NoMarkdownFields(t *testing.T) {
	// inStock and originalPrice are optional in the schema
	client := newCMS(t, http.StatusOK, `{"result":{"_id":"p1","price":7500}}`)

	info, err := client.FetchPrice(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 7500.0, info.CurrentPrice)
	assert.Zero(t, info.OriginalPrice)
	assert.True(t, info.InStock)
}

func TestFetchPrice_NotFound(t *testing.T) {
	client := newCMS(t, http.StatusOK, `{"result":null}`)

	_, err := client.FetchPrice(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFetchPrice_OutOfStock(t *testing.T) {
	client := newCMS(t, http.StatusOK,
		`{"result":{"_id":"p1","price":7500,"inStock":false}}`)

	_, err := client.FetchPrice(context.Background(), "p1")
	assert.ErrorIs(t, err, ErrOutOfStock)
}

func TestFetchPrice_NoPriceSet(t *testing.T) {
	client := newCMS(t, http.StatusOK, `{"result":{"_id":"p1","inStock":true}}`)
	_, err := client.FetchPrice(context.Background(), "p1")
	assert.ErrorIs(t, err, ErrNoPriceSet)

	client = newCMS(t, http.StatusOK, `{"result":{"_id":"p1","price":0,"inStock":true}}`)
	_, err = client.FetchPrice(context.Background(), "p1")
	assert.ErrorIs(t, err, ErrNoPriceSet)
}

func TestFetchPrice_UpstreamError(t *testing.T) {
	client := newCMS(t, http.StatusInternalServerError, `boom`)

	_, err := client.FetchPrice(context.Background(), "p1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog API error (500)")
}

func TestFetchPrice_BadBody(t *testing.T) {
	client := newCMS(t, http.StatusOK, `not json`)

	_, err := client.FetchPrice(context.Background(), "p1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse catalog response")
}
