package ocr

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_ReadImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "secret-key", r.Header.Get("Ocp-Apim-Subscription-Key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req readRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "https://storage.local/licenses/abc", req.URL)

		resp := readResponse{}
		resp.ReadResult.Content = "DRIVER LICENSE\nCLASS C"
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	c := NewClient(Config{Endpoint: srv.URL, SubscriptionKey: "secret-key"})

	got, err := c.ReadImage(context.Background(), "https://storage.local/licenses/abc")
	require.NoError(t, err)
	assert.Equal(t, "DRIVER LICENSE\nCLASS C", got)
}

func TestClient_ReadImage_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"code":"InvalidImageURL"}}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(Config{Endpoint: srv.URL, SubscriptionKey: "k"})

	_, err := c.ReadImage(context.Background(), "https://storage.local/broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
	assert.Contains(t, err.Error(), "InvalidImageURL")
}

func TestClient_ReadImage_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := NewClient(Config{Endpoint: srv.URL, SubscriptionKey: "k"})

	_, err := c.ReadImage(context.Background(), "https://storage.local/x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}
