package giphy

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuelGif(t *testing.T) {
	mockJSONResponse := `{
		"data": {
			"images": {
				"original": {
					"url": "https://media.giphy.com/media/abc123/giphy.gif"
				}
			}
		}
	}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/gifs/random", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "ping pong", r.URL.Query().Get("tag"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, mockJSONResponse)
	}))
	defer server.Close()

	client := APIClient{
		httpClient: server.Client(),
		BaseURL:    server.URL,
		apiKey:     "test-key",
	}

	gif, err := client.DuelGif()
	require.NoError(t, err)
	assert.Equal(t, "https://media.giphy.com/media/abc123/giphy.gif", gif)
}

func TestDuelGifServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := APIClient{
		httpClient: server.Client(),
		BaseURL:    server.URL,
		apiKey:     "test-key",
	}

	_, err := client.DuelGif()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-OK HTTP status")
}

func TestDuelGifEmptyPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, `{"data": {}}`)
	}))
	defer server.Close()

	client := APIClient{
		httpClient: server.Client(),
		BaseURL:    server.URL,
		apiKey:     "test-key",
	}

	_, err := client.DuelGif()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no gif url")
}
