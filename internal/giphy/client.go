package giphy

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
)

// APIClient is a Giphy API client that implements the Client interface.
type APIClient struct {
	httpClient *http.Client
	BaseURL    string
	apiKey     string
}

// NewClient creates a new Giphy client.
func NewClient(apiKey string) Client {
	return &APIClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		BaseURL:    "https://api.giphy.com",
		apiKey:     apiKey,
	}
}

// Ensure APIClient implements the Client interface.
var _ Client = (*APIClient)(nil)

type giphyRandomResponse struct {
	Data struct {
		Images struct {
			Original struct {
				URL string `json:"url"`
			} `json:"original"`
		} `json:"images"`
	} `json:"data"`
}

// DuelGif fetches a random ping-pong GIF URL.
func (c *APIClient) DuelGif() (string, error) {
	endpoint := fmt.Sprintf("%s/v1/gifs/random?api_key=%s&tag=%s&rating=g",
		c.BaseURL, url.QueryEscape(c.apiKey), url.QueryEscape("ping pong"))

	req, err := http.NewRequestWithContext(context.Background(), "GET", endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	log.Debug("Requesting random GIF from Giphy API")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Error("Received non-OK HTTP status from Giphy API", "status", resp.StatusCode, "body", string(body))
		return "", fmt.Errorf("received non-OK HTTP status: %d", resp.StatusCode)
	}

	var randomResponse giphyRandomResponse
	if err := json.NewDecoder(resp.Body).Decode(&randomResponse); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if randomResponse.Data.Images.Original.URL == "" {
		return "", fmt.Errorf("giphy response contained no gif url")
	}

	return randomResponse.Data.Images.Original.URL, nil
}
