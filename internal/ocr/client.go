// Package ocr extracts text from images through an Azure Vision style
// read endpoint.
package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const requestTimeout = 30 * time.Second

type Config struct {
	Endpoint        string
	SubscriptionKey string
}

type Client struct {
	endpoint        string
	subscriptionKey string
	httpClient      *http.Client
}

func NewClient(conf Config) *Client {
	return &Client{
		endpoint:        conf.Endpoint,
		subscriptionKey: conf.SubscriptionKey,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

type readRequest struct {
	URL string `json:"url"`
}

type readResponse struct {
	ReadResult struct {
		Content string `json:"content"`
	} `json:"readResult"`
}

// ReadImage submits an image URL to the read endpoint and returns the
// recognized text.
func (c *Client) ReadImage(ctx context.Context, imageURL string) (string, error) {
	payload, err := json.Marshal(readRequest{URL: imageURL})
	if err != nil {
		return "", fmt.Errorf("failed to marshal read request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create read request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Ocp-Apim-Subscription-Key", c.subscriptionKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call read endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("read endpoint returned status %d: %s", resp.StatusCode, body)
	}

	var parsed readResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode read response: %w", err)
	}

	return parsed.ReadResult.Content, nil
}
