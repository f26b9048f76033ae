package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/baxromumarov/geode/internal/geode"
)

var ErrRequestFailed = errors.New("geode request failed")

// APIClient calls the analysis endpoint on behalf of the page.
type APIClient struct {
	endpoint   string
	httpClient *http.Client
}

func NewAPIClient(endpoint string, httpClient *http.Client) *APIClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 2 * time.Minute}
	}
	return &APIClient{endpoint: endpoint, httpClient: httpClient}
}

// RunGeode posts the URL and returns the normalized reply.
func (c *APIClient) RunGeode(ctx context.Context, url string) (*geode.Response, error) {
	payload, err := json.Marshal(map[string]string{"url": url})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w with status %d", ErrRequestFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return geode.DecodeResponse(body)
}
