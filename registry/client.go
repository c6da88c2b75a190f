// Package registry is the HTTP client for the external challenge registry,
// the service that owns durable challenge records. The backend only creates
// records or reads them by ID.
package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"challenges-backend/config"
	"challenges-backend/models"
)

// Client talks to the challenge registry. One instance serves all clusters;
// the base URL is selected per call.
type Client struct {
	httpClient *http.Client
	baseURLs   map[config.Cluster]string
}

// NewClient creates a registry client from the configured per-cluster base
// URLs.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURLs:   cfg.RegistryURLs,
	}
}

// envelope is the registry's response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (c *Client) baseURL(cluster config.Cluster) (string, error) {
	base, ok := c.baseURLs[cluster]
	if !ok || base == "" {
		return "", &models.AccountResolutionError{Message: fmt.Sprintf("no registry configured for cluster %s", cluster)}
	}
	return base, nil
}

// CreateChallenge creates a durable challenge record from a finalized
// intent. Called only from the Confirm phase, after the creation fee
// transaction has been signed and broadcast.
func (c *Client) CreateChallenge(ctx context.Context, cluster config.Cluster, intent models.ChallengeIntent) (*models.ChallengeRecord, error) {
	base, err := c.baseURL(cluster)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(intent)
	if err != nil {
		return nil, models.NewUpstreamError("createChallenge", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/challenge", bytes.NewReader(body))
	if err != nil {
		return nil, models.NewUpstreamError("createChallenge", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var record models.ChallengeRecord
	if err := c.do(req, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// GetChallengeByID fetches a challenge record by its opaque identifier.
func (c *Client) GetChallengeByID(ctx context.Context, cluster config.Cluster, id int64) (*models.ChallengeRecord, error) {
	base, err := c.baseURL(cluster)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/challenge/%d", base, id), nil)
	if err != nil {
		return nil, models.NewUpstreamError("getChallengeById", err)
	}

	var record models.ChallengeRecord
	if err := c.do(req, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.NewUpstreamError("registry", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return models.NewUpstreamError("registry", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var env envelope
		if json.Unmarshal(raw, &env) == nil && env.Message != "" {
			return models.NewUpstreamError("registry", fmt.Errorf("%s (status %d)", env.Message, resp.StatusCode))
		}
		return models.NewUpstreamError("registry", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return models.NewUpstreamError("registry", fmt.Errorf("malformed response: %w", err))
	}
	if len(env.Data) == 0 {
		return models.NewUpstreamError("registry", fmt.Errorf("empty response data"))
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return models.NewUpstreamError("registry", fmt.Errorf("malformed record: %w", err))
	}
	return nil
}
