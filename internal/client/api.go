// Package client talks to the activity endpoint and drives a local lab session.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rpggio/labcoats/internal/domain/activity"
	"github.com/rpggio/labcoats/internal/domain/material"
)

const defaultTimeout = 90 * time.Second

// APIClient calls the labcoats HTTP API.
type APIClient struct {
	baseURL string
	http    *http.Client
}

// NewAPIClient creates a client for the server at baseURL. A nil httpClient gets a default timeout.
func NewAPIClient(baseURL string, httpClient *http.Client) *APIClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// Materials fetches the material catalog.
func (c *APIClient) Materials(ctx context.Context) ([]material.Material, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/materials", nil)
	if err != nil {
		return nil, fmt.Errorf("building materials request: %w", err)
	}
	body, err := c.do(req)
	if err != nil {
		return nil, err
	}
	var out []material.Material
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: decoding materials: %w", ErrTransient, err)
	}
	return out, nil
}

// Generate requests activities for the given material names. The server may answer
// with one activity or an array of them; both are returned as a slice.
func (c *APIClient) Generate(ctx context.Context, names []string) ([]activity.Activity, error) {
	payload, err := json.Marshal(map[string][]string{"materials": names})
	if err != nil {
		return nil, fmt.Errorf("encoding generate request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate-project", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}
	return decodeActivities(body)
}

func (c *APIClient) do(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransient, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %w", ErrTransient, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s %s returned %d", ErrTransient, req.Method, req.URL.Path, resp.StatusCode)
	}
	return body, nil
}

func decodeActivities(body []byte) ([]activity.Activity, error) {
	trimmed := bytes.TrimSpace(body)
	var items []json.RawMessage
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("%w: decoding activities: %w", ErrTransient, err)
		}
	} else {
		items = []json.RawMessage{trimmed}
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: empty activity list", ErrTransient)
	}

	out := make([]activity.Activity, 0, len(items))
	for _, item := range items {
		act, err := activity.ExtractActivity(string(item))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrTransient, err)
		}
		out = append(out, act)
	}
	return out, nil
}
