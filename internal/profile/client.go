// Package profile retrieves and caches per-player statistics documents.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/verte-zerg/owstat/internal/catalog"
	"github.com/verte-zerg/owstat/internal/model"
)

const defaultEndpoint = "https://ow-api.com/v1/stats"

// ErrPrivateProfile marks a profile whose owner has hidden career stats.
var ErrPrivateProfile = errors.New("profile is set to private")

// Client fetches complete profile documents from ow-api.com.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient builds a client against the public ow-api endpoint.
func NewClient() *Client {
	return &Client{
		endpoint: defaultEndpoint,
		http:     &http.Client{Timeout: 60 * time.Second},
	}
}

// NewClientWithEndpoint builds a client against a custom endpoint, for tests.
func NewClientWithEndpoint(endpoint string) *Client {
	c := NewClient()
	c.endpoint = endpoint
	return c
}

// Fetch retrieves the complete statistics document for a player. Private
// profiles return ErrPrivateProfile; the document is still returned so the
// caller can decide what to surface.
func (c *Client) Fetch(ctx context.Context, player model.Player) (catalog.Document, error) {
	target := fmt.Sprintf("%s/%s/%s/%s/complete",
		c.endpoint,
		url.PathEscape(player.Platform),
		url.PathEscape(player.Region),
		url.PathEscape(player.Tag),
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("no profile found for %s (check battletag, platform, and region)", player.Tag)
	default:
		return nil, fmt.Errorf("unexpected api status for %s: %s", player.Tag, resp.Status)
	}

	var doc catalog.Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode profile for %s: %w", player.Tag, err)
	}
	if private, ok := doc["private"].(bool); ok && private {
		return doc, fmt.Errorf("%s: %w", player.Tag, ErrPrivateProfile)
	}
	return doc, nil
}
