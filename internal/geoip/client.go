// Package geoip resolves an approximate location for a network address via
// the ipinfo.io HTTP API. Lookups are best-effort: the login path treats any
// failure as "no location" and proceeds.
package geoip

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"user-dashboard/backend/internal/apperrors"
)

const defaultTimeout = 3 * time.Second

// Location is an approximate geolocation for a network address.
type Location struct {
	// Label is the display form "City, Region, Country".
	Label string
	Lat   float64
	Long  float64
}

// Client calls the ipinfo.io lookup endpoint.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// NewClient returns a geolocation client for the given base URL and API token.
// timeout bounds a single lookup; zero falls back to 3s. The per-call context
// deadline still applies on top.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = "https://ipinfo.io"
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Token:      token,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

type lookupResponse struct {
	City    string `json:"city"`
	Region  string `json:"region"`
	Country string `json:"country"`
	Loc     string `json:"loc"` // "lat,long"
}

// Resolve looks up the location for ip. All failures (transport, status,
// malformed body) return an error wrapping apperrors.ErrUpstreamUnavailable;
// callers degrade to a nil location rather than failing their operation.
func (c *Client) Resolve(ctx context.Context, ip string) (*Location, error) {
	if c.Token == "" {
		return nil, fmt.Errorf("geoip: no API token configured: %w", apperrors.ErrUpstreamUnavailable)
	}
	url := fmt.Sprintf("%s/%s/json?token=%s", c.BaseURL, ip, c.Token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("geoip: %v: %w", err, apperrors.ErrUpstreamUnavailable)
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geoip: %v: %w", err, apperrors.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geoip: lookup failed status=%d: %w", resp.StatusCode, apperrors.ErrUpstreamUnavailable)
	}
	var body lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("geoip: decode: %v: %w", err, apperrors.ErrUpstreamUnavailable)
	}

	loc := &Location{Label: fmt.Sprintf("%s, %s, %s", body.City, body.Region, body.Country)}
	if parts := strings.Split(body.Loc, ","); len(parts) == 2 {
		if lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64); err == nil {
			loc.Lat = lat
		}
		if long, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64); err == nil {
			loc.Long = long
		}
	}
	return loc, nil
}
