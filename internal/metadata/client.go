package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrNotFound is returned when the provider has no record for the title.
var ErrNotFound = errors.New("metadata: not found")

// Result contains the data used to enrich a movie record.
type Result struct {
	Rating    *string
	PosterURL *string
}

// Client defines the contract for the upstream movie metadata provider.
type Client interface {
	Fetch(ctx context.Context, title string) (*Result, error)
}

// HTTPClient implements Client over HTTP.
type HTTPClient struct {
	baseURL *url.URL
	apiKey  string
	client  *http.Client
	log     *zap.Logger
}

// NewHTTPClient constructs a new HTTP-backed metadata client.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration, log *zap.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse metadata url: %w", err)
	}
	return &HTTPClient{
		baseURL: parsed,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   timeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   timeout,
				ResponseHeaderTimeout: timeout,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		log: log.With(zap.String("component", "metadata-client")),
	}, nil
}

type apiResponse struct {
	Rating    *string `json:"rating"`
	PosterURL *string `json:"poster_url"`
}

// Fetch retrieves movie metadata by title.
func (c *HTTPClient) Fetch(ctx context.Context, title string) (*Result, error) {
	rel := &url.URL{Path: "/movies"}
	q := rel.Query()
	q.Set("title", title)
	rel.RawQuery = q.Encode()
	endpoint := c.baseURL.ResolveReference(rel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var payload apiResponse
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, fmt.Errorf("decode metadata response: %w", err)
		}
		return &Result{Rating: payload.Rating, PosterURL: payload.PosterURL}, nil
	case http.StatusNotFound:
		return nil, ErrNotFound
	default:
		c.log.Warn("Unexpected metadata provider status",
			zap.Int("status", resp.StatusCode),
			zap.String("title", title),
		)
		return nil, fmt.Errorf("metadata provider status %d", resp.StatusCode)
	}
}
