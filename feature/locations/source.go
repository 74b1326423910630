package locations

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// Source fetches the location list of an event.
type Source interface {
	Fetch(ctx context.Context, eventID int) (*EventSnapshot, error)
}

// HTTPSource reads the public event location feed.
type HTTPSource struct {
	urlTemplate string
	client      *http.Client
}

// NewHTTPSource creates a feed client from the configuration.
func NewHTTPSource(cfg SourceConfig) *HTTPSource {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}

	return &HTTPSource{
		urlTemplate: cfg.URLTemplate,
		client:      &http.Client{Transport: transport},
	}
}

// Fetch downloads and decodes the snapshot for eventID.
func (s *HTTPSource) Fetch(ctx context.Context, eventID int) (*EventSnapshot, error) {
	url := fmt.Sprintf(s.urlTemplate, eventID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("locations: failed to build request for event %d: %w", eventID, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("locations: failed to fetch event %d: %w", eventID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("locations: event %d feed returned %s: %s", eventID, resp.Status, body)
	}

	var snapshot EventSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("locations: failed to decode event %d: %w", eventID, err)
	}
	return &snapshot, nil
}
