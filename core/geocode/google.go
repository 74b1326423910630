package geocode

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"googlemaps.github.io/maps"
)

// GoogleGateway resolves addresses with the Google Geocoding API.
type GoogleGateway struct {
	client *maps.Client
	region string
	logger *zap.Logger
}

// NewGoogleGateway creates a gateway from the configuration.
func NewGoogleGateway(cfg Config, logger *zap.Logger) (*GoogleGateway, error) {
	if cfg.GoogleAPIKey == "" {
		return nil, errors.New("geocode: google api key is required (set GOOGLE_API_KEY)")
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 10
	}

	opts := []maps.ClientOption{
		maps.WithAPIKey(cfg.GoogleAPIKey),
		maps.WithHTTPClient(&http.Client{Timeout: time.Duration(timeout) * time.Second}),
	}
	if cfg.RequestsPerSecond > 0 {
		opts = append(opts, maps.WithRateLimit(cfg.RequestsPerSecond))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, maps.WithBaseURL(cfg.BaseURL))
	}

	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("geocode: failed to create maps client: %w", err)
	}

	return &GoogleGateway{client: client, region: cfg.Region, logger: logger}, nil
}

// Geocode returns the first result for the text, or ErrNotFound.
func (g *GoogleGateway) Geocode(ctx context.Context, text string) (*Location, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrNotFound
	}

	g.logger.Info("Geocoding address via API", zap.String("address", text))

	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{
		Address: text,
		Region:  g.region,
	})
	if err != nil {
		return nil, fmt.Errorf("geocode: request for %q failed: %w", text, err)
	}
	if len(results) == 0 {
		return nil, ErrNotFound
	}

	best := results[0]
	return &Location{
		FormattedAddress: best.FormattedAddress,
		Latitude:         best.Geometry.Location.Lat,
		Longitude:        best.Geometry.Location.Lng,
	}, nil
}
