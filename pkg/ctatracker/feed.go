package ctatracker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
)

// ErrFeedUnavailable means the station produced no data this cycle and should be skipped
var ErrFeedUnavailable = errors.New("arrivals feed unavailable")

const userAgent = "travigo-trainboard/1.0"

type FeedClient struct {
	BaseURL string
	APIKey  string

	HTTPClient *http.Client
}

func NewFeedClient(baseURL string, apiKey string) *FeedClient {
	return &FeedClient{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		HTTPClient: &http.Client{},
	}
}

// GetArrivals returns the raw arrivals document for a station filtered to the given routes
func (f *FeedClient) GetArrivals(ctx context.Context, mapID string, routes []string) ([]byte, error) {
	requestURL, err := url.Parse(f.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing feed url: %w", err)
	}

	query := requestURL.Query()
	query.Set("key", f.APIKey)
	query.Set("mapid", mapID)
	query.Set("rt", strings.Join(routes, ","))
	requestURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating feed request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		log.Error().Err(err).Str("mapid", mapID).Msg("Failed to request arrivals")
		return nil, fmt.Errorf("%w: %w", ErrFeedUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Error().Int("status", resp.StatusCode).Str("mapid", mapID).Msg("Arrivals request returned non-OK status")
		return nil, fmt.Errorf("%w: status %d", ErrFeedUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error().Err(err).Str("mapid", mapID).Msg("Failed to read arrivals response")
		return nil, fmt.Errorf("%w: %w", ErrFeedUnavailable, err)
	}

	return body, nil
}
