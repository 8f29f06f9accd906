package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"reliefhub_backend/internal/logger"
)

// FallbackAddress is returned whenever the lookup fails for any reason.
// Emergency creation must never block on geocoding.
const FallbackAddress = "Unknown location"

// Resolver turns coordinates into a human-readable address.
type Resolver interface {
	ResolveAddress(ctx context.Context, lat, lng float64) string
}

// NominatimResolver resolves against a Nominatim-compatible reverse endpoint.
type NominatimResolver struct {
	baseURL string
	client  *http.Client
}

func NewNominatimResolver(baseURL string, client *http.Client) *NominatimResolver {
	if client == nil {
		client = http.DefaultClient
	}
	return &NominatimResolver{baseURL: baseURL, client: client}
}

// ResolveAddress is best-effort: any transport, decode, or empty-result
// failure degrades to FallbackAddress with a warning log.
func (r *NominatimResolver) ResolveAddress(ctx context.Context, lat, lng float64) string {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("lat", fmt.Sprintf("%f", lat))
	q.Set("lon", fmt.Sprintf("%f", lng))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		logger.CtxWarn(ctx, "geocode request build failed", "error", err.Error())
		return FallbackAddress
	}

	resp, err := r.client.Do(req)
	if err != nil {
		logger.CtxWarn(ctx, "geocode lookup failed", "error", err.Error())
		return FallbackAddress
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.CtxWarn(ctx, "geocode lookup returned non-200", "status", resp.StatusCode)
		return FallbackAddress
	}

	var body struct {
		DisplayName string `json:"display_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		logger.CtxWarn(ctx, "geocode response decode failed", "error", err.Error())
		return FallbackAddress
	}

	if body.DisplayName == "" {
		return FallbackAddress
	}
	return body.DisplayName
}

// StaticResolver always returns the same address. Used in tests.
type StaticResolver struct {
	Address string
}

func (s *StaticResolver) ResolveAddress(ctx context.Context, lat, lng float64) string {
	if s.Address == "" {
		return FallbackAddress
	}
	return s.Address
}
