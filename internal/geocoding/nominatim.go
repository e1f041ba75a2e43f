package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/UnknownOlympus/jobheat/internal/models"
	"golang.org/x/time/rate"
)

const (
	// NominatimBaseURL is the public OpenStreetMap search endpoint.
	NominatimBaseURL = "https://nominatim.openstreetmap.org/search"
	// NominatimUserAgent identifies the service as the Nominatim usage policy requires.
	NominatimUserAgent = "JobHeat-Geocoder/1.0 (https://github.com/UnknownOlympus/jobheat)"
	nominatimCountry   = "in"
)

// NominatimProvider implements the Provider interface using OpenStreetMap's Nominatim API.
// The public instance allows one request per second, enforced by the limiter.
type NominatimProvider struct {
	client  HTTPClient    // HTTP client for making requests
	baseURL string        // Base URL for the Nominatim API
	log     *slog.Logger  // Logger for logging operations
	limiter *rate.Limiter // Request limiter shared by all workers
}

// HTTPClient defines the interface for making HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// nominatimResponse represents the JSON response from Nominatim API.
type nominatimResponse struct {
	Lat string `json:"lat"` // Latitude as string
	Lon string `json:"lon"` // Longitude as string
}

// Common errors for Nominatim provider.
var (
	ErrNominatimEmptyResponse = errors.New("nominatim API returned empty response")
	ErrNominatimInvalidCoords = errors.New("nominatim API returned invalid coordinates")
)

// NewNominatimProvider creates a provider for the public Nominatim endpoint.
func NewNominatimProvider(log *slog.Logger) *NominatimProvider {
	const timeout = 10

	return NewNominatimProviderWithClient(
		&http.Client{Timeout: timeout * time.Second},
		rate.NewLimiter(rate.Every(time.Second), 1),
		log,
	)
}

// NewNominatimProviderWithClient creates a provider with a custom HTTP client and limiter.
func NewNominatimProviderWithClient(client HTTPClient, limiter *rate.Limiter, log *slog.Logger) *NominatimProvider {
	return &NominatimProvider{
		client:  client,
		baseURL: NominatimBaseURL,
		log:     log,
		limiter: limiter,
	}
}

// Geocode resolves a location label such as "Whitefield, Bengaluru, Karnataka".
// When the full label finds nothing it drops trailing components one by one
// and finally tries the first component alone.
func (np *NominatimProvider) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	np.log.DebugContext(ctx, "Geocoding using Nominatim", "address", address)

	variations := locationFallbacks(address)
	for idx, variation := range variations {
		coords, err := np.search(ctx, variation)
		if err == nil {
			if idx > 0 {
				np.log.InfoContext(ctx, "Geocoded using fallback location",
					"original", address, "fallback", variation, "fallback_level", idx)
			}
			return coords, nil
		}

		if !errors.Is(err, ErrNominatimEmptyResponse) {
			return nil, err
		}

		np.log.DebugContext(ctx, "Location variation returned no results", "variation", variation, "fallback_level", idx)
	}

	np.log.WarnContext(ctx, "All location fallbacks exhausted", "address", address, "variations_tried", len(variations))
	return nil, ErrNominatimEmptyResponse
}

// locationFallbacks returns progressively less specific versions of a comma
// separated location, without duplicates.
func locationFallbacks(address string) []string {
	if address == "" {
		return []string{""}
	}

	seen := make(map[string]bool)
	variations := []string{}
	add := func(v string) {
		if v != "" && !seen[v] {
			seen[v] = true
			variations = append(variations, v)
		}
	}

	add(address)

	parts := strings.Split(address, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	for end := len(parts) - 1; end > 0; end-- {
		add(strings.Join(parts[:end], ", "))
	}

	return variations
}

// search performs a single Nominatim request.
func (np *NominatimProvider) search(ctx context.Context, address string) (*models.Coordinates, error) {
	if err := np.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}

	reqURL, err := url.Parse(np.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := reqURL.Query()
	query.Set("q", address)
	query.Set("format", "json")
	query.Set("limit", "1")
	query.Set("countrycodes", nominatimCountry)
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", NominatimUserAgent)
	req.Header.Set("Accept-Language", "en")

	resp, err := np.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute geocoding request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		np.log.ErrorContext(ctx, "Nominatim API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("nominatim API returned status %d: %s", resp.StatusCode, string(body))
	}

	var results []nominatimResponse
	if err = json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("failed to decode nominatim response: %w", err)
	}

	if len(results) == 0 {
		return nil, ErrNominatimEmptyResponse
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid latitude: %s", ErrNominatimInvalidCoords, results[0].Lat)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid longitude: %s", ErrNominatimInvalidCoords, results[0].Lon)
	}

	return &models.Coordinates{Latitude: lat, Longitude: lon}, nil
}
