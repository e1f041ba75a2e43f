package geocoding

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/UnknownOlympus/jobheat/internal/models"
)

const (
	// CityJitter is the maximum offset added to a known city's coordinates so
	// postings in the same city do not collapse into one heat point.
	CityJitter = 0.015
	// FallbackJitter is the maximum offset around the India centroid.
	FallbackJitter = 1.0
)

// IndiaCentroid is used for locations that match no known city.
var IndiaCentroid = models.Coordinates{Latitude: 20.5937, Longitude: 78.9629}

// ErrEmptyAddress is returned when there is nothing to geocode.
var ErrEmptyAddress = errors.New("address is empty")

type cityEntry struct {
	name   string
	coords models.Coordinates
}

// knownCities is checked in order, first substring match wins.
var knownCities = []cityEntry{
	{"delhi", models.Coordinates{Latitude: 28.6139, Longitude: 77.2090}},
	{"noida", models.Coordinates{Latitude: 28.5355, Longitude: 77.3910}},
	{"bangalore", models.Coordinates{Latitude: 12.9716, Longitude: 77.5946}},
	{"hyderabad", models.Coordinates{Latitude: 17.3850, Longitude: 78.4867}},
	{"pune", models.Coordinates{Latitude: 18.5204, Longitude: 73.8567}},
	{"mumbai", models.Coordinates{Latitude: 19.0760, Longitude: 72.8777}},
	{"chennai", models.Coordinates{Latitude: 13.0827, Longitude: 80.2707}},
	{"gurgaon", models.Coordinates{Latitude: 28.4595, Longitude: 77.0266}},
	{"kolkata", models.Coordinates{Latitude: 22.5726, Longitude: 88.3639}},
	{"ahmedabad", models.Coordinates{Latitude: 23.0225, Longitude: 72.5714}},
}

// StaticProvider resolves locations offline against a fixed table of Indian
// cities. It never calls the network and never fails for a non-empty address.
type StaticProvider struct {
	mu     sync.Mutex
	rng    *rand.Rand
	jitter bool
	log    *slog.Logger
}

// StaticOption configures a StaticProvider.
type StaticOption func(*StaticProvider)

// WithoutJitter returns the table coordinates unchanged.
func WithoutJitter() StaticOption {
	return func(sp *StaticProvider) { sp.jitter = false }
}

// WithSeed makes the jitter reproducible.
func WithSeed(seed uint64) StaticOption {
	return func(sp *StaticProvider) { sp.rng = rand.New(rand.NewPCG(seed, seed)) }
}

// NewStaticProvider creates the offline city table provider.
func NewStaticProvider(log *slog.Logger, opts ...StaticOption) *StaticProvider {
	sp := &StaticProvider{
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), //nolint:gosec // map jitter only
		jitter: true,
		log:    log,
	}
	for _, opt := range opts {
		opt(sp)
	}

	return sp
}

// Geocode matches the address against the city table case-insensitively.
func (sp *StaticProvider) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	if strings.TrimSpace(address) == "" {
		return nil, ErrEmptyAddress
	}

	lower := strings.ToLower(address)
	for _, city := range knownCities {
		if strings.Contains(lower, city.name) {
			return sp.offset(city.coords, CityJitter), nil
		}
	}

	sp.log.DebugContext(ctx, "No known city in location, using India centroid", "address", address)
	return sp.offset(IndiaCentroid, FallbackJitter), nil
}

func (sp *StaticProvider) offset(base models.Coordinates, spread float64) *models.Coordinates {
	if !sp.jitter {
		return &models.Coordinates{Latitude: base.Latitude, Longitude: base.Longitude}
	}

	sp.mu.Lock()
	defer sp.mu.Unlock()

	return &models.Coordinates{
		Latitude:  base.Latitude + (sp.rng.Float64()*2-1)*spread,
		Longitude: base.Longitude + (sp.rng.Float64()*2-1)*spread,
	}
}
