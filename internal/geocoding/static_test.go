package geocoding_test

import (
	"log/slog"
	"sync"
	"testing"

	"github.com/UnknownOlympus/jobheat/internal/geocoding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticProvider_Geocode(t *testing.T) {
	ctx := t.Context()
	logger := slog.Default()

	tests := []struct {
		name    string
		address string
		lat     float64
		lng     float64
	}{
		{"exact city", "Pune", 18.5204, 73.8567},
		{"case insensitive", "BANGALORE", 12.9716, 77.5946},
		{"substring with state", "Gurgaon, Haryana, India", 28.4595, 77.0266},
		{"first match wins", "New Delhi / Noida", 28.6139, 77.2090},
		{"unknown falls back to centroid", "Shillong, Meghalaya", 20.5937, 78.9629},
	}

	provider := geocoding.NewStaticProvider(logger, geocoding.WithoutJitter())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coords, err := provider.Geocode(ctx, tt.address)

			require.NoError(t, err)
			assert.InDelta(t, tt.lat, coords.Latitude, 1e-9)
			assert.InDelta(t, tt.lng, coords.Longitude, 1e-9)
		})
	}
}

func TestStaticProvider_EmptyAddress(t *testing.T) {
	provider := geocoding.NewStaticProvider(slog.Default())

	coords, err := provider.Geocode(t.Context(), "   ")

	require.ErrorIs(t, err, geocoding.ErrEmptyAddress)
	assert.Nil(t, coords)
}

func TestStaticProvider_JitterBounds(t *testing.T) {
	ctx := t.Context()
	provider := geocoding.NewStaticProvider(slog.Default(), geocoding.WithSeed(42))

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			city, err := provider.Geocode(ctx, "Mumbai")
			assert.NoError(t, err)
			assert.InDelta(t, 19.0760, city.Latitude, geocoding.CityJitter)
			assert.InDelta(t, 72.8777, city.Longitude, geocoding.CityJitter)

			fallback, err := provider.Geocode(ctx, "Remote")
			assert.NoError(t, err)
			assert.InDelta(t, geocoding.IndiaCentroid.Latitude, fallback.Latitude, geocoding.FallbackJitter)
			assert.InDelta(t, geocoding.IndiaCentroid.Longitude, fallback.Longitude, geocoding.FallbackJitter)
		}()
	}
	wg.Wait()
}

func TestStaticProvider_SeedIsReproducible(t *testing.T) {
	ctx := t.Context()
	first := geocoding.NewStaticProvider(slog.Default(), geocoding.WithSeed(7))
	second := geocoding.NewStaticProvider(slog.Default(), geocoding.WithSeed(7))

	a, err := first.Geocode(ctx, "Chennai")
	require.NoError(t, err)
	b, err := second.Geocode(ctx, "Chennai")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestAddress(t *testing.T) {
	tests := []struct {
		location string
		suffix   string
		want     string
	}{
		{"Pune", ", India", "Pune, India"},
		{" Pune ", "", "Pune"},
		{"Noida, india", ", India", "Noida, india"},
		{"India", ", India", "India"},
		{" india ", ", India", "india"},
		{"Chennai", ",", "Chennai"},
		{"Delhi India", ", India", "Delhi India, India"},
	}

	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			assert.Equal(t, tt.want, geocoding.Address(tt.location, tt.suffix))
		})
	}
}
