package geocoding

import (
	"context"
	"strings"

	"github.com/UnknownOlympus/jobheat/internal/models"
)

// Provider resolves a free-text job location into coordinates.
type Provider interface {
	Geocode(ctx context.Context, address string) (*models.Coordinates, error)
}

// Address appends suffix to a location label unless it already ends with it.
// A location equal to the suffix without its leading separator is left as is,
// so "India" with suffix ", India" stays "India".
func Address(location, suffix string) string {
	location = strings.TrimSpace(location)
	lowered := strings.ToLower(location)
	full := strings.ToLower(strings.TrimSpace(suffix))
	bare := strings.TrimLeft(full, ", ")
	if bare == "" || lowered == bare || strings.HasSuffix(lowered, full) {
		return location
	}

	return location + suffix
}
