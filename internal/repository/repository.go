package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/UnknownOlympus/jobheat/internal/models"
)

// MaxGeocodingAttempts is the number of failed geocoding tries after which a
// posting is no longer picked up for enrichment.
const MaxGeocodingAttempts = 5

// ErrStoreConnection is returned by every operation of a store that could not
// be reached at startup.
var ErrStoreConnection = errors.New("record store is not connected")

// Interface is the job record store. All backends return postings in their
// native retrieval order.
type Interface interface {
	ListJobs(ctx context.Context) ([]models.JobPosting, error)
	FetchJobsForGeocoding(ctx context.Context, limit int) ([]models.JobPosting, error)
	UpdateJobCoordinates(ctx context.Context, jobID string, coords models.Coordinates) error
	IncrementFailureCount(ctx context.Context, jobID string, errMsg string) error
	ReplaceJobs(ctx context.Context, jobs []models.JobPosting) (int, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Disconnected is a store that failed to connect. It keeps the process
// serving: every call reports the original connection failure.
type Disconnected struct {
	cause error
}

// NewDisconnected wraps the connection error returned by Open.
func NewDisconnected(cause error) *Disconnected {
	return &Disconnected{cause: cause}
}

func (d *Disconnected) err() error {
	return fmt.Errorf("%w: %w", ErrStoreConnection, d.cause)
}

func (d *Disconnected) ListJobs(context.Context) ([]models.JobPosting, error) { return nil, d.err() }

func (d *Disconnected) FetchJobsForGeocoding(context.Context, int) ([]models.JobPosting, error) {
	return nil, d.err()
}

func (d *Disconnected) UpdateJobCoordinates(context.Context, string, models.Coordinates) error {
	return d.err()
}

func (d *Disconnected) IncrementFailureCount(context.Context, string, string) error { return d.err() }

func (d *Disconnected) ReplaceJobs(context.Context, []models.JobPosting) (int, error) {
	return 0, d.err()
}

func (d *Disconnected) Ping(context.Context) error { return d.err() }

func (d *Disconnected) Close(context.Context) error { return nil }
