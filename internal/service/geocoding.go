package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/UnknownOlympus/jobheat/internal/geocoding"
	"github.com/UnknownOlympus/jobheat/internal/metrics"
	"github.com/UnknownOlympus/jobheat/internal/models"
	"github.com/UnknownOlympus/jobheat/internal/repository"
)

// geocodingBatchSize is the number of postings fetched per poll.
const geocodingBatchSize = 100

// GeocodingService fills in the coordinates of postings that have a location
// but were stored without lat/lng.
type GeocodingService struct {
	log           *slog.Logger         // Logger for logging service activities
	repo          repository.Interface // Job record store
	provider      geocoding.Provider   // Geocoding provider for external geocoding services
	providerName  string               // Name of the provider for metrics labeling
	metrics       *metrics.Metrics     // Metrics for tracking service performance
	numWorkers    int                  // Number of concurrent workers for processing
	pollInterval  time.Duration        // Interval between polls of the store
	addressSuffix string               // Appended to every location, e.g. ", India"
}

// NewGeocodingService creates a new instance of GeocodingService.
func NewGeocodingService(
	log *slog.Logger,
	repo repository.Interface,
	provider geocoding.Provider,
	providerName string,
	metrics *metrics.Metrics,
	numWorkers int,
	pollInterval time.Duration,
	addressSuffix string,
) *GeocodingService {
	return &GeocodingService{
		log:           log,
		repo:          repo,
		provider:      provider,
		providerName:  providerName,
		metrics:       metrics,
		numWorkers:    max(numWorkers, 1),
		pollInterval:  pollInterval,
		addressSuffix: addressSuffix,
	}
}

// Run polls the store on every tick until ctx is cancelled.
func (gs *GeocodingService) Run(ctx context.Context) {
	ticker := time.NewTicker(gs.pollInterval)
	defer ticker.Stop()

	gs.log.InfoContext(ctx, "Geocoding service started", "provider", gs.providerName, "interval", gs.pollInterval)

	for {
		select {
		case <-ctx.Done():
			gs.log.InfoContext(ctx, "Geocoding service stopped")
			return
		case <-ticker.C:
			gs.log.DebugContext(ctx, "Polling for postings to geocode")
			gs.processBatch(ctx)
		}
	}
}

// processBatch fetches one batch of postings and fans it out to the worker pool.
func (gs *GeocodingService) processBatch(ctx context.Context) {
	postings, err := gs.repo.FetchJobsForGeocoding(ctx, geocodingBatchSize)
	if err != nil {
		gs.log.ErrorContext(ctx, "Failed to fetch postings for geocoding", "error", err)
		return
	}
	if len(postings) == 0 {
		gs.log.DebugContext(ctx, "No postings to geocode")
		return
	}

	gs.log.InfoContext(ctx, "Found postings to geocode, starting worker pool",
		"postings", len(postings),
		"num_workers", gs.numWorkers,
	)

	queue := make(chan models.JobPosting, len(postings))
	var wgr sync.WaitGroup

	for i := 1; i <= gs.numWorkers; i++ {
		wgr.Add(1)
		go gs.worker(ctx, i, &wgr, queue)
	}

	for _, posting := range postings {
		queue <- posting
	}
	close(queue)

	wgr.Wait()
	gs.log.InfoContext(ctx, "Geocoding batch finished")
}

// worker geocodes postings from queue. Failures are recorded on the posting so
// it stops being retried after repository.MaxGeocodingAttempts.
func (gs *GeocodingService) worker(ctx context.Context, idx int, wg *sync.WaitGroup, queue <-chan models.JobPosting) {
	defer wg.Done()
	for posting := range queue {
		gs.metrics.ActiveWorkers.Inc()
		gs.geocode(ctx, idx, posting)
		gs.metrics.ActiveWorkers.Dec()
	}
}

func (gs *GeocodingService) geocode(ctx context.Context, idx int, posting models.JobPosting) {
	address := geocoding.Address(posting.Location, gs.addressSuffix)
	gs.log.DebugContext(ctx, "Geocoding posting", "worker", idx, "job", posting.ID, "address", address)

	startTime := time.Now()
	coords, err := gs.provider.Geocode(ctx, address)
	gs.metrics.ProviderSeconds.WithLabelValues(gs.providerName).Observe(time.Since(startTime).Seconds())

	if err != nil {
		gs.log.ErrorContext(ctx, "Failed to geocode", "worker", idx, "job", posting.ID, "error", err)
		gs.metrics.JobsGeocoded.WithLabelValues("failure").Inc()
		gs.metrics.ProviderErrors.Inc()

		if err = gs.repo.IncrementFailureCount(ctx, posting.ID, err.Error()); err != nil {
			gs.log.ErrorContext(ctx, "Could not update failure count for posting",
				"worker", idx,
				"job", posting.ID,
				"error", err,
			)
		}
		return
	}

	gs.metrics.JobsGeocoded.WithLabelValues("success").Inc()

	if err = gs.repo.UpdateJobCoordinates(ctx, posting.ID, *coords); err != nil {
		gs.log.ErrorContext(ctx, "Failed to update coordinates for posting",
			"worker", idx,
			"job", posting.ID,
			"error", err,
		)
		return
	}

	gs.log.DebugContext(ctx, "Worker geocoded posting", "worker", idx, "job", posting.ID)
}
