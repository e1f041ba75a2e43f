// Package ingest loads scraped job postings into the record store.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/UnknownOlympus/jobheat/internal/aggregate"
	"github.com/UnknownOlympus/jobheat/internal/geocoding"
	"github.com/UnknownOlympus/jobheat/internal/metrics"
	"github.com/UnknownOlympus/jobheat/internal/models"
	"github.com/UnknownOlympus/jobheat/internal/repository"
	"github.com/gofrs/flock"
	"golang.org/x/sync/errgroup"
)

const (
	defaultTitle    = "Untitled"
	defaultCompany  = "Unknown"
	defaultLocation = "India"

	// salaryBoost is the extra weight of the best paid posting.
	salaryBoost = 0.5
)

// ErrImportInProgress is returned when another import holds the lock file.
var ErrImportInProgress = errors.New("another import is in progress")

// Result describes a finished import.
type Result struct {
	Read     int // Read is the number of CSV rows parsed.
	Written  int // Written is the number of postings stored.
	Geocoded int // Geocoded is the number of postings that received coordinates.
}

// Importer replaces the store contents with a scraper export.
type Importer struct {
	log           *slog.Logger
	repo          repository.Interface
	provider      geocoding.Provider
	metrics       *metrics.Metrics
	workers       int
	lockPath      string
	addressSuffix string
}

// NewImporter creates an importer. lockPath guards against concurrent imports.
func NewImporter(
	log *slog.Logger,
	repo repository.Interface,
	provider geocoding.Provider,
	metrics *metrics.Metrics,
	workers int,
	lockPath string,
	addressSuffix string,
) *Importer {
	return &Importer{
		log:           log,
		repo:          repo,
		provider:      provider,
		metrics:       metrics,
		workers:       max(workers, 1),
		lockPath:      lockPath,
		addressSuffix: addressSuffix,
	}
}

// Import reads r, normalizes and geocodes every row, then replaces all stored postings.
func (im *Importer) Import(ctx context.Context, r io.Reader) (Result, error) {
	lock := flock.New(im.lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return Result{}, fmt.Errorf("failed to acquire import lock: %w", err)
	}
	if !locked {
		return Result{}, ErrImportInProgress
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			im.log.WarnContext(ctx, "Failed to release import lock", "path", im.lockPath, "error", err)
		}
	}()

	rows, err := ReadCSV(r)
	if err != nil {
		return Result{}, err
	}
	im.log.InfoContext(ctx, "Loaded rows", "rows", len(rows))

	postings := BuildPostings(rows)

	geocoded, err := im.geocode(ctx, postings)
	if err != nil {
		return Result{}, err
	}

	written, err := im.repo.ReplaceJobs(ctx, postings)
	if err != nil {
		return Result{}, fmt.Errorf("failed to store postings: %w", err)
	}
	im.metrics.JobsImported.Add(float64(written))

	im.log.InfoContext(ctx, "Import finished", "written", written, "geocoded", geocoded)

	return Result{Read: len(rows), Written: written, Geocoded: geocoded}, nil
}

// geocode fills coordinates in place. A posting that cannot be geocoded keeps
// nil coordinates and is picked up later by the geocoding worker.
func (im *Importer) geocode(ctx context.Context, postings []models.JobPosting) (int, error) {
	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(im.workers)

	found := make([]bool, len(postings))
	for i := range postings {
		group.Go(func() error {
			address := geocoding.Address(postings[i].Location, im.addressSuffix)
			coords, err := im.provider.Geocode(gctx, address)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				im.log.WarnContext(gctx, "Failed to geocode posting", "location", address, "error", err)
				return nil
			}

			lat, lng := coords.Latitude, coords.Longitude
			postings[i].Lat, postings[i].Lng = &lat, &lng
			found[i] = true
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return 0, fmt.Errorf("geocoding interrupted: %w", err)
	}

	geocoded := 0
	for _, ok := range found {
		if ok {
			geocoded++
		}
	}

	return geocoded, nil
}

// BuildPostings applies the scraper defaults, fills missing salaries from the
// description and weights each posting by its minimum salary.
func BuildPostings(rows []Row) []models.JobPosting {
	amounts := make([]*float64, len(rows))
	postings := make([]models.JobPosting, 0, len(rows))

	for i, row := range rows {
		salaryString, minAmount := row.SalaryString, row.MinAmount
		if minAmount == nil || salaryString == "" {
			if salary, ok := ExtractSalary(row.Description); ok {
				salaryString = salary.Text
				minAmount = &salary.MinAmount
			}
		}
		amounts[i] = minAmount

		postings = append(postings, models.JobPosting{
			Title:        withDefault(row.Title, defaultTitle),
			CompanyName:  withDefault(row.Company, defaultCompany),
			Location:     withDefault(row.Location, defaultLocation),
			SalaryString: salaryString,
		})
	}

	for i, weight := range Weights(amounts) {
		postings[i].Weight = &weight
	}

	return postings
}

// Weights returns 1 + 0.5*amount/max(amount) per posting, or the default
// weight where the amount is unknown or no positive maximum exists.
func Weights(amounts []*float64) []float64 {
	peak := 0.0
	for _, amount := range amounts {
		if amount != nil && *amount > peak {
			peak = *amount
		}
	}

	weights := make([]float64, len(amounts))
	for i, amount := range amounts {
		weights[i] = aggregate.DefaultWeight
		if amount != nil && peak > 0 {
			weights[i] += salaryBoost * *amount / peak
		}
	}

	return weights
}

func withDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}

	return v
}
