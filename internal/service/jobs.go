package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/UnknownOlympus/jobheat/internal/aggregate"
	"github.com/UnknownOlympus/jobheat/internal/metrics"
	"github.com/UnknownOlympus/jobheat/internal/models"
	"github.com/UnknownOlympus/jobheat/internal/repository"
)

// ErrStoreRead is returned when the record store could not be read.
var ErrStoreRead = errors.New("failed to read jobs from store")

// JobService answers read queries over the job record store.
type JobService struct {
	log     *slog.Logger
	repo    repository.Interface
	metrics *metrics.Metrics
}

// NewJobService creates a JobService backed by repo.
func NewJobService(log *slog.Logger, repo repository.Interface, metrics *metrics.Metrics) *JobService {
	return &JobService{log: log, repo: repo, metrics: metrics}
}

// ListJobs reads every stored posting and returns it in transport shape, in
// the order the store yields them. A failed read never returns partial data.
func (js *JobService) ListJobs(ctx context.Context) ([]models.TransportJob, error) {
	postings, err := js.repo.ListJobs(ctx)
	if err != nil {
		js.metrics.StoreReadErrors.Inc()
		return nil, fmt.Errorf("%w: %w", ErrStoreRead, err)
	}

	jobs := make([]models.TransportJob, 0, len(postings))
	for _, posting := range postings {
		jobs = append(jobs, ToTransport(posting))
	}

	js.metrics.JobsServed.Set(float64(len(jobs)))
	js.log.DebugContext(ctx, "Loaded jobs from store", "count", len(jobs))

	return jobs, nil
}

// Dashboard loads the jobs once and derives every view-model from them.
func (js *JobService) Dashboard(ctx context.Context) (models.Dashboard, error) {
	jobs, err := js.ListJobs(ctx)
	if err != nil {
		return models.Dashboard{}, err
	}

	return aggregate.BuildDashboard(jobs), nil
}

// ToTransport renames stored fields to their API names and fills in the default weight.
func ToTransport(posting models.JobPosting) models.TransportJob {
	weight := aggregate.DefaultWeight
	if posting.Weight != nil {
		weight = aggregate.NormalizeWeight(*posting.Weight)
	}

	return models.TransportJob{
		Title:    posting.Title,
		Company:  posting.CompanyName,
		Location: posting.Location,
		Lat:      finite(posting.Lat),
		Lng:      finite(posting.Lng),
		Salary:   posting.SalaryString,
		Weight:   weight,
	}
}

// finite drops NaN and infinite coordinates so they serialize as null.
func finite(v *float64) *float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return nil
	}
	return v
}
