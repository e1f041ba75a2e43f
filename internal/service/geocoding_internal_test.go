package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/UnknownOlympus/jobheat/internal/metrics"
	"github.com/UnknownOlympus/jobheat/internal/models"
	"github.com/UnknownOlympus/jobheat/test/mocks"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestProcessBatch(t *testing.T) {
	mockRepo := mocks.NewInterface(t)
	mockProvider := mocks.NewProvider(t)
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	reg := prometheus.NewRegistry()
	metrics := metrics.NewMetrics(reg)
	ctx := t.Context()
	service := NewGeocodingService(logger, mockRepo, mockProvider, "static", metrics, 2, 1*time.Second, ", India")

	t.Run("successful processing", func(t *testing.T) {
		postings := []models.JobPosting{{ID: "1", Location: "Pune"}}
		coords := &models.Coordinates{Latitude: 18.52, Longitude: 73.85}

		mockRepo.On("FetchJobsForGeocoding", ctx, geocodingBatchSize).Return(postings, nil).Once()
		mockProvider.On("Geocode", ctx, "Pune, India").Return(coords, nil).Once()
		mockRepo.On("UpdateJobCoordinates", ctx, "1", *coords).Return(nil).Once()

		service.processBatch(ctx)

		mockRepo.AssertExpectations(t)
		mockProvider.AssertExpectations(t)
		assert.InDelta(t, 1, testutil.ToFloat64(metrics.JobsGeocoded.WithLabelValues("success")), 0)
	})

	t.Run("suffix is not added twice", func(t *testing.T) {
		postings := []models.JobPosting{{ID: "2", Location: " Noida, India "}}
		coords := &models.Coordinates{Latitude: 28.53, Longitude: 77.39}

		mockRepo.On("FetchJobsForGeocoding", ctx, geocodingBatchSize).Return(postings, nil).Once()
		mockProvider.On("Geocode", ctx, "Noida, India").Return(coords, nil).Once()
		mockRepo.On("UpdateJobCoordinates", ctx, "2", *coords).Return(nil).Once()

		service.processBatch(ctx)
	})

	t.Run("fetch postings returns error", func(t *testing.T) {
		mockRepo.On("FetchJobsForGeocoding", ctx, geocodingBatchSize).Return(nil, assert.AnError).Once()

		service.processBatch(ctx)

		mockRepo.AssertExpectations(t)
		mockProvider.AssertExpectations(t)
	})

	t.Run("fetch postings returns empty list", func(t *testing.T) {
		mockRepo.On("FetchJobsForGeocoding", ctx, geocodingBatchSize).Return([]models.JobPosting{}, nil).Once()

		service.processBatch(ctx)

		mockRepo.AssertExpectations(t)
		mockProvider.AssertExpectations(t)
	})

	t.Run("geocoding provider returns error", func(t *testing.T) {
		postings := []models.JobPosting{{ID: "3", Location: "Atlantis"}}
		geocodeErr := errors.New("geocoding failed")

		mockRepo.On("FetchJobsForGeocoding", ctx, geocodingBatchSize).Return(postings, nil).Once()
		mockProvider.On("Geocode", ctx, "Atlantis, India").Return(nil, geocodeErr).Once()
		mockRepo.On("IncrementFailureCount", ctx, "3", geocodeErr.Error()).Return(nil).Once()

		service.processBatch(ctx)

		mockRepo.AssertExpectations(t)
		mockProvider.AssertExpectations(t)
		assert.InDelta(t, 1, testutil.ToFloat64(metrics.ProviderErrors), 0)
	})

	t.Run("error to increment failure count", func(t *testing.T) {
		postings := []models.JobPosting{{ID: "3", Location: "Atlantis"}}
		geocodeErr := errors.New("geocoding failed")

		mockRepo.On("FetchJobsForGeocoding", ctx, geocodingBatchSize).Return(postings, nil).Once()
		mockProvider.On("Geocode", ctx, "Atlantis, India").Return(nil, geocodeErr).Once()
		mockRepo.On("IncrementFailureCount", ctx, "3", geocodeErr.Error()).Return(assert.AnError).Once()

		service.processBatch(ctx)

		mockRepo.AssertExpectations(t)
		mockProvider.AssertExpectations(t)
	})

	t.Run("error to update coordinates", func(t *testing.T) {
		postings := []models.JobPosting{{ID: "1", Location: "Pune"}}
		coords := &models.Coordinates{Latitude: 18.52, Longitude: 73.85}

		mockRepo.On("FetchJobsForGeocoding", ctx, geocodingBatchSize).Return(postings, nil).Once()
		mockProvider.On("Geocode", ctx, "Pune, India").Return(coords, nil).Once()
		mockRepo.On("UpdateJobCoordinates", ctx, "1", *coords).Return(assert.AnError).Once()

		service.processBatch(ctx)

		mockRepo.AssertExpectations(t)
		mockProvider.AssertExpectations(t)
	})

	t.Run("all workers released", func(t *testing.T) {
		assert.InDelta(t, 0, testutil.ToFloat64(metrics.ActiveWorkers), 0)
	})

	t.Run("start context cancelled", func(_ *testing.T) {
		tctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
		defer cancel()

		service.Run(tctx)
	})
}

func TestNewGeocodingService_MinimumOneWorker(t *testing.T) {
	service := NewGeocodingService(slog.Default(), nil, nil, "static", nil, 0, time.Second, "")

	assert.Equal(t, 1, service.numWorkers)
}
