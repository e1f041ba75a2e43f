package aggregate_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/UnknownOlympus/jobheat/internal/aggregate"
	"github.com/UnknownOlympus/jobheat/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func sampleJobs() []models.TransportJob {
	return []models.TransportJob{
		{Title: "SWE", Location: "Bangalore", Lat: ptr(12.97), Lng: ptr(77.59), Weight: 2},
		{Title: "SRE", Location: "Pune", Lat: ptr(18.52), Lng: ptr(73.85), Weight: 1},
		{Title: "QA", Location: "", Lat: ptr(20.59), Lng: ptr(78.96), Weight: 1},
		{Title: "PM", Location: "Bangalore", Lat: nil, Lng: ptr(77.6), Weight: 1},
		{Title: "DS", Location: "Delhi", Lat: ptr(0), Lng: ptr(75.0), Weight: 1.3},
		{Title: "ML", Location: "bangalore", Lat: ptr(12.9), Lng: ptr(77.5), Weight: 0},
	}
}

func TestComputeCityCounts(t *testing.T) {
	t.Parallel()

	t.Run("counts per location ordered by count", func(t *testing.T) {
		t.Parallel()
		jobs := []models.TransportJob{
			{Location: "Bangalore"},
			{Location: "Pune"},
			{Location: "Bangalore"},
		}

		counts := aggregate.ComputeCityCounts(jobs)

		assert.Equal(t, []models.CityCount{{City: "Bangalore", Count: 2}, {City: "Pune", Count: 1}}, counts)
	})

	t.Run("ties keep first seen order", func(t *testing.T) {
		t.Parallel()
		jobs := []models.TransportJob{
			{Location: "Pune"}, {Location: "Delhi"}, {Location: "Noida"}, {Location: "Delhi"}, {Location: "Noida"},
		}

		counts := aggregate.ComputeCityCounts(jobs)

		assert.Equal(t, []models.CityCount{
			{City: "Delhi", Count: 2},
			{City: "Noida", Count: 2},
			{City: "Pune", Count: 1},
		}, counts)
	})

	t.Run("location match is exact", func(t *testing.T) {
		t.Parallel()
		counts := aggregate.ComputeCityCounts(sampleJobs())

		assert.Equal(t, []models.CityCount{
			{City: "Bangalore", Count: 2},
			{City: "Pune", Count: 1},
			{City: "Delhi", Count: 1},
			{City: "bangalore", Count: 1},
		}, counts)
	})

	t.Run("empty locations are dropped", func(t *testing.T) {
		t.Parallel()
		counts := aggregate.ComputeCityCounts([]models.TransportJob{{Location: ""}, {Location: ""}})

		assert.Empty(t, counts)
		assert.NotNil(t, counts)
	})

	t.Run("sum equals jobs with location and order is non-increasing", func(t *testing.T) {
		t.Parallel()
		jobs := sampleJobs()
		counts := aggregate.ComputeCityCounts(jobs)

		withLocation := 0
		for _, job := range jobs {
			if job.Location != "" {
				withLocation++
			}
		}
		sum := 0
		for i, c := range counts {
			sum += c.Count
			if i > 0 {
				assert.LessOrEqual(t, c.Count, counts[i-1].Count)
			}
		}
		assert.Equal(t, withLocation, sum)
	})
}

func TestComputeHeatPoints(t *testing.T) {
	t.Parallel()

	t.Run("filters jobs without usable coordinates", func(t *testing.T) {
		t.Parallel()
		points := aggregate.ComputeHeatPoints(sampleJobs())

		assert.Equal(t, []models.HeatPoint{
			{Lat: 12.97, Lng: 77.59, Weight: 2},
			{Lat: 18.52, Lng: 73.85, Weight: 1},
			{Lat: 20.59, Lng: 78.96, Weight: 1},
			{Lat: 12.9, Lng: 77.5, Weight: 1},
		}, points)
	})

	t.Run("zero latitude is excluded", func(t *testing.T) {
		t.Parallel()
		points := aggregate.ComputeHeatPoints([]models.TransportJob{{Lat: ptr(0), Lng: ptr(75.0), Weight: 1}})

		assert.Empty(t, points)
	})

	t.Run("NaN coordinate is excluded", func(t *testing.T) {
		t.Parallel()
		points := aggregate.ComputeHeatPoints([]models.TransportJob{{Lat: ptr(math.NaN()), Lng: ptr(75.0)}})

		assert.Empty(t, points)
	})

	t.Run("no deduplication", func(t *testing.T) {
		t.Parallel()
		job := models.TransportJob{Lat: ptr(18.5), Lng: ptr(73.8), Weight: 1}
		points := aggregate.ComputeHeatPoints([]models.TransportJob{job, job, job})

		assert.Len(t, points, 3)
	})

	t.Run("encodes as triples", func(t *testing.T) {
		t.Parallel()
		body, err := json.Marshal(aggregate.ComputeHeatPoints([]models.TransportJob{
			{Lat: ptr(18.5), Lng: ptr(73.8), Weight: 2},
		}))

		require.NoError(t, err)
		assert.JSONEq(t, `[[18.5,73.8,2]]`, string(body))
	})
}

func TestNormalizeWeight(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 1.0, aggregate.NormalizeWeight(0), 0)
	assert.InDelta(t, 1.0, aggregate.NormalizeWeight(math.NaN()), 0)
	assert.InDelta(t, 1.0, aggregate.NormalizeWeight(math.Inf(1)), 0)
	assert.InDelta(t, 1.0, aggregate.NormalizeWeight(math.Inf(-1)), 0)
	assert.InDelta(t, 2.5, aggregate.NormalizeWeight(2.5), 0)
	assert.InDelta(t, -1.0, aggregate.NormalizeWeight(-1), 0)
}

func TestAggregationIsIdempotent(t *testing.T) {
	t.Parallel()
	jobs := sampleJobs()

	assert.Equal(t, aggregate.ComputeCityCounts(jobs), aggregate.ComputeCityCounts(jobs))
	assert.Equal(t, aggregate.ComputeHeatPoints(jobs), aggregate.ComputeHeatPoints(jobs))
	assert.Equal(t, aggregate.BuildDashboard(jobs), aggregate.BuildDashboard(jobs))
	assert.Equal(t, sampleJobs(), jobs)
}

func TestBuildDashboard(t *testing.T) {
	t.Parallel()

	t.Run("empty snapshot", func(t *testing.T) {
		t.Parallel()
		dash := aggregate.BuildDashboard(nil)

		assert.Equal(t, 0, dash.Total)
		assert.Equal(t, 0, dash.Mapped)
		assert.Nil(t, dash.TopCity)
		assert.Empty(t, dash.Chart)
		assert.Empty(t, dash.HeatPoints)
		assert.Empty(t, dash.Latest)
	})

	t.Run("chart and latest are capped", func(t *testing.T) {
		t.Parallel()
		cities := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I"}
		var jobs []models.TransportJob
		for i, city := range cities {
			for range len(cities) - i {
				jobs = append(jobs, models.TransportJob{Title: "Job " + city, Location: city, Weight: 1})
			}
		}

		dash := aggregate.BuildDashboard(jobs)

		assert.Equal(t, len(jobs), dash.Total)
		require.NotNil(t, dash.TopCity)
		assert.Equal(t, models.CityCount{City: "A", Count: 9}, *dash.TopCity)
		assert.Len(t, dash.Cities, 9)
		assert.Len(t, dash.Chart, aggregate.ChartSize)
		assert.Equal(t, "G", dash.Chart[6].City)
		assert.Len(t, dash.Latest, aggregate.LatestSize)
		assert.Equal(t, "Job A", dash.Latest[0].Title)
	})

	t.Run("mapped counts heat points", func(t *testing.T) {
		t.Parallel()
		dash := aggregate.BuildDashboard(sampleJobs())

		assert.Equal(t, 6, dash.Total)
		assert.Equal(t, 4, dash.Mapped)
		assert.Len(t, dash.HeatPoints, 4)
	})
}
