// Package aggregate derives the heatmap, chart and list view-models from a
// snapshot of transport jobs. Every function here is pure.
package aggregate

import (
	"math"
	"sort"

	"github.com/UnknownOlympus/jobheat/internal/models"
)

const (
	// DefaultWeight replaces a missing, zero or non-finite job weight.
	DefaultWeight = 1.0
	// ChartSize is the number of cities shown in the bar chart.
	ChartSize = 7
	// LatestSize is the number of postings shown in the latest jobs list.
	LatestSize = 5
)

// NormalizeWeight returns w unless it is zero or not finite, in which case DefaultWeight is used.
// A stored zero weight is therefore indistinguishable from an absent one.
func NormalizeWeight(w float64) float64 {
	if w == 0 || math.IsNaN(w) || math.IsInf(w, 0) {
		return DefaultWeight
	}
	return w
}

// HasCoordinates reports whether the job can be placed on the map.
// Both coordinates must be present and non-zero, so a posting exactly on the
// equator or the prime meridian is dropped on purpose.
func HasCoordinates(job models.TransportJob) bool {
	return isUsableCoordinate(job.Lat) && isUsableCoordinate(job.Lng)
}

func isUsableCoordinate(v *float64) bool {
	return v != nil && *v != 0 && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

// ComputeCityCounts counts postings per exact location label and orders the
// result by count, highest first. Equal counts keep first-seen order.
// Postings with an empty location are skipped.
func ComputeCityCounts(jobs []models.TransportJob) []models.CityCount {
	index := make(map[string]int)
	counts := []models.CityCount{}

	for _, job := range jobs {
		if job.Location == "" {
			continue
		}
		if i, ok := index[job.Location]; ok {
			counts[i].Count++
			continue
		}
		index[job.Location] = len(counts)
		counts = append(counts, models.CityCount{City: job.Location, Count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})

	return counts
}

// ComputeHeatPoints maps every placeable job to a weighted heat point.
func ComputeHeatPoints(jobs []models.TransportJob) []models.HeatPoint {
	points := []models.HeatPoint{}
	for _, job := range jobs {
		if !HasCoordinates(job) {
			continue
		}
		points = append(points, models.HeatPoint{
			Lat:    *job.Lat,
			Lng:    *job.Lng,
			Weight: NormalizeWeight(job.Weight),
		})
	}

	return points
}

// BuildDashboard computes every derived view of a snapshot in one pass.
// Callers keep the result for as long as they hold the snapshot.
func BuildDashboard(jobs []models.TransportJob) models.Dashboard {
	cities := ComputeCityCounts(jobs)
	points := ComputeHeatPoints(jobs)

	latest := make([]models.JobSummary, 0, LatestSize)
	for _, job := range jobs[:min(len(jobs), LatestSize)] {
		latest = append(latest, FormatJobSummary(job))
	}

	dash := models.Dashboard{
		Total:      len(jobs),
		Mapped:     len(points),
		Cities:     cities,
		Chart:      cities[:min(len(cities), ChartSize)],
		HeatPoints: points,
		Latest:     latest,
	}
	if len(cities) > 0 {
		top := cities[0]
		dash.TopCity = &top
	}

	return dash
}
