// Package web renders the heatmap dashboard page.
package web

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"

	"github.com/UnknownOlympus/jobheat/internal/aggregate"
	"github.com/UnknownOlympus/jobheat/internal/models"
)

//go:embed templates/index.html
var templates embed.FS

const pageTitle = "Job Heatmap LIVE"

// HeatOptions is passed verbatim to leaflet.heat.
type HeatOptions struct {
	Radius     int     `json:"radius"`
	Blur       int     `json:"blur"`
	MaxZoom    int     `json:"maxZoom"`
	Max        float64 `json:"max"`
	MinOpacity float64 `json:"minOpacity"`
}

// MapOptions positions the map over India.
type MapOptions struct {
	CenterLat float64
	CenterLng float64
	Zoom      float64
	Heat      HeatOptions
}

// DefaultMap is the static map configuration of the dashboard.
var DefaultMap = MapOptions{
	CenterLat: 21.5,
	CenterLng: 78.5,
	Zoom:      5.2,
	Heat: HeatOptions{
		Radius:     30,
		Blur:       20,
		MaxZoom:    8,
		Max:        1.5,
		MinOpacity: 0.2,
	},
}

// Loader provides one dashboard snapshot per page render.
type Loader interface {
	Dashboard(ctx context.Context) (models.Dashboard, error)
}

type bar struct {
	City    string
	Count   int
	Percent int
}

type view struct {
	Title     string
	APIPath   string
	Dashboard models.Dashboard
	Bars      []bar
	Map       MapOptions
}

// Page renders the dashboard. A failed load is logged and rendered as an empty dashboard.
type Page struct {
	log     *slog.Logger
	loader  Loader
	tmpl    *template.Template
	apiPath string
}

// NewPage parses the embedded template.
func NewPage(log *slog.Logger, loader Loader, apiPath string) (*Page, error) {
	tmpl, err := template.ParseFS(templates, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}

	return &Page{log: log, loader: loader, tmpl: tmpl, apiPath: apiPath}, nil
}

func (p *Page) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dash, err := p.loader.Dashboard(ctx)
	if err != nil {
		p.log.ErrorContext(ctx, "Failed to load jobs for dashboard page", "error", err)
		dash = aggregate.BuildDashboard(nil)
	}

	var buf bytes.Buffer
	if err = p.Render(&buf, dash); err != nil {
		p.log.ErrorContext(ctx, "Failed to render dashboard page", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err = buf.WriteTo(w); err != nil {
		p.log.ErrorContext(ctx, "failed to write reply", "error", err)
	}
}

// Render writes the page for dash.
func (p *Page) Render(w io.Writer, dash models.Dashboard) error {
	return p.tmpl.Execute(w, view{
		Title:     pageTitle,
		APIPath:   p.apiPath,
		Dashboard: dash,
		Bars:      bars(dash.Chart),
		Map:       DefaultMap,
	})
}

// bars scales the chart rows against the largest count.
func bars(chart []models.CityCount) []bar {
	out := make([]bar, 0, len(chart))
	if len(chart) == 0 {
		return out
	}

	const full = 100
	top := chart[0].Count
	for _, row := range chart {
		percent := full
		if top > 0 {
			percent = row.Count * full / top
		}
		out = append(out, bar{City: row.City, Count: row.Count, Percent: percent})
	}

	return out
}
