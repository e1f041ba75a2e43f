// Package report fetches jobs from a running API and prints the dashboard summary.
package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/UnknownOlympus/jobheat/internal/aggregate"
	"github.com/UnknownOlympus/jobheat/internal/models"
)

// JobsPath is the API route the client reads.
const JobsPath = "/api/jobs"

// ErrFetch is returned when the jobs list could not be retrieved from the API.
var ErrFetch = errors.New("failed to fetch jobs")

// HTTPClient defines the interface for making HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client reads the jobs API.
type Client struct {
	http    HTTPClient
	baseURL string
	log     *slog.Logger
}

// NewClient creates a client for the API at baseURL.
func NewClient(baseURL string, log *slog.Logger) *Client {
	const timeout = 15 * time.Second

	return NewClientWithHTTP(&http.Client{Timeout: timeout}, baseURL, log)
}

// NewClientWithHTTP creates a client with a custom HTTP client.
func NewClientWithHTTP(client HTTPClient, baseURL string, log *slog.Logger) *Client {
	return &Client{http: client, baseURL: strings.TrimRight(baseURL, "/"), log: log}
}

// FetchJobs performs a single GET of the jobs list. Any failure wraps ErrFetch.
func (c *Client) FetchJobs(ctx context.Context) ([]models.TransportJob, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+JobsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: API returned status %d", ErrFetch, resp.StatusCode)
	}

	var jobs []models.TransportJob
	if err = json.NewDecoder(resp.Body).Decode(&jobs); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %w", ErrFetch, err)
	}
	if jobs == nil {
		jobs = []models.TransportJob{}
	}

	return jobs, nil
}

// Dashboard loads the jobs once and aggregates them. A failed load is logged
// and yields the empty dashboard, so callers always have something to render.
func (c *Client) Dashboard(ctx context.Context) models.Dashboard {
	jobs, err := c.FetchJobs(ctx)
	if err != nil {
		c.log.ErrorContext(ctx, "Failed to load jobs", "url", c.baseURL+JobsPath, "error", err)
		return aggregate.BuildDashboard(nil)
	}

	return aggregate.BuildDashboard(jobs)
}
