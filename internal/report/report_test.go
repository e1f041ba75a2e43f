package report_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/UnknownOlympus/jobheat/internal/aggregate"
	"github.com/UnknownOlympus/jobheat/internal/models"
	"github.com/UnknownOlympus/jobheat/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAPI(t *testing.T, status int, body string) (*httptest.Server, *int) {
	t.Helper()

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, report.JobsPath, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv, &calls
}

func TestClient_FetchJobs(t *testing.T) {
	ctx := t.Context()

	t.Run("decodes jobs", func(t *testing.T) {
		srv, calls := newAPI(t, http.StatusOK,
			`[{"title":"Go Dev","company":"Acme","location":"Pune","lat":18.52,"lng":73.85,"salary":"","weight":1}]`)
		client := report.NewClient(srv.URL+"/", discardLogger())

		jobs, err := client.FetchJobs(ctx)

		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, "Go Dev", jobs[0].Title)
		assert.InDelta(t, 18.52, *jobs[0].Lat, 0)
		assert.Equal(t, 1, *calls)
	})

	t.Run("null body is an empty list", func(t *testing.T) {
		srv, _ := newAPI(t, http.StatusOK, `null`)

		jobs, err := report.NewClient(srv.URL, discardLogger()).FetchJobs(ctx)

		require.NoError(t, err)
		assert.NotNil(t, jobs)
		assert.Empty(t, jobs)
	})

	t.Run("server error", func(t *testing.T) {
		srv, _ := newAPI(t, http.StatusInternalServerError, `{"error":"Failed to load jobs"}`)

		_, err := report.NewClient(srv.URL, discardLogger()).FetchJobs(ctx)

		require.ErrorIs(t, err, report.ErrFetch)
		assert.ErrorContains(t, err, "status 500")
	})

	t.Run("malformed body", func(t *testing.T) {
		srv, _ := newAPI(t, http.StatusOK, `{"jobs":`)

		_, err := report.NewClient(srv.URL, discardLogger()).FetchJobs(ctx)

		require.ErrorIs(t, err, report.ErrFetch)
	})

	t.Run("unreachable server", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()

		_, err := report.NewClient(srv.URL, discardLogger()).FetchJobs(ctx)

		require.ErrorIs(t, err, report.ErrFetch)
	})
}

func TestClient_Dashboard(t *testing.T) {
	ctx := t.Context()

	t.Run("aggregates fetched jobs", func(t *testing.T) {
		srv, calls := newAPI(t, http.StatusOK, `[
			{"title":"A","location":"Bangalore","lat":12.97,"lng":77.59,"weight":1},
			{"title":"B","location":"Bangalore","lat":12.98,"lng":77.6,"weight":1},
			{"title":"C","location":"Pune","lat":18.52,"lng":73.85,"weight":1}
		]`)

		dash := report.NewClient(srv.URL, discardLogger()).Dashboard(ctx)

		assert.Equal(t, 3, dash.Total)
		require.NotNil(t, dash.TopCity)
		assert.Equal(t, models.CityCount{City: "Bangalore", Count: 2}, *dash.TopCity)
		assert.Equal(t, 1, *calls)
	})

	t.Run("fetch failure renders empty", func(t *testing.T) {
		srv, _ := newAPI(t, http.StatusInternalServerError, `{"error":"Failed to load jobs"}`)

		dash := report.NewClient(srv.URL, discardLogger()).Dashboard(ctx)

		assert.Equal(t, 0, dash.Total)
		assert.Nil(t, dash.TopCity)
		assert.Empty(t, dash.Chart)
		assert.Empty(t, dash.Latest)
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    report.Format
		wantErr bool
	}{
		{"", report.FormatTable, false},
		{"TABLE", report.FormatTable, false},
		{" json ", report.FormatJSON, false},
		{"yaml", report.FormatYAML, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := report.ParseFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func sampleDashboard() models.Dashboard {
	lat, lng := 12.97, 77.59
	return aggregate.BuildDashboard([]models.TransportJob{
		{Title: "Backend Engineer", Company: "Acme", Location: "Bangalore", Lat: &lat, Lng: &lng, Salary: "₹90,000 per month", Weight: 1},
		{Title: "Analyst", Location: "Pune", Weight: 1},
	})
}

func TestRender(t *testing.T) {
	dash := sampleDashboard()

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, report.Render(&buf, dash, report.FormatTable))

		out := buf.String()
		assert.True(t, strings.HasPrefix(out, "2 Jobs Mapped · Top: Bangalore (1)\n"))
		assert.Contains(t, out, "TOP CITIES")
		assert.Contains(t, out, "Backend Engineer")
		assert.Contains(t, out, "Unknown")
		assert.Contains(t, out, "₹90,000 per month")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, report.Render(&buf, dash, report.FormatJSON))

		var got models.Dashboard
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, dash, got)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, report.Render(&buf, dash, report.FormatYAML))

		var got map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, 2, got["total"])
		assert.NotContains(t, got, "heat_points")
	})

	t.Run("empty dashboard", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, report.Render(&buf, aggregate.BuildDashboard(nil), report.FormatTable))

		assert.True(t, strings.HasPrefix(buf.String(), "0 Jobs Mapped · Top:  (0)"))
	})

	t.Run("unsupported", func(t *testing.T) {
		require.Error(t, report.Render(io.Discard, dash, report.Format("xml")))
	})
}
