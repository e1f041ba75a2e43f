package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/UnknownOlympus/jobheat/internal/models"
	"gopkg.in/yaml.v3"
)

// Format represents command output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates format values.
func ParseFormat(v string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(v))) {
	case "", FormatTable:
		return FormatTable, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML:
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format %q", v)
	}
}

// Headline is the one-line summary shown above the map.
func Headline(dash models.Dashboard) string {
	city, count := "", 0
	if dash.TopCity != nil {
		city, count = dash.TopCity.City, dash.TopCity.Count
	}

	return fmt.Sprintf("%d Jobs Mapped · Top: %s (%d)", dash.Total, city, count)
}

// Render writes dash to w in the requested format.
func Render(w io.Writer, dash models.Dashboard, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(dash); err != nil {
			return fmt.Errorf("marshal json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(dash); err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}
		return enc.Close()
	case FormatTable:
		return renderTable(w, dash)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

func renderTable(w io.Writer, dash models.Dashboard) error {
	const padding = 2
	tw := tabwriter.NewWriter(w, 0, 0, padding, ' ', 0)

	fmt.Fprintln(tw, Headline(dash))
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "TOP CITIES")
	fmt.Fprintln(tw, "CITY\tJOBS")
	for _, row := range dash.Chart {
		fmt.Fprintln(tw, row.City+"\t"+strconv.Itoa(row.Count))
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "LATEST JOBS")
	fmt.Fprintln(tw, "TITLE\tCOMPANY\tLOCATION\tSALARY")
	for _, job := range dash.Latest {
		fmt.Fprintln(tw, strings.Join([]string{job.Title, job.Company, job.Location, job.Salary}, "\t"))
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}
