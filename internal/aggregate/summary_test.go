package aggregate_test

import (
	"strings"
	"testing"

	"github.com/UnknownOlympus/jobheat/internal/aggregate"
	"github.com/UnknownOlympus/jobheat/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestFormatJobSummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		job  models.TransportJob
		want models.JobSummary
	}{
		{
			name: "complete posting",
			job:  models.TransportJob{Title: "SWE", Company: "Acme", Location: "Pune", Salary: "10 LPA"},
			want: models.JobSummary{Title: "SWE", Company: "Acme", Location: "Pune", Salary: "10 LPA"},
		},
		{
			name: "whitespace in title is collapsed",
			job:  models.TransportJob{Title: "  Senior \n\t Backend   Engineer ", Company: "Acme", Location: "Pune"},
			want: models.JobSummary{Title: "Senior Backend Engineer", Company: "Acme", Location: "Pune"},
		},
		{
			name: "missing fields get defaults",
			job:  models.TransportJob{},
			want: models.JobSummary{Title: "Untitled", Company: "Unknown", Location: "India"},
		},
		{
			name: "company and location are trimmed",
			job:  models.TransportJob{Title: "QA", Company: "  Acme ", Location: " Delhi  "},
			want: models.JobSummary{Title: "QA", Company: "Acme", Location: "Delhi"},
		},
		{
			name: "NaN salary is hidden",
			job:  models.TransportJob{Title: "QA", Company: "Acme", Location: "Delhi", Salary: "NaN"},
			want: models.JobSummary{Title: "QA", Company: "Acme", Location: "Delhi"},
		},
		{
			name: "title of exactly the limit is kept",
			job:  models.TransportJob{Title: strings.Repeat("a", 32), Company: "Acme", Location: "Pune"},
			want: models.JobSummary{Title: strings.Repeat("a", 32), Company: "Acme", Location: "Pune"},
		},
		{
			name: "long title is truncated with ellipsis",
			job:  models.TransportJob{Title: strings.Repeat("b", 40), Company: "Acme", Location: "Pune"},
			want: models.JobSummary{Title: strings.Repeat("b", 32) + "…", Company: "Acme", Location: "Pune"},
		},
		{
			name: "truncation counts runes",
			job:  models.TransportJob{Title: strings.Repeat("₹", 33), Company: "Acme", Location: "Pune"},
			want: models.JobSummary{Title: strings.Repeat("₹", 32) + "…", Company: "Acme", Location: "Pune"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, aggregate.FormatJobSummary(tt.job))
		})
	}
}
