package aggregate

import (
	"strings"
	"unicode/utf8"

	"github.com/UnknownOlympus/jobheat/internal/models"
)

const (
	maxTitleRunes   = 32
	ellipsis        = "…"
	untitled        = "Untitled"
	unknownCompany  = "Unknown"
	defaultLocation = "India"
	invalidSalary   = "NaN"
)

// FormatJobSummary prepares a posting for the latest jobs list.
func FormatJobSummary(job models.TransportJob) models.JobSummary {
	title := job.Title
	if title == "" {
		title = untitled
	}
	title = strings.Join(strings.Fields(title), " ")
	if utf8.RuneCountInString(title) > maxTitleRunes {
		title = string([]rune(title)[:maxTitleRunes]) + ellipsis
	}

	company := job.Company
	if company == "" {
		company = unknownCompany
	}

	location := job.Location
	if location == "" {
		location = defaultLocation
	}

	salary := job.Salary
	if salary == invalidSalary {
		salary = ""
	}

	return models.JobSummary{
		Title:    title,
		Company:  strings.TrimSpace(company),
		Location: strings.TrimSpace(location),
		Salary:   salary,
	}
}
