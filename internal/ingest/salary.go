package ingest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const defaultInterval = "month"

var salaryPattern = regexp.MustCompile(
	`(?i)(?:₹|Rs\.?)\s*([\d,]+(?:\.\d+)?)\s*(?:-|to)?\s*(?:₹|Rs\.?)?\s*([\d,]+(?:\.\d+)?)?\s*(?:per|a)?\s*(month|year|hr|week)?`,
)

// Salary is a rupee amount or range found in a job description.
type Salary struct {
	Text      string
	MinAmount float64
	MaxAmount float64
	Interval  string
}

// ExtractSalary finds the first rupee amount in a description, which may be HTML.
func ExtractSalary(description string) (Salary, bool) {
	text := plainText(description)
	if text == "" {
		return Salary{}, false
	}

	match := salaryPattern.FindStringSubmatch(text)
	if match == nil {
		return Salary{}, false
	}

	minRaw, maxRaw, interval := match[1], match[2], strings.ToLower(match[3])
	if interval == "" {
		interval = defaultInterval
	}

	minAmount := parseAmount(minRaw)
	if minAmount == nil {
		return Salary{}, false
	}

	salary := Salary{
		Text:      fmt.Sprintf("₹%s %s", minRaw, interval),
		MinAmount: *minAmount,
		MaxAmount: *minAmount,
		Interval:  interval,
	}
	if maxAmount := parseAmount(maxRaw); maxAmount != nil {
		salary.Text = fmt.Sprintf("₹%s - ₹%s %s", minRaw, maxRaw, interval)
		salary.MaxAmount = *maxAmount
	}

	return salary, true
}

// plainText strips markup and collapses whitespace.
func plainText(description string) string {
	if !strings.ContainsAny(description, "<&") {
		return strings.Join(strings.Fields(description), " ")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(description))
	if err != nil {
		return strings.Join(strings.Fields(description), " ")
	}

	return strings.Join(strings.Fields(doc.Text()), " ")
}
