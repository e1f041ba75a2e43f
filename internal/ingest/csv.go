package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ErrMissingTitleColumn is returned when the CSV header has no title column.
var ErrMissingTitleColumn = errors.New("csv header has no title column")

// Row is one scraped posting as exported by the scraper.
type Row struct {
	Title        string
	Company      string
	Location     string
	SalaryString string
	MinAmount    *float64
	Description  string
}

// columnAliases maps a Row field to the header names that may carry it.
var columnAliases = map[string][]string{
	"title":         {"title", "job_title"},
	"company":       {"company", "company_name"},
	"location":      {"location"},
	"salary_string": {"salary_string"},
	"min_amount":    {"min_amount"},
	"description":   {"description"},
}

// ReadCSV parses a scraper export. Only the title column is required;
// unknown columns are ignored.
func ReadCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	columns := indexColumns(header)
	if _, ok := columns["title"]; !ok {
		return nil, ErrMissingTitleColumn
	}

	rows := []Row{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv record: %w", err)
		}

		field := func(name string) string {
			idx, ok := columns[name]
			if !ok || idx >= len(record) {
				return ""
			}
			return cleanCell(record[idx])
		}

		rows = append(rows, Row{
			Title:        field("title"),
			Company:      field("company"),
			Location:     field("location"),
			SalaryString: field("salary_string"),
			MinAmount:    parseAmount(field("min_amount")),
			Description:  field("description"),
		})
	}

	return rows, nil
}

func indexColumns(header []string) map[string]int {
	byName := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, seen := byName[name]; !seen {
			byName[name] = i
		}
	}

	columns := make(map[string]int, len(columnAliases))
	for field, aliases := range columnAliases {
		for _, alias := range aliases {
			if idx, ok := byName[alias]; ok {
				columns[field] = idx
				break
			}
		}
	}

	return columns
}

// cleanCell treats the pandas missing markers as empty.
func cleanCell(v string) string {
	v = strings.TrimSpace(v)
	switch strings.ToLower(v) {
	case "nan", "none", "null":
		return ""
	}

	return v
}

func parseAmount(v string) *float64 {
	if v == "" {
		return nil
	}
	amount, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil
	}

	return &amount
}
