// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package csv

import (
	"encoding/csv"
	"fmt"
	"strings"

	"namefinder/internal/formatters"
)

// Formatter implements CSV output formatting
type Formatter struct{}

// NewFormatter creates a new CSV formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "csv"
}

func (f *Formatter) Description() string {
	return "Comma-separated values, one row per detected name"
}

func (f *Formatter) FileExtension() string {
	return ".csv"
}

func (f *Formatter) Format(records []formatters.Record, options formatters.FormatterOptions) (string, error) {
	headers := []string{"Text", "Language", "First Name", "Middle Name", "Last Name", "Original Text"}
	if options.Verbose {
		headers = append(headers, "Stage", "Tagged Text")
	}

	var builder strings.Builder
	w := csv.NewWriter(&builder)
	if err := w.Write(headers); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, record := range records {
		for _, row := range f.createCSVRows(record, options) {
			if err := w.Write(row); err != nil {
				return "", fmt.Errorf("error writing CSV row: %w", err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("error writing CSV: %w", err)
	}
	return strings.TrimSuffix(builder.String(), "\n"), nil
}

// createCSVRows returns one row per entity, or a single name-less row when
// nothing was detected
func (f *Formatter) createCSVRows(record formatters.Record, options formatters.FormatterOptions) [][]string {
	result := record.Result
	language, stage, tagged := "", "", record.Text
	if result != nil {
		language, stage, tagged = result.Language, string(result.Stage), result.TaggedText
	}

	extra := func(row []string) []string {
		if options.Verbose {
			row = append(row, stage, tagged)
		}
		return row
	}

	if result == nil || len(result.Entities) == 0 {
		return [][]string{extra([]string{record.Text, language, "", "", "", ""})}
	}

	rows := make([][]string, 0, len(result.Entities))
	for i, entity := range result.Entities {
		rows = append(rows, extra([]string{
			record.Text,
			language,
			entity.FirstName,
			deref(entity.MiddleName),
			deref(entity.LastName),
			result.Substrings[i],
		}))
	}
	return rows
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
