// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package json

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"namefinder/internal/formatters"
	"namefinder/internal/formatters/shared"
)

// Formatter renders detection records as one JSON document, or as JSON Lines
// in compact mode.
type Formatter struct{}

// NewFormatter creates a new JSON formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "json"
}

func (f *Formatter) Description() string {
	return "Results and summary as JSON, or one JSON line per message with compact output"
}

func (f *Formatter) FileExtension() string {
	return ".json"
}

func (f *Formatter) Format(records []formatters.Record, options formatters.FormatterOptions) (string, error) {
	response := shared.ConvertRecordsToJSONFormat(records, options)

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	// Chat text often carries "<", ">" and "&"; keep it as typed.
	encoder.SetEscapeHTML(false)

	if options.Compact {
		// Nothing to stream for an empty batch
		for _, record := range response.Results {
			if err := encoder.Encode(record); err != nil {
				return "", fmt.Errorf("error formatting JSON record %q: %w", record.Text, err)
			}
		}
	} else {
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return "", fmt.Errorf("error formatting JSON: %w", err)
		}
	}

	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
