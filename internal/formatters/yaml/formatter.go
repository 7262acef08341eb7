// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package yaml

import (
	"bytes"
	"fmt"

	"namefinder/internal/formatters"
	"namefinder/internal/formatters/shared"

	"gopkg.in/yaml.v3"
)

const indent = 2

// Formatter renders the JSON document shape as YAML. Compact mode writes a
// stream with one document per record.
type Formatter struct{}

// NewFormatter creates a new YAML formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "yaml"
}

func (f *Formatter) Description() string {
	return "Same shape as the JSON output, or one YAML document per message with compact output"
}

func (f *Formatter) FileExtension() string {
	return ".yaml"
}

func (f *Formatter) Format(records []formatters.Record, options formatters.FormatterOptions) (string, error) {
	response := shared.ConvertRecordsToJSONFormat(records, options)

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(indent)

	if options.Compact {
		for _, record := range response.Results {
			if err := encoder.Encode(record); err != nil {
				return "", fmt.Errorf("error formatting YAML record %q: %w", record.Text, err)
			}
		}
	} else if err := encoder.Encode(response); err != nil {
		return "", fmt.Errorf("error formatting YAML: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return "", fmt.Errorf("error formatting YAML: %w", err)
	}
	return buf.String(), nil
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
