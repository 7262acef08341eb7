// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package shared

import (
	"namefinder/internal/formatters"
	"namefinder/internal/namedetect"
)

// JSONResponse represents the top-level response structure for JSON/YAML output
type JSONResponse struct {
	Results []JSONRecord `json:"results" yaml:"results"`
	Summary Summary      `json:"summary" yaml:"summary"`
}

// JSONRecord represents a single detection in JSON/YAML format
type JSONRecord struct {
	Text          string                  `json:"text" yaml:"text"`
	BotMessage    string                  `json:"bot_message,omitempty" yaml:"bot_message,omitempty"`
	Language      string                  `json:"language" yaml:"language"`
	EntityValue   []namedetect.NameEntity `json:"entity_value" yaml:"entity_value"`
	OriginalText  []string                `json:"original_text" yaml:"original_text"`
	Stage         string                  `json:"stage,omitempty" yaml:"stage,omitempty"`
	TaggedText    string                  `json:"tagged_text,omitempty" yaml:"tagged_text,omitempty"`
	ProcessedText string                  `json:"processed_text,omitempty" yaml:"processed_text,omitempty"`
}

// Summary counts records and detected names
type Summary struct {
	Texts     int `json:"texts" yaml:"texts"`
	WithNames int `json:"with_names" yaml:"with_names"`
	Names     int `json:"names" yaml:"names"`
}

// ConvertRecordsToJSONFormat converts detection records to JSON/YAML format.
// Stage and the rewritten texts are only included in verbose mode.
func ConvertRecordsToJSONFormat(records []formatters.Record, options formatters.FormatterOptions) JSONResponse {
	response := JSONResponse{Results: make([]JSONRecord, 0, len(records))}

	for _, record := range records {
		out := JSONRecord{
			Text:         record.Text,
			BotMessage:   record.BotMessage,
			EntityValue:  []namedetect.NameEntity{},
			OriginalText: []string{},
		}
		if r := record.Result; r != nil {
			out.Language = r.Language
			if len(r.Entities) > 0 {
				out.EntityValue = r.Entities
				out.OriginalText = r.Substrings
			}
			if options.Verbose {
				out.Stage = string(r.Stage)
				out.TaggedText = r.TaggedText
				out.ProcessedText = r.ProcessedText
			}
		}

		response.Summary.Texts++
		if len(out.EntityValue) > 0 {
			response.Summary.WithNames++
			response.Summary.Names += len(out.EntityValue)
		}
		response.Results = append(response.Results, out)
	}

	return response
}
