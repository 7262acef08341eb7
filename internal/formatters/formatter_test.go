// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package formatters_test

import (
	stdjson "encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"namefinder/internal/formatters"
	_ "namefinder/internal/formatters/csv"
	_ "namefinder/internal/formatters/json"
	"namefinder/internal/formatters/shared"
	_ "namefinder/internal/formatters/text"
	_ "namefinder/internal/formatters/yaml"
	"namefinder/internal/namedetect"
)

func sampleRecords() []formatters.Record {
	entity, _ := namedetect.FormatName([]string{"yash", "doshi"})
	return []formatters.Record{
		{
			Text: "my name is yash doshi",
			Result: &namedetect.Result{
				Entities:      []namedetect.NameEntity{entity},
				Substrings:    []string{"yash doshi"},
				TaggedText:    "my name is _person_name_",
				ProcessedText: "my name is ",
				Language:      "en",
				Stage:         namedetect.StagePOSPattern,
			},
		},
		{
			Text:       "blue",
			BotMessage: "what is your favorite color",
			Result: &namedetect.Result{
				Entities:      []namedetect.NameEntity{},
				Substrings:    []string{},
				TaggedText:    "blue",
				ProcessedText: "blue",
				Language:      "en",
				Stage:         namedetect.StageGatePrior,
			},
		},
	}
}

func TestRegistry_List(t *testing.T) {
	assert.Equal(t, []string{"csv", "json", "text", "yaml"}, formatters.List())
	assert.Equal(t, "application/json", formatters.GetFormatInfo("json").MimeType)
	assert.Len(t, formatters.GetSupportedFormats(), 4)
}

func TestExport_UnknownFormat(t *testing.T) {
	_, err := formatters.Export("xml", nil, formatters.FormatterOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Available formats: csv, json, text, yaml")
}

func TestExport_JSON(t *testing.T) {
	out, err := formatters.Export("json", sampleRecords(), formatters.FormatterOptions{})
	require.NoError(t, err)

	var response shared.JSONResponse
	require.NoError(t, stdjson.Unmarshal([]byte(out), &response))
	require.Len(t, response.Results, 2)
	assert.Equal(t, []string{"yash doshi"}, response.Results[0].OriginalText)
	assert.Equal(t, "yash", response.Results[0].EntityValue[0].FirstName)
	assert.Empty(t, response.Results[0].Stage)
	assert.Empty(t, response.Results[1].EntityValue)
	assert.Equal(t, shared.Summary{Texts: 2, WithNames: 1, Names: 1}, response.Summary)
	assert.Contains(t, out, `"middle_name": null`)
}

func TestExport_YAMLMatchesJSONShape(t *testing.T) {
	opts := formatters.FormatterOptions{Verbose: true}
	out, err := formatters.Export("yaml", sampleRecords(), opts)
	require.NoError(t, err)

	var response shared.JSONResponse
	require.NoError(t, yaml.Unmarshal([]byte(out), &response))
	assert.Equal(t, shared.ConvertRecordsToJSONFormat(sampleRecords(), opts), response)
	assert.Equal(t, "pos_pattern", response.Results[0].Stage)
}

func TestExport_CSV(t *testing.T) {
	out, err := formatters.Export("csv", sampleRecords(), formatters.FormatterOptions{})
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Text,Language,First Name,Middle Name,Last Name,Original Text", lines[0])
	assert.Equal(t, "my name is yash doshi,en,yash,,doshi,yash doshi", lines[1])
	assert.Equal(t, "blue,en,,,,", lines[2])
}

func TestExport_Text(t *testing.T) {
	opts := formatters.FormatterOptions{NoColor: true}
	out, err := formatters.Export("text", sampleRecords(), opts)
	require.NoError(t, err)
	assert.Contains(t, out, "STATUS")
	assert.Contains(t, out, "[NAME  ]")
	assert.Contains(t, out, "first=yash last=doshi")
	assert.Contains(t, out, "[GATED ]")
	assert.Contains(t, out, "gate_prior_message")

	opts.Verbose = true
	out, err = formatters.Export("text", sampleRecords(), opts)
	require.NoError(t, err)
	assert.Contains(t, out, "Tagged text: my name is _person_name_")
	assert.Contains(t, out, "Bot message: what is your favorite color")
	assert.Contains(t, out, "No names detected")
}

func TestExport_JSONKeepsMarkupCharacters(t *testing.T) {
	records := []formatters.Record{{Text: "i am <yash> & co", Result: &namedetect.Result{Language: "en"}}}
	out, err := formatters.Export("json", records, formatters.FormatterOptions{})
	require.NoError(t, err)
	assert.Contains(t, out, `"text": "i am <yash> & co"`)
	assert.False(t, strings.HasSuffix(out, "\n"))
}

func TestExport_CompactStreamsRecords(t *testing.T) {
	opts := formatters.FormatterOptions{Compact: true}

	out, err := formatters.Export("json", sampleRecords(), opts)
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	var first shared.JSONRecord
	require.NoError(t, stdjson.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "my name is yash doshi", first.Text)
	assert.NotContains(t, out, "summary")

	out, err = formatters.Export("yaml", sampleRecords(), opts)
	require.NoError(t, err)
	decoder := yaml.NewDecoder(strings.NewReader(out))
	var texts []string
	for {
		var record shared.JSONRecord
		if err := decoder.Decode(&record); err != nil {
			break
		}
		texts = append(texts, record.Text)
	}
	assert.Equal(t, []string{"my name is yash doshi", "blue"}, texts)
}

func TestExport_EmptyBatch(t *testing.T) {
	for _, format := range []string{"json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			out, err := formatters.Export(format, nil, formatters.FormatterOptions{})
			require.NoError(t, err)

			var response shared.JSONResponse
			require.NoError(t, yaml.Unmarshal([]byte(out), &response))
			assert.NotNil(t, response.Results)
			assert.Empty(t, response.Results)
			assert.Equal(t, shared.Summary{}, response.Summary)
			assert.Contains(t, out, "[]")

			out, err = formatters.Export(format, nil, formatters.FormatterOptions{Compact: true})
			require.NoError(t, err)
			assert.Empty(t, out)
		})
	}
}
