// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"strings"

	"namefinder/internal/formatters"
	"namefinder/internal/namedetect"

	"github.com/fatih/color"
)

const maxTextWidth = 40

// Formatter implements text-based output formatting
type Formatter struct {
	colors map[string]*color.Color
}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{
		colors: map[string]*color.Color{
			"green":   color.New(color.FgGreen),
			"yellow":  color.New(color.FgYellow),
			"red":     color.New(color.FgRed),
			"cyan":    color.New(color.FgCyan),
			"magenta": color.New(color.FgMagenta),
			"white":   color.New(color.FgWhite, color.Bold),
		},
	}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable text output with colors and tables"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

func (f *Formatter) Format(records []formatters.Record, options formatters.FormatterOptions) (string, error) {
	// Disable colors if requested
	if options.NoColor {
		color.NoColor = true
	}

	if len(records) == 0 {
		return "No input.", nil
	}

	var builder strings.Builder
	if options.Verbose {
		for _, record := range records {
			f.appendDetailedRecord(&builder, record, options)
		}
		return builder.String(), nil
	}

	textWidth := f.calculateTextColumnWidth(records)
	f.appendHeaders(&builder, textWidth, options)
	for _, record := range records {
		f.appendSummaryLines(&builder, record, textWidth, options)
	}
	return builder.String(), nil
}

// appendHeaders adds column headers to the string builder
func (f *Formatter) appendHeaders(builder *strings.Builder, textWidth int, options formatters.FormatterOptions) {
	headerStr := fmt.Sprintf("%-8s %-4s %-*s %s\n", "STATUS", "LANG", textWidth, "TEXT", "NAME")
	if !options.NoColor {
		headerStr = f.colors["white"].Sprint(headerStr)
	}
	builder.WriteString(headerStr)

	separator := strings.Repeat("-", 8+1+4+1+textWidth+1+20) + "\n"
	if !options.NoColor {
		separator = f.colors["white"].Sprint(separator)
	}
	builder.WriteString(separator)
}

// calculateTextColumnWidth calculates the optimal width for the text column
func (f *Formatter) calculateTextColumnWidth(records []formatters.Record) int {
	width := 4 // "TEXT"
	for _, record := range records {
		if n := len([]rune(flatten(record.Text))); n > width {
			width = n
		}
	}
	// Cap for readability
	if width > maxTextWidth {
		width = maxTextWidth
	}
	return width
}

// appendSummaryLines adds one line per detected name, or one status line
func (f *Formatter) appendSummaryLines(builder *strings.Builder, record formatters.Record, textWidth int, options formatters.FormatterOptions) {
	status, statusColor := f.status(record.Result)
	statusStr := fmt.Sprintf("[%-6s]", status)
	if !options.NoColor {
		statusStr = statusColor.Sprint(statusStr)
	}

	language := ""
	if record.Result != nil {
		language = record.Result.Language
	}
	langStr := fmt.Sprintf("%-4s", language)
	if !options.NoColor {
		langStr = f.colors["magenta"].Sprint(langStr)
	}

	textStr := pad(truncate(flatten(record.Text), textWidth), textWidth)

	if !record.Result.Found() {
		detail := ""
		if record.Result != nil {
			detail = string(record.Result.Stage)
		}
		if !options.NoColor {
			detail = f.colors["cyan"].Sprint(detail)
		}
		fmt.Fprintf(builder, "%s %s %s %s\n", statusStr, langStr, textStr, detail)
		return
	}

	for _, entity := range record.Result.Entities {
		nameStr := formatEntity(entity)
		if !options.NoColor {
			nameStr = f.colors["green"].Sprint(nameStr)
		}
		fmt.Fprintf(builder, "%s %s %s %s\n", statusStr, langStr, textStr, nameStr)
	}
}

// appendDetailedRecord adds detailed detection information to the string builder
func (f *Formatter) appendDetailedRecord(builder *strings.Builder, record formatters.Record, options formatters.FormatterOptions) {
	f.write(builder, "white", options, "=== Detection ===\n")
	f.label(builder, "Text", record.Text, options)
	if record.BotMessage != "" {
		f.label(builder, "Bot message", record.BotMessage, options)
	}

	result := record.Result
	if result == nil {
		f.write(builder, "red", options, "No result\n\n")
		return
	}

	f.label(builder, "Language", result.Language, options)
	f.label(builder, "Stage", string(result.Stage), options)

	if len(result.Entities) == 0 {
		f.write(builder, "yellow", options, "No names detected\n")
	}
	for i, entity := range result.Entities {
		f.label(builder, fmt.Sprintf("Name %d", i+1), formatEntity(entity), options)
		f.label(builder, "  Original text", result.Substrings[i], options)
	}

	f.label(builder, "Tagged text", result.TaggedText, options)
	f.label(builder, "Processed text", result.ProcessedText, options)
	builder.WriteString("\n")
}

func (f *Formatter) status(result *namedetect.Result) (string, *color.Color) {
	switch {
	case result.Found():
		return "NAME", f.colors["green"]
	case result != nil && result.Stage.IsGate():
		return "GATED", f.colors["yellow"]
	default:
		return "NONE", f.colors["red"]
	}
}

func (f *Formatter) label(builder *strings.Builder, key, value string, options formatters.FormatterOptions) {
	if options.NoColor {
		fmt.Fprintf(builder, "%s: %s\n", key, value)
		return
	}
	f.colors["cyan"].Fprintf(builder, "%s: ", key)
	fmt.Fprintf(builder, "%s\n", value)
}

func (f *Formatter) write(builder *strings.Builder, colorName string, options formatters.FormatterOptions, s string) {
	if options.NoColor {
		builder.WriteString(s)
		return
	}
	f.colors[colorName].Fprint(builder, s)
}

// formatEntity renders the name parts as key=value pairs
func formatEntity(entity namedetect.NameEntity) string {
	parts := []string{"first=" + entity.FirstName}
	if entity.MiddleName != nil {
		parts = append(parts, "middle="+*entity.MiddleName)
	}
	if entity.LastName != nil {
		parts = append(parts, "last="+*entity.LastName)
	}
	return strings.Join(parts, " ")
}

func flatten(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\t", " ")
}

// truncate shortens s to width runes, marking the cut with "..."
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

// pad right-pads s with spaces to width runes
func pad(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
