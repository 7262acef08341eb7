// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package namedetect extracts person names from English and Hindi chat text.
//
// A Detector runs one LanguageStrategy per call. The English strategy tries
// POS-tagged self-introduction templates before the candidate matcher; the
// Hindi strategy gates abusive text and questions, then tries regex templates,
// a residual stopword-stripping pass and finally the English strategy on any
// Latin-script residue.
package namedetect

import (
	"fmt"
	"sort"
	"strings"

	"namefinder/internal/normalize"
	"namefinder/internal/observability"
	"namefinder/internal/resources"
)

// DefaultEntityName is the entity name used for the placeholder tag.
const DefaultEntityName = "person_name"

const componentName = "name_detector"

// Result is everything one Detect call produces.
type Result struct {
	Entities      []NameEntity `json:"entity_value" yaml:"entity_value"`
	Substrings    []string     `json:"original_text" yaml:"original_text"`
	TaggedText    string       `json:"tagged_text" yaml:"tagged_text"`
	ProcessedText string       `json:"processed_text" yaml:"processed_text"`
	Language      string       `json:"language" yaml:"language"`
	Stage         Stage        `json:"stage" yaml:"stage"`
}

// Found reports whether at least one name was detected.
func (r *Result) Found() bool {
	return r != nil && len(r.Entities) > 0
}

// Detector holds immutable detection configuration and is safe for concurrent
// use.
type Detector struct {
	entityName string
	tag        string
	strategy   LanguageStrategy
	resources  *resources.Set
	observer   *observability.StandardObserver
}

// Option configures a Detector.
type Option func(*Detector)

// WithObserver logs one operation record per Detect call.
func WithObserver(o *observability.StandardObserver) Option {
	return func(d *Detector) { d.observer = o }
}

// New builds a detector for language. An empty entityName uses
// DefaultEntityName.
func New(entityName, language string, deps Dependencies, opts ...Option) (*Detector, error) {
	deps, err := deps.withDefaults()
	if err != nil {
		return nil, err
	}
	strategy, err := NewStrategy(language, deps)
	if err != nil {
		return nil, err
	}
	return NewWithStrategy(entityName, strategy, deps.Resources, opts...), nil
}

// NewWithStrategy builds a detector around an existing strategy.
func NewWithStrategy(entityName string, strategy LanguageStrategy, set *resources.Set, opts ...Option) *Detector {
	if entityName == "" {
		entityName = DefaultEntityName
	}
	if set == nil {
		set = resources.MustDefault()
	}
	d := &Detector{
		entityName: entityName,
		tag:        "_" + entityName + "_",
		strategy:   strategy,
		resources:  set,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var _ observability.Observable = (*Detector)(nil)

// GetComponentName implements observability.Observable.
func (d *Detector) GetComponentName() string {
	return componentName
}

// EntityName returns the configured entity name.
func (d *Detector) EntityName() string {
	return d.entityName
}

// Tag returns the placeholder substituted for detected names in TaggedText.
func (d *Detector) Tag() string {
	return d.tag
}

// Language returns the strategy language.
func (d *Detector) Language() string {
	return d.strategy.Language()
}

// Detect extracts names from text. A non-empty priorMessage that does not ask
// for a name rejects the text outright. Gate rejections and failed matches
// return an empty result and a nil error; only collaborator failures are
// returned as errors.
//
// The text is never rewritten: substrings are literal slices of text, and
// TaggedText and ProcessedText are text with those substrings replaced.
func (d *Detector) Detect(text, priorMessage string) (*Result, error) {
	finish := d.observer.StartTiming(componentName, "detect", len(text))

	ext, err := d.extract(text, priorMessage)
	if err != nil {
		finish(false, map[string]interface{}{
			"language": d.strategy.Language(),
			"error":    err.Error(),
		})
		return nil, fmt.Errorf("name detection failed: %w", err)
	}

	result := &Result{
		Entities:      ext.Entities,
		Substrings:    ext.Substrings,
		TaggedText:    text,
		ProcessedText: text,
		Language:      ext.Language,
		Stage:         ext.Stage,
	}
	if result.Language == "" {
		result.Language = d.strategy.Language()
	}
	if result.Entities == nil {
		result.Entities = []NameEntity{}
		result.Substrings = []string{}
	}
	result.TaggedText, result.ProcessedText = ReplaceSubstrings(text, result.Substrings, d.tag)

	metadata := map[string]interface{}{
		"language":     result.Language,
		"stage":        string(result.Stage),
		"entity_count": len(result.Entities),
	}
	if result.Stage.IsGate() {
		metadata["gate"] = string(result.Stage)
	}
	finish(true, metadata)

	if d.observer != nil && d.observer.DebugObserver != nil {
		d.observer.DebugObserver.LogDetail(componentName, fmt.Sprintf("stage=%s language=%s entities=%d", result.Stage, result.Language, len(result.Entities)))
	}

	return result, nil
}

func (d *Detector) extract(text, priorMessage string) (Extraction, error) {
	if priorMessage != "" && !d.AsksForName(priorMessage) {
		return emptyExtraction(StageGatePrior, d.strategy.Language()), nil
	}
	if strings.TrimSpace(text) == "" {
		return emptyExtraction(StageEmptyInput, d.strategy.Language()), nil
	}
	return d.strategy.Extract(text)
}

// AsksForName reports whether message contains a name-variation phrase as
// whole words, ignoring case and ASCII punctuation.
func (d *Detector) AsksForName(message string) bool {
	cleaned := normalize.NFC(normalize.StripPunctuation(message))
	padded := " " + strings.Join(strings.Fields(strings.ToLower(cleaned)), " ") + " "
	for _, variant := range d.resources.NameVariations {
		if strings.Contains(padded, " "+variant+" ") {
			return true
		}
	}
	return false
}

// ReplaceSubstrings returns text with every substring replaced by tag, and
// text with every substring removed. Longer substrings are applied first so a
// name never loses part of itself to a shorter one; equal lengths keep their
// given order. Replacement is literal and case-sensitive.
func ReplaceSubstrings(text string, substrings []string, tag string) (tagged, processed string) {
	ordered := make([]string, 0, len(substrings))
	for _, s := range substrings {
		if s != "" {
			ordered = append(ordered, s)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i]) > len(ordered[j])
	})

	tagged, processed = text, text
	for _, s := range ordered {
		tagged = strings.ReplaceAll(tagged, s, tag)
		processed = strings.ReplaceAll(processed, s, "")
	}
	return tagged, processed
}
