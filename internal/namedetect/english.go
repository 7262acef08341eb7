// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package namedetect

import (
	"fmt"
	"regexp"
	"strings"

	"namefinder/internal/matcher"
	"namefinder/internal/postag"
)

// posPattern is a self-introduction template; group is the capture holding
// the name.
type posPattern struct {
	name  string
	re    *regexp.Regexp
	group int
}

// englishPatterns are tried in order; the first non-empty capture wins. They
// match case-insensitively, so "Name is", "MYSELF" and "Call me" are accepted
// too, where a lower-case-only template would miss capitalised chat text.
var englishPatterns = []posPattern{
	{name: "name_is", re: regexp.MustCompile(`(?i)name\s*(is|)\s*([\w\s]+)`), group: 2},
	{name: "myself", re: regexp.MustCompile(`(?i)myself\s+([\w\s]+)`), group: 1},
	{name: "call_me", re: regexp.MustCompile(`(?i)call\s+me\s+([\w\s]+)`), group: 1},
}

// POSExtractor finds a name in English self-introductions using phrase
// templates and, for very short texts, noun and adjective tags.
type POSExtractor struct {
	tagger            postag.Tagger
	patterns          []posPattern
	fallbackMaxTokens int
}

// NewPOSExtractor returns an extractor that applies the noun/adjective
// fallback to texts with fewer than fallbackMaxTokens tokens.
func NewPOSExtractor(tagger postag.Tagger, fallbackMaxTokens int) *POSExtractor {
	if fallbackMaxTokens <= 0 {
		fallbackMaxTokens = DefaultPOSFallbackMaxTokens
	}
	return &POSExtractor{
		tagger:            tagger,
		patterns:          englishPatterns,
		fallbackMaxTokens: fallbackMaxTokens,
	}
}

// Extract returns at most one name group and the stage that produced it.
// Any wh-word or cardinal tag vetoes the text.
func (p *POSExtractor) Extract(text string) ([]string, Stage, error) {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return nil, StageEmptyInput, nil
	}

	tagged, err := p.tagger.Tag(tokens)
	if err != nil {
		return nil, "", taggerError(err)
	}
	if len(tagged) != len(tokens) {
		return nil, "", taggerError(fmt.Errorf("returned %d tags for %d tokens", len(tagged), len(tokens)))
	}

	for _, t := range tagged {
		if postag.IsQuestionOrCardinal(t.Tag) {
			return nil, StageNoMatch, nil
		}
	}

	for _, pattern := range p.patterns {
		if group := pattern.capture(text); len(group) > 0 {
			return group, StagePOSPattern, nil
		}
	}

	if len(tokens) < p.fallbackMaxTokens {
		var group []string
		for _, t := range tagged {
			if postag.IsNounOrAdjective(t.Tag) {
				group = append(group, t.Token)
			}
		}
		if len(group) > 0 {
			return group, StagePOSFallback, nil
		}
	}

	return nil, StageNoMatch, nil
}

// capture returns the whitespace tokens of the first match's name group.
func (p posPattern) capture(text string) []string {
	m := p.re.FindStringSubmatch(text)
	if len(m) <= p.group {
		return nil
	}
	return strings.Fields(m[p.group])
}

// EnglishStrategy tries the POS templates first and falls back to the
// candidate matcher.
type EnglishStrategy struct {
	pos     *POSExtractor
	matcher matcher.Matcher
	merger  *Merger
}

// NewEnglishStrategy builds the English strategy from deps. Nil collaborators
// must have been filled in by the caller.
func NewEnglishStrategy(deps Dependencies) *EnglishStrategy {
	return &EnglishStrategy{
		pos:     NewPOSExtractor(deps.Tagger, deps.POSFallbackMaxTokens),
		matcher: deps.Matcher,
		merger:  NewMerger(deps.Tokenizer),
	}
}

// Language implements LanguageStrategy.
func (s *EnglishStrategy) Language() string {
	return LanguageEnglish
}

// Extract implements LanguageStrategy.
func (s *EnglishStrategy) Extract(text string) (Extraction, error) {
	if strings.TrimSpace(text) == "" {
		return emptyExtraction(StageEmptyInput, LanguageEnglish), nil
	}

	group, stage, err := s.pos.Extract(text)
	if err != nil {
		return Extraction{}, err
	}
	if entity, ok := FormatName(group); ok {
		return Extraction{
			Entities:   []NameEntity{entity},
			Substrings: []string{strings.Join(group, " ")},
			Stage:      stage,
			Language:   LanguageEnglish,
		}, nil
	}

	match, err := s.matcher.Match(text)
	if err != nil {
		return Extraction{}, matcherError(err)
	}
	if err := match.Validate(text); err != nil {
		return Extraction{}, matcherError(err)
	}

	entities, substrings := s.merger.Merge(match, text)
	if len(entities) == 0 {
		return emptyExtraction(StageNoMatch, LanguageEnglish), nil
	}
	return Extraction{
		Entities:   entities,
		Substrings: substrings,
		Stage:      StageMatcher,
		Language:   LanguageEnglish,
	}, nil
}
