// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package namedetect

import (
	"regexp"
	"strings"

	"namefinder/internal/matcher"
	"namefinder/internal/normalize"
	"namefinder/internal/postag"
	"namefinder/internal/resources"
)

// Template is one Hindi self-introduction pattern. Every capture of group 1
// is passed through Post before being accepted.
type Template struct {
	Name    string
	Pattern *regexp.Regexp
	Post    func(string) string
}

// TemplateChain is an ordered template list; the first template with a
// non-empty capture wins.
type TemplateChain []Template

// Apply returns the winning template's name and its non-empty captures.
func (c TemplateChain) Apply(text string) (string, []string, bool) {
	for _, tmpl := range c {
		var captures []string
		for _, m := range tmpl.Pattern.FindAllStringSubmatch(text, -1) {
			if len(m) < 2 || m[1] == "" {
				continue
			}
			capture := m[1]
			if tmpl.Post != nil {
				capture = tmpl.Post(capture)
			}
			if strings.TrimSpace(capture) != "" {
				captures = append(captures, capture)
			}
		}
		if len(captures) > 0 {
			return tmpl.Name, captures, true
		}
	}
	return "", nil, false
}

const devanagariRun = `([\x{0900}-\x{097F}\s]+)`

// HindiTemplates returns the built-in templates in priority order.
func HindiTemplates(post func(string) string) TemplateChain {
	return TemplateChain{
		{
			Name:    "people_call_me",
			Pattern: regexp.MustCompile(`(?:मुझे|हमें|मुझको|हमको|हमे)\s+(?:लोग)\s+` + devanagariRun + `\s+(?:नाम\sसे)\s+(?:कहते|बुलाते|बुलाओ)`),
			Post:    post,
		},
		{
			Name:    "name_or_i",
			Pattern: regexp.MustCompile(`(?:नाम|मैं|हम|मै)\s+` + devanagariRun),
			Post:    post,
		},
		{
			Name:    "call_me",
			Pattern: regexp.MustCompile(`(?:मुझे|हमें|मुझको|हमको|हमे)\s+` + devanagariRun + `(?:कहते|बुलाते|बुलाओ)`),
			Post:    post,
		},
		{
			Name:    "name_first",
			Pattern: regexp.MustCompile(`\s*` + devanagariRun + `(?:मुझे|मैं|मै)(?:कहते|बुलाते|बुलाओ)?`),
			Post:    post,
		},
	}
}

// stripWords splits on single spaces and drops every word drop accepts.
func stripWords(text string, drop func(string) bool) string {
	words := strings.Split(text, " ")
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if !drop(w) {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

// ResidualExtractor treats whatever survives stopword and context-word
// removal as a bare name.
type ResidualExtractor struct {
	resources *resources.Set
	maxTokens int
}

// NewResidualExtractor discards remainders longer than maxTokens.
func NewResidualExtractor(set *resources.Set, maxTokens int) *ResidualExtractor {
	if maxTokens <= 0 {
		maxTokens = DefaultResidualMaxTokens
	}
	return &ResidualExtractor{resources: set, maxTokens: maxTokens}
}

// Extract returns the residual tokens and the stripped text they came from.
func (r *ResidualExtractor) Extract(text string) ([]string, string) {
	stripped := stripWords(text, r.resources.IsHindiStopword)
	stripped = stripWords(stripped, r.resources.IsHindiNameContext)

	tokens := strings.Fields(stripped)
	if len(tokens) == 0 || len(tokens) > r.maxTokens {
		return nil, stripped
	}
	return tokens, stripped
}

// HindiStrategy handles Devanagari text and falls back to the English
// strategy for Latin-script residue.
type HindiStrategy struct {
	resources *resources.Set
	templates TemplateChain
	residual  *ResidualExtractor
	merger    *Merger
	english   *EnglishStrategy
}

// NewHindiStrategy builds the Hindi strategy. english may be nil to disable
// the Latin-script fallback.
func NewHindiStrategy(deps Dependencies, english *EnglishStrategy) *HindiStrategy {
	s := &HindiStrategy{
		resources: deps.Resources,
		residual:  NewResidualExtractor(deps.Resources, deps.ResidualMaxTokens),
		merger:    NewMerger(postag.WhitespaceTokenizer{}),
		english:   english,
	}
	s.templates = HindiTemplates(s.stripStopwords)
	return s
}

// Language implements LanguageStrategy.
func (s *HindiStrategy) Language() string {
	return LanguageHindi
}

// Templates returns the template chain in priority order.
func (s *HindiStrategy) Templates() TemplateChain {
	return s.templates
}

func (s *HindiStrategy) stripStopwords(text string) string {
	return stripWords(text, s.resources.IsHindiStopword)
}

// IsAbusive reports whether text contains a configured abusive phrase as
// whole words. Comparison is in NFC, the form the phrases are loaded in.
func (s *HindiStrategy) IsAbusive(text string) bool {
	padded := " " + normalize.NFC(text) + " "
	for _, phrase := range s.resources.HindiBadWords {
		if strings.Contains(padded, " "+phrase+" ") {
			return true
		}
	}
	return false
}

// IsQuestion reports whether any token of text is a Hindi question word.
func (s *HindiStrategy) IsQuestion(text string) bool {
	for _, word := range strings.Fields(text) {
		if s.resources.IsHindiQuestionWord(word) {
			return true
		}
	}
	return false
}

// Extract implements LanguageStrategy.
func (s *HindiStrategy) Extract(text string) (Extraction, error) {
	if strings.TrimSpace(text) == "" {
		return emptyExtraction(StageEmptyInput, LanguageHindi), nil
	}
	if s.IsAbusive(text) {
		return emptyExtraction(StageGateAbuse, LanguageHindi), nil
	}
	if s.IsQuestion(text) {
		return emptyExtraction(StageGateQuestion, LanguageHindi), nil
	}

	cleaned := normalize.RemoveEmojis(text, s.resources.EmojiRanges)
	filtered := normalize.KeepDevanagari(normalize.SeparateDanda(cleaned))

	if _, captures, ok := s.templates.Apply(filtered); ok {
		match := matcher.Identity(uniqueFields(captures))
		if entities, substrings := s.merger.Merge(match, filtered); len(entities) > 0 {
			return Extraction{Entities: entities, Substrings: substrings, Stage: StageHindiRegex, Language: LanguageHindi}, nil
		}
	}

	if tokens, stripped := s.residual.Extract(filtered); len(tokens) > 0 {
		entities, substrings := s.merger.Merge(matcher.Identity(tokens), stripped)
		if len(entities) > 0 {
			return Extraction{Entities: entities, Substrings: substrings, Stage: StageHindiResidual, Language: LanguageHindi}, nil
		}
	}

	if s.english != nil && normalize.HasLatin(cleaned) {
		residue := strings.TrimSpace(normalize.KeepLatin(cleaned))
		ext, err := s.english.Extract(residue)
		if err != nil {
			return Extraction{}, err
		}
		if !ext.Empty() {
			ext.Stage = StageLatinFallback
			ext.Language = LanguageHindi
			return ext, nil
		}
	}

	return emptyExtraction(StageNoMatch, LanguageHindi), nil
}

// uniqueFields splits every capture on whitespace, keeping first-seen order.
func uniqueFields(captures []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, c := range captures {
		for _, f := range strings.Fields(c) {
			if !seen[f] {
				seen[f] = true
				out = append(out, f)
			}
		}
	}
	return out
}
