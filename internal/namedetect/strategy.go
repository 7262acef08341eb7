// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package namedetect

import (
	"fmt"
	"strings"

	"namefinder/internal/langdetect"
	"namefinder/internal/matcher"
	"namefinder/internal/postag"
	"namefinder/internal/resources"
)

// Language codes accepted by NewStrategy.
const (
	LanguageEnglish = langdetect.English
	LanguageHindi   = langdetect.Hindi
	LanguageAuto    = "auto"
)

// SupportedLanguages lists every language NewStrategy accepts.
func SupportedLanguages() []string {
	return []string{LanguageEnglish, LanguageHindi, LanguageAuto}
}

// Stage names the pipeline step that decided a detection.
type Stage string

const (
	StagePOSPattern    Stage = "pos_pattern"
	StagePOSFallback   Stage = "pos_fallback"
	StageMatcher       Stage = "matcher"
	StageHindiRegex    Stage = "hindi_regex"
	StageHindiResidual Stage = "hindi_residual"
	StageLatinFallback Stage = "latin_fallback"
	StageGatePrior     Stage = "gate_prior_message"
	StageGateAbuse     Stage = "gate_abuse"
	StageGateQuestion  Stage = "gate_question"
	StageEmptyInput    Stage = "empty_input"
	StageNoMatch       Stage = "no_match"
)

// IsGate reports whether the stage is an early rejection.
func (s Stage) IsGate() bool {
	return strings.HasPrefix(string(s), "gate_")
}

// Extraction is the outcome of one strategy run. Entities and Substrings are
// index-aligned.
type Extraction struct {
	Entities   []NameEntity
	Substrings []string
	Stage      Stage
	Language   string
}

// Empty reports whether nothing was extracted.
func (e Extraction) Empty() bool {
	return len(e.Entities) == 0
}

func emptyExtraction(stage Stage, language string) Extraction {
	return Extraction{Stage: stage, Language: language}
}

// LanguageStrategy extracts names from text in one language.
type LanguageStrategy interface {
	Language() string
	Extract(text string) (Extraction, error)
}

// Default thresholds. The two are configured independently.
const (
	DefaultPOSFallbackMaxTokens = 4
	DefaultResidualMaxTokens    = 4
)

// Dependencies carries the collaborators shared by every strategy. Nil fields
// are filled with the built-in implementations.
type Dependencies struct {
	Resources *resources.Set
	Tagger    postag.Tagger
	Tokenizer postag.Tokenizer
	Matcher   matcher.Matcher
	Script    langdetect.Detector

	// POS noun/adjective fallback applies below this many tokens.
	POSFallbackMaxTokens int
	// Hindi residual results longer than this are discarded.
	ResidualMaxTokens int
}

func (d Dependencies) withDefaults() (Dependencies, error) {
	if d.Resources == nil {
		set, err := resources.Default()
		if err != nil {
			return d, fmt.Errorf("failed to load resources: %w", err)
		}
		d.Resources = set
	}
	if d.Tagger == nil {
		d.Tagger = postag.NewProseTagger()
	}
	if d.Tokenizer == nil {
		d.Tokenizer = postag.NewProseTokenizer()
	}
	if d.Matcher == nil {
		names, err := matcher.DefaultNames()
		if err != nil {
			return d, fmt.Errorf("failed to load name dictionary: %w", err)
		}
		d.Matcher = matcher.NewDictionaryMatcher(names,
			matcher.WithTokenizer(d.Tokenizer),
			matcher.WithStopwords(d.Resources))
	}
	if d.Script == nil {
		d.Script = langdetect.NewScriptDetector()
	}
	if d.POSFallbackMaxTokens <= 0 {
		d.POSFallbackMaxTokens = DefaultPOSFallbackMaxTokens
	}
	if d.ResidualMaxTokens <= 0 {
		d.ResidualMaxTokens = DefaultResidualMaxTokens
	}
	return d, nil
}

// NewStrategy builds the strategy for language.
func NewStrategy(language string, deps Dependencies) (LanguageStrategy, error) {
	language = strings.ToLower(strings.TrimSpace(language))
	switch language {
	case LanguageEnglish, LanguageHindi, LanguageAuto:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, language)
	}

	deps, err := deps.withDefaults()
	if err != nil {
		return nil, err
	}

	english := NewEnglishStrategy(deps)
	switch language {
	case LanguageEnglish:
		return english, nil
	case LanguageHindi:
		return NewHindiStrategy(deps, english), nil
	default:
		return NewAutoStrategy(deps.Script, english, NewHindiStrategy(deps, english)), nil
	}
}
