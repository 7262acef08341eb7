// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package namedetect

import "namefinder/internal/langdetect"

// AutoStrategy picks English or Hindi per call from the text's script.
type AutoStrategy struct {
	script  langdetect.Detector
	english LanguageStrategy
	hindi   LanguageStrategy
}

// NewAutoStrategy routes texts that script detects as Hindi to hindi and the
// rest to english.
func NewAutoStrategy(script langdetect.Detector, english, hindi LanguageStrategy) *AutoStrategy {
	return &AutoStrategy{script: script, english: english, hindi: hindi}
}

// Language implements LanguageStrategy.
func (s *AutoStrategy) Language() string {
	return LanguageAuto
}

// Extract implements LanguageStrategy.
func (s *AutoStrategy) Extract(text string) (Extraction, error) {
	return s.Resolve(text).Extract(text)
}

// Resolve returns the strategy text would be routed to.
func (s *AutoStrategy) Resolve(text string) LanguageStrategy {
	if s.script.Detect(text) == langdetect.Hindi {
		return s.hindi
	}
	return s.english
}
