// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package namedetect

import (
	"strings"

	"namefinder/internal/matcher"
	"namefinder/internal/postag"
)

// Merger turns matched substrings into name groups. Every occurrence of a
// substring's token sequence in the tokenized text is marked, and each maximal
// run of marked tokens becomes one NameEntity.
type Merger struct {
	tokenizer postag.Tokenizer
}

// NewMerger returns a merger that tokenizes with t.
func NewMerger(t postag.Tokenizer) *Merger {
	if t == nil {
		t = postag.WhitespaceTokenizer{}
	}
	return &Merger{tokenizer: t}
}

// Merge returns index-aligned entities and the space-joined group text.
func (m *Merger) Merge(match matcher.Result, text string) ([]NameEntity, []string) {
	tokens := m.tokenizer.Tokenize(strings.ToLower(text))
	if len(tokens) == 0 || match.Empty() {
		return nil, nil
	}

	marked := make([]bool, len(tokens))
	for _, substring := range match.Substrings {
		markSequence(tokens, marked, m.tokenizer.Tokenize(strings.ToLower(substring)))
	}

	var entities []NameEntity
	var substrings []string
	for _, group := range nameGroups(tokens, marked) {
		entity, ok := FormatName(group)
		if !ok {
			continue
		}
		entities = append(entities, entity)
		substrings = append(substrings, strings.Join(group, " "))
	}
	return entities, substrings
}

// markSequence flags every occurrence of seq in tokens.
func markSequence(tokens []string, marked []bool, seq []string) {
	if len(seq) == 0 || len(seq) > len(tokens) {
		return
	}
	for start := 0; start+len(seq) <= len(tokens); start++ {
		if !hasSequenceAt(tokens, seq, start) {
			continue
		}
		for i := range seq {
			marked[start+i] = true
		}
	}
}

func hasSequenceAt(tokens, seq []string, start int) bool {
	for i, s := range seq {
		if tokens[start+i] != s {
			return false
		}
	}
	return true
}

// nameGroups collects maximal runs of marked tokens, left to right.
func nameGroups(tokens []string, marked []bool) [][]string {
	var groups [][]string
	var current []string
	for i, token := range tokens {
		if marked[i] {
			current = append(current, token)
			continue
		}
		if len(current) > 0 {
			groups = append(groups, current)
			current = nil
		}
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}
	return groups
}
