// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package postag provides the part-of-speech tagger and tokenizer
// collaborators used by name detection.
package postag

import (
	"errors"
	"strings"
)

// ErrEmptyInput is returned by taggers asked to tag zero tokens.
var ErrEmptyInput = errors.New("postag: no tokens to tag")

// TaggedToken pairs a token with its Penn Treebank tag.
type TaggedToken struct {
	Token string
	Tag   string
}

// Tagger assigns a part-of-speech tag to every token. The result has the same
// length and order as the input. Callers must not pass an empty slice.
type Tagger interface {
	Tag(tokens []string) ([]TaggedToken, error)
}

// Tokenizer splits text into tokens.
type Tokenizer interface {
	Tokenize(text string) []string
}

// WhitespaceTokenizer splits on Unicode whitespace.
type WhitespaceTokenizer struct{}

// Tokenize implements Tokenizer.
func (WhitespaceTokenizer) Tokenize(text string) []string {
	return strings.Fields(text)
}

// Penn Treebank tag prefixes used by name heuristics.
const (
	prefixWhAdverb  = "WR"
	prefixWhPronoun = "WP"
	prefixCardinal  = "CD"
	prefixNoun      = "NN"
	prefixAdjective = "JJ"
)

// IsQuestionOrCardinal reports whether tag marks a wh-adverb, a wh-pronoun or
// a cardinal number.
func IsQuestionOrCardinal(tag string) bool {
	return strings.HasPrefix(tag, prefixWhAdverb) ||
		strings.HasPrefix(tag, prefixWhPronoun) ||
		strings.HasPrefix(tag, prefixCardinal)
}

// IsNounOrAdjective reports whether tag marks any noun or adjective form.
func IsNounOrAdjective(tag string) bool {
	return strings.HasPrefix(tag, prefixNoun) || strings.HasPrefix(tag, prefixAdjective)
}

// TaggerFunc adapts a function to the Tagger interface.
type TaggerFunc func(tokens []string) ([]TaggedToken, error)

// Tag implements Tagger.
func (f TaggerFunc) Tag(tokens []string) ([]TaggedToken, error) {
	return f(tokens)
}
