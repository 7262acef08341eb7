// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package postag

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/jdkato/prose/v2"
)

// ProseTagger tags tokens with prose's averaged-perceptron model.
//
// prose re-tokenizes its input, so the tokens are joined with spaces and the
// resulting prose tokens are folded back onto the caller's tokens: each input
// token takes the tag of its first non-punctuation piece.
type ProseTagger struct{}

// NewProseTagger returns a tagger backed by prose's default model.
func NewProseTagger() *ProseTagger {
	return &ProseTagger{}
}

// Tag implements Tagger.
func (p *ProseTagger) Tag(tokens []string) ([]TaggedToken, error) {
	if len(tokens) == 0 {
		return nil, ErrEmptyInput
	}

	doc, err := prose.NewDocument(strings.Join(tokens, " "),
		prose.WithSegmentation(false),
		prose.WithExtraction(false))
	if err != nil {
		return nil, fmt.Errorf("prose tagging failed: %w", err)
	}

	return align(tokens, doc.Tokens()), nil
}

// align maps prose tokens back onto whitespace tokens by consumed length.
func align(tokens []string, pieces []prose.Token) []TaggedToken {
	tagged := make([]TaggedToken, len(tokens))
	next := 0
	for i, token := range tokens {
		tagged[i] = TaggedToken{Token: token}
		want := len(token)
		consumed := 0
		for next < len(pieces) && consumed < want {
			piece := pieces[next]
			next++
			consumed += len(piece.Text)
			if tagged[i].Tag == "" && !isPunctuation(piece.Text) {
				tagged[i].Tag = piece.Tag
			}
		}
		if tagged[i].Tag == "" && consumed > 0 {
			tagged[i].Tag = pieces[next-1].Tag
		}
	}
	return tagged
}

func isPunctuation(s string) bool {
	for _, r := range s {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return true
}

// ProseTokenizer is the English word tokenizer. Punctuation and contractions
// become separate tokens.
type ProseTokenizer struct{}

// NewProseTokenizer returns a prose-backed word tokenizer.
func NewProseTokenizer() *ProseTokenizer {
	return &ProseTokenizer{}
}

// Tokenize implements Tokenizer.
func (p *ProseTokenizer) Tokenize(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(false),
		prose.WithTagging(false),
		prose.WithExtraction(false))
	if err != nil {
		return strings.Fields(text)
	}

	pieces := doc.Tokens()
	out := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		if piece.Text != "" {
			out = append(out, piece.Text)
		}
	}
	return out
}
