// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package postag

import (
	"testing"

	"github.com/jdkato/prose/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsQuestionOrCardinal(t *testing.T) {
	cases := []struct {
		tag  string
		want bool
	}{
		{"WRB", true},
		{"WP", true},
		{"WP$", true},
		{"CD", true},
		{"WDT", false},
		{"NN", false},
		{"VBZ", false},
		{"", false},
	}
	for _, tc := range cases {
		t.Run(tc.tag, func(t *testing.T) {
			assert.Equal(t, tc.want, IsQuestionOrCardinal(tc.tag))
		})
	}
}

func TestIsNounOrAdjective(t *testing.T) {
	for _, tag := range []string{"NN", "NNS", "NNP", "NNPS", "JJ", "JJR", "JJS"} {
		assert.True(t, IsNounOrAdjective(tag), tag)
	}
	for _, tag := range []string{"VB", "PRP$", "DT", "UH", ""} {
		assert.False(t, IsNounOrAdjective(tag), tag)
	}
}

func TestWhitespaceTokenizer(t *testing.T) {
	tok := WhitespaceTokenizer{}
	assert.Equal(t, []string{"मेरा", "नाम", "राहुल"}, tok.Tokenize("  मेरा  नाम\tराहुल "))
	assert.Empty(t, tok.Tokenize("   "))
}

func TestAlign_FoldsSplitPunctuation(t *testing.T) {
	tokens := []string{"call", "me", "yash,", "please"}
	pieces := []prose.Token{
		{Text: "call", Tag: "VB"},
		{Text: "me", Tag: "PRP"},
		{Text: "yash", Tag: "NNP"},
		{Text: ",", Tag: ","},
		{Text: "please", Tag: "UH"},
	}

	got := align(tokens, pieces)

	require.Len(t, got, 4)
	assert.Equal(t, TaggedToken{Token: "yash,", Tag: "NNP"}, got[2])
	assert.Equal(t, TaggedToken{Token: "please", Tag: "UH"}, got[3])
}

func TestAlign_PunctuationOnlyToken(t *testing.T) {
	got := align([]string{"hi", "!"}, []prose.Token{{Text: "hi", Tag: "UH"}, {Text: "!", Tag: "."}})
	assert.Equal(t, ".", got[1].Tag)
}

func TestProseTagger_EmptyInput(t *testing.T) {
	_, err := NewProseTagger().Tag(nil)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestProseTagger_TagsWhPronoun(t *testing.T) {
	tagged, err := NewProseTagger().Tag([]string{"what", "is", "my", "name"})
	require.NoError(t, err)
	require.Len(t, tagged, 4)
	assert.Equal(t, "what", tagged[0].Token)
	assert.True(t, IsQuestionOrCardinal(tagged[0].Tag), "got tag %q", tagged[0].Tag)
}

func TestProseTagger_TagsCardinal(t *testing.T) {
	tagged, err := NewProseTagger().Tag([]string{"i", "am", "25"})
	require.NoError(t, err)
	assert.Equal(t, "CD", tagged[2].Tag)
}

func TestProseTokenizer_SplitsPunctuation(t *testing.T) {
	tok := NewProseTokenizer()
	assert.Equal(t, []string{"yash", ",", "doshi", "."}, tok.Tokenize("yash, doshi."))
	assert.Nil(t, tok.Tokenize("   "))
}
