// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"namefinder/internal/resources"
)

func TestRemoveEmojis(t *testing.T) {
	ranges := resources.DefaultEmojiRanges()
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"no emoji", "मेरा नाम राहुल है", "मेरा नाम राहुल है"},
		{"trailing emoji", "राहुल 😀😀", "राहुल "},
		{"emoji between words", "my 🚀 name", "my  name"},
		{"heart with selector", "hi ❤️", "hi "},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RemoveEmojis(tc.input, ranges))
		})
	}
}

func TestKeepDevanagari(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"pure hindi", "मेरा नाम राहुल है", "मेरा नाम राहुल है"},
		{"mixed script", "मेरा नाम rahul है", "मेरा नाम  है"},
		{"punctuation and digits", "राहुल, 123!", "राहुल "},
		{"latin only", "rahul", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, KeepDevanagari(tc.input))
		})
	}
}

func TestKeepDevanagari_Idempotent(t *testing.T) {
	inputs := []string{
		"मेरा नाम rahul शर्मा है!! 😀",
		"मुझे लोग राहुल नाम से बुलाते हैं",
		"abc 123",
		"",
	}
	for _, input := range inputs {
		once := KeepDevanagari(input)
		assert.Equal(t, once, KeepDevanagari(once), "input %q", input)
	}
}

func TestSeparateDanda(t *testing.T) {
	assert.Equal(t, "मेरा नाम राहुल है ", SeparateDanda("मेरा नाम राहुल है।"))
	assert.Equal(t, "एक  दो", SeparateDanda("एक॥ दो"))
}

func TestKeepLatin(t *testing.T) {
	assert.Equal(t, "my name is  rahul", KeepLatin("my name is राहुल rahul"))
	assert.Equal(t, "", KeepLatin("राहुल123"))
	assert.Equal(t, "Yash ", KeepLatin("Yash!? "))
}

func TestHasLatinAndDevanagari(t *testing.T) {
	assert.True(t, HasLatin("मेरा नाम rahul"))
	assert.False(t, HasLatin("मेरा नाम   "))
	assert.True(t, HasDevanagari("name राहुल"))
	assert.False(t, HasDevanagari("rahul"))
}

func TestStripPunctuation(t *testing.T) {
	assert.Equal(t, "what is your name", StripPunctuation("what is your name?"))
	assert.Equal(t, "whats your name", StripPunctuation("what's your name!!!"))
	assert.Equal(t, "नाम बताइए।", StripPunctuation("नाम, बताइए।"))
}

func TestNFC_ComposesCombiningMarks(t *testing.T) {
	decomposed := "e\u0301"
	assert.Equal(t, "\u00e9", NFC(decomposed))
	assert.Equal(t, "राहुल", NFC("राहुल"))
}
