// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package normalize prepares user text for name extraction: Unicode NFC,
// emoji removal, single-script filtering and ASCII punctuation stripping.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"namefinder/internal/resources"
)

// Devanagari block bounds.
const (
	DevanagariFirst rune = 0x0900
	DevanagariLast  rune = 0x097F

	danda       rune = 0x0964
	doubleDanda rune = 0x0965
)

// asciiPunctuation mirrors the classic ASCII punctuation set.
const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// NFC returns s in Unicode canonical composition.
func NFC(s string) string {
	return norm.NFC.String(s)
}

// RemoveEmojis deletes every rune that falls inside one of ranges.
func RemoveEmojis(text string, ranges []resources.EmojiRange) string {
	return remove(text, func(r rune) bool {
		for _, rg := range ranges {
			if rg.Contains(r) {
				return true
			}
		}
		return false
	})
}

// KeepDevanagari deletes every rune that is neither Devanagari nor whitespace.
func KeepDevanagari(text string) string {
	return remove(text, func(r rune) bool {
		return !IsDevanagari(r) && !unicode.IsSpace(r)
	})
}

// SeparateDanda replaces the Devanagari sentence marks with spaces so they do
// not stick to the preceding word.
func SeparateDanda(text string) string {
	return strings.Map(func(r rune) rune {
		if r == danda || r == doubleDanda {
			return ' '
		}
		return r
	}, text)
}

// KeepLatin deletes every rune that is neither an ASCII letter nor whitespace.
func KeepLatin(text string) string {
	return remove(text, func(r rune) bool {
		return !isASCIILetter(r) && !unicode.IsSpace(r)
	})
}

// HasLatin reports whether text contains at least one ASCII letter.
func HasLatin(text string) bool {
	return strings.IndexFunc(text, isASCIILetter) >= 0
}

// HasDevanagari reports whether text contains at least one Devanagari rune.
func HasDevanagari(text string) bool {
	return strings.IndexFunc(text, IsDevanagari) >= 0
}

// StripPunctuation deletes ASCII punctuation characters.
func StripPunctuation(text string) string {
	return remove(text, func(r rune) bool {
		return r < unicode.MaxASCII && strings.ContainsRune(asciiPunctuation, r)
	})
}

// IsDevanagari reports whether r is in the Devanagari block.
func IsDevanagari(r rune) bool {
	return r >= DevanagariFirst && r <= DevanagariLast
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func remove(text string, drop func(rune) bool) string {
	out, _, err := transform.String(runes.Remove(runes.Predicate(drop)), text)
	if err != nil {
		return strings.Map(func(r rune) rune {
			if drop(r) {
				return -1
			}
			return r
		}, text)
	}
	return out
}
