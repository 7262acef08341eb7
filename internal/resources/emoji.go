// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package resources

// EmojiRange is an inclusive Unicode code-point range.
type EmojiRange struct {
	Lo rune
	Hi rune
}

// Contains reports whether r falls inside the range.
func (e EmojiRange) Contains(r rune) bool {
	return r >= e.Lo && r <= e.Hi
}

// DefaultEmojiRanges returns the emoji blocks stripped before script filtering.
// Joiners (U+200C, U+200D) are not listed: Devanagari conjuncts use them.
func DefaultEmojiRanges() []EmojiRange {
	return []EmojiRange{
		{0x1F600, 0x1F64F}, // emoticons
		{0x1F300, 0x1F5FF}, // symbols & pictographs
		{0x1F680, 0x1F6FF}, // transport & map
		{0x1F1E0, 0x1F1FF}, // flags
		{0x1F900, 0x1F9FF}, // supplemental symbols & pictographs
		{0x1FA70, 0x1FAFF}, // symbols & pictographs extended-A
		{0x2600, 0x26FF},   // misc symbols
		{0x2700, 0x27BF},   // dingbats
		{0xFE00, 0xFE0F},   // variation selectors
		{0x1F000, 0x1F02F}, // mahjong
		{0x1F0A0, 0x1F0FF}, // playing cards
	}
}
