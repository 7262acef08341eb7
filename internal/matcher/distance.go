// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package matcher

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// MaxEditDistance bounds every fuzzy lookup.
const MaxEditDistance = 2

// Fuzziness is the allowed edit distance for a lookup. FuzzinessAuto scales
// it with the term length.
type Fuzziness int

// FuzzinessAuto selects 0 edits for terms up to 2 runes, 1 for 3-5 runes and
// 2 beyond that.
const FuzzinessAuto Fuzziness = -1

// ParseFuzziness accepts "auto", "0", "1" or "2".
func ParseFuzziness(s string) (Fuzziness, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "auto" {
		return FuzzinessAuto, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > MaxEditDistance {
		return 0, fmt.Errorf("invalid fuzziness %q: want auto or 0-%d", s, MaxEditDistance)
	}
	return Fuzziness(n), nil
}

// Budget returns the edit budget for a term of the given rune length.
func (f Fuzziness) Budget(runeLen int) int {
	if f != FuzzinessAuto {
		return int(f)
	}
	switch {
	case runeLen <= 2:
		return 0
	case runeLen <= 5:
		return 1
	default:
		return 2
	}
}

func (f Fuzziness) String() string {
	if f == FuzzinessAuto {
		return "auto"
	}
	return strconv.Itoa(int(f))
}

// editDistance returns the rune edit distance between a and b, or limit+1
// when it exceeds limit. Pairs whose rune lengths differ by more than limit
// are rejected without computing the distance.
func editDistance(a, b string, limit int) int {
	diff := utf8.RuneCountInString(a) - utf8.RuneCountInString(b)
	if diff < 0 {
		diff = -diff
	}
	if diff > limit {
		return limit + 1
	}
	return min(levenshtein.ComputeDistance(a, b), limit+1)
}
