// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package matcher is the seam to the candidate text matcher: given text it
// returns known name variants together with the substrings they were found as.
package matcher

import (
	"fmt"
	"strings"
)

// Result holds index-aligned matches: Substrings[i] was found in the text and
// recognised as Variants[i].
type Result struct {
	Variants   []string
	Substrings []string
}

// Len returns the number of matched pairs.
func (r Result) Len() int {
	return len(r.Substrings)
}

// Empty reports whether nothing matched.
func (r Result) Empty() bool {
	return len(r.Substrings) == 0
}

// Identity builds a result whose variants equal its substrings.
func Identity(substrings []string) Result {
	return Result{Variants: substrings, Substrings: substrings}
}

// Validate checks the matcher contract against text: aligned lengths, and
// every substring present in text ignoring case.
func (r Result) Validate(text string) error {
	if len(r.Variants) != len(r.Substrings) {
		return fmt.Errorf("matcher returned %d variants for %d substrings", len(r.Variants), len(r.Substrings))
	}
	lower := strings.ToLower(text)
	for _, s := range r.Substrings {
		if !strings.Contains(lower, strings.ToLower(s)) {
			return fmt.Errorf("matcher substring %q not found in text", s)
		}
	}
	return nil
}

// Matcher finds candidate name substrings in text. Implementations may block
// on I/O; failures are returned unchanged to the caller.
type Matcher interface {
	Match(text string) (Result, error)
}

// Func adapts a plain function to the Matcher interface.
type Func func(text string) (Result, error)

// Match implements Matcher.
func (f Func) Match(text string) (Result, error) {
	return f(text)
}
