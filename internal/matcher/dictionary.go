// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package matcher

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"namefinder/internal/normalize"
	"namefinder/internal/postag"
	"namefinder/internal/resources"
)

//go:embed data/names.txt
var namesData []byte

const minTermRunes = 2

var (
	defaultNames []string
	namesOnce    sync.Once
	namesErr     error
)

// DefaultNames returns the embedded name dictionary, parsed once.
func DefaultNames() ([]string, error) {
	namesOnce.Do(func() {
		defaultNames, namesErr = ReadNames(bytes.NewReader(namesData))
	})
	return defaultNames, namesErr
}

// LoadNames reads a newline-separated name dictionary from path.
func LoadNames(path string) ([]string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open name dictionary: %w", err)
	}
	defer f.Close()

	names, err := ReadNames(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read name dictionary %s: %w", path, err)
	}
	return names, nil
}

// ReadNames parses one name per line, skipping blanks and '#' comments.
// Names are lower-cased and deduplicated, keeping first-seen order.
func ReadNames(r io.Reader) ([]string, error) {
	var names []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		name := strings.ToLower(strings.TrimSpace(line))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

// DictionaryMatcher is an in-memory fuzzy lookup of text tokens against a
// name dictionary. It is safe for concurrent use.
type DictionaryMatcher struct {
	names     []string
	exact     map[string]int
	fuzziness Fuzziness
	tokenizer postag.Tokenizer
	stopwords *resources.Set
}

// DictionaryOption configures a DictionaryMatcher.
type DictionaryOption func(*DictionaryMatcher)

// WithFuzziness sets the edit budget.
func WithFuzziness(f Fuzziness) DictionaryOption {
	return func(m *DictionaryMatcher) { m.fuzziness = f }
}

// WithTokenizer replaces the whitespace tokenizer.
func WithTokenizer(t postag.Tokenizer) DictionaryOption {
	return func(m *DictionaryMatcher) { m.tokenizer = t }
}

// WithStopwords sets the resource set whose English stopwords are never matched.
func WithStopwords(set *resources.Set) DictionaryOption {
	return func(m *DictionaryMatcher) { m.stopwords = set }
}

// NewDictionaryMatcher builds a matcher over names. Earlier names win ties.
func NewDictionaryMatcher(names []string, opts ...DictionaryOption) *DictionaryMatcher {
	m := &DictionaryMatcher{
		exact:     make(map[string]int, len(names)),
		fuzziness: FuzzinessAuto,
		tokenizer: postag.WhitespaceTokenizer{},
	}
	for _, name := range names {
		name = normalize.NFC(strings.ToLower(strings.TrimSpace(name)))
		if name == "" {
			continue
		}
		if _, dup := m.exact[name]; dup {
			continue
		}
		m.exact[name] = len(m.names)
		m.names = append(m.names, name)
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Size returns the number of dictionary entries.
func (m *DictionaryMatcher) Size() int {
	return len(m.names)
}

// Match implements Matcher. Each distinct token is reported at most once.
func (m *DictionaryMatcher) Match(text string) (Result, error) {
	var result Result
	seen := make(map[string]bool)

	for _, token := range m.tokenizer.Tokenize(strings.ToLower(text)) {
		if seen[token] || !m.candidate(token) {
			continue
		}
		seen[token] = true

		if variant, ok := m.Lookup(token); ok {
			result.Variants = append(result.Variants, variant)
			result.Substrings = append(result.Substrings, token)
		}
	}

	return result, nil
}

// Lookup returns the closest dictionary entry to term within the edit budget.
// Terms are compared in NFC lower case.
func (m *DictionaryMatcher) Lookup(term string) (string, bool) {
	term = normalize.NFC(strings.ToLower(term))
	if i, ok := m.exact[term]; ok {
		return m.names[i], true
	}

	budget := m.fuzziness.Budget(utf8.RuneCountInString(term))
	if budget == 0 {
		return "", false
	}

	best, bestDist := -1, budget+1
	for i, entry := range m.names {
		d := editDistance(term, entry, budget)
		if d < bestDist {
			best, bestDist = i, d
			if d == 1 {
				// Exact hits were handled above; nothing beats one edit.
				break
			}
		}
	}
	if best < 0 {
		return "", false
	}
	return m.names[best], true
}

func (m *DictionaryMatcher) candidate(token string) bool {
	if utf8.RuneCountInString(token) < minTermRunes {
		return false
	}
	if strings.IndexFunc(token, unicode.IsLetter) < 0 {
		return false
	}
	if m.stopwords != nil && m.stopwords.IsEnglishStopword(token) {
		return false
	}
	return true
}
