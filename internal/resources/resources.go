// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package resources holds the read-only linguistic lists consumed by name
// detection: stopwords, abusive phrases, question words, name-context words,
// name-variation phrases and emoji code-point ranges.
package resources

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2/analysis"
	"golang.org/x/text/unicode/norm"
)

// File names of the embedded lists. An override directory uses the same names.
const (
	HindiStopwordsFile     = "hi_stopwords.txt"
	HindiBadWordsFile      = "hi_badwords.txt"
	HindiQuestionWordsFile = "hi_questionwords.txt"
	HindiNameContextFile   = "hi_name_context.txt"
	NameVariationsFile     = "name_variations.txt"
	EnglishStopwordsFile   = "en_stopwords.txt"
)

//go:embed data/hi_stopwords.txt
var hindiStopwordsData []byte

//go:embed data/hi_badwords.txt
var hindiBadWordsData []byte

//go:embed data/hi_questionwords.txt
var hindiQuestionWordsData []byte

//go:embed data/hi_name_context.txt
var hindiNameContextData []byte

//go:embed data/name_variations.txt
var nameVariationsData []byte

//go:embed data/en_stopwords.txt
var englishStopwordsData []byte

// Set is an immutable bundle of linguistic resources. Word sets are exact-match
// token maps; phrase lists keep multi-word entries intact. All entries are
// NFC-normalized at load time and the Is* lookups normalize their argument, so
// callers can pass words in whatever form the user typed them.
type Set struct {
	HindiStopwords     analysis.TokenMap
	HindiQuestionWords analysis.TokenMap
	HindiNameContext   analysis.TokenMap
	EnglishStopwords   analysis.TokenMap

	HindiBadWords  []string // phrases, matched on word boundaries
	NameVariations []string // lower-cased phrases

	EmojiRanges []EmojiRange
}

var (
	defaultSet  *Set
	defaultOnce sync.Once
	defaultErr  error
)

// Default returns the embedded resource set, parsed once.
func Default() (*Set, error) {
	defaultOnce.Do(func() {
		defaultSet, defaultErr = fromSources(embeddedSources())
	})
	return defaultSet, defaultErr
}

// MustDefault is Default for package initialisation paths and tests.
func MustDefault() *Set {
	set, err := Default()
	if err != nil {
		panic(err)
	}
	return set
}

// LoadDir builds a set from the embedded lists, replacing every list for which
// dir contains a file of the same name. An empty dir returns Default().
func LoadDir(dir string) (*Set, error) {
	if dir == "" {
		return Default()
	}

	sources := embeddedSources()
	for name := range sources {
		data, err := os.ReadFile(filepath.Join(filepath.Clean(dir), name))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read resource %s: %w", name, err)
		}
		sources[name] = data
	}

	return fromSources(sources)
}

func embeddedSources() map[string][]byte {
	return map[string][]byte{
		HindiStopwordsFile:     hindiStopwordsData,
		HindiBadWordsFile:      hindiBadWordsData,
		HindiQuestionWordsFile: hindiQuestionWordsData,
		HindiNameContextFile:   hindiNameContextData,
		NameVariationsFile:     nameVariationsData,
		EnglishStopwordsFile:   englishStopwordsData,
	}
}

func fromSources(sources map[string][]byte) (*Set, error) {
	set := &Set{EmojiRanges: DefaultEmojiRanges()}

	words := []struct {
		file   string
		target *analysis.TokenMap
	}{
		{HindiStopwordsFile, &set.HindiStopwords},
		{HindiQuestionWordsFile, &set.HindiQuestionWords},
		{HindiNameContextFile, &set.HindiNameContext},
		{EnglishStopwordsFile, &set.EnglishStopwords},
	}
	for _, w := range words {
		tm := analysis.NewTokenMap()
		if err := tm.LoadBytes(norm.NFC.Bytes(sources[w.file])); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", w.file, err)
		}
		*w.target = tm
	}

	var err error
	if set.HindiBadWords, err = loadPhrases(sources[HindiBadWordsFile], false); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", HindiBadWordsFile, err)
	}
	if set.NameVariations, err = loadPhrases(sources[NameVariationsFile], true); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", NameVariationsFile, err)
	}

	return set, nil
}

// loadPhrases reads one phrase per line, dropping '#' comments and collapsing
// inner whitespace.
func loadPhrases(data []byte, lower bool) ([]string, error) {
	var phrases []string
	scanner := bufio.NewScanner(bytes.NewReader(norm.NFC.Bytes(data)))
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		phrase := strings.Join(strings.Fields(line), " ")
		if phrase == "" {
			continue
		}
		if lower {
			phrase = strings.ToLower(phrase)
		}
		phrases = append(phrases, phrase)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return phrases, nil
}

// IsHindiStopword reports whether word is a configured Hindi stopword.
func (s *Set) IsHindiStopword(word string) bool {
	return s.HindiStopwords[nfc(word)]
}

// IsHindiQuestionWord reports whether word is a configured Hindi interrogative.
func (s *Set) IsHindiQuestionWord(word string) bool {
	return s.HindiQuestionWords[nfc(word)]
}

// IsHindiNameContext reports whether word commonly surrounds a Hindi name.
func (s *Set) IsHindiNameContext(word string) bool {
	return s.HindiNameContext[nfc(word)]
}

// IsEnglishStopword reports whether the lower-cased word is an English stopword.
func (s *Set) IsEnglishStopword(word string) bool {
	return s.EnglishStopwords[nfc(strings.ToLower(word))]
}

func nfc(word string) string {
	if norm.NFC.IsNormalString(word) {
		return word
	}
	return norm.NFC.String(word)
}
