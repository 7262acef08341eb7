// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package help

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"namefinder/internal/namedetect"
)

// LanguageInfo contains standardized information about a detection language
type LanguageInfo struct {
	Name                string      // Language code accepted by -language
	ShortDescription    string      // Short description for the language list
	DetailedDescription string      // What the pipeline does for this language
	Stages              []StageInfo // Stages the pipeline may report, in order
	Examples            []string    // Usage examples
}

// StageInfo describes one reported stage
type StageInfo struct {
	Stage       namedetect.Stage
	Description string
}

// Provider defines the interface for help content providers
type Provider interface {
	GetLanguageInfo() LanguageInfo
}

// System manages help content for the application
type System struct {
	providers map[string]Provider
	out       io.Writer
	colors    map[string]*color.Color
}

// NewSystem creates a help system writing to out with the built-in language
// providers registered.
func NewSystem(out io.Writer, noColor bool) *System {
	// Disable colors if requested
	if noColor {
		color.NoColor = true
	}

	h := &System{
		providers: make(map[string]Provider),
		out:       out,
		colors: map[string]*color.Color{
			"title":    color.New(color.FgWhite, color.Bold),
			"header":   color.New(color.FgBlue, color.Bold),
			"item":     color.New(color.FgCyan),
			"emphasis": color.New(color.FgWhite, color.Bold),
			"negative": color.New(color.FgRed),
			"example":  color.New(color.FgMagenta),
		},
	}
	for _, p := range builtinProviders() {
		h.RegisterProvider(p)
	}
	return h
}

// RegisterProvider adds a help provider to the system
func (h *System) RegisterProvider(provider Provider) {
	info := provider.GetLanguageInfo()
	h.providers[strings.ToLower(info.Name)] = provider
}

// ShowGeneralHelp displays general help information
func (h *System) ShowGeneralHelp(formats []string) {
	h.colors["title"].Fprintln(h.out, "namefinder - person name detection for chat messages")
	fmt.Fprintln(h.out, "====================================================")
	fmt.Fprintln(h.out)
	h.colors["header"].Fprintln(h.out, "USAGE:")
	fmt.Fprintln(h.out, "  namefinder -text <message> [options]")
	fmt.Fprintln(h.out, "  namefinder [options] < messages.txt   # one message per line")
	fmt.Fprintln(h.out, "  namefinder -web [-port <port>]        # HTTP API mode")
	fmt.Fprintln(h.out)

	h.colors["header"].Fprintln(h.out, "OPTIONS:")
	w := tabwriter.NewWriter(h.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  -text\t<message>\tMessage to search for a name (default: read stdin lines)")
	fmt.Fprintln(w, "  -bot-message\t<message>\tThe bot's preceding message; detection only runs if it asks for a name")
	fmt.Fprintf(w, "  -language\t<code>\tDetection language: %s (default: en)\n", strings.Join(namedetect.SupportedLanguages(), ", "))
	fmt.Fprintf(w, "  -entity-name\t<name>\tEntity name used in the tagged text placeholder (default: %s)\n", namedetect.DefaultEntityName)
	fmt.Fprintf(w, "  -format\t<format>\tOutput format: %s (default: text)\n", strings.Join(formats, ", "))
	fmt.Fprintln(w, "  -verbose\t\tShow stage, tagged and processed text")
	fmt.Fprintln(w, "  -compact\t\tJSON/YAML: one record per line or document, without the summary")
	fmt.Fprintln(w, "  -workers\t<n>\tConcurrent detections for stdin batches (default: CPU count, at most 8)")
	fmt.Fprintln(w, "  -config\t<path>\tPath to configuration file (YAML)")
	fmt.Fprintln(w, "  -debug\t\tLog every detection step to stderr")
	fmt.Fprintln(w, "  -no-color\t\tDisable colored output")
	fmt.Fprintln(w, "  -web\t\tStart the HTTP API instead of the CLI")
	fmt.Fprintln(w, "  -port\t<port>\tPort for the HTTP API (default: 8080, only used with -web)")
	fmt.Fprintln(w, "  -version\t\tShow version information")
	fmt.Fprintln(w, "  -help\t\tShow this help message")
	fmt.Fprintln(w, "  -help languages\t\tList detection languages")
	fmt.Fprintln(w, "  -help <language>\t\tShow the pipeline for one language")
	w.Flush()

	fmt.Fprintln(h.out)
	h.colors["header"].Fprintln(h.out, "EXAMPLES:")
	h.colors["example"].Fprintln(h.out, "  namefinder -text \"my name is yash doshi\"")
	h.colors["example"].Fprintln(h.out, "  namefinder -text \"yash\" -bot-message \"what is your name?\" -format json")
	h.colors["example"].Fprintln(h.out, "  namefinder -language hi -text \"मेरा नाम राहुल है\"")
	h.colors["example"].Fprintln(h.out, "  namefinder -web -port 9000")

	fmt.Fprintln(h.out)
	h.colors["header"].Fprintln(h.out, "CONFIGURATION:")
	fmt.Fprintln(h.out, "  Default config: ~/.config/namefinder/config.yaml")
	fmt.Fprintln(h.out, "  Project config: namefinder.yaml or .namefinder.yaml (in current directory)")
	fmt.Fprintln(h.out, "  Environment: NAMEFINDER_CONFIG_DIR - Override config directory")
}

// ShowLanguagesHelp lists every registered language
func (h *System) ShowLanguagesHelp() {
	h.colors["title"].Fprintln(h.out, "Detection Languages")
	fmt.Fprintln(h.out, "===================")
	fmt.Fprintln(h.out)

	names := make([]string, 0, len(h.providers))
	for name := range h.providers {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(h.out, 0, 0, 2, ' ', 0)
	h.colors["header"].Fprintln(w, "  LANGUAGE\tDESCRIPTION")
	h.colors["header"].Fprintln(w, "  --------\t-----------")
	for _, name := range names {
		info := h.providers[name].GetLanguageInfo()
		fmt.Fprintf(w, "  ")
		h.colors["emphasis"].Fprintf(w, "%s", info.Name)
		fmt.Fprintf(w, "\t%s\n", info.ShortDescription)
	}
	w.Flush()

	fmt.Fprintln(h.out)
	fmt.Fprintln(h.out, "For the pipeline of a specific language, use:")
	h.colors["example"].Fprintln(h.out, "  namefinder -help <language>")
}

// ShowLanguageHelp displays detailed help for one language. It reports false
// when the language is unknown.
func (h *System) ShowLanguageHelp(name string) bool {
	provider, exists := h.providers[strings.ToLower(name)]
	if !exists {
		h.colors["negative"].Fprintf(h.out, "Error: Language '%s' not found.\n", name)
		fmt.Fprintln(h.out, "Use 'namefinder -help languages' to see the available languages.")
		return false
	}

	info := provider.GetLanguageInfo()
	title := fmt.Sprintf("Language: %s", info.Name)
	h.colors["title"].Fprintln(h.out, title)
	fmt.Fprintln(h.out, strings.Repeat("=", len(title)))
	fmt.Fprintln(h.out)
	fmt.Fprintln(h.out, info.DetailedDescription)
	fmt.Fprintln(h.out)

	if len(info.Stages) > 0 {
		h.colors["header"].Fprintln(h.out, "STAGES:")
		w := tabwriter.NewWriter(h.out, 0, 0, 2, ' ', 0)
		for _, s := range info.Stages {
			fmt.Fprintf(w, "  - %s\t%s\n", s.Stage, s.Description)
		}
		w.Flush()
		fmt.Fprintln(h.out)
	}

	if len(info.Examples) > 0 {
		h.colors["header"].Fprintln(h.out, "EXAMPLES:")
		for _, example := range info.Examples {
			fmt.Fprint(h.out, "  ")
			h.colors["example"].Fprintln(h.out, example)
		}
	}

	return true
}

type staticProvider LanguageInfo

func (p staticProvider) GetLanguageInfo() LanguageInfo {
	return LanguageInfo(p)
}

var sharedGates = []StageInfo{
	{namedetect.StageGatePrior, "the bot message did not ask for a name"},
	{namedetect.StageEmptyInput, "the message is blank"},
}

func builtinProviders() []Provider {
	english := LanguageInfo{
		Name:             namedetect.LanguageEnglish,
		ShortDescription: "Part-of-speech templates with a dictionary fallback",
		DetailedDescription: "The message is tagged with Penn Treebank tags. Questions and numbers are rejected.\n" +
			"\"name is\", \"myself\" and \"call me\" templates are tried in order. Short messages\n" +
			"fall back to their nouns and adjectives, and anything else goes to the name dictionary.",
		Stages: append(append([]StageInfo{}, sharedGates...),
			StageInfo{namedetect.StagePOSPattern, "a name template captured the name"},
			StageInfo{namedetect.StagePOSFallback, "nouns and adjectives of a short message"},
			StageInfo{namedetect.StageMatcher, "dictionary matches merged into contiguous names"},
			StageInfo{namedetect.StageNoMatch, "nothing was found"},
		),
		Examples: []string{
			"namefinder -text \"my name is yash doshi\"",
			"namefinder -text \"you can call me rahul\" -verbose",
		},
	}

	hindi := LanguageInfo{
		Name:             namedetect.LanguageHindi,
		ShortDescription: "Devanagari templates with residual and Latin fallbacks",
		DetailedDescription: "Abusive messages and questions are rejected. Emojis and non-Devanagari text are\n" +
			"dropped and the name templates are tried in order. Without a template match, the\n" +
			"remaining words minus stopwords and name context words are the name. Latin text\n" +
			"inside a Hindi message is handed to the English pipeline.",
		Stages: append(append([]StageInfo{}, sharedGates...),
			StageInfo{namedetect.StageGateAbuse, "the message contains an abusive word"},
			StageInfo{namedetect.StageGateQuestion, "the message is a question"},
			StageInfo{namedetect.StageHindiRegex, "a Devanagari name template captured the name"},
			StageInfo{namedetect.StageHindiResidual, "the few words left after stopword removal"},
			StageInfo{namedetect.StageLatinFallback, "the English pipeline on the Latin part"},
			StageInfo{namedetect.StageNoMatch, "nothing was found"},
		),
		Examples: []string{
			"namefinder -language hi -text \"मेरा नाम राहुल शर्मा है\"",
		},
	}

	auto := LanguageInfo{
		Name:                namedetect.LanguageAuto,
		ShortDescription:    "Pick English or Hindi per message from its script",
		DetailedDescription: "Messages written mostly in Devanagari use the Hindi pipeline, all others the English one.",
		Examples: []string{
			"namefinder -language auto < transcript.txt",
		},
	}

	return []Provider{staticProvider(english), staticProvider(hindi), staticProvider(auto)}
}
