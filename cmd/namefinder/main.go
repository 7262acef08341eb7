// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"namefinder/internal/config"
	"namefinder/internal/formatters"
	"namefinder/internal/help"
	"namefinder/internal/namedetect"
	"namefinder/internal/observability"
	"namefinder/internal/parallel"
	"namefinder/internal/version"
	"namefinder/internal/web"

	// Import formatters to register them
	_ "namefinder/internal/formatters/csv"
	_ "namefinder/internal/formatters/json"
	_ "namefinder/internal/formatters/text"
	_ "namefinder/internal/formatters/yaml"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// cliFlags holds command line flag values
type cliFlags struct {
	text       string
	botMessage string
	language   string
	entityName string
	format     string
	configFile string
	port       string
	workers    int
	verbose    bool
	compact    bool
	debug      bool
	noColor    bool
	webMode    bool
	version    bool
	help       bool
}

// finalConfiguration holds resolved configuration values
type finalConfiguration struct {
	language   string
	entityName string
	format     string
	port       string
	workers    int
	verbose    bool
	debug      bool
	noColor    bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("namefinder", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var flags cliFlags
	fs.StringVar(&flags.text, "text", "", "Message to search for a name (default: read one message per stdin line)")
	fs.StringVar(&flags.botMessage, "bot-message", "", "The bot's preceding message; detection only runs if it asks for a name")
	fs.StringVar(&flags.language, "language", "", "Detection language: "+strings.Join(namedetect.SupportedLanguages(), ", ")+" (default: en)")
	fs.StringVar(&flags.entityName, "entity-name", "", "Entity name used in the tagged text placeholder (default: "+namedetect.DefaultEntityName+")")
	fs.StringVar(&flags.format, "format", "", "Output format: "+strings.Join(formatters.List(), ", ")+" (default: text)")
	fs.StringVar(&flags.configFile, "config", "", "Path to configuration file (YAML)")
	fs.StringVar(&flags.port, "port", "", "Port for web server (default: 8080)")
	fs.IntVar(&flags.workers, "workers", 0, "Concurrent detections for stdin batches (default: CPU count, at most 8)")
	fs.BoolVar(&flags.verbose, "verbose", false, "Show stage, tagged and processed text")
	fs.BoolVar(&flags.compact, "compact", false, "JSON/YAML: one record per line or document, without the summary")
	fs.BoolVar(&flags.debug, "debug", false, "Log every detection step to stderr")
	fs.BoolVar(&flags.noColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&flags.webMode, "web", false, "Start web server mode instead of the CLI")
	fs.BoolVar(&flags.version, "version", false, "Show version information")
	fs.BoolVar(&flags.help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	if flags.version {
		fmt.Fprintln(stdout, version.Info())
		return exitOK
	}

	// Auto-detect non-interactive output
	if !isTerminal(stdout) || os.Getenv("NO_COLOR") != "" {
		flags.noColor = true
	}

	if flags.help {
		return showHelp(fs.Args(), stdout, flags.noColor)
	}

	cfg, err := config.LoadConfigOrDefault(flags.configFile)
	if err != nil {
		fmt.Fprintf(stderr, "Warning: Error loading config file: %v\n", err)
		fmt.Fprintf(stderr, "Using default configuration\n")
	}
	final := resolveConfiguration(cfg, fs, &flags)

	// Create debug observer early for configuration logging
	var observer *observability.StandardObserver
	if final.debug {
		debugObs := observability.NewDebugObserver(stderr)
		debugObs.LogDetail("main", fmt.Sprintf("Command line arguments: %v", args))
		debugObs.LogDetail("main", fmt.Sprintf("Resolved language=%s format=%s entity=%s", final.language, final.format, final.entityName))
		observer = debugObs.StandardObserver
	}

	if flags.webMode {
		if err := validateWebModeFlags(fs); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitUsage
		}
		cfg.Defaults.Language = final.language
		cfg.Defaults.EntityName = final.entityName
		cfg.Defaults.Workers = final.workers
		ws, err := web.NewWebServer(final.port, cfg, observer)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
		// Start blocks until the server stops
		if err := ws.Start(); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
		return exitOK
	}

	if final.workers < 0 {
		fmt.Fprintf(stderr, "Error: -workers must not be negative, got %d\n", final.workers)
		return exitUsage
	}

	if _, ok := formatters.Get(final.format); !ok {
		fmt.Fprintf(stderr, "Error: unsupported format '%s'. Available formats: %s\n", final.format, strings.Join(formatters.List(), ", "))
		return exitUsage
	}

	deps, err := cfg.Dependencies()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	detector, err := namedetect.New(final.entityName, final.language, deps, namedetect.WithObserver(observer))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	texts, err := collectInputs(&flags, fs, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	jobs := make([]parallel.Job, len(texts))
	for i, text := range texts {
		jobs[i] = parallel.Job{Text: text, BotMessage: flags.botMessage}
	}
	processor := parallel.NewParallelProcessor(final.workers, observer)
	results, stats, err := processor.ProcessTexts(context.Background(), detector.Detect, jobs, nil)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	if observer != nil && observer.DebugObserver != nil {
		observer.DebugObserver.LogMetric("main", "names_found", stats.TotalNames)
	}

	records := make([]formatters.Record, 0, len(results))
	for _, r := range results {
		records = append(records, formatters.Record{Text: r.Text, BotMessage: r.BotMessage, Result: r.Detection})
	}

	output, err := formatters.Export(final.format, records, formatters.FormatterOptions{
		Verbose: final.verbose,
		NoColor: final.noColor,
		Compact: flags.compact,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	fmt.Fprintln(stdout, strings.TrimRight(output, "\n"))
	return exitOK
}

// resolveConfiguration resolves final configuration values from the config file and command line flags.
// Flags win only when explicitly set.
func resolveConfiguration(cfg *config.Config, fs *flag.FlagSet, flags *cliFlags) *finalConfiguration {
	final := &finalConfiguration{
		language:   cfg.Defaults.Language,
		entityName: cfg.Defaults.EntityName,
		format:     cfg.Defaults.Format,
		port:       cfg.Web.Port,
		workers:    cfg.Defaults.Workers,
		debug:      cfg.Defaults.Debug,
		noColor:    cfg.Defaults.NoColor || flags.noColor,
		verbose:    flags.verbose,
	}

	if isFlagSet(fs, "language") {
		final.language = flags.language
	}
	if isFlagSet(fs, "entity-name") {
		final.entityName = flags.entityName
	}
	if isFlagSet(fs, "format") {
		final.format = flags.format
	}
	if isFlagSet(fs, "port") {
		final.port = flags.port
	}
	if isFlagSet(fs, "workers") {
		final.workers = flags.workers
	}
	if isFlagSet(fs, "debug") {
		final.debug = flags.debug
	}

	final.language = strings.ToLower(strings.TrimSpace(final.language))
	final.format = strings.ToLower(strings.TrimSpace(final.format))
	return final
}

// collectInputs returns the -text message, or every non-blank stdin line.
func collectInputs(flags *cliFlags, fs *flag.FlagSet, stdin io.Reader) ([]string, error) {
	if isFlagSet(fs, "text") {
		return []string{flags.text}, nil
	}

	var texts []string
	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		texts = append(texts, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return texts, nil
}

func showHelp(topics []string, stdout io.Writer, noColor bool) int {
	h := help.NewSystem(stdout, noColor)
	switch {
	case len(topics) == 0:
		h.ShowGeneralHelp(formatters.List())
	case strings.EqualFold(topics[0], "languages"):
		h.ShowLanguagesHelp()
	default:
		if !h.ShowLanguageHelp(topics[0]) {
			return exitUsage
		}
	}
	return exitOK
}

// validateWebModeFlags rejects flags that have no meaning for the HTTP API
func validateWebModeFlags(fs *flag.FlagSet) error {
	var incompatibleFlags []string
	for _, name := range []string{"text", "bot-message", "format", "verbose", "compact"} {
		if isFlagSet(fs, name) {
			incompatibleFlags = append(incompatibleFlags, "-"+name)
		}
	}
	if len(incompatibleFlags) == 0 {
		return nil
	}
	return fmt.Errorf("-web cannot be used with %s\n"+
		"Troubleshooting: send messages to POST /detect instead", strings.Join(incompatibleFlags, ", "))
}

// isFlagSet checks if a flag was explicitly set on the command line
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isTerminal checks if the writer is a terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
