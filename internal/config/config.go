// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"namefinder/internal/matcher"
	"namefinder/internal/namedetect"
	"namefinder/internal/paths"
	"namefinder/internal/postag"
	"namefinder/internal/resilience"
	"namefinder/internal/resources"

	"gopkg.in/yaml.v3"
)

// SupportedFormats lists the output formats a config may select.
var SupportedFormats = []string{"text", "json", "yaml", "csv"}

// Config represents the application configuration
type Config struct {
	// Default settings
	Defaults struct {
		Language   string `yaml:"language"`
		EntityName string `yaml:"entity_name"`
		Format     string `yaml:"format"`
		Debug      bool   `yaml:"debug"`
		NoColor    bool   `yaml:"no_color"`
		Workers    int    `yaml:"workers"` // 0 picks one worker per CPU, at most 8
	} `yaml:"defaults"`

	// Heuristic thresholds
	Detection struct {
		POSFallbackMaxTokens int `yaml:"pos_fallback_max_tokens"`
		ResidualMaxTokens    int `yaml:"residual_max_tokens"`
	} `yaml:"detection"`

	// Word list overrides
	Resources struct {
		Directory string `yaml:"directory"`
	} `yaml:"resources"`

	// Candidate matcher settings
	Matcher struct {
		DictionaryFile   string `yaml:"dictionary_file"`
		Fuzziness        string `yaml:"fuzziness"`
		Retries          int    `yaml:"retries"`
		FailureThreshold int    `yaml:"failure_threshold"`
	} `yaml:"matcher"`

	// Web server settings
	Web struct {
		Port string `yaml:"port"`
	} `yaml:"web"`
}

// Default returns the built-in configuration.
func Default() *Config {
	config := &Config{}

	config.Defaults.Language = namedetect.LanguageEnglish
	config.Defaults.EntityName = namedetect.DefaultEntityName
	config.Defaults.Format = "text"
	config.Defaults.Debug = false
	config.Defaults.NoColor = false

	config.Detection.POSFallbackMaxTokens = namedetect.DefaultPOSFallbackMaxTokens
	config.Detection.ResidualMaxTokens = namedetect.DefaultResidualMaxTokens

	config.Matcher.Fuzziness = matcher.FuzzinessAuto.String()
	config.Web.Port = "8080"

	return config
}

// LoadConfig loads configuration from the specified file path
func LoadConfig(configPath string) (*Config, error) {
	config := Default()

	// If no config file specified, return default config
	if configPath == "" {
		return config, nil
	}

	// Read config file
	cleanPath := filepath.Clean(configPath)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML over the defaults so absent keys keep their default values
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	config.Resources.Directory = paths.NormalizePath(config.Resources.Directory)
	config.Matcher.DictionaryFile = paths.NormalizePath(config.Matcher.DictionaryFile)

	// Validate the configuration
	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// FindConfigFile looks for a configuration file in standard locations
func FindConfigFile() string {
	// Check current directory first
	if fileExists("namefinder.yaml") {
		return "namefinder.yaml"
	}
	if fileExists(".namefinder.yaml") {
		return ".namefinder.yaml"
	}

	// Explicit config directory override
	if dir := os.Getenv(paths.ConfigDirEnv); dir != "" {
		configFile := filepath.Join(dir, "config.yaml")
		if fileExists(configFile) {
			return configFile
		}
	}

	// XDG config directory
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		configFile := filepath.Join(xdg, "namefinder", "config.yaml")
		if fileExists(configFile) {
			return configFile
		}
	}

	standardConfig := paths.GetConfigFile()
	if fileExists(standardConfig) {
		return standardConfig
	}

	return ""
}

// fileExists checks if a file exists and is not a directory
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// ValidateConfig validates the configuration
func ValidateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("configuration cannot be nil")
	}

	language := strings.ToLower(config.Defaults.Language)
	if !slices.Contains(namedetect.SupportedLanguages(), language) {
		return fmt.Errorf("unsupported language %q: want one of %s",
			config.Defaults.Language, strings.Join(namedetect.SupportedLanguages(), ", "))
	}

	format := strings.ToLower(config.Defaults.Format)
	if !slices.Contains(SupportedFormats, format) {
		return fmt.Errorf("unsupported format %q: want one of %s",
			config.Defaults.Format, strings.Join(SupportedFormats, ", "))
	}

	if config.Defaults.Workers < 0 {
		return fmt.Errorf("defaults.workers must not be negative, got %d", config.Defaults.Workers)
	}

	if config.Detection.POSFallbackMaxTokens <= 0 {
		return fmt.Errorf("detection.pos_fallback_max_tokens must be positive, got %d", config.Detection.POSFallbackMaxTokens)
	}
	if config.Detection.ResidualMaxTokens <= 0 {
		return fmt.Errorf("detection.residual_max_tokens must be positive, got %d", config.Detection.ResidualMaxTokens)
	}

	if _, err := matcher.ParseFuzziness(config.Matcher.Fuzziness); err != nil {
		return err
	}
	if config.Matcher.Retries < 0 {
		return fmt.Errorf("matcher.retries must not be negative, got %d", config.Matcher.Retries)
	}
	if config.Matcher.FailureThreshold < 0 {
		return fmt.Errorf("matcher.failure_threshold must not be negative, got %d", config.Matcher.FailureThreshold)
	}

	// Validate paths in configuration
	if err := paths.ValidatePath(config.Resources.Directory); err != nil {
		return fmt.Errorf("invalid resources directory: %w", err)
	}
	if err := paths.ValidatePath(config.Matcher.DictionaryFile); err != nil {
		return fmt.Errorf("invalid dictionary file path: %w", err)
	}

	return nil
}

// Dependencies builds the detector collaborators described by the config:
// the resource set (with any directory overrides), the name dictionary and
// the heuristic thresholds. Unset collaborators are left to the detector's
// built-in defaults.
func (c *Config) Dependencies() (namedetect.Dependencies, error) {
	deps := namedetect.Dependencies{
		POSFallbackMaxTokens: c.Detection.POSFallbackMaxTokens,
		ResidualMaxTokens:    c.Detection.ResidualMaxTokens,
	}

	set, err := resources.LoadDir(c.Resources.Directory)
	if err != nil {
		return deps, err
	}
	deps.Resources = set

	fuzziness, err := matcher.ParseFuzziness(c.Matcher.Fuzziness)
	if err != nil {
		return deps, err
	}

	var names []string
	if c.Matcher.DictionaryFile != "" {
		names, err = matcher.LoadNames(c.Matcher.DictionaryFile)
	} else {
		names, err = matcher.DefaultNames()
	}
	if err != nil {
		return deps, err
	}

	deps.Tokenizer = postag.NewProseTokenizer()
	deps.Matcher = c.guardMatcher(matcher.NewDictionaryMatcher(names,
		matcher.WithTokenizer(deps.Tokenizer),
		matcher.WithStopwords(set),
		matcher.WithFuzziness(fuzziness)))

	return deps, nil
}

// guardMatcher wraps m with retries and a circuit breaker when either is
// configured.
func (c *Config) guardMatcher(m matcher.Matcher) matcher.Matcher {
	if c.Matcher.Retries == 0 && c.Matcher.FailureThreshold == 0 {
		return m
	}

	retry := resilience.DefaultRetryConfig()
	retry.MaxRetries = c.Matcher.Retries

	var breaker *resilience.CircuitBreaker
	if c.Matcher.FailureThreshold > 0 {
		cbConfig := resilience.DefaultCircuitBreakerConfig("matcher")
		cbConfig.FailureThreshold = c.Matcher.FailureThreshold
		breaker = resilience.NewCircuitBreaker(cbConfig)
	}
	return resilience.NewMatcher(m, retry, breaker)
}

// LoadConfigOrDefault loads configuration from configFile (or searches standard locations
// when configFile is empty). The returned config is never nil: if loading fails it is the
// default configuration and the load error is returned alongside it for the caller to report.
func LoadConfigOrDefault(configFile string) (*Config, error) {
	configPath := configFile
	if configPath == "" {
		configPath = FindConfigFile()
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		return Default(), err
	}
	return cfg, nil
}
