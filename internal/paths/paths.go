// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// Environment variables consulted for the configuration directory.
const (
	ConfigDirEnv = "NAMEFINDER_CONFIG_DIR"
	xdgConfigEnv = "XDG_CONFIG_HOME"
	appDirName   = "namefinder"
)

// GetConfigDir returns the namefinder configuration directory
// Checks NAMEFINDER_CONFIG_DIR, then XDG_CONFIG_HOME, then ~/.config
func GetConfigDir() string {
	// Check for explicit override first
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return dir
	}

	if xdg := os.Getenv(xdgConfigEnv); xdg != "" {
		return filepath.Join(xdg, appDirName)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "."+appDirName)
	}
	return filepath.Join(home, ".config", appDirName)
}

// GetConfigFile returns the path to the main config file
func GetConfigFile() string {
	return filepath.Join(GetConfigDir(), "config.yaml")
}

// NormalizePath cleans a path and expands a leading ~ to the home directory
func NormalizePath(path string) string {
	if path == "" {
		return ""
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}

	return filepath.Clean(path)
}

// ValidatePath validates a path for use as a resource file or directory
func ValidatePath(path string) error {
	if path == "" {
		return nil // Empty path is valid
	}

	// Main restriction is null bytes
	if strings.ContainsRune(path, 0) {
		return &PathValidationError{
			Path:   path,
			Reason: "contains null byte",
		}
	}

	if len(path) > 4096 {
		return &PathValidationError{
			Path:   path,
			Reason: "path exceeds maximum length of 4096 characters",
		}
	}

	return nil
}

// PathValidationError represents a path validation error
type PathValidationError struct {
	Path   string
	Reason string
}

func (e *PathValidationError) Error() string {
	return "invalid path '" + e.Path + "': " + e.Reason
}
