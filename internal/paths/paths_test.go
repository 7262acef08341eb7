// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package paths

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetConfigDir_Override(t *testing.T) {
	t.Setenv(ConfigDirEnv, "/etc/namefinder")
	if got := GetConfigDir(); got != "/etc/namefinder" {
		t.Errorf("expected override dir, got %q", got)
	}
	if got := GetConfigFile(); got != filepath.Join("/etc/namefinder", "config.yaml") {
		t.Errorf("unexpected config file %q", got)
	}
}

func TestGetConfigDir_XDG(t *testing.T) {
	t.Setenv(ConfigDirEnv, "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := GetConfigDir(); got != filepath.Join("/tmp/xdg", "namefinder") {
		t.Errorf("expected XDG dir, got %q", got)
	}
}

func TestNormalizePath(t *testing.T) {
	if got := NormalizePath(""); got != "" {
		t.Errorf("expected empty path, got %q", got)
	}
	if got := NormalizePath("a/b/../c/"); got != filepath.Clean("a/c") {
		t.Errorf("expected cleaned path, got %q", got)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := NormalizePath("~/names.txt"); got != filepath.Join(home, "names.txt") {
		t.Errorf("expected home expansion, got %q", got)
	}
}

func TestValidatePath(t *testing.T) {
	if err := ValidatePath(""); err != nil {
		t.Errorf("empty path should be valid: %v", err)
	}
	if err := ValidatePath("./resources"); err != nil {
		t.Errorf("relative path should be valid: %v", err)
	}

	err := ValidatePath("bad\x00path")
	var pathErr *PathValidationError
	if !errors.As(err, &pathErr) {
		t.Fatalf("expected PathValidationError, got %v", err)
	}
	if pathErr.Reason != "contains null byte" {
		t.Errorf("unexpected reason %q", pathErr.Reason)
	}

	if err := ValidatePath(strings.Repeat("a", 5000)); err == nil {
		t.Error("expected overlong path to be rejected")
	}
}
