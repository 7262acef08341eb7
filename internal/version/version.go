// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Name is the program name reported in version strings and health checks.
const Name = "namefinder"

const (
	devVersion = "0.0.0-development"
	unknown    = "unknown"
)

// Set at build time via -ldflags "-X namefinder/internal/version.Version=...".
// Values left at their defaults are filled from the module build info.
var (
	Version   = devVersion
	GitCommit = unknown
	BuildDate = unknown

	GoVersion = runtime.Version()
	Platform  = runtime.GOOS + "/" + runtime.GOARCH
)

func init() {
	if info, ok := debug.ReadBuildInfo(); ok {
		applyBuildInfo(info)
	}
}

// applyBuildInfo fills Version from the main module version (set by
// `go install module@version`) and GitCommit/BuildDate from the VCS stamp.
func applyBuildInfo(info *debug.BuildInfo) {
	if Version == devVersion && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	var modified bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if GitCommit == unknown && setting.Value != "" {
				GitCommit = setting.Value
				if len(GitCommit) > 12 {
					GitCommit = GitCommit[:12]
				}
			}
		case "vcs.time":
			if BuildDate == unknown && setting.Value != "" {
				BuildDate = setting.Value
			}
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}
	if modified && GitCommit != unknown {
		GitCommit += "-dirty"
	}
}

// Info returns formatted version information
func Info() string {
	return fmt.Sprintf("%s %s (commit: %s, built: %s, go: %s, platform: %s)",
		Name, Version, GitCommit, BuildDate, GoVersion, Platform)
}

// Short returns just the version number
func Short() string {
	return Version
}

// Full returns detailed version information keyed as in the health response
func Full() map[string]string {
	return map[string]string{
		"version":    Version,
		"commit":     GitCommit,
		"build_date": BuildDate,
		"go_version": GoVersion,
		"platform":   Platform,
	}
}
