// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"io"
)

const buildInfoNotAvailable = "N/A"

// AppBuildInfo is the version metadata linked into the oifv binaries with
// -ldflags "-X main.buildVersion=...". Unset values read as "N/A".
type AppBuildInfo struct {
	version string
	date    string
	commit  string
}

// NewAppBuildInfo substitutes "N/A" for every empty value.
func NewAppBuildInfo(version, date, commit string) AppBuildInfo {
	return AppBuildInfo{
		version: orNotAvailable(version),
		date:    orNotAvailable(date),
		commit:  orNotAvailable(commit),
	}
}

func (a AppBuildInfo) BuildVersion() string { return a.version }
func (a AppBuildInfo) BuildDate() string    { return a.date }
func (a AppBuildInfo) BuildCommit() string  { return a.commit }

// HasVersion reports whether a version was linked in.
func (a AppBuildInfo) HasVersion() bool {
	return a.version != "" && a.version != buildInfoNotAvailable
}

// Print writes the "Build version/date/commit" lines shown at startup and by
// the version command.
func (a AppBuildInfo) Print(w io.Writer) error {
	_, err := fmt.Fprintf(w, "Build version: %s\nBuild date: %s\nBuild commit: %s\n",
		orNotAvailable(a.version), orNotAvailable(a.date), orNotAvailable(a.commit))
	return err
}

func orNotAvailable(s string) string {
	if s == "" {
		return buildInfoNotAvailable
	}
	return s
}
