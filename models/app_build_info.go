// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The usgromana Authors

package models

import "fmt"

// AppBuildInfo carries build-time metadata injected with -ldflags.
type AppBuildInfo struct {
	buildVersion string
	buildDate    string
	buildCommit  string
}

// NewAppBuildInfo constructs [AppBuildInfo]. Empty values are reported as "N/A".
func NewAppBuildInfo(buildVersion, buildDate, buildCommit string) AppBuildInfo {
	na := func(s string) string {
		if s == "" {
			return "N/A"
		}
		return s
	}
	return AppBuildInfo{
		buildVersion: na(buildVersion),
		buildDate:    na(buildDate),
		buildCommit:  na(buildCommit),
	}
}

// BuildVersion returns the version string of the build.
func (a AppBuildInfo) BuildVersion() string {
	return a.buildVersion
}

// String formats the build info on one line.
func (a AppBuildInfo) String() string {
	return fmt.Sprintf("usgromana %s (commit %s, built %s)", a.buildVersion, a.buildCommit, a.buildDate)
}
