// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"os"

	"github.com/milleriumage/oi-friendly-voice/internal/client"
	"github.com/milleriumage/oi-friendly-voice/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	root := client.NewRootCommand(build, client.NewAppFactory("oifv-client"))
	os.Exit(client.Execute(root))
}
