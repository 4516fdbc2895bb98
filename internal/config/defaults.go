// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// Local store drivers.
const (
	LocalDriverSQLite = "sqlite"
	LocalDriverPebble = "pebble"
)

// defaults fills whatever no other source set. It is merged last.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenDuration: time.Hour,
			LogLevel:      "debug",
		},
		Storage: Storage{
			Local: Local{
				Driver: LocalDriverSQLite,
				Path:   "oifv.db",
			},
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 30 * time.Second,
		},
		Adapter: Adapter{
			HTTPAddress:    "http://localhost:8080",
			RequestTimeout: 10 * time.Second,
			RetryCount:     2,
		},
		Realtime: Realtime{
			TopicPrefix:    "oifv",
			ConnectTimeout: 5 * time.Second,
		},
		Sync: Sync{
			PollInterval: 30 * time.Second,
		},
	}
}
