// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned by the per-binary config views.
var (
	// ErrInvalidAdapterConfigs indicates a missing Data Backend address or timeout.
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates a missing DSN or an unknown local driver.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates missing token verification settings.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidServerConfigs indicates a missing listen address or timeout.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidSyncConfigs indicates a non-positive poll interval.
	ErrInvalidSyncConfigs = errors.New("invalid sync configuration")
	// ErrInvalidRealtimeConfigs indicates a broker without a topic prefix or timeout.
	ErrInvalidRealtimeConfigs = errors.New("invalid realtime configuration")
	// ErrInvalidFlags wraps command-line parse failures.
	ErrInvalidFlags = errors.New("invalid command-line flags")
)
