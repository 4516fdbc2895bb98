// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// ClientAdapter holds the client's Data Backend connection settings.
type ClientAdapter struct {
	HTTPAddress    string
	RequestTimeout time.Duration
	RetryCount     int
	MediaBaseURL   string
}

// ClientSession describes how the identity resolver finds the principal.
type ClientSession struct {
	// AuthToken is the raw bearer token, read from AuthTokenFile if it was
	// not given directly. Empty means the client acts as a guest.
	AuthToken string
	TestMode  bool
}

// ClientConfig is the client's view of the merged configuration.
type ClientConfig struct {
	App      App
	Adapter  ClientAdapter
	Local    Local
	Realtime Realtime
	Session  ClientSession
	Sync     Sync
}

// GetClientConfig merges env, the flag overrides bound by the CLI, JSON and
// defaults, then validates the client view. overrides may be nil.
func GetClientConfig(overrides *StructuredConfig) (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withOverrides(overrides).
		withJSON().
		withDefaults().
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	token := cfg.Session.AuthToken
	if token == "" && cfg.Session.AuthTokenFile != "" {
		raw, err := os.ReadFile(cfg.Session.AuthTokenFile)
		if err != nil {
			return nil, fmt.Errorf("error reading auth token file: %w", err)
		}
		token = strings.TrimSpace(string(raw))
	}

	clientCfg := &ClientConfig{
		App: cfg.App,
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			RetryCount:     cfg.Adapter.RetryCount,
			MediaBaseURL:   cfg.Adapter.MediaBaseURL,
		},
		Local:    cfg.Storage.Local,
		Realtime: cfg.Realtime,
		Session: ClientSession{
			AuthToken: token,
			TestMode:  cfg.Session.TestMode,
		},
		Sync: cfg.Sync,
	}
	if clientCfg.Realtime.ClientID == "" {
		clientCfg.Realtime.ClientID = fmt.Sprintf("oifv-client-%d", time.Now().UnixNano())
	}

	return clientCfg, clientCfg.validate()
}
