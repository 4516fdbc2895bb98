// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// ServerConfig is the Data Backend's view of the merged configuration.
type ServerConfig struct {
	App      App
	DB       DB
	Server   Server
	Realtime Realtime
}

// GetServerConfig merges env, args, JSON and defaults and validates the result.
// args excludes the program name.
func GetServerConfig(args []string) (*ServerConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		withDefaults().
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := &ServerConfig{
		App:      cfg.App,
		DB:       cfg.Storage.DB,
		Server:   cfg.Server,
		Realtime: cfg.Realtime,
	}
	if serverCfg.Realtime.ClientID == "" {
		serverCfg.Realtime.ClientID = fmt.Sprintf("oifv-server-%d", time.Now().UnixNano())
	}

	return serverCfg, serverCfg.validate()
}
