// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

func (cfg *ServerConfig) validate() error {
	if cfg.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" {
		return ErrInvalidAppConfigs
	}

	return cfg.Realtime.validate()
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 || cfg.Adapter.RetryCount < 0 {
		return ErrInvalidAdapterConfigs
	}

	switch cfg.Local.Driver {
	case LocalDriverSQLite, LocalDriverPebble:
	default:
		return ErrInvalidStorageConfigs
	}
	if cfg.Local.Path == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Sync.PollInterval <= 0 {
		return ErrInvalidSyncConfigs
	}

	return cfg.Realtime.validate()
}

// validate only applies when a broker is set; push is optional.
func (r Realtime) validate() error {
	if r.Broker == "" {
		return nil
	}
	if r.TopicPrefix == "" || r.ConnectTimeout <= 0 {
		return ErrInvalidRealtimeConfigs
	}
	return nil
}
