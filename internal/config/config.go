// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the raw configuration shared by both binaries. It is
// populated by merging environment variables, command-line flags and an
// optional JSON file, then projected into [ServerConfig] or [ClientConfig].
//
// Struct tags:
//   - envPrefix: prefix applied to nested env lookups (caarlos0/env).
//   - env:       environment variable name for scalar fields.
type StructuredConfig struct {
	App      App      `envPrefix:"APP_"`
	Storage  Storage  `envPrefix:"STORAGE_"`
	Server   Server   `envPrefix:"SERVER_"`
	Adapter  Adapter  `envPrefix:"ADAPTER_"`
	Realtime Realtime `envPrefix:"REALTIME_"`
	Session  Session  `envPrefix:"SESSION_"`
	Sync     Sync     `envPrefix:"SYNC_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Env: CONFIG, flags: -c / -config.
	JSONFilePath string `env:"CONFIG"`
}

// App holds token verification settings, version and log level.
type App struct {
	// TokenSignKey verifies bearer tokens on the Data Backend.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the expected "iss" claim of bearer tokens.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is used when the server mints development tokens.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel is a zerolog level name ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Storage groups the server database and the client local store.
type Storage struct {
	DB    DB    `envPrefix:"DB_"`
	Local Local `envPrefix:"LOCAL_"`
}

// DB holds connection settings for the Data Backend's Postgres database.
type DB struct {
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Local configures the client's durable key-value store, which keeps the
// guest session record and test-mode balances.
type Local struct {
	// Driver is "sqlite" or "pebble".
	// Env: STORAGE_LOCAL_DRIVER
	Driver string `env:"DRIVER"`

	// Path is the SQLite file or the Pebble directory.
	// Env: STORAGE_LOCAL_PATH
	Path string `env:"PATH"`
}

// Server holds the Data Backend's listener settings.
type Server struct {
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// MediaBaseURL prefixes storage paths to produce public media URLs.
	// Env: SERVER_MEDIA_BASE_URL
	MediaBaseURL string `env:"MEDIA_BASE_URL"`
}

// Adapter holds the client's Data Backend connection settings.
type Adapter struct {
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// Env: ADAPTER_RETRY_COUNT
	RetryCount int `env:"RETRY_COUNT"`

	// MediaBaseURL prefixes storage paths to produce public media URLs.
	// Env: ADAPTER_MEDIA_BASE_URL
	MediaBaseURL string `env:"MEDIA_BASE_URL"`
}

// Realtime holds the MQTT broker settings used by the push-change transport.
type Realtime struct {
	// Broker is a URL such as tcp://localhost:1883. Empty disables push.
	// Env: REALTIME_BROKER
	Broker string `env:"BROKER"`

	// Env: REALTIME_CLIENT_ID
	ClientID string `env:"CLIENT_ID"`

	// TopicPrefix is prepended to every change topic.
	// Env: REALTIME_TOPIC_PREFIX
	TopicPrefix string `env:"TOPIC_PREFIX"`

	// Env: REALTIME_CONNECT_TIMEOUT
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT"`
}

// Session holds how the client learns who it is acting for.
type Session struct {
	// AuthToken is a bearer token issued by the auth provider.
	// Env: SESSION_AUTH_TOKEN
	AuthToken string `env:"AUTH_TOKEN"`

	// AuthTokenFile is read when AuthToken is empty.
	// Env: SESSION_AUTH_TOKEN_FILE
	AuthTokenFile string `env:"AUTH_TOKEN_FILE"`

	// TestMode routes every ledger read and write to a local namespace.
	// Env: SESSION_TEST_MODE
	TestMode bool `env:"TEST_MODE"`
}

// Sync holds collection synchronization settings.
type Sync struct {
	// PollInterval is the refetch period while a subscription is degraded.
	// Env: SYNC_POLL_INTERVAL
	PollInterval time.Duration `env:"POLL_INTERVAL"`
}
