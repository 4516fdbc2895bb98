// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly durations.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
		Version       string   `json:"version"`
		LogLevel      string   `json:"log_level"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
		Local struct {
			Driver string `json:"driver"`
			Path   string `json:"path"`
		} `json:"local,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		MediaBaseURL   string   `json:"media_base_url"`
	} `json:"server,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		RetryCount     int      `json:"retry_count"`
		MediaBaseURL   string   `json:"media_base_url"`
	} `json:"adapter,omitempty"`

	Realtime struct {
		Broker         string   `json:"broker"`
		ClientID       string   `json:"client_id"`
		TopicPrefix    string   `json:"topic_prefix"`
		ConnectTimeout Duration `json:"connect_timeout"`
	} `json:"realtime,omitempty"`

	Session struct {
		AuthTokenFile string `json:"auth_token_file"`
		TestMode      bool   `json:"test_mode"`
	} `json:"session,omitempty"`

	Sync struct {
		PollInterval Duration `json:"poll_interval"`
	} `json:"sync,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var j StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&j); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:  j.App.TokenSignKey,
			TokenIssuer:   j.App.TokenIssuer,
			TokenDuration: time.Duration(j.App.TokenDuration),
			Version:       j.App.Version,
			LogLevel:      j.App.LogLevel,
		},
		Storage: Storage{
			DB:    DB{DSN: j.Storage.DB.DSN},
			Local: Local{Driver: j.Storage.Local.Driver, Path: j.Storage.Local.Path},
		},
		Server: Server{
			HTTPAddress:    j.Server.HTTPAddress,
			RequestTimeout: time.Duration(j.Server.RequestTimeout),
			MediaBaseURL:   j.Server.MediaBaseURL,
		},
		Adapter: Adapter{
			HTTPAddress:    j.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(j.Adapter.RequestTimeout),
			RetryCount:     j.Adapter.RetryCount,
			MediaBaseURL:   j.Adapter.MediaBaseURL,
		},
		Realtime: Realtime{
			Broker:         j.Realtime.Broker,
			ClientID:       j.Realtime.ClientID,
			TopicPrefix:    j.Realtime.TopicPrefix,
			ConnectTimeout: time.Duration(j.Realtime.ConnectTimeout),
		},
		Session: Session{
			AuthTokenFile: j.Session.AuthTokenFile,
			TestMode:      j.Session.TestMode,
		},
		Sync: Sync{
			PollInterval: time.Duration(j.Sync.PollInterval),
		},
	}, nil
}

// Duration accepts "1h"-style strings or integer nanoseconds in JSON.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
