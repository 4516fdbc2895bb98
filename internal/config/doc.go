// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config loads, merges and validates configuration for the Data
// Backend and the client.
//
// Sources are merged field by field; the first source to set a field wins:
//  1. Environment variables
//  2. Command-line flags (server) or cobra flag overrides (client)
//  3. JSON config file
//  4. Built-in defaults
//
// Entry points are [GetServerConfig] and [GetClientConfig].
package config
