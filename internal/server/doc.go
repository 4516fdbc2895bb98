// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the Data Backend's HTTP listener.
//
// It owns startup, signal handling and graceful shutdown. Resources that
// must outlive in-flight requests, such as the change publisher, are closed
// after the listener drains.
package server
