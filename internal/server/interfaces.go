// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

// Server is the Data Backend listener lifecycle.
type Server interface {
	// RunServer serves until SIGINT, SIGTERM or SIGQUIT, then shuts down.
	RunServer()

	// Shutdown drains the HTTP listener and releases every closer.
	Shutdown()
}

// Closer is a resource released once the listener has stopped.
// *realtime.Publisher implements it.
type Closer interface {
	Close()
}
