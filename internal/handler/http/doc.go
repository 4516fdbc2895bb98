// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the REST surface of the Data Backend.
//
// Requests under /api/v1 carry either a bearer JWT (accounts) or an
// X-Guest-Session header (guests). The identity middleware resolves the
// caller once and handlers read it from the request context. Tracing,
// access logging, request metrics and gzip are applied here before requests
// reach the service layer.
package http
