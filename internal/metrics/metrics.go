// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package metrics declares the prometheus collectors of both binaries.
//
// Collectors are package-level so components can record without plumbing a
// registry through constructors. [Register] attaches them to a registry.
package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "oifv"

var LedgerOperations = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "ledger",
	Name:      "operations",
}, []string{"op", "result"})

var LedgerConflictRetries = prometheus.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "ledger",
	Name:      "conflict_retries",
})

var RateLimitDecisions = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "ratelimit",
	Name:      "decisions",
}, []string{"decision"})

var SyncTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "sync",
	Name:      "state_transitions",
}, []string{"engine", "state"})

var SyncEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "sync",
	Name:      "events",
}, []string{"engine", "type", "outcome"})

var SyncFetches = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "sync",
	Name:      "fetches",
}, []string{"engine", "result"})

var RealtimeConnections = prometheus.NewGauge(prometheus.GaugeOpts{
	Namespace: namespace,
	Subsystem: "realtime",
	Name:      "connections",
})

var RealtimeMessages = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "realtime",
	Name:      "messages",
}, []string{"direction", "table", "result"})

var HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "http",
	Name:      "requests",
}, []string{"method", "route", "status"})

var HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: namespace,
	Subsystem: "http",
	Name:      "request_duration_seconds",
	Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
}, []string{"method", "route"})

// Collectors lists every collector declared by the package.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		LedgerOperations,
		LedgerConflictRetries,
		RateLimitDecisions,
		SyncTransitions,
		SyncEvents,
		SyncFetches,
		RealtimeConnections,
		RealtimeMessages,
		HTTPRequests,
		HTTPDuration,
	}
}

// Register adds all collectors to reg. Collectors already registered are skipped.
func Register(reg prometheus.Registerer) error {
	for _, c := range Collectors() {
		if err := reg.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				continue
			}
			return err
		}
	}
	return nil
}

// Handler serves the registry in the prometheus text format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}
