// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/milleriumage/oi-friendly-voice/internal/logger"
	"github.com/milleriumage/oi-friendly-voice/internal/service"
)

type Handler struct {
	services *service.Services
	registry *prometheus.Registry

	logger *logger.Logger
}

// NewHandler builds the REST handler. registry backs GET /metrics; nil
// disables the route.
func NewHandler(services *service.Services, registry *prometheus.Registry, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		registry: registry,
		logger:   logger,
	}
}
