// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/milleriumage/oi-friendly-voice/internal/app"
	"github.com/milleriumage/oi-friendly-voice/internal/metrics"
	"github.com/milleriumage/oi-friendly-voice/internal/utils"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, withMetrics, withGZip)

	// service routes
	router.Group(func(r chi.Router) {
		if h.registry != nil {
			r.Method(http.MethodGet, "/metrics", metrics.Handler(h.registry))
		}
		r.Get("/api/version", h.getServerVersion)
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(h.withIdentity)

		r.Get("/profiles/{userID}/credits", h.getCredits)
		r.Put("/profiles/{userID}/credits", h.swapCredits)

		r.Route("/media", func(r chi.Router) {
			r.Get("/", h.listMedia)
			r.Post("/", h.createMedia)
			r.Patch("/{id}", h.updateMedia)
			r.Delete("/{id}", h.deleteMedia)
			r.Post("/{id}/main", h.setMainMedia)

			r.Get("/{id}/likes", h.listLikes)
			r.Post("/{id}/likes", h.like)
			r.Delete("/{id}/likes", h.unlike)
		})

		r.Get("/followers", h.listFollowers)
		r.Post("/followers", h.follow)
		r.Delete("/followers", h.unfollow)
		r.Get("/followers/edge", h.edgeExists)
		r.Get("/following", h.listFollowing)

		r.Put("/guest-profiles/{sessionID}", h.upsertGuestProfile)

		r.Get("/rpc/followers-count", h.countFollowers)
		r.Get("/rpc/following-count", h.countFollowing)
		r.Get("/rpc/media-likes-count", h.countMediaLikes)
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(methodNotAllowed)

	return router
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	utils.WriteError(w, app.MsgNotFound, http.StatusNotFound)
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	utils.WriteError(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
