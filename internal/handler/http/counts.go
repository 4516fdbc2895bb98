// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"

	"github.com/milleriumage/oi-friendly-voice/models"
)

func (h *Handler) countFollowers(w http.ResponseWriter, r *http.Request) {
	h.serveCount(w, r, "creator", "countFollowers", h.services.Followers.CountFollowers)
}

func (h *Handler) countFollowing(w http.ResponseWriter, r *http.Request) {
	h.serveCount(w, r, "follower", "countFollowing", h.services.Followers.CountFollowing)
}

func (h *Handler) countMediaLikes(w http.ResponseWriter, r *http.Request) {
	h.serveCount(w, r, "media", "countMediaLikes", h.services.Likes.Count)
}

// serveCount answers an aggregate RPC keyed by a single query parameter.
func (h *Handler) serveCount(w http.ResponseWriter, r *http.Request, param, op string, count func(context.Context, string) (int, error)) {
	key, err := requireQuery(r, param)
	if err != nil {
		writeServiceError(w, r, err, op)
		return
	}

	n, err := count(r.Context(), key)
	if err != nil {
		writeServiceError(w, r, err, op)
		return
	}

	writeJSON(w, r, models.CountResponse{Count: n}, http.StatusOK)
}
