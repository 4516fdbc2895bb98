// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/milleriumage/oi-friendly-voice/models"
)

func (h *Handler) listFollowers(w http.ResponseWriter, r *http.Request) {
	creator, err := requireQuery(r, "creator")
	if err != nil {
		writeServiceError(w, r, err, "listFollowers")
		return
	}

	followers, err := h.services.Followers.ListFollowers(r.Context(), creator)
	if err != nil {
		writeServiceError(w, r, err, "listFollowers")
		return
	}
	if followers == nil {
		followers = []models.Follower{}
	}

	writeJSON(w, r, followers, http.StatusOK)
}

func (h *Handler) listFollowing(w http.ResponseWriter, r *http.Request) {
	follower, err := requireQuery(r, "follower")
	if err != nil {
		writeServiceError(w, r, err, "listFollowing")
		return
	}

	edges, err := h.services.Followers.ListFollowing(r.Context(), follower)
	if err != nil {
		writeServiceError(w, r, err, "listFollowing")
		return
	}
	if edges == nil {
		edges = []models.FollowEdge{}
	}

	writeJSON(w, r, edges, http.StatusOK)
}

func (h *Handler) edgeExists(w http.ResponseWriter, r *http.Request) {
	creator, follower, err := edgeParams(r)
	if err != nil {
		writeServiceError(w, r, err, "edgeExists")
		return
	}

	exists, err := h.services.Followers.Exists(r.Context(), creator, follower)
	if err != nil {
		writeServiceError(w, r, err, "edgeExists")
		return
	}

	writeJSON(w, r, models.ExistsResponse{Exists: exists}, http.StatusOK)
}

// follow answers 201 with the stored edge, or 409 when the caller already
// follows the creator.
func (h *Handler) follow(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		writeServiceError(w, r, err, "follow")
		return
	}

	var edge models.FollowEdge
	if err = decodeJSON(w, r, &edge); err != nil {
		writeServiceError(w, r, err, "follow")
		return
	}

	created, err := h.services.Followers.Follow(r.Context(), caller, edge)
	if err != nil {
		writeServiceError(w, r, err, "follow")
		return
	}

	writeJSON(w, r, created, http.StatusCreated)
}

func (h *Handler) unfollow(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		writeServiceError(w, r, err, "unfollow")
		return
	}

	creator, follower, err := edgeParams(r)
	if err != nil {
		writeServiceError(w, r, err, "unfollow")
		return
	}

	if err = h.services.Followers.Unfollow(r.Context(), caller, creator, follower); err != nil {
		writeServiceError(w, r, err, "unfollow")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) upsertGuestProfile(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		writeServiceError(w, r, err, "upsertGuestProfile")
		return
	}

	var profile models.GuestDisplayProfile
	if err = decodeJSON(w, r, &profile); err != nil {
		writeServiceError(w, r, err, "upsertGuestProfile")
		return
	}
	profile.SessionID = chi.URLParam(r, "sessionID")

	stored, err := h.services.Followers.UpsertGuestProfile(r.Context(), caller, profile)
	if err != nil {
		writeServiceError(w, r, err, "upsertGuestProfile")
		return
	}

	writeJSON(w, r, stored, http.StatusOK)
}

func edgeParams(r *http.Request) (creator, follower string, err error) {
	if creator, err = requireQuery(r, "creator"); err != nil {
		return "", "", err
	}
	if follower, err = requireQuery(r, "follower"); err != nil {
		return "", "", err
	}
	return creator, follower, nil
}
