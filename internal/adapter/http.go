// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/milleriumage/oi-friendly-voice/internal/config"
	"github.com/milleriumage/oi-friendly-voice/internal/logger"
	"github.com/milleriumage/oi-friendly-voice/internal/utils"
	"github.com/milleriumage/oi-friendly-voice/models"
)

// GuestSessionHeader carries the guest session id on guest requests.
const GuestSessionHeader = "X-Guest-Session"

const apiPrefix = "/api/v1"

type httpDataBackend struct {
	client *utils.HTTPClient

	mu           sync.RWMutex
	token        string
	guestSession string

	logger *logger.Logger
}

// NewHTTPDataBackend constructs the REST implementation of [DataBackend]. It
// normalises and validates the base URL from adapterCfg.HTTPAddress.
func NewHTTPDataBackend(adapterCfg config.ClientAdapter, logger *logger.Logger) (DataBackend, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient(utils.HTTPClientOptions{
		BaseURL:    baseURL + apiPrefix,
		Timeout:    adapterCfg.RequestTimeout,
		RetryCount: adapterCfg.RetryCount,
	})

	return &httpDataBackend{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpDataBackend) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
	h.guestSession = ""
}

func (h *httpDataBackend) SetGuestSession(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.guestSession = strings.TrimSpace(sessionID)
	h.token = ""
}

func (h *httpDataBackend) authedRequest(ctx context.Context) *resty.Request {
	h.mu.RLock()
	token, guest := h.token, h.guestSession
	h.mu.RUnlock()

	req := h.client.R().SetContext(ctx)
	switch {
	case token != "":
		req.SetHeader("Authorization", "Bearer "+token)
	case guest != "":
		req.SetHeader(GuestSessionHeader, guest)
	}
	return req
}

// do sends req and maps both transport and status failures.
func (h *httpDataBackend) do(req *resty.Request, method, path, op string) error {
	resp, err := req.Execute(method, path)
	if err != nil {
		logger.FromContext(req.Context()).Err(err).Str("func", "*httpDataBackend."+op).Str("path", path).Msg("request failed")
		return transportError(op, err)
	}
	return mapHTTPError(resp)
}

// credits

func (h *httpDataBackend) GetCredits(ctx context.Context, userID string) (models.Balance, error) {
	var b models.Balance
	req := h.authedRequest(ctx).
		SetPathParam("userID", userID).
		SetResult(&b)
	if err := h.do(req, resty.MethodGet, "/profiles/{userID}/credits", "GetCredits"); err != nil {
		return models.Balance{}, err
	}
	return b, nil
}

func (h *httpDataBackend) CompareAndSwapCredits(ctx context.Context, userID string, update models.CreditsUpdate) (models.Balance, error) {
	var b models.Balance
	req := h.authedRequest(ctx).
		SetPathParam("userID", userID).
		SetHeader("Content-Type", "application/json").
		SetBody(update).
		SetResult(&b)
	if err := h.do(req, resty.MethodPut, "/profiles/{userID}/credits", "CompareAndSwapCredits"); err != nil {
		return models.Balance{}, err
	}
	return b, nil
}

// media

func (h *httpDataBackend) ListMedia(ctx context.Context, ownerID string) ([]models.MediaRow, error) {
	var rows []models.MediaRow
	req := h.authedRequest(ctx).
		SetQueryParam("owner", ownerID).
		SetResult(&rows)
	if err := h.do(req, resty.MethodGet, "/media", "ListMedia"); err != nil {
		return nil, err
	}
	return rows, nil
}

func (h *httpDataBackend) InsertMedia(ctx context.Context, row models.MediaRow) (models.MediaRow, error) {
	var saved models.MediaRow
	req := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(row).
		SetResult(&saved)
	if err := h.do(req, resty.MethodPost, "/media", "InsertMedia"); err != nil {
		return models.MediaRow{}, err
	}
	return saved, nil
}

func (h *httpDataBackend) UpdateMedia(ctx context.Context, id string, update models.MediaUpdate) (models.MediaRow, error) {
	var saved models.MediaRow
	req := h.authedRequest(ctx).
		SetPathParam("id", id).
		SetHeader("Content-Type", "application/json").
		SetBody(update).
		SetResult(&saved)
	if err := h.do(req, resty.MethodPatch, "/media/{id}", "UpdateMedia"); err != nil {
		return models.MediaRow{}, err
	}
	return saved, nil
}

func (h *httpDataBackend) DeleteMedia(ctx context.Context, id string) error {
	req := h.authedRequest(ctx).SetPathParam("id", id)
	return h.do(req, resty.MethodDelete, "/media/{id}", "DeleteMedia")
}

func (h *httpDataBackend) SetMainMedia(ctx context.Context, id string) ([]models.MediaRow, error) {
	var changed []models.MediaRow
	req := h.authedRequest(ctx).
		SetPathParam("id", id).
		SetResult(&changed)
	if err := h.do(req, resty.MethodPost, "/media/{id}/main", "SetMainMedia"); err != nil {
		return nil, err
	}
	return changed, nil
}

// followers

func (h *httpDataBackend) ListFollowers(ctx context.Context, creatorID string) ([]models.Follower, error) {
	var rows []models.Follower
	req := h.authedRequest(ctx).
		SetQueryParam("creator", creatorID).
		SetResult(&rows)
	if err := h.do(req, resty.MethodGet, "/followers", "ListFollowers"); err != nil {
		return nil, err
	}
	return rows, nil
}

func (h *httpDataBackend) ListFollowing(ctx context.Context, followerID string) ([]models.FollowEdge, error) {
	var rows []models.FollowEdge
	req := h.authedRequest(ctx).
		SetQueryParam("follower", followerID).
		SetResult(&rows)
	if err := h.do(req, resty.MethodGet, "/following", "ListFollowing"); err != nil {
		return nil, err
	}
	return rows, nil
}

func (h *httpDataBackend) EdgeExists(ctx context.Context, creatorID, followerID string) (bool, error) {
	var res models.ExistsResponse
	req := h.authedRequest(ctx).
		SetQueryParams(map[string]string{"creator": creatorID, "follower": followerID}).
		SetResult(&res)
	if err := h.do(req, resty.MethodGet, "/followers/edge", "EdgeExists"); err != nil {
		return false, err
	}
	return res.Exists, nil
}

func (h *httpDataBackend) InsertEdge(ctx context.Context, edge models.FollowEdge) (models.FollowEdge, error) {
	var saved models.FollowEdge
	req := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(edge).
		SetResult(&saved)
	if err := h.do(req, resty.MethodPost, "/followers", "InsertEdge"); err != nil {
		return models.FollowEdge{}, err
	}
	return saved, nil
}

func (h *httpDataBackend) DeleteEdge(ctx context.Context, creatorID, followerID string) error {
	req := h.authedRequest(ctx).
		SetQueryParams(map[string]string{"creator": creatorID, "follower": followerID})
	return h.do(req, resty.MethodDelete, "/followers", "DeleteEdge")
}

func (h *httpDataBackend) UpsertGuestProfile(ctx context.Context, profile models.GuestDisplayProfile) error {
	req := h.authedRequest(ctx).
		SetPathParam("sessionID", profile.SessionID).
		SetHeader("Content-Type", "application/json").
		SetBody(profile)
	return h.do(req, resty.MethodPut, "/guest-profiles/{sessionID}", "UpsertGuestProfile")
}

// likes

func (h *httpDataBackend) ListLikes(ctx context.Context, mediaID string) ([]models.LikeRecord, error) {
	var rows []models.LikeRecord
	req := h.authedRequest(ctx).
		SetPathParam("id", mediaID).
		SetResult(&rows)
	if err := h.do(req, resty.MethodGet, "/media/{id}/likes", "ListLikes"); err != nil {
		return nil, err
	}
	return rows, nil
}

func (h *httpDataBackend) Like(ctx context.Context, mediaID string) (models.LikeRecord, error) {
	var saved models.LikeRecord
	req := h.authedRequest(ctx).
		SetPathParam("id", mediaID).
		SetResult(&saved)
	if err := h.do(req, resty.MethodPost, "/media/{id}/likes", "Like"); err != nil {
		return models.LikeRecord{}, err
	}
	return saved, nil
}

func (h *httpDataBackend) Unlike(ctx context.Context, mediaID string) error {
	req := h.authedRequest(ctx).SetPathParam("id", mediaID)
	return h.do(req, resty.MethodDelete, "/media/{id}/likes", "Unlike")
}

// counts

func (h *httpDataBackend) count(ctx context.Context, path, param, value, op string) (int, error) {
	var res models.CountResponse
	req := h.authedRequest(ctx).
		SetQueryParam(param, value).
		SetResult(&res)
	if err := h.do(req, resty.MethodGet, path, op); err != nil {
		return 0, err
	}
	return res.Count, nil
}

func (h *httpDataBackend) CountFollowers(ctx context.Context, creatorID string) (int, error) {
	return h.count(ctx, "/rpc/followers-count", "creator", creatorID, "CountFollowers")
}

func (h *httpDataBackend) CountFollowing(ctx context.Context, followerID string) (int, error) {
	return h.count(ctx, "/rpc/following-count", "follower", followerID, "CountFollowing")
}

func (h *httpDataBackend) CountMediaLikes(ctx context.Context, mediaID string) (int, error) {
	return h.count(ctx, "/rpc/media-likes-count", "media", mediaID, "CountMediaLikes")
}
