// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/milleriumage/oi-friendly-voice/internal/logger"
	"github.com/milleriumage/oi-friendly-voice/internal/service"
	"github.com/milleriumage/oi-friendly-voice/internal/utils"
	"github.com/milleriumage/oi-friendly-voice/models"
)

// ─────────────────────────────────────────────
// Service fakes
// ─────────────────────────────────────────────

type mockAppInfoService struct {
	version string
}

func (m *mockAppInfoService) GetAppVersion(_ context.Context) string {
	return m.version
}

// mockAuthService accepts exactly one token string.
type mockAuthService struct {
	validToken string
	userID     string
}

func (m *mockAuthService) CreateToken(_ context.Context, userID string) (models.Token, error) {
	return models.Token{UserID: userID, SignedString: m.validToken}, nil
}

func (m *mockAuthService) ParseToken(_ context.Context, tokenString string) (models.Token, error) {
	if tokenString != m.validToken {
		return models.Token{}, service.ErrTokenIsExpiredOrInvalid
	}
	return models.Token{UserID: m.userID, SignedString: tokenString}, nil
}

type mockProfileService struct {
	balance models.Balance
	err     error

	gotCaller models.Identity
	gotUserID string
	gotUpdate models.CreditsUpdate
}

func (m *mockProfileService) GetCredits(_ context.Context, caller models.Identity, userID string) (models.Balance, error) {
	m.gotCaller, m.gotUserID = caller, userID
	return m.balance, m.err
}

func (m *mockProfileService) CompareAndSwapCredits(_ context.Context, caller models.Identity, userID string, update models.CreditsUpdate) (models.Balance, error) {
	m.gotCaller, m.gotUserID, m.gotUpdate = caller, userID, update
	return m.balance, m.err
}

type mockMediaService struct {
	rows []models.MediaRow
	row  models.MediaRow
	err  error

	gotCaller models.Identity
	gotOwner  string
	gotID     string
	gotRow    models.MediaRow
	gotUpdate models.MediaUpdate
}

func (m *mockMediaService) List(_ context.Context, ownerID string) ([]models.MediaRow, error) {
	m.gotOwner = ownerID
	return m.rows, m.err
}

func (m *mockMediaService) Create(_ context.Context, caller models.Identity, row models.MediaRow) (models.MediaRow, error) {
	m.gotCaller, m.gotRow = caller, row
	return m.row, m.err
}

func (m *mockMediaService) Update(_ context.Context, caller models.Identity, id string, update models.MediaUpdate) (models.MediaRow, error) {
	m.gotCaller, m.gotID, m.gotUpdate = caller, id, update
	return m.row, m.err
}

func (m *mockMediaService) Delete(_ context.Context, caller models.Identity, id string) error {
	m.gotCaller, m.gotID = caller, id
	return m.err
}

func (m *mockMediaService) SetMain(_ context.Context, caller models.Identity, id string) ([]models.MediaRow, error) {
	m.gotCaller, m.gotID = caller, id
	return m.rows, m.err
}

type mockFollowerService struct {
	followers []models.Follower
	following []models.FollowEdge
	edge      models.FollowEdge
	profile   models.GuestDisplayProfile
	exists    bool
	count     int
	err       error

	gotCaller   models.Identity
	gotCreator  string
	gotFollower string
	gotEdge     models.FollowEdge
	gotProfile  models.GuestDisplayProfile
}

func (m *mockFollowerService) ListFollowers(_ context.Context, creatorID string) ([]models.Follower, error) {
	m.gotCreator = creatorID
	return m.followers, m.err
}

func (m *mockFollowerService) ListFollowing(_ context.Context, followerID string) ([]models.FollowEdge, error) {
	m.gotFollower = followerID
	return m.following, m.err
}

func (m *mockFollowerService) Exists(_ context.Context, creatorID, followerID string) (bool, error) {
	m.gotCreator, m.gotFollower = creatorID, followerID
	return m.exists, m.err
}

func (m *mockFollowerService) Follow(_ context.Context, caller models.Identity, edge models.FollowEdge) (models.FollowEdge, error) {
	m.gotCaller, m.gotEdge = caller, edge
	return m.edge, m.err
}

func (m *mockFollowerService) Unfollow(_ context.Context, caller models.Identity, creatorID, followerID string) error {
	m.gotCaller, m.gotCreator, m.gotFollower = caller, creatorID, followerID
	return m.err
}

func (m *mockFollowerService) CountFollowers(_ context.Context, creatorID string) (int, error) {
	m.gotCreator = creatorID
	return m.count, m.err
}

func (m *mockFollowerService) CountFollowing(_ context.Context, followerID string) (int, error) {
	m.gotFollower = followerID
	return m.count, m.err
}

func (m *mockFollowerService) UpsertGuestProfile(_ context.Context, caller models.Identity, profile models.GuestDisplayProfile) (models.GuestDisplayProfile, error) {
	m.gotCaller, m.gotProfile = caller, profile
	return m.profile, m.err
}

type mockLikeService struct {
	likes  []models.LikeRecord
	record models.LikeRecord
	count  int
	err    error

	gotCaller models.Identity
	gotMedia  string
}

func (m *mockLikeService) List(_ context.Context, mediaID string) ([]models.LikeRecord, error) {
	m.gotMedia = mediaID
	return m.likes, m.err
}

func (m *mockLikeService) Like(_ context.Context, caller models.Identity, mediaID string) (models.LikeRecord, error) {
	m.gotCaller, m.gotMedia = caller, mediaID
	return m.record, m.err
}

func (m *mockLikeService) Unlike(_ context.Context, caller models.Identity, mediaID string) error {
	m.gotCaller, m.gotMedia = caller, mediaID
	return m.err
}

func (m *mockLikeService) Count(_ context.Context, mediaID string) (int, error) {
	m.gotMedia = mediaID
	return m.count, m.err
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

const (
	testToken   = "good-token"
	testAccount = "acc-1"
)

// newTestHandler fills every service the caller left nil, so a test only
// sets up the fake it inspects.
func newTestHandler(t *testing.T, services *service.Services) *Handler {
	t.Helper()
	if services == nil {
		services = &service.Services{}
	}
	if services.AuthService == nil {
		services.AuthService = &mockAuthService{validToken: testToken, userID: testAccount}
	}
	if services.AppInfoService == nil {
		services.AppInfoService = &mockAppInfoService{version: "test"}
	}
	if services.Profiles == nil {
		services.Profiles = &mockProfileService{}
	}
	if services.Media == nil {
		services.Media = &mockMediaService{}
	}
	if services.Followers == nil {
		services.Followers = &mockFollowerService{}
	}
	if services.Likes == nil {
		services.Likes = &mockLikeService{}
	}
	return NewHandler(services, nil, logger.Nop())
}

// serve runs a request through the full router. A guest session of
// "guest:<id>" or the literal "bearer" picks the caller.
func serve(t *testing.T, h *Handler, method, target, body, caller string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	switch {
	case caller == "bearer":
		req.Header.Set("Authorization", "Bearer "+testToken)
	case strings.HasPrefix(caller, "guest:"):
		req.Header.Set(guestSessionHeader, strings.TrimPrefix(caller, "guest:"))
	}

	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)
	return rec
}

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body utils.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}
