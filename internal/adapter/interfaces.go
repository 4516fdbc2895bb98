// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the client's side of the Data Backend.
//
// [DataBackend] covers the REST verbs (row reads and writes, aggregate count
// RPCs). The Source types in sources.go combine those reads with push
// subscriptions from the realtime hub, decoding rows into typed items before
// they reach a collection engine.
//
// HTTP statuses are mapped onto the sentinels in errors.go by mapHTTPError;
// policy and availability sentinels wrap the app taxonomy, so [errors.Is]
// against app.ErrAccessDenied or app.ErrTransientNetwork works on every error
// this package returns.
package adapter

import (
	"context"

	"github.com/milleriumage/oi-friendly-voice/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// DataBackend is the REST surface of the Data Backend. Requests carry the
// credentials last set with SetToken or SetGuestSession.
type DataBackend interface {
	// SetToken authenticates subsequent requests as an account. It clears
	// any guest session.
	SetToken(token string)
	// SetGuestSession authenticates subsequent requests as a guest.
	SetGuestSession(sessionID string)

	GetCredits(ctx context.Context, userID string) (models.Balance, error)
	// CompareAndSwapCredits returns an error wrapping [ErrConflict] with the
	// version-conflict message when the expected version is stale.
	CompareAndSwapCredits(ctx context.Context, userID string, update models.CreditsUpdate) (models.Balance, error)

	ListMedia(ctx context.Context, ownerID string) ([]models.MediaRow, error)
	InsertMedia(ctx context.Context, row models.MediaRow) (models.MediaRow, error)
	UpdateMedia(ctx context.Context, id string, update models.MediaUpdate) (models.MediaRow, error)
	DeleteMedia(ctx context.Context, id string) error
	SetMainMedia(ctx context.Context, id string) ([]models.MediaRow, error)

	ListFollowers(ctx context.Context, creatorID string) ([]models.Follower, error)
	ListFollowing(ctx context.Context, followerID string) ([]models.FollowEdge, error)
	EdgeExists(ctx context.Context, creatorID, followerID string) (bool, error)
	InsertEdge(ctx context.Context, edge models.FollowEdge) (models.FollowEdge, error)
	DeleteEdge(ctx context.Context, creatorID, followerID string) error
	UpsertGuestProfile(ctx context.Context, profile models.GuestDisplayProfile) error

	ListLikes(ctx context.Context, mediaID string) ([]models.LikeRecord, error)
	Like(ctx context.Context, mediaID string) (models.LikeRecord, error)
	Unlike(ctx context.Context, mediaID string) error

	CountFollowers(ctx context.Context, creatorID string) (int, error)
	CountFollowing(ctx context.Context, followerID string) (int, error)
	CountMediaLikes(ctx context.Context, mediaID string) (int, error)
}
