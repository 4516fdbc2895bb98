// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/milleriumage/oi-friendly-voice/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ProfileRepository stores account credit balances with a version token.
type ProfileRepository interface {
	EnsureProfile(ctx context.Context, userID string) error
	GetCredits(ctx context.Context, userID string) (models.Balance, error)
	// CompareAndSwapCredits returns ErrVersionConflict when the stored
	// version differs from update.ExpectedVersion.
	CompareAndSwapCredits(ctx context.Context, userID string, update models.CreditsUpdate) (models.Balance, error)
}

type MediaRepository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]models.MediaRow, error)
	Get(ctx context.Context, id string) (models.MediaRow, error)
	Insert(ctx context.Context, row models.MediaRow) (models.MediaRow, error)
	Update(ctx context.Context, id, ownerID string, update models.MediaUpdate) (models.MediaRow, error)
	Delete(ctx context.Context, id, ownerID string) (models.MediaRow, error)
	// SetMain marks id as the owner's main item and unsets any other in the
	// same transaction. It returns every changed row, the new main first.
	SetMain(ctx context.Context, id, ownerID string) ([]models.MediaRow, error)
}

type FollowerRepository interface {
	ListFollowers(ctx context.Context, creatorID string) ([]models.Follower, error)
	ListFollowing(ctx context.Context, followerID string) ([]models.FollowEdge, error)
	Exists(ctx context.Context, creatorID, followerID string) (bool, error)
	Insert(ctx context.Context, edge models.FollowEdge) (models.FollowEdge, error)
	Delete(ctx context.Context, creatorID, followerID string) (models.FollowEdge, error)
	CountFollowers(ctx context.Context, creatorID string) (int, error)
	CountFollowing(ctx context.Context, followerID string) (int, error)
	UpsertGuestProfile(ctx context.Context, profile models.GuestDisplayProfile) (models.GuestDisplayProfile, error)
}

type LikeRepository interface {
	ListByMedia(ctx context.Context, mediaID string) ([]models.LikeRecord, error)
	Insert(ctx context.Context, like models.LikeRecord) (models.LikeRecord, error)
	Delete(ctx context.Context, mediaID, likerID string) (models.LikeRecord, error)
	Count(ctx context.Context, mediaID string) (int, error)
}
