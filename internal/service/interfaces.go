// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/milleriumage/oi-friendly-voice/internal/realtime"
	"github.com/milleriumage/oi-friendly-voice/models"
)

// AuthService verifies bearer tokens issued by the auth provider.
type AuthService interface {
	// CreateToken mints a development token for userID.
	CreateToken(ctx context.Context, userID string) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// ChangePublisher fans committed row changes out to push subscribers.
// *realtime.Publisher and realtime.NopPublisher implement it.
type ChangePublisher interface {
	Publish(ctx context.Context, c realtime.Change) error
}

// ProfileService serves account balances. Only the owner may read or write
// a balance.
type ProfileService interface {
	GetCredits(ctx context.Context, caller models.Identity, userID string) (models.Balance, error)
	CompareAndSwapCredits(ctx context.Context, caller models.Identity, userID string, update models.CreditsUpdate) (models.Balance, error)
}

// MediaLibraryService manages media rows. Writes are limited to the owner.
type MediaLibraryService interface {
	List(ctx context.Context, ownerID string) ([]models.MediaRow, error)
	Create(ctx context.Context, caller models.Identity, row models.MediaRow) (models.MediaRow, error)
	Update(ctx context.Context, caller models.Identity, id string, update models.MediaUpdate) (models.MediaRow, error)
	Delete(ctx context.Context, caller models.Identity, id string) error
	SetMain(ctx context.Context, caller models.Identity, id string) ([]models.MediaRow, error)
}

// MediaLibraryServiceWrapper decorates a MediaLibraryService, e.g. with
// validation.
type MediaLibraryServiceWrapper interface {
	Wrap(MediaLibraryService) MediaLibraryService
}

// FollowerGraphService manages follow edges and guest display profiles.
type FollowerGraphService interface {
	ListFollowers(ctx context.Context, creatorID string) ([]models.Follower, error)
	ListFollowing(ctx context.Context, followerID string) ([]models.FollowEdge, error)
	Exists(ctx context.Context, creatorID, followerID string) (bool, error)
	// Follow inserts the edge caller -> edge.CreatorID. The follower side of
	// edge is always taken from caller.
	Follow(ctx context.Context, caller models.Identity, edge models.FollowEdge) (models.FollowEdge, error)
	// Unfollow deletes creatorID <- followerID. Only the follower or the
	// creator may delete an edge.
	Unfollow(ctx context.Context, caller models.Identity, creatorID, followerID string) error
	CountFollowers(ctx context.Context, creatorID string) (int, error)
	CountFollowing(ctx context.Context, followerID string) (int, error)
	UpsertGuestProfile(ctx context.Context, caller models.Identity, profile models.GuestDisplayProfile) (models.GuestDisplayProfile, error)
}

// MediaLikeService manages likes on media items.
type MediaLikeService interface {
	List(ctx context.Context, mediaID string) ([]models.LikeRecord, error)
	Like(ctx context.Context, caller models.Identity, mediaID string) (models.LikeRecord, error)
	Unlike(ctx context.Context, caller models.Identity, mediaID string) error
	Count(ctx context.Context, mediaID string) (int, error)
}
