// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client is the set of operations the command line drives. [App] is the
// production implementation.
type Client interface {
	WhoAmI(ctx context.Context) error
	Balance(ctx context.Context) error
	AddCredits(ctx context.Context, amount int) error
	Spend(ctx context.Context, amount int, reason string) error

	ToggleFollow(ctx context.Context, creatorID string) error
	ToggleLike(ctx context.Context, mediaID string) error
	SetGuestName(ctx context.Context, name string) error

	Upload(ctx context.Context, req UploadRequest) error
	SetMain(ctx context.Context, mediaID string) error

	// Watch* and RunTrial block until ctx is cancelled.
	WatchMedia(ctx context.Context, ownerID string) error
	WatchFollowers(ctx context.Context, creatorID string) error
	RunTrial(ctx context.Context) error
}
