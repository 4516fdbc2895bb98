// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/milleriumage/oi-friendly-voice/internal/collection"
	"github.com/milleriumage/oi-friendly-voice/internal/eventbus"
	"github.com/milleriumage/oi-friendly-voice/models"
)

// AuthProvider is the external auth provider seen by the identity resolver.
type AuthProvider interface {
	// CurrentPrincipal returns the signed-in account id. ok is false when
	// nobody is signed in; that is an expected outcome, not a failure.
	CurrentPrincipal(ctx context.Context) (principalID string, ok bool)
}

// IdentityResolver decides who the acting principal is.
type IdentityResolver interface {
	// Resolve returns the authenticated account when the auth provider has
	// one, otherwise the guest session, creating it on first use.
	Resolve(ctx context.Context) models.Identity
}

// GuestSessionService owns the locally persisted anonymous session.
type GuestSessionService interface {
	// LoadOrCreate returns the persisted guest profile. A missing or corrupt
	// record yields defaults, salvaging whatever fields still decode.
	LoadOrCreate(ctx context.Context) models.GuestProfile

	// Update merges the non-nil fields of patch into the freshly re-read
	// record and persists it. Every successful write is broadcast to
	// subscribers. Write failures wrap app.ErrPersistenceFailed.
	Update(ctx context.Context, patch models.GuestProfileUpdate) (models.GuestProfile, error)

	// Subscribe registers for change notifications. The caller must Close
	// the returned subscription.
	Subscribe(buffer int) (*eventbus.Subscription[models.GuestProfileChanged], error)
}

// CreditBackend persists one kind of balance. Store is a compare-and-swap:
// it fails with app.ErrVersionConflict when expectedVersion is stale.
type CreditBackend interface {
	Load(ctx context.Context, id models.Identity) (models.Balance, error)
	Store(ctx context.Context, id models.Identity, credits int, expectedVersion int64) (models.Balance, error)
}

// CreditLedger owns the spendable balance of every identity.
type CreditLedger interface {
	// Balance returns the current balance. When the backend read fails the
	// last known balance is returned together with the error.
	Balance(ctx context.Context, id models.Identity) (int, error)

	// Add credits a positive amount and returns the new balance.
	Add(ctx context.Context, id models.Identity, amount int) (int, error)

	// Subtract debits a positive amount. It fails, in this order, with
	// app.ErrInvalidAmount, app.ErrInsufficientCredits, app.ErrRateLimited
	// or app.ErrPersistenceFailed. Nothing is debited on failure.
	Subtract(ctx context.Context, id models.Identity, amount int, reason string) (int, error)

	// Subscribe registers for ledger events. The caller must Close the
	// returned subscription.
	Subscribe(buffer int) (*eventbus.Subscription[models.LedgerEvent], error)
}

// FollowService toggles follow edges and keeps optimistic counters.
type FollowService interface {
	// Toggle creates the edge follower -> creatorID when absent and deletes
	// it when present. It reports whether follower now follows creatorID.
	Toggle(ctx context.Context, follower models.Identity, creatorID string) (bool, error)

	// Counts returns the local, possibly optimistic, counters of id.
	Counts(id string) models.FollowCounts

	// ReloadCounts replaces the local counters of id with the backend counts.
	ReloadCounts(ctx context.Context, id string) (models.FollowCounts, error)

	// Watch syncs the followers of creatorID and the ids creatorID follows,
	// reloading the counters whenever either collection changes.
	Watch(ctx context.Context, creatorID string, opts WatchOptions[models.Follower]) (*FollowWatch, error)
}

// MediaService manages a creator's media library.
type MediaService interface {
	// Upload validates the file described by upload, derives its storage
	// path and records it. The bytes travel through the storage service.
	Upload(ctx context.Context, owner models.Identity, upload models.MediaUpload) (models.MediaItem, error)
	Update(ctx context.Context, id string, update models.MediaUpdate) (models.MediaItem, error)
	Delete(ctx context.Context, id string) error
	// SetAsMain makes id the owner's main item and returns every changed item.
	SetAsMain(ctx context.Context, id string) ([]models.MediaItem, error)
	// PublicURL resolves a storage path against the media base URL.
	PublicURL(storagePath string) string

	// Watch syncs ownerID's library, keeping the main item first.
	Watch(ctx context.Context, ownerID string, opts WatchOptions[models.MediaItem]) (*collection.Engine[models.MediaItem], error)
}

// LikeService toggles likes and aggregates like counts.
type LikeService interface {
	Toggle(ctx context.Context, liker models.Identity, mediaID string) (bool, error)
	// Count returns the local, possibly optimistic, like count of mediaID.
	Count(mediaID string) int
	// TotalLikes sums the backend like counts of items.
	TotalLikes(ctx context.Context, items []models.MediaItem) (int, error)
	Watch(ctx context.Context, mediaID string, opts WatchOptions[models.LikeRecord]) (*collection.Engine[models.LikeRecord], error)
}

// WatchOptions tunes the collection engine behind a Watch call.
type WatchOptions[T collection.Item] struct {
	OnChange func(collection.Snapshot[T])
	Ticker   collection.Ticker
}
