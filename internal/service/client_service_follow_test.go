// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/milleriumage/oi-friendly-voice/internal/adapter"
	"github.com/milleriumage/oi-friendly-voice/internal/app"
	"github.com/milleriumage/oi-friendly-voice/internal/logger"
	"github.com/milleriumage/oi-friendly-voice/internal/mock"
	"github.com/milleriumage/oi-friendly-voice/models"
)

func newTestFollow(backend adapter.DataBackend, guests GuestSessionService) FollowService {
	return NewFollowService(backend, nil, guests, 0, logger.Nop())
}

// ── Toggle ──

func TestFollow_ToggleTwiceRestoresCounters(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mock.NewMockDataBackend(ctrl)
	ctx := context.Background()

	edge := models.FollowEdge{CreatorID: "creator-1", FollowerID: "acc-1"}
	gomock.InOrder(
		backend.EXPECT().EdgeExists(gomock.Any(), "creator-1", "acc-1").Return(false, nil),
		backend.EXPECT().InsertEdge(gomock.Any(), edge).Return(models.FollowEdge{ID: "e-1", CreatorID: "creator-1", FollowerID: "acc-1"}, nil),
		backend.EXPECT().EdgeExists(gomock.Any(), "creator-1", "acc-1").Return(true, nil),
		backend.EXPECT().DeleteEdge(gomock.Any(), "creator-1", "acc-1").Return(nil),
	)

	f := newTestFollow(backend, nil)

	following, err := f.Toggle(ctx, accountID, "creator-1")
	require.NoError(t, err)
	assert.True(t, following)
	assert.Equal(t, 1, f.Counts("creator-1").Followers)
	assert.Equal(t, 1, f.Counts("acc-1").Following)

	following, err = f.Toggle(ctx, accountID, "creator-1")
	require.NoError(t, err)
	assert.False(t, following)
	assert.Equal(t, models.FollowCounts{}, f.Counts("creator-1"))
	assert.Equal(t, models.FollowCounts{}, f.Counts("acc-1"))
}

func TestFollow_FailedWriteRollsBackBothCounters(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mock.NewMockDataBackend(ctrl)

	backend.EXPECT().EdgeExists(gomock.Any(), "creator-1", "acc-1").Return(false, nil)
	backend.EXPECT().InsertEdge(gomock.Any(), gomock.Any()).Return(models.FollowEdge{}, fmt.Errorf("insert: %w", adapter.ErrUnavailable))

	f := newTestFollow(backend, nil)
	following, err := f.Toggle(context.Background(), accountID, "creator-1")

	require.ErrorIs(t, err, app.ErrTransientNetwork)
	assert.False(t, following)
	assert.Equal(t, 0, f.Counts("creator-1").Followers)
	assert.Equal(t, 0, f.Counts("acc-1").Following)
}

func TestFollow_FailedUnfollowKeepsFollowing(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mock.NewMockDataBackend(ctrl)

	backend.EXPECT().CountFollowers(gomock.Any(), "creator-1").Return(3, nil)
	backend.EXPECT().CountFollowing(gomock.Any(), "creator-1").Return(0, nil)
	backend.EXPECT().EdgeExists(gomock.Any(), "creator-1", "acc-1").Return(true, nil)
	backend.EXPECT().DeleteEdge(gomock.Any(), "creator-1", "acc-1").Return(fmt.Errorf("delete: %w", adapter.ErrForbidden))

	f := newTestFollow(backend, nil)
	_, err := f.ReloadCounts(context.Background(), "creator-1")
	require.NoError(t, err)

	following, err := f.Toggle(context.Background(), accountID, "creator-1")
	require.ErrorIs(t, err, app.ErrAccessDenied)
	assert.True(t, following)
	assert.Equal(t, 3, f.Counts("creator-1").Followers)
}

func TestFollow_IdempotentBackendOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		exists  bool
		setup   func(b *mock.MockDataBackend)
		wantNow bool
	}{
		{
			name:   "edge already inserted elsewhere",
			exists: false,
			setup: func(b *mock.MockDataBackend) {
				b.EXPECT().InsertEdge(gomock.Any(), gomock.Any()).Return(models.FollowEdge{}, fmt.Errorf("409: %w", adapter.ErrConflict))
			},
			wantNow: true,
		},
		{
			name:   "edge already deleted elsewhere",
			exists: true,
			setup: func(b *mock.MockDataBackend) {
				b.EXPECT().DeleteEdge(gomock.Any(), "creator-1", "acc-1").Return(adapter.ErrNotFound)
			},
			wantNow: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			backend := mock.NewMockDataBackend(ctrl)
			backend.EXPECT().EdgeExists(gomock.Any(), "creator-1", "acc-1").Return(tt.exists, nil)
			tt.setup(backend)

			following, err := newTestFollow(backend, nil).Toggle(context.Background(), accountID, "creator-1")
			require.NoError(t, err)
			assert.Equal(t, tt.wantNow, following)
		})
	}
}

func TestFollow_GuestPublishesDisplayProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mock.NewMockDataBackend(ctrl)
	guests := &stubGuests{profile: models.GuestProfile{SessionID: guestID.ID, AvatarURL: "a.png"}}

	backend.EXPECT().EdgeExists(gomock.Any(), "creator-1", guestID.ID).Return(false, nil)
	backend.EXPECT().InsertEdge(gomock.Any(), models.FollowEdge{CreatorID: "creator-1", FollowerID: guestID.ID, IsGuest: true}).
		Return(models.FollowEdge{ID: "e-1"}, nil)
	backend.EXPECT().UpsertGuestProfile(gomock.Any(), models.GuestDisplayProfile{
		SessionID:   guestID.ID,
		DisplayName: models.DefaultGuestDisplayName,
		AvatarURL:   "a.png",
	}).Return(fmt.Errorf("upsert: %w", adapter.ErrUnavailable))

	// a failed profile upsert does not undo the follow
	following, err := newTestFollow(backend, guests).Toggle(context.Background(), guestID, "creator-1")
	require.NoError(t, err)
	assert.True(t, following)
}

func TestFollow_RejectsBadInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mock.NewMockDataBackend(ctrl)
	f := newTestFollow(backend, nil)

	_, err := f.Toggle(context.Background(), models.Identity{}, "creator-1")
	require.ErrorIs(t, err, ErrInvalidIdentity)

	_, err = f.Toggle(context.Background(), accountID, accountID.ID)
	require.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = f.Toggle(context.Background(), accountID, "")
	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestFollow_ConcurrentTogglesAreSerialized(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mock.NewMockDataBackend(ctrl)

	var mu sync.Mutex
	exists := false
	backend.EXPECT().EdgeExists(gomock.Any(), "creator-1", "acc-1").DoAndReturn(func(context.Context, string, string) (bool, error) {
		mu.Lock()
		defer mu.Unlock()
		return exists, nil
	}).Times(4)
	backend.EXPECT().InsertEdge(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e models.FollowEdge) (models.FollowEdge, error) {
		mu.Lock()
		defer mu.Unlock()
		assert.False(t, exists)
		exists = true
		return e, nil
	}).Times(2)
	backend.EXPECT().DeleteEdge(gomock.Any(), "creator-1", "acc-1").DoAndReturn(func(context.Context, string, string) error {
		mu.Lock()
		defer mu.Unlock()
		assert.True(t, exists)
		exists = false
		return nil
	}).Times(2)

	f := newTestFollow(backend, nil)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.Toggle(context.Background(), accountID, "creator-1")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, f.Counts("creator-1").Followers)
	assert.Equal(t, 0, f.Counts("acc-1").Following)
}

// ── ReloadCounts ──

func TestFollow_ReloadCountsKeepsLocalOnFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mock.NewMockDataBackend(ctrl)

	gomock.InOrder(
		backend.EXPECT().CountFollowers(gomock.Any(), "creator-1").Return(5, nil),
		backend.EXPECT().CountFollowing(gomock.Any(), "creator-1").Return(2, nil),
		backend.EXPECT().CountFollowers(gomock.Any(), "creator-1").Return(0, adapter.ErrTransport),
	)

	f := newTestFollow(backend, nil)
	counts, err := f.ReloadCounts(context.Background(), "creator-1")
	require.NoError(t, err)
	assert.Equal(t, models.FollowCounts{Followers: 5, Following: 2}, counts)

	counts, err = f.ReloadCounts(context.Background(), "creator-1")
	require.ErrorIs(t, err, app.ErrTransientNetwork)
	assert.Equal(t, models.FollowCounts{Followers: 5, Following: 2}, counts)
}
