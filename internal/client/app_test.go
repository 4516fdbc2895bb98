// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/milleriumage/oi-friendly-voice/internal/app"
	"github.com/milleriumage/oi-friendly-voice/internal/config"
	"github.com/milleriumage/oi-friendly-voice/internal/logger"
	"github.com/milleriumage/oi-friendly-voice/internal/mock"
	"github.com/milleriumage/oi-friendly-voice/internal/service"
	"github.com/milleriumage/oi-friendly-voice/internal/store"
	"github.com/milleriumage/oi-friendly-voice/internal/utils"
	"github.com/milleriumage/oi-friendly-voice/models"
)

// ── helpers ──

// lockedBuffer is written by timer and engine goroutines.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func accountToken(t *testing.T) string {
	t.Helper()
	token, err := utils.GenerateJWTToken("auth", "acc-1", time.Hour, "secret")
	require.NoError(t, err)
	return token.SignedString
}

// newTestApp wires the real client services over an in-memory pebble store
// and a mocked Data Backend. An empty token makes the app a guest.
func newTestApp(t *testing.T, token string) (*App, *mock.MockDataBackend, *lockedBuffer) {
	t.Helper()
	ctrl := gomock.NewController(t)
	backend := mock.NewMockDataBackend(ctrl)
	backend.EXPECT().SetGuestSession(gomock.Any()).AnyTimes()
	backend.EXPECT().SetToken(gomock.Any()).AnyTimes()

	kv, err := store.NewPebbleKV("client", &pebble.Options{FS: vfs.NewMem()}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })

	cfg := &config.ClientConfig{
		Session: config.ClientSession{AuthToken: token},
		Sync:    config.Sync{PollInterval: time.Minute},
	}
	services := service.NewClientServices(cfg, kv, backend, logger.Nop())

	out := &lockedBuffer{}
	a, err := NewApp(services, out, cfg.Sync, logger.Nop())
	require.NoError(t, err)
	return a, backend, out
}

// manualTicker is ticked by the test.
type manualTicker struct {
	ch chan time.Time
}

func (m *manualTicker) start(time.Duration) (<-chan time.Time, func()) {
	return m.ch, func() {}
}

func TestNewApp_RequiresServices(t *testing.T) {
	_, err := NewApp(nil, nil, config.Sync{}, logger.Nop())
	require.ErrorIs(t, err, errNoServices)
}

// ── identity and ledger ──

func TestApp_WhoAmI(t *testing.T) {
	t.Run("guest", func(t *testing.T) {
		a, _, out := newTestApp(t, "")
		require.NoError(t, a.WhoAmI(context.Background()))
		assert.Contains(t, out.String(), "guest ")
		assert.Contains(t, out.String(), models.DefaultGuestDisplayName)
	})

	t.Run("account", func(t *testing.T) {
		a, _, out := newTestApp(t, accountToken(t))
		require.NoError(t, a.WhoAmI(context.Background()))
		assert.Contains(t, out.String(), "account acc-1")
	})
}

func TestApp_GuestLedger(t *testing.T) {
	ctx := context.Background()
	a, _, out := newTestApp(t, "")

	require.NoError(t, a.Balance(ctx))
	assert.Contains(t, out.String(), "credits: 40")

	require.NoError(t, a.AddCredits(ctx, 10))
	assert.Contains(t, out.String(), "added 10, credits: 50")

	require.NoError(t, a.Spend(ctx, 5, "unlock"))
	assert.Contains(t, out.String(), "spent 5, credits: 45")

	err := a.Spend(ctx, 1000, "unlock")
	require.ErrorIs(t, err, app.ErrInsufficientCredits)

	require.ErrorIs(t, a.AddCredits(ctx, 0), errNotPositive)
	require.ErrorIs(t, a.Spend(ctx, -1, ""), errNotPositive)
}

func TestApp_AccountBalanceFailureShowsLastKnown(t *testing.T) {
	a, backend, out := newTestApp(t, accountToken(t))
	backend.EXPECT().GetCredits(gomock.Any(), "acc-1").Return(models.Balance{}, context.DeadlineExceeded).AnyTimes()

	require.NoError(t, a.Balance(context.Background()))
	assert.Contains(t, out.String(), "last known")
}

// ── guest profile ──

func TestApp_SetGuestName(t *testing.T) {
	t.Run("guest", func(t *testing.T) {
		a, _, out := newTestApp(t, "")
		require.NoError(t, a.SetGuestName(context.Background(), "Ana"))
		assert.Contains(t, out.String(), "display name: Ana")
	})

	t.Run("account", func(t *testing.T) {
		a, _, _ := newTestApp(t, accountToken(t))
		require.ErrorIs(t, a.SetGuestName(context.Background(), "Ana"), errGuestOnly)
	})
}

// ── follows and likes ──

func TestApp_ToggleFollow(t *testing.T) {
	ctx := context.Background()
	a, backend, out := newTestApp(t, "")

	gomock.InOrder(
		backend.EXPECT().EdgeExists(gomock.Any(), "c-1", gomock.Any()).Return(false, nil),
		backend.EXPECT().InsertEdge(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e models.FollowEdge) (models.FollowEdge, error) {
				assert.True(t, e.IsGuest)
				e.ID = "e-1"
				return e, nil
			}),
		backend.EXPECT().UpsertGuestProfile(gomock.Any(), gomock.Any()).Return(nil),
		backend.EXPECT().EdgeExists(gomock.Any(), "c-1", gomock.Any()).Return(true, nil),
		backend.EXPECT().DeleteEdge(gomock.Any(), "c-1", gomock.Any()).Return(nil),
	)

	require.NoError(t, a.ToggleFollow(ctx, "c-1"))
	assert.Contains(t, out.String(), "following c-1 (1 followers)")

	require.NoError(t, a.ToggleFollow(ctx, "c-1"))
	assert.Contains(t, out.String(), "unfollowed c-1 (0 followers)")
}

func TestApp_ToggleLikeFailure(t *testing.T) {
	a, backend, _ := newTestApp(t, accountToken(t))
	backend.EXPECT().ListLikes(gomock.Any(), "m-1").Return(nil, nil)
	backend.EXPECT().Like(gomock.Any(), "m-1").Return(models.LikeRecord{}, context.DeadlineExceeded)

	err := a.ToggleLike(context.Background(), "m-1")

	require.Error(t, err)
	assert.Zero(t, a.services.Likes.Count("m-1"), "optimistic like rolled back")
}

func TestApp_ToggleLike(t *testing.T) {
	a, backend, out := newTestApp(t, accountToken(t))
	backend.EXPECT().ListLikes(gomock.Any(), "m-1").Return(nil, nil)
	backend.EXPECT().Like(gomock.Any(), "m-1").Return(models.LikeRecord{ID: "l-1", MediaID: "m-1", LikerID: "acc-1"}, nil)

	require.NoError(t, a.ToggleLike(context.Background(), "m-1"))
	assert.Contains(t, out.String(), "liked m-1 (1 likes)")
}

// ── media ──

func TestApp_Upload(t *testing.T) {
	dir := t.TempDir()
	image := filepath.Join(dir, "cover.png")
	require.NoError(t, os.WriteFile(image, []byte("\x89PNG fake"), 0o600))
	unknown := filepath.Join(dir, "notes.unknownext")
	require.NoError(t, os.WriteFile(unknown, []byte("x"), 0o600))

	t.Run("account uploads an image", func(t *testing.T) {
		a, backend, out := newTestApp(t, accountToken(t))
		backend.EXPECT().InsertMedia(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, row models.MediaRow) (models.MediaRow, error) {
				assert.Equal(t, "acc-1", row.UserID)
				assert.Equal(t, models.MediaImage, row.Type)
				assert.Equal(t, "Cover", row.Title)
				row.ID = "m-1"
				return row, nil
			})

		require.NoError(t, a.Upload(context.Background(), UploadRequest{Path: image, Title: "Cover"}))
		assert.Contains(t, out.String(), "uploaded m-1 -> images/")
	})

	t.Run("guest cannot upload", func(t *testing.T) {
		a, _, _ := newTestApp(t, "")
		require.ErrorIs(t, a.Upload(context.Background(), UploadRequest{Path: image}), errAccountOnly)
	})

	t.Run("unknown extension", func(t *testing.T) {
		a, _, _ := newTestApp(t, accountToken(t))
		require.ErrorIs(t, a.Upload(context.Background(), UploadRequest{Path: unknown}), errUnknownFileType)
	})

	t.Run("missing file", func(t *testing.T) {
		a, _, _ := newTestApp(t, accountToken(t))
		require.ErrorIs(t, a.Upload(context.Background(), UploadRequest{Path: filepath.Join(dir, "gone.png")}), os.ErrNotExist)
	})
}

func TestApp_SetMain(t *testing.T) {
	a, backend, out := newTestApp(t, accountToken(t))
	backend.EXPECT().SetMainMedia(gomock.Any(), "m-2").Return([]models.MediaRow{
		{ID: "m-1", UserID: "acc-1", Type: models.MediaImage, StoragePath: "images/1.png"},
		{ID: "m-2", UserID: "acc-1", Type: models.MediaImage, StoragePath: "images/2.png", IsMain: true},
	}, nil)

	require.NoError(t, a.SetMain(context.Background(), "m-2"))
	assert.Contains(t, out.String(), "main media: m-2 (2 items updated)")
}

func TestApp_WatchMedia(t *testing.T) {
	a, backend, out := newTestApp(t, "")
	backend.EXPECT().ListMedia(gomock.Any(), "acc-1").Return([]models.MediaRow{
		{ID: "m-1", UserID: "acc-1", Type: models.MediaImage, StoragePath: "images/1.png"},
		{ID: "m-2", UserID: "acc-1", Type: models.MediaVideo, StoragePath: "videos/2.mp4", IsMain: true},
	}, nil).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.WatchMedia(ctx, "acc-1") }()

	require.Eventually(t, func() bool {
		return bytes.Contains([]byte(out.String()), []byte("* m-2"))
	}, time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestApp_WatchFollowersReloadsCounts(t *testing.T) {
	a, backend, out := newTestApp(t, "")
	backend.EXPECT().ListFollowers(gomock.Any(), "c-1").Return([]models.Follower{
		{FollowEdge: models.FollowEdge{ID: "e-1", CreatorID: "c-1", FollowerID: "s-9", IsGuest: true}, DisplayName: "Visitante"},
	}, nil).AnyTimes()
	backend.EXPECT().ListFollowing(gomock.Any(), "c-1").Return(nil, nil).AnyTimes()
	backend.EXPECT().CountFollowers(gomock.Any(), "c-1").Return(1, nil).AnyTimes()
	backend.EXPECT().CountFollowing(gomock.Any(), "c-1").Return(0, nil).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.WatchFollowers(ctx, "c-1") }()

	require.Eventually(t, func() bool {
		s := out.String()
		return bytes.Contains([]byte(s), []byte("c-1: 1 followers, 0 following")) &&
			bytes.Contains([]byte(s), []byte("s-9 Visitante"))
	}, time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

// ── trial ──

func TestApp_RunTrial(t *testing.T) {
	t.Run("guest trial runs to expiry", func(t *testing.T) {
		a, _, out := newTestApp(t, "")
		ticker := &manualTicker{ch: make(chan time.Time)}
		a.trialOptions = service.TrialOptions{Duration: 2, DebitEvery: 1, DebitAmount: 4, Ticker: ticker.start}

		done := make(chan error, 1)
		go func() { done <- a.RunTrial(context.Background()) }()

		ticker.ch <- time.Now()
		ticker.ch <- time.Now()

		require.NoError(t, <-done)
		assert.Contains(t, out.String(), "trial started, 0:02 remaining")
		assert.Contains(t, out.String(), "trial debit, credits: 36")
		assert.Contains(t, out.String(), "trial expired")
	})

	t.Run("cancelled trial reports what is left", func(t *testing.T) {
		a, _, out := newTestApp(t, "")
		ticker := &manualTicker{ch: make(chan time.Time)}
		a.trialOptions = service.TrialOptions{Ticker: ticker.start}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		require.NoError(t, a.RunTrial(ctx))
		assert.Contains(t, out.String(), "trial paused, 5:00 remaining")
	})

	t.Run("accounts have no trial", func(t *testing.T) {
		a, _, _ := newTestApp(t, accountToken(t))
		require.ErrorIs(t, a.RunTrial(context.Background()), errGuestOnly)
	})
}
