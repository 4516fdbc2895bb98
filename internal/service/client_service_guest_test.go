// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/milleriumage/oi-friendly-voice/internal/app"
	"github.com/milleriumage/oi-friendly-voice/internal/eventbus"
	"github.com/milleriumage/oi-friendly-voice/internal/logger"
	"github.com/milleriumage/oi-friendly-voice/internal/mock"
	"github.com/milleriumage/oi-friendly-voice/internal/store"
	"github.com/milleriumage/oi-friendly-voice/models"
)

type fixedIDs string

func (f fixedIDs) Generate() string { return string(f) }

var guestNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestGuestStore(kv store.KV, bus *eventbus.Bus[models.GuestProfileChanged]) *guestSessionService {
	s := NewGuestSessionService(kv, bus, logger.Nop()).(*guestSessionService)
	s.ids = fixedIDs("s-fixed")
	s.now = func() time.Time { return guestNow }
	return s
}

func newMemKV(t *testing.T) store.KV {
	t.Helper()
	kv, err := store.NewPebbleKV("guest", &pebble.Options{FS: vfs.NewMem()}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })
	return kv
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

// ── LoadOrCreate ──

func TestGuestSession_FirstLoadCreatesDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	kv := mock.NewMockKV(ctrl)

	var written []byte
	kv.EXPECT().Get(gomock.Any(), store.NamespaceGuest, GuestDataKey).Return(nil, store.ErrNotFound)
	kv.EXPECT().Put(gomock.Any(), store.NamespaceGuest, GuestDataKey, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, raw []byte) error {
			written = raw
			return nil
		})

	profile := newTestGuestStore(kv, nil).LoadOrCreate(context.Background())

	assert.Equal(t, "s-fixed", profile.SessionID)
	assert.Equal(t, models.DefaultGuestCredits, profile.Credits)
	assert.Equal(t, models.DefaultGuestDisplayName, profile.PublicName())

	var stored models.GuestProfile
	require.NoError(t, json.Unmarshal(written, &stored))
	assert.Equal(t, profile, stored)
}

func TestGuestSession_SessionSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV(t)

	first := NewGuestSessionService(kv, nil, logger.Nop()).LoadOrCreate(ctx)
	require.NotEmpty(t, first.SessionID)

	// a new process over the same store sees the same session
	again := NewGuestSessionService(kv, nil, logger.Nop()).LoadOrCreate(ctx)
	assert.Equal(t, first.SessionID, again.SessionID)
	assert.Equal(t, models.DefaultGuestCredits, again.Credits)
}

func TestGuestSession_SalvagesCorruptRecord(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantSession string
		wantName    string
		wantCredits int
	}{
		{
			name:        "credits of the wrong type",
			raw:         `{"session_id":"s-1","display_name":"Ana","credits":"lots"}`,
			wantSession: "s-1",
			wantName:    "Ana",
			wantCredits: models.DefaultGuestCredits,
		},
		{
			name:        "negative credits",
			raw:         `{"session_id":"s-1","display_name":"Ana","avatar_url":"","credits":-5}`,
			wantSession: "s-1",
			wantName:    "Ana",
			wantCredits: models.DefaultGuestCredits,
		},
		{
			name:        "missing session id",
			raw:         `{"display_name":"Ana","credits":12}`,
			wantSession: "s-fixed",
			wantName:    "Ana",
			wantCredits: 12,
		},
		{
			name:        "not json at all",
			raw:         `{{{`,
			wantSession: "s-fixed",
			wantCredits: models.DefaultGuestCredits,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			kv := newMemKV(t)
			require.NoError(t, kv.Put(ctx, store.NamespaceGuest, GuestDataKey, []byte(tt.raw)))

			profile := newTestGuestStore(kv, nil).LoadOrCreate(ctx)

			assert.Equal(t, tt.wantSession, profile.SessionID)
			assert.Equal(t, tt.wantName, profile.DisplayName)
			assert.Equal(t, tt.wantCredits, profile.Credits)

			// the repaired record is written back
			raw, err := kv.Get(ctx, store.NamespaceGuest, GuestDataKey)
			require.NoError(t, err)
			var stored models.GuestProfile
			require.NoError(t, json.Unmarshal(raw, &stored))
			assert.Equal(t, tt.wantSession, stored.SessionID)
			assert.Equal(t, tt.wantCredits, stored.Credits)
		})
	}
}

func TestGuestSession_IntactRecordIsNotRewritten(t *testing.T) {
	ctrl := gomock.NewController(t)
	kv := mock.NewMockKV(ctrl)

	raw := `{"session_id":"s-1","display_name":"Ana","avatar_url":"a.png","credits":7,"updated_at":"2026-01-01T00:00:00Z"}`
	kv.EXPECT().Get(gomock.Any(), store.NamespaceGuest, GuestDataKey).Return([]byte(raw), nil)
	kv.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	profile := newTestGuestStore(kv, nil).LoadOrCreate(context.Background())
	assert.Equal(t, "s-1", profile.SessionID)
	assert.Equal(t, 7, profile.Credits)
	assert.Equal(t, "a.png", profile.AvatarURL)
}

func TestGuestSession_UnreadableStoreKeepsSessionID(t *testing.T) {
	ctrl := gomock.NewController(t)
	kv := mock.NewMockKV(ctrl)

	gomock.InOrder(
		kv.EXPECT().Get(gomock.Any(), store.NamespaceGuest, GuestDataKey).Return(nil, store.ErrNotFound),
		kv.EXPECT().Put(gomock.Any(), store.NamespaceGuest, GuestDataKey, gomock.Any()).Return(nil),
		kv.EXPECT().Get(gomock.Any(), store.NamespaceGuest, GuestDataKey).Return(nil, errors.New("disk gone")),
		kv.EXPECT().Put(gomock.Any(), store.NamespaceGuest, GuestDataKey, gomock.Any()).Return(errors.New("disk gone")),
	)

	s := newTestGuestStore(kv, nil)
	first := s.LoadOrCreate(context.Background())

	s.ids = fixedIDs("s-other")
	second := s.LoadOrCreate(context.Background())
	assert.Equal(t, first.SessionID, second.SessionID)
}

// ── Update ──

func TestGuestSession_UpdateMergesAndPublishes(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV(t)
	bus := eventbus.New[models.GuestProfileChanged]()
	s := newTestGuestStore(kv, bus)

	sub, err := s.Subscribe(4)
	require.NoError(t, err)
	defer sub.Close()

	s.LoadOrCreate(ctx)

	// another writer spends credits behind the store's back
	require.NoError(t, kv.Put(ctx, store.NamespaceGuest, GuestDataKey,
		[]byte(`{"session_id":"s-fixed","display_name":"","avatar_url":"","credits":10}`)))

	got, err := s.Update(ctx, models.GuestProfileUpdate{DisplayName: strPtr("Ana")})
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.DisplayName)
	assert.Equal(t, 10, got.Credits, "update must re-read the record before merging")
	assert.Equal(t, guestNow, got.UpdatedAt)

	select {
	case ev := <-sub.C():
		assert.Equal(t, []string{"display_name"}, ev.Fields)
		assert.Equal(t, "Ana", ev.Profile.DisplayName)
	case <-time.After(time.Second):
		t.Fatal("no change event published")
	}

	again := s.LoadOrCreate(ctx)
	assert.Equal(t, "Ana", again.DisplayName)
	assert.Equal(t, 10, again.Credits)
}

func TestGuestSession_UpdateValidation(t *testing.T) {
	tests := []struct {
		name  string
		patch models.GuestProfileUpdate
	}{
		{name: "display name too long", patch: models.GuestProfileUpdate{DisplayName: strPtr(strings.Repeat("á", 81))}},
		{name: "negative credits", patch: models.GuestProfileUpdate{Credits: intPtr(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			kv := mock.NewMockKV(ctrl)

			_, err := newTestGuestStore(kv, nil).Update(context.Background(), tt.patch)
			require.ErrorIs(t, err, ErrInvalidDataProvided)
		})
	}
}

func TestGuestSession_UpdateWriteFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	kv := mock.NewMockKV(ctrl)
	bus := eventbus.New[models.GuestProfileChanged]()

	kv.EXPECT().Get(gomock.Any(), store.NamespaceGuest, GuestDataKey).
		Return([]byte(`{"session_id":"s-1","display_name":"","avatar_url":"","credits":40}`), nil)
	kv.EXPECT().Put(gomock.Any(), store.NamespaceGuest, GuestDataKey, gomock.Any()).Return(errors.New("quota exceeded"))

	s := newTestGuestStore(kv, bus)
	sub, err := s.Subscribe(1)
	require.NoError(t, err)
	defer sub.Close()

	_, err = s.Update(context.Background(), models.GuestProfileUpdate{Credits: intPtr(5)})
	require.ErrorIs(t, err, app.ErrPersistenceFailed)

	select {
	case ev := <-sub.C():
		t.Fatalf("unexpected event %+v", ev)
	default:
	}
}

func TestGuestSession_EmptyUpdateLoads(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV(t)
	s := newTestGuestStore(kv, nil)

	got, err := s.Update(ctx, models.GuestProfileUpdate{})
	require.NoError(t, err)
	assert.Equal(t, "s-fixed", got.SessionID)
}
