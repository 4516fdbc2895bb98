// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/milleriumage/oi-friendly-voice/internal/app"
	"github.com/milleriumage/oi-friendly-voice/internal/eventbus"
	"github.com/milleriumage/oi-friendly-voice/internal/logger"
	"github.com/milleriumage/oi-friendly-voice/internal/store"
	"github.com/milleriumage/oi-friendly-voice/internal/utils"
	"github.com/milleriumage/oi-friendly-voice/internal/validators"
	"github.com/milleriumage/oi-friendly-voice/models"
)

// GuestDataKey is the fixed key of the guest record in the local store.
const GuestDataKey = "oifv_guest_data"

type idGenerator interface {
	Generate() string
}

type guestSessionService struct {
	kv  store.KV
	ids idGenerator
	bus *eventbus.Bus[models.GuestProfileChanged]
	now func() time.Time

	// mu serializes read-merge-write cycles. last is the most recent profile
	// seen, kept so the session id stays stable when the store is unreadable.
	mu   sync.Mutex
	last *models.GuestProfile

	logger *logger.Logger
}

// NewGuestSessionService builds the guest session store over kv. bus may be
// shared with other components; a nil bus gets a private one.
func NewGuestSessionService(kv store.KV, bus *eventbus.Bus[models.GuestProfileChanged], log *logger.Logger) GuestSessionService {
	if bus == nil {
		bus = eventbus.New[models.GuestProfileChanged]()
	}
	return &guestSessionService{
		kv:     kv,
		ids:    utils.NewUUIDGenerator(),
		bus:    bus,
		now:    time.Now,
		logger: log.Component("guest_session"),
	}
}

func (s *guestSessionService) LoadOrCreate(ctx context.Context) models.GuestProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, dirty := s.readLocked(ctx)
	if dirty {
		if err := s.writeLocked(ctx, profile); err != nil {
			s.logger.Warn().Err(err).Str("session_id", profile.SessionID).Msg("guest record kept in memory only")
		}
	}
	s.last = &profile
	return profile
}

func (s *guestSessionService) Update(ctx context.Context, patch models.GuestProfileUpdate) (models.GuestProfile, error) {
	if err := validateGuestPatch(patch); err != nil {
		return models.GuestProfile{}, err
	}
	if patch.Empty() {
		return s.LoadOrCreate(ctx), nil
	}

	s.mu.Lock()
	profile, _ := s.readLocked(ctx)
	if patch.DisplayName != nil {
		profile.DisplayName = *patch.DisplayName
	}
	if patch.AvatarURL != nil {
		profile.AvatarURL = *patch.AvatarURL
	}
	if patch.Credits != nil {
		profile.Credits = *patch.Credits
	}
	profile.UpdatedAt = s.now().UTC()

	if err := s.writeLocked(ctx, profile); err != nil {
		s.mu.Unlock()
		s.logger.Err(err).Strs("fields", patch.Fields()).Msg("guest record update failed")
		return models.GuestProfile{}, fmt.Errorf("%w: %w", app.ErrPersistenceFailed, err)
	}
	s.last = &profile
	s.mu.Unlock()

	s.bus.Publish(models.GuestProfileChanged{Profile: profile, Fields: patch.Fields()})
	return profile, nil
}

func (s *guestSessionService) Subscribe(buffer int) (*eventbus.Subscription[models.GuestProfileChanged], error) {
	return s.bus.Subscribe(buffer)
}

func validateGuestPatch(patch models.GuestProfileUpdate) error {
	if patch.DisplayName != nil && utf8.RuneCountInString(*patch.DisplayName) > validators.MaxDisplayNameLength {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrDisplayNameTooLong)
	}
	if patch.Credits != nil && *patch.Credits < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidCreditsValue)
	}
	return nil
}

// readLocked always goes back to the store. dirty reports that the returned
// profile differs from what is persisted and should be written back.
func (s *guestSessionService) readLocked(ctx context.Context) (models.GuestProfile, bool) {
	raw, err := s.kv.Get(ctx, store.NamespaceGuest, GuestDataKey)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return s.freshLocked(), true
	case err != nil:
		s.logger.Warn().Err(err).Msg("guest record unreadable, using last known profile")
		return s.freshLocked(), true
	}

	profile, salvaged := decodeGuestRecord(raw)
	if profile.SessionID == "" {
		fresh := s.freshLocked()
		profile.SessionID = fresh.SessionID
		salvaged = true
	}
	if salvaged {
		s.logger.Warn().Str("session_id", profile.SessionID).Msg("salvaged partially corrupt guest record")
	}
	return profile, salvaged
}

// freshLocked returns the last known profile, or defaults for a new session.
func (s *guestSessionService) freshLocked() models.GuestProfile {
	if s.last != nil {
		return *s.last
	}
	return models.GuestProfile{
		SessionID: s.ids.Generate(),
		Credits:   models.DefaultGuestCredits,
		UpdatedAt: s.now().UTC(),
	}
}

func (s *guestSessionService) writeLocked(ctx context.Context, profile models.GuestProfile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return s.kv.Put(ctx, store.NamespaceGuest, GuestDataKey, raw)
}

// decodeGuestRecord decodes field by field so one bad field does not discard
// the rest. salvaged is true when any field fell back to its default.
func decodeGuestRecord(raw []byte) (models.GuestProfile, bool) {
	profile := models.GuestProfile{Credits: models.DefaultGuestCredits}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return profile, true
	}

	salvaged := false
	take := func(name string, dst any) {
		v, ok := fields[name]
		if !ok {
			salvaged = true
			return
		}
		if err := json.Unmarshal(v, dst); err != nil {
			salvaged = true
		}
	}

	take("session_id", &profile.SessionID)
	take("display_name", &profile.DisplayName)
	take("avatar_url", &profile.AvatarURL)

	var credits int
	if v, ok := fields["credits"]; ok && json.Unmarshal(v, &credits) == nil && credits >= 0 {
		profile.Credits = credits
	} else {
		salvaged = true
	}

	if v, ok := fields["updated_at"]; ok {
		_ = json.Unmarshal(v, &profile.UpdatedAt)
	}
	return profile, salvaged
}
