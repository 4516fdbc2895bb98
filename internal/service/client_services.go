// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/milleriumage/oi-friendly-voice/internal/adapter"
	"github.com/milleriumage/oi-friendly-voice/internal/config"
	"github.com/milleriumage/oi-friendly-voice/internal/eventbus"
	"github.com/milleriumage/oi-friendly-voice/internal/logger"
	"github.com/milleriumage/oi-friendly-voice/internal/ratelimit"
	"github.com/milleriumage/oi-friendly-voice/internal/realtime"
	"github.com/milleriumage/oi-friendly-voice/internal/store"
	"github.com/milleriumage/oi-friendly-voice/models"
)

type ClientServices struct {
	Identity IdentityResolver
	Guests   GuestSessionService
	Ledger   CreditLedger
	Follow   FollowService
	Media    MediaService
	Likes    LikeService

	backend adapter.DataBackend
	token   string
	logger  *logger.Logger
}

// NewClientServices wires the client services over the local store and the
// Data Backend. Push subscriptions are enabled when cfg.Realtime.Broker is set.
func NewClientServices(cfg *config.ClientConfig, kv store.KV, backend adapter.DataBackend, log *logger.Logger) *ClientServices {
	guests := NewGuestSessionService(kv, eventbus.New[models.GuestProfileChanged](), log)

	var hub adapter.Subscriber
	if cfg.Realtime.Broker != "" {
		hub = realtime.NewHub(realtime.HubOptions{
			Broker:         cfg.Realtime.Broker,
			ClientID:       cfg.Realtime.ClientID,
			TopicPrefix:    cfg.Realtime.TopicPrefix,
			ConnectTimeout: cfg.Realtime.ConnectTimeout,
			Logger:         log,
		})
	}

	backends := LedgerBackends{
		Account: NewAccountCredits(backend),
		Guest:   NewGuestCredits(guests),
	}
	if cfg.Session.TestMode {
		backends.TestMode = NewTestModeCredits(kv)
		log.Info().Msg("test mode: ledger reads and writes stay local")
	}

	return &ClientServices{
		Identity: NewIdentityResolver(NewTokenAuthProvider(cfg.Session.AuthToken), guests),
		Guests:   guests,
		Ledger:   NewCreditLedger(backends, ratelimit.New(0), DefaultLedgerPolicy(), log),
		Follow:   NewFollowService(backend, hub, guests, cfg.Sync.PollInterval, log),
		Media:    NewMediaService(backend, hub, cfg.Adapter.MediaBaseURL, cfg.Sync.PollInterval, log),
		Likes:    NewLikeService(backend, hub, cfg.Sync.PollInterval, log),
		backend:  backend,
		token:    cfg.Session.AuthToken,
		logger:   log,
	}
}

// Authenticate resolves the acting identity and points the Data Backend
// credentials at it.
func (s *ClientServices) Authenticate(ctx context.Context) models.Identity {
	id := s.Identity.Resolve(ctx)
	if id.IsAuthenticated() {
		s.backend.SetToken(s.token)
	} else {
		s.backend.SetGuestSession(id.ID)
	}
	s.logger.Debug().Str("identity", id.Key()).Msg("identity resolved")
	return id
}
