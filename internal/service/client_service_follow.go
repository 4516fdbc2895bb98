// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/milleriumage/oi-friendly-voice/internal/adapter"
	"github.com/milleriumage/oi-friendly-voice/internal/app"
	"github.com/milleriumage/oi-friendly-voice/internal/collection"
	"github.com/milleriumage/oi-friendly-voice/internal/logger"
	"github.com/milleriumage/oi-friendly-voice/internal/optimistic"
	"github.com/milleriumage/oi-friendly-voice/internal/validators"
	"github.com/milleriumage/oi-friendly-voice/models"
)

type followService struct {
	backend   adapter.DataBackend
	hub       adapter.Subscriber
	guests    GuestSessionService
	validator validators.Validator

	locks     *keyedLocks
	followers *counterTable
	following *counterTable

	pollInterval time.Duration
	logger       *logger.Logger
}

// NewFollowService builds the follow toggle. hub may be nil, in which case
// watched collections run on polling alone.
func NewFollowService(backend adapter.DataBackend, hub adapter.Subscriber, guests GuestSessionService, pollInterval time.Duration, log *logger.Logger) FollowService {
	return &followService{
		backend:      backend,
		hub:          hub,
		guests:       guests,
		validator:    validators.NewSocialValidator(),
		locks:        newKeyedLocks(),
		followers:    newCounterTable(),
		following:    newCounterTable(),
		pollInterval: pollInterval,
		logger:       log.Component("follow"),
	}
}

// Toggle is serialized per (follower, creator) pair, so a double click runs
// as two sequential toggles. Both counters move optimistically and roll back
// together when the backend write fails.
func (f *followService) Toggle(ctx context.Context, follower models.Identity, creatorID string) (bool, error) {
	if !follower.Valid() {
		return false, ErrInvalidIdentity
	}
	edge := models.FollowEdge{CreatorID: creatorID, FollowerID: follower.ID, IsGuest: follower.IsGuest()}
	if err := f.validator.Validate(ctx, edge); err != nil {
		return false, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	unlock := f.locks.lock(pairKey(follower.Key(), creatorID))
	defer unlock()

	log := f.logger.With().Str("identity", follower.Key()).Str("creator_id", creatorID).Logger()

	exists, err := f.backend.EdgeExists(ctx, creatorID, follower.ID)
	if err != nil {
		return false, mapAdapterError(err)
	}

	if exists {
		err = f.moveCounters(ctx, creatorID, follower.ID, -1, func(ctx context.Context) error {
			err := mapAdapterError(f.backend.DeleteEdge(ctx, creatorID, follower.ID))
			if errors.Is(err, app.ErrNotFound) {
				// already gone; the counters reload on the next change event
				return nil
			}
			return err
		})
		if err != nil {
			log.Err(err).Msg("unfollow failed")
			return true, err
		}
		log.Debug().Msg("unfollowed")
		return false, nil
	}

	err = f.moveCounters(ctx, creatorID, follower.ID, 1, func(ctx context.Context) error {
		_, err := f.backend.InsertEdge(ctx, edge)
		err = mapAdapterError(err)
		if errors.Is(err, app.ErrConflict) {
			return nil
		}
		return err
	})
	if err != nil {
		log.Err(err).Msg("follow failed")
		return false, err
	}

	if follower.IsGuest() {
		f.upsertGuestProfile(ctx, follower)
	}
	log.Debug().Msg("followed")
	return true, nil
}

// moveCounters applies delta to the creator's followers and the follower's
// following counters around commit.
func (f *followService) moveCounters(ctx context.Context, creatorID, followerID string, delta int, commit func(context.Context) error) error {
	return optimistic.Run(ctx, f.followers.cell(creatorID), optimistic.AddFloored(delta, 0), func(ctx context.Context) error {
		return optimistic.Run(ctx, f.following.cell(followerID), optimistic.AddFloored(delta, 0), commit)
	})
}

// upsertGuestProfile publishes the guest's display name so the creator's
// follower list can render it. Failures only cost the fallback name.
func (f *followService) upsertGuestProfile(ctx context.Context, follower models.Identity) {
	profile := f.guests.LoadOrCreate(ctx)
	display := models.GuestDisplayProfile{
		SessionID:   follower.ID,
		DisplayName: profile.PublicName(),
		AvatarURL:   profile.AvatarURL,
	}
	if err := f.backend.UpsertGuestProfile(ctx, display); err != nil {
		f.logger.Warn().Err(mapAdapterError(err)).Str("session_id", follower.ID).Msg("guest display profile not published")
	}
}

func (f *followService) Counts(id string) models.FollowCounts {
	return models.FollowCounts{
		Followers: f.followers.get(id),
		Following: f.following.get(id),
	}
}

func (f *followService) ReloadCounts(ctx context.Context, id string) (models.FollowCounts, error) {
	followers, err := f.backend.CountFollowers(ctx, id)
	if err != nil {
		return f.Counts(id), mapAdapterError(err)
	}
	following, err := f.backend.CountFollowing(ctx, id)
	if err != nil {
		return f.Counts(id), mapAdapterError(err)
	}

	f.followers.cell(id).Set(followers)
	f.following.cell(id).Set(following)
	return models.FollowCounts{Followers: followers, Following: following}, nil
}

// FollowWatch is the pair of engines started by Watch.
type FollowWatch struct {
	Followers *collection.Engine[models.Follower]
	Following *collection.Engine[models.FollowEdge]
}

// Stop disposes both engines.
func (w *FollowWatch) Stop() {
	w.Followers.Stop()
	w.Following.Stop()
}

func (f *followService) Watch(ctx context.Context, creatorID string, opts WatchOptions[models.Follower]) (*FollowWatch, error) {
	if creatorID == "" {
		return nil, ErrEmptyScope
	}

	reload := func() {
		if _, err := f.ReloadCounts(ctx, creatorID); err != nil {
			f.logger.Warn().Err(err).Str("creator_id", creatorID).Msg("follow counts reload failed")
		}
	}

	followers := collection.New(adapter.NewFollowersSource(f.backend, f.hub, f.logger), collection.Options[models.Follower]{
		Name:         "followers",
		PollInterval: f.pollInterval,
		Ticker:       opts.Ticker,
		Logger:       f.logger,
		OnChange: func(s collection.Snapshot[models.Follower]) {
			if s.Err == nil && s.State != collection.StateDisposed {
				reload()
			}
			if opts.OnChange != nil {
				opts.OnChange(s)
			}
		},
	})
	following := collection.New(adapter.NewFollowingSource(f.backend, f.hub, f.logger), collection.Options[models.FollowEdge]{
		Name:         "following",
		PollInterval: f.pollInterval,
		Ticker:       opts.Ticker,
		Logger:       f.logger,
		OnChange: func(s collection.Snapshot[models.FollowEdge]) {
			if s.Err == nil && s.State != collection.StateDisposed {
				reload()
			}
		},
	})

	if err := followers.Start(ctx, creatorID); err != nil {
		following.Stop()
		return nil, err
	}
	if err := following.Start(ctx, creatorID); err != nil {
		followers.Stop()
		return nil, err
	}
	return &FollowWatch{Followers: followers, Following: following}, nil
}
