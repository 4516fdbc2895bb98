// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"time"

	"github.com/milleriumage/oi-friendly-voice/internal/adapter"
	"github.com/milleriumage/oi-friendly-voice/internal/app"
	"github.com/milleriumage/oi-friendly-voice/internal/collection"
	"github.com/milleriumage/oi-friendly-voice/internal/logger"
	"github.com/milleriumage/oi-friendly-voice/internal/optimistic"
	"github.com/milleriumage/oi-friendly-voice/models"
)

type likeService struct {
	backend adapter.DataBackend
	hub     adapter.Subscriber

	locks  *keyedLocks
	counts *counterTable

	pollInterval time.Duration
	logger       *logger.Logger
}

func NewLikeService(backend adapter.DataBackend, hub adapter.Subscriber, pollInterval time.Duration, log *logger.Logger) LikeService {
	return &likeService{
		backend:      backend,
		hub:          hub,
		locks:        newKeyedLocks(),
		counts:       newCounterTable(),
		pollInterval: pollInterval,
		logger:       log.Component("likes"),
	}
}

// Toggle likes mediaID when liker has not liked it yet and unlikes it
// otherwise. It is serialized per (liker, media) pair.
func (l *likeService) Toggle(ctx context.Context, liker models.Identity, mediaID string) (bool, error) {
	if !liker.Valid() {
		return false, ErrInvalidIdentity
	}
	if mediaID == "" {
		return false, ErrEmptyScope
	}

	unlock := l.locks.lock(pairKey(liker.Key(), mediaID))
	defer unlock()

	likes, err := l.backend.ListLikes(ctx, mediaID)
	if err != nil {
		return false, mapAdapterError(err)
	}

	liked := false
	for _, like := range likes {
		if like.LikerID == liker.ID {
			liked = true
			break
		}
	}

	cell := l.counts.cell(mediaID)
	if liked {
		err = optimistic.Run(ctx, cell, optimistic.AddFloored(-1, 0), func(ctx context.Context) error {
			err := mapAdapterError(l.backend.Unlike(ctx, mediaID))
			if errors.Is(err, app.ErrNotFound) {
				return nil
			}
			return err
		})
		return err != nil, err
	}

	err = optimistic.Run(ctx, cell, optimistic.Add(1), func(ctx context.Context) error {
		_, err := l.backend.Like(ctx, mediaID)
		err = mapAdapterError(err)
		if errors.Is(err, app.ErrConflict) {
			return nil
		}
		return err
	})
	return err == nil, err
}

func (l *likeService) Count(mediaID string) int {
	return l.counts.get(mediaID)
}

// TotalLikes asks the backend for every item's count and refreshes the local
// counters on the way. Items are counted once each.
func (l *likeService) TotalLikes(ctx context.Context, items []models.MediaItem) (int, error) {
	seen := make(map[string]struct{}, len(items))
	total := 0
	for _, item := range items {
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}

		n, err := l.backend.CountMediaLikes(ctx, item.ID)
		if err != nil {
			return 0, mapAdapterError(err)
		}
		l.counts.cell(item.ID).Set(n)
		total += n
	}
	return total, nil
}

func (l *likeService) Watch(ctx context.Context, mediaID string, opts WatchOptions[models.LikeRecord]) (*collection.Engine[models.LikeRecord], error) {
	if mediaID == "" {
		return nil, ErrEmptyScope
	}

	engine := collection.New(adapter.NewLikesSource(l.backend, l.hub, l.logger), collection.Options[models.LikeRecord]{
		Name:         "likes",
		PollInterval: l.pollInterval,
		Ticker:       opts.Ticker,
		Logger:       l.logger,
		OnChange: func(s collection.Snapshot[models.LikeRecord]) {
			if s.Err == nil && s.State != collection.StateDisposed && s.State != collection.StateLoading {
				l.counts.cell(mediaID).Set(len(s.Items))
			}
			if opts.OnChange != nil {
				opts.OnChange(s)
			}
		},
	})
	if err := engine.Start(ctx, mediaID); err != nil {
		return nil, err
	}
	return engine, nil
}
