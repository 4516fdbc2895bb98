// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/milleriumage/oi-friendly-voice/internal/collection"
	"github.com/milleriumage/oi-friendly-voice/internal/logger"
	"github.com/milleriumage/oi-friendly-voice/internal/realtime"
	"github.com/milleriumage/oi-friendly-voice/models"
)

// Subscriber opens push registrations. *realtime.Hub implements it.
type Subscriber interface {
	Subscribe(ctx context.Context, f models.Filter, onEvent func(models.ChangeEvent), onStatus func(models.SubscriptionStatus)) (*realtime.HubSubscription, error)
}

// rowSource is a [collection.Source] over one table filtered by one column.
// Rows of type R are decoded into items of type T at this boundary; rows
// that do not decode are dropped with a warning.
type rowSource[R any, T collection.Item] struct {
	table  string
	column string
	fetch  func(ctx context.Context, scope string) ([]R, error)
	decode func(R) (T, error)

	hub    Subscriber
	logger *logger.Logger
}

func (s *rowSource[R, T]) Fetch(ctx context.Context, scope string) ([]T, error) {
	rows, err := s.fetch(ctx, scope)
	if err != nil {
		return nil, err
	}

	items := make([]T, 0, len(rows))
	for _, row := range rows {
		item, err := s.decode(row)
		if err != nil {
			s.logger.Warn().Err(err).Str("table", s.table).Str("scope", scope).Msg("dropping undecodable row")
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *rowSource[R, T]) Subscribe(ctx context.Context, scope string, onEvent func(collection.Event[T]), onStatus func(models.SubscriptionStatus)) (collection.Subscription, error) {
	if s.hub == nil {
		return nil, fmt.Errorf("%w: no push transport configured", ErrTransport)
	}

	filter := models.Filter{Table: s.table, Column: s.column, Value: scope}
	sub, err := s.hub.Subscribe(ctx, filter, func(ev models.ChangeEvent) {
		decoded, ok := s.event(ev)
		if ok {
			onEvent(decoded)
		}
	}, onStatus)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	return sub, nil
}

type rowID struct {
	ID string `json:"id"`
}

// event decodes a change. Deletes only need the row id.
func (s *rowSource[R, T]) event(ev models.ChangeEvent) (collection.Event[T], bool) {
	var id rowID
	if err := json.Unmarshal(ev.Row, &id); err != nil || id.ID == "" {
		s.logger.Warn().Str("table", s.table).Str("type", string(ev.Type)).Msg("change without row id")
		return collection.Event[T]{}, false
	}

	out := collection.Event[T]{Type: ev.Type, ID: id.ID, Seq: ev.Seq}
	if ev.Type == models.ChangeDelete {
		return out, true
	}

	var row R
	if err := json.Unmarshal(ev.Row, &row); err != nil {
		s.logger.Warn().Err(err).Str("table", s.table).Str("id", id.ID).Msg("undecodable change row")
		return collection.Event[T]{}, false
	}
	item, err := s.decode(row)
	if err != nil {
		s.logger.Warn().Err(err).Str("table", s.table).Str("id", id.ID).Msg("undecodable change row")
		return collection.Event[T]{}, false
	}
	out.Item = item
	return out, true
}

// NewMediaSource watches media_items by owner.
func NewMediaSource(backend DataBackend, hub Subscriber, log *logger.Logger) collection.Source[models.MediaItem] {
	return &rowSource[models.MediaRow, models.MediaItem]{
		table:  models.MediaRow{}.TableName(),
		column: "user_id",
		fetch:  backend.ListMedia,
		decode: models.MediaRow.ToItem,
		hub:    hub,
		logger: sourceLogger(log, "media"),
	}
}

// NewFollowingSource watches the edges a follower id created.
func NewFollowingSource(backend DataBackend, hub Subscriber, log *logger.Logger) collection.Source[models.FollowEdge] {
	return &rowSource[models.FollowEdge, models.FollowEdge]{
		table:  models.FollowEdge{}.TableName(),
		column: "follower_id",
		fetch:  backend.ListFollowing,
		decode: func(e models.FollowEdge) (models.FollowEdge, error) { return e, nil },
		hub:    hub,
		logger: sourceLogger(log, "following"),
	}
}

// NewLikesSource watches media_likes of one media item.
func NewLikesSource(backend DataBackend, hub Subscriber, log *logger.Logger) collection.Source[models.LikeRecord] {
	return &rowSource[models.LikeRecord, models.LikeRecord]{
		table:  models.LikeRecord{}.TableName(),
		column: "media_id",
		fetch:  backend.ListLikes,
		decode: func(l models.LikeRecord) (models.LikeRecord, error) { return l, nil },
		hub:    hub,
		logger: sourceLogger(log, "likes"),
	}
}

// profileCacheSize bounds the display profiles remembered across fetches.
const profileCacheSize = 1024

type displayProfile struct {
	name   string
	avatar string
}

// NewFollowersSource watches the followers of a creator. Push rows are bare
// edges; their display profile is filled in from profiles seen in earlier
// fetches, falling back to the guest placeholder name.
func NewFollowersSource(backend DataBackend, hub Subscriber, log *logger.Logger) collection.Source[models.Follower] {
	profiles, _ := lru.New[string, displayProfile](profileCacheSize)

	return &rowSource[models.Follower, models.Follower]{
		table:  models.FollowEdge{}.TableName(),
		column: "creator_id",
		fetch: func(ctx context.Context, creatorID string) ([]models.Follower, error) {
			rows, err := backend.ListFollowers(ctx, creatorID)
			if err != nil {
				return nil, err
			}
			for _, f := range rows {
				if f.DisplayName != "" {
					profiles.Add(f.FollowerID, displayProfile{name: f.DisplayName, avatar: f.AvatarURL})
				}
			}
			return rows, nil
		},
		decode: func(f models.Follower) (models.Follower, error) {
			if f.DisplayName == "" {
				if p, ok := profiles.Get(f.FollowerID); ok {
					f.DisplayName, f.AvatarURL = p.name, p.avatar
				} else if f.IsGuest {
					f.DisplayName = models.DefaultGuestDisplayName
				}
			}
			return f, nil
		},
		hub:    hub,
		logger: sourceLogger(log, "followers"),
	}
}

func sourceLogger(log *logger.Logger, name string) *logger.Logger {
	if log == nil {
		log = logger.Nop()
	}
	return log.Component("source." + name)
}
