// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/milleriumage/oi-friendly-voice/internal/logger"
	"github.com/milleriumage/oi-friendly-voice/internal/realtime"
	"github.com/milleriumage/oi-friendly-voice/models"
)

// publishChange hands a committed change to the publisher. The write already
// happened, so a publish failure is logged and clients catch up on their next
// fetch.
func publishChange(ctx context.Context, p ChangePublisher, table string, typ models.ChangeType, row any, columns map[string]string) {
	if p == nil {
		return
	}
	err := p.Publish(ctx, realtime.Change{Table: table, Type: typ, Row: row, Columns: columns})
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("table", table).Str("type", string(typ)).Msg("change not published")
	}
}

// mediaColumns and its siblings list the columns a table is published under.
// Clients subscribe on exactly these.
func mediaColumns(r models.MediaRow) map[string]string {
	return map[string]string{"user_id": r.UserID}
}

func followerColumns(e models.FollowEdge) map[string]string {
	return map[string]string{"creator_id": e.CreatorID, "follower_id": e.FollowerID}
}

func likeColumns(l models.LikeRecord) map[string]string {
	return map[string]string{"media_id": l.MediaID}
}
