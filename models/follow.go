// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// FollowEdge is a directed follower→creator relation. At most one edge
// exists per (CreatorID, FollowerID) pair.
type FollowEdge struct {
	ID         string    `json:"id"`
	CreatorID  string    `json:"creator_id"`
	FollowerID string    `json:"follower_id"`
	IsGuest    bool      `json:"is_guest"`
	CreatedAt  time.Time `json:"created_at"`
}

// ItemID implements the collection item contract.
func (e FollowEdge) ItemID() string { return e.ID }

// TableName returns the name of the database table
// associated with the FollowEdge model.
func (e FollowEdge) TableName() string {
	return "followers"
}

// Follower is a follow edge joined with the display profile of the follower
// (for followers listings) or of the creator (for following listings).
type Follower struct {
	FollowEdge
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// ItemID implements the collection item contract.
func (f Follower) ItemID() string { return f.ID }

// FollowCounts is the reconciled pair of follower and following counters
// shown on a creator profile.
type FollowCounts struct {
	Followers int `json:"followers"`
	Following int `json:"following"`
}
