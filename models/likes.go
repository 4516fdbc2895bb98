// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// LikeRecord is one like of a media item by an account or a guest session.
type LikeRecord struct {
	ID        string    `json:"id"`
	MediaID   string    `json:"media_id"`
	LikerID   string    `json:"liker_id"`
	IsGuest   bool      `json:"is_guest"`
	CreatedAt time.Time `json:"created_at"`
}

// ItemID implements the collection item contract.
func (l LikeRecord) ItemID() string { return l.ID }

// TableName returns the name of the database table
// associated with the LikeRecord model.
func (l LikeRecord) TableName() string {
	return "media_likes"
}
