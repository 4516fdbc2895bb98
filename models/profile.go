// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Profile is the server-side account record owned by the auth provider's user.
// Credits and Version form the optimistic concurrency pair used by the ledger.
type Profile struct {
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	Credits     int       `json:"credits"`
	Version     int64     `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Profile model.
func (p Profile) TableName() string {
	return "profiles"
}

// CountResponse is the body of every aggregate count RPC.
type CountResponse struct {
	Count int `json:"count"`
}

// ExistsResponse is the body of edge existence lookups.
type ExistsResponse struct {
	Exists bool `json:"exists"`
}
