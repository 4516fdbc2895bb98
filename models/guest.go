// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// DefaultGuestCredits is the balance a brand new guest session starts with.
const DefaultGuestCredits = 40

// DefaultGuestDisplayName is shown in follower lists for guests without a name.
const DefaultGuestDisplayName = "Visitante"

// GuestProfile is the locally owned record of an anonymous session.
type GuestProfile struct {
	SessionID   string    `json:"session_id"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url"`
	Credits     int       `json:"credits"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PublicName returns the display name or the guest fallback.
func (g GuestProfile) PublicName() string {
	if g.DisplayName == "" {
		return DefaultGuestDisplayName
	}
	return g.DisplayName
}

// GuestProfileUpdate is a field-level patch. Nil fields are left untouched.
type GuestProfileUpdate struct {
	DisplayName *string
	AvatarURL   *string
	Credits     *int
}

// Empty reports whether the patch changes nothing.
func (u GuestProfileUpdate) Empty() bool {
	return u.DisplayName == nil && u.AvatarURL == nil && u.Credits == nil
}

// Fields lists the names of the fields the patch touches.
func (u GuestProfileUpdate) Fields() []string {
	fields := make([]string, 0, 3)
	if u.DisplayName != nil {
		fields = append(fields, "display_name")
	}
	if u.AvatarURL != nil {
		fields = append(fields, "avatar_url")
	}
	if u.Credits != nil {
		fields = append(fields, "credits")
	}
	return fields
}

// GuestProfileChanged is broadcast after every successful guest profile write.
type GuestProfileChanged struct {
	Profile GuestProfile
	Fields  []string
}

// GuestDisplayProfile is the denormalized, server-side copy of a guest's
// name and avatar so creators can render a follower entry without an account.
type GuestDisplayProfile struct {
	SessionID   string    `json:"session_id"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}
