// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"unicode/utf8"

	"github.com/milleriumage/oi-friendly-voice/internal/app"
	"github.com/milleriumage/oi-friendly-voice/models"
)

// MaxDisplayNameLength bounds guest and profile display names, in runes.
const MaxDisplayNameLength = 80

const (
	FieldCreatorID   = "creator_id"
	FieldFollowerID  = "follower_id"
	FieldNotSelf     = "not_self"
	FieldSessionID   = "session_id"
	FieldDisplayName = "display_name"
	FieldCredits     = "credits"
	FieldVersion     = "version"
	FieldLikerID     = "liker_id"
)

// ValidateAmount rejects non-positive ledger amounts.
func ValidateAmount(amount int) error {
	if amount <= 0 {
		return app.ErrInvalidAmount
	}
	return nil
}

// SocialValidator validates follow edges, likes, guest display profiles and
// credit CAS writes.
type SocialValidator struct{}

func NewSocialValidator() Validator {
	return &SocialValidator{}
}

func (v *SocialValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.FollowEdge:
		return v.validateEdge(value, fields...)
	case *models.FollowEdge:
		return v.validateEdge(*value, fields...)

	case models.LikeRecord:
		return v.validateLike(value, fields...)
	case *models.LikeRecord:
		return v.validateLike(*value, fields...)

	case models.GuestDisplayProfile:
		return v.validateGuestProfile(value, fields...)
	case *models.GuestDisplayProfile:
		return v.validateGuestProfile(*value, fields...)

	case models.CreditsUpdate:
		return v.validateCredits(value, fields...)
	case *models.CreditsUpdate:
		return v.validateCredits(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *SocialValidator) validateEdge(e models.FollowEdge, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldCreatorID, FieldFollowerID, FieldNotSelf}
	}

	for _, f := range fields {
		switch f {
		case FieldCreatorID:
			if e.CreatorID == "" {
				return ErrInvalidCreatorID
			}
		case FieldFollowerID:
			if e.FollowerID == "" {
				return ErrInvalidFollowerID
			}
		case FieldNotSelf:
			if e.CreatorID == e.FollowerID {
				return ErrSelfFollow
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *SocialValidator) validateLike(l models.LikeRecord, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldMediaID, FieldLikerID}
	}

	for _, f := range fields {
		switch f {
		case FieldMediaID:
			if l.MediaID == "" {
				return ErrInvalidMediaID
			}
		case FieldLikerID:
			if l.LikerID == "" {
				return ErrInvalidUserID
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *SocialValidator) validateGuestProfile(p models.GuestDisplayProfile, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldSessionID, FieldDisplayName}
	}

	for _, f := range fields {
		switch f {
		case FieldSessionID:
			if p.SessionID == "" {
				return ErrInvalidSessionID
			}
		case FieldDisplayName:
			if utf8.RuneCountInString(p.DisplayName) > MaxDisplayNameLength {
				return ErrDisplayNameTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *SocialValidator) validateCredits(u models.CreditsUpdate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldCredits, FieldVersion}
	}

	for _, f := range fields {
		switch f {
		case FieldCredits:
			if u.Credits < 0 {
				return ErrInvalidCreditsValue
			}
		case FieldVersion:
			if u.ExpectedVersion < 0 {
				return ErrInvalidVersion
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
