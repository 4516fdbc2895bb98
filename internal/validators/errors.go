// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUserID        = errors.New("invalid user ID")
	ErrInvalidMediaID       = errors.New("invalid media ID")
	ErrInvalidMediaType     = errors.New("invalid media type")
	ErrEmptyStoragePath     = errors.New("storage path is required")
	ErrFileTooLarge         = errors.New("file exceeds the upload size limit")
	ErrEmptyFile            = errors.New("file is empty")
	ErrUnsupportedMediaType = errors.New("unsupported media content type")
	ErrInvalidPrice         = errors.New("invalid price")
	ErrInvalidLinkButton    = errors.New("link button needs a label and an absolute http(s) URL")
	ErrNoFieldsToUpdate     = errors.New("at least one field must be provided for update")
	ErrInvalidCreditsValue  = errors.New("credits must not be negative")
	ErrInvalidVersion       = errors.New("invalid version")
	ErrInvalidCreatorID     = errors.New("invalid creator ID")
	ErrInvalidFollowerID    = errors.New("invalid follower ID")
	ErrSelfFollow           = errors.New("cannot follow yourself")
	ErrInvalidSessionID     = errors.New("invalid guest session ID")
	ErrDisplayNameTooLong   = errors.New("display name is too long")
)
