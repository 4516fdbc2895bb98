// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrVersionIsNotSpecified   = errors.New("app version is not specified")

	// ErrTrialRequiresGuest is returned when a trial timer is built for an
	// authenticated identity.
	ErrTrialRequiresGuest = errors.New("trial timer requires a guest identity")
	ErrInvalidIdentity    = errors.New("invalid identity")
	ErrEmptyScope         = errors.New("empty scope")

	// ErrAccessToDifferentUserData is returned when a caller writes rows owned
	// by another identity.
	ErrAccessToDifferentUserData = errors.New("access to different user data")
)
