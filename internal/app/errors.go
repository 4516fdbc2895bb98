// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app holds the error taxonomy shared by the client subsystem and the
// wire messages of the Data Backend.
//
// Every operation surfaced to a caller fails with one of the Err* sentinels
// below, possibly wrapped. Callers match them with [errors.Is].
package app

import "errors"

var (
	// ErrInvalidAmount means a credit amount was zero, negative or not an integer.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInsufficientCredits means the balance is lower than the requested debit.
	ErrInsufficientCredits = errors.New("insufficient credits")
	// ErrRateLimited means the caller exceeded the per-identity request window.
	ErrRateLimited = errors.New("rate limited")
	// ErrPersistenceFailed means the backend write failed and local state was rolled back.
	ErrPersistenceFailed = errors.New("persistence failed")
	// ErrAccessDenied means the backend refused the read or write.
	ErrAccessDenied = errors.New("access denied")
	ErrNotFound     = errors.New("not found")
	// ErrTransientNetwork means the backend or push transport was unreachable.
	ErrTransientNetwork = errors.New("transient network error")

	// ErrVersionConflict means a compare-and-swap write lost against a concurrent writer.
	ErrVersionConflict = errors.New("version conflict")
	// ErrConflict means a uniqueness constraint rejected the write (duplicate edge or like).
	ErrConflict = errors.New("conflict")
)
