// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrNotFound is returned when the targeted row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyExists is returned on a unique constraint violation, e.g. a
	// second follow edge for the same (creator, follower) pair.
	ErrAlreadyExists = errors.New("record already exists")

	// ErrVersionConflict is returned when a compare-and-swap on a profile's
	// credits fails because the stored version moved on.
	ErrVersionConflict = errors.New("version conflict")

	// ErrAccessDenied is returned when the database rejects the statement
	// under its row-level policy (insufficient_privilege).
	ErrAccessDenied = errors.New("access denied by row policy")

	// ErrTransient wraps connection and serialization failures that may
	// succeed when retried.
	ErrTransient = errors.New("transient database failure")

	// ErrCorruptRecord is returned by local key-value stores when a stored
	// value cannot be decoded.
	ErrCorruptRecord = errors.New("corrupt local record")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	ErrBuildingSQLQuery     = errors.New("error building sql query")
	ErrExecutingQuery       = errors.New("error executing sql query")
	ErrBeginningTransaction = errors.New("failed to begin transaction")
	ErrCommitingTransaction = errors.New("failed to commit transaction")
	ErrScanningRow          = errors.New("failed to scan row")
	ErrScanningRows         = errors.New("failed to scan rows")
	ErrEncodingColumn       = errors.New("failed to encode column value")
)
