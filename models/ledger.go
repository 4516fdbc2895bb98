// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Balance is a credit balance together with the optimistic concurrency token
// of the record it was read from.
type Balance struct {
	Credits int   `json:"credits"`
	Version int64 `json:"version"`
}

// CreditsUpdate is a compare-and-swap write of an account balance.
type CreditsUpdate struct {
	Credits         int   `json:"credits"`
	ExpectedVersion int64 `json:"expected_version"`
}

// LedgerEventKind classifies ledger notifications.
type LedgerEventKind string

const (
	LedgerCredited  LedgerEventKind = "credited"
	LedgerDebited   LedgerEventKind = "debited"
	LedgerExhausted LedgerEventKind = "exhausted"
)

// LedgerEvent is emitted by the credit ledger after a committed mutation.
type LedgerEvent struct {
	Kind     LedgerEventKind
	Identity Identity
	Amount   int
	Reason   string
	Balance  int
	At       time.Time
}
