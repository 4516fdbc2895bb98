// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// ChangeType is the kind of row mutation carried by a push event.
type ChangeType string

const (
	ChangeInsert ChangeType = "insert"
	ChangeUpdate ChangeType = "update"
	ChangeDelete ChangeType = "delete"
)

// Valid reports whether t is one of the known change kinds.
func (t ChangeType) Valid() bool {
	return t == ChangeInsert || t == ChangeUpdate || t == ChangeDelete
}

// ChangeEvent is a row-level change published by the Data Backend.
//
// Row holds the JSON encoding of the affected row (for deletes, at least its
// id). Seq increases monotonically per publisher and is used by subscribers
// to order events against fetch results.
type ChangeEvent struct {
	Table string          `msgpack:"table" json:"table"`
	Type  ChangeType      `msgpack:"type" json:"type"`
	Row   json.RawMessage `msgpack:"row" json:"row"`
	Seq   uint64          `msgpack:"seq" json:"seq"`
	At    time.Time       `msgpack:"at" json:"at"`
}

// Filter scopes a subscription to rows whose Column equals Value.
type Filter struct {
	Table  string
	Column string
	Value  string
}

// SubscriptionStatus is reported by the push transport on health changes.
type SubscriptionStatus int

const (
	// SubscriptionHealthy means events are being delivered.
	SubscriptionHealthy SubscriptionStatus = iota
	// SubscriptionLost means the transport dropped and events may be missed.
	SubscriptionLost
)

func (s SubscriptionStatus) String() string {
	if s == SubscriptionHealthy {
		return "healthy"
	}
	return "lost"
}
