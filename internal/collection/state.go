// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package collection

import (
	"context"
	"errors"
	"fmt"

	"github.com/milleriumage/oi-friendly-voice/internal/app"
	"github.com/milleriumage/oi-friendly-voice/models"
)

// State is the lifecycle state of an [Engine].
type State int

const (
	StateUninitialized State = iota
	StateLoading
	// StateLive means the push subscription is healthy.
	StateLive
	// StateDegraded means push failed and the engine is polling.
	StateDegraded
	// StateDisposed is terminal.
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateLive:
		return "live"
	case StateDegraded:
		return "degraded"
	case StateDisposed:
		return "disposed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ErrDisposed is returned by Start and Refresh after Stop.
var ErrDisposed = errors.New("collection engine disposed")

// Item is anything with a stable identifier.
type Item interface {
	ItemID() string
}

// Event is a decoded push change. For deletes only ID is required.
type Event[T Item] struct {
	Type models.ChangeType
	Item T
	ID   string
	Seq  uint64
}

func (e Event[T]) id() string {
	if e.ID != "" {
		return e.ID
	}
	return e.Item.ItemID()
}

// Subscription is a live push registration.
// Close must not block on in-flight handler calls.
type Subscription interface {
	Close()
}

// Source is the Data Backend seen through one collection.
//
// Fetch returns every item in scope ordered newest first. Subscribe opens a
// push registration for the same scope; onStatus reports transport health
// changes for as long as the registration is open. The Subscribe ctx bounds
// only the registration wait, not the registration's lifetime.
type Source[T Item] interface {
	Fetch(ctx context.Context, scope string) ([]T, error)
	Subscribe(ctx context.Context, scope string, onEvent func(Event[T]), onStatus func(models.SubscriptionStatus)) (Subscription, error)
}

// Snapshot is an immutable view of the engine.
type Snapshot[T Item] struct {
	Items   []T
	State   State
	Scope   string
	Version uint64
	// Err is the most recent fetch failure, nil after a successful fetch.
	// It wraps app.ErrAccessDenied or app.ErrTransientNetwork.
	Err error
}

// classifyFetchError separates policy rejections from everything else.
func classifyFetchError(err error) error {
	if errors.Is(err, app.ErrAccessDenied) {
		return err
	}
	if errors.Is(err, app.ErrTransientNetwork) {
		return err
	}
	return fmt.Errorf("%w: %w", app.ErrTransientNetwork, err)
}
