// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/milleriumage/oi-friendly-voice/internal/config"
	"github.com/milleriumage/oi-friendly-voice/internal/logger"
)

// ClientStorages groups the client-side stores.
type ClientStorages struct {
	// KV keeps the guest session record and the test-mode balances.
	KV KV
}

// NewClientStorages opens the local store selected by cfg.Driver at cfg.Path.
func NewClientStorages(ctx context.Context, cfg config.Local, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Str("driver", cfg.Driver).Msg("creating new storages...")

	var (
		kv  KV
		err error
	)
	switch cfg.Driver {
	case config.LocalDriverPebble:
		kv, err = NewPebbleKV(cfg.Path, nil, logger)
	case config.LocalDriverSQLite, "":
		kv, err = NewSQLiteKV(ctx, cfg.Path, logger)
	default:
		return nil, fmt.Errorf("unknown local store driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("local store error: %w", err)
	}

	return &ClientStorages{KV: kv}, nil
}

// Close closes the local store.
func (s *ClientStorages) Close() error {
	if s == nil || s.KV == nil {
		return nil
	}
	return s.KV.Close()
}
