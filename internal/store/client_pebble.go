// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"

	"github.com/milleriumage/oi-friendly-voice/internal/logger"
)

// pebbleKV stores records in a Pebble LSM directory under "namespace\x00key".
type pebbleKV struct {
	db     *pebble.DB
	logger *logger.Logger
}

var pebbleWriteOptions = pebble.WriteOptions{Sync: true}

// NewPebbleKV opens the Pebble store at dir. opts may be nil.
func NewPebbleKV(dir string, opts *pebble.Options, log *logger.Logger) (KV, error) {
	if opts == nil {
		opts = &pebble.Options{}
	}

	db, err := pebble.Open(dir, opts)
	if err != nil {
		log.Err(err).Str("func", "NewPebbleKV").Str("dir", dir).Msg("error opening local store")
		return nil, fmt.Errorf("error opening pebble store: %w", err)
	}
	log.Debug().Str("func", "NewPebbleKV").Str("dir", dir).Msg("local store ready")

	return &pebbleKV{db: db, logger: log}, nil
}

func pebbleKey(namespace, key string) []byte {
	k := make([]byte, 0, len(namespace)+len(key)+1)
	k = append(k, namespace...)
	k = append(k, 0)
	return append(k, key...)
}

func (p *pebbleKV) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	val, closer, err := p.db.Get(pebbleKey(namespace, key))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, ErrNotFound
		}
		logger.FromContext(ctx).Err(err).Str("func", "*pebbleKV.Get").Str("namespace", namespace).Msg("failed to read local record")
		return nil, err
	}
	defer closer.Close()

	// val is only valid until closer.Close
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (p *pebbleKV) Put(ctx context.Context, namespace, key string, value []byte) error {
	if err := p.db.Set(pebbleKey(namespace, key), value, &pebbleWriteOptions); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*pebbleKV.Put").Str("namespace", namespace).Msg("failed to write local record")
		return err
	}
	return nil
}

func (p *pebbleKV) Delete(_ context.Context, namespace, key string) error {
	return p.db.Delete(pebbleKey(namespace, key), &pebbleWriteOptions)
}

func (p *pebbleKV) Close() error {
	return p.db.Close()
}
