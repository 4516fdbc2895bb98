// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "context"

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// Namespaces of the client local store.
const (
	NamespaceGuest    = "guest"
	NamespaceTestMode = "test_mode"
)

// KV is the client's durable key-value store. Values are opaque bytes,
// usually JSON records. Get returns [ErrNotFound] for a missing key.
type KV interface {
	Get(ctx context.Context, namespace, key string) ([]byte, error)
	Put(ctx context.Context, namespace, key string, value []byte) error
	Delete(ctx context.Context, namespace, key string) error
	Close() error
}
