// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milleriumage/oi-friendly-voice/internal/config"
	"github.com/milleriumage/oi-friendly-voice/internal/logger"
)

func newMemPebble(t *testing.T) KV {
	t.Helper()
	kv, err := NewPebbleKV("local", &pebble.Options{FS: vfs.NewMem()}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })
	return kv
}

func TestPebbleKV_RoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := newMemPebble(t)

	_, err := kv.Get(ctx, NamespaceGuest, "oifv_guest_data")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, kv.Put(ctx, NamespaceGuest, "oifv_guest_data", []byte(`{"credits":40}`)))
	require.NoError(t, kv.Put(ctx, NamespaceTestMode, "oifv_guest_data", []byte(`{"credits":160}`)))

	got, err := kv.Get(ctx, NamespaceGuest, "oifv_guest_data")
	require.NoError(t, err)
	assert.JSONEq(t, `{"credits":40}`, string(got))

	// namespaces do not bleed into each other
	got, err = kv.Get(ctx, NamespaceTestMode, "oifv_guest_data")
	require.NoError(t, err)
	assert.JSONEq(t, `{"credits":160}`, string(got))

	require.NoError(t, kv.Delete(ctx, NamespaceGuest, "oifv_guest_data"))
	_, err = kv.Get(ctx, NamespaceGuest, "oifv_guest_data")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPebbleKV_ValueOutlivesRead(t *testing.T) {
	ctx := context.Background()
	kv := newMemPebble(t)

	require.NoError(t, kv.Put(ctx, "ns", "k", []byte("first")))
	got, err := kv.Get(ctx, "ns", "k")
	require.NoError(t, err)
	require.NoError(t, kv.Put(ctx, "ns", "k", []byte("second")))

	assert.Equal(t, "first", string(got))
}

func Test_pebbleKey(t *testing.T) {
	assert.Equal(t, []byte("a\x00b"), pebbleKey("a", "b"))
	assert.NotEqual(t, pebbleKey("ab", ""), pebbleKey("a", "b"))
}

func TestSQLiteKV(t *testing.T) {
	ctx := context.Background()

	t.Run("get missing", func(t *testing.T) {
		conn, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer conn.Close()
		kv := newSQLiteKV(conn, logger.Nop())

		mock.ExpectQuery("SELECT value FROM kv WHERE").
			WithArgs("oifv_guest_data", NamespaceGuest).
			WillReturnError(sql.ErrNoRows)

		_, err = kv.Get(ctx, NamespaceGuest, "oifv_guest_data")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("get", func(t *testing.T) {
		conn, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer conn.Close()
		kv := newSQLiteKV(conn, logger.Nop())

		mock.ExpectQuery("SELECT value FROM kv WHERE").
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`{}`)))

		got, err := kv.Get(ctx, NamespaceGuest, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{}`), got)
	})

	t.Run("put upserts", func(t *testing.T) {
		conn, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer conn.Close()
		kv := newSQLiteKV(conn, logger.Nop())

		mock.ExpectExec("INSERT INTO kv (.+) ON CONFLICT \\(namespace, key\\) DO UPDATE").
			WithArgs(NamespaceGuest, "k", []byte("v")).
			WillReturnResult(sqlmock.NewResult(1, 1))

		require.NoError(t, kv.Put(ctx, NamespaceGuest, "k", []byte("v")))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("put fails", func(t *testing.T) {
		conn, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer conn.Close()
		kv := newSQLiteKV(conn, logger.Nop())

		mock.ExpectExec("INSERT INTO kv").WillReturnError(errors.New("disk I/O error"))

		assert.ErrorIs(t, kv.Put(ctx, NamespaceGuest, "k", []byte("v")), ErrExecutingQuery)
	})
}

func TestNewClientStorages_UnknownDriver(t *testing.T) {
	_, err := NewClientStorages(context.Background(), config.Local{Driver: "bolt", Path: "x"}, logger.Nop())
	assert.Error(t, err)
}

func TestNewClientStorages_Pebble(t *testing.T) {
	s, err := NewClientStorages(context.Background(), config.Local{Driver: config.LocalDriverPebble, Path: t.TempDir()}, logger.Nop())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.KV.Put(context.Background(), "ns", "k", []byte("v")))
}
