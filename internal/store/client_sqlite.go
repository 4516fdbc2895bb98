// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/milleriumage/oi-friendly-voice/internal/logger"
	"github.com/milleriumage/oi-friendly-voice/migrations"
)

const tableKV = "kv"

// sqliteKV keeps records in the "kv" table of a local SQLite file.
type sqliteKV struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewSQLiteKV opens (creating if needed) the SQLite file at path and applies
// the local schema.
func NewSQLiteKV(ctx context.Context, path string, log *logger.Logger) (KV, error) {
	if err := createLocalDBFileIfNotExists(path); err != nil {
		log.Err(err).Str("func", "NewSQLiteKV").Msg("error creating database file")
		return nil, err
	}

	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		log.Err(err).Str("func", "NewSQLiteKV").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}
	// sqlite serializes writers anyway
	conn.SetMaxOpenConns(1)

	if err = conn.PingContext(ctx); err != nil {
		conn.Close()
		log.Err(err).Str("func", "NewSQLiteKV").Msg("error connecting database (ping)")
		return nil, err
	}

	if err = migrations.MigrateSQLite(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	log.Debug().Str("func", "NewSQLiteKV").Str("path", path).Msg("local store ready")

	return newSQLiteKV(conn, log), nil
}

func newSQLiteKV(conn *sql.DB, log *logger.Logger) *sqliteKV {
	return &sqliteKV{db: conn, logger: log}
}

func (s *sqliteKV) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	query, args, err := sq.Select("value").
		From(tableKV).
		Where(sq.Eq{"namespace": namespace, "key": key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var value []byte
	if err = s.db.QueryRowContext(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.FromContext(ctx).Err(err).Str("func", "*sqliteKV.Get").Str("namespace", namespace).Msg("failed to read local record")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return value, nil
}

func (s *sqliteKV) Put(ctx context.Context, namespace, key string, value []byte) error {
	query, args, err := sq.Insert(tableKV).
		Columns("namespace", "key", "value", "updated_at").
		Values(namespace, key, value, sq.Expr("CURRENT_TIMESTAMP")).
		Suffix("ON CONFLICT (namespace, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*sqliteKV.Put").Str("namespace", namespace).Msg("failed to write local record")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

func (s *sqliteKV) Delete(ctx context.Context, namespace, key string) error {
	query, args, err := sq.Delete(tableKV).
		Where(sq.Eq{"namespace": namespace, "key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

func (s *sqliteKV) Close() error {
	return s.db.Close()
}

func createLocalDBFileIfNotExists(dbFile string) error {
	if dir := filepath.Dir(dbFile); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("error creating DB dir: %w", err)
		}
	}

	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}
	return nil
}
