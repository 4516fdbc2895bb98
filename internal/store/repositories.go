// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/milleriumage/oi-friendly-voice/internal/logger"
)

// Repositories groups the Data Backend repositories.
type Repositories struct {
	Profiles  ProfileRepository
	Media     MediaRepository
	Followers FollowerRepository
	Likes     LikeRepository

	db *DB
}

// NewRepositories connects to Postgres, migrates the schema and builds every repository.
func NewRepositories(ctx context.Context, dsn string, log *logger.Logger) (*Repositories, error) {
	log.Info().Msg("creating new repositories...")

	db, err := NewConnectPostgres(ctx, dsn, log)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return NewRepositoriesFromDB(db, log), nil
}

// NewRepositoriesFromDB builds repositories over an existing connection.
func NewRepositoriesFromDB(db *DB, log *logger.Logger) *Repositories {
	return &Repositories{
		Profiles:  NewProfileRepository(db, log),
		Media:     NewMediaRepository(db, log),
		Followers: NewFollowerRepository(db, log),
		Likes:     NewLikeRepository(db, log),
		db:        db,
	}
}

// Close closes the underlying connection.
func (r *Repositories) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}
