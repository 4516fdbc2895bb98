// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/milleriumage/oi-friendly-voice/internal/logger"
	"github.com/milleriumage/oi-friendly-voice/models"
)

// followerRepository is the PostgreSQL-backed implementation of
// [FollowerRepository] over "followers" and "guest_profiles".
type followerRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewFollowerRepository(db *DB, logger *logger.Logger) FollowerRepository {
	logger.Debug().Msg("creating follower repository")
	return &followerRepository{db: db, logger: logger}
}

func scanEdge(s scanner) (models.FollowEdge, error) {
	var e models.FollowEdge
	err := s.Scan(&e.ID, &e.CreatorID, &e.FollowerID, &e.IsGuest, &e.CreatedAt)
	return e, err
}

// ListFollowers returns the creator's followers with their display profiles.
// Guests without a profile row get [models.DefaultGuestDisplayName].
func (r *followerRepository) ListFollowers(ctx context.Context, creatorID string) ([]models.Follower, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListFollowersQuery(creatorID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*followerRepository.ListFollowers").Str("creator_id", creatorID).Msg("failed to list followers")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.mapError(err))
	}
	defer rows.Close()

	out := make([]models.Follower, 0, 32)
	for rows.Next() {
		var f models.Follower
		if err := rows.Scan(&f.ID, &f.CreatorID, &f.FollowerID, &f.IsGuest, &f.CreatedAt, &f.DisplayName, &f.AvatarURL); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		if f.DisplayName == "" && f.IsGuest {
			f.DisplayName = models.DefaultGuestDisplayName
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return out, nil
}

// ListFollowing returns the edges where followerID is the follower.
func (r *followerRepository) ListFollowing(ctx context.Context, followerID string) ([]models.FollowEdge, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListFollowingQuery(followerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*followerRepository.ListFollowing").Str("follower_id", followerID).Msg("failed to list following")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.mapError(err))
	}
	defer rows.Close()

	out := make([]models.FollowEdge, 0, 32)
	for rows.Next() {
		e, err := scanEdge(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return out, nil
}

func (r *followerRepository) Exists(ctx context.Context, creatorID, followerID string) (bool, error) {
	query, args, err := buildEdgeExistsQuery(creatorID, followerID)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var exists bool
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, r.db.mapError(err)
	}
	return exists, nil
}

// Insert creates an edge. A second edge for the same pair is [ErrAlreadyExists].
func (r *followerRepository) Insert(ctx context.Context, edge models.FollowEdge) (models.FollowEdge, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertEdgeQuery(edge)
	if err != nil {
		return models.FollowEdge{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	saved, err := scanEdge(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		mapped := r.db.mapError(err)
		if !errors.Is(mapped, ErrAlreadyExists) {
			log.Err(err).Str("func", "*followerRepository.Insert").Str("creator_id", edge.CreatorID).Msg("failed to insert edge")
		}
		return models.FollowEdge{}, mapped
	}
	return saved, nil
}

// Delete removes the edge of the pair. A missing edge is [ErrNotFound].
func (r *followerRepository) Delete(ctx context.Context, creatorID, followerID string) (models.FollowEdge, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteEdgeQuery(creatorID, followerID)
	if err != nil {
		return models.FollowEdge{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	deleted, err := scanEdge(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Err(err).Str("func", "*followerRepository.Delete").Str("creator_id", creatorID).Msg("failed to delete edge")
		}
		return models.FollowEdge{}, r.db.mapError(err)
	}
	return deleted, nil
}

func (r *followerRepository) CountFollowers(ctx context.Context, creatorID string) (int, error) {
	return count(ctx, r.db, tableFollowers, "creator_id", creatorID)
}

func (r *followerRepository) CountFollowing(ctx context.Context, followerID string) (int, error) {
	return count(ctx, r.db, tableFollowers, "follower_id", followerID)
}

// UpsertGuestProfile stores the denormalized display profile of a guest.
func (r *followerRepository) UpsertGuestProfile(ctx context.Context, p models.GuestDisplayProfile) (models.GuestDisplayProfile, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpsertGuestProfileQuery(p)
	if err != nil {
		return models.GuestDisplayProfile{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var saved models.GuestDisplayProfile
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&saved.SessionID, &saved.DisplayName, &saved.AvatarURL, &saved.UpdatedAt)
	if err != nil {
		log.Err(err).Str("func", "*followerRepository.UpsertGuestProfile").Str("session_id", p.SessionID).Msg("failed to upsert guest profile")
		return models.GuestDisplayProfile{}, r.db.mapError(err)
	}
	return saved, nil
}

func count(ctx context.Context, db *DB, table, column, value string) (int, error) {
	query, args, err := buildCountQuery(table, column, value)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var n int
	if err = db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "count").Str("table", table).Msg("failed to count rows")
		return 0, db.mapError(err)
	}
	return n, nil
}
