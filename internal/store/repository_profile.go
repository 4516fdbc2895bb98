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

// profileRepository is the PostgreSQL-backed implementation of
// [ProfileRepository] over the "profiles" table.
type profileRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewProfileRepository(db *DB, logger *logger.Logger) ProfileRepository {
	logger.Debug().Msg("creating profile repository")
	return &profileRepository{db: db, logger: logger}
}

// EnsureProfile creates an empty profile row for userID unless one exists.
func (r *profileRepository) EnsureProfile(ctx context.Context, userID string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildEnsureProfileQuery(userID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*profileRepository.EnsureProfile").Str("user_id", userID).Msg("failed to ensure profile")
		return r.db.mapError(err)
	}
	return nil
}

// GetCredits returns the credit balance and its version token.
func (r *profileRepository) GetCredits(ctx context.Context, userID string) (models.Balance, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetCreditsQuery(userID)
	if err != nil {
		return models.Balance{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var b models.Balance
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&b.Credits, &b.Version); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Err(err).Str("func", "*profileRepository.GetCredits").Str("user_id", userID).Msg("failed to read credits")
		}
		return models.Balance{}, r.db.mapError(err)
	}
	return b, nil
}

// CompareAndSwapCredits writes update.Credits when the stored version equals
// update.ExpectedVersion. A missed update is told apart from a missing
// profile with a follow-up existence check.
func (r *profileRepository) CompareAndSwapCredits(ctx context.Context, userID string, update models.CreditsUpdate) (models.Balance, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCASCreditsQuery(userID, update)
	if err != nil {
		return models.Balance{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var b models.Balance
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&b.Credits, &b.Version)
	if err == nil {
		log.Debug().Str("user_id", userID).Int("credits", b.Credits).Int64("version", b.Version).Msg("credits updated")
		return b, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		log.Err(err).Str("func", "*profileRepository.CompareAndSwapCredits").Str("user_id", userID).Msg("failed to update credits")
		return models.Balance{}, r.db.mapError(err)
	}

	existsQuery, existsArgs, err := buildProfileExistsQuery(userID)
	if err != nil {
		return models.Balance{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	var exists bool
	if err = r.db.QueryRowContext(ctx, existsQuery, existsArgs...).Scan(&exists); err != nil {
		return models.Balance{}, r.db.mapError(err)
	}
	if !exists {
		return models.Balance{}, ErrNotFound
	}
	return models.Balance{}, ErrVersionConflict
}
