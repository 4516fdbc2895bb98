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

// mediaRepository is the PostgreSQL-backed implementation of [MediaRepository].
type mediaRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewMediaRepository(db *DB, logger *logger.Logger) MediaRepository {
	logger.Debug().Msg("creating media repository")
	return &mediaRepository{db: db, logger: logger}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMediaRow(s scanner) (models.MediaRow, error) {
	var (
		row         models.MediaRow
		typ         string
		price, link []byte
	)
	err := s.Scan(
		&row.ID, &row.UserID, &typ, &row.StoragePath, &row.PosterPath, &row.DurationSeconds,
		&row.Title, &row.Description, &row.IsMain, &row.IsLocked, &row.IsBlurred, &row.HoverUnblur,
		&price, &link, &row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		return models.MediaRow{}, err
	}
	row.Type = models.MediaType(typ)

	if row.Price, err = decodeJSONColumn[models.PriceConfig](price); err != nil {
		return models.MediaRow{}, err
	}
	if row.LinkButton, err = decodeJSONColumn[models.LinkButton](link); err != nil {
		return models.MediaRow{}, err
	}
	return row, nil
}

func queryMediaRows(ctx context.Context, db *DB, q runner, query string, args []any) ([]models.MediaRow, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, db.mapError(err))
	}
	defer rows.Close()

	out := make([]models.MediaRow, 0, 16)
	for rows.Next() {
		row, err := scanMediaRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return out, nil
}

// ListByOwner returns the owner's items newest first.
func (r *mediaRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.MediaRow, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListMediaQuery(ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := queryMediaRows(ctx, r.db, r.db, query, args)
	if err != nil {
		log.Err(err).Str("func", "*mediaRepository.ListByOwner").Str("user_id", ownerID).Msg("failed to list media")
		return nil, err
	}
	return rows, nil
}

func (r *mediaRepository) Get(ctx context.Context, id string) (models.MediaRow, error) {
	query, args, err := buildGetMediaQuery(id)
	if err != nil {
		return models.MediaRow{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row, err := scanMediaRow(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return models.MediaRow{}, r.db.mapError(err)
	}
	return row, nil
}

func (r *mediaRepository) Insert(ctx context.Context, row models.MediaRow) (models.MediaRow, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertMediaQuery(row)
	if err != nil {
		return models.MediaRow{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	saved, err := scanMediaRow(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*mediaRepository.Insert").Str("user_id", row.UserID).Msg("failed to insert media")
		return models.MediaRow{}, r.db.mapError(err)
	}
	return saved, nil
}

// Update applies a partial update to an item owned by ownerID.
func (r *mediaRepository) Update(ctx context.Context, id, ownerID string, update models.MediaUpdate) (models.MediaRow, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateMediaQuery(id, ownerID, update)
	if err != nil {
		return models.MediaRow{}, err
	}

	saved, err := scanMediaRow(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Err(err).Str("func", "*mediaRepository.Update").Str("media_id", id).Msg("failed to update media")
		}
		return models.MediaRow{}, r.db.mapError(err)
	}
	return saved, nil
}

func (r *mediaRepository) Delete(ctx context.Context, id, ownerID string) (models.MediaRow, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteMediaQuery(id, ownerID)
	if err != nil {
		return models.MediaRow{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	deleted, err := scanMediaRow(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Err(err).Str("func", "*mediaRepository.Delete").Str("media_id", id).Msg("failed to delete media")
		}
		return models.MediaRow{}, r.db.mapError(err)
	}
	return deleted, nil
}

// SetMain marks id as main inside one transaction. Other main items are
// cleared first to satisfy the one-main index; a missing id rolls both back.
func (r *mediaRepository) SetMain(ctx context.Context, id, ownerID string) ([]models.MediaRow, error) {
	log := logger.FromContext(ctx)

	unsetQuery, unsetArgs, err := buildUnsetMainQuery(ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	setQuery, setArgs, err := buildSetMainQuery(id, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var changed []models.MediaRow
	err = r.db.inTx(ctx, func(tx *sql.Tx) error {
		unset, err := queryMediaRows(ctx, r.db, tx, unsetQuery, unsetArgs)
		if err != nil {
			return err
		}

		main, err := scanMediaRow(tx.QueryRowContext(ctx, setQuery, setArgs...))
		if err != nil {
			return r.db.mapError(err)
		}

		changed = append([]models.MediaRow{main}, unset...)
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*mediaRepository.SetMain").Str("media_id", id).Msg("failed to set main media")
		return nil, err
	}
	return changed, nil
}
