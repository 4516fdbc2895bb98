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

type likeRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewLikeRepository(db *DB, logger *logger.Logger) LikeRepository {
	logger.Debug().Msg("creating like repository")
	return &likeRepository{db: db, logger: logger}
}

func scanLike(s scanner) (models.LikeRecord, error) {
	var l models.LikeRecord
	err := s.Scan(&l.ID, &l.MediaID, &l.LikerID, &l.IsGuest, &l.CreatedAt)
	return l, err
}

func (r *likeRepository) ListByMedia(ctx context.Context, mediaID string) ([]models.LikeRecord, error) {
	query, args, err := buildListLikesQuery(mediaID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*likeRepository.ListByMedia").Str("media_id", mediaID).Msg("failed to list likes")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.mapError(err))
	}
	defer rows.Close()

	out := make([]models.LikeRecord, 0, 32)
	for rows.Next() {
		l, err := scanLike(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return out, nil
}

func (r *likeRepository) Insert(ctx context.Context, like models.LikeRecord) (models.LikeRecord, error) {
	query, args, err := buildInsertLikeQuery(like)
	if err != nil {
		return models.LikeRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	saved, err := scanLike(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		mapped := r.db.mapError(err)
		if !errors.Is(mapped, ErrAlreadyExists) {
			logger.FromContext(ctx).Err(err).Str("func", "*likeRepository.Insert").Str("media_id", like.MediaID).Msg("failed to insert like")
		}
		return models.LikeRecord{}, mapped
	}
	return saved, nil
}

func (r *likeRepository) Delete(ctx context.Context, mediaID, likerID string) (models.LikeRecord, error) {
	query, args, err := buildDeleteLikeQuery(mediaID, likerID)
	if err != nil {
		return models.LikeRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	deleted, err := scanLike(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logger.FromContext(ctx).Err(err).Str("func", "*likeRepository.Delete").Str("media_id", mediaID).Msg("failed to delete like")
		}
		return models.LikeRecord{}, r.db.mapError(err)
	}
	return deleted, nil
}

func (r *likeRepository) Count(ctx context.Context, mediaID string) (int, error) {
	return count(ctx, r.db, tableMediaLikes, "media_id", mediaID)
}
