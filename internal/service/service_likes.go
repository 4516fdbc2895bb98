// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/milleriumage/oi-friendly-voice/internal/logger"
	"github.com/milleriumage/oi-friendly-voice/internal/store"
	"github.com/milleriumage/oi-friendly-voice/internal/validators"
	"github.com/milleriumage/oi-friendly-voice/models"
)

type mediaLikeService struct {
	likes     store.LikeRepository
	validator validators.Validator
	publisher ChangePublisher

	logger *logger.Logger
}

func NewMediaLikeService(likes store.LikeRepository, publisher ChangePublisher, logger *logger.Logger) MediaLikeService {
	return &mediaLikeService{
		likes:     likes,
		validator: validators.NewSocialValidator(),
		publisher: publisher,
		logger:    logger.Component("likes"),
	}
}

func (l *mediaLikeService) List(ctx context.Context, mediaID string) ([]models.LikeRecord, error) {
	return l.likes.ListByMedia(ctx, mediaID)
}

func (l *mediaLikeService) Like(ctx context.Context, caller models.Identity, mediaID string) (models.LikeRecord, error) {
	if !caller.Valid() {
		return models.LikeRecord{}, ErrInvalidIdentity
	}
	like := models.LikeRecord{MediaID: mediaID, LikerID: caller.ID, IsGuest: caller.IsGuest()}
	if err := l.validator.Validate(ctx, like); err != nil {
		return models.LikeRecord{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	saved, err := l.likes.Insert(ctx, like)
	if err != nil {
		return models.LikeRecord{}, err
	}

	publishChange(ctx, l.publisher, saved.TableName(), models.ChangeInsert, saved, likeColumns(saved))
	return saved, nil
}

func (l *mediaLikeService) Unlike(ctx context.Context, caller models.Identity, mediaID string) error {
	if !caller.Valid() {
		return ErrInvalidIdentity
	}
	if mediaID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidMediaID)
	}

	deleted, err := l.likes.Delete(ctx, mediaID, caller.ID)
	if err != nil {
		return err
	}

	publishChange(ctx, l.publisher, deleted.TableName(), models.ChangeDelete, deleted, likeColumns(deleted))
	return nil
}

func (l *mediaLikeService) Count(ctx context.Context, mediaID string) (int, error) {
	return l.likes.Count(ctx, mediaID)
}
