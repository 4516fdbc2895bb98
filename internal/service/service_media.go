// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"

	"github.com/milleriumage/oi-friendly-voice/internal/logger"
	"github.com/milleriumage/oi-friendly-voice/internal/store"
	"github.com/milleriumage/oi-friendly-voice/models"
)

type mediaLibraryService struct {
	media     store.MediaRepository
	publisher ChangePublisher

	logger *logger.Logger
}

func NewMediaLibraryService(media store.MediaRepository, publisher ChangePublisher, logger *logger.Logger) MediaLibraryService {
	return &mediaLibraryService{
		media:     media,
		publisher: publisher,
		logger:    logger.Component("media"),
	}
}

func (m *mediaLibraryService) List(ctx context.Context, ownerID string) ([]models.MediaRow, error) {
	return m.media.ListByOwner(ctx, ownerID)
}

// Create stores row under the caller's account. Guests own no media.
func (m *mediaLibraryService) Create(ctx context.Context, caller models.Identity, row models.MediaRow) (models.MediaRow, error) {
	if !caller.IsAuthenticated() || !caller.Valid() {
		return models.MediaRow{}, ErrAccessToDifferentUserData
	}
	row.UserID = caller.ID
	row.IsMain = false

	saved, err := m.media.Insert(ctx, row)
	if err != nil {
		return models.MediaRow{}, err
	}

	publishChange(ctx, m.publisher, saved.TableName(), models.ChangeInsert, saved, mediaColumns(saved))
	return saved, nil
}

// authorize loads id and checks that caller owns it.
func (m *mediaLibraryService) authorize(ctx context.Context, caller models.Identity, id string) error {
	row, err := m.media.Get(ctx, id)
	if err != nil {
		return err
	}
	if !ownsAccount(caller, row.UserID) {
		logger.FromContext(ctx).Warn().Str("media_id", id).Str("caller", caller.Key()).Msg("media write by non-owner")
		return ErrAccessToDifferentUserData
	}
	return nil
}

func (m *mediaLibraryService) Update(ctx context.Context, caller models.Identity, id string, update models.MediaUpdate) (models.MediaRow, error) {
	if err := m.authorize(ctx, caller, id); err != nil {
		return models.MediaRow{}, err
	}

	saved, err := m.media.Update(ctx, id, caller.ID, update)
	if err != nil {
		return models.MediaRow{}, err
	}

	publishChange(ctx, m.publisher, saved.TableName(), models.ChangeUpdate, saved, mediaColumns(saved))
	return saved, nil
}

func (m *mediaLibraryService) Delete(ctx context.Context, caller models.Identity, id string) error {
	if err := m.authorize(ctx, caller, id); err != nil {
		return err
	}

	deleted, err := m.media.Delete(ctx, id, caller.ID)
	if err != nil {
		return err
	}

	publishChange(ctx, m.publisher, deleted.TableName(), models.ChangeDelete, deleted, mediaColumns(deleted))
	return nil
}

// SetMain publishes one update per changed row, the new main item first.
func (m *mediaLibraryService) SetMain(ctx context.Context, caller models.Identity, id string) ([]models.MediaRow, error) {
	if err := m.authorize(ctx, caller, id); err != nil {
		return nil, err
	}

	changed, err := m.media.SetMain(ctx, id, caller.ID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			m.logger.Err(err).Str("media_id", id).Msg("set main failed")
		}
		return nil, err
	}

	for _, row := range changed {
		publishChange(ctx, m.publisher, row.TableName(), models.ChangeUpdate, row, mediaColumns(row))
	}
	return changed, nil
}
