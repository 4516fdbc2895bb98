// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/milleriumage/oi-friendly-voice/internal/adapter"
	"github.com/milleriumage/oi-friendly-voice/internal/app"
	"github.com/milleriumage/oi-friendly-voice/internal/collection"
	"github.com/milleriumage/oi-friendly-voice/internal/logger"
	"github.com/milleriumage/oi-friendly-voice/internal/utils"
	"github.com/milleriumage/oi-friendly-voice/internal/validators"
	"github.com/milleriumage/oi-friendly-voice/models"
)

// storageSuffixBytes is the random part of a storage object name.
const storageSuffixBytes = 3

type mediaService struct {
	backend   adapter.DataBackend
	hub       adapter.Subscriber
	validator validators.Validator

	baseURL      string
	pollInterval time.Duration
	now          func() time.Time
	suffix       func() string

	logger *logger.Logger
}

func NewMediaService(backend adapter.DataBackend, hub adapter.Subscriber, baseURL string, pollInterval time.Duration, log *logger.Logger) MediaService {
	return &mediaService{
		backend:      backend,
		hub:          hub,
		validator:    validators.NewMediaValidator(),
		baseURL:      strings.TrimRight(baseURL, "/"),
		pollInterval: pollInterval,
		now:          time.Now,
		suffix:       func() string { return utils.RandomSuffix(storageSuffixBytes) },
		logger:       log.Component("media"),
	}
}

func (m *mediaService) Upload(ctx context.Context, owner models.Identity, upload models.MediaUpload) (models.MediaItem, error) {
	if !owner.IsAuthenticated() || !owner.Valid() {
		return models.MediaItem{}, fmt.Errorf("%w: only accounts own media", app.ErrAccessDenied)
	}
	if err := m.validator.Validate(ctx, upload); err != nil {
		return models.MediaItem{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	mediaType, ext, _ := validators.ClassifyContentType(upload.ContentType)
	row := models.MediaRow{
		UserID:      owner.ID,
		Type:        mediaType,
		StoragePath: m.storagePath(mediaType, ext),
		Title:       upload.Title,
		Description: upload.Description,
	}
	if mediaType == models.MediaVideo {
		row.PosterPath = upload.PosterPath
		row.DurationSeconds = upload.Duration
	}

	saved, err := m.backend.InsertMedia(ctx, row)
	if err != nil {
		m.logger.Err(err).Str("func", "*mediaService.Upload").Str("storage_path", row.StoragePath).Msg("media insert failed")
		return models.MediaItem{}, mapAdapterError(err)
	}
	return saved.ToItem()
}

// storagePath builds "{images|videos}/{unixmillis}-{random}.{ext}".
func (m *mediaService) storagePath(t models.MediaType, ext string) string {
	return fmt.Sprintf("%ss/%d-%s.%s", t, m.now().UnixMilli(), m.suffix(), ext)
}

func (m *mediaService) PublicURL(storagePath string) string {
	if storagePath == "" || strings.Contains(storagePath, "://") {
		return storagePath
	}
	if m.baseURL == "" {
		return storagePath
	}
	return m.baseURL + "/" + strings.TrimLeft(storagePath, "/")
}

func (m *mediaService) Update(ctx context.Context, id string, update models.MediaUpdate) (models.MediaItem, error) {
	if id == "" {
		return models.MediaItem{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidMediaID)
	}
	if err := m.validator.Validate(ctx, update); err != nil {
		return models.MediaItem{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	saved, err := m.backend.UpdateMedia(ctx, id, update)
	if err != nil {
		return models.MediaItem{}, mapAdapterError(err)
	}
	return saved.ToItem()
}

func (m *mediaService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidMediaID)
	}
	return mapAdapterError(m.backend.DeleteMedia(ctx, id))
}

func (m *mediaService) SetAsMain(ctx context.Context, id string) ([]models.MediaItem, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidMediaID)
	}

	rows, err := m.backend.SetMainMedia(ctx, id)
	if err != nil {
		return nil, mapAdapterError(err)
	}

	items := make([]models.MediaItem, 0, len(rows))
	for _, row := range rows {
		item, err := row.ToItem()
		if err != nil {
			m.logger.Warn().Err(err).Str("id", row.ID).Msg("skipping undecodable media row")
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (m *mediaService) Watch(ctx context.Context, ownerID string, opts WatchOptions[models.MediaItem]) (*collection.Engine[models.MediaItem], error) {
	if ownerID == "" {
		return nil, ErrEmptyScope
	}

	engine := collection.New(adapter.NewMediaSource(m.backend, m.hub, m.logger), collection.Options[models.MediaItem]{
		Name:         "media",
		PollInterval: m.pollInterval,
		Pinned:       func(item models.MediaItem) bool { return item.IsMain },
		OnChange:     opts.OnChange,
		Ticker:       opts.Ticker,
		Logger:       m.logger,
	})
	if err := engine.Start(ctx, ownerID); err != nil {
		return nil, err
	}
	return engine, nil
}
