// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"

	"github.com/milleriumage/oi-friendly-voice/internal/config"
	"github.com/milleriumage/oi-friendly-voice/internal/logger"
	"github.com/milleriumage/oi-friendly-voice/internal/store"
)

// Services groups the Data Backend services used by the HTTP handlers.
type Services struct {
	AuthService    AuthService
	AppInfoService AppInfoService
	Profiles       ProfileService
	Media          MediaLibraryService
	Followers      FollowerGraphService
	Likes          MediaLikeService
}

// NewServices builds every server service over repos. Committed writes are
// handed to publisher.
func NewServices(repos *store.Repositories, publisher ChangePublisher, cfg config.App, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("app info service: %w", err)
	}

	media := NewMediaValidationService().Wrap(NewMediaLibraryService(repos.Media, publisher, logger))

	return &Services{
		AuthService:    NewAuthService(cfg, logger),
		AppInfoService: appInfo,
		Profiles:       NewProfileService(repos.Profiles, logger),
		Media:          media,
		Followers:      NewFollowerGraphService(repos.Followers, publisher, logger),
		Likes:          NewMediaLikeService(repos.Likes, publisher, logger),
	}, nil
}
