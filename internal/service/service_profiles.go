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

type profileService struct {
	profiles  store.ProfileRepository
	validator validators.Validator

	logger *logger.Logger
}

func NewProfileService(profiles store.ProfileRepository, logger *logger.Logger) ProfileService {
	return &profileService{
		profiles:  profiles,
		validator: validators.NewSocialValidator(),
		logger:    logger.Component("profiles"),
	}
}

func ownsAccount(caller models.Identity, userID string) bool {
	return caller.IsAuthenticated() && caller.Valid() && caller.ID == userID
}

// GetCredits creates the profile on first read, so new accounts start from
// the schema default balance.
func (p *profileService) GetCredits(ctx context.Context, caller models.Identity, userID string) (models.Balance, error) {
	if !ownsAccount(caller, userID) {
		return models.Balance{}, ErrAccessToDifferentUserData
	}

	if err := p.profiles.EnsureProfile(ctx, userID); err != nil {
		return models.Balance{}, err
	}
	return p.profiles.GetCredits(ctx, userID)
}

func (p *profileService) CompareAndSwapCredits(ctx context.Context, caller models.Identity, userID string, update models.CreditsUpdate) (models.Balance, error) {
	if !ownsAccount(caller, userID) {
		return models.Balance{}, ErrAccessToDifferentUserData
	}
	if err := p.validator.Validate(ctx, update); err != nil {
		return models.Balance{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	balance, err := p.profiles.CompareAndSwapCredits(ctx, userID, update)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("user_id", userID).Int64("expected_version", update.ExpectedVersion).Msg("credits swap rejected")
		return models.Balance{}, err
	}

	logger.FromContext(ctx).Info().Str("user_id", userID).Int("credits", balance.Credits).Int64("version", balance.Version).Msg("credits updated")
	return balance, nil
}
