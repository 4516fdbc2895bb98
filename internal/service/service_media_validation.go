// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/milleriumage/oi-friendly-voice/internal/validators"
	"github.com/milleriumage/oi-friendly-voice/models"
)

// mediaValidationService checks request payloads before they reach the
// wrapped MediaLibraryService.
type mediaValidationService struct {
	inner     MediaLibraryService
	validator validators.Validator
}

func NewMediaValidationService() MediaLibraryServiceWrapper {
	return &mediaValidationService{
		validator: validators.NewMediaValidator(),
	}
}

func (v *mediaValidationService) Wrap(inner MediaLibraryService) MediaLibraryService {
	v.inner = inner
	return v
}

func (v *mediaValidationService) List(ctx context.Context, ownerID string) ([]models.MediaRow, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidUserID)
	}
	return v.inner.List(ctx, ownerID)
}

func (v *mediaValidationService) Create(ctx context.Context, caller models.Identity, row models.MediaRow) (models.MediaRow, error) {
	// the owner comes from the caller, so user_id is not checked here
	err := v.validator.Validate(ctx, row,
		validators.FieldMediaType, validators.FieldStoragePath, validators.FieldPrice, validators.FieldLinkButton)
	if err != nil {
		return models.MediaRow{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.Create(ctx, caller, row)
}

func (v *mediaValidationService) Update(ctx context.Context, caller models.Identity, id string, update models.MediaUpdate) (models.MediaRow, error) {
	if id == "" {
		return models.MediaRow{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidMediaID)
	}
	if err := v.validator.Validate(ctx, update); err != nil {
		return models.MediaRow{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.Update(ctx, caller, id, update)
}

func (v *mediaValidationService) Delete(ctx context.Context, caller models.Identity, id string) error {
	if id == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidMediaID)
	}
	return v.inner.Delete(ctx, caller, id)
}

func (v *mediaValidationService) SetMain(ctx context.Context, caller models.Identity, id string) ([]models.MediaRow, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidMediaID)
	}
	return v.inner.SetMain(ctx, caller, id)
}
