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

type followerGraphService struct {
	followers store.FollowerRepository
	validator validators.Validator
	publisher ChangePublisher

	logger *logger.Logger
}

func NewFollowerGraphService(followers store.FollowerRepository, publisher ChangePublisher, logger *logger.Logger) FollowerGraphService {
	return &followerGraphService{
		followers: followers,
		validator: validators.NewSocialValidator(),
		publisher: publisher,
		logger:    logger.Component("followers"),
	}
}

func (f *followerGraphService) ListFollowers(ctx context.Context, creatorID string) ([]models.Follower, error) {
	return f.followers.ListFollowers(ctx, creatorID)
}

func (f *followerGraphService) ListFollowing(ctx context.Context, followerID string) ([]models.FollowEdge, error) {
	return f.followers.ListFollowing(ctx, followerID)
}

func (f *followerGraphService) Exists(ctx context.Context, creatorID, followerID string) (bool, error) {
	return f.followers.Exists(ctx, creatorID, followerID)
}

func (f *followerGraphService) Follow(ctx context.Context, caller models.Identity, edge models.FollowEdge) (models.FollowEdge, error) {
	if !caller.Valid() {
		return models.FollowEdge{}, ErrInvalidIdentity
	}
	edge.ID = ""
	edge.FollowerID = caller.ID
	edge.IsGuest = caller.IsGuest()

	if err := f.validator.Validate(ctx, edge); err != nil {
		return models.FollowEdge{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	saved, err := f.followers.Insert(ctx, edge)
	if err != nil {
		return models.FollowEdge{}, err
	}

	publishChange(ctx, f.publisher, saved.TableName(), models.ChangeInsert, saved, followerColumns(saved))
	return saved, nil
}

// Unfollow lets either end of the edge remove it.
func (f *followerGraphService) Unfollow(ctx context.Context, caller models.Identity, creatorID, followerID string) error {
	if !caller.Valid() {
		return ErrInvalidIdentity
	}
	if caller.ID != followerID && !ownsAccount(caller, creatorID) {
		return ErrAccessToDifferentUserData
	}

	deleted, err := f.followers.Delete(ctx, creatorID, followerID)
	if err != nil {
		return err
	}

	publishChange(ctx, f.publisher, deleted.TableName(), models.ChangeDelete, deleted, followerColumns(deleted))
	return nil
}

func (f *followerGraphService) CountFollowers(ctx context.Context, creatorID string) (int, error) {
	return f.followers.CountFollowers(ctx, creatorID)
}

func (f *followerGraphService) CountFollowing(ctx context.Context, followerID string) (int, error) {
	return f.followers.CountFollowing(ctx, followerID)
}

// UpsertGuestProfile accepts only the guest's own session.
func (f *followerGraphService) UpsertGuestProfile(ctx context.Context, caller models.Identity, profile models.GuestDisplayProfile) (models.GuestDisplayProfile, error) {
	if !caller.IsGuest() || !caller.Valid() || caller.ID != profile.SessionID {
		return models.GuestDisplayProfile{}, ErrAccessToDifferentUserData
	}
	if err := f.validator.Validate(ctx, profile); err != nil {
		return models.GuestDisplayProfile{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return f.followers.UpsertGuestProfile(ctx, profile)
}
