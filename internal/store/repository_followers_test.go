// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milleriumage/oi-friendly-voice/internal/logger"
	"github.com/milleriumage/oi-friendly-voice/models"
)

func TestFollowerRepository_ListFollowers(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewFollowerRepository(db, logger.Nop())

	rows := sqlmock.NewRows([]string{"id", "creator_id", "follower_id", "is_guest", "created_at", "display_name", "avatar_url"}).
		AddRow("e2", "creator", "guest-1", true, testNow, "", "").
		AddRow("e1", "creator", "acc-1", false, testNow, "Maria", "https://a/maria.png")

	mock.ExpectQuery("SELECT (.+) FROM followers f LEFT JOIN profiles p").
		WithArgs("creator").
		WillReturnRows(rows)

	got, err := repo.ListFollowers(context.Background(), "creator")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, models.DefaultGuestDisplayName, got[0].DisplayName)
	assert.True(t, got[0].IsGuest)
	assert.Equal(t, "Maria", got[1].DisplayName)
	assert.Equal(t, "https://a/maria.png", got[1].AvatarURL)
}

func TestFollowerRepository_Exists(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewFollowerRepository(db, logger.Nop())

	mock.ExpectQuery("SELECT EXISTS \\( SELECT 1 FROM followers").
		WithArgs("creator", "fan").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.Exists(context.Background(), "creator", "fan")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFollowerRepository_Insert(t *testing.T) {
	edge := models.FollowEdge{ID: "e1", CreatorID: "creator", FollowerID: "fan", CreatedAt: testNow}

	t.Run("created", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewFollowerRepository(db, logger.Nop())

		mock.ExpectQuery("INSERT INTO followers").
			WithArgs("e1", "creator", "fan", false, testNow).
			WillReturnRows(sqlmock.NewRows(edgeColumns).AddRow("e1", "creator", "fan", false, testNow))

		saved, err := repo.Insert(context.Background(), edge)
		require.NoError(t, err)
		assert.Equal(t, edge, saved)
	})

	t.Run("duplicate pair", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewFollowerRepository(db, logger.Nop())

		mock.ExpectQuery("INSERT INTO followers").
			WillReturnError(pgError(pgerrcode.UniqueViolation))

		_, err := repo.Insert(context.Background(), edge)
		assert.ErrorIs(t, err, ErrAlreadyExists)
	})
}

func TestFollowerRepository_Delete_Missing(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewFollowerRepository(db, logger.Nop())

	mock.ExpectQuery("DELETE FROM followers").
		WithArgs("creator", "fan").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Delete(context.Background(), "creator", "fan")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFollowerRepository_Counts(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewFollowerRepository(db, logger.Nop())

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM followers WHERE creator_id = \\$1").
		WithArgs("creator").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM followers WHERE follower_id = \\$1").
		WithArgs("creator").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	followers, err := repo.CountFollowers(context.Background(), "creator")
	require.NoError(t, err)
	following, err := repo.CountFollowing(context.Background(), "creator")
	require.NoError(t, err)

	assert.Equal(t, 12, followers)
	assert.Equal(t, 3, following)
}

func TestFollowerRepository_UpsertGuestProfile(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewFollowerRepository(db, logger.Nop())

	mock.ExpectQuery("INSERT INTO guest_profiles").
		WithArgs("s1", "Ana", "").
		WillReturnRows(sqlmock.NewRows([]string{"session_id", "display_name", "avatar_url", "updated_at"}).
			AddRow("s1", "Ana", "", testNow))

	saved, err := repo.UpsertGuestProfile(context.Background(), models.GuestDisplayProfile{SessionID: "s1", DisplayName: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, testNow, saved.UpdatedAt)
}

func TestLikeRepository(t *testing.T) {
	t.Run("insert duplicate", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewLikeRepository(db, logger.Nop())

		mock.ExpectQuery("INSERT INTO media_likes").
			WillReturnError(pgError(pgerrcode.UniqueViolation))

		_, err := repo.Insert(context.Background(), models.LikeRecord{ID: "l1", MediaID: "m1", LikerID: "fan"})
		assert.ErrorIs(t, err, ErrAlreadyExists)
	})

	t.Run("insert into deleted media", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewLikeRepository(db, logger.Nop())

		mock.ExpectQuery("INSERT INTO media_likes").
			WillReturnError(pgError(pgerrcode.ForeignKeyViolation))

		_, err := repo.Insert(context.Background(), models.LikeRecord{ID: "l1", MediaID: "gone", LikerID: "fan"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("list and count", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewLikeRepository(db, logger.Nop())

		mock.ExpectQuery("SELECT (.+) FROM media_likes WHERE media_id = \\$1").
			WithArgs("m1").
			WillReturnRows(sqlmock.NewRows(likeColumns).
				AddRow("l2", "m1", "s1", true, testNow).
				AddRow("l1", "m1", "acc", false, testNow))
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM media_likes").
			WithArgs("m1").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		likes, err := repo.ListByMedia(context.Background(), "m1")
		require.NoError(t, err)
		require.Len(t, likes, 2)
		assert.True(t, likes[0].IsGuest)

		n, err := repo.Count(context.Background(), "m1")
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("delete", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewLikeRepository(db, logger.Nop())

		mock.ExpectQuery("DELETE FROM media_likes").
			WithArgs("m1", "fan").
			WillReturnRows(sqlmock.NewRows(likeColumns).AddRow("l1", "m1", "fan", false, testNow))

		deleted, err := repo.Delete(context.Background(), "m1", "fan")
		require.NoError(t, err)
		assert.Equal(t, "l1", deleted.ID)
	})
}
