// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milleriumage/oi-friendly-voice/models"
)

func Test_buildCASCreditsQuery(t *testing.T) {
	query, args, err := buildCASCreditsQuery("u1", models.CreditsUpdate{Credits: 36, ExpectedVersion: 7})
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "update profiles")
	require.Contains(t, q, "version = version + 1")
	require.Contains(t, q, "returning credits, version")
	require.Contains(t, query, "$3")

	// set value first, then where keys in sorted order
	require.Equal(t, []any{36, "u1", int64(7)}, args)
}

func Test_buildEnsureProfileQuery(t *testing.T) {
	query, args, err := buildEnsureProfileQuery("u1")
	require.NoError(t, err)

	assert.Contains(t, query, "INSERT INTO profiles")
	assert.Contains(t, query, "ON CONFLICT (user_id) DO NOTHING")
	assert.Equal(t, []any{"u1"}, args)
}

func Test_buildProfileExistsQuery(t *testing.T) {
	query, args, err := buildProfileExistsQuery("u1")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(query, "SELECT EXISTS ("), query)
	assert.True(t, strings.HasSuffix(query, ")"), query)
	assert.Equal(t, []any{"u1"}, args)
}

func Test_buildListMediaQuery_OrdersNewestFirst(t *testing.T) {
	query, args, err := buildListMediaQuery("owner")
	require.NoError(t, err)

	assert.Contains(t, query, "FROM media_items")
	assert.Contains(t, query, "ORDER BY created_at DESC, id DESC")
	for _, col := range mediaColumns {
		assert.Contains(t, query, col)
	}
	assert.Equal(t, []any{"owner"}, args)
}

func Test_buildInsertMediaQuery_EncodesJSONColumns(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	row := models.MediaRow{
		ID:          "m1",
		UserID:      "owner",
		Type:        models.MediaImage,
		StoragePath: "images/1-a.png",
		Price:       &models.PriceConfig{Credits: 5},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	query, args, err := buildInsertMediaQuery(row)
	require.NoError(t, err)

	assert.Contains(t, query, "INSERT INTO media_items")
	assert.Contains(t, query, "RETURNING id, user_id")
	require.Len(t, args, len(mediaColumns))
	assert.Equal(t, "image", args[2])
	assert.JSONEq(t, `{"credits":5}`, string(args[12].([]byte)))
	assert.Nil(t, args[13])
}

func Test_buildUpdateMediaQuery(t *testing.T) {
	t.Run("only set fields", func(t *testing.T) {
		title := "new"
		locked := true
		query, args, err := buildUpdateMediaQuery("m1", "owner", models.MediaUpdate{Title: &title, IsLocked: &locked})
		require.NoError(t, err)

		assert.Contains(t, query, "title = $1")
		assert.Contains(t, query, "is_locked = $2")
		assert.NotContains(t, query, "description =")
		assert.Contains(t, query, "id = $3")
		assert.Contains(t, query, "user_id = $4")
		assert.Equal(t, []any{"new", true, "m1", "owner"}, args)
	})

	t.Run("empty update", func(t *testing.T) {
		_, _, err := buildUpdateMediaQuery("m1", "owner", models.MediaUpdate{})
		assert.ErrorIs(t, err, ErrBuildingSQLQuery)
	})
}

func Test_buildUnsetMainQuery_KeepsTarget(t *testing.T) {
	query, args, err := buildUnsetMainQuery("owner", "m1")
	require.NoError(t, err)

	assert.Contains(t, query, "is_main = $1")
	assert.Contains(t, query, "id <> $4")
	assert.Equal(t, []any{false, true, "owner", "m1"}, args)
}

func Test_buildListFollowersQuery_JoinsProfiles(t *testing.T) {
	query, args, err := buildListFollowersQuery("creator")
	require.NoError(t, err)

	assert.Contains(t, query, "LEFT JOIN profiles p")
	assert.Contains(t, query, "LEFT JOIN guest_profiles g")
	assert.Contains(t, query, "WHERE f.creator_id = $1")
	assert.Equal(t, []any{"creator"}, args)
}

func Test_buildEdgeQueries(t *testing.T) {
	query, args, err := buildDeleteEdgeQuery("creator", "fan")
	require.NoError(t, err)
	assert.Contains(t, query, "DELETE FROM followers WHERE")
	assert.Contains(t, query, "creator_id = $1")
	assert.Contains(t, query, "follower_id = $2")
	assert.Equal(t, []any{"creator", "fan"}, args)

	query, args, err = buildCountQuery(tableFollowers, "follower_id", "fan")
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM followers WHERE follower_id = $1", query)
	assert.Equal(t, []any{"fan"}, args)
}

func Test_buildUpsertGuestProfileQuery(t *testing.T) {
	query, args, err := buildUpsertGuestProfileQuery(models.GuestDisplayProfile{SessionID: "s1", DisplayName: "Ana"})
	require.NoError(t, err)

	assert.Contains(t, query, "ON CONFLICT (session_id) DO UPDATE")
	assert.Contains(t, query, "RETURNING session_id")
	assert.Equal(t, []any{"s1", "Ana", ""}, args)
}

func Test_decodeJSONColumn(t *testing.T) {
	v, err := decodeJSONColumn[models.LinkButton](nil)
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = decodeJSONColumn[models.LinkButton]([]byte(`{"label":"Buy","url":"https://x"}`))
	require.NoError(t, err)
	assert.Equal(t, "Buy", v.Label)

	_, err = decodeJSONColumn[models.LinkButton]([]byte(`{`))
	assert.ErrorIs(t, err, ErrScanningRow)
}
