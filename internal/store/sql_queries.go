// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"encoding/json"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/milleriumage/oi-friendly-voice/models"
)

const (
	tableProfiles      = "profiles"
	tableMediaItems    = "media_items"
	tableFollowers     = "followers"
	tableGuestProfiles = "guest_profiles"
	tableMediaLikes    = "media_likes"
)

var mediaColumns = []string{
	"id", "user_id", "type", "storage_path", "poster_path", "duration_seconds",
	"title", "description", "is_main", "is_locked", "is_blurred", "hover_unblur",
	"price", "link_button", "created_at", "updated_at",
}

var edgeColumns = []string{"id", "creator_id", "follower_id", "is_guest", "created_at"}

var likeColumns = []string{"id", "media_id", "liker_id", "is_guest", "created_at"}

// returning renders a RETURNING clause for cols.
func returning(cols []string) string {
	return "RETURNING " + strings.Join(cols, ", ")
}

// profiles

func buildEnsureProfileQuery(userID string) (string, []any, error) {
	return psql.Insert(tableProfiles).
		Columns("user_id").
		Values(userID).
		Suffix("ON CONFLICT (user_id) DO NOTHING").
		ToSql()
}

func buildGetCreditsQuery(userID string) (string, []any, error) {
	return psql.Select("credits", "version").
		From(tableProfiles).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

// buildCASCreditsQuery updates credits only when the stored version still
// equals expectedVersion, bumping the version on success.
func buildCASCreditsQuery(userID string, update models.CreditsUpdate) (string, []any, error) {
	return psql.Update(tableProfiles).
		Set("credits", update.Credits).
		Set("version", sq.Expr("version + 1")).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"user_id": userID, "version": update.ExpectedVersion}).
		Suffix("RETURNING credits, version").
		ToSql()
}

func buildProfileExistsQuery(userID string) (string, []any, error) {
	return psql.Select("1").
		Prefix("SELECT EXISTS (").
		From(tableProfiles).
		Where(sq.Eq{"user_id": userID}).
		Suffix(")").
		ToSql()
}

// media

func buildListMediaQuery(ownerID string) (string, []any, error) {
	return psql.Select(mediaColumns...).
		From(tableMediaItems).
		Where(sq.Eq{"user_id": ownerID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
}

func buildGetMediaQuery(id string) (string, []any, error) {
	return psql.Select(mediaColumns...).
		From(tableMediaItems).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildInsertMediaQuery(row models.MediaRow) (string, []any, error) {
	price, err := jsonColumn(row.Price)
	if err != nil {
		return "", nil, err
	}
	link, err := jsonColumn(row.LinkButton)
	if err != nil {
		return "", nil, err
	}

	return psql.Insert(tableMediaItems).
		Columns(mediaColumns...).
		Values(
			row.ID, row.UserID, string(row.Type), row.StoragePath, row.PosterPath, row.DurationSeconds,
			row.Title, row.Description, row.IsMain, row.IsLocked, row.IsBlurred, row.HoverUnblur,
			price, link, row.CreatedAt, row.UpdatedAt,
		).
		Suffix(returning(mediaColumns)).
		ToSql()
}

// buildUpdateMediaQuery sets only the non-nil fields of update.
func buildUpdateMediaQuery(id, ownerID string, update models.MediaUpdate) (string, []any, error) {
	b := psql.Update(tableMediaItems).Set("updated_at", sq.Expr("NOW()"))
	fields := 0

	if update.Title != nil {
		b = b.Set("title", *update.Title)
		fields++
	}
	if update.Description != nil {
		b = b.Set("description", *update.Description)
		fields++
	}
	if update.IsLocked != nil {
		b = b.Set("is_locked", *update.IsLocked)
		fields++
	}
	if update.IsBlurred != nil {
		b = b.Set("is_blurred", *update.IsBlurred)
		fields++
	}
	if update.HoverUnblur != nil {
		b = b.Set("hover_unblur", *update.HoverUnblur)
		fields++
	}
	if update.Price != nil {
		price, err := jsonColumn(update.Price)
		if err != nil {
			return "", nil, err
		}
		b = b.Set("price", price)
		fields++
	}
	if update.LinkButton != nil {
		link, err := jsonColumn(update.LinkButton)
		if err != nil {
			return "", nil, err
		}
		b = b.Set("link_button", link)
		fields++
	}
	if fields == 0 {
		return "", nil, fmt.Errorf("%w: no fields to update", ErrBuildingSQLQuery)
	}

	return b.Where(sq.Eq{"id": id, "user_id": ownerID}).
		Suffix(returning(mediaColumns)).
		ToSql()
}

func buildDeleteMediaQuery(id, ownerID string) (string, []any, error) {
	return psql.Delete(tableMediaItems).
		Where(sq.Eq{"id": id, "user_id": ownerID}).
		Suffix(returning(mediaColumns)).
		ToSql()
}

func buildUnsetMainQuery(ownerID, keepID string) (string, []any, error) {
	return psql.Update(tableMediaItems).
		Set("is_main", false).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"user_id": ownerID, "is_main": true}).
		Where(sq.NotEq{"id": keepID}).
		Suffix(returning(mediaColumns)).
		ToSql()
}

func buildSetMainQuery(id, ownerID string) (string, []any, error) {
	return psql.Update(tableMediaItems).
		Set("is_main", true).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id, "user_id": ownerID}).
		Suffix(returning(mediaColumns)).
		ToSql()
}

// followers

// buildListFollowersQuery resolves each follower's display profile from
// profiles for accounts and guest_profiles for guests.
func buildListFollowersQuery(creatorID string) (string, []any, error) {
	return psql.Select(
		"f.id", "f.creator_id", "f.follower_id", "f.is_guest", "f.created_at",
		"COALESCE(NULLIF(p.display_name, ''), NULLIF(g.display_name, ''), '') AS display_name",
		"COALESCE(NULLIF(p.avatar_url, ''), g.avatar_url, '') AS avatar_url",
	).
		From(tableFollowers + " f").
		LeftJoin(tableProfiles + " p ON p.user_id = f.follower_id AND NOT f.is_guest").
		LeftJoin(tableGuestProfiles + " g ON g.session_id = f.follower_id AND f.is_guest").
		Where(sq.Eq{"f.creator_id": creatorID}).
		OrderBy("f.created_at DESC", "f.id DESC").
		ToSql()
}

func buildListFollowingQuery(followerID string) (string, []any, error) {
	return psql.Select(edgeColumns...).
		From(tableFollowers).
		Where(sq.Eq{"follower_id": followerID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
}

func buildEdgeExistsQuery(creatorID, followerID string) (string, []any, error) {
	return psql.Select("1").
		Prefix("SELECT EXISTS (").
		From(tableFollowers).
		Where(sq.Eq{"creator_id": creatorID, "follower_id": followerID}).
		Suffix(")").
		ToSql()
}

func buildInsertEdgeQuery(edge models.FollowEdge) (string, []any, error) {
	return psql.Insert(tableFollowers).
		Columns(edgeColumns...).
		Values(edge.ID, edge.CreatorID, edge.FollowerID, edge.IsGuest, edge.CreatedAt).
		Suffix(returning(edgeColumns)).
		ToSql()
}

func buildDeleteEdgeQuery(creatorID, followerID string) (string, []any, error) {
	return psql.Delete(tableFollowers).
		Where(sq.Eq{"creator_id": creatorID, "follower_id": followerID}).
		Suffix(returning(edgeColumns)).
		ToSql()
}

func buildCountQuery(table, column, value string) (string, []any, error) {
	return psql.Select("COUNT(*)").
		From(table).
		Where(sq.Eq{column: value}).
		ToSql()
}

// guest profiles

func buildUpsertGuestProfileQuery(p models.GuestDisplayProfile) (string, []any, error) {
	return psql.Insert(tableGuestProfiles).
		Columns("session_id", "display_name", "avatar_url", "updated_at").
		Values(p.SessionID, p.DisplayName, p.AvatarURL, sq.Expr("NOW()")).
		Suffix(`ON CONFLICT (session_id) DO UPDATE
			SET display_name = EXCLUDED.display_name,
				avatar_url = EXCLUDED.avatar_url,
				updated_at = EXCLUDED.updated_at
			RETURNING session_id, display_name, avatar_url, updated_at`).
		ToSql()
}

// likes

func buildListLikesQuery(mediaID string) (string, []any, error) {
	return psql.Select(likeColumns...).
		From(tableMediaLikes).
		Where(sq.Eq{"media_id": mediaID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
}

func buildInsertLikeQuery(like models.LikeRecord) (string, []any, error) {
	return psql.Insert(tableMediaLikes).
		Columns(likeColumns...).
		Values(like.ID, like.MediaID, like.LikerID, like.IsGuest, like.CreatedAt).
		Suffix(returning(likeColumns)).
		ToSql()
}

func buildDeleteLikeQuery(mediaID, likerID string) (string, []any, error) {
	return psql.Delete(tableMediaLikes).
		Where(sq.Eq{"media_id": mediaID, "liker_id": likerID}).
		Suffix(returning(likeColumns)).
		ToSql()
}

// jsonColumn encodes an optional JSONB value; nil pointers become SQL NULL.
func jsonColumn[T any](v *T) (any, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingColumn, err)
	}
	return b, nil
}

// decodeJSONColumn is the inverse of [jsonColumn].
func decodeJSONColumn[T any](raw []byte) (*T, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return &v, nil
}
