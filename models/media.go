// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// MediaType is the wire discriminator of a media row.
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// MediaContent is the closed set of media payload variants.
// Only [ImageContent] and [VideoContent] implement it.
type MediaContent interface {
	Type() MediaType
	Path() string
	isMediaContent()
}

// ImageContent is a still image stored at StoragePath.
type ImageContent struct {
	StoragePath string
}

func (ImageContent) Type() MediaType { return MediaImage }
func (c ImageContent) Path() string { return c.StoragePath }
func (ImageContent) isMediaContent() {}

// VideoContent is a video with an optional poster frame.
type VideoContent struct {
	StoragePath     string
	PosterPath      string
	DurationSeconds int
}

func (VideoContent) Type() MediaType { return MediaVideo }
func (c VideoContent) Path() string { return c.StoragePath }
func (VideoContent) isMediaContent() {}

// LinkButton is an optional call-to-action rendered over a media item.
type LinkButton struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// PriceConfig describes the unlock price of a locked media item.
type PriceConfig struct {
	Credits  int    `json:"credits"`
	Currency string `json:"currency,omitempty"`
}

// MediaItem is a creator's media entry as observed by the client.
type MediaItem struct {
	ID          string
	OwnerID     string
	Content     MediaContent
	Title       string
	Description string
	IsMain      bool
	IsLocked    bool
	IsBlurred   bool
	HoverUnblur bool
	Price       *PriceConfig
	LinkButton  *LinkButton
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ItemID implements the collection item contract.
func (m MediaItem) ItemID() string { return m.ID }

// MediaRow is the flat storage and wire representation of a media item.
type MediaRow struct {
	ID              string       `json:"id"`
	UserID          string       `json:"user_id"`
	Type            MediaType    `json:"type"`
	StoragePath     string       `json:"storage_path"`
	PosterPath      string       `json:"poster_path,omitempty"`
	DurationSeconds int          `json:"duration_seconds,omitempty"`
	Title           string       `json:"title,omitempty"`
	Description     string       `json:"description,omitempty"`
	IsMain          bool         `json:"is_main"`
	IsLocked        bool         `json:"is_locked"`
	IsBlurred       bool         `json:"is_blurred"`
	HoverUnblur     bool         `json:"hover_unblur"`
	Price           *PriceConfig `json:"price,omitempty"`
	LinkButton      *LinkButton  `json:"link_button,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the MediaRow model.
func (r MediaRow) TableName() string {
	return "media_items"
}

// ErrUnknownMediaType is returned when a row carries a type outside the closed set.
var ErrUnknownMediaType = errors.New("unknown media type")

// ToItem decodes the row into the closed variant form.
func (r MediaRow) ToItem() (MediaItem, error) {
	var content MediaContent
	switch r.Type {
	case MediaImage:
		content = ImageContent{StoragePath: r.StoragePath}
	case MediaVideo:
		content = VideoContent{
			StoragePath:     r.StoragePath,
			PosterPath:      r.PosterPath,
			DurationSeconds: r.DurationSeconds,
		}
	default:
		return MediaItem{}, fmt.Errorf("%w: %q", ErrUnknownMediaType, r.Type)
	}

	return MediaItem{
		ID:          r.ID,
		OwnerID:     r.UserID,
		Content:     content,
		Title:       r.Title,
		Description: r.Description,
		IsMain:      r.IsMain,
		IsLocked:    r.IsLocked,
		IsBlurred:   r.IsBlurred,
		HoverUnblur: r.HoverUnblur,
		Price:       r.Price,
		LinkButton:  r.LinkButton,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}, nil
}

// MediaRowFromItem flattens a media item back into its row form.
func MediaRowFromItem(m MediaItem) MediaRow {
	row := MediaRow{
		ID:          m.ID,
		UserID:      m.OwnerID,
		Title:       m.Title,
		Description: m.Description,
		IsMain:      m.IsMain,
		IsLocked:    m.IsLocked,
		IsBlurred:   m.IsBlurred,
		HoverUnblur: m.HoverUnblur,
		Price:       m.Price,
		LinkButton:  m.LinkButton,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	switch c := m.Content.(type) {
	case ImageContent:
		row.Type = MediaImage
		row.StoragePath = c.StoragePath
	case VideoContent:
		row.Type = MediaVideo
		row.StoragePath = c.StoragePath
		row.PosterPath = c.PosterPath
		row.DurationSeconds = c.DurationSeconds
	}
	return row
}

// MediaUpdate is a partial update of a media row. Nil fields are left untouched.
type MediaUpdate struct {
	Title       *string      `json:"title,omitempty"`
	Description *string      `json:"description,omitempty"`
	IsLocked    *bool        `json:"is_locked,omitempty"`
	IsBlurred   *bool        `json:"is_blurred,omitempty"`
	HoverUnblur *bool        `json:"hover_unblur,omitempty"`
	Price       *PriceConfig `json:"price,omitempty"`
	LinkButton  *LinkButton  `json:"link_button,omitempty"`
}

// MediaUpload describes a file the caller wants to add to their library.
// The bytes themselves travel through the storage service, not through here.
type MediaUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Title       string
	Description string
	PosterPath  string
	Duration    int
}

// MarshalJSON encodes the item in its flat row form.
func (m MediaItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(MediaRowFromItem(m))
}

// UnmarshalJSON decodes a row and validates the variant tag.
func (m *MediaItem) UnmarshalJSON(data []byte) error {
	var row MediaRow
	if err := json.Unmarshal(data, &row); err != nil {
		return err
	}
	item, err := row.ToItem()
	if err != nil {
		return err
	}
	*m = item
	return nil
}
