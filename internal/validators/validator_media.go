// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"net/url"
	"strings"

	"github.com/milleriumage/oi-friendly-voice/models"
)

// MaxUploadSize is the largest media file accepted, 50 MiB.
const MaxUploadSize int64 = 50 << 20

const (
	FieldUserID      = "user_id"
	FieldMediaID     = "id"
	FieldMediaType   = "type"
	FieldStoragePath = "storage_path"
	FieldPrice       = "price"
	FieldLinkButton  = "link_button"
	FieldSize        = "size"
	FieldContentType = "content_type"
	FieldAnyUpdate   = "any_update"
)

// allowedContentTypes maps accepted MIME types to their media type and file extension.
var allowedContentTypes = map[string]struct {
	mediaType models.MediaType
	ext       string
}{
	"image/jpeg": {models.MediaImage, "jpg"},
	"image/png":  {models.MediaImage, "png"},
	"image/gif":  {models.MediaImage, "gif"},
	"image/webp": {models.MediaImage, "webp"},
	"video/mp4":  {models.MediaVideo, "mp4"},
	"video/webm": {models.MediaVideo, "webm"},
	"video/ogg":  {models.MediaVideo, "ogv"},
}

// ClassifyContentType returns the media type and extension for an accepted
// MIME type. Parameters such as "; charset=" are ignored.
func ClassifyContentType(contentType string) (models.MediaType, string, error) {
	base := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	entry, ok := allowedContentTypes[base]
	if !ok {
		return "", "", ErrUnsupportedMediaType
	}
	return entry.mediaType, entry.ext, nil
}

// MediaValidator validates media rows, partial updates and uploads.
type MediaValidator struct{}

func NewMediaValidator() Validator {
	return &MediaValidator{}
}

func (v *MediaValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.MediaRow:
		return v.validateRow(value, fields...)
	case *models.MediaRow:
		return v.validateRow(*value, fields...)

	case models.MediaUpdate:
		return v.validateUpdate(value, fields...)
	case *models.MediaUpdate:
		return v.validateUpdate(*value, fields...)

	case models.MediaUpload:
		return v.validateUpload(value, fields...)
	case *models.MediaUpload:
		return v.validateUpload(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *MediaValidator) validateRow(row models.MediaRow, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldMediaType, FieldStoragePath, FieldPrice, FieldLinkButton}
	}

	for _, f := range fields {
		switch f {
		case FieldMediaID:
			if row.ID == "" {
				return ErrInvalidMediaID
			}
		case FieldUserID:
			if row.UserID == "" {
				return ErrInvalidUserID
			}
		case FieldMediaType:
			if row.Type != models.MediaImage && row.Type != models.MediaVideo {
				return ErrInvalidMediaType
			}
		case FieldStoragePath:
			if row.StoragePath == "" {
				return ErrEmptyStoragePath
			}
		case FieldPrice:
			if err := validatePrice(row.Price); err != nil {
				return err
			}
		case FieldLinkButton:
			if err := validateLinkButton(row.LinkButton); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *MediaValidator) validateUpdate(update models.MediaUpdate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldAnyUpdate, FieldPrice, FieldLinkButton}
	}

	for _, f := range fields {
		switch f {
		case FieldAnyUpdate:
			if update.Title == nil && update.Description == nil && update.IsLocked == nil &&
				update.IsBlurred == nil && update.HoverUnblur == nil && update.Price == nil && update.LinkButton == nil {
				return ErrNoFieldsToUpdate
			}
		case FieldPrice:
			if err := validatePrice(update.Price); err != nil {
				return err
			}
		case FieldLinkButton:
			if err := validateLinkButton(update.LinkButton); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *MediaValidator) validateUpload(upload models.MediaUpload, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldSize, FieldContentType}
	}

	for _, f := range fields {
		switch f {
		case FieldSize:
			if upload.Size <= 0 {
				return ErrEmptyFile
			}
			if upload.Size > MaxUploadSize {
				return ErrFileTooLarge
			}
		case FieldContentType:
			if _, _, err := ClassifyContentType(upload.ContentType); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validatePrice(p *models.PriceConfig) error {
	if p != nil && p.Credits < 0 {
		return ErrInvalidPrice
	}
	return nil
}

func validateLinkButton(b *models.LinkButton) error {
	if b == nil {
		return nil
	}
	if strings.TrimSpace(b.Label) == "" {
		return ErrInvalidLinkButton
	}
	u, err := url.Parse(b.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidLinkButton
	}
	return nil
}
