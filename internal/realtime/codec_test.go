// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package realtime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/milleriumage/oi-friendly-voice/models"
)

func TestTopic(t *testing.T) {
	tests := []struct {
		name    string
		prefix  string
		filter  models.Filter
		want    string
		wantErr bool
	}{
		{"plain", "oifv", models.Filter{Table: "media_items", Column: "user_id", Value: "u1"}, "oifv/media_items/user_id/u1", false},
		{"no prefix", "", models.Filter{Table: "followers", Column: "creator_id", Value: "c1"}, "followers/creator_id/c1", false},
		{"wildcards escaped", "oifv", models.Filter{Table: "t", Column: "c", Value: "a/b+#%"}, "oifv/t/c/a%2Fb%2B%23%25", false},
		{"empty value", "oifv", models.Filter{Table: "t", Column: "c"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Topic(tt.prefix, tt.filter)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFilter)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeDecode(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ev := models.ChangeEvent{
		Table: "media_items",
		Type:  models.ChangeUpdate,
		Row:   json.RawMessage(`{"id":"m1","title":"sunset"}`),
		Seq:   42,
		At:    at,
	}

	payload, err := Encode(ev)
	require.NoError(t, err)

	got, err := Decode(payload)
	require.NoError(t, err)
	assert.Equal(t, ev.Table, got.Table)
	assert.Equal(t, ev.Type, got.Type)
	assert.JSONEq(t, string(ev.Row), string(got.Row))
	assert.Equal(t, ev.Seq, got.Seq)
	assert.True(t, at.Equal(got.At))
}

func TestEncode_RejectsInvalid(t *testing.T) {
	_, err := Encode(models.ChangeEvent{Table: "t", Type: "truncate"})
	assert.ErrorIs(t, err, ErrInvalidEnvelope)

	_, err = Encode(models.ChangeEvent{Type: models.ChangeInsert})
	assert.ErrorIs(t, err, ErrInvalidEnvelope)
}

func TestDecode_RejectsInvalid(t *testing.T) {
	badRow, err := msgpack.Marshal(&models.ChangeEvent{Table: "t", Type: models.ChangeInsert, Row: json.RawMessage("{not json")})
	require.NoError(t, err)

	for name, payload := range map[string][]byte{
		"garbage":  {0xc1, 0x00},
		"bad row":  badRow,
		"no bytes": nil,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(payload)
			assert.ErrorIs(t, err, ErrInvalidEnvelope)
		})
	}
}
