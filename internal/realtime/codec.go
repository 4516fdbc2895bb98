// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package realtime carries Data Backend row changes over MQTT.
//
// Every change is published once per filter it matches, on the topic
// {prefix}/{table}/{column}/{value}, as a msgpack encoded models.ChangeEvent.
// The server side is [Publisher]; the client side is [Hub], which shares a
// single reference-counted broker connection between all subscriptions.
package realtime

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/milleriumage/oi-friendly-voice/models"
)

var (
	ErrInvalidEnvelope = errors.New("invalid change envelope")
	ErrInvalidFilter   = errors.New("invalid subscription filter")
	ErrNotConnected    = errors.New("realtime broker not connected")
	ErrHubClosed       = errors.New("realtime hub closed")
)

var topicEscaper = strings.NewReplacer("/", "%2F", "+", "%2B", "#", "%23", "%", "%25")

// Topic builds the topic carrying changes of f.
func Topic(prefix string, f models.Filter) (string, error) {
	if f.Table == "" || f.Column == "" || f.Value == "" {
		return "", fmt.Errorf("%w: %+v", ErrInvalidFilter, f)
	}
	parts := []string{
		topicEscaper.Replace(f.Table),
		topicEscaper.Replace(f.Column),
		topicEscaper.Replace(f.Value),
	}
	if prefix != "" {
		parts = append([]string{prefix}, parts...)
	}
	return strings.Join(parts, "/"), nil
}

// Encode serializes ev for the wire.
func Encode(ev models.ChangeEvent) ([]byte, error) {
	if ev.Table == "" || !ev.Type.Valid() {
		return nil, fmt.Errorf("%w: table=%q type=%q", ErrInvalidEnvelope, ev.Table, ev.Type)
	}
	b, err := msgpack.Marshal(&ev)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal change event: %w", err)
	}
	return b, nil
}

// Decode parses a wire payload.
func Decode(payload []byte) (models.ChangeEvent, error) {
	var ev models.ChangeEvent
	if err := msgpack.Unmarshal(payload, &ev); err != nil {
		return models.ChangeEvent{}, fmt.Errorf("%w: %w", ErrInvalidEnvelope, err)
	}
	if ev.Table == "" || !ev.Type.Valid() || len(ev.Row) == 0 || !json.Valid(ev.Row) {
		return models.ChangeEvent{}, fmt.Errorf("%w: table=%q type=%q", ErrInvalidEnvelope, ev.Table, ev.Type)
	}
	return ev, nil
}
