// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milleriumage/oi-friendly-voice/internal/realtime/realtimetest"
	"github.com/milleriumage/oi-friendly-voice/models"
)

type recorder struct {
	mu       sync.Mutex
	events   []models.ChangeEvent
	statuses []models.SubscriptionStatus
}

func (r *recorder) onEvent(ev models.ChangeEvent) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
}

func (r *recorder) onStatus(st models.SubscriptionStatus) {
	r.mu.Lock()
	r.statuses = append(r.statuses, st)
	r.mu.Unlock()
}

func (r *recorder) snapshot() ([]models.ChangeEvent, []models.SubscriptionStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.ChangeEvent(nil), r.events...), append([]models.SubscriptionStatus(nil), r.statuses...)
}

func newTestHub(b *realtimetest.Broker) *Hub {
	return NewHub(HubOptions{
		Broker:      "tcp://broker:1883",
		ClientID:    "test",
		TopicPrefix: "oifv",
		NewClient:   b.NewClient,
	})
}

func mustPayload(t *testing.T, table string, typ models.ChangeType, row string) []byte {
	t.Helper()
	b, err := Encode(models.ChangeEvent{Table: table, Type: typ, Row: json.RawMessage(row), Seq: 1, At: time.Now()})
	require.NoError(t, err)
	return b
}

var mediaFilter = models.Filter{Table: "media_items", Column: "user_id", Value: "u1"}

func TestHub_SharesOneConnection(t *testing.T) {
	b := realtimetest.NewBroker()
	h := newTestHub(b)

	var r1, r2 recorder
	s1, err := h.Subscribe(context.Background(), mediaFilter, r1.onEvent, nil)
	require.NoError(t, err)
	s2, err := h.Subscribe(context.Background(), models.Filter{Table: "followers", Column: "creator_id", Value: "u1"}, r2.onEvent, nil)
	require.NoError(t, err)

	require.Len(t, b.Clients(), 1)
	assert.Equal(t, 2, h.Refs())
	assert.True(t, h.Connected())

	b.Deliver("oifv/media_items/user_id/u1", mustPayload(t, "media_items", models.ChangeInsert, `{"id":"m1"}`))
	ev1, _ := r1.snapshot()
	ev2, _ := r2.snapshot()
	assert.Len(t, ev1, 1)
	assert.Empty(t, ev2)

	client := b.Clients()[0]
	s1.Close()
	s1.Close()
	assert.Equal(t, 1, h.Refs())
	assert.Equal(t, []string{"oifv/media_items/user_id/u1"}, client.Unsubscribed())
	assert.False(t, client.Disconnected())

	s2.Close()
	assert.Equal(t, 0, h.Refs())
	assert.Eventually(t, client.Disconnected, time.Second, 5*time.Millisecond)
}

func TestHub_SameTopicTwoSubscribers(t *testing.T) {
	b := realtimetest.NewBroker()
	h := newTestHub(b)
	const topic = "oifv/media_items/user_id/u1"

	var r1, r2 recorder
	s1, err := h.Subscribe(context.Background(), mediaFilter, r1.onEvent, r1.onStatus)
	require.NoError(t, err)
	s2, err := h.Subscribe(context.Background(), mediaFilter, r2.onEvent, r2.onStatus)
	require.NoError(t, err)

	b.Deliver(topic, mustPayload(t, "media_items", models.ChangeInsert, `{"id":"m1"}`))
	ev1, _ := r1.snapshot()
	ev2, _ := r2.snapshot()
	assert.Len(t, ev1, 1)
	assert.Len(t, ev2, 1)

	// a reconnect resubscribes the shared topic once for both
	b.DropConnections()
	b.Reconnect()
	b.Deliver(topic, mustPayload(t, "media_items", models.ChangeUpdate, `{"id":"m1"}`))
	ev1, _ = r1.snapshot()
	ev2, _ = r2.snapshot()
	assert.Len(t, ev1, 2)
	assert.Len(t, ev2, 2)

	client := b.Clients()[0]
	s1.Close()
	assert.Equal(t, 1, h.Refs())
	assert.Empty(t, client.Unsubscribed())
	assert.True(t, client.Subscribed(topic))

	b.Deliver(topic, mustPayload(t, "media_items", models.ChangeDelete, `{"id":"m1"}`))
	ev1, _ = r1.snapshot()
	ev2, _ = r2.snapshot()
	assert.Len(t, ev1, 2)
	require.Len(t, ev2, 3)
	assert.Equal(t, models.ChangeDelete, ev2[2].Type)

	s2.Close()
	assert.Equal(t, 0, h.Refs())
	assert.Eventually(t, client.Disconnected, time.Second, 5*time.Millisecond)
}

func TestHub_SameTopicFailedJoinKeepsMember(t *testing.T) {
	b := realtimetest.NewBroker()
	h := newTestHub(b)
	const topic = "oifv/media_items/user_id/u1"

	var r1 recorder
	_, err := h.Subscribe(context.Background(), mediaFilter, r1.onEvent, nil)
	require.NoError(t, err)

	b.RefuseSubscribe(true)
	_, err = h.Subscribe(context.Background(), mediaFilter, func(models.ChangeEvent) {}, nil)
	require.ErrorIs(t, err, realtimetest.ErrRefused)
	b.RefuseSubscribe(false)

	assert.Equal(t, 1, h.Refs())
	assert.Empty(t, b.Clients()[0].Unsubscribed())

	b.Deliver(topic, mustPayload(t, "media_items", models.ChangeInsert, `{"id":"m2"}`))
	ev, _ := r1.snapshot()
	assert.Len(t, ev, 1)
}

func TestHub_ClosedSubscriptionIgnoresLateMessages(t *testing.T) {
	b := realtimetest.NewBroker()
	h := newTestHub(b)

	var keep, gone recorder
	_, err := h.Subscribe(context.Background(), mediaFilter, keep.onEvent, nil)
	require.NoError(t, err)
	s, err := h.Subscribe(context.Background(), models.Filter{Table: "media_likes", Column: "media_id", Value: "m1"}, gone.onEvent, nil)
	require.NoError(t, err)

	s.Close()
	b.Deliver("oifv/media_likes/media_id/m1", mustPayload(t, "media_likes", models.ChangeInsert, `{"id":"l1"}`))

	ev, _ := gone.snapshot()
	assert.Empty(t, ev)
}

func TestHub_MalformedPayloadDropped(t *testing.T) {
	b := realtimetest.NewBroker()
	h := newTestHub(b)

	var r recorder
	_, err := h.Subscribe(context.Background(), mediaFilter, r.onEvent, nil)
	require.NoError(t, err)

	b.Deliver("oifv/media_items/user_id/u1", []byte("not msgpack"))
	ev, _ := r.snapshot()
	assert.Empty(t, ev)
}

func TestHub_ReportsLossAndRecovery(t *testing.T) {
	b := realtimetest.NewBroker()
	h := newTestHub(b)

	var r recorder
	_, err := h.Subscribe(context.Background(), mediaFilter, r.onEvent, r.onStatus)
	require.NoError(t, err)

	b.DropConnections()
	_, statuses := r.snapshot()
	assert.Equal(t, []models.SubscriptionStatus{models.SubscriptionLost}, statuses)
	assert.False(t, h.Connected())

	b.Reconnect()
	_, statuses = r.snapshot()
	assert.Equal(t, []models.SubscriptionStatus{models.SubscriptionLost, models.SubscriptionHealthy}, statuses)
	assert.True(t, b.Clients()[0].Subscribed("oifv/media_items/user_id/u1"))

	b.Deliver("oifv/media_items/user_id/u1", mustPayload(t, "media_items", models.ChangeDelete, `{"id":"m1"}`))
	ev, _ := r.snapshot()
	require.Len(t, ev, 1)
	assert.Equal(t, models.ChangeDelete, ev[0].Type)
}

func TestHub_ConnectFailure(t *testing.T) {
	b := realtimetest.NewBroker()
	b.RefuseConnect(true)
	h := newTestHub(b)

	_, err := h.Subscribe(context.Background(), mediaFilter, func(models.ChangeEvent) {}, nil)
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.Equal(t, 0, h.Refs())

	b.RefuseConnect(false)
	_, err = h.Subscribe(context.Background(), mediaFilter, func(models.ChangeEvent) {}, nil)
	assert.NoError(t, err)
}

func TestHub_SubscribeFailureReleasesReference(t *testing.T) {
	b := realtimetest.NewBroker()
	b.RefuseSubscribe(true)
	h := newTestHub(b)

	_, err := h.Subscribe(context.Background(), mediaFilter, func(models.ChangeEvent) {}, nil)
	assert.ErrorIs(t, err, realtimetest.ErrRefused)
	assert.Equal(t, 0, h.Refs())
	assert.Eventually(t, b.Clients()[0].Disconnected, time.Second, 5*time.Millisecond)
}

func TestHub_NoBroker(t *testing.T) {
	h := NewHub(HubOptions{})

	_, err := h.Subscribe(context.Background(), mediaFilter, func(models.ChangeEvent) {}, nil)
	assert.ErrorIs(t, err, ErrNotConnected)
}
