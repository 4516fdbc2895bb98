// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package realtime

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/milleriumage/oi-friendly-voice/internal/logger"
	"github.com/milleriumage/oi-friendly-voice/internal/metrics"
	"github.com/milleriumage/oi-friendly-voice/models"
)

const (
	subscribeQoS      = byte(1)
	disconnectQuiesce = 250
	defaultTimeout    = 5 * time.Second
)

// ClientFactory builds the underlying MQTT client. Tests swap it.
type ClientFactory func(opts *mqtt.ClientOptions) mqtt.Client

// HubOptions configures a [Hub].
type HubOptions struct {
	Broker         string
	ClientID       string
	TopicPrefix    string
	ConnectTimeout time.Duration
	Logger         *logger.Logger
	NewClient      ClientFactory
}

// Hub multiplexes subscriptions over one broker connection. The connection
// is opened by the first subscription and closed when the last one detaches.
// Subscriptions on the same topic share one broker subscription; the topic
// is unsubscribed when its last member detaches.
type Hub struct {
	opts HubOptions
	log  *logger.Logger

	mu     sync.Mutex
	client mqtt.Client
	lost   bool
	nextID uint64
	subs   map[uint64]*HubSubscription
	topics map[string]*topicMembers
}

// topicMembers is every open subscription on one topic.
type topicMembers struct {
	table   string
	members map[uint64]*HubSubscription
}

// NewHub builds an idle hub.
func NewHub(opts HubOptions) *Hub {
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = defaultTimeout
	}
	if opts.NewClient == nil {
		opts.NewClient = mqtt.NewClient
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	return &Hub{
		opts: opts,
		log:  opts.Logger.Component("realtime.hub"),
		subs:   make(map[uint64]*HubSubscription),
		topics: make(map[string]*topicMembers),
	}
}

// HubSubscription is one filter registration on a [Hub].
type HubSubscription struct {
	hub      *Hub
	id       uint64
	topic    string
	onEvent  func(models.ChangeEvent)
	onStatus func(models.SubscriptionStatus)

	mu     sync.Mutex
	closed bool
}

// Subscribe registers a filter. onEvent receives every decoded change on the
// filter topic; onStatus, when set, receives transport health changes.
func (h *Hub) Subscribe(ctx context.Context, f models.Filter, onEvent func(models.ChangeEvent), onStatus func(models.SubscriptionStatus)) (*HubSubscription, error) {
	topic, err := Topic(h.opts.TopicPrefix, f)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	client, err := h.connectLocked()
	if err != nil {
		h.mu.Unlock()
		return nil, err
	}

	h.nextID++
	sub := &HubSubscription{
		hub:      h,
		id:       h.nextID,
		topic:    topic,
		onEvent:  onEvent,
		onStatus: onStatus,
	}
	h.subs[sub.id] = sub
	tm, ok := h.topics[topic]
	if !ok {
		tm = &topicMembers{table: f.Table, members: make(map[uint64]*HubSubscription)}
		h.topics[topic] = tm
	}
	tm.members[sub.id] = sub
	h.mu.Unlock()

	// every member waits on its own SUBSCRIBE; the route is the same fan-out
	// handler, so a repeat only refreshes the broker subscription
	token := client.Subscribe(topic, subscribeQoS, h.route(topic))
	if err := h.wait(ctx, token); err != nil {
		sub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}

	h.log.Debug().Str("topic", topic).Msg("subscribed")
	return sub, nil
}

// Connected reports whether the broker connection is currently up.
func (h *Hub) Connected() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.client != nil && !h.lost && h.client.IsConnectionOpen()
}

// Refs returns the number of open subscriptions.
func (h *Hub) Refs() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *Hub) connectLocked() (mqtt.Client, error) {
	if h.client != nil {
		return h.client, nil
	}
	if h.opts.Broker == "" {
		return nil, ErrNotConnected
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(h.opts.Broker)
	opts.SetClientID(h.opts.ClientID)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(false)
	opts.SetCleanSession(true)
	opts.SetMaxReconnectInterval(30 * time.Second)
	opts.SetOrderMatters(true)
	opts.OnConnect = h.onConnect
	opts.OnConnectionLost = h.onConnectionLost

	client := h.opts.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(h.opts.ConnectTimeout) {
		client.Disconnect(0)
		return nil, fmt.Errorf("%w: connect timeout to %s", ErrNotConnected, h.opts.Broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotConnected, err)
	}

	h.client = client
	h.lost = false
	metrics.RealtimeConnections.Inc()
	h.log.Info().Str("broker", h.opts.Broker).Msg("realtime connection established")
	return client, nil
}

func (h *Hub) wait(ctx context.Context, token mqtt.Token) error {
	select {
	case <-token.Done():
		return token.Error()
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(h.opts.ConnectTimeout):
		return fmt.Errorf("%w: subscribe timeout", ErrNotConnected)
	}
}

func (h *Hub) snapshotSubs() []*HubSubscription {
	return sortedSubs(h.subs)
}

func (h *Hub) snapshotTopics() []string {
	out := make([]string, 0, len(h.topics))
	for topic := range h.topics {
		out = append(out, topic)
	}
	slices.Sort(out)
	return out
}

func sortedSubs(m map[uint64]*HubSubscription) []*HubSubscription {
	out := make([]*HubSubscription, 0, len(m))
	for _, s := range m {
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b *HubSubscription) int { return cmp.Compare(a.id, b.id) })
	return out
}

// route decodes each message on topic once and hands it to every member in
// subscription order.
func (h *Hub) route(topic string) mqtt.MessageHandler {
	return func(_ mqtt.Client, msg mqtt.Message) {
		h.mu.Lock()
		tm, ok := h.topics[topic]
		var members []*HubSubscription
		table := ""
		if ok {
			members = sortedSubs(tm.members)
			table = tm.table
		}
		h.mu.Unlock()
		if len(members) == 0 {
			return
		}

		ev, err := Decode(msg.Payload())
		if err != nil {
			metrics.RealtimeMessages.WithLabelValues("in", table, "invalid").Inc()
			h.log.Warn().Err(err).Str("topic", msg.Topic()).Msg("dropping malformed change")
			return
		}
		metrics.RealtimeMessages.WithLabelValues("in", ev.Table, "ok").Inc()
		for _, s := range members {
			s.deliver(ev)
		}
	}
}

// onConnect runs on the initial connect and on every automatic reconnect.
// Clean-session reconnects drop broker subscriptions; they are registered
// again before listeners hear the transport is healthy.
func (h *Hub) onConnect(c mqtt.Client) {
	if !c.IsConnectionOpen() {
		return
	}
	h.mu.Lock()
	wasLost := h.lost
	h.lost = false
	subs := h.snapshotSubs()
	topics := h.snapshotTopics()
	h.mu.Unlock()

	if !wasLost {
		return
	}

	h.log.Info().Int("subscriptions", len(subs)).Int("topics", len(topics)).Msg("realtime connection restored")
	for _, topic := range topics {
		c.Subscribe(topic, subscribeQoS, h.route(topic))
	}
	for _, s := range subs {
		s.status(models.SubscriptionHealthy)
	}
}

func (h *Hub) onConnectionLost(_ mqtt.Client, err error) {
	h.mu.Lock()
	h.lost = true
	subs := h.snapshotSubs()
	h.mu.Unlock()

	h.log.Warn().Err(err).Msg("realtime connection lost, will auto-reconnect")
	for _, s := range subs {
		s.status(models.SubscriptionLost)
	}
}

// release detaches sub, unsubscribes its topic with the topic's last member
// and closes the connection with the last reference. It never waits for the
// broker.
func (h *Hub) release(sub *HubSubscription) {
	h.mu.Lock()
	if _, ok := h.subs[sub.id]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.subs, sub.id)
	topicEmpty := false
	if tm, ok := h.topics[sub.topic]; ok {
		delete(tm.members, sub.id)
		if len(tm.members) == 0 {
			delete(h.topics, sub.topic)
			topicEmpty = true
		}
	}
	client := h.client
	last := len(h.subs) == 0
	if last {
		h.client = nil
		h.lost = false
	}
	h.mu.Unlock()

	if client == nil {
		return
	}
	if last {
		metrics.RealtimeConnections.Dec()
		go client.Disconnect(disconnectQuiesce)
		h.log.Debug().Msg("realtime connection released")
		return
	}
	if topicEmpty {
		client.Unsubscribe(sub.topic)
	}
}

func (s *HubSubscription) deliver(ev models.ChangeEvent) {
	if s.isClosed() || s.onEvent == nil {
		return
	}
	s.onEvent(ev)
}

func (s *HubSubscription) status(st models.SubscriptionStatus) {
	if s.isClosed() || s.onStatus == nil {
		return
	}
	s.onStatus(st)
}

func (s *HubSubscription) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Topic returns the subscribed topic.
func (s *HubSubscription) Topic() string {
	return s.topic
}

// Close detaches the subscription. It is idempotent and does not block on
// in-flight handler calls.
func (s *HubSubscription) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.hub.release(s)
}
