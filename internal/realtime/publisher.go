// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/milleriumage/oi-friendly-voice/internal/logger"
	"github.com/milleriumage/oi-friendly-voice/internal/metrics"
	"github.com/milleriumage/oi-friendly-voice/models"
)

const publishQoS = byte(1)

// Change is one row mutation together with the column values it is
// published under, e.g. {"user_id": "u1"} for a media row.
type Change struct {
	Table   string
	Type    models.ChangeType
	Row     any
	Columns map[string]string
}

// PublisherOptions configures a [Publisher].
type PublisherOptions struct {
	Broker         string
	ClientID       string
	TopicPrefix    string
	ConnectTimeout time.Duration
	Logger         *logger.Logger
	NewClient      ClientFactory
	Now            func() time.Time
}

// Publisher fans row changes out to the broker.
type Publisher struct {
	client  mqtt.Client
	prefix  string
	timeout time.Duration
	log     *logger.Logger
	now     func() time.Time

	mu      sync.Mutex
	lastSeq uint64
}

// NewPublisher connects to the broker.
func NewPublisher(opts PublisherOptions) (*Publisher, error) {
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = defaultTimeout
	}
	if opts.NewClient == nil {
		opts.NewClient = mqtt.NewClient
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	log := opts.Logger.Component("realtime.publisher")

	mo := mqtt.NewClientOptions()
	mo.AddBroker(opts.Broker)
	mo.SetClientID(opts.ClientID)
	mo.SetAutoReconnect(true)
	mo.SetConnectRetry(true)
	mo.SetConnectRetryInterval(2 * time.Second)
	mo.SetMaxReconnectInterval(30 * time.Second)
	mo.OnConnectionLost = func(_ mqtt.Client, err error) {
		log.Warn().Err(err).Str("broker", opts.Broker).Msg("publisher connection lost, will auto-reconnect")
	}

	client := opts.NewClient(mo)
	token := client.Connect()
	if !token.WaitTimeout(opts.ConnectTimeout) {
		return nil, fmt.Errorf("%w: connect timeout to %s", ErrNotConnected, opts.Broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotConnected, err)
	}
	log.Info().Str("broker", opts.Broker).Msg("publisher connected")

	return &Publisher{
		client:  client,
		prefix:  opts.TopicPrefix,
		timeout: opts.ConnectTimeout,
		log:     log,
		now:     opts.Now,
	}, nil
}

// nextSeq is strictly increasing and survives restarts by tracking wall time.
func (p *Publisher) nextSeq(at time.Time) uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	seq := uint64(at.UnixNano())
	if seq <= p.lastSeq {
		seq = p.lastSeq + 1
	}
	p.lastSeq = seq
	return seq
}

// Publish sends c on the topic of every column in c.Columns.
func (p *Publisher) Publish(ctx context.Context, c Change) error {
	row, err := json.Marshal(c.Row)
	if err != nil {
		return fmt.Errorf("failed to marshal %s row: %w", c.Table, err)
	}

	at := p.now()
	payload, err := Encode(models.ChangeEvent{
		Table: c.Table,
		Type:  c.Type,
		Row:   row,
		Seq:   p.nextSeq(at),
		At:    at.UTC(),
	})
	if err != nil {
		return err
	}

	var firstErr error
	for col, val := range c.Columns {
		topic, err := Topic(p.prefix, models.Filter{Table: c.Table, Column: col, Value: val})
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		token := p.client.Publish(topic, publishQoS, false, payload)
		if err := p.wait(ctx, token); err != nil {
			metrics.RealtimeMessages.WithLabelValues("out", c.Table, "error").Inc()
			p.log.Error().Err(err).Str("topic", topic).Msg("publish failed")
			if firstErr == nil {
				firstErr = fmt.Errorf("failed to publish on %s: %w", topic, err)
			}
			continue
		}
		metrics.RealtimeMessages.WithLabelValues("out", c.Table, "ok").Inc()
		p.log.Debug().Str("topic", topic).Str("type", string(c.Type)).Int("size", len(payload)).Msg("change published")
	}
	return firstErr
}

func (p *Publisher) wait(ctx context.Context, token mqtt.Token) error {
	select {
	case <-token.Done():
		return token.Error()
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(p.timeout):
		return fmt.Errorf("%w: publish timeout", ErrNotConnected)
	}
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	if p.client.IsConnected() {
		p.client.Disconnect(disconnectQuiesce)
	}
	p.log.Info().Msg("publisher disconnected")
}

// NopPublisher drops every change. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Change) error { return nil }

func (NopPublisher) Close() {}
