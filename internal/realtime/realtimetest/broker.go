// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package realtimetest provides an in-memory MQTT broker for tests.
package realtimetest

import (
	"errors"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// ErrRefused is returned by connects and subscribes while the broker refuses them.
var ErrRefused = errors.New("broker refused")

// Broker routes published payloads to subscribers on the exact same topic.
type Broker struct {
	mu            sync.Mutex
	clients       []*Client
	refuseConnect bool
	refuseSub     bool
	published     []Published
}

// Published is one message seen by the broker.
type Published struct {
	Topic   string
	Payload []byte
}

// NewBroker returns an empty broker.
func NewBroker() *Broker {
	return &Broker{}
}

// RefuseConnect makes subsequent connects fail.
func (b *Broker) RefuseConnect(v bool) {
	b.mu.Lock()
	b.refuseConnect = v
	b.mu.Unlock()
}

// RefuseSubscribe makes subsequent subscribes fail.
func (b *Broker) RefuseSubscribe(v bool) {
	b.mu.Lock()
	b.refuseSub = v
	b.mu.Unlock()
}

// NewClient matches realtime.ClientFactory.
func (b *Broker) NewClient(opts *mqtt.ClientOptions) mqtt.Client {
	c := &Client{broker: b, opts: opts, subs: make(map[string]mqtt.MessageHandler)}
	b.mu.Lock()
	b.clients = append(b.clients, c)
	b.mu.Unlock()
	return c
}

// Clients returns every client created so far.
func (b *Broker) Clients() []*Client {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*Client(nil), b.clients...)
}

// Published returns every message accepted so far.
func (b *Broker) Published() []Published {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Published(nil), b.published...)
}

// Deliver sends payload to every connected subscriber of topic.
func (b *Broker) Deliver(topic string, payload []byte) {
	for _, c := range b.Clients() {
		c.deliver(topic, payload)
	}
}

// DropConnections drops every connected client and its subscriptions.
func (b *Broker) DropConnections() {
	for _, c := range b.Clients() {
		c.drop()
	}
}

// Reconnect restores every dropped client.
func (b *Broker) Reconnect() {
	for _, c := range b.Clients() {
		c.restore()
	}
}

// Client is an in-memory mqtt.Client.
type Client struct {
	broker *Broker
	opts   *mqtt.ClientOptions

	mu           sync.Mutex
	connected    bool
	dropped      bool
	disconnected bool
	subs         map[string]mqtt.MessageHandler
	unsubscribed []string
}

// Subscribed reports whether topic has a live subscription.
func (c *Client) Subscribed(topic string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.subs[topic]
	return ok
}

// Unsubscribed returns the topics passed to Unsubscribe.
func (c *Client) Unsubscribed() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.unsubscribed...)
}

// Disconnected reports whether Disconnect was called.
func (c *Client) Disconnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disconnected
}

func (c *Client) deliver(topic string, payload []byte) {
	c.mu.Lock()
	h, ok := c.subs[topic]
	live := c.connected
	c.mu.Unlock()
	if ok && live {
		h(c, &message{topic: topic, payload: payload})
	}
}

func (c *Client) drop() {
	c.mu.Lock()
	if !c.connected {
		c.mu.Unlock()
		return
	}
	c.connected = false
	c.dropped = true
	c.subs = make(map[string]mqtt.MessageHandler)
	c.mu.Unlock()

	if c.opts.OnConnectionLost != nil {
		c.opts.OnConnectionLost(c, errors.New("connection dropped"))
	}
}

func (c *Client) restore() {
	c.mu.Lock()
	if !c.dropped || c.disconnected {
		c.mu.Unlock()
		return
	}
	c.connected = true
	c.dropped = false
	c.mu.Unlock()

	if c.opts.OnConnect != nil {
		c.opts.OnConnect(c)
	}
}

func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

func (c *Client) IsConnectionOpen() bool {
	return c.IsConnected()
}

func (c *Client) Connect() mqtt.Token {
	c.broker.mu.Lock()
	refuse := c.broker.refuseConnect
	c.broker.mu.Unlock()
	if refuse {
		return doneToken(ErrRefused)
	}

	c.mu.Lock()
	c.connected = true
	c.mu.Unlock()
	// paho runs the connect handler on its own goroutine
	if c.opts.OnConnect != nil {
		go c.opts.OnConnect(c)
	}
	return doneToken(nil)
}

func (c *Client) Disconnect(uint) {
	c.mu.Lock()
	c.connected = false
	c.disconnected = true
	c.mu.Unlock()
}

func (c *Client) Publish(topic string, _ byte, _ bool, payload interface{}) mqtt.Token {
	var body []byte
	switch p := payload.(type) {
	case []byte:
		body = p
	case string:
		body = []byte(p)
	}
	if !c.IsConnected() {
		return doneToken(mqtt.ErrNotConnected)
	}

	c.broker.mu.Lock()
	c.broker.published = append(c.broker.published, Published{Topic: topic, Payload: body})
	c.broker.mu.Unlock()

	c.broker.Deliver(topic, body)
	return doneToken(nil)
}

func (c *Client) Subscribe(topic string, _ byte, callback mqtt.MessageHandler) mqtt.Token {
	c.broker.mu.Lock()
	refuse := c.broker.refuseSub
	c.broker.mu.Unlock()
	if refuse {
		return doneToken(ErrRefused)
	}
	if !c.IsConnected() {
		return doneToken(mqtt.ErrNotConnected)
	}

	c.mu.Lock()
	c.subs[topic] = callback
	c.mu.Unlock()
	return doneToken(nil)
}

func (c *Client) SubscribeMultiple(filters map[string]byte, callback mqtt.MessageHandler) mqtt.Token {
	for topic, qos := range filters {
		if t := c.Subscribe(topic, qos, callback); t.Error() != nil {
			return t
		}
	}
	return doneToken(nil)
}

func (c *Client) Unsubscribe(topics ...string) mqtt.Token {
	c.mu.Lock()
	for _, t := range topics {
		delete(c.subs, t)
		c.unsubscribed = append(c.unsubscribed, t)
	}
	c.mu.Unlock()
	return doneToken(nil)
}

func (c *Client) AddRoute(topic string, callback mqtt.MessageHandler) {
	c.mu.Lock()
	c.subs[topic] = callback
	c.mu.Unlock()
}

func (c *Client) OptionsReader() mqtt.ClientOptionsReader {
	return mqtt.ClientOptionsReader{}
}

type token struct {
	err  error
	done chan struct{}
}

func doneToken(err error) *token {
	t := &token{err: err, done: make(chan struct{})}
	close(t.done)
	return t
}

func (t *token) Wait() bool                     { return true }
func (t *token) WaitTimeout(time.Duration) bool { return true }
func (t *token) Done() <-chan struct{}          { return t.done }
func (t *token) Error() error                   { return t.err }

type message struct {
	topic   string
	payload []byte
}

func (m *message) Duplicate() bool   { return false }
func (m *message) Qos() byte         { return 1 }
func (m *message) Retained() bool    { return false }
func (m *message) Topic() string     { return m.topic }
func (m *message) MessageID() uint16 { return 0 }
func (m *message) Payload() []byte   { return m.payload }
func (m *message) Ack()              {}
