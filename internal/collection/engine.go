// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package collection keeps a local snapshot of a remote collection in sync
// through one full fetch plus push change events, falling back to periodic
// polling while the push subscription is unhealthy.
//
// The snapshot is a set keyed by item id. Insert of a known id replaces it,
// update of an unknown id is ignored and delete is idempotent. Push events
// and fetch results are serialized per engine; a fetch result never
// overwrites an item touched by a push event that arrived after the fetch
// was issued, and an older fetch never overwrites a newer one.
package collection

import (
	"context"
	"sync"
	"time"

	"github.com/milleriumage/oi-friendly-voice/internal/logger"
	"github.com/milleriumage/oi-friendly-voice/internal/metrics"
	"github.com/milleriumage/oi-friendly-voice/models"
)

// DefaultPollInterval is the refetch period while degraded.
const DefaultPollInterval = 30 * time.Second

// Ticker starts a periodic tick and returns its channel and a stop function.
type Ticker func(d time.Duration) (<-chan time.Time, func())

func timeTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// Options configures an [Engine].
type Options[T Item] struct {
	// Name labels logs and metrics.
	Name         string
	PollInterval time.Duration
	// Pinned marks items kept ahead of all others, such as the primary media
	// item. New unpinned items are inserted right after the pinned prefix.
	Pinned func(T) bool
	// OnChange receives snapshots in version order on a dedicated goroutine.
	// It may call any engine method, including Stop.
	OnChange func(Snapshot[T])
	Logger   *logger.Logger
	Ticker   Ticker
}

// touch records the last push event applied to an id, on the engine's
// local event clock.
type touch[T Item] struct {
	at      uint64
	deleted bool
	item    T
}

// Engine synchronizes one watched collection for one scope at a time.
type Engine[T Item] struct {
	src  Source[T]
	opts Options[T]
	log  *logger.Logger

	base       context.Context
	baseCancel context.CancelFunc

	mu        sync.Mutex
	state     State
	scope     string
	scopeGen  uint64
	runCancel context.CancelFunc
	runCtx    context.Context
	sub       Subscription
	pollStop  func()

	items   []T
	lastErr error
	version uint64

	clock        uint64
	touched      map[string]touch[T]
	lastSeq      map[string]uint64
	fetchSeq     uint64
	appliedFetch uint64

	wake       chan struct{}
	notifyDone chan struct{}
}

// New builds an engine in StateUninitialized.
func New[T Item](src Source[T], opts Options[T]) *Engine[T] {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.Ticker == nil {
		opts.Ticker = timeTicker
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.Name == "" {
		opts.Name = "collection"
	}

	base, cancel := context.WithCancel(context.Background())
	e := &Engine[T]{
		src:        src,
		opts:       opts,
		log:        opts.Logger.Component("sync." + opts.Name),
		base:       base,
		baseCancel: cancel,
		touched:    make(map[string]touch[T]),
		lastSeq:    make(map[string]uint64),
		wake:       make(chan struct{}, 1),
		notifyDone: make(chan struct{}),
	}

	if opts.OnChange != nil {
		go e.notifyLoop()
	} else {
		close(e.notifyDone)
	}
	return e
}

// Start fetches scope and opens its push subscription. Calling Start again
// switches scope: the previous snapshot stays visible until the new fetch
// resolves. Fetch failures are reported through the snapshot, not returned.
func (e *Engine[T]) Start(ctx context.Context, scope string) error {
	e.mu.Lock()
	if e.state == StateDisposed {
		e.mu.Unlock()
		return ErrDisposed
	}

	if e.runCancel != nil {
		e.runCancel()
	}
	oldSub := e.sub
	e.sub = nil
	e.stopPollLocked()

	e.scope = scope
	e.scopeGen++
	gen := e.scopeGen
	e.runCtx, e.runCancel = context.WithCancel(e.base)
	e.touched = make(map[string]touch[T])
	e.lastSeq = make(map[string]uint64)
	e.setStateLocked(StateLoading)
	e.mu.Unlock()

	if oldSub != nil {
		oldSub.Close()
	}
	e.signal()

	e.log.Debug().Str("scope", scope).Msg("starting collection sync")

	// subscribe first so events racing the initial fetch are not lost
	e.subscribe(ctx, gen)
	_ = e.fetch(ctx, gen)

	e.mu.Lock()
	if e.currentLocked(gen) && e.state == StateLoading {
		if e.sub != nil {
			e.setStateLocked(StateLive)
		} else {
			e.setStateLocked(StateDegraded)
			e.startPollLocked(gen)
		}
	}
	e.mu.Unlock()
	e.signal()
	return nil
}

// Refresh refetches the current scope. While degraded, a successful refetch
// also reopens the push subscription.
func (e *Engine[T]) Refresh(ctx context.Context) error {
	e.mu.Lock()
	if e.state == StateDisposed {
		e.mu.Unlock()
		return ErrDisposed
	}
	gen := e.scopeGen
	degraded := e.state == StateDegraded
	e.mu.Unlock()

	if err := e.fetch(ctx, gen); err != nil {
		return err
	}
	if degraded {
		e.resubscribe(ctx, gen)
	}
	return nil
}

// Stop disposes the engine. It is idempotent, never blocks on in-flight
// work and is safe to call from event handlers and OnChange.
func (e *Engine[T]) Stop() {
	e.mu.Lock()
	if e.state == StateDisposed {
		e.mu.Unlock()
		return
	}
	e.setStateLocked(StateDisposed)
	sub := e.sub
	e.sub = nil
	e.stopPollLocked()
	e.mu.Unlock()

	if sub != nil {
		sub.Close()
	}
	e.baseCancel()
	e.log.Debug().Msg("collection sync stopped")
}

// Done is closed once the final snapshot has been delivered after Stop.
func (e *Engine[T]) Done() <-chan struct{} {
	return e.notifyDone
}

// Snapshot returns a copy of the current state.
func (e *Engine[T]) Snapshot() Snapshot[T] {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// State returns the current lifecycle state.
func (e *Engine[T]) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Engine[T]) snapshotLocked() Snapshot[T] {
	items := make([]T, len(e.items))
	copy(items, e.items)
	return Snapshot[T]{
		Items:   items,
		State:   e.state,
		Scope:   e.scope,
		Version: e.version,
		Err:     e.lastErr,
	}
}

func (e *Engine[T]) setStateLocked(s State) {
	if e.state == s {
		return
	}
	e.state = s
	e.version++
	metrics.SyncTransitions.WithLabelValues(e.opts.Name, s.String()).Inc()
}

// currentLocked reports whether gen still names the live scope of a live engine.
func (e *Engine[T]) currentLocked(gen uint64) bool {
	return e.state != StateDisposed && gen == e.scopeGen
}

// fetch issues one full fetch and applies it if nothing newer won meanwhile.
func (e *Engine[T]) fetch(ctx context.Context, gen uint64) error {
	e.mu.Lock()
	if !e.currentLocked(gen) {
		e.mu.Unlock()
		return ErrDisposed
	}
	e.fetchSeq++
	fetchID := e.fetchSeq
	issuedAt := e.clock
	scope := e.scope
	e.mu.Unlock()

	fetched, err := e.src.Fetch(ctx, scope)

	e.mu.Lock()
	if !e.currentLocked(gen) || fetchID < e.appliedFetch {
		e.mu.Unlock()
		metrics.SyncFetches.WithLabelValues(e.opts.Name, "stale").Inc()
		return nil
	}

	if err != nil {
		classified := classifyFetchError(err)
		e.lastErr = classified
		e.version++
		e.mu.Unlock()
		metrics.SyncFetches.WithLabelValues(e.opts.Name, "error").Inc()
		e.log.Warn().Err(err).Str("scope", scope).Msg("collection fetch failed")
		e.signal()
		return classified
	}

	e.appliedFetch = fetchID
	e.items = e.mergeFetchLocked(fetched, issuedAt)
	for id, t := range e.touched {
		if t.at <= issuedAt {
			delete(e.touched, id)
		}
	}
	e.lastErr = nil
	e.version++
	e.mu.Unlock()

	metrics.SyncFetches.WithLabelValues(e.opts.Name, "ok").Inc()
	e.signal()
	return nil
}

// mergeFetchLocked combines a fetch result issued at clock issuedAt with the
// push events applied since.
func (e *Engine[T]) mergeFetchLocked(fetched []T, issuedAt uint64) []T {
	out := make([]T, 0, len(fetched))
	seen := make(map[string]struct{}, len(fetched))

	for _, it := range fetched {
		id := it.ItemID()
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		if t, ok := e.touched[id]; ok && t.at > issuedAt {
			if !t.deleted {
				out = append(out, t.item)
			}
			continue
		}
		out = append(out, it)
	}

	for _, local := range e.items {
		id := local.ItemID()
		if _, ok := seen[id]; ok {
			continue
		}
		if t, ok := e.touched[id]; ok && t.at > issuedAt && !t.deleted {
			out = e.insertLocked(out, local)
			seen[id] = struct{}{}
		}
	}

	return e.pinFront(out)
}

// pinFront moves pinned items ahead of the rest, keeping relative order.
func (e *Engine[T]) pinFront(items []T) []T {
	if e.opts.Pinned == nil {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if e.opts.Pinned(it) {
			out = append(out, it)
		}
	}
	for _, it := range items {
		if !e.opts.Pinned(it) {
			out = append(out, it)
		}
	}
	return out
}

// insertLocked places a new item: pinned items go first, others right
// after the pinned prefix. With Pinned set and nothing pinned, the head item
// keeps its place and the new item goes second.
func (e *Engine[T]) insertLocked(items []T, it T) []T {
	idx := 0
	if e.opts.Pinned != nil && !e.opts.Pinned(it) {
		for idx < len(items) && e.opts.Pinned(items[idx]) {
			idx++
		}
		if idx == 0 && len(items) > 0 {
			idx = 1
		}
	}
	var zero T
	items = append(items, zero)
	copy(items[idx+1:], items[idx:])
	items[idx] = it
	return items
}

func indexOf[T Item](items []T, id string) int {
	for i, it := range items {
		if it.ItemID() == id {
			return i
		}
	}
	return -1
}

func (e *Engine[T]) onEvent(gen uint64, ev Event[T]) {
	id := ev.id()

	e.mu.Lock()
	if !e.currentLocked(gen) || id == "" || !ev.Type.Valid() {
		e.mu.Unlock()
		return
	}

	if ev.Seq != 0 {
		if last, ok := e.lastSeq[id]; ok && ev.Seq <= last {
			e.mu.Unlock()
			metrics.SyncEvents.WithLabelValues(e.opts.Name, string(ev.Type), "duplicate").Inc()
			return
		}
		e.lastSeq[id] = ev.Seq
	}

	e.clock++
	idx := indexOf(e.items, id)
	changed := false

	switch ev.Type {
	case models.ChangeInsert:
		if idx >= 0 {
			e.replaceLocked(idx, ev.Item)
		} else {
			e.items = e.insertLocked(e.items, ev.Item)
		}
		e.touched[id] = touch[T]{at: e.clock, item: ev.Item}
		changed = true
	case models.ChangeUpdate:
		e.touched[id] = touch[T]{at: e.clock, item: ev.Item}
		if idx >= 0 {
			e.replaceLocked(idx, ev.Item)
			changed = true
		}
	case models.ChangeDelete:
		e.touched[id] = touch[T]{at: e.clock, deleted: true}
		if idx >= 0 {
			e.items = append(e.items[:idx], e.items[idx+1:]...)
			changed = true
		}
	}

	if changed {
		e.version++
	}
	e.mu.Unlock()

	outcome := "ignored"
	if changed {
		outcome = "applied"
		e.signal()
	}
	metrics.SyncEvents.WithLabelValues(e.opts.Name, string(ev.Type), outcome).Inc()
}

// replaceLocked swaps the item at idx, moving it to the front if it just became pinned.
func (e *Engine[T]) replaceLocked(idx int, it T) {
	if e.opts.Pinned != nil && e.opts.Pinned(it) && !e.opts.Pinned(e.items[idx]) {
		e.items = append(e.items[:idx], e.items[idx+1:]...)
		e.items = e.insertLocked(e.items, it)
		return
	}
	e.items[idx] = it
}

func (e *Engine[T]) onStatus(gen uint64, status models.SubscriptionStatus) {
	e.mu.Lock()
	if !e.currentLocked(gen) {
		e.mu.Unlock()
		return
	}

	recovered := false
	switch status {
	case models.SubscriptionHealthy:
		if e.state == StateDegraded {
			recovered = true
			e.stopPollLocked()
			e.setStateLocked(StateLive)
		}
	case models.SubscriptionLost:
		if e.state != StateDegraded {
			e.setStateLocked(StateDegraded)
			e.startPollLocked(gen)
		}
	}
	runCtx := e.runCtx
	e.mu.Unlock()

	e.log.Info().Str("status", status.String()).Msg("subscription status changed")
	e.signal()

	// events may have been missed while degraded
	if recovered {
		go func() { _ = e.fetch(runCtx, gen) }()
	}
}

func (e *Engine[T]) subscribe(ctx context.Context, gen uint64) {
	e.mu.Lock()
	if !e.currentLocked(gen) {
		e.mu.Unlock()
		return
	}
	scope := e.scope
	runCtx := e.runCtx
	e.mu.Unlock()

	// the wait ends with the caller or with the scope, whichever goes first;
	// the registration itself lives until its Close
	waitCtx, cancel := context.WithCancel(runCtx)
	stopAfter := context.AfterFunc(ctx, cancel)
	sub, err := e.src.Subscribe(waitCtx, scope,
		func(ev Event[T]) { e.onEvent(gen, ev) },
		func(st models.SubscriptionStatus) { e.onStatus(gen, st) },
	)
	stopAfter()
	cancel()

	e.mu.Lock()
	if !e.currentLocked(gen) {
		e.mu.Unlock()
		if sub != nil {
			sub.Close()
		}
		return
	}

	if err != nil {
		if e.state != StateLoading {
			e.setStateLocked(StateDegraded)
			e.startPollLocked(gen)
		}
		e.mu.Unlock()
		e.log.Warn().Err(err).Str("scope", scope).Msg("push subscription failed, polling")
		e.signal()
		return
	}

	e.sub = sub
	if e.state == StateDegraded {
		e.stopPollLocked()
		e.setStateLocked(StateLive)
	}
	e.mu.Unlock()
	e.signal()
}

// resubscribe replaces the current subscription with a fresh one.
func (e *Engine[T]) resubscribe(ctx context.Context, gen uint64) {
	e.mu.Lock()
	if !e.currentLocked(gen) {
		e.mu.Unlock()
		return
	}
	old := e.sub
	e.sub = nil
	e.mu.Unlock()

	if old != nil {
		old.Close()
	}
	e.subscribe(ctx, gen)
}

func (e *Engine[T]) startPollLocked(gen uint64) {
	if e.pollStop != nil {
		return
	}
	pollCtx, cancel := context.WithCancel(e.runCtx)
	ticks, stopTicker := e.opts.Ticker(e.opts.PollInterval)
	e.pollStop = func() {
		cancel()
		stopTicker()
	}

	go func() {
		for {
			select {
			case <-pollCtx.Done():
				return
			case <-ticks:
				e.pollTick(pollCtx, gen)
			}
		}
	}()
}

func (e *Engine[T]) stopPollLocked() {
	if e.pollStop != nil {
		e.pollStop()
		e.pollStop = nil
	}
}

func (e *Engine[T]) pollTick(ctx context.Context, gen uint64) {
	if err := e.fetch(ctx, gen); err != nil {
		return
	}

	e.mu.Lock()
	needSub := e.currentLocked(gen) && e.sub == nil
	e.mu.Unlock()
	if needSub {
		e.subscribe(ctx, gen)
	}
}

// signal wakes the notifier without blocking.
func (e *Engine[T]) signal() {
	if e.opts.OnChange == nil {
		return
	}
	select {
	case e.wake <- struct{}{}:
	default:
	}
}

func (e *Engine[T]) notifyLoop() {
	defer close(e.notifyDone)
	var delivered uint64

	deliver := func() {
		snap := e.Snapshot()
		if snap.Version > delivered {
			delivered = snap.Version
			e.opts.OnChange(snap)
		}
	}

	for {
		select {
		case <-e.wake:
			deliver()
		case <-e.base.Done():
			deliver()
			return
		}
	}
}
