// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package optimistic applies a local mutation immediately, confirms it with a
// remote commit, and undoes exactly that mutation if the commit fails.
//
// Undo is expressed as an inverse function rather than a saved snapshot, so a
// rollback never clobbers unrelated mutations that landed on the same cell
// while the commit was in flight.
package optimistic

import (
	"context"
	"sync"
)

// Cell holds a value observed by readers while mutations are in flight.
type Cell[T any] struct {
	mu       sync.RWMutex
	value    T
	onChange func(T)
}

// NewCell creates a cell with an initial value. onChange, if set, is called
// with the new value after every change, outside the cell lock.
func NewCell[T any](initial T, onChange func(T)) *Cell[T] {
	return &Cell[T]{value: initial, onChange: onChange}
}

// Get returns the current value.
func (c *Cell[T]) Get() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// Set replaces the value, for reconciliation with an authoritative read.
func (c *Cell[T]) Set(v T) {
	c.mu.Lock()
	c.value = v
	c.mu.Unlock()
	c.notify(v)
}

// Update applies fn atomically and returns the new value.
func (c *Cell[T]) Update(fn func(T) T) T {
	c.mu.Lock()
	v := fn(c.value)
	c.value = v
	c.mu.Unlock()
	c.notify(v)
	return v
}

func (c *Cell[T]) notify(v T) {
	if c.onChange != nil {
		c.onChange(v)
	}
}

// Mutation is a local change and the function that undoes it.
// Apply returns the new value and an inverse to apply on rollback.
type Mutation[T any] func(current T) (next T, inverse func(T) T)

// Run applies m to cell, then calls commit. If commit fails the inverse is
// applied and the commit error returned unchanged.
func Run[T any](ctx context.Context, cell *Cell[T], m Mutation[T], commit func(context.Context) error) error {
	var inverse func(T) T
	cell.Update(func(cur T) T {
		next, inv := m(cur)
		inverse = inv
		return next
	})

	if err := commit(ctx); err != nil {
		if inverse != nil {
			cell.Update(inverse)
		}
		return err
	}
	return nil
}

// Add returns a mutation that adds delta and subtracts it back on rollback.
func Add(delta int) Mutation[int] {
	return func(cur int) (int, func(int) int) {
		return cur + delta, func(v int) int { return v - delta }
	}
}

// AddFloored adds delta (usually negative) without going below floor. The
// inverse restores only what was actually applied.
func AddFloored(delta, floor int) Mutation[int] {
	return func(cur int) (int, func(int) int) {
		next := cur + delta
		if next < floor {
			next = floor
		}
		applied := next - cur
		return next, func(v int) int { return v - applied }
	}
}
