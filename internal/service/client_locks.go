// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"sync"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/milleriumage/oi-friendly-voice/internal/optimistic"
)

// keyedLocks hands out one mutex per key. Entries are never evicted; keys are
// identities and (identity, target) pairs touched by this process.
type keyedLocks struct {
	locks *xsync.MapOf[string, *sync.Mutex]
}

func newKeyedLocks() *keyedLocks {
	return &keyedLocks{locks: xsync.NewMapOf[string, *sync.Mutex]()}
}

// lock blocks until key is held and returns the matching unlock.
func (k *keyedLocks) lock(key string) func() {
	mu, _ := k.locks.LoadOrCompute(key, func() *sync.Mutex { return &sync.Mutex{} })
	mu.Lock()
	return mu.Unlock
}

// pairKey joins an identity key and a target id.
func pairKey(a, b string) string {
	return a + "->" + b
}

// counterTable holds the optimistic counters shown next to a creator or a
// media item, keyed by id.
type counterTable struct {
	cells *xsync.MapOf[string, *optimistic.Cell[int]]
}

func newCounterTable() *counterTable {
	return &counterTable{cells: xsync.NewMapOf[string, *optimistic.Cell[int]]()}
}

func (c *counterTable) cell(id string) *optimistic.Cell[int] {
	cell, _ := c.cells.LoadOrCompute(id, func() *optimistic.Cell[int] { return optimistic.NewCell(0, nil) })
	return cell
}

func (c *counterTable) get(id string) int {
	if cell, ok := c.cells.Load(id); ok {
		return cell.Get()
	}
	return 0
}
