// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package optimistic

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_CommitSuccessKeepsValue(t *testing.T) {
	var seen []int
	cell := NewCell(10, func(v int) { seen = append(seen, v) })

	err := Run(context.Background(), cell, Add(1), func(context.Context) error { return nil })

	require.NoError(t, err)
	assert.Equal(t, 11, cell.Get())
	assert.Equal(t, []int{11}, seen)
}

func TestRun_CommitFailureRevertsOnlyOwnDelta(t *testing.T) {
	cell := NewCell(10, nil)
	boom := errors.New("boom")

	err := Run(context.Background(), cell, Add(1), func(context.Context) error {
		// a concurrent mutation lands while the commit is in flight
		cell.Update(func(v int) int { return v + 5 })
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 15, cell.Get())
}

func TestAddFloored(t *testing.T) {
	cell := NewCell(0, nil)

	err := Run(context.Background(), cell, AddFloored(-1, 0), func(context.Context) error {
		return errors.New("fail")
	})

	assert.Error(t, err)
	assert.Equal(t, 0, cell.Get(), "floored decrement of zero reverts to zero, not one")

	require.NoError(t, Run(context.Background(), cell, AddFloored(-1, 0), func(context.Context) error { return nil }))
	assert.Equal(t, 0, cell.Get())

	cell.Set(3)
	require.NoError(t, Run(context.Background(), cell, AddFloored(-1, 0), func(context.Context) error { return nil }))
	assert.Equal(t, 2, cell.Get())
}

func TestCell_SetNotifies(t *testing.T) {
	var last int
	cell := NewCell(0, func(v int) { last = v })

	cell.Set(7)

	assert.Equal(t, 7, last)
	assert.Equal(t, 7, cell.Get())
}
