// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppBuildInfo(t *testing.T) {
	t.Run("linked values", func(t *testing.T) {
		info := NewAppBuildInfo("1.2.0", "2026-10-01", "abc123")
		assert.True(t, info.HasVersion())

		var buf bytes.Buffer
		require.NoError(t, info.Print(&buf))
		assert.Equal(t, "Build version: 1.2.0\nBuild date: 2026-10-01\nBuild commit: abc123\n", buf.String())
	})

	t.Run("unset values", func(t *testing.T) {
		info := NewAppBuildInfo("", "", "")
		assert.False(t, info.HasVersion())
		assert.Equal(t, "N/A", info.BuildVersion())
		assert.Equal(t, "N/A", info.BuildDate())
		assert.Equal(t, "N/A", info.BuildCommit())
	})

	t.Run("zero value prints N/A", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, AppBuildInfo{}.Print(&buf))
		assert.Equal(t, 3, bytes.Count(buf.Bytes(), []byte("N/A")))
	})
}
