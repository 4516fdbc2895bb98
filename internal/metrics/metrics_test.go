// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_Idempotent(t *testing.T) {
	reg := prometheus.NewRegistry()

	require.NoError(t, Register(reg))
	require.NoError(t, Register(reg))
}

func TestHandler_ExposesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, Register(reg))

	RateLimitDecisions.WithLabelValues("allowed").Inc()

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "oifv_ratelimit_decisions")
}

func TestCounters_Increment(t *testing.T) {
	before := testutil.ToFloat64(LedgerOperations.WithLabelValues("add", "ok"))
	LedgerOperations.WithLabelValues("add", "ok").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(LedgerOperations.WithLabelValues("add", "ok")))
}
