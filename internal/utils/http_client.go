// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient embeds *resty.Client and carries the Data Backend base URL,
// timeout and retry policy.
type HTTPClient struct {
	*resty.Client
}

// HTTPClientOptions tunes [NewHTTPClient]. Zero values keep resty defaults.
type HTTPClientOptions struct {
	BaseURL    string
	Timeout    time.Duration
	RetryCount int
	RetryWait  time.Duration
}

// NewHTTPClient returns an independent client. Requests are retried on
// transport errors and 502/503/504 responses only; 4xx answers are final.
func NewHTTPClient(opts HTTPClientOptions) *HTTPClient {
	c := resty.New().
		SetHeader("Accept", "application/json").
		SetRetryCount(opts.RetryCount).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			switch r.StatusCode() {
			case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
				return true
			}
			return false
		})

	if opts.BaseURL != "" {
		c.SetBaseURL(opts.BaseURL)
	}
	if opts.Timeout > 0 {
		c.SetTimeout(opts.Timeout)
	}
	if opts.RetryWait > 0 {
		c.SetRetryWaitTime(opts.RetryWait).SetRetryMaxWaitTime(4 * opts.RetryWait)
	}

	return &HTTPClient{Client: c}
}
