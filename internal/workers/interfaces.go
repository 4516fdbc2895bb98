// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the client's background jobs, such as counter
// reconciliation while a follower list is being watched.
//
// A [Workers] aggregate starts every worker with one call and waits for all
// of them to return.
package workers

import "context"

// Worker is a background job. Run blocks until the work is done or ctx is
// cancelled.
type Worker interface {
	Run(ctx context.Context)
}
