// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators enforces input rules for Data Backend requests and
// client-side uploads.
//
// Validators accept any value and dispatch on its concrete type. The
// optional field names restrict validation to a subset of the rules.
package validators

import "context"

// Validator validates a value, optionally restricted to named fields.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
