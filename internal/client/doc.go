// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the oifv command line client.
//
// [NewRootCommand] builds the cobra command tree; every command drives an
// [App], which resolves the acting identity once and runs the ledger,
// follow, like, media and trial services on its behalf. Long-running watch
// commands start background workers for counter reconciliation.
package client
