// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// IdentityKind tags the variant held by an [Identity].
type IdentityKind int

const (
	// IdentityUnknown is the zero value and never produced by the resolver.
	IdentityUnknown IdentityKind = iota
	// IdentityGuest is an anonymous visitor keyed by a locally persisted session id.
	IdentityGuest
	// IdentityAuthenticated is an account issued by the external auth provider.
	IdentityAuthenticated
)

// String returns a short lowercase label, used in logs and storage keys.
func (k IdentityKind) String() string {
	switch k {
	case IdentityGuest:
		return "guest"
	case IdentityAuthenticated:
		return "account"
	default:
		return "unknown"
	}
}

// Identity is the acting principal for ledger and graph operations.
//
// It is a tagged union: Kind selects the variant and ID carries either the
// account id (Authenticated) or the guest session id (Guest).
type Identity struct {
	Kind IdentityKind `json:"kind"`
	ID   string       `json:"id"`
}

// Authenticated builds an account identity.
func Authenticated(accountID string) Identity {
	return Identity{Kind: IdentityAuthenticated, ID: accountID}
}

// Guest builds a guest identity.
func Guest(sessionID string) Identity {
	return Identity{Kind: IdentityGuest, ID: sessionID}
}

// IsGuest reports whether the identity is an anonymous guest session.
func (i Identity) IsGuest() bool { return i.Kind == IdentityGuest }

// IsAuthenticated reports whether the identity is an account.
func (i Identity) IsAuthenticated() bool { return i.Kind == IdentityAuthenticated }

// Valid reports whether the identity has a known kind and a non-empty id.
func (i Identity) Valid() bool {
	return (i.Kind == IdentityGuest || i.Kind == IdentityAuthenticated) && i.ID != ""
}

// Key returns a stable string key ("guest:<id>" or "account:<id>") suitable
// for rate-limit buckets, lock tables and storage namespaces.
func (i Identity) Key() string {
	return fmt.Sprintf("%s:%s", i.Kind, i.ID)
}

func (i Identity) String() string { return i.Key() }
