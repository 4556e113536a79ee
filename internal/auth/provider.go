// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Tillhouse Contributors

package auth

import "context"

// Identity is an account at the external identity provider. For
// administrator accounts the provider's account id doubles as the
// tenant id, which is what lets email logins cross-check that the
// loaded employee record belongs to the authenticated tenant.
type Identity struct {
	AccountID string
	Email     string
}

// IdentityProvider is the external authentication provider. Credential
// verification is fully delegated; this module never sees provider
// password material beyond passing it through.
type IdentityProvider interface {
	// VerifyCredential checks an email/secret pair. Returns
	// ErrCredentialRejected when the provider refuses the pair;
	// any other error is a transport failure.
	VerifyCredential(ctx context.Context, email, secret string) (*Identity, error)

	// CurrentIdentity returns the identity of the active provider
	// session, or nil if no session exists.
	CurrentIdentity(ctx context.Context) (*Identity, error)

	// SignOut terminates the active provider session.
	SignOut(ctx context.Context) error
}
