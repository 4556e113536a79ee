// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Tillhouse Contributors

package auth

import "errors"

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrAuthenticationFailed covers every authorization-relevant login
// failure: bad credential, bad PIN, unknown employee, tenant mismatch.
// It deliberately carries no detail so callers cannot leak which check
// failed or whether the account exists.
var ErrAuthenticationFailed = errors.New("authentication failed")

// ErrCredentialRejected is returned by IdentityProvider
// implementations when the provider refuses an email/secret pair, as
// opposed to being unreachable.
var ErrCredentialRejected = errors.New("credential rejected")
