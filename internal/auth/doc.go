// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Tillhouse Contributors

// Package auth provides employee authentication and lifecycle for the
// Tillhouse back office.
//
// # Services
//
//   - Service - email/credential and id/PIN logins. Both return the
//     employee with permissions already normalized; both collapse every
//     authorization-relevant failure into ErrAuthenticationFailed.
//   - ManagementService - employee creation, role changes, and edits.
//     Creation and role changes seed the role preset; plain edits never
//     recompute permissions, so hand-tuned grants survive.
//
// # PIN storage
//
// PINs are stored as plain strings for compatibility with existing
// records. Verification is constant-time over digests, but hashing at
// rest is a pending product decision, not something this package
// changes unilaterally.
package auth
