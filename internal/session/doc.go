// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session implements the analysis request lifecycle.
//
// A Session moves through Idle -> Pending -> Succeeded/Failed -> Idle. At most
// one request is in flight: Begin rejects new submissions while Pending.
// Every request carries a tag; Resolve discards responses whose tag no longer
// matches, so a response arriving after a reset (or for a replaced cycle)
// can never resurrect stale state.
package session
