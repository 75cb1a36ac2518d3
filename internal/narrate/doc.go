// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package narrate manages speech playback of the current verdict.
//
// At most one narration is active system-wide. Starting a new narration fully
// stops the previous one first; stopping is synchronous and idempotent. Each
// start bumps a generation counter so the completion of a cancelled playback
// can never flip the controller back to idle out of turn. The Speaker
// interface wraps the platform speech engine so tests can substitute a fake.
package narrate
