// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package analyze provides the main view of nutrisense-tui.
//
// The package owns the interaction state machine: input mode switching,
// the single in-flight analysis request, the result presentation, the
// follow-up conversation, and verdict narration. All state transitions
// happen inside Update on the Bubble Tea loop; anything that blocks (HTTP
// requests, camera grabs, speech playback) runs in commands whose
// completions arrive as the message types in messages.go.
package analyze
