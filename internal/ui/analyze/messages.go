// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package analyze provides the main view of nutrisense-tui.
//
// This file defines the Bubble Tea message types used by the view. Messages
// are the only way asynchronous work reports back:
//   - Analysis: completion of an analyze request, tagged with its request ID
//   - Capture: completion of a one-shot camera grab
//   - Chat: completion of a follow-up question
//   - Narration: completion of a speech playback, tagged with its generation
//
// All message types are immutable.
package analyze

import (
	"github.com/jeranaias/nutrisense-tui/internal/api"
	"github.com/jeranaias/nutrisense-tui/internal/model"
)

// AnalysisCompletedMsg delivers the outcome of an analyze request. RequestID
// carries the tag issued by the session; the session discards the message if
// the tag no longer matches (reset or replaced cycle).
type AnalysisCompletedMsg struct {
	RequestID string
	Result    *api.AnalysisResult
	Err       error
}

// CaptureCompletedMsg delivers the outcome of a one-shot camera grab. On
// success Submission carries the framed image ready for analysis.
type CaptureCompletedMsg struct {
	Submission *model.Submission
	Err        error
}

// ChatAnsweredMsg delivers the outcome of a follow-up question. Answers
// arrive in completion order; a failed request carries Err and the view
// appends the fallback text instead.
type ChatAnsweredMsg struct {
	Answer string
	Err    error
}

// NarrationFinishedMsg signals that a speech playback ended, naturally or by
// being killed. Generation identifies which playback; stale generations are
// ignored by the controller.
type NarrationFinishedMsg struct {
	Generation int
	Err        error
}
