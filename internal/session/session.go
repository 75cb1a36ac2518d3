// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session implements the analysis request lifecycle.
package session

import (
	"errors"

	"github.com/google/uuid"

	"github.com/jeranaias/nutrisense-tui/internal/api"
	"github.com/jeranaias/nutrisense-tui/internal/model"
)

// =============================================================================
// STATES
// =============================================================================

// State is the lifecycle state of the analysis session.
type State int

const (
	StateIdle State = iota
	StatePending
	StateSucceeded
	StateFailed
)

// String returns the display name of the state.
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// FailureMessage is the stable user-facing text shown for any failed
// analysis. Internal error detail is never surfaced.
const FailureMessage = "Analysis failed. Please try again."

// ErrBusy is returned by Begin while a request is already in flight. The UI
// disables submission during Pending; the session enforces it regardless.
var ErrBusy = errors.New("an analysis request is already in flight")

// =============================================================================
// SESSION
// =============================================================================

// Session orchestrates exactly one in-flight analysis request and owns the
// last verdict. It is not safe for concurrent use; all calls happen on the
// update loop.
type Session struct {
	state      State
	submission *model.Submission
	result     *api.AnalysisResult
	failure    string

	// requestID tags the in-flight request. A Resolve carrying any other tag
	// is discarded.
	requestID string
}

// New creates a session in the Idle state.
func New() *Session {
	return &Session{}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Submission returns the submission of the current cycle, or nil in Idle.
func (s *Session) Submission() *model.Submission {
	return s.submission
}

// Result returns the verdict of the current cycle, or nil unless Succeeded.
func (s *Session) Result() *api.AnalysisResult {
	return s.result
}

// Failure returns the user-facing failure message, or "" unless Failed.
func (s *Session) Failure() string {
	return s.failure
}

// Pending reports whether a request is in flight.
func (s *Session) Pending() bool {
	return s.state == StatePending
}

// =============================================================================
// TRANSITIONS
// =============================================================================

// Begin starts a new analysis cycle for the given submission and returns the
// request tag the eventual Resolve must carry. Any previous verdict or
// failure is cleared immediately so nothing stale shows during Pending.
// Returns ErrBusy while a request is already in flight.
func (s *Session) Begin(sub *model.Submission) (string, error) {
	if s.state == StatePending {
		return "", ErrBusy
	}

	s.state = StatePending
	s.submission = sub
	s.result = nil
	s.failure = ""
	s.requestID = uuid.NewString()
	return s.requestID, nil
}

// Resolve completes the in-flight request identified by requestID. Responses
// whose tag does not match the current request are discarded; the return
// value reports whether the response was applied. On error the session moves
// to Failed with the stable FailureMessage and stores no result.
func (s *Session) Resolve(requestID string, result *api.AnalysisResult, err error) bool {
	if s.state != StatePending || requestID != s.requestID {
		return false
	}

	s.requestID = ""
	if err != nil || result == nil {
		s.state = StateFailed
		s.failure = FailureMessage
		s.result = nil
		return true
	}

	s.state = StateSucceeded
	s.result = result
	return true
}

// Reset returns the session to Idle, clearing the submission, verdict,
// failure, and request tag. From Idle it is a no-op. A reset while Pending
// drops the tag, so the eventual response is discarded on arrival. The caller
// cascades clears to the conversation thread and narration.
func (s *Session) Reset() {
	s.state = StateIdle
	s.submission = nil
	s.result = nil
	s.failure = ""
	s.requestID = ""
}
