// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session implements the analysis request lifecycle.
package session

import (
	"errors"
	"testing"

	"github.com/jeranaias/nutrisense-tui/internal/api"
	"github.com/jeranaias/nutrisense-tui/internal/model"
)

func textSubmission(t *testing.T, text string) *model.Submission {
	t.Helper()
	sub, err := model.NewTextSubmission(text)
	if err != nil {
		t.Fatalf("NewTextSubmission(%q) error = %v", text, err)
	}
	return sub
}

func TestSession_StartsIdle(t *testing.T) {
	s := New()

	if s.State() != StateIdle {
		t.Errorf("State = %s, want idle", s.State())
	}
	if s.Submission() != nil || s.Result() != nil || s.Failure() != "" {
		t.Error("idle session must carry no payload")
	}
}

func TestSession_SuccessCycle(t *testing.T) {
	s := New()
	sub := textSubmission(t, "sugar, palm oil, salt")

	id, err := s.Begin(sub)
	if err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	if s.State() != StatePending {
		t.Fatalf("State = %s, want pending", s.State())
	}
	if s.Submission() != sub {
		t.Error("pending session should hold the submission for preview")
	}

	verdict := &api.AnalysisResult{
		OverallRisk: "Caution",
		Summary:     "High sugar for this profile.",
		IngredientsBreakdown: []api.IngredientFinding{
			{Name: "Sugar", Function: "Sweetener", RiskLevel: "Avoid", Reasoning: "Glycemic spike."},
		},
	}
	if !s.Resolve(id, verdict, nil) {
		t.Fatal("Resolve with matching tag should apply")
	}

	if s.State() != StateSucceeded {
		t.Errorf("State = %s, want succeeded", s.State())
	}
	if s.Result() != verdict {
		t.Error("verdict must be stored verbatim")
	}
	if s.Failure() != "" {
		t.Error("success must not carry a failure message")
	}
}

func TestSession_FailureCycle(t *testing.T) {
	s := New()

	id, _ := s.Begin(textSubmission(t, "sugar"))
	if !s.Resolve(id, nil, errors.New("connection refused")) {
		t.Fatal("Resolve with matching tag should apply")
	}

	if s.State() != StateFailed {
		t.Errorf("State = %s, want failed", s.State())
	}
	if s.Failure() != FailureMessage {
		t.Errorf("Failure = %q, want the stable message", s.Failure())
	}
	if s.Result() != nil {
		t.Error("failed session must store no result")
	}
}

func TestSession_BeginWhilePendingRejected(t *testing.T) {
	s := New()
	s.Begin(textSubmission(t, "first"))

	if _, err := s.Begin(textSubmission(t, "second")); !errors.Is(err, ErrBusy) {
		t.Errorf("Begin while pending: error = %v, want ErrBusy", err)
	}
	if s.State() != StatePending {
		t.Error("rejected Begin must not disturb the pending request")
	}
}

func TestSession_NewCycleClearsPreviousPayload(t *testing.T) {
	s := New()

	id, _ := s.Begin(textSubmission(t, "sugar"))
	s.Resolve(id, nil, errors.New("boom"))

	// Starting the next cycle clears the failure immediately.
	s.Begin(textSubmission(t, "water"))
	if s.Failure() != "" || s.Result() != nil {
		t.Error("entering Pending must clear prior payload and error")
	}
}

func TestSession_StaleResponseDiscarded(t *testing.T) {
	s := New()

	id, _ := s.Begin(textSubmission(t, "sugar"))
	s.Reset()

	if s.Resolve(id, &api.AnalysisResult{OverallRisk: "Safe"}, nil) {
		t.Error("response arriving after reset must be discarded")
	}
	if s.State() != StateIdle || s.Result() != nil {
		t.Error("stale response must not change state")
	}
}

func TestSession_WrongTagDiscarded(t *testing.T) {
	s := New()
	s.Begin(textSubmission(t, "sugar"))

	if s.Resolve("not-the-tag", &api.AnalysisResult{OverallRisk: "Safe"}, nil) {
		t.Error("response with a foreign tag must be discarded")
	}
	if s.State() != StatePending {
		t.Error("pending request must remain in flight")
	}
}

func TestSession_ResetFromTerminalStates(t *testing.T) {
	for _, fail := range []bool{false, true} {
		s := New()
		id, _ := s.Begin(textSubmission(t, "sugar"))
		if fail {
			s.Resolve(id, nil, errors.New("boom"))
		} else {
			s.Resolve(id, &api.AnalysisResult{OverallRisk: "Safe"}, nil)
		}

		s.Reset()
		if s.State() != StateIdle || s.Submission() != nil || s.Result() != nil || s.Failure() != "" {
			t.Errorf("reset (fail=%v) must be observationally equal to a fresh session", fail)
		}
	}
}

func TestSession_ResetFromIdleIsNoOp(t *testing.T) {
	s := New()
	s.Reset()
	if s.State() != StateIdle {
		t.Error("reset from Idle should stay Idle")
	}
}
