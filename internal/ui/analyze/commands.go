// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package analyze provides the main view of nutrisense-tui.
package analyze

import (
	"context"
	"encoding/json"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/nutrisense-tui/internal/api"
	"github.com/jeranaias/nutrisense-tui/internal/capture"
	"github.com/jeranaias/nutrisense-tui/internal/model"
)

// FallbackAnswer is the fixed assistant text appended when a chat request
// fails. The turn is never silently dropped.
const FallbackAnswer = "Sorry, I couldn't connect right now."

// Backend is the slice of the api client the view needs. Tests substitute a
// fake.
type Backend interface {
	Analyze(ctx context.Context, text, profile string) (*api.AnalysisResult, error)
	AnalyzeImage(ctx context.Context, image []byte, mimeType, profile string) (*api.AnalysisResult, error)
	Chat(ctx context.Context, question, contextData, profile string) (string, error)
}

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// AnalyzeCmd creates a command that submits the given submission for
// analysis and reports back with the session's request tag.
func AnalyzeCmd(backend Backend, sub *model.Submission, profile model.Profile, requestID string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		var result *api.AnalysisResult
		var err error
		if sub.IsImage() {
			result, err = backend.AnalyzeImage(ctx, sub.Image, sub.MIMEType, profile.String())
		} else {
			result, err = backend.Analyze(ctx, sub.Text, profile.String())
		}

		return AnalysisCompletedMsg{RequestID: requestID, Result: result, Err: err}
	}
}

// AskCmd creates a command that asks a follow-up question. The context
// snapshot is captured by the caller before the command is created, so each
// outstanding question carries the verdict and profile it was asked against.
func AskCmd(backend Backend, question, contextData string, profile model.Profile, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		answer, err := backend.Chat(ctx, question, contextData, profile.String())
		return ChatAnsweredMsg{Answer: answer, Err: err}
	}
}

// CaptureCmd creates a command that grabs a single still frame from the
// camera and wraps it in an image submission.
func CaptureCmd(camera capture.Camera, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		frame, mime, err := camera.Capture(ctx)
		if err != nil {
			return CaptureCompletedMsg{Err: err}
		}
		return CaptureCompletedMsg{
			Submission: model.NewImageSubmission(frame, mime, "camera-capture.jpg"),
		}
	}
}

// NarrateCmd creates a command that runs a narration playback to completion
// and reports which generation ended.
func NarrateCmd(generation int, run func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		err := run(context.Background())
		return NarrationFinishedMsg{Generation: generation, Err: err}
	}
}

// =============================================================================
// CONTEXT SNAPSHOT
// =============================================================================

// contextSnapshot serializes a verdict for use as chat grounding context.
func contextSnapshot(result *api.AnalysisResult) string {
	data, err := json.Marshal(result)
	if err != nil {
		return "{}"
	}
	return string(data)
}
