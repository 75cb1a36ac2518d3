// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package narrate manages speech playback of the current verdict.
package narrate

import (
	"context"

	"github.com/jeranaias/nutrisense-tui/internal/api"
)

// =============================================================================
// SPEAKER
// =============================================================================

// Speaker is the platform speech engine. Speak blocks until playback finishes
// naturally, the context is cancelled, or Stop is called. Stop interrupts the
// current playback and is safe to call at any time, including concurrently
// with Speak.
type Speaker interface {
	Speak(ctx context.Context, text string) error
	Stop()
}

// =============================================================================
// NARRATION STATE
// =============================================================================

// State is the narration playback state.
type State int

const (
	StateIdle State = iota
	StateSpeaking
)

// VerdictText builds the deterministic narration line for a verdict.
func VerdictText(result *api.AnalysisResult) string {
	return "Verdict is " + result.OverallRisk + ". " + result.Summary
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller owns the single narration channel. State transitions happen on
// the update loop; the blocking Speak call runs inside a command and reports
// back through Finish with the generation it belongs to.
type Controller struct {
	speaker Speaker
	state   State

	// generation identifies the current playback. Finish calls carrying an
	// older generation belong to a cancelled playback and are ignored.
	generation int
}

// NewController creates an idle controller around the given speaker.
func NewController(speaker Speaker) *Controller {
	return &Controller{speaker: speaker}
}

// State returns the current playback state.
func (c *Controller) State() State {
	return c.state
}

// Speaking reports whether a narration is active.
func (c *Controller) Speaking() bool {
	return c.state == StateSpeaking
}

// Begin starts a new narration of text. Any active playback is fully stopped
// first; there is never overlapping audio. It returns the playback generation
// and a runner the caller executes asynchronously; the runner blocks until
// playback ends and its completion must be fed back through Finish.
func (c *Controller) Begin(text string) (int, func(ctx context.Context) error) {
	if c.state == StateSpeaking {
		c.speaker.Stop()
	}

	c.generation++
	c.state = StateSpeaking

	gen := c.generation
	speaker := c.speaker
	return gen, func(ctx context.Context) error {
		return speaker.Speak(ctx, text)
	}
}

// Finish marks the playback of the given generation as complete. Completions
// of stopped or superseded playbacks are ignored; the return value reports
// whether the transition applied.
func (c *Controller) Finish(generation int) bool {
	if c.state != StateSpeaking || generation != c.generation {
		return false
	}
	c.state = StateIdle
	return true
}

// Stop halts any active narration immediately and returns to idle. Safe to
// call when already idle. Called unconditionally when the owning result is
// cleared or replaced so no playback outlives its verdict.
func (c *Controller) Stop() {
	if c.state == StateSpeaking {
		c.speaker.Stop()
	}
	// Invalidate the in-flight completion regardless of state.
	c.generation++
	c.state = StateIdle
}
