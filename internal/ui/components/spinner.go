// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI pieces for nutrisense-tui.
package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/nutrisense-tui/internal/ui/styles"
)

// =============================================================================
// SPINNER
// =============================================================================

// Spinner is the loading indicator shown while an analysis is pending.
type Spinner struct {
	spinner spinner.Model
	message string
}

// NewSpinner creates a spinner with ASCII-safe frames.
func NewSpinner(theme *styles.Theme) Spinner {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}
	s.Style = theme.Spinner

	return Spinner{
		spinner: s,
		message: "Analyzing",
	}
}

// SetMessage updates the text shown next to the spinner.
func (s *Spinner) SetMessage(message string) {
	s.message = message
}

// Tick returns the command that keeps the spinner animating.
func (s Spinner) Tick() tea.Cmd {
	return s.spinner.Tick
}

// Update advances the spinner animation.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// View renders the spinner with its message.
func (s Spinner) View() string {
	return s.spinner.View() + " " + s.message + "..."
}
