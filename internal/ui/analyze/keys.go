// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package analyze provides the main view of nutrisense-tui.
package analyze

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keyboard shortcuts for the view. Text entry owns the
// plain keys, so every action uses a modifier or an unambiguous special key.
type KeyMap struct {
	NextMode     key.Binding
	PrevMode     key.Binding
	CycleProfile key.Binding
	Submit       key.Binding
	Reset        key.Binding
	Narrate      key.Binding
	StopSpeech   key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the standard key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextMode: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next input mode"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous input mode"),
		),
		CycleProfile: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "cycle health profile"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit / capture / ask"),
		),
		Reset: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "scan another item"),
		),
		Narrate: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "listen to verdict"),
		),
		StopSpeech: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "stop narration"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}
