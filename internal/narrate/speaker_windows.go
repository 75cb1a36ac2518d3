// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build windows
// +build windows

// Package narrate manages speech playback of the current verdict.
package narrate

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"sync"
)

// ErrNoSpeechEngine is returned when no speech tool is installed.
var ErrNoSpeechEngine = errors.New("no speech engine available")

// CommandSpeaker speaks through the Windows SAPI voice via PowerShell. It
// implements Speaker.
type CommandSpeaker struct {
	// Command overrides the default engine; the narration text is appended
	// as the final argument. Populated from config.
	Command []string

	mu  sync.Mutex
	cmd *exec.Cmd
}

// NewCommandSpeaker creates a speaker backed by the platform speech engine.
func NewCommandSpeaker(command []string) *CommandSpeaker {
	return &CommandSpeaker{Command: command}
}

// Speak blocks until playback completes or Stop kills the process.
func (s *CommandSpeaker) Speak(ctx context.Context, text string) error {
	var cmd *exec.Cmd
	if len(s.Command) > 0 {
		if _, err := exec.LookPath(s.Command[0]); err != nil {
			return ErrNoSpeechEngine
		}
		args := append(append([]string{}, s.Command[1:]...), text)
		cmd = exec.CommandContext(ctx, s.Command[0], args...)
	} else {
		if _, err := exec.LookPath("powershell"); err != nil {
			return ErrNoSpeechEngine
		}
		// Single quotes in the text would end the PowerShell literal early.
		escaped := strings.ReplaceAll(text, "'", "''")
		script := "Add-Type -AssemblyName System.Speech; " +
			"(New-Object System.Speech.Synthesis.SpeechSynthesizer).Speak('" + escaped + "')"
		cmd = exec.CommandContext(ctx, "powershell", "-NoProfile", "-Command", script)
	}
	cmd.Stdout = nil
	cmd.Stderr = nil

	s.mu.Lock()
	s.cmd = cmd
	s.mu.Unlock()

	err := cmd.Run()

	s.mu.Lock()
	if s.cmd == cmd {
		s.cmd = nil
	}
	s.mu.Unlock()

	return err
}

// Stop kills the active speech process, if any.
func (s *CommandSpeaker) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cmd != nil && s.cmd.Process != nil {
		s.cmd.Process.Kill()
		s.cmd = nil
	}
}
