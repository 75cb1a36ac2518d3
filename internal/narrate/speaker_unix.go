// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build !windows
// +build !windows

// Package narrate manages speech playback of the current verdict.
package narrate

import (
	"context"
	"errors"
	"os/exec"
	"sync"
)

// unixEngines lists the speech tools probed in preference order. Each is
// invoked with the narration text as its final argument.
var unixEngines = [][]string{
	{"say"},               // macOS
	{"espeak-ng"},         // Linux
	{"espeak"},            // Linux (legacy name)
	{"spd-say", "--wait"}, // speech-dispatcher
}

// ErrNoSpeechEngine is returned when no speech tool is installed.
var ErrNoSpeechEngine = errors.New("no speech engine available")

// CommandSpeaker speaks by shelling out to the platform speech tool. It
// implements Speaker.
type CommandSpeaker struct {
	// Command overrides engine discovery; the narration text is appended as
	// the final argument. Populated from config.
	Command []string

	mu  sync.Mutex
	cmd *exec.Cmd
}

// NewCommandSpeaker creates a speaker backed by the platform speech tools.
func NewCommandSpeaker(command []string) *CommandSpeaker {
	return &CommandSpeaker{Command: command}
}

// engine resolves the speech command to run.
func (s *CommandSpeaker) engine() ([]string, error) {
	if len(s.Command) > 0 {
		if _, err := exec.LookPath(s.Command[0]); err != nil {
			return nil, ErrNoSpeechEngine
		}
		return s.Command, nil
	}
	for _, candidate := range unixEngines {
		if _, err := exec.LookPath(candidate[0]); err == nil {
			return candidate, nil
		}
	}
	return nil, ErrNoSpeechEngine
}

// Speak blocks until the speech tool exits or Stop kills it.
func (s *CommandSpeaker) Speak(ctx context.Context, text string) error {
	engine, err := s.engine()
	if err != nil {
		return err
	}

	args := append(append([]string{}, engine[1:]...), text)
	cmd := exec.CommandContext(ctx, engine[0], args...)
	cmd.Stdout = nil
	cmd.Stderr = nil

	s.mu.Lock()
	s.cmd = cmd
	s.mu.Unlock()

	err = cmd.Run()

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
