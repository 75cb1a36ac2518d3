// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build windows
// +build windows

// Package capture produces analysis submissions from the three input modes.
package capture

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// DeviceCamera captures a still frame via ffmpeg's DirectShow input. It
// implements Camera.
type DeviceCamera struct {
	// Command overrides tool discovery; when set it is run with the output
	// path appended. Populated from config.
	Command []string

	acquired bool
}

// NewDeviceCamera creates a camera backed by ffmpeg on Windows.
func NewDeviceCamera(command []string) *DeviceCamera {
	return &DeviceCamera{Command: command}
}

// Acquire probes for ffmpeg (or the configured override) and claims the
// device.
func (c *DeviceCamera) Acquire() error {
	binary := "ffmpeg"
	if len(c.Command) > 0 {
		binary = c.Command[0]
	}
	if _, err := exec.LookPath(binary); err != nil {
		return ErrDeviceUnavailable
	}
	c.acquired = true
	return nil
}

// Capture grabs one still frame as JPEG bytes.
func (c *DeviceCamera) Capture(ctx context.Context) ([]byte, string, error) {
	if !c.acquired {
		return nil, "", ErrDeviceUnavailable
	}

	out := filepath.Join(os.TempDir(), fmt.Sprintf("nutrisense-capture-%d.jpg", os.Getpid()))
	defer os.Remove(out)

	var cmd *exec.Cmd
	if len(c.Command) > 0 {
		args := append(append([]string{}, c.Command[1:]...), out)
		cmd = exec.CommandContext(ctx, c.Command[0], args...)
	} else {
		cmd = exec.CommandContext(ctx, "ffmpeg",
			"-f", "dshow", "-i", "video=default",
			"-frames:v", "1", "-y", out)
	}
	cmd.Stdout = nil
	cmd.Stderr = nil

	if err := cmd.Run(); err != nil {
		return nil, "", fmt.Errorf("frame capture failed: %w", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		return nil, "", fmt.Errorf("frame capture produced no image: %w", err)
	}

	return data, "image/jpeg", nil
}

// Release frees the device. Safe to call when not acquired.
func (c *DeviceCamera) Release() {
	c.acquired = false
}
