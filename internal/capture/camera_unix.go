// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build !windows
// +build !windows

// Package capture produces analysis submissions from the three input modes.
package capture

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// grabber describes one external still-capture tool and how to invoke it.
// Arguments receive the output path via %s.
type grabber struct {
	binary string
	args   func(outPath string) []string
}

// unixGrabbers lists the tools probed in preference order.
var unixGrabbers = []grabber{
	{
		// Linux: dedicated webcam still tool.
		binary: "fswebcam",
		args: func(out string) []string {
			return []string{"--no-banner", "-r", "1280x720", out}
		},
	},
	{
		// macOS: imagesnap ships with Homebrew.
		binary: "imagesnap",
		args: func(out string) []string {
			return []string{"-w", "1", out}
		},
	},
	{
		// Fallback: ffmpeg single-frame grab from the default device.
		binary: "ffmpeg",
		args: func(out string) []string {
			input := []string{"-f", "v4l2", "-i", "/dev/video0"}
			if runtime.GOOS == "darwin" {
				input = []string{"-f", "avfoundation", "-i", "0"}
			}
			return append(input, "-frames:v", "1", "-y", out)
		},
	},
}

// DeviceCamera captures a still frame by shelling out to the first available
// grabber tool. It implements Camera.
type DeviceCamera struct {
	// Command overrides tool discovery; when set it is run with the output
	// path appended. Populated from config.
	Command []string

	grab     *grabber
	acquired bool
}

// NewDeviceCamera creates a camera backed by the platform grabber tools.
func NewDeviceCamera(command []string) *DeviceCamera {
	return &DeviceCamera{Command: command}
}

// Acquire probes for a usable grabber tool and claims the device.
func (c *DeviceCamera) Acquire() error {
	if len(c.Command) > 0 {
		if _, err := exec.LookPath(c.Command[0]); err != nil {
			return ErrDeviceUnavailable
		}
		c.acquired = true
		return nil
	}

	for i := range unixGrabbers {
		if _, err := exec.LookPath(unixGrabbers[i].binary); err == nil {
			c.grab = &unixGrabbers[i]
			c.acquired = true
			return nil
		}
	}
	return ErrDeviceUnavailable
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
		cmd = exec.CommandContext(ctx, c.grab.binary, c.grab.args(out)...)
	}
	// Grabber chatter must not corrupt the terminal UI.
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
	c.grab = nil
}
