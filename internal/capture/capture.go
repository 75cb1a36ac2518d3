// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package capture produces analysis submissions from the three input modes.
package capture

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jeranaias/nutrisense-tui/internal/model"
)

// =============================================================================
// INPUT MODES
// =============================================================================

// Mode is the active input mode. Exactly one mode is active at a time; the
// others are inert.
type Mode int

const (
	ModeText Mode = iota
	ModeLiveCapture
	ModeFileUpload
)

// Modes lists all input modes in tab order.
var Modes = []Mode{ModeText, ModeLiveCapture, ModeFileUpload}

// Next returns the mode after m in tab order, wrapping around.
func (m Mode) Next() Mode {
	return Modes[(int(m)+1)%len(Modes)]
}

// Prev returns the mode before m in tab order, wrapping around.
func (m Mode) Prev() Mode {
	return Modes[(int(m)+len(Modes)-1)%len(Modes)]
}

// String returns the tab label for the mode.
func (m Mode) String() string {
	switch m {
	case ModeLiveCapture:
		return "Scan"
	case ModeFileUpload:
		return "Upload"
	default:
		return "Type"
	}
}

// =============================================================================
// CAMERA
// =============================================================================

// ErrDeviceUnavailable is returned when no camera device or grabber tool can
// be used. The live-capture mode stays selectable; the capture action is
// inert until the device becomes available.
var ErrDeviceUnavailable = errors.New("camera device unavailable")

// Camera is a one-shot still-frame source. Acquire is called when the
// live-capture mode becomes active, Release when it is left or directly
// after a capture.
type Camera interface {
	// Acquire claims the device. Returns ErrDeviceUnavailable when no
	// camera or grabber tool is present.
	Acquire() error

	// Capture grabs a single still frame and returns its bytes and MIME
	// type. Only valid between Acquire and Release.
	Capture(ctx context.Context) ([]byte, string, error)

	// Release frees the device. Safe to call when not acquired.
	Release()
}

// =============================================================================
// FILE UPLOAD
// =============================================================================

// imageMIMETypes maps accepted upload extensions to their MIME type.
var imageMIMETypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// AllowedExtensions lists the image file extensions the upload picker accepts.
var AllowedExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}

// MIMEForFile returns the MIME type for an image path by extension.
func MIMEForFile(path string) (string, bool) {
	mime, ok := imageMIMETypes[strings.ToLower(filepath.Ext(path))]
	return mime, ok
}

// ReadImageFile loads a selected image file into an image submission. The
// submission preview carries the file name so it stays visible through the
// pending and terminal states.
func ReadImageFile(path string) (*model.Submission, error) {
	mime, ok := MIMEForFile(path)
	if !ok {
		return nil, fmt.Errorf("unsupported image type: %s", filepath.Ext(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	return model.NewImageSubmission(data, mime, filepath.Base(path)), nil
}
