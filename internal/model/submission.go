// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the domain data structures for nutrisense-tui.
package model

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// SUBMISSIONS
// =============================================================================

// SubmissionKind discriminates the two forms a submission can take.
type SubmissionKind int

const (
	SubmissionText SubmissionKind = iota
	SubmissionImage
)

// ErrEmptyText is returned when a text submission is blank after trimming.
// Callers treat it as a silent no-op, not an error surface.
var ErrEmptyText = errors.New("submission text is empty")

// Submission is the normalized unit sent for analysis: either trimmed
// ingredient text or raw image bytes with their MIME type. A Submission is
// immutable once created; a new cycle replaces it wholesale.
type Submission struct {
	Kind SubmissionKind

	// Text payload (SubmissionText)
	Text string

	// Image payload (SubmissionImage)
	Image    []byte
	MIMEType string

	// Preview is the displayable rendering of what was submitted: the text
	// itself, or a short description of the image. Always populated before
	// the analysis request is issued so it survives pending and terminal
	// states.
	Preview string
}

// NewTextSubmission builds a text submission from user input. The text is
// trimmed; blank input returns ErrEmptyText.
func NewTextSubmission(text string) (*Submission, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrEmptyText
	}
	return &Submission{
		Kind:    SubmissionText,
		Text:    trimmed,
		Preview: trimmed,
	}, nil
}

// NewImageSubmission builds an image submission from captured or uploaded
// bytes. The source name feeds the preview line.
func NewImageSubmission(image []byte, mimeType, source string) *Submission {
	return &Submission{
		Kind:     SubmissionImage,
		Image:    image,
		MIMEType: mimeType,
		Preview:  fmt.Sprintf("%s (%s, %s)", source, mimeType, formatSize(len(image))),
	}
}

// IsImage reports whether the submission carries image bytes.
func (s *Submission) IsImage() bool {
	return s.Kind == SubmissionImage
}

// formatSize renders a byte count in a human-readable form.
func formatSize(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/float64(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
