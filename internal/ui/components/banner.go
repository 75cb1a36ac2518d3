// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI pieces for nutrisense-tui.
package components

import "github.com/jeranaias/nutrisense-tui/internal/ui/styles"

// =============================================================================
// ERROR BANNER
// =============================================================================

// ErrorBanner is the short retry-capable error notice shown under the input
// area after a failed analysis.
type ErrorBanner struct {
	message string
}

// Show sets the banner message.
func (b *ErrorBanner) Show(message string) {
	b.message = message
}

// Clear hides the banner.
func (b *ErrorBanner) Clear() {
	b.message = ""
}

// Visible reports whether the banner has something to show.
func (b *ErrorBanner) Visible() bool {
	return b.message != ""
}

// Message returns the current banner text.
func (b *ErrorBanner) Message() string {
	return b.message
}

// View renders the banner, or "" when hidden.
func (b *ErrorBanner) View(theme *styles.Theme) string {
	if b.message == "" {
		return ""
	}
	return theme.ErrorBanner.Render(b.message)
}
