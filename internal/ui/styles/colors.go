// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for nutrisense-tui.
// All colors use Lip Gloss AdaptiveColor for automatic light/dark detection.
package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// PRIMARY ACCENT COLORS
// =============================================================================

// Blue - Brand color, headers, active tabs and profile chips
var Blue = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#60A5FA"}

// BlueDeep - Darker blue for backgrounds
var BlueDeep = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#1E3A8A"}

// Purple - Secondary accent, assistant chat bubbles
var Purple = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}

// =============================================================================
// RISK COLORS
// =============================================================================

// Emerald - Safe verdicts, success states
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// EmeraldDeep - Darker emerald for backgrounds
var EmeraldDeep = lipgloss.AdaptiveColor{Light: "#047857", Dark: "#064E3B"}

// Amber - Caution verdicts, warnings
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// AmberDeep - Darker amber for backgrounds
var AmberDeep = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#78350F"}

// Rose - Avoid verdicts, errors
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// RoseDeep - Darker rose for backgrounds
var RoseDeep = lipgloss.AdaptiveColor{Light: "#BE123C", Dark: "#881337"}

// =============================================================================
// SURFACE AND TEXT COLORS
// =============================================================================

// Surface - Main background
var Surface = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

// SurfaceBright - Slightly lighter/darker surface for cards
var SurfaceBright = lipgloss.AdaptiveColor{Light: "#FAFAFA", Dark: "#313244"}

// Overlay - Borders, separators
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}

// TextPrimary - Main body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}

// TextSecondary - Labels, less prominent text
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}

// TextMuted - Hints, placeholders, very subtle text
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// TextInverse - Text on colored backgrounds
var TextInverse = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#11111B"}
