// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for nutrisense-tui.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application. It detects the
// terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	ColorProfile termenv.Profile

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style

	// ==========================================================================
	// INPUT MODE TABS
	// ==========================================================================

	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	// ==========================================================================
	// PROFILE SELECTOR
	// ==========================================================================

	ProfileLabel    lipgloss.Style
	ProfileActive   lipgloss.Style
	ProfileInactive lipgloss.Style

	// ==========================================================================
	// VERDICT CARD STYLES (keyed by risk)
	// ==========================================================================

	VerdictSafe    lipgloss.Style
	VerdictCaution lipgloss.Style
	VerdictAvoid   lipgloss.Style
	VerdictUnknown lipgloss.Style
	VerdictTitle   lipgloss.Style
	VerdictSummary lipgloss.Style

	// ==========================================================================
	// RISK BADGES
	// ==========================================================================

	BadgeSafe    lipgloss.Style
	BadgeCaution lipgloss.Style
	BadgeAvoid   lipgloss.Style
	BadgeUnknown lipgloss.Style

	// ==========================================================================
	// INGREDIENT LIST
	// ==========================================================================

	IngredientName     lipgloss.Style
	IngredientFunction lipgloss.Style
	IngredientReason   lipgloss.Style

	// ==========================================================================
	// RECOMMENDATION CARDS
	// ==========================================================================

	RecommendCard  lipgloss.Style
	RecommendTitle lipgloss.Style

	// ==========================================================================
	// CHAT THREAD
	// ==========================================================================

	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	ChatHint        lipgloss.Style

	// ==========================================================================
	// INPUT AREA
	// ==========================================================================

	InputContainer lipgloss.Style
	InputPrompt    lipgloss.Style
	Placeholder    lipgloss.Style

	// ==========================================================================
	// STATUS AND ERROR
	// ==========================================================================

	ErrorBanner lipgloss.Style
	Spinner     lipgloss.Style
	PendingText lipgloss.Style
	StatusBar   lipgloss.Style
	ShortcutKey lipgloss.Style
	Preview     lipgloss.Style
}

// NewTheme creates a theme tuned to the current terminal.
func NewTheme() *Theme {
	t := &Theme{
		ColorProfile: termenv.ColorProfile(),
	}

	t.Header = lipgloss.NewStyle().
		Padding(0, 1)
	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Blue)
	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.TabActive = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Background(Blue).
		Padding(0, 2)
	t.TabInactive = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceBright).
		Padding(0, 2)

	t.ProfileLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)
	t.ProfileActive = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Background(Blue).
		Padding(0, 1)
	t.ProfileInactive = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)

	verdictBase := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 2)
	t.VerdictSafe = verdictBase.BorderForeground(Emerald)
	t.VerdictCaution = verdictBase.BorderForeground(Amber)
	t.VerdictAvoid = verdictBase.BorderForeground(Rose)
	t.VerdictUnknown = verdictBase.BorderForeground(Overlay)
	t.VerdictTitle = lipgloss.NewStyle().Bold(true)
	t.VerdictSummary = lipgloss.NewStyle().Foreground(TextPrimary)

	badgeBase := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	t.BadgeSafe = badgeBase.Foreground(TextInverse).Background(Emerald)
	t.BadgeCaution = badgeBase.Foreground(TextInverse).Background(Amber)
	t.BadgeAvoid = badgeBase.Foreground(TextInverse).Background(Rose)
	t.BadgeUnknown = badgeBase.Foreground(TextPrimary).Background(Overlay)

	t.IngredientName = lipgloss.NewStyle().
		Bold(true).
		Foreground(Blue)
	t.IngredientFunction = lipgloss.NewStyle().
		Foreground(TextMuted)
	t.IngredientReason = lipgloss.NewStyle().
		Italic(true).
		Foreground(TextSecondary)

	t.RecommendCard = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(Emerald).
		PaddingLeft(1)
	t.RecommendTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Emerald)

	t.UserBubble = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Blue).
		Padding(0, 1)
	t.AssistantBubble = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(SurfaceBright).
		Padding(0, 1)
	t.ChatHint = lipgloss.NewStyle().
		Italic(true).
		Foreground(TextMuted)

	t.InputContainer = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.InputPrompt = lipgloss.NewStyle().
		Bold(true).
		Foreground(Blue)
	t.Placeholder = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.ErrorBanner = lipgloss.NewStyle().
		Bold(true).
		Foreground(Rose).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Rose).
		Padding(0, 1)
	t.Spinner = lipgloss.NewStyle().
		Foreground(Blue)
	t.PendingText = lipgloss.NewStyle().
		Foreground(TextSecondary)
	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextMuted)
	t.ShortcutKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(Blue)
	t.Preview = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(Overlay).
		PaddingLeft(1)

	return t
}

// VerdictStyle returns the verdict card style for a risk string.
func (t *Theme) VerdictStyle(risk string) lipgloss.Style {
	switch risk {
	case "Safe":
		return t.VerdictSafe
	case "Caution":
		return t.VerdictCaution
	case "Avoid":
		return t.VerdictAvoid
	default:
		return t.VerdictUnknown
	}
}
