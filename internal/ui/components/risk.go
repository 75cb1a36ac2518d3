// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI pieces for nutrisense-tui.
package components

import (
	"github.com/jeranaias/nutrisense-tui/internal/api"
	"github.com/jeranaias/nutrisense-tui/internal/ui/styles"
)

// RiskBadge renders a colored badge for a risk level.
func RiskBadge(theme *styles.Theme, risk api.RiskLevel) string {
	switch risk {
	case api.RiskSafe:
		return theme.BadgeSafe.Render("SAFE")
	case api.RiskCaution:
		return theme.BadgeCaution.Render("CAUTION")
	case api.RiskAvoid:
		return theme.BadgeAvoid.Render("AVOID")
	default:
		return theme.BadgeUnknown.Render("UNKNOWN")
	}
}

// RiskGlyph returns the ASCII marker used next to ingredient findings.
func RiskGlyph(risk api.RiskLevel) string {
	switch risk {
	case api.RiskSafe:
		return "[ok]"
	case api.RiskCaution:
		return "[!]"
	case api.RiskAvoid:
		return "[x]"
	default:
		return "[?]"
	}
}
