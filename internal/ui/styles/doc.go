// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for nutrisense-tui.
//
// The palette mirrors the original NutriSense web client: blue for the brand
// and active selections, emerald/amber/rose keyed to the Safe/Caution/Avoid
// verdicts. Styles live on a Theme struct so views never construct ad-hoc
// lipgloss styles.
package styles
